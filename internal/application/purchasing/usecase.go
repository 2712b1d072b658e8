package purchasing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/posventa-api/internal/application/alerts"
	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/application/ports"
	"github.com/jhoicas/posventa-api/internal/domain"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
	"github.com/jhoicas/posventa-api/pkg/logger"
	"github.com/jhoicas/posventa-api/pkg/metrics"
)

// PurchaseOrderUseCase ciclo de vida de órdenes de compra: creación (ORDERED),
// recepciones parciales acumulativas que incrementan stock, y cancelación.
// El estado es función pura de lo recibido y solo avanza (nunca regresa),
// salvo la cancelación explícita desde estados no terminales.
type PurchaseOrderUseCase struct {
	txRunner    ports.TxRunner
	poRepo      repository.PurchaseOrderRepository
	productRepo repository.ProductRepository
	evaluator   *alerts.Evaluator
	notifier    ports.Notifier
	log         *logger.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner ports.TxRunner,
	poRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	evaluator *alerts.Evaluator,
	notifier ports.Notifier,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:    txRunner,
		poRepo:      poRepo,
		productRepo: productRepo,
		evaluator:   evaluator,
		notifier:    notifier,
		log:         log,
	}
}

// Create crea la orden en estado ORDERED (colocada con el proveedor). Valida que
// todos los productos existan antes de persistir.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, actorID string, in dto.CreatePORequest) (*dto.POResponse, error) {
	if in.SupplierID == "" {
		return nil, &domain.ValidationError{Field: "supplier_id", Reason: "requerido"}
	}
	if len(in.Items) == 0 {
		return nil, &domain.ValidationError{Field: "items", Reason: "la orden no tiene ítems"}
	}
	for _, it := range in.Items {
		if it.ProductID == "" {
			return nil, &domain.ValidationError{Field: "product_id", Reason: "requerido"}
		}
		if it.Quantity <= 0 {
			return nil, &domain.ValidationError{Field: "quantity", Reason: "debe ser mayor que cero"}
		}
		if it.UnitCost.LessThan(decimal.Zero) {
			return nil, &domain.ValidationError{Field: "unit_cost", Reason: "no puede ser negativo"}
		}
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.NotFoundError{Resource: "producto", ID: it.ProductID}
		}
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		SupplierID:   in.SupplierID,
		Status:       entity.POStatusOrdered,
		CreatedByID:  actorID,
		ExpectedDate: in.ExpectedDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, it := range in.Items {
		po.Items = append(po.Items, entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			ProductID:       it.ProductID,
			QuantityOrdered: it.Quantity,
			UnitCost:        it.UnitCost,
		})
	}
	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}
	return poToResponse(po), nil
}

// Get devuelve la orden con sus ítems.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, poID string) (*dto.POResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, &domain.NotFoundError{Resource: "orden de compra", ID: poID}
	}
	return poToResponse(po), nil
}

// Receive aplica una recepción (posiblemente parcial) contra la orden, en una sola
// transacción: acumula lo recibido por ítem rechazando excesos, incrementa el stock
// de cada producto con movimiento RECEIPT (costo y proveedor incluidos) y recalcula
// el estado hacia adelante. Post-commit reevalúa alertas citando la orden como causa.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, actorID, poID string, in dto.ReceivePORequest) (*dto.POResponse, error) {
	if len(in.Items) == 0 {
		return nil, &domain.ValidationError{Field: "items", Reason: "la recepción no tiene ítems"}
	}
	for _, line := range in.Items {
		if line.ItemID == "" {
			return nil, &domain.ValidationError{Field: "item_id", Reason: "requerido"}
		}
		if line.QuantityReceived <= 0 {
			return nil, &domain.ValidationError{Field: "quantity_received", Reason: "debe ser mayor que cero"}
		}
	}

	now := time.Now()
	var result *entity.PurchaseOrder
	touched := make([]string, 0, len(in.Items))

	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		po, err := r.PurchaseOrders.GetForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		if po == nil {
			return &domain.NotFoundError{Resource: "orden de compra", ID: poID}
		}
		if po.Status.Terminal() {
			return fmt.Errorf("orden %s en estado terminal %s: %w", po.ID, po.Status, domain.ErrConflict)
		}

		itemsByID := make(map[string]*entity.PurchaseOrderItem, len(po.Items))
		for i := range po.Items {
			itemsByID[po.Items[i].ID] = &po.Items[i]
		}

		// Validación completa antes de aplicar: la recepción es todo-o-nada.
		// El exceso sobre lo pendiente se rechaza, nunca se aplica recortado.
		receiveByItem := make(map[string]int64, len(in.Items))
		for _, line := range in.Items {
			item, ok := itemsByID[line.ItemID]
			if !ok {
				return &domain.NotFoundError{Resource: "ítem de orden", ID: line.ItemID}
			}
			receiveByItem[line.ItemID] += line.QuantityReceived
			if receiveByItem[line.ItemID] > item.Remaining() {
				return &domain.OverReceiptError{
					ItemID:    line.ItemID,
					Requested: receiveByItem[line.ItemID],
					Remaining: item.Remaining(),
				}
			}
		}

		// Bloqueo de productos en orden ascendente de id, como el procesador de ventas.
		productIDs := make([]string, 0, len(receiveByItem))
		qtyByProduct := make(map[string]int64, len(receiveByItem))
		for itemID, qty := range receiveByItem {
			item := itemsByID[itemID]
			if _, ok := qtyByProduct[item.ProductID]; !ok {
				productIDs = append(productIDs, item.ProductID)
			}
			qtyByProduct[item.ProductID] += qty
		}
		sort.Strings(productIDs)
		for _, pid := range productIDs {
			p, err := r.Products.GetForUpdate(ctx, pid)
			if err != nil {
				return err
			}
			if p == nil {
				return &domain.NotFoundError{Resource: "producto", ID: pid}
			}
		}

		supplierID := po.SupplierID
		for itemID, qty := range receiveByItem {
			item := itemsByID[itemID]
			item.QuantityReceived += qty
			if err := r.PurchaseOrders.UpdateItemReceived(ctx, itemID, item.QuantityReceived); err != nil {
				return err
			}
			if err := r.Products.AdjustStock(ctx, item.ProductID, qty); err != nil {
				return err
			}
			unitCost := item.UnitCost
			mov := &entity.Movement{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				Type:        entity.MovementRECEIPT,
				Quantity:    qty,
				ReferenceID: po.ID,
				SupplierID:  &supplierID,
				CostPrice:   &unitCost,
				ActorID:     actorID,
				CreatedAt:   now,
			}
			if err := r.Movements.Create(ctx, mov); err != nil {
				return err
			}
			touched = append(touched, item.ProductID)
		}

		if next := po.AdvanceStatus(); next != entity.POStatusOrdered {
			if err := r.PurchaseOrders.UpdateStatus(ctx, po.ID, next); err != nil {
				return err
			}
		}
		result = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReceiptsProcessed.Inc()
	cause := fmt.Sprintf("recepción de orden de compra %s", poID)
	seen := make(map[string]bool, len(touched))
	for _, pid := range touched {
		if seen[pid] {
			continue
		}
		seen[pid] = true
		product, err := uc.productRepo.GetByID(ctx, pid)
		if err != nil || product == nil {
			uc.log.Warn().Err(err).Str("product_id", pid).Msg("relectura post-commit fallida")
			continue
		}
		uc.notifier.ProductUpdated(ctx, product)
		uc.evaluator.Evaluate(ctx, product, cause)
	}
	return poToResponse(result), nil
}

// Cancel marca la orden como CANCELLED. Solo es alcanzable desde estados
// no terminales; lo ya recibido permanece en stock.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, poID string) (*dto.POResponse, error) {
	var result *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		po, err := r.PurchaseOrders.GetForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		if po == nil {
			return &domain.NotFoundError{Resource: "orden de compra", ID: poID}
		}
		if po.Status.Terminal() {
			return fmt.Errorf("orden %s en estado terminal %s: %w", po.ID, po.Status, domain.ErrConflict)
		}
		po.Status = entity.POStatusCancelled
		if err := r.PurchaseOrders.UpdateStatus(ctx, po.ID, entity.POStatusCancelled); err != nil {
			return err
		}
		result = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return poToResponse(result), nil
}

// List devuelve órdenes paginadas.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, limit, offset int) ([]*dto.POResponse, error) {
	pos, err := uc.poRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.POResponse, 0, len(pos))
	for _, po := range pos {
		out = append(out, poToResponse(po))
	}
	return out, nil
}

func poToResponse(po *entity.PurchaseOrder) *dto.POResponse {
	resp := &dto.POResponse{
		ID:           po.ID,
		SupplierID:   po.SupplierID,
		Status:       string(po.Status),
		ExpectedDate: po.ExpectedDate,
		CreatedAt:    po.CreatedAt,
	}
	for _, it := range po.Items {
		resp.Items = append(resp.Items, dto.POItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityReceived: it.QuantityReceived,
			UnitCost:         it.UnitCost,
		})
	}
	return resp
}
