package sales

import (
	"context"
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

// SaleUseCase procesa ventas multi-ítem de forma atómica: decrementa stock, registra
// movimientos SALE y persiste la venta con sus ítems dentro de una sola transacción.
// La venta es indivisible: si un solo ítem falla, no se aplica nada.
type SaleUseCase struct {
	txRunner    ports.TxRunner
	productRepo repository.ProductRepository
	evaluator   *alerts.Evaluator
	notifier    ports.Notifier
	log         *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner ports.TxRunner,
	productRepo repository.ProductRepository,
	evaluator *alerts.Evaluator,
	notifier ports.Notifier,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		evaluator:   evaluator,
		notifier:    notifier,
		log:         log,
	}
}

// CreateSale valida, ejecuta la transacción y dispara los efectos post-commit
// (evaluación de alertas y notificaciones, best-effort).
func (uc *SaleUseCase) CreateSale(ctx context.Context, actorID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.createSale(ctx, actorID, nil, nil, in)
	if err != nil {
		metrics.SalesFailed.WithLabelValues(metrics.FailureReason(err)).Inc()
		return nil, err
	}
	metrics.SalesProcessed.Inc()
	uc.afterCommit(ctx, sale)
	return saleToResponse(sale), nil
}

func (uc *SaleUseCase) createSale(ctx context.Context, actorID string, clientID, deviceID *string, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if err := validateSaleInput(in); err != nil {
		return nil, err
	}
	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		PaymentMethod: in.PaymentMethod,
		ActorID:       actorID,
		ClientID:      clientID,
		DeviceID:      deviceID,
		CreatedAt:     now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		return uc.applySaleInTx(ctx, r, sale, in.Items, now)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// applySaleInTx ejecuta la venta con los repositorios de la transacción del caller
// (la usa también el reconciliador de sync, que añade su fila de dedup a la misma tx).
// Secuencia: bloquear todos los productos en orden ascendente de id, verificar stock
// de todos (todo-o-nada), y solo entonces aplicar decrementos, movimientos y venta.
func (uc *SaleUseCase) applySaleInTx(ctx context.Context, r ports.TxRepos, sale *entity.Sale, items []dto.SaleItemRequest, now time.Time) error {
	// Bloqueo en orden ascendente de id para evitar deadlocks entre ventas cruzadas.
	ids := make([]string, 0, len(items))
	seen := make(map[string]int64, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; !ok {
			ids = append(ids, it.ProductID)
		}
		seen[it.ProductID] += it.Quantity
	}
	sort.Strings(ids)

	products := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.NotFoundError{Resource: "producto", ID: id}
		}
		products[id] = p
	}

	// Verificación completa antes de tocar nada: una venta es indivisible.
	// Se reporta el primer producto ofensor en el orden original de los ítems.
	for _, it := range items {
		p := products[it.ProductID]
		if p.CurrentStock < seen[it.ProductID] {
			return &domain.InsufficientStockError{
				ProductID: p.ID,
				SKU:       p.SKU,
				Requested: seen[it.ProductID],
				Available: p.CurrentStock,
			}
		}
	}

	total := decimal.Zero
	for _, it := range items {
		p := products[it.ProductID]
		if err := r.Products.AdjustStock(ctx, p.ID, -it.Quantity); err != nil {
			return err
		}
		p.CurrentStock -= it.Quantity

		mov := &entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   p.ID,
			Type:        entity.MovementSALE,
			Quantity:    -it.Quantity,
			ReferenceID: sale.ID,
			ActorID:     sale.ActorID,
			CreatedAt:   now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}

		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		total = total.Add(lineTotal)
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: p.ID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: lineTotal,
		})
	}
	sale.TotalAmount = total
	return r.Sales.Create(ctx, sale)
}

// afterCommit reevalúa alertas y emite eventos por cada producto afectado.
// Cualquier falla aquí se loguea y jamás revierte la venta ya confirmada.
func (uc *SaleUseCase) afterCommit(ctx context.Context, sale *entity.Sale) {
	evaluated := make(map[string]bool, len(sale.Items))
	for _, it := range sale.Items {
		if evaluated[it.ProductID] {
			continue
		}
		evaluated[it.ProductID] = true
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil || product == nil {
			uc.log.Warn().Err(err).Str("product_id", it.ProductID).Msg("relectura post-commit fallida")
			continue
		}
		uc.notifier.ProductUpdated(ctx, product)
		uc.evaluator.Evaluate(ctx, product, "")
	}
}

func validateSaleInput(in dto.CreateSaleRequest) error {
	if len(in.Items) == 0 {
		return &domain.ValidationError{Field: "items", Reason: "la venta no tiene ítems"}
	}
	for _, it := range in.Items {
		if it.ProductID == "" {
			return &domain.ValidationError{Field: "product_id", Reason: "requerido"}
		}
		if it.Quantity <= 0 {
			return &domain.ValidationError{Field: "quantity", Reason: "debe ser mayor que cero"}
		}
		if it.UnitPrice.LessThan(decimal.Zero) {
			return &domain.ValidationError{Field: "unit_price", Reason: "no puede ser negativo"}
		}
	}
	switch in.PaymentMethod {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer:
	default:
		return &domain.ValidationError{Field: "payment_method", Reason: "método de pago desconocido"}
	}
	return nil
}

func saleToResponse(sale *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		TotalAmount:   sale.TotalAmount,
		PaymentMethod: sale.PaymentMethod,
		CreatedAt:     sale.CreatedAt,
	}
	for _, it := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return resp
}
