package inventory

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

// CycleCountUseCase reconcilia el stock registrado contra un conteo físico.
// Por cada línea: esperado = stock actual, delta = contado - esperado; con delta
// distinto de cero se fija el stock al contado y se registra el ajuste en el ledger.
// Un producto inexistente hace fallar el conteo completo (todo-o-nada, como ventas).
type CycleCountUseCase struct {
	txRunner    ports.TxRunner
	productRepo repository.ProductRepository
	evaluator   *alerts.Evaluator
	notifier    ports.Notifier
	log         *logger.Logger
}

// NewCycleCountUseCase construye el caso de uso.
func NewCycleCountUseCase(
	txRunner ports.TxRunner,
	productRepo repository.ProductRepository,
	evaluator *alerts.Evaluator,
	notifier ports.Notifier,
	log *logger.Logger,
) *CycleCountUseCase {
	return &CycleCountUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		evaluator:   evaluator,
		notifier:    notifier,
		log:         log,
	}
}

// Create ejecuta la sesión de conteo en una sola transacción y devuelve el conteo
// con las métricas de merma agregadas.
func (uc *CycleCountUseCase) Create(ctx context.Context, actorID string, in dto.CreateCycleCountRequest) (*dto.CycleCountResponse, error) {
	if len(in.Items) == 0 {
		return nil, &domain.ValidationError{Field: "items", Reason: "el conteo no tiene líneas"}
	}
	if in.Reason == "" {
		return nil, &domain.ValidationError{Field: "reason", Reason: "requerido"}
	}
	seen := make(map[string]bool, len(in.Items))
	for _, line := range in.Items {
		if line.ProductID == "" {
			return nil, &domain.ValidationError{Field: "product_id", Reason: "requerido"}
		}
		if line.CountedQuantity < 0 {
			return nil, &domain.ValidationError{Field: "counted_quantity", Reason: "no puede ser negativa"}
		}
		if seen[line.ProductID] {
			return nil, &domain.ValidationError{Field: "product_id", Reason: "producto repetido en el conteo"}
		}
		seen[line.ProductID] = true
	}

	now := time.Now()
	count := &entity.CycleCount{
		ID:          uuid.New().String(),
		CreatedByID: actorID,
		Reason:      in.Reason,
		CreatedAt:   now,
	}
	touched := make([]string, 0, len(in.Items))

	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		// Bloqueo de todas las filas en orden ascendente de id; un id desconocido
		// aborta el conteo completo antes de tocar nada.
		ids := make([]string, 0, len(in.Items))
		for _, line := range in.Items {
			ids = append(ids, line.ProductID)
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

		totalShrinkage := int64(0)
		totalValue := decimal.Zero
		for _, line := range in.Items {
			p := products[line.ProductID]
			expected := p.CurrentStock
			delta := line.CountedQuantity - expected

			// La línea se persiste aunque el delta sea cero: completitud de auditoría.
			item := entity.CycleCountItem{
				ID:           uuid.New().String(),
				CycleCountID: count.ID,
				ProductID:    p.ID,
				ExpectedQty:  expected,
				CountedQty:   line.CountedQuantity,
				Delta:        delta,
				ValueDelta:   entity.ShrinkageValue(delta, p.UnitPrice),
			}
			count.Items = append(count.Items, item)
			totalShrinkage += item.Shrinkage()
			totalValue = totalValue.Add(item.ValueDelta)

			if delta == 0 {
				continue
			}
			movType := entity.MovementADJUSTMENTIn
			if delta < 0 {
				movType = entity.MovementADJUSTMENTOut
			}
			if err := r.Products.AdjustStock(ctx, p.ID, delta); err != nil {
				return err
			}
			p.CurrentStock = line.CountedQuantity
			mov := &entity.Movement{
				ID:          uuid.New().String(),
				ProductID:   p.ID,
				Type:        movType,
				Quantity:    delta,
				ReferenceID: count.ID,
				ActorID:     actorID,
				CreatedAt:   now,
			}
			if err := r.Movements.Create(ctx, mov); err != nil {
				return err
			}
			touched = append(touched, p.ID)
		}

		count.TotalShrinkageQty = totalShrinkage
		count.TotalShrinkageValue = totalValue
		return r.CycleCounts.Create(ctx, count)
	})
	if err != nil {
		return nil, err
	}

	metrics.CycleCountsProcessed.Inc()
	cause := "conteo físico " + count.ID
	for _, pid := range touched {
		product, err := uc.productRepo.GetByID(ctx, pid)
		if err != nil || product == nil {
			uc.log.Warn().Err(err).Str("product_id", pid).Msg("relectura post-commit fallida")
			continue
		}
		uc.notifier.ProductUpdated(ctx, product)
		uc.evaluator.Evaluate(ctx, product, cause)
	}
	return cycleCountToResponse(count), nil
}

func cycleCountToResponse(count *entity.CycleCount) *dto.CycleCountResponse {
	resp := &dto.CycleCountResponse{
		ID:                  count.ID,
		Reason:              count.Reason,
		TotalShrinkageQty:   count.TotalShrinkageQty,
		TotalShrinkageValue: count.TotalShrinkageValue,
		CreatedAt:           count.CreatedAt,
	}
	for _, it := range count.Items {
		resp.Items = append(resp.Items, dto.CycleCountItemResponse{
			ProductID:   it.ProductID,
			ExpectedQty: it.ExpectedQty,
			CountedQty:  it.CountedQty,
			Delta:       it.Delta,
			ValueDelta:  it.ValueDelta,
		})
	}
	return resp
}
