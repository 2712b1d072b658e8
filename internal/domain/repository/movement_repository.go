package repository

import (
	"context"
	"time"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// MovementRepository puerto de persistencia del ledger de movimientos (append-only).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// SumByProduct suma las cantidades con signo de todos los movimientos del producto
	// (reconciliación de auditoría contra current_stock).
	SumByProduct(ctx context.Context, productID string) (int64, error)
}
