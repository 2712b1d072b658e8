package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el ledger es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, type, quantity, reference_id, supplier_id, cost_price, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, string(movement.Type), movement.Quantity,
		movement.ReferenceID, movement.SupplierID, movement.CostPrice,
		movement.ActorID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct historial del producto, más reciente primero, con rango opcional.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, type, quantity, reference_id, supplier_id, cost_price, actor_id, created_at
		FROM movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var typ string
		if err := rows.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.ReferenceID,
			&m.SupplierID, &m.CostPrice, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		out = append(out, &m)
	}
	return out, rows.Err()
}

// SumByProduct suma las cantidades con signo del producto (auditoría ledger-vs-stock).
func (r *MovementRepo) SumByProduct(ctx context.Context, productID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM movements WHERE product_id = $1`,
		productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}
