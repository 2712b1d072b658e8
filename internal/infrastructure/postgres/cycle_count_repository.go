package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

var _ repository.CycleCountRepository = (*CycleCountRepo)(nil)

// CycleCountRepo implementación sobre PostgreSQL (usable con pool o tx).
type CycleCountRepo struct {
	q Querier
}

// NewCycleCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCycleCountRepository(q Querier) *CycleCountRepo {
	return &CycleCountRepo{q: q}
}

// Create persiste cabecera e ítems del conteo.
func (r *CycleCountRepo) Create(ctx context.Context, count *entity.CycleCount) error {
	query := `
		INSERT INTO cycle_counts (id, created_by_id, reason, total_shrinkage_qty, total_shrinkage_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		count.ID, count.CreatedByID, count.Reason,
		count.TotalShrinkageQty, count.TotalShrinkageValue, count.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cycle count: %w", err)
	}
	for i := range count.Items {
		it := &count.Items[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO cycle_count_items (id, cycle_count_id, product_id, expected_qty, counted_qty, delta, value_delta)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.CycleCountID, it.ProductID, it.ExpectedQty, it.CountedQty, it.Delta, it.ValueDelta,
		)
		if err != nil {
			return fmt.Errorf("insert cycle count item: %w", err)
		}
	}
	return nil
}

// GetByID carga el conteo con sus ítems; nil si no existe.
func (r *CycleCountRepo) GetByID(ctx context.Context, id string) (*entity.CycleCount, error) {
	var c entity.CycleCount
	err := r.q.QueryRow(ctx, `
		SELECT id, created_by_id, reason, total_shrinkage_qty, total_shrinkage_value, created_at
		FROM cycle_counts WHERE id = $1`, id,
	).Scan(&c.ID, &c.CreatedByID, &c.Reason, &c.TotalShrinkageQty, &c.TotalShrinkageValue, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cycle count: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, cycle_count_id, product_id, expected_qty, counted_qty, delta, value_delta
		FROM cycle_count_items WHERE cycle_count_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get cycle count items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.CycleCountItem
		if err := rows.Scan(&it.ID, &it.CycleCountID, &it.ProductID, &it.ExpectedQty, &it.CountedQty, &it.Delta, &it.ValueDelta); err != nil {
			return nil, fmt.Errorf("scan cycle count item: %w", err)
		}
		c.Items = append(c.Items, it)
	}
	return &c, rows.Err()
}
