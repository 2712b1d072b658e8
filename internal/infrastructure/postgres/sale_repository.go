package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste cabecera e ítems de la venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, total_amount, payment_method, actor_id, client_id, device_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.TotalAmount, sale.PaymentMethod, sale.ActorID,
		sale.ClientID, sale.DeviceID, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for i := range sale.Items {
		it := &sale.Items[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.SaleID, it.ProductID, it.Quantity, it.UnitPrice, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID carga la venta con sus ítems; nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, total_amount, payment_method, actor_id, client_id, device_id, created_at
		FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.TotalAmount, &s.PaymentMethod, &s.ActorID, &s.ClientID, &s.DeviceID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, line_total
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	return &s, rows.Err()
}
