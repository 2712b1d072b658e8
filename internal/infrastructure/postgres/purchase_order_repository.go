package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/posventa-api/internal/domain"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste cabecera e ítems de la orden.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, status, created_by_id, expected_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.SupplierID, string(po.Status), po.CreatedByID, po.ExpectedDate, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i := range po.Items {
		it := &po.Items[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, purchase_order_id, product_id, quantity_ordered, quantity_received, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.PurchaseOrderID, it.ProductID, it.QuantityOrdered, it.QuantityReceived, it.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

// GetByID carga la orden con sus ítems; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate carga la orden bloqueando la cabecera (FOR UPDATE): serializa
// recepciones y cancelaciones concurrentes contra la misma orden.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, true)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, status, created_by_id, expected_date, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var po entity.PurchaseOrder
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&po.ID, &po.SupplierID, &status, &po.CreatedByID, &po.ExpectedDate, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po.Status = entity.POStatus(status)

	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, product_id, quantity_ordered, quantity_received, unit_cost
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.QuantityOrdered, &it.QuantityReceived, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, it)
	}
	return &po, rows.Err()
}

// UpdateStatus actualiza el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, poID string, status entity.POStatus) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`,
		poID, string(status),
	)
	if err != nil {
		return fmt.Errorf("update po status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItemReceived fija el acumulado recibido de un ítem. El CHECK
// quantity_received <= quantity_ordered de la tabla respalda el invariante.
func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, itemID string, quantityReceived int64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE purchase_order_items SET quantity_received = $2 WHERE id = $1`,
		itemID, quantityReceived,
	)
	if err != nil {
		return fmt.Errorf("update po item received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve órdenes paginadas (sin ítems), más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, supplier_id, status, created_by_id, expected_date, created_at, updated_at
		FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		var status string
		if err := rows.Scan(&po.ID, &po.SupplierID, &status, &po.CreatedByID, &po.ExpectedDate, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		po.Status = entity.POStatus(status)
		out = append(out, &po)
	}
	return out, rows.Err()
}
