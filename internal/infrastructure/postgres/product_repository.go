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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, current_stock, reorder_point,
	low_stock_threshold, max_stock, cost_price, unit_price, supplier_id,
	auto_reorder_enabled, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, current_stock, reorder_point,
			low_stock_threshold, max_stock, cost_price, unit_price, supplier_id,
			auto_reorder_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Name, product.Description,
		product.CurrentStock, product.ReorderPoint, product.LowStockThreshold,
		product.MaxStock, product.CostPrice, product.UnitPrice, product.SupplierID,
		product.AutoReorderEnabled, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU; nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT ... FOR UPDATE).
// Serializa las mutaciones de stock del mismo producto entre transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.CurrentStock, &p.ReorderPoint,
		&p.LowStockThreshold, &p.MaxStock, &p.CostPrice, &p.UnitPrice, &p.SupplierID,
		&p.AutoReorderEnabled, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update modifica los campos de catálogo (el stock solo se mueve con AdjustStock).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, reorder_point = $4,
			low_stock_threshold = $5, max_stock = $6, cost_price = $7, unit_price = $8,
			supplier_id = $9, auto_reorder_enabled = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.ReorderPoint,
		product.LowStockThreshold, product.MaxStock, product.CostPrice, product.UnitPrice,
		product.SupplierID, product.AutoReorderEnabled, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock suma delta (con signo) a current_stock. El decremento es condicional:
// la cláusula current_stock + $2 >= 0 cierra la carrera de dos ventas leyendo el
// mismo stock; cero filas afectadas en un delta negativo es stock insuficiente.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID string, delta int64) error {
	query := `
		UPDATE products
		SET current_stock = current_stock + $2, updated_at = now()
		WHERE id = $1 AND current_stock + $2 >= 0`
	tag, err := r.q.Exec(ctx, query, productID, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if delta < 0 {
			return domain.ErrInsufficientStock
		}
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve productos paginados por SKU.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListLowStock devuelve los productos en o por debajo de su umbral de stock bajo.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE current_stock <= GREATEST(reorder_point, low_stock_threshold)
		ORDER BY current_stock ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.CurrentStock, &p.ReorderPoint,
			&p.LowStockThreshold, &p.MaxStock, &p.CostPrice, &p.UnitPrice, &p.SupplierID,
			&p.AutoReorderEnabled, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
