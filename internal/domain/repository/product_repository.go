package repository

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product (DIP).
// GetForUpdate y los mutadores de stock solo tienen sentido dentro de una transacción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)

	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE).
	// Las operaciones multi-producto deben bloquear en orden ascendente de id.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// AdjustStock suma delta (con signo) a current_stock. Para deltas negativos la
	// implementación debe condicionar a current_stock >= -delta y reportar las filas
	// afectadas = 0 como domain.ErrInsufficientStock: nunca leer-y-escribir sin guarda.
	AdjustStock(ctx context.Context, productID string, delta int64) error
}
