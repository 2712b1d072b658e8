package repository

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas y sus ítems.
type SaleRepository interface {
	// Create persiste cabecera e ítems; los ítems viven y mueren con la venta.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
}
