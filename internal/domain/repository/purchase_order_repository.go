package repository

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate carga la orden con sus ítems bloqueando la cabecera
	// (serializa recepciones concurrentes contra la misma orden).
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, poID string, status entity.POStatus) error
	UpdateItemReceived(ctx context.Context, itemID string, quantityReceived int64) error
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
}
