package repository

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// AlertRepository puerto de persistencia para alertas.
// El índice único parcial sobre (product_id, type) WHERE NOT is_resolved respalda
// el invariante de a-lo-sumo-una-sin-resolver.
type AlertRepository interface {
	// GetUnresolved devuelve la alerta sin resolver para (producto, tipo), o nil.
	GetUnresolved(ctx context.Context, productID string, alertType entity.AlertType) (*entity.Alert, error)
	Create(ctx context.Context, alert *entity.Alert) error
	Update(ctx context.Context, alert *entity.Alert) error
	List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*entity.Alert, error)
	MarkRead(ctx context.Context, id string) error
}
