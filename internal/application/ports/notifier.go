package ports

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// Notifier canal de eventos en tiempo real hacia suscriptores de UI y despachadores
// externos (email/WhatsApp). Se invoca después del commit, fuera de la transacción;
// es fire-and-forget: sus fallas se loguean y jamás provocan rollback ni reintento.
type Notifier interface {
	ProductUpdated(ctx context.Context, product *entity.Product)
	AlertCreated(ctx context.Context, alert *entity.Alert)
	AlertResolved(ctx context.Context, alert *entity.Alert)
}
