// Package notify implementa el puerto Notifier. La implementación actual solo
// registra los eventos; un despachador real (websocket, email) se conecta aquí
// sin tocar a los casos de uso.
package notify

import (
	"context"

	"github.com/jhoicas/posventa-api/internal/application/ports"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/pkg/logger"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier notificador que emite cada evento como línea de log estructurada.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador sobre el logger dado.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("notifier")}
}

func (n *LogNotifier) ProductUpdated(_ context.Context, p *entity.Product) {
	n.log.Info().
		Str("event", "product_updated").
		Str("product_id", p.ID).
		Str("sku", p.SKU).
		Int64("current_stock", p.CurrentStock).
		Msg("stock actualizado")
}

func (n *LogNotifier) AlertCreated(_ context.Context, a *entity.Alert) {
	n.log.Info().
		Str("event", "alert_created").
		Str("alert_id", a.ID).
		Str("product_id", a.ProductID).
		Str("type", string(a.Type)).
		Int("severity", a.Severity).
		Msg(a.Message)
}

func (n *LogNotifier) AlertResolved(_ context.Context, a *entity.Alert) {
	n.log.Info().
		Str("event", "alert_resolved").
		Str("alert_id", a.ID).
		Str("product_id", a.ProductID).
		Str("type", string(a.Type)).
		Msg("alerta resuelta")
}
