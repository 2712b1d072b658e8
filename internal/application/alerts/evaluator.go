package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/posventa-api/internal/application/ports"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
	"github.com/jhoicas/posventa-api/pkg/logger"
	"github.com/jhoicas/posventa-api/pkg/metrics"
)

// Evaluator evalúa el estado de alertas de un producto tras cada mutación de stock.
// Es lógica pura sobre el estado actual y la demanda pronosticada; sus únicos efectos
// son upserts de alertas y eventos al Notifier. Corre después del commit: sus fallas
// se loguean y nunca revierten la operación que lo disparó.
type Evaluator struct {
	alertRepo    repository.AlertRepository
	forecastRepo repository.ForecastRepository
	notifier     ports.Notifier
	log          *logger.Logger
}

// NewEvaluator construye el evaluador.
func NewEvaluator(
	alertRepo repository.AlertRepository,
	forecastRepo repository.ForecastRepository,
	notifier ports.Notifier,
	log *logger.Logger,
) *Evaluator {
	return &Evaluator{alertRepo: alertRepo, forecastRepo: forecastRepo, notifier: notifier, log: log}
}

// Evaluate clasifica el riesgo de quiebre y sobrestock del producto y ajusta las
// alertas por upsert/resolución. cause describe la acción correctiva que disparó la
// evaluación (ej. "recepción de orden de compra OC-123"); vacío para ventas.
func (e *Evaluator) Evaluate(ctx context.Context, product *entity.Product, cause string) {
	if err := e.evaluate(ctx, product, cause); err != nil {
		e.log.Error().Err(err).
			Str("product_id", product.ID).
			Msg("evaluación de alertas fallida")
	}
}

func (e *Evaluator) evaluate(ctx context.Context, product *entity.Product, cause string) error {
	// Riesgo de quiebre: la clasificación es excluyente, el nivel vigente
	// reemplaza (resuelve) al otro.
	switch {
	case product.CurrentStock <= 0:
		msg := fmt.Sprintf("Producto %s (%s) agotado: stock %d", product.Name, product.SKU, product.CurrentStock)
		if err := e.upsert(ctx, product, entity.AlertOutOfStock, msg, entity.SeverityHigh); err != nil {
			return err
		}
		if err := e.resolve(ctx, product, entity.AlertLowStock, cause); err != nil {
			return err
		}
	case product.CurrentStock <= product.LowStockLimit():
		msg := fmt.Sprintf("Producto %s (%s) con stock bajo: %d (umbral %d)",
			product.Name, product.SKU, product.CurrentStock, product.LowStockLimit())
		if err := e.upsert(ctx, product, entity.AlertLowStock, msg, entity.SeverityMedium); err != nil {
			return err
		}
		if err := e.resolve(ctx, product, entity.AlertOutOfStock, cause); err != nil {
			return err
		}
	default:
		if err := e.resolve(ctx, product, entity.AlertOutOfStock, cause); err != nil {
			return err
		}
		if err := e.resolve(ctx, product, entity.AlertLowStock, cause); err != nil {
			return err
		}
	}

	// Riesgo de sobrestock: solo con techo definido y stock por encima del techo
	// y de la demanda pronosticada.
	if product.MaxStock != nil && product.CurrentStock > *product.MaxStock && e.aboveForecast(ctx, product) {
		msg := fmt.Sprintf("Producto %s (%s) sobre stock máximo: %d (máx %d)",
			product.Name, product.SKU, product.CurrentStock, *product.MaxStock)
		return e.upsert(ctx, product, entity.AlertOverstock, msg, entity.SeverityLow)
	}
	return e.resolve(ctx, product, entity.AlertOverstock, cause)
}

// aboveForecast compara el stock contra la demanda pronosticada del período.
// Sin pronóstico disponible se asume demanda cero (el techo manda).
func (e *Evaluator) aboveForecast(ctx context.Context, product *entity.Product) bool {
	forecast, err := e.forecastRepo.Get(ctx, product.ID)
	if err != nil {
		e.log.Warn().Err(err).Str("product_id", product.ID).Msg("lectura de pronóstico fallida")
		return true
	}
	if forecast == nil {
		return true
	}
	return float64(product.CurrentStock) > forecast.Predicted
}

// upsert aplica la regla de a-lo-sumo-una-sin-resolver: si existe alerta sin
// resolver del mismo (producto, tipo) se actualiza mensaje y severidad en sitio;
// si no, se inserta y se notifica.
func (e *Evaluator) upsert(ctx context.Context, product *entity.Product, alertType entity.AlertType, message string, severity int) error {
	now := time.Now()
	existing, err := e.alertRepo.GetUnresolved(ctx, product.ID, alertType)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Message = message
		existing.Severity = severity
		existing.UpdatedAt = now
		return e.alertRepo.Update(ctx, existing)
	}
	alert := &entity.Alert{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      alertType,
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.alertRepo.Create(ctx, alert); err != nil {
		return err
	}
	metrics.AlertsRaised.WithLabelValues(string(alertType)).Inc()
	e.notifier.AlertCreated(ctx, alert)
	return nil
}

// resolve marca como resuelta (y leída) la alerta sin resolver del tipo dado, si
// existe, anexando el sufijo explicativo con la causa correctiva.
func (e *Evaluator) resolve(ctx context.Context, product *entity.Product, alertType entity.AlertType, cause string) error {
	existing, err := e.alertRepo.GetUnresolved(ctx, product.ID, alertType)
	if err != nil || existing == nil {
		return err
	}
	now := time.Now()
	suffix := " (resuelta: condición superada)"
	if cause != "" {
		suffix = " (resuelta: " + cause + ")"
	}
	existing.Message += suffix
	existing.IsResolved = true
	existing.IsRead = true
	existing.ResolvedAt = &now
	existing.UpdatedAt = now
	if err := e.alertRepo.Update(ctx, existing); err != nil {
		return err
	}
	metrics.AlertsResolved.WithLabelValues(string(alertType)).Inc()
	e.notifier.AlertResolved(ctx, existing)
	return nil
}
