package alerts_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/posventa-api/internal/application/alerts"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/infrastructure/memory"
	"github.com/jhoicas/posventa-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type nopNotifier struct{}

func (nopNotifier) ProductUpdated(context.Context, *entity.Product) {}
func (nopNotifier) AlertCreated(context.Context, *entity.Alert)     {}
func (nopNotifier) AlertResolved(context.Context, *entity.Alert)    {}

type fixture struct {
	store     *memory.Store
	repos     memory.Repos
	evaluator *alerts.Evaluator
	uc        *alerts.AlertUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepos(store)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return &fixture{
		store:     store,
		repos:     repos,
		evaluator: alerts.NewEvaluator(repos.Alerts, repos.Forecasts, nopNotifier{}, log),
		uc:        alerts.NewAlertUseCase(repos.Alerts),
	}
}

func product(stock int64) *entity.Product {
	return &entity.Product{
		ID:                "p1",
		SKU:               "SKU-1",
		Name:              "Café molido",
		CurrentStock:      stock,
		LowStockThreshold: 5,
	}
}

func (f *fixture) unresolved(t *testing.T, alertType entity.AlertType) *entity.Alert {
	t.Helper()
	a, err := f.repos.Alerts.GetUnresolved(context.Background(), "p1", alertType)
	require.NoError(t, err)
	return a
}

func (f *fixture) allAlerts(t *testing.T) []*entity.Alert {
	t.Helper()
	out, err := f.repos.Alerts.List(context.Background(), false, 100, 0)
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de riesgo de quiebre
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_StockBajoCreaAlerta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.evaluator.Evaluate(ctx, product(3), "")

	a := f.unresolved(t, entity.AlertLowStock)
	require.NotNil(t, a)
	assert.Equal(t, entity.SeverityMedium, a.Severity)
	assert.Contains(t, a.Message, "stock bajo")
	assert.Nil(t, f.unresolved(t, entity.AlertOutOfStock))
}

func TestEvaluate_ReevaluarActualizaEnSitio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.evaluator.Evaluate(ctx, product(3), "")
	f.evaluator.Evaluate(ctx, product(2), "")

	// Sigue habiendo una sola alerta, con el mensaje del último estado.
	require.Len(t, f.allAlerts(t), 1)
	a := f.unresolved(t, entity.AlertLowStock)
	require.NotNil(t, a)
	assert.Contains(t, a.Message, "stock bajo: 2")
}

func TestEvaluate_AgotadoReemplazaStockBajo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.evaluator.Evaluate(ctx, product(3), "")
	f.evaluator.Evaluate(ctx, product(0), "")

	// La clasificación es excluyente: OUT_OF_STOCK vigente, LOW_STOCK resuelta.
	out := f.unresolved(t, entity.AlertOutOfStock)
	require.NotNil(t, out)
	assert.Equal(t, entity.SeverityHigh, out.Severity)
	assert.Nil(t, f.unresolved(t, entity.AlertLowStock))

	all := f.allAlerts(t)
	require.Len(t, all, 2)
	for _, a := range all {
		if a.Type == entity.AlertLowStock {
			assert.True(t, a.IsResolved)
			assert.True(t, a.IsRead)
			assert.NotNil(t, a.ResolvedAt)
		}
	}
}

func TestEvaluate_RecuperacionResuelveConCausa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.evaluator.Evaluate(ctx, product(3), "")
	f.evaluator.Evaluate(ctx, product(40), "recepción de orden de compra OC-1")

	assert.Nil(t, f.unresolved(t, entity.AlertLowStock))
	all := f.allAlerts(t)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsResolved)
	assert.True(t, strings.HasSuffix(all[0].Message, "(resuelta: recepción de orden de compra OC-1)"))
}

func TestEvaluate_RecuperacionSinCausaUsaSufijoGenerico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.evaluator.Evaluate(ctx, product(3), "")
	f.evaluator.Evaluate(ctx, product(40), "")

	all := f.allAlerts(t)
	require.Len(t, all, 1)
	assert.True(t, strings.HasSuffix(all[0].Message, "(resuelta: condición superada)"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Sobrestock
// ──────────────────────────────────────────────────────────────────────────────

func overstocked(stock, max int64) *entity.Product {
	p := product(stock)
	p.MaxStock = &max
	return p
}

func TestEvaluate_SobrestockRequiereTecho(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Sin MaxStock definido no hay regla de sobrestock, por alto que sea el stock.
	f.evaluator.Evaluate(ctx, product(10000), "")
	assert.Nil(t, f.unresolved(t, entity.AlertOverstock))

	f.evaluator.Evaluate(ctx, overstocked(150, 100), "")
	a := f.unresolved(t, entity.AlertOverstock)
	require.NotNil(t, a)
	assert.Equal(t, entity.SeverityLow, a.Severity)
}

func TestEvaluate_PronosticoAltoSuprimeSobrestock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// La demanda pronosticada supera el stock: el exceso sobre el techo se tolera.
	err := f.repos.Forecasts.Upsert(ctx, &entity.DemandForecast{
		ProductID: "p1",
		Period:    time.Now().Format("2006-01"),
		Predicted: 200,
		Alpha:     0.5,
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	f.evaluator.Evaluate(ctx, overstocked(150, 100), "")
	assert.Nil(t, f.unresolved(t, entity.AlertOverstock))
}

func TestEvaluate_SobrestockSeResuelveAlBajar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.evaluator.Evaluate(ctx, overstocked(150, 100), "")
	require.NotNil(t, f.unresolved(t, entity.AlertOverstock))

	f.evaluator.Evaluate(ctx, overstocked(80, 100), "")
	assert.Nil(t, f.unresolved(t, entity.AlertOverstock))
}

// ──────────────────────────────────────────────────────────────────────────────
// Caso de uso de lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltraYOrdenaPorSeveridad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.evaluator.Evaluate(ctx, overstocked(0, 100), "")

	p2 := product(2)
	p2.ID = "p2"
	f.evaluator.Evaluate(ctx, p2, "")

	all, err := f.uc.List(ctx, true, 100, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, string(entity.AlertOutOfStock), all[0].Type, "mayor severidad primero")
	assert.Equal(t, string(entity.AlertLowStock), all[1].Type)
}

func TestMarkRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.evaluator.Evaluate(ctx, product(0), "")
	a := f.unresolved(t, entity.AlertOutOfStock)
	require.NotNil(t, a)
	require.False(t, a.IsRead)

	require.NoError(t, f.uc.MarkRead(ctx, a.ID))

	after := f.unresolved(t, entity.AlertOutOfStock)
	require.NotNil(t, after)
	assert.True(t, after.IsRead)
}
