package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/posventa-api/internal/application/alerts"
	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/application/inventory"
	"github.com/jhoicas/posventa-api/internal/domain"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
	"github.com/jhoicas/posventa-api/internal/infrastructure/memory"
	"github.com/jhoicas/posventa-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testActor = "00000000-0000-0000-0000-0000000000aa"

type nopNotifier struct{}

func (nopNotifier) ProductUpdated(context.Context, *entity.Product) {}
func (nopNotifier) AlertCreated(context.Context, *entity.Alert)     {}
func (nopNotifier) AlertResolved(context.Context, *entity.Alert)    {}

type fixture struct {
	store      *memory.Store
	repos      memory.Repos
	countUC    *inventory.CycleCountUseCase
	productUC  *inventory.ProductUseCase
	forecastUC *inventory.ForecastUseCase
	auditUC    *inventory.AuditUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepos(store)
	txRunner := memory.NewTxRunner(store)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	evaluator := alerts.NewEvaluator(repos.Alerts, repos.Forecasts, nopNotifier{}, log)
	return &fixture{
		store:      store,
		repos:      repos,
		countUC:    inventory.NewCycleCountUseCase(txRunner, repos.Products, evaluator, nopNotifier{}, log),
		productUC:  inventory.NewProductUseCase(txRunner, repos.Products, repos.Movements),
		forecastUC: inventory.NewForecastUseCase(repos.Products, repos.Forecasts, 0.5, 90, log),
		auditUC:    inventory.NewAuditUseCase(repos.Products, repos.Movements),
	}
}

func (f *fixture) seedProduct(id, sku string, stock int64, unitPrice int64) {
	f.store.SeedProduct(entity.Product{
		ID:           id,
		SKU:          sku,
		Name:         "Producto " + sku,
		CurrentStock: stock,
		UnitPrice:    decimal.NewFromInt(unitPrice),
	})
}

func (f *fixture) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.repos.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *fixture) movementsOf(t *testing.T, id string) []*entity.Movement {
	t.Helper()
	movs, err := f.repos.Movements.ListByProduct(context.Background(), id, nil, nil, 100, 0)
	require.NoError(t, err)
	return movs
}

func countLine(productID string, counted int64) dto.CycleCountLineRequest {
	return dto.CycleCountLineRequest{ProductID: productID, CountedQuantity: counted}
}

// ──────────────────────────────────────────────────────────────────────────────
// Conteo físico
// ──────────────────────────────────────────────────────────────────────────────

func TestCycleCount_FaltanteAjustaStockYRegistraMerma(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 10, 25)

	out, err := f.countUC.Create(context.Background(), testActor, dto.CreateCycleCountRequest{
		Reason: "conteo mensual",
		Items:  []dto.CycleCountLineRequest{countLine("p1", 7)},
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(10), out.Items[0].ExpectedQty)
	assert.Equal(t, int64(7), out.Items[0].CountedQty)
	assert.Equal(t, int64(-3), out.Items[0].Delta)
	assert.Equal(t, int64(7), f.stockOf(t, "p1"))

	// La merma solo cuenta deltas negativos, valorizada a precio de venta.
	assert.Equal(t, int64(3), out.TotalShrinkageQty)
	assert.True(t, decimal.NewFromInt(75).Equal(out.TotalShrinkageValue))

	movs := f.movementsOf(t, "p1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementADJUSTMENTOut, movs[0].Type)
	assert.Equal(t, int64(-3), movs[0].Quantity)
	assert.Equal(t, out.ID, movs[0].ReferenceID)
}

func TestCycleCount_SobranteNoEsMerma(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 10, 25)

	out, err := f.countUC.Create(context.Background(), testActor, dto.CreateCycleCountRequest{
		Reason: "conteo mensual",
		Items:  []dto.CycleCountLineRequest{countLine("p1", 12)},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.Items[0].Delta)
	assert.Equal(t, int64(12), f.stockOf(t, "p1"))
	assert.Equal(t, int64(0), out.TotalShrinkageQty)

	movs := f.movementsOf(t, "p1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementADJUSTMENTIn, movs[0].Type)
	assert.Equal(t, int64(2), movs[0].Quantity)
}

func TestCycleCount_DeltaCeroPersisteLineaSinMovimiento(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 10, 25)
	f.seedProduct("p2", "SKU-2", 4, 25)

	out, err := f.countUC.Create(context.Background(), testActor, dto.CreateCycleCountRequest{
		Reason: "conteo parcial",
		Items: []dto.CycleCountLineRequest{
			countLine("p1", 10),
			countLine("p2", 3),
		},
	})
	require.NoError(t, err)

	// La línea exacta queda en el registro del conteo pero no genera ajuste.
	require.Len(t, out.Items, 2)
	assert.Equal(t, int64(0), out.Items[0].Delta)
	assert.Empty(t, f.movementsOf(t, "p1"))
	require.Len(t, f.movementsOf(t, "p2"), 1)
}

func TestCycleCount_ProductoDesconocidoAbortaTodo(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 10, 25)

	_, err := f.countUC.Create(context.Background(), testActor, dto.CreateCycleCountRequest{
		Reason: "conteo mensual",
		Items: []dto.CycleCountLineRequest{
			countLine("p1", 7),
			countLine("fantasma", 3),
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Ni la línea válida de p1 se aplica.
	assert.Equal(t, int64(10), f.stockOf(t, "p1"))
	assert.Empty(t, f.movementsOf(t, "p1"))
}

func TestCycleCount_Validacion(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 10, 25)
	ctx := context.Background()

	_, err := f.countUC.Create(ctx, testActor, dto.CreateCycleCountRequest{Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = f.countUC.Create(ctx, testActor, dto.CreateCycleCountRequest{
		Items: []dto.CycleCountLineRequest{countLine("p1", 7)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin motivo")

	_, err = f.countUC.Create(ctx, testActor, dto.CreateCycleCountRequest{
		Reason: "x",
		Items:  []dto.CycleCountLineRequest{countLine("p1", -1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = f.countUC.Create(ctx, testActor, dto.CreateCycleCountRequest{
		Reason: "x",
		Items: []dto.CycleCountLineRequest{
			countLine("p1", 7),
			countLine("p1", 8),
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto repetido")
}
