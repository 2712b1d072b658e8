package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/posventa-api/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría ledger vs stock
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_AltaConStockInicialCuadra(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.productUC.Create(ctx, testActor, dto.CreateProductRequest{
		SKU:          "SKU-1",
		Name:         "Café molido",
		InitialStock: 12,
		UnitPrice:    decimal.NewFromInt(50),
		CostPrice:    decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	report, err := f.auditUC.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Inconsistent)
	require.Len(t, report.Lines, 1)
	assert.Equal(t, created.ID, report.Lines[0].ProductID)
	assert.Equal(t, int64(12), report.Lines[0].CurrentStock)
	assert.Equal(t, int64(12), report.Lines[0].LedgerSum)
	assert.True(t, report.Lines[0].Consistent)
}

func TestReconcile_StockSinMovimientosDescuadra(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Producto sembrado directo en el almacén, sin movimiento de respaldo.
	f.seedProduct("p1", "SKU-1", 8, 25)

	report, err := f.auditUC.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inconsistent)
	require.Len(t, report.Lines, 1)
	assert.Equal(t, int64(8), report.Lines[0].CurrentStock)
	assert.Equal(t, int64(0), report.Lines[0].LedgerSum)
	assert.False(t, report.Lines[0].Consistent)
}

func TestReconcile_MezclaConsistentesEInconsistentes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.productUC.Create(ctx, testActor, dto.CreateProductRequest{
		SKU:          "SKU-1",
		Name:         "Café molido",
		InitialStock: 5,
		UnitPrice:    decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	f.seedProduct("p-desc", "SKU-2", 3, 25)

	report, err := f.auditUC.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inconsistent)
	assert.Len(t, report.Lines, 2)
}
