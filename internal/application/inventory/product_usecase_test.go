package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/domain"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_StockInicialEntraAlLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.productUC.Create(ctx, testActor, dto.CreateProductRequest{
		SKU:          "SKU-1",
		Name:         "Café molido",
		InitialStock: 12,
		UnitPrice:    decimal.NewFromInt(50),
		CostPrice:    decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.CurrentStock)

	movs := f.movementsOf(t, out.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementRESTOCK, movs[0].Type)
	assert.Equal(t, int64(12), movs[0].Quantity)
	require.NotNil(t, movs[0].CostPrice)
	assert.True(t, decimal.NewFromInt(30).Equal(*movs[0].CostPrice))
}

func TestProductCreate_SinStockInicialNoGeneraMovimiento(t *testing.T) {
	f := newFixture(t)

	out, err := f.productUC.Create(context.Background(), testActor, dto.CreateProductRequest{
		SKU:       "SKU-1",
		Name:      "Café molido",
		UnitPrice: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.Empty(t, f.movementsOf(t, out.ID))
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := dto.CreateProductRequest{SKU: "SKU-1", Name: "Café molido"}

	_, err := f.productUC.Create(ctx, testActor, in)
	require.NoError(t, err)

	_, err = f.productUC.Create(ctx, testActor, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_NoTocaElStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.productUC.Create(ctx, testActor, dto.CreateProductRequest{
		SKU:          "SKU-1",
		Name:         "Café molido",
		InitialStock: 12,
	})
	require.NoError(t, err)

	updated, err := f.productUC.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name:      "Café molido premium",
		UnitPrice: decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	assert.Equal(t, "Café molido premium", updated.Name)
	assert.Equal(t, int64(12), updated.CurrentStock)
	assert.Equal(t, int64(12), f.stockOf(t, created.ID))
}

func TestProductListLowStock(t *testing.T) {
	f := newFixture(t)
	f.store.SeedProduct(entity.Product{
		ID: "bajo", SKU: "SKU-1", Name: "Bajo",
		CurrentStock: 2, LowStockThreshold: 5,
	})
	f.store.SeedProduct(entity.Product{
		ID: "sano", SKU: "SKU-2", Name: "Sano",
		CurrentStock: 50, LowStockThreshold: 5,
	})

	low, err := f.productUC.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "bajo", low[0].ID)
}
