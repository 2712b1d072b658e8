package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/posventa-api/internal/application/alerts"
	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/application/sales"
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
	store  *memory.Store
	repos  memory.Repos
	saleUC *sales.SaleUseCase
	syncUC *sales.SyncUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepos(store)
	txRunner := memory.NewTxRunner(store)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	evaluator := alerts.NewEvaluator(repos.Alerts, repos.Forecasts, nopNotifier{}, log)
	saleUC := sales.NewSaleUseCase(txRunner, repos.Products, evaluator, nopNotifier{}, log)
	syncUC := sales.NewSyncUseCase(txRunner, saleUC, repos.Sync, log)
	return &fixture{store: store, repos: repos, saleUC: saleUC, syncUC: syncUC}
}

func (f *fixture) seedProduct(id, sku string, stock, threshold int64) {
	f.store.SeedProduct(entity.Product{
		ID:                id,
		SKU:               sku,
		Name:              "Producto " + sku,
		CurrentStock:      stock,
		LowStockThreshold: threshold,
		UnitPrice:         decimal.NewFromInt(100),
	})
}

func (f *fixture) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.repos.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *fixture) ledgerSum(t *testing.T, id string) int64 {
	t.Helper()
	sum, err := f.repos.Movements.SumByProduct(context.Background(), id)
	require.NoError(t, err)
	return sum
}

func saleItem(productID string, qty int64, price int64) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta multi-ítem atómica
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DecrementaStockYRegistraMovimientos(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 10, 2)
	f.seedProduct("p2", "SKU-2", 5, 2)

	out, err := f.saleUC.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{saleItem("p1", 3, 100), saleItem("p2", 2, 50)},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, int64(7), f.stockOf(t, "p1"))
	assert.Equal(t, int64(3), f.stockOf(t, "p2"))

	// El ledger registra las salidas con signo negativo.
	assert.Equal(t, int64(-3), f.ledgerSum(t, "p1"))
	assert.Equal(t, int64(-2), f.ledgerSum(t, "p2"))

	// Totales: 3*100 + 2*50 = 400.
	assert.True(t, decimal.NewFromInt(400).Equal(out.TotalAmount),
		"total esperado 400, obtenido %s", out.TotalAmount)
	assert.Len(t, out.Items, 2)

	// La venta quedó persistida con sus ítems.
	sale, err := f.repos.Sales.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Len(t, sale.Items, 2)
}

func TestCreateSale_StockInsuficiente_NoAplicaNada(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 10, 2)
	f.seedProduct("p2", "SKU-2", 1, 0)

	// El segundo ítem excede el stock: la venta completa debe rechazarse.
	_, err := f.saleUC.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{saleItem("p1", 3, 100), saleItem("p2", 2, 50)},
		PaymentMethod: entity.PaymentCash,
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p2", stockErr.ProductID)
	assert.Equal(t, int64(2), stockErr.Requested)
	assert.Equal(t, int64(1), stockErr.Available)

	// Todo-o-nada: ni el primer ítem tocó stock ni hay movimientos.
	assert.Equal(t, int64(10), f.stockOf(t, "p1"))
	assert.Equal(t, int64(1), f.stockOf(t, "p2"))
	assert.Equal(t, int64(0), f.ledgerSum(t, "p1"))
	assert.Equal(t, int64(0), f.ledgerSum(t, "p2"))
}

func TestCreateSale_MismoProductoEnVariasLineas_SumaCantidades(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 5, 0)

	// 3 + 3 = 6 > 5: insuficiente aunque cada línea quepa por separado.
	_, err := f.saleUC.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{saleItem("p1", 3, 100), saleItem("p1", 3, 100)},
		PaymentMethod: entity.PaymentCard,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), f.stockOf(t, "p1"))
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 10, 2)

	_, err := f.saleUC.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{saleItem("p1", 1, 100), saleItem("no-existe", 1, 100)},
		PaymentMethod: entity.PaymentCash,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(10), f.stockOf(t, "p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_Validacion(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 10, 2)
	ctx := context.Background()

	casos := []struct {
		nombre string
		in     dto.CreateSaleRequest
	}{
		{"sin items", dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash}},
		{"cantidad cero", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{saleItem("p1", 0, 100)},
			PaymentMethod: entity.PaymentCash,
		}},
		{"cantidad negativa", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{saleItem("p1", -2, 100)},
			PaymentMethod: entity.PaymentCash,
		}},
		{"metodo de pago desconocido", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{saleItem("p1", 1, 100)},
			PaymentMethod: "cheque",
		}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.saleUC.CreateSale(ctx, testActor, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, int64(10), f.stockOf(t, "p1"), "ninguna venta inválida debe tocar stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas post-commit
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DisparaAlertaDeStockBajo(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 10, 5)

	_, err := f.saleUC.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{saleItem("p1", 6, 100)},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	alert, err := f.repos.Alerts.GetUnresolved(context.Background(), "p1", entity.AlertLowStock)
	require.NoError(t, err)
	require.NotNil(t, alert, "al quedar en 4 <= umbral 5 debe existir alerta LOW_STOCK")
	assert.Equal(t, entity.SeverityMedium, alert.Severity)
}

func TestCreateSale_AgotadoReemplazaStockBajo(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "SKU-1", 4, 5)
	ctx := context.Background()

	// Primera venta: queda en 2, stock bajo.
	_, err := f.saleUC.CreateSale(ctx, testActor, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{saleItem("p1", 2, 100)},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	// Segunda venta: queda en 0, la clasificación es excluyente.
	_, err = f.saleUC.CreateSale(ctx, testActor, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{saleItem("p1", 2, 100)},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	out, err := f.repos.Alerts.GetUnresolved(ctx, "p1", entity.AlertOutOfStock)
	require.NoError(t, err)
	assert.NotNil(t, out, "debe existir OUT_OF_STOCK sin resolver")

	low, err := f.repos.Alerts.GetUnresolved(ctx, "p1", entity.AlertLowStock)
	require.NoError(t, err)
	assert.Nil(t, low, "LOW_STOCK debe quedar resuelta al pasar a agotado")
}
