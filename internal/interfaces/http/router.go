package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/posventa-api/internal/application/alerts"
	"github.com/jhoicas/posventa-api/internal/application/auth"
	"github.com/jhoicas/posventa-api/internal/application/inventory"
	"github.com/jhoicas/posventa-api/internal/application/purchasing"
	"github.com/jhoicas/posventa-api/internal/application/sales"
	"github.com/jhoicas/posventa-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *inventory.ProductUseCase
	SaleUC          *sales.SaleUseCase
	SyncUC          *sales.SyncUseCase
	PurchaseOrderUC *purchasing.PurchaseOrderUseCase
	CycleCountUC    *inventory.CycleCountUseCase
	AuditUC         *inventory.AuditUseCase
	ForecastUC      *inventory.ForecastUseCase
	AlertUC         *alerts.AlertUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Guardas por rol. El admin pasa por todas.
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	pos := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products (lectura para todos los autenticados; escritura de bodega)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", warehouse, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", warehouse, productHandler.Update)
	products.Get("/:id/movements", productHandler.Movements)

	// Sales (punto de venta)
	salesGroup := protected.Group("/sales", pos)
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)

	// Sync offline (mismo permiso que vender)
	syncGroup := protected.Group("/sync", pos)
	syncHandler := NewSyncHandler(deps.SyncUC)
	syncGroup.Post("/sales", syncHandler.Sync)

	// Purchase orders (bodega)
	poGroup := protected.Group("/purchase-orders", warehouse)
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	poGroup.Post("/", poHandler.Create)
	poGroup.Get("/", poHandler.List)
	poGroup.Get("/:id", poHandler.GetByID)
	poGroup.Post("/:id/receive", poHandler.Receive)
	poGroup.Post("/:id/cancel", poHandler.Cancel)

	// Inventory (conteos de bodega; auditoría y pronóstico solo admin)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.CycleCountUC, deps.AuditUC, deps.ForecastUC)
	invGroup.Post("/cycle-counts", warehouse, inventoryHandler.CreateCycleCount)
	invGroup.Get("/audit", adminOnly, inventoryHandler.Audit)
	invGroup.Post("/forecasts/recompute", adminOnly, inventoryHandler.RecomputeForecasts)

	// Alerts (todos los autenticados)
	alertGroup := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alertGroup.Get("/", alertHandler.List)
	alertGroup.Post("/:id/read", alertHandler.MarkRead)
}
