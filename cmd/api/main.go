package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/posventa-api/internal/application/alerts"
	"github.com/jhoicas/posventa-api/internal/application/auth"
	"github.com/jhoicas/posventa-api/internal/application/inventory"
	"github.com/jhoicas/posventa-api/internal/application/purchasing"
	"github.com/jhoicas/posventa-api/internal/application/sales"
	"github.com/jhoicas/posventa-api/internal/infrastructure/notify"
	"github.com/jhoicas/posventa-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/posventa-api/internal/interfaces/http"
	"github.com/jhoicas/posventa-api/pkg/config"
	"github.com/jhoicas/posventa-api/pkg/logger"
	"github.com/jhoicas/posventa-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	syncRepo := postgres.NewSyncRepository(pool)
	forecastRepo := postgres.NewForecastRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := notify.NewLogNotifier(log)
	evaluator := alerts.NewEvaluator(alertRepo, forecastRepo, notifier, log.Component("alertas"))

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := inventory.NewProductUseCase(txRunner, productRepo, movementRepo)
	saleUC := sales.NewSaleUseCase(txRunner, productRepo, evaluator, notifier, log.Component("ventas"))
	syncUC := sales.NewSyncUseCase(txRunner, saleUC, syncRepo, log.Component("sync"))
	poUC := purchasing.NewPurchaseOrderUseCase(txRunner, poRepo, productRepo, evaluator, notifier, log.Component("compras"))
	cycleCountUC := inventory.NewCycleCountUseCase(txRunner, productRepo, evaluator, notifier, log.Component("conteos"))
	auditUC := inventory.NewAuditUseCase(productRepo, movementRepo)
	forecastUC := inventory.NewForecastUseCase(productRepo, forecastRepo, cfg.Forecast.Alpha, cfg.Forecast.HistoryDays, log.Component("pronostico"))
	alertUC := alerts.NewAlertUseCase(alertRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if httpRouter.MountSwagger(app, "./docs/swagger.json", "Posventa API") {
		log.Info().Msg("swagger UI disponible en /docs")
	} else {
		log.Warn().Str("path", "./docs/swagger.json").Msg("especificación swagger ausente, UI deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProductUC:       productUC,
		SaleUC:          saleUC,
		SyncUC:          syncUC,
		PurchaseOrderUC: poUC,
		CycleCountUC:    cycleCountUC,
		AuditUC:         auditUC,
		ForecastUC:      forecastUC,
		AlertUC:         alertUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metrics.NewServer(cfg.Metrics.Addr)
		go func() {
			if err := metricsSrv.Start(); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("métricas Prometheus expuestas")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor de métricas")
		}
	}

	log.Info().Msg("aplicación detenida")
}
