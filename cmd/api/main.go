package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kioscosoft/distribuidora-api/internal/application/audit"
	"github.com/kioscosoft/distribuidora-api/internal/application/auth"
	"github.com/kioscosoft/distribuidora-api/internal/application/cash"
	"github.com/kioscosoft/distribuidora-api/internal/application/catalog"
	"github.com/kioscosoft/distribuidora-api/internal/application/notifications"
	"github.com/kioscosoft/distribuidora-api/internal/application/orders"
	"github.com/kioscosoft/distribuidora-api/internal/application/reports"
	"github.com/kioscosoft/distribuidora-api/internal/application/routes"
	"github.com/kioscosoft/distribuidora-api/internal/application/shipping"
	infracache "github.com/kioscosoft/distribuidora-api/internal/infrastructure/cache"
	infraexcel "github.com/kioscosoft/distribuidora-api/internal/infrastructure/excel"
	infrapdf "github.com/kioscosoft/distribuidora-api/internal/infrastructure/pdf"
	"github.com/kioscosoft/distribuidora-api/internal/infrastructure/postgres"
	httpRouter "github.com/kioscosoft/distribuidora-api/internal/interfaces/http"
	"github.com/kioscosoft/distribuidora-api/pkg/config"
	"github.com/kioscosoft/distribuidora-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	routeRepo := postgres.NewRouteRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	shiftRepo := postgres.NewCashShiftRepository(pool)
	cashTxRepo := postgres.NewCashTransactionRepository(pool)
	logRepo := postgres.NewLogRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	trail := audit.NewRecorder(logRepo, notifRepo, userRepo, log)

	// Cache de productos: opcional, sin REDIS_ADDR la API sale directo a la DB.
	var productCache catalog.ProductCache
	if cfg.Redis.Addr != "" {
		redisCache := infracache.NewRedisProductCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis no disponible, cache deshabilitado")
		} else {
			productCache = redisCache
			defer redisCache.Close()
		}
	}

	productUC := catalog.NewProductUseCase(productRepo, productCache, trail, log)
	customerUC := catalog.NewCustomerUseCase(customerRepo, trail)
	orderUC := orders.NewUseCase(txRunner, customerRepo, orderRepo, trail)
	routeUC := routes.NewUseCase(txRunner, routeRepo, orderRepo, trail)
	cashUC := cash.NewUseCase(txRunner, shiftRepo, cashTxRepo, trail)
	labelGenerator := infrapdf.NewMarotoLabelGenerator(cfg.App.Name)
	shipmentUC := shipping.NewUseCase(shipmentRepo, orderRepo, customerRepo, labelGenerator, trail)
	notificationUC := notifications.NewUseCase(notifRepo)
	reportUC := reports.NewUseCase(orderRepo, customerRepo, infraexcel.NewOrdersReportWriter())
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Distribuidora API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		CustomerUC:     customerUC,
		OrderUC:        orderUC,
		RouteUC:        routeUC,
		CashUC:         cashUC,
		ShipmentUC:     shipmentUC,
		NotificationUC: notificationUC,
		ReportUC:       reportUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

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

	log.Info().Msg("aplicación detenida")
}
