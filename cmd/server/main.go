package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/adapter/cache"
	extpayment "github.com/duongdanghoc/charging-station-manager/internal/adapter/external/payment"
	"github.com/duongdanghoc/charging-station-manager/internal/adapter/http/fiber/handlers"
	"github.com/duongdanghoc/charging-station-manager/internal/adapter/http/fiber/middleware"
	"github.com/duongdanghoc/charging-station-manager/internal/adapter/queue"
	"github.com/duongdanghoc/charging-station-manager/internal/adapter/storage/postgres"
	"github.com/duongdanghoc/charging-station-manager/internal/adapter/vault"
	wsAdapter "github.com/duongdanghoc/charging-station-manager/internal/adapter/websocket"
	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/observability/telemetry"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
	"github.com/duongdanghoc/charging-station-manager/internal/service/access"
	"github.com/duongdanghoc/charging-station-manager/internal/service/auth"
	"github.com/duongdanghoc/charging-station-manager/internal/service/connector"
	"github.com/duongdanghoc/charging-station-manager/internal/service/email"
	"github.com/duongdanghoc/charging-station-manager/internal/service/health"
	"github.com/duongdanghoc/charging-station-manager/internal/service/payment"
	"github.com/duongdanghoc/charging-station-manager/internal/service/pricing"
	"github.com/duongdanghoc/charging-station-manager/internal/service/session"
	"github.com/duongdanghoc/charging-station-manager/internal/service/station"
	"github.com/duongdanghoc/charging-station-manager/internal/service/vehicle"
	"github.com/duongdanghoc/charging-station-manager/pkg/config"
)

const (
	serviceName    = "charging-station-manager"
	serviceVersion = "v1.0.0"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting charging station manager",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Secrets may come from Vault instead of plain config.
	if cfg.Vault.Enabled {
		secrets, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if url, err := secrets.GetDatabaseURL(); err == nil {
			cfg.Database.URL = url
		}
		if secret, err := secrets.GetJWTSecret(); err == nil {
			cfg.JWT.Secret = secret
		}
		if key, err := secrets.GetStripeAPIKey(); err == nil {
			cfg.Payment.Stripe.SecretKey = key
		}
	}

	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, serviceVersion, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer postgres.Close(db)
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	var appCache ports.Cache
	if cfg.Redis.Enabled {
		appCache, err = cache.NewRedisCache(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	} else {
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	var messageQueue queue.MessageQueue
	if cfg.Queue.Enabled {
		messageQueue, err = queue.New(cfg.Queue.Driver, cfg.Queue.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to message queue", zap.Error(err))
		}
		defer messageQueue.Close()
	}

	repos := postgres.NewRepositories(db, logger)
	txManager := postgres.NewTxManager(db, logger)

	guard := access.NewGuard(
		repos.Stations,
		repos.Poles,
		repos.Connectors,
		repos.PriceRules,
		repos.Vehicles,
		repos.Sessions,
		logger,
	)

	authService := auth.NewService(repos.Users, appCache, cfg.JWT.Secret, logger)
	stationService := station.NewService(repos.Stations, repos.Poles, repos.Connectors, guard, logger)
	connectorService := connector.NewService(txManager, repos.Connectors, repos.Sessions, guard, cfg.Charging.MaxConnectorsPerPole, logger)
	pricingService := pricing.NewService(repos.PriceRules, guard, logger)
	vehicleService := vehicle.NewService(repos.Vehicles, repos.Sessions, guard, logger)

	emailService, err := email.NewService(emailConfig(cfg), logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	var rateResolver session.RateResolver = session.NewFixedRateResolver(cfg.Pricing.DefaultPerKwh)
	if cfg.Pricing.UsePriceTable {
		rateResolver = session.NewTableRateResolver(pricingService, cfg.Pricing.DefaultPerKwh)
	}

	wsHub := wsAdapter.NewHub()
	go wsHub.Run()

	sessionService := session.NewService(
		txManager,
		repos.Sessions,
		repos.Connectors,
		repos.Users,
		rateResolver,
		messageQueue,
		wsHub,
		emailService,
		logger,
	)

	stripeProvider := extpayment.NewStripeProvider(cfg.Payment.Stripe.SecretKey, logger)
	paymentService := payment.NewService(repos.Payments, repos.Sessions, stripeProvider, cfg.Payment.Stripe.Currency, logger)

	queueConnected := func() bool { return false }
	if messageQueue != nil {
		queueConnected = messageQueue.Connected
	}
	healthService := health.NewService(&health.Config{
		Version:        serviceVersion,
		DB:             sqlDB,
		Cache:          appCache,
		QueueConnected: queueConnected,
	}, logger)

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	} else {
		app.Use(middleware.DefaultCORS())
	}
	app.Use(middleware.Metrics())
	app.Use(middleware.CircuitBreaker(logger))

	healthHandler := handlers.NewHealthHandler(healthService)
	app.Get("/health/live", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)

	if cfg.Prometheus.Enabled {
		promHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			promHandler(c.Context())
			return nil
		})
	}

	v1 := app.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(authService, logger)
	v1.Post("/auth/login", authHandler.Login)
	v1.Post("/auth/register", authHandler.Register)
	v1.Post("/auth/refresh", authHandler.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))
	protected.Get("/auth/me", authHandler.Me)

	vendorOnly := middleware.RequireRole(domain.UserRoleVendor, domain.UserRoleAdmin)
	customerOnly := middleware.RequireRole(domain.UserRoleCustomer)

	stationHandler := handlers.NewStationHandler(stationService, logger)
	protected.Post("/stations", vendorOnly, stationHandler.Create)
	protected.Get("/stations", vendorOnly, stationHandler.List)
	protected.Get("/stations/:id", stationHandler.Get)
	protected.Put("/stations/:id", vendorOnly, stationHandler.Update)
	protected.Delete("/stations/:id", vendorOnly, stationHandler.Delete)
	protected.Post("/stations/:id/poles", vendorOnly, stationHandler.CreatePole)
	protected.Get("/stations/:id/poles", stationHandler.ListPoles)
	protected.Get("/poles/:id", stationHandler.GetPole)
	protected.Delete("/poles/:id", vendorOnly, stationHandler.DeletePole)

	connectorHandler := handlers.NewConnectorHandler(connectorService, logger)
	protected.Post("/poles/:id/connectors", vendorOnly, connectorHandler.Create)
	protected.Get("/poles/:id/connectors", connectorHandler.ListByPole)
	protected.Patch("/connectors/:id/status", vendorOnly, connectorHandler.UpdateStatus)
	protected.Delete("/connectors/:id", vendorOnly, connectorHandler.Delete)

	priceHandler := handlers.NewPriceHandler(pricingService, logger)
	protected.Post("/poles/:id/prices", vendorOnly, priceHandler.Create)
	protected.Get("/poles/:id/prices", priceHandler.ListByPole)
	protected.Put("/prices/:id", vendorOnly, priceHandler.Update)
	protected.Delete("/prices/:id", vendorOnly, priceHandler.Delete)

	vehicleHandler := handlers.NewVehicleHandler(vehicleService, logger)
	protected.Post("/vehicles", customerOnly, vehicleHandler.Create)
	protected.Get("/vehicles", customerOnly, vehicleHandler.List)
	protected.Get("/vehicles/:id", customerOnly, vehicleHandler.Get)
	protected.Put("/vehicles/:id", customerOnly, vehicleHandler.Update)
	protected.Delete("/vehicles/:id", customerOnly, vehicleHandler.Delete)

	sessionHandler := handlers.NewSessionHandler(sessionService, logger)
	protected.Post("/sessions/start", customerOnly, sessionHandler.Start)
	protected.Post("/sessions/:id/stop", customerOnly, sessionHandler.Stop)
	protected.Get("/sessions/current", customerOnly, sessionHandler.GetCurrent)
	protected.Get("/sessions/history", customerOnly, sessionHandler.GetHistory)

	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)
	protected.Post("/payments", customerOnly, paymentHandler.Settle)
	protected.Get("/payments", customerOnly, paymentHandler.List)
	protected.Get("/payments/:id", paymentHandler.Get)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/updates", websocket.New(func(c *websocket.Conn) {
		userID := c.Query("userId", "guest")
		wsHub.AddClient(c, userID)
	}))

	if messageQueue != nil {
		go startBackgroundWorkers(messageQueue, logger)
	}

	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func emailConfig(cfg *config.Config) *email.Config {
	if cfg.Email.Provider == "" {
		return email.DefaultConfig()
	}
	return &email.Config{
		Provider:       cfg.Email.Provider,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUsername,
		SMTPPassword:   cfg.Email.SMTPPassword,
		SMTPUseTLS:     cfg.Email.SMTPUseTLS,
	}
}

// startBackgroundWorkers drains session events into logs so operators can
// tail the billing stream even without a downstream consumer attached.
func startBackgroundWorkers(mq queue.MessageQueue, logger *zap.Logger) {
	logger.Info("Starting background workers")

	if err := mq.Subscribe(queue.SubjectSessionCompleted, func(msg []byte) error {
		logger.Info("Charging session completed", zap.ByteString("session", msg))
		return nil
	}); err != nil {
		logger.Warn("Failed to subscribe to session completions", zap.Error(err))
	}

	if err := mq.Subscribe(queue.SubjectSessionStarted, func(msg []byte) error {
		logger.Info("Charging session started", zap.ByteString("session", msg))
		return nil
	}); err != nil {
		logger.Warn("Failed to subscribe to session starts", zap.Error(err))
	}
}
