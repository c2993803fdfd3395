// Command server runs the AquaFlow HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/aquaflow/backend/internal/application/catalog"
	financeapp "github.com/aquaflow/backend/internal/application/finance"
	inventoryapp "github.com/aquaflow/backend/internal/application/inventory"
	"github.com/aquaflow/backend/internal/application/ledger"
	partnerapp "github.com/aquaflow/backend/internal/application/partner"
	reportapp "github.com/aquaflow/backend/internal/application/report"
	tradeapp "github.com/aquaflow/backend/internal/application/trade"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/infrastructure/auth"
	"github.com/aquaflow/backend/internal/infrastructure/cache"
	"github.com/aquaflow/backend/internal/infrastructure/config"
	"github.com/aquaflow/backend/internal/infrastructure/event"
	"github.com/aquaflow/backend/internal/infrastructure/lock"
	"github.com/aquaflow/backend/internal/infrastructure/logger"
	"github.com/aquaflow/backend/internal/infrastructure/persistence"
	infrastrategy "github.com/aquaflow/backend/internal/infrastructure/strategy"
	"github.com/aquaflow/backend/internal/infrastructure/telemetry"
	"github.com/aquaflow/backend/internal/interfaces/http/handler"
	"github.com/aquaflow/backend/internal/interfaces/http/middleware"
	"github.com/aquaflow/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()
	otelCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	// Log export goes first so everything after it reaches the collector too
	logCfg := otelCfg
	logCfg.Enabled = otelCfg.Enabled && cfg.Telemetry.LogsEnabled
	logProvider, err := telemetry.NewLoggerProvider(ctx, logCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer shutdown(log, "log provider", logProvider.Shutdown)
	level, _ := logger.ParseLevel(cfg.Log.Level)
	log = logProvider.Bridge(log, level)

	log.Info("Starting AquaFlow",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, otelCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, otelCfg, cfg.Telemetry.MetricsInterval, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
		ProfileTypes:    cfg.Telemetry.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithIgnoreRecordNotFoundError(true),
	)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
	}

	meter := meterProvider.Meter("aquaflow")
	ledgerMetrics, err := telemetry.NewLedgerMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create ledger metrics", zap.Error(err))
	}

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	eventBus.Subscribe(ledgerMetrics)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer shutdown(log, "event bus", eventBus.Stop)

	execOpts := []ledger.ExecutorOption{
		ledger.WithRetry(ledger.RetryConfig{
			MaxAttempts: cfg.Ledger.RetryAttempts,
			BaseBackoff: cfg.Ledger.RetryBaseBackoff,
			MaxBackoff:  cfg.Ledger.RetryMaxBackoff,
		}),
		ledger.WithEventPublisher(eventBus),
		ledger.WithMetrics(ledgerMetrics),
		ledger.WithLogger(log),
	}
	if cfg.Ledger.IdempotencyEnabled {
		idemCfg := shared.DefaultIdempotencyConfig()
		if cfg.Ledger.IdempotencyTTL > 0 {
			idemCfg.TTL = cfg.Ledger.IdempotencyTTL
		}
		var idemClient redis.UniversalClient
		if redisClient != nil {
			idemClient = redisClient
		}
		execOpts = append(execOpts, ledger.WithIdempotency(cache.NewIdempotencyStore(idemClient, log), idemCfg))
	}
	if cfg.Ledger.LockEnabled && redisClient != nil {
		execOpts = append(execOpts, ledger.WithLocker(lock.NewRedisLocker(redisClient, lock.Config{
			TTL:  cfg.Ledger.LockTTL,
			Wait: cfg.Ledger.LockWait,
		}, log)))
	}
	exec := ledger.NewExecutor(persistence.NewGormTransactionScope(db.DB), execOpts...)
	repos := persistence.NewGormRepositories(db.DB)

	discounts, err := cfg.Pricing.Discounts()
	if err != nil {
		log.Fatal("Invalid pricing configuration", zap.Error(err))
	}
	pricing, err := infrastrategy.NewRegistryWithDefaults(discounts)
	if err != nil {
		log.Fatal("Failed to build pricing strategies", zap.Error(err))
	}

	reconciliationService := financeapp.NewReconciliationService(exec, repos, log)
	purchaseService := tradeapp.NewPurchaseService(exec, repos, log)

	handlers := router.Handlers{
		Product:   handler.NewProductHandler(catalogapp.NewProductService(exec, repos, log)),
		Customer:  handler.NewCustomerHandler(partnerapp.NewCustomerService(exec, repos, log), reconciliationService),
		Supplier:  handler.NewSupplierHandler(partnerapp.NewSupplierService(exec, repos, log), purchaseService),
		Order:     handler.NewOrderHandler(tradeapp.NewOrderService(exec, repos, pricing, log)),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Import:    handler.NewImportHandler(inventoryapp.NewImportService(exec, repos, log)),
		Inventory: handler.NewInventoryHandler(inventoryapp.NewMovementService(exec, repos, log)),
		Finance:   handler.NewFinanceHandler(reconciliationService),
		Report:    handler.NewReportHandler(reportapp.NewReportService(repos, log)),
		System:    handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion, db),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpMeter := meter
	if !meterProvider.IsEnabled() {
		httpMeter = nil
	}

	profiling := middleware.DefaultProfilingConfig()
	profiling.Enabled = profiler.IsEnabled()

	engine, err := router.NewEngine(router.EngineConfig{
		HTTP:   cfg.HTTP,
		Logger: log,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Profiling: profiling,
		Meter:     httpMeter,
		Actor: middleware.ActorConfig{
			Verifier: auth.NewTokenVerifier(cfg.JWT),
			Required: cfg.JWT.Required,
			Logger:   log,
		},
	}, handlers)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// shutdown runs a provider's Shutdown with a bounded context
func shutdown(log *zap.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}
