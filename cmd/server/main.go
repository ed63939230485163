package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campmanager/backend/internal/application/lifecycle"
	"github.com/campmanager/backend/internal/domain/onboarding"
	"github.com/campmanager/backend/internal/infrastructure/cache"
	"github.com/campmanager/backend/internal/infrastructure/config"
	"github.com/campmanager/backend/internal/infrastructure/event"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/campmanager/backend/internal/infrastructure/migration"
	"github.com/campmanager/backend/internal/infrastructure/persistence"
	"github.com/campmanager/backend/internal/infrastructure/queue"
	"github.com/campmanager/backend/internal/infrastructure/refdata"
	"github.com/campmanager/backend/internal/infrastructure/telemetry"
	"github.com/campmanager/backend/internal/interfaces/http/handler"
	"github.com/campmanager/backend/internal/interfaces/http/middleware"
	"github.com/campmanager/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting camp manager",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer provider shutdown failed", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	dbSystem := "postgresql"
	if cfg.Database.Driver == "sqlite" {
		dbSystem = "sqlite"
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBSystem:   dbSystem,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if err := prepareSchema(db, cfg, log); err != nil {
		log.Fatal("Failed to prepare database schema", zap.Error(err))
	}

	// Repositories
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	onboardingRepo := persistence.NewGormOnboardingRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)

	resolver := refdata.NewResolver(cfg.Reference, log)

	dedupe, err := cache.NewIdempotencyStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create task de-duplication store", zap.Error(err))
	}
	defer func() {
		if err := dedupe.Close(); err != nil {
			log.Warn("Failed to close task de-duplication store", zap.Error(err))
		}
	}()

	taskQueue := queue.New(queue.Config{
		Workers:     cfg.Queue.Workers,
		Capacity:    cfg.Queue.Capacity,
		TaskTimeout: cfg.Queue.TaskTimeout,
		DedupeTTL:   cfg.Queue.DedupeTTL,
	}, dedupe, log)
	eventBus := event.NewInMemoryEventBus(log)

	// Services
	phaseFunc := onboarding.PhaseFuncFor(cfg.Onboarding.StrictPhaseProgression)
	accountManager := lifecycle.NewAccountManager(companyRepo, accountRepo, currencyRepo, customerRepo, taskQueue, eventBus, log)
	customerSync := lifecycle.NewCustomerSynchronizer(customerRepo, accountManager, eventBus, log)
	provisioner := lifecycle.NewProvisioner(orgRepo, customerRepo, onboardingRepo, phaseFunc, eventBus, log)
	organizationService := lifecycle.NewOrganizationService(orgRepo, resolver, provisioner, customerSync, eventBus, log)
	conversionService := lifecycle.NewConversionService(leadRepo, organizationService, provisioner, eventBus, log)
	onboardingService := lifecycle.NewOnboardingService(onboardingRepo, orgRepo, organizationService, phaseFunc, persistence.NewGormTransactor(db.DB), eventBus, log)
	leadService := lifecycle.NewLeadService(leadRepo, conversionService, eventBus, log)
	customerService := lifecycle.NewCustomerService(customerRepo, accountManager, eventBus, log)
	formService := lifecycle.NewFormService(orgRepo, organizationService, log)

	taskQueue.Register(lifecycle.TaskAttachAccount, accountManager.HandleAttachAccount)
	if err := taskQueue.Start(ctx); err != nil {
		log.Fatal("Failed to start task queue", zap.Error(err))
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		if err := taskQueue.Stop(stopCtx); err != nil {
			log.Warn("Task queue did not drain", zap.Error(err))
		}
	}()

	notifications := lifecycle.NewNotificationHandler(log)
	eventBus.Subscribe(notifications, notifications.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Warn("Event bus shutdown failed", zap.Error(err))
		}
	}()

	if cfg.Finance.SeedCompany {
		seeder := lifecycle.NewLedgerSeeder(companyRepo, accountRepo, currencyRepo, log)
		if _, err := seeder.Seed(ctx, lifecycle.LedgerSeed{
			CompanyName:     cfg.Finance.CompanyName,
			CompanyAbbr:     cfg.Finance.CompanyAbbr,
			DefaultCurrency: cfg.Finance.DefaultCurrency,
		}); err != nil {
			log.Fatal("Failed to seed ledger", zap.Error(err))
		}
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	} else if err := engine.SetTrustedProxies(nil); err != nil {
		log.Fatal("Failed to disable proxy trust", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tp.IsEnabled(),
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.Setup(engine, router.Handlers{
		Lead:         handler.NewLeadHandler(leadService),
		Organization: handler.NewOrganizationHandler(organizationService),
		Onboarding:   handler.NewOnboardingHandler(onboardingService),
		Customer:     handler.NewCustomerHandler(customerService),
		Form:         handler.NewFormHandler(formService),
		Finance:      handler.NewFinanceHandler(accountManager),
		System:       handler.NewSystemHandler(cfg.App.Name, db, taskQueue),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// prepareSchema creates tables directly on sqlite and applies the SQL
// migrations on PostgreSQL
func prepareSchema(db *persistence.Database, cfg *config.Config, log *zap.Logger) error {
	if cfg.Database.Driver == "sqlite" {
		return persistence.AutoMigrate(db.DB)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	// the migrator shares the pool, so it is not closed here
	m, err := migration.New(sqlDB, log)
	if err != nil {
		return err
	}
	return m.Up()
}
