package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/easybill/backend/internal/application/billing"
	customerapp "github.com/easybill/backend/internal/application/customer"
	identityapp "github.com/easybill/backend/internal/application/identity"
	statementapp "github.com/easybill/backend/internal/application/statement"
	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/infrastructure/auth"
	"github.com/easybill/backend/internal/infrastructure/cache"
	"github.com/easybill/backend/internal/infrastructure/config"
	"github.com/easybill/backend/internal/infrastructure/logger"
	"github.com/easybill/backend/internal/infrastructure/migration"
	"github.com/easybill/backend/internal/infrastructure/persistence"
	"github.com/easybill/backend/internal/infrastructure/printing"
	"github.com/easybill/backend/internal/infrastructure/storage"
	"github.com/easybill/backend/internal/infrastructure/telemetry"
	"github.com/easybill/backend/internal/interfaces/http/handler"
	"github.com/easybill/backend/internal/interfaces/http/middleware"
	"github.com/easybill/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

//	@title			EasyBill API
//	@version		1.0
//	@description	Multi-tenant invoicing backend: accounts, customers, GST bills and revenue statements.

//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.ForEnvironment(cfg.App.Env, logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	}))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting EasyBill backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx := context.Background()

	// Tracing and profiling
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold),
	)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := prepareSchema(cfg, db, log); err != nil {
		log.Fatal("Failed to prepare database schema", zap.Error(err))
	}

	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg.Telemetry, cfg.Database), log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)

	// Monthly summary cache
	summaryCache, err := cache.NewSummaryCacheFactory(cfg.Redis, cfg.Cache, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to create summary cache", zap.Error(err))
	}
	defer func() {
		if err := summaryCache.Close(); err != nil {
			log.Error("Error closing summary cache", zap.Error(err))
		}
	}()

	// Invoice rendering
	pdfRenderer := printing.NewChromedpRenderer(printing.ChromedpConfigFrom(cfg.PDF, log))
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()
	invoiceRenderer, err := printing.NewInvoiceRenderer(pdfRenderer, cfg.PDF.Timeout)
	if err != nil {
		log.Fatal("Failed to initialize invoice renderer", zap.Error(err))
	}

	billOpts := []billingapp.BillServiceOption{billingapp.WithSummaryCache(summaryCache)}
	if archive := newDocumentArchive(ctx, cfg, log); archive != nil {
		billOpts = append(billOpts, billingapp.WithDocumentArchive(archive))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(accountRepo, jwtService)
	customerService := customerapp.NewCustomerService(customerRepo, billRepo)
	billService := billingapp.NewBillService(billRepo, customerRepo, accountRepo, invoiceRenderer, billOpts...)
	statementService := statementapp.NewStatementService(billRepo, summaryCache)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := router.NewEngine(router.EngineOptions{
		Config:    cfg,
		Logger:    log,
		Validator: authService,
		Registry:  registry,
		Handlers: router.Handlers{
			Auth:      handler.NewAuthHandler(authService),
			Customer:  handler.NewCustomerHandler(customerService),
			Bill:      handler.NewBillHandler(billService),
			Statement: handler.NewStatementHandler(statementService),
			Health:    handler.NewHealthHandler(db),
		},
	})
	defer engine.Close()

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

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// prepareSchema auto-migrates sqlite databases, and PostgreSQL ones when
// database.auto_migrate is set, using the migrations embedded in the binary.
func prepareSchema(cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if cfg.Database.Driver == "sqlite" {
		return db.AutoMigrate()
	}
	if !cfg.Database.AutoMigrate {
		return nil
	}

	// The migrator closes its connection, so it gets its own pool.
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	m, err := migration.NewEmbedded(sqlDB, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() { _ = m.Close() }()

	return m.Up()
}

// newDocumentArchive returns the S3 archive when storage is enabled. Archiving
// is optional, so configuration or connectivity problems only disable it.
func newDocumentArchive(ctx context.Context, cfg *config.Config, log *zap.Logger) billing.DocumentArchive {
	if !cfg.Storage.Enabled {
		return nil
	}

	archive, err := storage.NewS3DocumentArchive(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Warn("Invoice archiving disabled", zap.Error(err))
		return nil
	}

	ensureCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := archive.EnsureBucket(ensureCtx); err != nil {
		log.Warn("Invoice archiving disabled: bucket unavailable",
			zap.String("bucket", archive.Bucket()),
			zap.Error(err),
		)
		return nil
	}

	log.Info("Invoice archiving enabled", zap.String("bucket", archive.Bucket()))
	return archive
}
