package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/erp/papelera/internal/infrastructure/auth"
	"github.com/erp/papelera/internal/infrastructure/cache"
	"github.com/erp/papelera/internal/infrastructure/config"
	"github.com/erp/papelera/internal/infrastructure/event"
	"github.com/erp/papelera/internal/infrastructure/logger"
	"github.com/erp/papelera/internal/infrastructure/persistence"
	"github.com/erp/papelera/internal/infrastructure/telemetry"
	"github.com/erp/papelera/internal/interfaces/http/handler"
	"github.com/erp/papelera/internal/interfaces/http/middleware"
	"github.com/erp/papelera/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:generate swag init -g cmd/server/main.go -o docs --v3.1

//	@title			Papelera API
//	@version		1.0
//	@description	Soft-delete trash and identity conflict resolution for the ERP catalog and documents.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logCfg := logger.ForEnvironment(cfg.App.Env)
	if cfg.Log.Level != "" {
		logCfg.Level = cfg.Log.Level
	}
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	if cfg.Log.Output != "" {
		logCfg.Output = cfg.Log.Output
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting papelera",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", telemetry.Version),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithSQL(!cfg.IsProduction()),
	)
	dbOpts := []persistence.Option{persistence.WithGormLogger(gormLog)}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbOpts = append(dbOpts, persistence.WithPlugins(telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			DBSystem:        dbSystem(cfg.Database.Driver),
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		})))
	}
	db, err := persistence.NewDatabase(&cfg.Database, dbOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// postgres is migrated by cmd/migrate; sqlite gets its schema from the models
	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(ctx); err != nil {
			return err
		}
	}

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(apptrash.NewAuditLogHandler(log))

	if cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled {
		meter := providers.Meter("papelera")
		sqlDB, err := db.DB.DB()
		if err != nil {
			return fmt.Errorf("get sql.DB: %w", err)
		}
		unregister, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB)
		if err != nil {
			return fmt.Errorf("register pool metrics: %w", err)
		}
		defer func() { _ = unregister() }()

		trashMetrics, err := telemetry.NewTrashMetrics(meter)
		if err != nil {
			return fmt.Errorf("init trash metrics: %w", err)
		}
		bus.Subscribe(trashMetrics)
	}
	if err := bus.Start(ctx); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}
	defer func() { _ = bus.Stop(context.Background()) }()

	locker, closeLocker, err := cache.NewRecordLocker(ctx, cfg.Trash, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeLocker() }()

	policy := apptrash.NewAccessPolicy(cfg.Trash.ManagerRoles, cfg.Trash.PendingRole)
	records := persistence.NewGormRecordRepository(db.DB)
	conflicts := persistence.NewGormConflictRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	trashService := apptrash.NewTrashService(records, conflicts, scope, locker, policy)
	trashService.SetEventPublisher(bus)
	conflictService := apptrash.NewConflictService(conflicts, scope, locker, policy)
	conflictService.SetEventPublisher(bus)

	engine, err := router.NewRouter(router.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		HTTP:           cfg.HTTP,
		SwaggerEnabled: cfg.Swagger.Enabled,
		TracingEnabled: providers.TracingEnabled(),
		Tokens:         auth.NewJWTService(cfg.JWT),
		System:         handler.NewSystemHandler(db, telemetry.Version),
		Logger:         log,
	}).Register(
		handler.NewTrashHandler(trashService, cfg.Trash.Location()),
		handler.NewConflictHandler(conflictService),
	).Setup()
	if err != nil {
		return fmt.Errorf("setup router: %w", err)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("Server exited gracefully")
	return nil
}

func dbSystem(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}
