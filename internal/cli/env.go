package cli

import (
	"context"
	"errors"
	"fmt"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/erp/papelera/internal/domain/trash"
	"github.com/erp/papelera/internal/infrastructure/cache"
	"github.com/erp/papelera/internal/infrastructure/config"
	"github.com/erp/papelera/internal/infrastructure/event"
	"github.com/erp/papelera/internal/infrastructure/logger"
	"github.com/erp/papelera/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Env is the wired application the commands run against
type Env struct {
	Config    *config.Config
	Log       *zap.Logger
	DB        *persistence.Database
	Records   trash.RecordRepository
	Trash     *apptrash.TrashService
	Conflicts *apptrash.ConflictService

	closers []func() error
}

// NewEnv connects to the configured database and builds the services the
// same way the server does. SQLite databases get their schema created.
func NewEnv(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Env, error) {
	env := &Env{Config: cfg, Log: log}

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithGormLogger(logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level))),
	)
	if err != nil {
		return nil, err
	}
	env.DB = db
	env.closers = append(env.closers, db.Close)

	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(ctx); err != nil {
			_ = env.Close()
			return nil, err
		}
	}

	locker, closeLocker, err := cache.NewRecordLocker(ctx, cfg.Trash, cfg.Redis, log)
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	env.closers = append(env.closers, closeLocker)

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(apptrash.NewAuditLogHandler(log))
	if err := bus.Start(ctx); err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("start event bus: %w", err)
	}
	env.closers = append(env.closers, func() error { return bus.Stop(context.Background()) })

	policy := apptrash.NewAccessPolicy(cfg.Trash.ManagerRoles, cfg.Trash.PendingRole)
	env.Records = persistence.NewGormRecordRepository(db.DB)
	conflicts := persistence.NewGormConflictRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	env.Trash = apptrash.NewTrashService(env.Records, conflicts, scope, locker, policy)
	env.Trash.SetEventPublisher(bus)
	env.Conflicts = apptrash.NewConflictService(conflicts, scope, locker, policy)
	env.Conflicts.SetEventPublisher(bus)
	return env, nil
}

// Close releases everything NewEnv opened, last opened first
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
