package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/papelera/internal/domain/trash"
	"github.com/erp/papelera/internal/infrastructure/config"
	"github.com/erp/papelera/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

// Option customizes how the connection is opened
type Option func(*gorm.Config, *[]gorm.Plugin)

// WithGormLogger replaces the silent default logger
func WithGormLogger(l gormlogger.Interface) Option {
	return func(c *gorm.Config, _ *[]gorm.Plugin) { c.Logger = l }
}

// WithPlugins registers GORM plugins (tracing, metrics) after connecting
func WithPlugins(plugins ...gorm.Plugin) Option {
	return func(_ *gorm.Config, p *[]gorm.Plugin) { *p = append(*p, plugins...) }
}

// Dialector returns the GORM dialector for the configured driver
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewDatabase creates a new database connection with the given configuration
func NewDatabase(cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := Open(dialector, opts...)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// one writer connection keeps sqlite from returning SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Open opens a connection on an explicit dialector. Tests use it with sqlmock
// and in-memory sqlite.
func Open(dialector gorm.Dialector, opts ...Option) (*Database, error) {
	gcfg := &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}
	var plugins []gorm.Plugin
	for _, opt := range opts {
		opt(gcfg, &plugins)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	for _, p := range plugins {
		if err := db.Use(p); err != nil {
			return nil, fmt.Errorf("failed to register plugin %s: %w", p.Name(), err)
		}
	}
	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Stats returns database connection pool statistics
func (d *Database) Stats() (ConnectionStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	s := sqlDB.Stats()
	return ConnectionStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration,
	}, nil
}

// ConnectionStats holds database connection pool statistics
type ConnectionStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
}

// PartialIndexes returns the DDL for the partial unique indexes the service
// relies on: one active record per identity and one pending conflict per
// deleted record. Postgres and SQLite share the syntax.
func PartialIndexes() []string {
	stmts := make([]string, 0, 6)
	for _, d := range trash.Descriptors() {
		stmts = append(stmts, fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS ux_%[1]s_identity_active ON %[1]s (identity_key) WHERE deleted_at IS NULL AND identity_key <> ''",
			d.Slug,
		))
	}
	stmts = append(stmts,
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_conflicts_pending_record ON conflicts (category, deleted_record_id) WHERE state = 'PENDING'",
	)
	return stmts
}

// AutoMigrate creates the schema from the models. Production databases use
// the versioned migrations; this serves sqlite and tests.
func (d *Database) AutoMigrate(ctx context.Context) error {
	db := d.DB.WithContext(ctx)
	all := append(models.RecordModels(), &models.ConflictModel{})
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range PartialIndexes() {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
