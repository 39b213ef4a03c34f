//go:build integration

// Package integration runs the persistence and service layers against real
// PostgreSQL and Redis containers started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/erp/papelera/internal/infrastructure/migration"
	"github.com/erp/papelera/internal/infrastructure/persistence"
	"github.com/erp/papelera/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"

	_ "github.com/lib/pq"
)

// TestDB is a migrated PostgreSQL database in its own container
type TestDB struct {
	*persistence.Database
	SQL       *sql.DB
	Migrator  *migration.Migrator
	Container testcontainers.Container
	DSN       string
}

// NewTestDB starts a PostgreSQL container and applies every migration
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("papelera_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrator, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, migrator.Up(), "apply migrations")

	db, err := persistence.Open(gormpostgres.Open(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &TestDB{Database: db, SQL: sqlDB, Migrator: migrator, Container: container, DSN: dsn}
}

// Truncate empties the record and conflict tables and resets their sequences
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()
	err := tdb.DB.Exec("TRUNCATE TABLE conflicts, ventas, compras, productos, clientes, proveedores RESTART IDENTITY CASCADE").Error
	require.NoError(t, err)
}

// IndexNames lists the indexes defined on table
func (tdb *TestDB) IndexNames(t *testing.T, table string) []string {
	t.Helper()
	var names []string
	err := tdb.DB.Raw("SELECT indexname FROM pg_indexes WHERE schemaname = 'public' AND tablename = ?", table).
		Scan(&names).Error
	require.NoError(t, err, fmt.Sprintf("list indexes of %s", table))
	return names
}

// StartRedis runs a Redis container and returns its address
func StartRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return addr
}
