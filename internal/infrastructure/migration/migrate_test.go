package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/erp/papelera/internal/infrastructure/persistence"
	"github.com/erp/papelera/migrations"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrations.FS, down)
		assert.NoError(t, err, "missing rollback for %s", up)
	}
}

func TestEmbeddedMigrations_SourceOrdering(t *testing.T) {
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)
}

// The versioned schema and AutoMigrate must agree on the uniqueness rules.
func TestEmbeddedMigrations_DeclarePartialIndexes(t *testing.T) {
	var schema strings.Builder
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	for _, up := range ups {
		b, err := fs.ReadFile(migrations.FS, up)
		require.NoError(t, err)
		schema.Write(b)
		schema.WriteByte('\n')
	}
	normalized := strings.Join(strings.Fields(schema.String()), " ")

	for _, stmt := range persistence.PartialIndexes() {
		assert.Contains(t, normalized, stmt)
	}
}
