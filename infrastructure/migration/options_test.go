package migration

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ga-importer/infrastructure/database/sqlite"
	"github.com/vfg2006/ga-importer/infrastructure/repository"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/usecases/importing"
)

func newStores(t *testing.T) (repository.OptionStore, repository.OptionStore) {
	t.Helper()

	db, err := sqlite.NewConnection(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return repository.NewSQLiteOptionStore(db), repository.NewRedisOptionStore(client)
}

func TestCopyImportOptions(t *testing.T) {
	ctx := context.Background()
	legacy := `{"status":"ongoing","idSite":1,"ga":{"view":"100"},"last_date_imported":"2024-01-05","import_range_end":""}`
	current := `{"version":2,"status":"finished","idSite":2,"ga":{"view":"200"},"extra_custom_dimensions":[]}`

	t.Run("Copia e converte status antigos", func(t *testing.T) {
		from, to := newStores(t)
		require.NoError(t, from.Set(ctx, importing.StatusOptionPrefix+"1", legacy))
		require.NoError(t, from.Set(ctx, importing.StatusOptionPrefix+"2", current))
		require.NoError(t, from.Set(ctx, importing.ImportedRangeOptionPrefix+"1", "2024-01-01,2024-01-05"))
		require.NoError(t, from.Set(ctx, "OutroPlugin.config", "x"))

		report, err := CopyImportOptions(ctx, from, to, false)
		require.NoError(t, err)
		assert.Equal(t, Report{Copied: 3, Upgraded: 1}, report)

		raw, err := to.Get(ctx, importing.StatusOptionPrefix+"1")
		require.NoError(t, err)
		require.NotNil(t, raw)

		var status domain.ImportStatus
		require.NoError(t, json.Unmarshal([]byte(*raw), &status))
		assert.Equal(t, domain.ImportStatusVersion, status.Version)
		assert.Nil(t, status.ImportRangeEnd)
		assert.NotNil(t, status.ExtraCustomDimensions)

		raw, err = to.Get(ctx, importing.StatusOptionPrefix+"2")
		require.NoError(t, err)
		assert.Equal(t, current, *raw)

		raw, err = to.Get(ctx, "OutroPlugin.config")
		require.NoError(t, err)
		assert.Nil(t, raw)
	})

	t.Run("Mantém opções existentes sem overwrite", func(t *testing.T) {
		from, to := newStores(t)
		require.NoError(t, from.Set(ctx, importing.StatusOptionPrefix+"2", current))
		require.NoError(t, to.Set(ctx, importing.StatusOptionPrefix+"2", "destino"))

		report, err := CopyImportOptions(ctx, from, to, false)
		require.NoError(t, err)
		assert.Equal(t, Report{Skipped: 1}, report)

		raw, err := to.Get(ctx, importing.StatusOptionPrefix+"2")
		require.NoError(t, err)
		assert.Equal(t, "destino", *raw)

		report, err = CopyImportOptions(ctx, from, to, true)
		require.NoError(t, err)
		assert.Equal(t, Report{Copied: 1}, report)
	})

	t.Run("Status ilegível é contado como falha", func(t *testing.T) {
		from, to := newStores(t)
		require.NoError(t, from.Set(ctx, importing.StatusOptionPrefix+"3", "{quebrado"))

		report, err := CopyImportOptions(ctx, from, to, false)
		require.NoError(t, err)
		assert.Equal(t, Report{Failed: 1}, report)
	})
}
