package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ga-importer/infrastructure/database/postgres"
	"github.com/vfg2006/ga-importer/infrastructure/database/sqlite"
)

func strPtr(s string) *string {
	return &s
}

// exercita o contrato comum a todas as implementações
func testOptionStore(t *testing.T, store OptionStore) {
	ctx := context.Background()

	t.Run("Opção inexistente retorna nil", func(t *testing.T) {
		value, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("Set e Get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "importStatus_1", `{"a":1}`))
		require.NoError(t, store.Set(ctx, "importStatus_1", `{"a":2}`))

		value, err := store.Get(ctx, "importStatus_1")
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, `{"a":2}`, *value)
	})

	t.Run("GetLike filtra pelo prefixo", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "importStatus_2", "b"))
		require.NoError(t, store.Set(ctx, "importStatusX3", "c"))
		require.NoError(t, store.Set(ctx, "other_1", "d"))

		options, err := store.GetLike(ctx, "importStatus_")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"importStatus_1": `{"a":2}`,
			"importStatus_2": "b",
		}, options)
	})

	t.Run("CompareAndSwap", func(t *testing.T) {
		ok, err := store.CompareAndSwap(ctx, "cas", nil, "v1")
		require.NoError(t, err)
		assert.True(t, ok, "cria quando não existe")

		ok, err = store.CompareAndSwap(ctx, "cas", nil, "v2")
		require.NoError(t, err)
		assert.False(t, ok, "não cria quando já existe")

		ok, err = store.CompareAndSwap(ctx, "cas", strPtr("outro"), "v2")
		require.NoError(t, err)
		assert.False(t, ok, "valor antigo divergente")

		ok, err = store.CompareAndSwap(ctx, "cas", strPtr("v1"), "v2")
		require.NoError(t, err)
		assert.True(t, ok, "valor antigo confere")

		value, err := store.Get(ctx, "cas")
		require.NoError(t, err)
		assert.Equal(t, "v2", *value)

		ok, err = store.CompareAndSwap(ctx, "missing-cas", strPtr("v1"), "v2")
		require.NoError(t, err)
		assert.False(t, ok, "não atualiza opção inexistente")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "cas"))
		value, err := store.Get(ctx, "cas")
		require.NoError(t, err)
		assert.Nil(t, value)

		require.NoError(t, store.Delete(ctx, "cas"))
	})
}

func TestRedisOptionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	testOptionStore(t, NewRedisOptionStore(client))
}

func TestSQLiteOptionStore(t *testing.T) {
	db, err := sqlite.NewConnection(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	testOptionStore(t, NewSQLiteOptionStore(db))
}

func TestPostgresOptionStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresOptionStore(&postgres.Connection{DB: db})
	ctx := context.Background()

	t.Run("Get inexistente", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT option_value FROM option WHERE option_name = $1")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"option_value"}))

		value, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("Set faz upsert", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO option (option_name,option_value,autoload) VALUES ($1,$2,$3) ON CONFLICT (option_name) DO UPDATE")).
			WithArgs("k", "v", 0).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.Set(ctx, "k", "v"))
	})

	t.Run("GetLike escapa o prefixo", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT option_name, option_value FROM option WHERE option_name LIKE $1")).
			WithArgs(`importStatus\_%`).
			WillReturnRows(sqlmock.NewRows([]string{"option_name", "option_value"}).
				AddRow("importStatus_1", "a").
				AddRow("importStatus_2", "b"))

		options, err := store.GetLike(ctx, "importStatus_")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"importStatus_1": "a", "importStatus_2": "b"}, options)
	})

	t.Run("CompareAndSwap com valor antigo", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE option SET option_value = $1 WHERE option_name = $2 AND option_value = $3")).
			WithArgs("novo", "k", "velho").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := store.CompareAndSwap(ctx, "k", strPtr("velho"), "novo")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("CompareAndSwap criando a opção", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (option_name) DO NOTHING")).
			WithArgs("k", "v", 0).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := store.CompareAndSwap(ctx, "k", nil, "v")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
