package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema(t *testing.T) {
	t.Run("Cria todas as tabelas", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for range schema {
			mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		require.NoError(t, EnsureSchema(context.Background(), &Connection{DB: db}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Interrompe no primeiro erro", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS option").WillReturnError(errors.New("sem permissão"))

		err = EnsureSchema(context.Background(), &Connection{DB: db})
		assert.ErrorContains(t, err, "sem permissão")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
