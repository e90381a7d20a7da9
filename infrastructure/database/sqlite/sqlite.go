package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS option (
	option_name  TEXT PRIMARY KEY,
	option_value TEXT NOT NULL,
	autoload     INTEGER NOT NULL DEFAULT 1
);`

// NewConnection abre o banco SQLite e garante a tabela de opções
func NewConnection(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", path)
	if err != nil {
		return nil, err
	}

	// com ":memory:" cada conexão abre um banco diferente
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
