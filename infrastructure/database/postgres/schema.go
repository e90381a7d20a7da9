package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS option (
		option_name  VARCHAR(191) PRIMARY KEY,
		option_value TEXT NOT NULL,
		autoload     SMALLINT NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS site (
		idsite     SERIAL PRIMARY KEY,
		name       VARCHAR(90) NOT NULL,
		main_url   VARCHAR(255) NOT NULL,
		ts_created TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS archive_blob (
		idsite      INTEGER NOT NULL,
		date1       DATE NOT NULL,
		name        VARCHAR(255) NOT NULL,
		value       BYTEA NOT NULL,
		ts_archived TIMESTAMP NOT NULL,
		PRIMARY KEY (idsite, date1, name)
	)`,
	`CREATE TABLE IF NOT EXISTS archive_numeric (
		idsite      INTEGER NOT NULL,
		date1       DATE NOT NULL,
		name        VARCHAR(255) NOT NULL,
		value       DOUBLE PRECISION NOT NULL,
		ts_archived TIMESTAMP NOT NULL,
		PRIMARY KEY (idsite, date1, name)
	)`,
}

// EnsureSchema cria as tabelas usadas pelo importador quando ainda não existem
func EnsureSchema(ctx context.Context, conn Queryer) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao criar schema: %w", err)
		}
	}
	return nil
}
