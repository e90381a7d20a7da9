package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type sqliteOption struct {
	Name  string `db:"option_name"`
	Value string `db:"option_value"`
}

type sqliteOptionStore struct {
	db *sqlx.DB
}

func NewSQLiteOptionStore(db *sqlx.DB) OptionStore {
	return &sqliteOptionStore{db: db}
}

func (s *sqliteOptionStore) Get(ctx context.Context, name string) (*string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT option_value FROM option WHERE option_name = ?`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar opção %s: %w", name, err)
	}
	return &value, nil
}

func (s *sqliteOptionStore) Set(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO option (option_name, option_value, autoload) VALUES (?, ?, 0)
		ON CONFLICT (option_name) DO UPDATE SET option_value = excluded.option_value`,
		name, value)
	if err != nil {
		return fmt.Errorf("erro ao salvar opção %s: %w", name, err)
	}
	return nil
}

func (s *sqliteOptionStore) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM option WHERE option_name = ?`, name); err != nil {
		return fmt.Errorf("erro ao remover opção %s: %w", name, err)
	}
	return nil
}

func (s *sqliteOptionStore) GetLike(ctx context.Context, prefix string) (map[string]string, error) {
	var rows []sqliteOption
	err := s.db.SelectContext(ctx, &rows,
		`SELECT option_name, option_value FROM option WHERE option_name LIKE ? ESCAPE '\' ORDER BY option_name`,
		escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar opções %s: %w", prefix, err)
	}

	options := make(map[string]string, len(rows))
	for _, row := range rows {
		options[row.Name] = row.Value
	}
	return options, nil
}

func (s *sqliteOptionStore) CompareAndSwap(ctx context.Context, name string, old *string, value string) (bool, error) {
	var (
		result sql.Result
		err    error
	)
	if old == nil {
		result, err = s.db.ExecContext(ctx,
			`INSERT INTO option (option_name, option_value, autoload) VALUES (?, ?, 0) ON CONFLICT (option_name) DO NOTHING`,
			name, value)
	} else {
		result, err = s.db.ExecContext(ctx,
			`UPDATE option SET option_value = ? WHERE option_name = ? AND option_value = ?`,
			value, name, *old)
	}
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar opção %s: %w", name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
