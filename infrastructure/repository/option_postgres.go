package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ga-importer/infrastructure/database/postgres"
)

const optionTable = "option"

type postgresOptionStore struct {
	conn postgres.Conn
}

func NewPostgresOptionStore(conn postgres.Conn) OptionStore {
	return &postgresOptionStore{conn: conn}
}

func (s *postgresOptionStore) Get(ctx context.Context, name string) (*string, error) {
	query, args, err := squirrel.
		Select("option_value").
		From(optionTable).
		Where(squirrel.Eq{"option_name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var value string
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar opção %s: %w", name, err)
	}

	return &value, nil
}

func (s *postgresOptionStore) Set(ctx context.Context, name, value string) error {
	query, args, err := squirrel.
		Insert(optionTable).
		Columns("option_name", "option_value", "autoload").
		Values(name, value, 0).
		Suffix("ON CONFLICT (option_name) DO UPDATE SET option_value = EXCLUDED.option_value").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar opção %s: %w", name, err)
	}

	return nil
}

func (s *postgresOptionStore) Delete(ctx context.Context, name string) error {
	query, args, err := squirrel.
		Delete(optionTable).
		Where(squirrel.Eq{"option_name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao remover opção %s: %w", name, err)
	}

	return nil
}

func (s *postgresOptionStore) GetLike(ctx context.Context, prefix string) (map[string]string, error) {
	query, args, err := squirrel.
		Select("option_name", "option_value").
		From(optionTable).
		Where(squirrel.Like{"option_name": escapeLike(prefix) + "%"}).
		OrderBy("option_name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar opções %s: %w", prefix, err)
	}
	defer rows.Close()

	options := map[string]string{}
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		options[name] = value
	}

	return options, rows.Err()
}

func (s *postgresOptionStore) CompareAndSwap(ctx context.Context, name string, old *string, value string) (bool, error) {
	var builder squirrel.Sqlizer
	if old == nil {
		builder = squirrel.
			Insert(optionTable).
			Columns("option_name", "option_value", "autoload").
			Values(name, value, 0).
			Suffix("ON CONFLICT (option_name) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar)
	} else {
		builder = squirrel.
			Update(optionTable).
			Set("option_value", value).
			Where(squirrel.Eq{"option_name": name, "option_value": *old}).
			PlaceholderFormat(squirrel.Dollar)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, err
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar opção %s: %w", name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}
