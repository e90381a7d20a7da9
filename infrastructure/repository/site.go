package repository

//go:generate mockgen -source=site.go -destination=mocks/site_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ga-importer/infrastructure/database/postgres"
	"github.com/vfg2006/ga-importer/internal/domain"
)

const siteTable = "site s"

type SiteRepository interface {
	GetSite(ctx context.Context, siteID int) (*domain.Site, error)
}

type siteRepository struct {
	conn postgres.Conn
}

func NewSiteRepository(conn postgres.Conn) SiteRepository {
	return &siteRepository{conn: conn}
}

// GetSite retorna nil quando o site não existe mais
func (r *siteRepository) GetSite(ctx context.Context, siteID int) (*domain.Site, error) {
	query, args, err := squirrel.
		Select("s.idsite, s.name, s.main_url, s.ts_created").
		From(siteTable).
		Where(squirrel.Eq{"s.idsite": siteID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	site := &domain.Site{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&site.ID,
		&site.Name,
		&site.MainURL,
		&site.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao buscar site %d: %w", siteID, err)
	}

	return site, nil
}
