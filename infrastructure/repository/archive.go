package repository

//go:generate mockgen -source=archive.go -destination=mocks/archive_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"
	"github.com/lib/pq"
	"github.com/vfg2006/ga-importer/infrastructure/database/postgres"
	"github.com/vfg2006/ga-importer/internal/domain"
)

const (
	archiveBlobTable    = "archive_blob"
	archiveNumericTable = "archive_numeric"
)

// ArchiveRepository grava os registros de arquivo de um site para um dia
type ArchiveRepository interface {
	InsertRecords(ctx context.Context, siteID int, day domain.Date, records []domain.ArchiveRecord) error
	GetBlob(ctx context.Context, siteID int, day domain.Date, name string) ([]byte, error)
}

type archiveRepository struct {
	conn    postgres.Conn
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	now     func() time.Time
}

func NewArchiveRepository(conn postgres.Conn, compressionLevel int) (ArchiveRepository, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(compressionLevel)))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar compressor: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar descompressor: %w", err)
	}

	return &archiveRepository{
		conn:    conn,
		encoder: encoder,
		decoder: decoder,
		now:     time.Now,
	}, nil
}

// InsertRecords grava todos os registros na mesma transação. Registros já
// existentes para o dia são substituídos.
func (r *archiveRepository) InsertRecords(ctx context.Context, siteID int, day domain.Date, records []domain.ArchiveRecord) error {
	if len(records) == 0 {
		return nil
	}

	archivedAt := r.now().UTC()

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, record := range records {
			query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

			var insert squirrel.InsertBuilder
			switch record.Kind {
			case domain.RecordBlob:
				insert = query.Insert(archiveBlobTable).
					Columns("idsite", "date1", "name", "value", "ts_archived").
					Values(siteID, day.Time, record.Name, r.encoder.EncodeAll(record.Blob, nil), archivedAt)
			case domain.RecordNumeric:
				insert = query.Insert(archiveNumericTable).
					Columns("idsite", "date1", "name", "value", "ts_archived").
					Values(siteID, day.Time, record.Name, record.Value, archivedAt)
			default:
				return fmt.Errorf("tipo de registro desconhecido: %d", record.Kind)
			}

			sqlQuery, args, err := insert.
				Suffix("ON CONFLICT (idsite, date1, name) DO UPDATE SET value = EXCLUDED.value, ts_archived = EXCLUDED.ts_archived").
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				if pqErr, ok := err.(*pq.Error); ok {
					return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
				}
				return fmt.Errorf("erro ao gravar registro %s: %w", record.Name, err)
			}
		}
		return nil
	})
}

// GetBlob retorna o blob descomprimido ou nil quando não existe
func (r *archiveRepository) GetBlob(ctx context.Context, siteID int, day domain.Date, name string) ([]byte, error) {
	query, args, err := squirrel.
		Select("value").
		From(archiveBlobTable).
		Where(squirrel.Eq{"idsite": siteID, "date1": day.Time, "name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var compressed []byte
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&compressed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar registro %s: %w", name, err)
	}

	blob, err := r.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao descomprimir registro %s: %w", name, err)
	}
	return blob, nil
}
