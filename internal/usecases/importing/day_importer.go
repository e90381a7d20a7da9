package importing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/infrastructure/repository"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/importer"
	"github.com/vfg2006/ga-importer/pkg/metrics"
)

// QuerierFactory cria o serviço de consulta ao GA para a view do status
type QuerierFactory func(status *domain.ImportStatus, logger logrus.FieldLogger) importer.Querier

// DayImporter executa todos os importadores registrados para um dia e grava
// os registros resultantes no arquivo do site.
type DayImporter struct {
	registry   *importer.Registry
	archives   repository.ArchiveRepository
	newQuerier QuerierFactory
	metrics    metrics.Collector
}

func NewDayImporter(registry *importer.Registry, archives repository.ArchiveRepository, newQuerier QuerierFactory, collector metrics.Collector) *DayImporter {
	if collector == nil {
		collector = metrics.NoopCollector{}
	}
	return &DayImporter{
		registry:   registry,
		archives:   archives,
		newQuerier: newQuerier,
		metrics:    collector,
	}
}

// ImportDay importa um dia completo. Os registros só são gravados depois que
// todos os plugins terminam, então um erro não deixa o dia arquivado pela metade.
func (d *DayImporter) ImportDay(ctx context.Context, status *domain.ImportStatus, day domain.Date, logger logrus.FieldLogger) error {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger = logger.WithFields(logrus.Fields{
		"site_id": status.IDSite,
		"day":     day.String(),
	})

	querier := d.newQuerier(status, logger)

	var records []domain.ArchiveRecord
	for _, imp := range d.registry.Build(querier, status.IDSite) {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		pluginRecords, err := imp.ImportRecords(ctx, day)
		if err != nil {
			return fmt.Errorf("erro ao importar %s: %w", imp.PluginName(), err)
		}

		d.metrics.RecordDayImported(imp.PluginName(), len(pluginRecords), time.Since(start))
		logger.WithFields(logrus.Fields{
			"plugin":  imp.PluginName(),
			"records": len(pluginRecords),
		}).Debug("importing: plugin finalizado")

		records = append(records, pluginRecords...)
	}

	if err := d.archives.InsertRecords(ctx, status.IDSite, day, records); err != nil {
		return fmt.Errorf("erro ao gravar arquivo do dia %s: %w", day, err)
	}

	logger.WithField("records", len(records)).Info("importing: dia importado")
	return nil
}
