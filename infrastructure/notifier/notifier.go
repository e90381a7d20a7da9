// Package notifier distribui os eventos de mudança de status das importações.
package notifier

import (
	"context"
	"errors"

	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/pkg/metrics"
)

type Notifier interface {
	Notify(ctx context.Context, event domain.ImportStatusEvent) error
}

// Multi repassa o evento para todos os notifiers e junta os erros
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event domain.ImportStatusEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Metrics conta as transições de status
type Metrics struct {
	collector metrics.Collector
}

func NewMetrics(collector metrics.Collector) *Metrics {
	return &Metrics{collector: collector}
}

func (m *Metrics) Notify(_ context.Context, event domain.ImportStatusEvent) error {
	status := string(event.Status)
	if event.Deleted {
		status = "deleted"
	}
	m.collector.RecordStatusTransition(status)
	return nil
}
