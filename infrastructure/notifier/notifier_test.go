package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ga-importer/internal/domain"
)

type notifierFunc func(ctx context.Context, event domain.ImportStatusEvent) error

func (f notifierFunc) Notify(ctx context.Context, event domain.ImportStatusEvent) error {
	return f(ctx, event)
}

func TestMulti_Notify(t *testing.T) {
	var calls int
	ok := notifierFunc(func(context.Context, domain.ImportStatusEvent) error {
		calls++
		return nil
	})
	failing := notifierFunc(func(context.Context, domain.ImportStatusEvent) error {
		calls++
		return errors.New("broker indisponível")
	})

	err := Multi{failing, ok}.Notify(context.Background(), domain.ImportStatusEvent{SiteID: 1})
	assert.EqualError(t, err, "broker indisponível")
	assert.Equal(t, 2, calls, "um erro não interrompe os demais")

	assert.NoError(t, Multi{}.Notify(context.Background(), domain.ImportStatusEvent{}))
}
