package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ga-importer/internal/domain"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	published  []published
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Notify(t *testing.T) {
	ch := &fakeChannel{}
	publisher, err := NewPublisher(ch, "ga-importer")
	require.NoError(t, err)
	assert.Equal(t, []string{"ga-importer:topic"}, ch.declared)

	occurred := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	err = publisher.Notify(context.Background(), domain.ImportStatusEvent{
		SiteID:         3,
		Status:         domain.ImportStateFinished,
		PreviousStatus: domain.ImportStateOngoing,
		OccurredAt:     occurred,
	})
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "ga-importer", msg.exchange)
	assert.Equal(t, "import.finished", msg.key)
	assert.Equal(t, "application/json", msg.msg.ContentType)
	assert.Equal(t, "3", msg.msg.Headers["site_id"])
	assert.JSONEq(t, `{"idSite":3,"status":"finished","previous_status":"ongoing","occurred_at":"2024-03-01T12:00:00Z"}`, string(msg.msg.Body))

	require.NoError(t, publisher.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_Notify_Erro(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	publisher, err := NewPublisher(ch, "ga-importer")
	require.NoError(t, err)

	err = publisher.Notify(context.Background(), domain.ImportStatusEvent{SiteID: 1, Deleted: true})
	assert.Error(t, err)
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "import.rate_limited", RoutingKey(domain.ImportStatusEvent{Status: domain.ImportStateRateLimited}))
	assert.Equal(t, "import.deleted", RoutingKey(domain.ImportStatusEvent{Deleted: true}))
}
