package rabbitmq

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Channel é o subconjunto de *amqp.Channel usado pelo publisher
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher publica os eventos de status em um exchange topic com a routing
// key "import.<status>".
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  Channel
	exchange string
}

// Dial conecta no broker e declara o exchange
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: erro ao conectar: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: erro ao abrir canal: %w", err)
	}

	publisher, err := NewPublisher(ch, exchange)
	if err != nil {
		conn.Close()
		return nil, err
	}
	publisher.conn = conn

	logrus.WithField("exchange", exchange).Info("rabbitmq: publisher conectado")
	return publisher, nil
}

func NewPublisher(ch Channel, exchange string) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("rabbitmq: erro ao declarar exchange %s: %w", exchange, err)
	}
	return &Publisher{channel: ch, exchange: exchange}, nil
}

func RoutingKey(event domain.ImportStatusEvent) string {
	if event.Deleted {
		return "import.deleted"
	}
	return "import." + string(event.Status)
}

func (p *Publisher) Notify(ctx context.Context, event domain.ImportStatusEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: erro ao serializar evento: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, RoutingKey(event), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Headers:      amqp.Table{"site_id": strconv.Itoa(event.SiteID)},
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: erro ao publicar evento do site %d: %w", event.SiteID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.channel.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
