package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// ErrPublish возвращается при ошибке публикации в брокер
var ErrPublish = errors.New("events: publish failed")

// AMQPPublisher публикует события бронирований в topic exchange RabbitMQ.
// Routing key совпадает с типом события (booking.created, booking.completed, ...).
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewAMQPPublisher подключается к брокеру и объявляет exchange
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Name() string {
	return "amqp"
}

// Publish отправляет событие как persistent JSON сообщение
func (p *AMQPPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID.String() + ":" + string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Publisher канал доставки событий
type Publisher interface {
	Name() string
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счётчик ошибок доставки
type Metrics interface {
	IncNotificationError(channel string)
}

// DefaultPublishTimeout ограничение на доставку одного события во все каналы
const DefaultPublishTimeout = 5 * time.Second

// Dispatcher рассылает событие во все каналы.
// Ошибки доставки только логируются: операция с бронированием к этому моменту уже зафиксирована.
type Dispatcher struct {
	publishers []Publisher
	logger     Logger
	metrics    Metrics
	timeout    time.Duration
}

func NewDispatcher(logger Logger, metrics Metrics, publishers ...Publisher) *Dispatcher {
	return &Dispatcher{
		publishers: publishers,
		logger:     logger,
		metrics:    metrics,
		timeout:    DefaultPublishTimeout,
	}
}

// Publish доставляет событие; отмена исходного запроса не прерывает доставку
func (d *Dispatcher) Publish(ctx context.Context, event domain.BookingEvent) {
	if len(d.publishers) == 0 {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	for _, p := range d.publishers {
		if err := p.Publish(pubCtx, event); err != nil {
			d.logger.Error("Dispatcher: channel=%s event=%s booking=%s failed: %v",
				p.Name(), event.Type, event.Reference, err)
			if d.metrics != nil {
				d.metrics.IncNotificationError(p.Name())
			}
			continue
		}
		d.logger.Info("Dispatcher: channel=%s event=%s booking=%s delivered", p.Name(), event.Type, event.Reference)
	}
}
