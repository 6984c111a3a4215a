package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/rabbitmq/amqp091-go"
)

// AMQPType is recorded as the notification type of messages sent over RabbitMQ.
const AMQPType = "AMQP"

// ErrPublishNotConfirmed is returned when the broker nacks a published message.
var ErrPublishNotConfirmed = errors.New("broker did not confirm the message")

// AMQPSender publishes notifications to a durable topic exchange using the
// message topic as routing key. Every publish waits for the broker's confirm.
type AMQPSender struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	logger   *slog.Logger
}

// DialAMQP connects to url, declares the exchange and enables publisher confirms.
func DialAMQP(url, exchange string, logger *slog.Logger) (*AMQPSender, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	if err = channel.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AMQPSender{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger.With("component", "AMQPSender"),
	}, nil
}

func (s *AMQPSender) Type() string {
	return AMQPType
}

// Send publishes msg and returns its message id once the broker confirmed it.
func (s *AMQPSender) Send(ctx context.Context, msg notification.Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	id := kernel.NewUUID().String()
	now := time.Now()

	body, err := newPayload(id, msg, now).marshal()
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	confirmation, err := s.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		s.exchange,  // exchange name
		msg.Topic(), // routing key
		false,       // mandatory
		false,       // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    id,
			Timestamp:    now,
			Body:         body,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to publish notification: %w", err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to wait for publish confirm: %w", err)
	}
	if !acked {
		return "", ErrPublishNotConfirmed
	}

	s.logger.DebugContext(ctx, "notification published", "messageId", id, "routingKey", msg.Topic())
	return id, nil
}

// Close closes the channel and the connection.
func (s *AMQPSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Join(s.channel.Close(), s.conn.Close())
}
