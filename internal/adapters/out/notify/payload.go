// Package notify delivers order notifications to subscribers of a topic.
//
// The senders share one JSON payload:
//   - AMQPSender publishes to a RabbitMQ topic exchange with publisher confirms
//   - KafkaSender produces to a Kafka topic keyed by order id
//   - RedisStreamSender appends to a Redis stream per topic
//   - LogSender only logs, for local runs without a broker
package notify

import (
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/notification"
)

// Payload is the wire form of a notification.Message.
type Payload struct {
	MessageID string            `json:"messageId"`
	Topic     string            `json:"topic"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data"`
	SentAt    time.Time         `json:"sentAt"`
}

func newPayload(id string, msg notification.Message, at time.Time) Payload {
	return Payload{
		MessageID: id,
		Topic:     msg.Topic(),
		Title:     msg.Title(),
		Body:      msg.Body(),
		Data:      msg.Data(),
		SentAt:    at.UTC(),
	}
}

func (p Payload) marshal() ([]byte, error) {
	return json.Marshal(p)
}
