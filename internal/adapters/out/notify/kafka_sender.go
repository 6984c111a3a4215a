package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaType is recorded as the notification type of messages sent over Kafka.
const KafkaType = "KAFKA"

// KafkaSender produces notifications to the topic <prefix><topic>, keyed by
// order id so the updates of one order stay in one partition.
type KafkaSender struct {
	client *kgo.Client
	prefix string
}

// NewKafkaSender connects to a comma separated broker list.
func NewKafkaSender(ctx context.Context, brokers, prefix string) (*KafkaSender, error) {
	seeds := strings.Split(brokers, ",")
	for i := range seeds {
		seeds[i] = strings.TrimSpace(seeds[i])
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
		kgo.ProducerLinger(0),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err = client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}

	return &KafkaSender{client: client, prefix: prefix}, nil
}

func (s *KafkaSender) Type() string {
	return KafkaType
}

// Topic returns the Kafka topic a notification topic is produced to.
func (s *KafkaSender) Topic(topic string) string {
	return s.prefix + topic
}

// Send produces msg synchronously and returns "<topic>/<partition>/<offset>".
func (s *KafkaSender) Send(ctx context.Context, msg notification.Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	messageID := kernel.NewUUID().String()
	body, err := newPayload(messageID, msg, time.Now()).marshal()
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	record := &kgo.Record{
		Topic: s.Topic(msg.Topic()),
		Key:   []byte(msg.Data()[notification.DataOrderID]),
		Value: body,
		Headers: []kgo.RecordHeader{
			{Key: "messageId", Value: []byte(messageID)},
			{Key: "contentType", Value: []byte("application/json")},
		},
	}

	produced, err := s.client.ProduceSync(ctx, record).First()
	if err != nil {
		return "", fmt.Errorf("failed to produce notification: %w", err)
	}

	return fmt.Sprintf("%s/%d/%d", produced.Topic, produced.Partition, produced.Offset), nil
}

// Close flushes buffered records and closes the client.
func (s *KafkaSender) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.client.Flush(ctx)
	s.client.Close()
	if err != nil {
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	return nil
}
