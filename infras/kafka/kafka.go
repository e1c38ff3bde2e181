package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/shared/constant"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	writeTimeout = 5 * time.Second

	otelAttrTopic = "topic"
	otelAttrCount = "count"
)

// Message is a keyed event whose value is encoded as JSON on the wire.
type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Decode reads a message value back into T.
func Decode[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to unmarshal kafka message value: %w", err)
	}

	return value, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

type kafkaClientImpl struct {
	writer messageWriter
	otel   otel.Otel
}

// New builds a producer over the configured brokers. Without brokers every
// send is dropped with a debug log so local setups can run without Kafka.
func New(config *config.Config, otl otel.Otel) Client {
	if len(config.Kafka.Brokers) == 0 {
		log.Warn().Msg("kafka brokers not configured, events will be discarded")

		return &kafkaClientImpl{otel: otl}
	}

	transport := &kafkaGo.Transport{
		DialTimeout: writeTimeout,
	}

	if config.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
		Transport:              transport,
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           kafkaGo.RequireOne,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("kafka client initialized")

	return NewWithWriter(writer, otl)
}

// NewWithWriter wraps an existing writer. The writer must not have a fixed topic.
func NewWithWriter(writer messageWriter, otl otel.Otel) Client {
	return &kafkaClientImpl{
		writer: writer,
		otel:   otl,
	}
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".SendMessages")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrTopic: topic,
		otelAttrCount: len(messages),
	})

	if k.writer == nil {
		log.Debug().Str("topic", topic).Int("count", len(messages)).Msg("kafka disabled, dropping messages")

		return nil
	}

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			return err
		}

		msg.Topic = topic
		msgs = append(msgs, msg)
	}

	if err = k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to send message to kafka")

		return fmt.Errorf("failed to send message to kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("sent messages to kafka")

	return nil
}

func (k *kafkaClientImpl) Close() error {
	if k.writer == nil {
		return nil
	}

	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}
