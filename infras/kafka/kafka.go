package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/shared/constant"
	"lodge/shared/failure"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// Message is a single event destined for a Kafka topic.
type Message struct {
	Topic string
	Key   []byte
	Value []byte
}

// Client publishes domain events such as booking lifecycle changes.
type Client interface {
	SendMessages(ctx context.Context, messages ...Message) error
	Close() error
}

type clientImpl struct {
	writer *kafkaGo.Writer
	otel   otel.Otel
}

// noopClient is used when Kafka is disabled so services can publish unconditionally.
type noopClient struct{}

func (n *noopClient) SendMessages(_ context.Context, _ ...Message) error { return nil }
func (n *noopClient) Close() error                                       { return nil }

func New(conf *config.Config, ot otel.Otel) Client {
	if !conf.Kafka.Enable {
		log.Info().Msg("Kafka disabled, events will be dropped")
		return &noopClient{}
	}

	transport := &kafkaGo.Transport{}
	if conf.Kafka.SASL.Enable {
		transport.SASL = plain.Mechanism{
			Username: conf.Kafka.SASL.Username,
			Password: conf.Kafka.SASL.Password,
		}
	}

	writer := &kafkaGo.Writer{
		Addr:         kafkaGo.TCP(conf.Kafka.Brokers...),
		Balancer:     &kafkaGo.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		Transport:    transport,
	}

	log.Info().Strs("brokers", conf.Kafka.Brokers).Msg("Kafka writer initialized")

	return &clientImpl{
		writer: writer,
		otel:   ot,
	}
}

func (c *clientImpl) SendMessages(ctx context.Context, messages ...Message) error {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelKafkaScopeName, "SendMessages")
	defer scope.End()

	kafkaMessages := make([]kafkaGo.Message, 0, len(messages))
	for _, msg := range messages {
		kafkaMessages = append(kafkaMessages, kafkaGo.Message{
			Topic: msg.Topic,
			Key:   msg.Key,
			Value: msg.Value,
		})
	}

	if err := c.writer.WriteMessages(ctx, kafkaMessages...); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("count", len(messages)).Msg("[SendMessages] Failed to write messages")
		return failure.InternalError(err)
	}

	return nil
}

func (c *clientImpl) Close() error {
	return c.writer.Close()
}
