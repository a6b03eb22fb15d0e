package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const defaultMaxRetries = 3

type MessageWriter interface {
	WriteMessages(msgs ...kafka.Message) (int, error)
}

type Publisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
}

type PublisherImpl struct {
	writer     MessageWriter
	maxRetries int
	backoff    time.Duration
}

func CreateKafkaProducer(ctx context.Context, config *config.Config) (*kafka.Conn, error) {
	return kafka.DialLeader(ctx, "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
}

func CreateNewPublisher(writer MessageWriter, backoff time.Duration) Publisher {
	return &PublisherImpl{writer: writer, maxRetries: defaultMaxRetries, backoff: backoff}
}

// Publish writes msg, retrying with a linearly growing delay.
func (p *PublisherImpl) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < p.maxRetries; i++ {
		_, err = p.writer.WriteMessages(kafka.Message{Key: []byte(key), Value: jsonMsg})
		if err == nil {
			return nil
		}

		log.Ctx(ctx).Warn().Err(err).Str("component", "Publish").
			Int("attempt", i+1).Int("max_attempts", p.maxRetries).Msg("failed to write Kafka message")

		if ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", p.maxRetries, err)
}
