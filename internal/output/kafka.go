package output

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/rs/zerolog/log"
)

// messages per SendMessages call
const kafkaBatchSize = 500

// KafkaSink publishes every row as a JSON message to <topic_prefix><table>,
// keyed by the row's primary key.
type KafkaSink struct {
	producer    sarama.SyncProducer
	topicPrefix string
}

// NewSaramaConfig returns the producer settings used against a broker list.
func NewSaramaConfig(cfg models.KafkaConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	if cfg.SessionTimeoutMs > 0 {
		saramaConfig.Consumer.Group.Session.Timeout = time.Duration(cfg.SessionTimeoutMs) * time.Millisecond
	}
	return saramaConfig
}

func NewKafkaSink(cfg models.KafkaConfig) (*KafkaSink, error) {
	brokers := strings.Split(cfg.BrokerList, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}

	producer, err := sarama.NewSyncProducer(brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}
	log.Info().Strs("brokers", brokers).Msg("kafka producer created")
	return NewKafkaSinkWithProducer(producer, cfg.TopicPrefix), nil
}

func NewKafkaSinkWithProducer(producer sarama.SyncProducer, topicPrefix string) *KafkaSink {
	return &KafkaSink{producer: producer, topicPrefix: topicPrefix}
}

func (s *KafkaSink) Name() string { return models.FormatKafka }

func (s *KafkaSink) Topic(table string) string { return s.topicPrefix + table }

func (s *KafkaSink) Write(ctx context.Context, ds *models.Dataset) error {
	if s.producer == nil {
		return fmt.Errorf("kafka producer is not initialized")
	}
	for _, t := range ds.Tables() {
		if err := s.writeTable(ctx, t); err != nil {
			return fmt.Errorf("failed to publish %s: %w", t.Name, err)
		}
	}
	return nil
}

func (s *KafkaSink) writeTable(ctx context.Context, t models.Table) error {
	topic := s.Topic(t.Name)
	keys := t.ColumnNames()
	batch := make([]*sarama.ProducerMessage, 0, kafkaBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.producer.SendMessages(batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for _, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		value, err := rowJSON(keys, row)
		if err != nil {
			return err
		}
		batch = append(batch, &sarama.ProducerMessage{
			Topic: topic,
			Key:   sarama.StringEncoder(formatValue(row[0])),
			Value: sarama.ByteEncoder(value),
		})
		if len(batch) == kafkaBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func (s *KafkaSink) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
