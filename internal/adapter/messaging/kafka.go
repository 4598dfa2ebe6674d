package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"microcredit-coop/internal/domain/event"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

const (
	dialAttempts = 10
	dialBackoff  = 5 * time.Second
)

// KafkaPublisher sends each event to the topic named by its type, keyed by
// the event key so that one request's events stay ordered.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	log      logrus.FieldLogger
}

func ProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "microcredit-coop"
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	return cfg
}

// NewKafkaPublisher dials the brokers, retrying while they come up.
func NewKafkaPublisher(ctx context.Context, brokers []string, log logrus.FieldLogger) (*KafkaPublisher, error) {
	var err error
	for i := 1; i <= dialAttempts; i++ {
		var p sarama.SyncProducer
		p, err = sarama.NewSyncProducer(brokers, ProducerConfig())
		if err == nil {
			log.WithField("brokers", brokers).Info("kafka producer ready")
			return NewKafkaPublisherWithProducer(p, log), nil
		}
		log.WithError(err).Warnf("waiting for kafka (%d/%d)", i, dialAttempts)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dialBackoff):
		}
	}
	return nil, fmt.Errorf("kafka producer: %w", err)
}

func NewKafkaPublisherWithProducer(p sarama.SyncProducer, log logrus.FieldLogger) *KafkaPublisher {
	return &KafkaPublisher{producer: p, log: log}
}

func (k *KafkaPublisher) Publish(ctx context.Context, e event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", e.Type, err)
	}
	msg := &sarama.ProducerMessage{
		Topic: e.Type,
		Key:   sarama.StringEncoder(e.Key),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(e.ID)},
		},
	}
	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send %s: %w", e.Type, err)
	}
	k.log.WithFields(logrus.Fields{
		"topic":     e.Type,
		"event_id":  e.ID,
		"partition": partition,
		"offset":    offset,
	}).Debug("event published")
	return nil
}

func (k *KafkaPublisher) Close() error { return k.producer.Close() }
