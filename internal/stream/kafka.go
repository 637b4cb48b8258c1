package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"walletcore/internal/indexer"
)

//go:generate mockgen -source=kafka.go -destination=mocks/kafka.go -package=mocks Producer

// Producer is the part of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

const (
	HeaderEvent    = "event"
	HeaderRecordID = "record-id"
)

// KafkaPublisher writes one Kafka record per ledger record. Records are keyed
// by wallet so a wallet's history stays ordered within its partition.
type KafkaPublisher struct {
	producer Producer
	topic    string
}

func NewKafkaPublisher(producer Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Name() string {
	return "kafka"
}

func (p *KafkaPublisher) Publish(ctx context.Context, records []indexer.Record) error {
	if len(records) == 0 {
		return nil
	}
	batch := make([]*kgo.Record, 0, len(records))
	for _, rec := range records {
		value, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %s: %w", rec.ID, err)
		}
		batch = append(batch, &kgo.Record{
			Topic:     p.topic,
			Key:       []byte(rec.Wallet.Hex()),
			Value:     value,
			Timestamp: time.Unix(int64(rec.BlockTime), 0).UTC(),
			Headers: []kgo.RecordHeader{
				{Key: HeaderEvent, Value: []byte(rec.Event)},
				{Key: HeaderRecordID, Value: []byte(rec.ID.String())},
			},
		})
	}
	if err := p.producer.ProduceSync(ctx, batch...).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", p.topic, err)
	}
	return nil
}
