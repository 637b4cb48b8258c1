package stream

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"walletcore/internal/indexer"
)

//go:generate mockgen -source=redis.go -destination=mocks/redis.go -package=mocks StreamWriter

// StreamWriter is the part of the go-redis client the publisher needs.
type StreamWriter interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisPublisher appends ledger records to a Redis stream, trimming it to
// roughly maxLen entries. A maxLen of zero disables trimming.
type RedisPublisher struct {
	client StreamWriter
	stream string
	maxLen int64
}

func NewRedisPublisher(client StreamWriter, stream string, maxLen int64) *RedisPublisher {
	return &RedisPublisher{client: client, stream: stream, maxLen: maxLen}
}

func (p *RedisPublisher) Name() string {
	return "redis"
}

func (p *RedisPublisher) Publish(ctx context.Context, records []indexer.Record) error {
	for _, rec := range records {
		args := &redis.XAddArgs{
			Stream: p.stream,
			MaxLen: p.maxLen,
			Approx: p.maxLen > 0,
			Values: map[string]any{
				"id":           rec.ID.String(),
				"event":        rec.Event,
				"wallet":       rec.Wallet.Hex(),
				"contract":     rec.Contract.Hex(),
				"tx_hash":      rec.TxHash.Hex(),
				"log_index":    strconv.FormatUint(uint64(rec.LogIndex), 10),
				"block_number": strconv.FormatUint(rec.BlockNumber, 10),
				"sequence":     strconv.FormatUint(rec.Sequence, 10),
				"payload":      string(rec.Payload),
			},
		}
		if err := p.client.XAdd(ctx, args).Err(); err != nil {
			return fmt.Errorf("xadd %s: %w", p.stream, err)
		}
	}
	return nil
}
