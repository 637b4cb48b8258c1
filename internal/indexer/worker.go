package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
	"walletcore/internal/platform/metrics"
)

//go:generate mockgen -source=worker.go -destination=mocks/mocks.go -package=mocks Store,Publisher

// Store persists records. Append must be idempotent on (TxHash, LogIndex).
type Store interface {
	Append(ctx context.Context, records []Record) error
	Get(ctx context.Context, txHash common.Hash, logIndex uint) (Record, error)
	ListByWallet(ctx context.Context, wallet common.Address, limit int) ([]Record, error)
	ListTransactions(ctx context.Context, afterSequence uint64, limit int) ([]Record, error)
}

// Publisher forwards persisted records to a stream.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, records []Record) error
}

const (
	appendAttempts = 3
	appendBackoff  = 200 * time.Millisecond
)

// Worker consumes receipts from a channel, persists their records and then
// publishes them. Publishing failures are logged and never stop indexing.
type Worker struct {
	store      Store
	inbox      <-chan *chain.Receipt
	publishers []Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type WorkerOption func(*Worker)

func WithPublishers(publishers ...Publisher) WorkerOption {
	return func(w *Worker) {
		w.publishers = append(w.publishers, publishers...)
	}
}

func WithLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) WorkerOption {
	return func(w *Worker) {
		w.metrics = m
	}
}

func NewWorker(store Store, inbox <-chan *chain.Receipt, opts ...WorkerOption) *Worker {
	w := &Worker{store: store, inbox: inbox, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case receipt := <-w.inbox:
			if err := w.Handle(ctx, receipt); err != nil {
				return err
			}
		}
	}
}

// Handle indexes one receipt.
func (w *Worker) Handle(ctx context.Context, receipt *chain.Receipt) error {
	records, err := FromReceipt(receipt)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	if err := w.append(ctx, records); err != nil {
		return fmt.Errorf("index receipt %s: %w", receipt.TxHash.Hex(), err)
	}
	if w.metrics != nil {
		w.metrics.AddRecordsIndexed(len(records))
	}

	for _, p := range w.publishers {
		if err := p.Publish(ctx, records); err != nil {
			w.logger.WarnContext(ctx, "failed to publish ledger records",
				"publisher", p.Name(),
				"tx_hash", receipt.TxHash.Hex(),
				"records", len(records),
				"error", err,
			)
			if w.metrics != nil {
				w.metrics.IncPublishFailures(p.Name())
			}
		}
	}
	return nil
}

func (w *Worker) append(ctx context.Context, records []Record) error {
	var err error
	for attempt := 1; attempt <= appendAttempts; attempt++ {
		if err = w.store.Append(ctx, records); err == nil {
			return nil
		}
		w.logger.WarnContext(ctx, "failed to persist ledger records",
			"attempt", attempt,
			"error", err,
		)
		if attempt == appendAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(appendBackoff * time.Duration(attempt)):
		}
	}
	return err
}
