package stream

import (
	"context"
	"log/slog"

	"walletcore/internal/indexer"
	"walletcore/internal/platform/metrics"
)

// Guarded wraps a publisher with a circuit breaker. While the circuit is open
// batches are dropped and counted instead of attempted, so an unreachable
// stream costs the indexer nothing.
type Guarded struct {
	next    indexer.Publisher
	breaker *Breaker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type GuardOption func(*Guarded)

func WithGuardLogger(logger *slog.Logger) GuardOption {
	return func(g *Guarded) {
		g.logger = logger
	}
}

func WithGuardMetrics(m *metrics.Metrics) GuardOption {
	return func(g *Guarded) {
		g.metrics = m
	}
}

func Guard(next indexer.Publisher, breaker *Breaker, opts ...GuardOption) *Guarded {
	g := &Guarded{next: next, breaker: breaker, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Guarded) Name() string {
	return g.next.Name()
}

// Publish forwards records unless the circuit is open. Errors from the
// wrapped publisher are returned so the caller can log and count them.
func (g *Guarded) Publish(ctx context.Context, records []indexer.Record) error {
	if !g.breaker.Allow() {
		g.logger.DebugContext(ctx, "stream circuit open, dropping records",
			"publisher", g.Name(),
			"records", len(records),
		)
		if g.metrics != nil {
			g.metrics.AddRecordsDropped(g.Name(), len(records))
		}
		return nil
	}

	if err := g.next.Publish(ctx, records); err != nil {
		if g.breaker.RecordFailure() {
			g.logger.WarnContext(ctx, "stream circuit opened",
				"publisher", g.Name(),
				"error", err,
			)
			if g.metrics != nil {
				g.metrics.SetPublisherCircuitOpen(g.Name(), true)
			}
		}
		return err
	}

	if g.breaker.RecordSuccess() {
		g.logger.InfoContext(ctx, "stream circuit closed", "publisher", g.Name())
		if g.metrics != nil {
			g.metrics.SetPublisherCircuitOpen(g.Name(), false)
		}
	}
	return nil
}
