package indexer

import (
	"context"
	"sync"

	"walletcore/internal/chain"
)

// Inbox is the chain.Sink feeding the worker. Deliver blocks while the buffer
// is full so no committed receipt is dropped; it returns immediately once the
// inbox is closed.
type Inbox struct {
	ch     chan *chain.Receipt
	closed chan struct{}
	once   sync.Once
}

func NewInbox(size int) *Inbox {
	return &Inbox{
		ch:     make(chan *chain.Receipt, size),
		closed: make(chan struct{}),
	}
}

// Deliver implements chain.Sink. Reverted receipts and receipts without logs
// are skipped.
func (i *Inbox) Deliver(_ context.Context, receipt *chain.Receipt) {
	if !receipt.Succeeded() || len(receipt.Logs) == 0 {
		return
	}
	select {
	case i.ch <- receipt:
	case <-i.closed:
	}
}

// C is the receive side for the worker.
func (i *Inbox) C() <-chan *chain.Receipt {
	return i.ch
}

// Close stops accepting receipts.
func (i *Inbox) Close() {
	i.once.Do(func() { close(i.closed) })
}

// Serve runs w until it returns, then closes the inbox so ledger writes stop
// waiting on a worker that is gone.
func (i *Inbox) Serve(ctx context.Context, w *Worker) error {
	defer i.Close()
	return w.Run(ctx)
}
