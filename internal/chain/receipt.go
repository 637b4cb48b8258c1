package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Event is a typed ledger record emitted by a contract.
type Event interface {
	EventName() string
}

// Log is an event stamped with its position in the ledger.
type Log struct {
	Address     common.Address
	Index       uint
	Event       Event
	BlockNumber uint64
	BlockTime   uint64
	TxHash      common.Hash
}

// Status is the outcome of a ledger transaction.
type Status uint8

const (
	StatusFailed  Status = 0
	StatusSuccess Status = 1
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failed"
}

// Receipt describes one applied ledger transaction. A failed receipt carries
// the revert error and no logs.
type Receipt struct {
	TxHash      common.Hash
	From        common.Address
	To          common.Address
	BlockNumber uint64
	BlockTime   uint64
	Status      Status
	Logs        []Log
	Err         error
}

func (r *Receipt) Succeeded() bool {
	return r != nil && r.Status == StatusSuccess
}

// Sink receives receipts after the chain lock has been released.
// Implementations must not call back into the chain synchronously.
type Sink interface {
	Deliver(ctx context.Context, receipt *Receipt)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, receipt *Receipt)

func (fn SinkFunc) Deliver(ctx context.Context, receipt *Receipt) {
	fn(ctx, receipt)
}
