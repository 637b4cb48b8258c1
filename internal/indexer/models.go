// Package indexer projects ledger receipts into queryable event records and
// fans them out to stream publishers.
package indexer

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Record is one event log as stored by the indexer. (TxHash, LogIndex)
// identifies it; ID is derived from that pair so it is stable across replays.
type Record struct {
	ID          uuid.UUID       `json:"id"`
	TxHash      common.Hash     `json:"txHash"`
	LogIndex    uint            `json:"logIndex"`
	BlockNumber uint64          `json:"blockNumber"`
	BlockTime   uint64          `json:"blockTime"`
	Contract    common.Address  `json:"contract"`
	Event       string          `json:"event"`
	Wallet      common.Address  `json:"wallet"`
	Sequence    uint64          `json:"sequence,omitempty"`
	Payload     json.RawMessage `json:"payload"`
}

// TransactionEvent is the event name of canonical execution records.
const TransactionEvent = "TransactionExecuted"

var recordNamespace = uuid.MustParse("5b0e4a2c-6f1d-4c57-9a53-0c6a8e1f7d21")

// RecordID derives the id of the record at (txHash, logIndex).
func RecordID(txHash common.Hash, logIndex uint) uuid.UUID {
	var buf [common.HashLength + 8]byte
	copy(buf[:], txHash[:])
	for i := 0; i < 8; i++ {
		buf[common.HashLength+i] = byte(uint64(logIndex) >> (56 - 8*i))
	}
	return uuid.NewSHA1(recordNamespace, buf[:])
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// NormalizeLimit clamps a requested page size.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
