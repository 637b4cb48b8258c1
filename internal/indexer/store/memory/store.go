package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/indexer"
	"walletcore/pkg/platform/sentinel"
)

type key struct {
	txHash   common.Hash
	logIndex uint
}

// Store keeps records in memory, in append order.
type Store struct {
	mu      sync.RWMutex
	records []indexer.Record
	index   map[key]int
}

func New() *Store {
	return &Store{index: make(map[key]int)}
}

func (s *Store) Append(_ context.Context, records []indexer.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		k := key{rec.TxHash, rec.LogIndex}
		if _, ok := s.index[k]; ok {
			continue
		}
		s.index[k] = len(s.records)
		s.records = append(s.records, rec)
	}
	return nil
}

func (s *Store) Get(_ context.Context, txHash common.Hash, logIndex uint) (indexer.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[key{txHash, logIndex}]
	if !ok {
		return indexer.Record{}, sentinel.ErrNotFound
	}
	return s.records[i], nil
}

func (s *Store) ListByWallet(_ context.Context, wallet common.Address, limit int) ([]indexer.Record, error) {
	limit = indexer.NormalizeLimit(limit)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []indexer.Record
	for _, rec := range s.records {
		if rec.Wallet == wallet {
			out = append(out, rec)
		}
	}
	sortByPosition(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListTransactions(_ context.Context, afterSequence uint64, limit int) ([]indexer.Record, error) {
	limit = indexer.NormalizeLimit(limit)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []indexer.Record
	for _, rec := range s.records {
		if rec.Event == indexer.TransactionEvent && rec.Sequence > afterSequence {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortByPosition(records []indexer.Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].BlockNumber != records[j].BlockNumber {
			return records[i].BlockNumber < records[j].BlockNumber
		}
		return records[i].LogIndex < records[j].LogIndex
	})
}
