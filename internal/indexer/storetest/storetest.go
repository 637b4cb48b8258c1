// Package storetest holds behaviour shared by every indexer.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletcore/internal/indexer"
	"walletcore/pkg/platform/sentinel"
)

var (
	WalletA = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	WalletB = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	Emitter = common.HexToAddress("0x00000000000000000000000000000000000000e0")
)

// Record builds a record for block n, log index i.
func Record(block uint64, logIndex uint, wallet common.Address, event string, sequence uint64) indexer.Record {
	txHash := common.BigToHash(new(big.Int).SetUint64(block))
	payload := fmt.Sprintf(`{"wallet":%q,"sequence":%d}`, wallet.Hex(), sequence)
	return indexer.Record{
		ID:          indexer.RecordID(txHash, logIndex),
		TxHash:      txHash,
		LogIndex:    logIndex,
		BlockNumber: block,
		BlockTime:   1_700_000_000 + block,
		Contract:    Emitter,
		Event:       event,
		Wallet:      wallet,
		Sequence:    sequence,
		Payload:     []byte(payload),
	}
}

// Run exercises a store. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) indexer.Store) {
	ctx := context.Background()

	t.Run("append is idempotent per log position", func(t *testing.T) {
		store := newStore(t)
		rec := Record(1, 0, WalletA, indexer.TransactionEvent, 1)
		require.NoError(t, store.Append(ctx, []indexer.Record{rec}))

		dup := rec
		dup.Event = "Rewritten"
		require.NoError(t, store.Append(ctx, []indexer.Record{dup, rec}))

		got, err := store.Get(ctx, rec.TxHash, rec.LogIndex)
		require.NoError(t, err)
		assertRecord(t, rec, got)

		all, err := store.ListByWallet(ctx, WalletA, 0)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("get of an unknown position is not found", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, common.HexToHash("0xdead"), 0)
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})

	t.Run("wallet history is ordered by ledger position", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Append(ctx, []indexer.Record{
			Record(3, 1, WalletA, "SessionKeyAdded", 0),
			Record(2, 0, WalletB, indexer.TransactionEvent, 1),
		}))
		require.NoError(t, store.Append(ctx, []indexer.Record{
			Record(3, 0, WalletA, indexer.TransactionEvent, 2),
			Record(1, 4, WalletA, "WalletCreated", 0),
		}))

		got, err := store.ListByWallet(ctx, WalletA, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "WalletCreated", got[0].Event)
		assert.Equal(t, indexer.TransactionEvent, got[1].Event)
		assert.Equal(t, "SessionKeyAdded", got[2].Event)

		limited, err := store.ListByWallet(ctx, WalletA, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)

		none, err := store.ListByWallet(ctx, common.HexToAddress("0x0c"), 0)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("transactions page by sequence", func(t *testing.T) {
		store := newStore(t)
		var batch []indexer.Record
		for seq := uint64(5); seq >= 1; seq-- {
			batch = append(batch, Record(seq, 0, WalletA, indexer.TransactionEvent, seq))
		}
		batch = append(batch, Record(6, 0, WalletA, "WalletRegistered", 0))
		require.NoError(t, store.Append(ctx, batch))

		first, err := store.ListTransactions(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, uint64(1), first[0].Sequence)
		assert.Equal(t, uint64(2), first[1].Sequence)

		rest, err := store.ListTransactions(ctx, first[1].Sequence, 0)
		require.NoError(t, err)
		require.Len(t, rest, 3)
		assert.Equal(t, uint64(3), rest[0].Sequence)
		assert.Equal(t, uint64(5), rest[2].Sequence)
	})
}

func assertRecord(t *testing.T, want, got indexer.Record) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.TxHash, got.TxHash)
	assert.Equal(t, want.LogIndex, got.LogIndex)
	assert.Equal(t, want.BlockNumber, got.BlockNumber)
	assert.Equal(t, want.BlockTime, got.BlockTime)
	assert.Equal(t, want.Contract, got.Contract)
	assert.Equal(t, want.Event, got.Event)
	assert.Equal(t, want.Wallet, got.Wallet)
	assert.Equal(t, want.Sequence, got.Sequence)
	assert.JSONEq(t, string(want.Payload), string(got.Payload))
}
