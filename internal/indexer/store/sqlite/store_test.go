package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"walletcore/internal/indexer"
	"walletcore/internal/indexer/store/sqlite"
	"walletcore/internal/indexer/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) indexer.Store {
		store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "  ")
	require.Error(t, err)
}

func TestReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	rec := storetest.Record(1, 0, storetest.WalletA, indexer.TransactionEvent, 1)
	require.NoError(t, store.Append(ctx, []indexer.Record{rec}))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get(ctx, rec.TxHash, rec.LogIndex)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
}
