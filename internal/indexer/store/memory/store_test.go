package memory_test

import (
	"testing"

	"walletcore/internal/indexer"
	"walletcore/internal/indexer/store/memory"
	"walletcore/internal/indexer/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(*testing.T) indexer.Store { return memory.New() })
}
