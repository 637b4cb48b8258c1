package deploy

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletcore/internal/chain"
)

func TestGenesis(t *testing.T) {
	c := chain.New()
	admin := common.HexToAddress("0xad")

	contracts, err := Genesis(context.Background(), c, admin)
	require.NoError(t, err)

	for _, addr := range []common.Address{
		contracts.EventEmitterAddr,
		contracts.RegistryAddr,
		contracts.TemplateAddr,
		contracts.FactoryAddr,
	} {
		assert.True(t, c.ContractAt(addr), addr.Hex())
	}
	assert.Equal(t, contracts.FactoryAddr, contracts.EventEmitter.Factory())
	assert.Equal(t, admin, contracts.EventEmitter.Owner())
	assert.Equal(t, admin, contracts.Registry.Owner())
	assert.Equal(t, admin, contracts.Factory.Owner())
	assert.Equal(t, contracts.TemplateAddr, contracts.Factory.Implementation())
	assert.Equal(t, uint64(5), c.Height())
}
