package service

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"walletcore/internal/chain"
	"walletcore/internal/sso"
	"walletcore/internal/wallet"
)

// Provisioned is the outcome of a wallet creation.
type Provisioned struct {
	Wallet  common.Address
	Receipt *chain.Receipt
}

// Pool is the outcome of a pre-deployment batch.
type Pool struct {
	Wallets []common.Address
	Receipt *chain.Receipt
}

// FactoryStatus is a snapshot of the factory's counters and collaborators.
type FactoryStatus struct {
	Address        common.Address
	Owner          common.Address
	Implementation common.Address
	EventEmitter   common.Address
	SSORegistry    common.Address
	Paused         bool
	TotalWallets   uint64
	Unassigned     int
	DeployCounter  uint64
}

// Execution is the outcome of a single wallet execution.
type Execution struct {
	Result  wallet.Result
	Receipt *chain.Receipt
}

// BatchExecution is the outcome of a batch execution.
type BatchExecution struct {
	Results []wallet.Result
	Receipt *chain.Receipt
}

// SignedCall is an execution authorized by an off-line signature.
type SignedCall struct {
	Call      wallet.Call
	Deadline  uint64
	Signature []byte
}

// WalletInfo is the readable state of a wallet.
type WalletInfo struct {
	Address      common.Address
	Owner        common.Address
	State        wallet.State
	Nonce        uint64
	Balance      *uint256.Int
	Factory      common.Address
	Template     common.Address
	EventEmitter common.Address
	SSORegistry  common.Address
	Metadata     wallet.Metadata
}

// SessionKeyGrant describes a session key to register.
type SessionKeyGrant struct {
	Signer      common.Address
	ValidAfter  uint64
	ValidUntil  uint64
	Permissions sso.Permission
}

// LedgerStatus summarizes the event ledger.
type LedgerStatus struct {
	TotalTransactions uint64
	Factory           common.Address
	Paused            bool
}
