package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type FactoryUpdated struct {
	PreviousFactory common.Address `json:"previousFactory"`
	NewFactory      common.Address `json:"newFactory"`
}

type WalletRegistered struct {
	Wallet common.Address `json:"wallet"`
	Owner  common.Address `json:"owner"`
}

type WalletDeregistered struct {
	Wallet common.Address `json:"wallet"`
}

type WalletOwnerUpdated struct {
	Wallet        common.Address `json:"wallet"`
	PreviousOwner common.Address `json:"previousOwner"`
	NewOwner      common.Address `json:"newOwner"`
}

// TransactionExecuted is the canonical execution record. Sequence is the
// running total of records and increases by exactly one per record.
type TransactionExecuted struct {
	Wallet     common.Address `json:"wallet"`
	To         common.Address `json:"to"`
	Value      *uint256.Int   `json:"value"`
	Data       []byte         `json:"data"`
	Nonce      uint64         `json:"nonce"`
	Success    bool           `json:"success"`
	ReturnData []byte         `json:"returnData"`
	Sequence   uint64         `json:"sequence"`
}

func (FactoryUpdated) EventName() string { return "FactoryUpdated" }
func (WalletRegistered) EventName() string { return "WalletRegistered" }
func (WalletDeregistered) EventName() string { return "WalletDeregistered" }
func (WalletOwnerUpdated) EventName() string { return "WalletOwnerUpdated" }
func (TransactionExecuted) EventName() string { return "TransactionExecuted" }
