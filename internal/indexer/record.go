package indexer

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
	"walletcore/internal/factory"
	"walletcore/internal/ledger"
	"walletcore/internal/sso"
)

// FromReceipt converts the logs of a successful receipt into records.
// Failed receipts carry no logs and yield nothing.
func FromReceipt(receipt *chain.Receipt) ([]Record, error) {
	if !receipt.Succeeded() {
		return nil, nil
	}
	records := make([]Record, 0, len(receipt.Logs))
	for _, l := range receipt.Logs {
		payload, err := json.Marshal(l.Event)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", l.Event.EventName(), err)
		}
		rec := Record{
			ID:          RecordID(l.TxHash, l.Index),
			TxHash:      l.TxHash,
			LogIndex:    l.Index,
			BlockNumber: l.BlockNumber,
			BlockTime:   l.BlockTime,
			Contract:    l.Address,
			Event:       l.Event.EventName(),
			Wallet:      walletOf(l),
			Payload:     payload,
		}
		if tx, ok := l.Event.(ledger.TransactionExecuted); ok {
			rec.Sequence = tx.Sequence
		}
		records = append(records, rec)
	}
	return records, nil
}

// walletOf names the wallet a log concerns. Configuration events of the
// factory, emitter and registry concern none. Anything else without a wallet
// field concerns the emitting contract, which for wallet events is the wallet.
func walletOf(l chain.Log) common.Address {
	switch ev := l.Event.(type) {
	case ledger.TransactionExecuted:
		return ev.Wallet
	case ledger.WalletRegistered:
		return ev.Wallet
	case ledger.WalletDeregistered:
		return ev.Wallet
	case ledger.WalletOwnerUpdated:
		return ev.Wallet
	case factory.WalletCreated:
		return ev.Wallet
	case factory.WalletPreDeployed:
		return ev.Wallet
	case factory.WalletAssigned:
		return ev.Wallet
	case factory.WalletRetired:
		return ev.Wallet
	case sso.SessionKeyRegistered:
		return ev.Wallet
	case sso.SessionKeyRevoked:
		return ev.Wallet
	case sso.SessionKeyUpdated:
		return ev.Wallet
	case ledger.FactoryUpdated, sso.AuthorizedCallerUpdated,
		factory.ImplementationUpdated, factory.EventEmitterUpdated, factory.SSORegistryUpdated:
		return common.Address{}
	}
	return l.Address
}
