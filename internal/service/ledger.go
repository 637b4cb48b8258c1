package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
	"walletcore/internal/indexer"
	dErrors "walletcore/pkg/domain-errors"
)

func (s *Service) LedgerStatus(ctx context.Context) (LedgerStatus, error) {
	var st LedgerStatus
	err := s.view(ctx, s.contracts.EventEmitterAddr, func(*chain.Frame) error {
		e := s.contracts.EventEmitter
		st = LedgerStatus{
			TotalTransactions: e.TotalTransactions(),
			Factory:           e.Factory(),
			Paused:            e.Paused(),
		}
		return nil
	})
	return st, err
}

// RegisteredOwner returns the owner the ledger has on record for wallet.
func (s *Service) RegisteredOwner(ctx context.Context, wallet common.Address) (common.Address, error) {
	var (
		owner      common.Address
		registered bool
	)
	if err := s.view(ctx, s.contracts.EventEmitterAddr, func(*chain.Frame) error {
		registered = s.contracts.EventEmitter.IsRegisteredWallet(wallet)
		owner = s.contracts.EventEmitter.WalletOwnerOf(wallet)
		return nil
	}); err != nil {
		return common.Address{}, err
	}
	if !registered {
		return common.Address{}, dErrors.New(dErrors.CodeNotFound, "wallet is not registered with the ledger")
	}
	return owner, nil
}

// WalletRecords returns indexed events concerning wallet in ledger order.
func (s *Service) WalletRecords(ctx context.Context, wallet common.Address, limit int) ([]indexer.Record, error) {
	if s.records == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "record history is not enabled")
	}
	records, err := s.records.ListByWallet(ctx, wallet, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list wallet records")
	}
	return records, nil
}

// Transactions pages canonical execution records by sequence.
func (s *Service) Transactions(ctx context.Context, afterSequence uint64, limit int) ([]indexer.Record, error) {
	if s.records == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "record history is not enabled")
	}
	records, err := s.records.ListTransactions(ctx, afterSequence, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transactions")
	}
	return records, nil
}
