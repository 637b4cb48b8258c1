// Package service runs wallet, factory and session key operations as ledger
// transactions on behalf of an explicit caller, and answers reads from chain
// state and the indexer projection.
package service

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"walletcore/internal/chain"
	"walletcore/internal/deploy"
	"walletcore/internal/indexer"
	"walletcore/internal/platform/metrics"
	dErrors "walletcore/pkg/domain-errors"
)

// Ledger is the chain surface the service drives.
type Ledger interface {
	Apply(ctx context.Context, from, to common.Address, fn func(f *chain.Frame) error) (*chain.Receipt, error)
	Send(ctx context.Context, from, to common.Address, value *uint256.Int, data []byte) (*chain.Receipt, error)
	View(ctx context.Context, caller, to common.Address, fn func(f *chain.Frame) error) error
	BalanceOf(addr common.Address) *uint256.Int
	ChainID() *big.Int
	Height() uint64
}

// RecordReader serves indexed history.
type RecordReader interface {
	ListByWallet(ctx context.Context, wallet common.Address, limit int) ([]indexer.Record, error)
	ListTransactions(ctx context.Context, afterSequence uint64, limit int) ([]indexer.Record, error)
}

// Service orchestrates ledger operations against one deployed contract set.
type Service struct {
	ledger    Ledger
	contracts *deploy.Contracts
	records   RecordReader
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRecords enables history reads. Without it they fail with not_found.
func WithRecords(records RecordReader) Option {
	return func(s *Service) {
		s.records = records
	}
}

// New constructs a Service.
func New(ledger Ledger, contracts *deploy.Contracts, opts ...Option) *Service {
	s := &Service{ledger: ledger, contracts: contracts, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// apply runs fn as one transaction and logs the outcome. Reverts are
// returned unchanged so callers see the typed error.
func (s *Service) apply(ctx context.Context, op string, from, to common.Address, fn func(f *chain.Frame) error) (*chain.Receipt, error) {
	receipt, err := s.ledger.Apply(ctx, from, to, fn)
	s.logOutcome(ctx, op, from, to, receipt, err)
	return receipt, err
}

func (s *Service) logOutcome(ctx context.Context, op string, from, to common.Address, receipt *chain.Receipt, err error) {
	if err != nil {
		s.logger.InfoContext(ctx, "ledger transaction reverted",
			"operation", op,
			"from", from.Hex(),
			"to", to.Hex(),
			"revert", chain.RevertName(err),
			"error", err,
		)
		return
	}
	s.logger.InfoContext(ctx, "ledger transaction committed",
		"operation", op,
		"from", from.Hex(),
		"to", to.Hex(),
		"tx_hash", receipt.TxHash.Hex(),
		"block", receipt.BlockNumber,
		"logs", len(receipt.Logs),
	)
}

func (s *Service) view(ctx context.Context, to common.Address, fn func(f *chain.Frame) error) error {
	return s.ledger.View(ctx, common.Address{}, to, fn)
}

func requireCaller(caller common.Address) error {
	if caller == (common.Address{}) {
		return dErrors.New(dErrors.CodeUnauthorized, "caller identity required")
	}
	return nil
}

// ChainInfo describes the ledger and its system contracts.
type ChainInfo struct {
	ChainID      *big.Int
	Height       uint64
	Admin        common.Address
	EventEmitter common.Address
	SSORegistry  common.Address
	Template     common.Address
	Factory      common.Address
}

func (s *Service) ChainInfo() ChainInfo {
	return ChainInfo{
		ChainID:      s.ledger.ChainID(),
		Height:       s.ledger.Height(),
		Admin:        s.contracts.Admin,
		EventEmitter: s.contracts.EventEmitterAddr,
		SSORegistry:  s.contracts.RegistryAddr,
		Template:     s.contracts.TemplateAddr,
		Factory:      s.contracts.FactoryAddr,
	}
}
