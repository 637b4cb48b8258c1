package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"walletcore/internal/chain"
	"walletcore/internal/wallet"
	dErrors "walletcore/pkg/domain-errors"
)

// Execution paths, used as metric labels.
const (
	pathDirect    = "direct"
	pathBatch     = "batch"
	pathSignature = "signature"
)

// applyWallet runs fn against the wallet at addr inside one transaction.
func (s *Service) applyWallet(ctx context.Context, op string, caller, addr common.Address, fn func(f *chain.Frame, w *wallet.Wallet) error) (*chain.Receipt, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return s.apply(ctx, op, caller, addr, func(f *chain.Frame) error {
		w, err := chain.Resolve[*wallet.Wallet](f, addr)
		if err != nil {
			return err
		}
		return fn(f, w)
	})
}

func (s *Service) viewWallet(ctx context.Context, addr common.Address, fn func(f *chain.Frame, w *wallet.Wallet) error) error {
	return s.view(ctx, addr, func(f *chain.Frame) error {
		w, err := chain.Resolve[*wallet.Wallet](f, addr)
		if err != nil {
			return err
		}
		return fn(f, w)
	})
}

func (s *Service) observeExecution(path string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	s.metrics.IncWalletExecution(path, outcome)
}

// Execute performs one call from the wallet as its owner.
func (s *Service) Execute(ctx context.Context, caller, addr common.Address, call wallet.Call) (*Execution, error) {
	var res wallet.Result
	receipt, err := s.applyWallet(ctx, "wallet.execute", caller, addr, func(f *chain.Frame, w *wallet.Wallet) error {
		var err error
		res, err = w.Execute(f, call.To, call.Value, call.Data)
		return err
	})
	s.observeExecution(pathDirect, err)
	if err != nil {
		return nil, err
	}
	return &Execution{Result: res, Receipt: receipt}, nil
}

// ExecuteBatch performs calls in order; all of them commit or none do.
func (s *Service) ExecuteBatch(ctx context.Context, caller, addr common.Address, calls []wallet.Call) (*BatchExecution, error) {
	targets := make([]common.Address, len(calls))
	values := make([]*uint256.Int, len(calls))
	datas := make([][]byte, len(calls))
	for i, c := range calls {
		targets[i], values[i], datas[i] = c.To, c.Value, c.Data
	}
	var results []wallet.Result
	receipt, err := s.applyWallet(ctx, "wallet.execute_batch", caller, addr, func(f *chain.Frame, w *wallet.Wallet) error {
		var err error
		results, err = w.ExecuteBatch(f, targets, values, datas)
		return err
	})
	s.observeExecution(pathBatch, err)
	if err != nil {
		return nil, err
	}
	return &BatchExecution{Results: results, Receipt: receipt}, nil
}

// ExecuteWithSignature submits a signed execution. relayer pays nothing and
// gains no authority; the signature alone authorizes the call.
func (s *Service) ExecuteWithSignature(ctx context.Context, relayer, addr common.Address, req SignedCall) (*Execution, error) {
	var res wallet.Result
	receipt, err := s.applyWallet(ctx, "wallet.execute_signed", relayer, addr, func(f *chain.Frame, w *wallet.Wallet) error {
		var err error
		res, err = w.ExecuteWithSignature(f, req.Call.To, req.Call.Value, req.Call.Data, req.Deadline, req.Signature)
		return err
	})
	s.observeExecution(pathSignature, err)
	if err != nil {
		return nil, err
	}
	return &Execution{Result: res, Receipt: receipt}, nil
}

// SigningDigest returns the digest a signer must sign to authorize call at
// the wallet's current nonce.
func (s *Service) SigningDigest(ctx context.Context, addr common.Address, call wallet.Call, deadline uint64) (common.Hash, uint64, error) {
	var (
		digest common.Hash
		nonce  uint64
	)
	err := s.viewWallet(ctx, addr, func(f *chain.Frame, w *wallet.Wallet) error {
		nonce = w.Nonce()
		digest = w.Digest(f, wallet.ExecuteRequest{
			To:       call.To,
			Value:    call.Value,
			Data:     call.Data,
			Nonce:    nonce,
			Deadline: deadline,
		})
		return nil
	})
	return digest, nonce, err
}

func (s *Service) SetMetadata(ctx context.Context, caller, addr common.Address, md wallet.Metadata) (*chain.Receipt, error) {
	return s.applyWallet(ctx, "wallet.set_metadata", caller, addr, func(f *chain.Frame, w *wallet.Wallet) error {
		return w.SetMetadata(f, md)
	})
}

// AddSessionKey registers a session key through the wallet.
func (s *Service) AddSessionKey(ctx context.Context, caller, addr common.Address, grant SessionKeyGrant) (*chain.Receipt, error) {
	receipt, err := s.applyWallet(ctx, "wallet.add_session_key", caller, addr, func(f *chain.Frame, w *wallet.Wallet) error {
		return w.AddSessionKey(f, grant.Signer, grant.ValidAfter, grant.ValidUntil, grant.Permissions)
	})
	if err == nil && s.metrics != nil {
		s.metrics.IncSessionKeyOperation("register")
	}
	return receipt, err
}

// RemoveSessionKey revokes a session key through the wallet.
func (s *Service) RemoveSessionKey(ctx context.Context, caller, addr, signer common.Address) (*chain.Receipt, error) {
	receipt, err := s.applyWallet(ctx, "wallet.remove_session_key", caller, addr, func(f *chain.Frame, w *wallet.Wallet) error {
		return w.RemoveSessionKey(f, signer)
	})
	if err == nil && s.metrics != nil {
		s.metrics.IncSessionKeyOperation("revoke")
	}
	return receipt, err
}

func (s *Service) SetWalletPaused(ctx context.Context, caller, addr common.Address, paused bool) (*chain.Receipt, error) {
	op := "wallet.unpause"
	if paused {
		op = "wallet.pause"
	}
	return s.applyWallet(ctx, op, caller, addr, func(f *chain.Frame, w *wallet.Wallet) error {
		if paused {
			return w.Pause(f)
		}
		return w.Unpause(f)
	})
}

// Deposit sends native value from caller to the wallet.
func (s *Service) Deposit(ctx context.Context, caller, addr common.Address, amount *uint256.Int) (*chain.Receipt, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if amount == nil || amount.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "deposit amount must be positive")
	}
	receipt, err := s.ledger.Send(ctx, caller, addr, amount, nil)
	s.logOutcome(ctx, "wallet.deposit", caller, addr, receipt, err)
	return receipt, err
}

func (s *Service) WalletInfo(ctx context.Context, addr common.Address) (*WalletInfo, error) {
	var info *WalletInfo
	err := s.viewWallet(ctx, addr, func(f *chain.Frame, w *wallet.Wallet) error {
		info = &WalletInfo{
			Address:      addr,
			Owner:        w.Owner(),
			State:        w.State(),
			Nonce:        w.Nonce(),
			Balance:      w.GetBalance(f),
			Factory:      w.Factory(),
			Template:     w.Template(),
			EventEmitter: w.EventEmitter(),
			SSORegistry:  w.SSORegistry(),
			Metadata:     w.Metadata(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Transaction returns the wallet's history entry for nonce.
func (s *Service) Transaction(ctx context.Context, addr common.Address, nonce uint64) (*wallet.Transaction, error) {
	var (
		tx wallet.Transaction
		ok bool
	)
	if err := s.viewWallet(ctx, addr, func(_ *chain.Frame, w *wallet.Wallet) error {
		tx, ok = w.GetTransaction(nonce)
		return nil
	}); err != nil {
		return nil, err
	}
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "transaction not found")
	}
	return &tx, nil
}

// TokenBalance returns the wallet's balance of an ERC-20 style token.
func (s *Service) TokenBalance(ctx context.Context, addr, token common.Address) (*uint256.Int, error) {
	var balance *uint256.Int
	err := s.viewWallet(ctx, addr, func(f *chain.Frame, w *wallet.Wallet) error {
		var err error
		balance, err = w.GetTokenBalance(f, token)
		return err
	})
	return balance, err
}
