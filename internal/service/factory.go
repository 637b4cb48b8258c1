package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
	dErrors "walletcore/pkg/domain-errors"
)

// CreateWallet deploys a wallet for owner. A nil salt selects the factory's
// default salt for owner.
func (s *Service) CreateWallet(ctx context.Context, caller, owner common.Address, salt *common.Hash) (*Provisioned, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	fa := s.contracts.Factory
	var addr common.Address
	receipt, err := s.apply(ctx, "factory.create_wallet", caller, s.contracts.FactoryAddr, func(f *chain.Frame) error {
		var err error
		if salt == nil {
			addr, err = fa.CreateWallet(f, owner)
		} else {
			addr, err = fa.CreateWalletWithSalt(f, owner, *salt)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncWalletsProvisioned("created", 1)
	}
	return &Provisioned{Wallet: addr, Receipt: receipt}, nil
}

// PredictWalletAddress returns the address CreateWallet would deploy to. A
// nil salt predicts the default salt for owner.
func (s *Service) PredictWalletAddress(ctx context.Context, owner common.Address, salt *common.Hash) (common.Address, common.Hash, error) {
	fa := s.contracts.Factory
	var (
		addr common.Address
		used common.Hash
	)
	var requested common.Hash
	if salt != nil {
		requested = *salt
	}
	err := s.view(ctx, s.contracts.FactoryAddr, func(f *chain.Frame) error {
		addr, used = fa.PredictWalletAddress(f, owner, requested)
		return nil
	})
	return addr, used, err
}

// DeployWallets pre-deploys count pooled wallets. Only the factory owner may
// call it.
func (s *Service) DeployWallets(ctx context.Context, caller common.Address, count int) (*Pool, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	var wallets []common.Address
	receipt, err := s.apply(ctx, "factory.deploy_wallets", caller, s.contracts.FactoryAddr, func(f *chain.Frame) error {
		var err error
		wallets, err = s.contracts.Factory.DeployWallets(f, count)
		return err
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncWalletsProvisioned("predeployed", len(wallets))
	}
	return &Pool{Wallets: wallets, Receipt: receipt}, nil
}

// RetireWallet detaches a factory wallet and deregisters it from the ledger.
func (s *Service) RetireWallet(ctx context.Context, caller, wallet common.Address) (*chain.Receipt, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return s.apply(ctx, "factory.retire_wallet", caller, s.contracts.FactoryAddr, func(f *chain.Frame) error {
		return s.contracts.Factory.RetireWallet(f, wallet)
	})
}

// AssignWallet binds owner to a pooled wallet.
func (s *Service) AssignWallet(ctx context.Context, caller, wallet, owner common.Address) (*chain.Receipt, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	receipt, err := s.apply(ctx, "factory.assign_wallet", caller, s.contracts.FactoryAddr, func(f *chain.Frame) error {
		return s.contracts.Factory.AssignWallet(f, wallet, owner)
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncWalletsProvisioned("assigned", 1)
	}
	return receipt, nil
}

// WalletOf returns the wallet owned by owner.
func (s *Service) WalletOf(ctx context.Context, owner common.Address) (common.Address, error) {
	var (
		addr common.Address
		ok   bool
	)
	if err := s.view(ctx, s.contracts.FactoryAddr, func(*chain.Frame) error {
		addr, ok = s.contracts.Factory.GetWallet(owner)
		return nil
	}); err != nil {
		return common.Address{}, err
	}
	if !ok {
		return common.Address{}, dErrors.New(dErrors.CodeNotFound, "owner has no wallet")
	}
	return addr, nil
}

// UnassignedWallets lists the pool in its current order.
func (s *Service) UnassignedWallets(ctx context.Context) ([]common.Address, error) {
	var out []common.Address
	err := s.view(ctx, s.contracts.FactoryAddr, func(*chain.Frame) error {
		fa := s.contracts.Factory
		n := fa.UnassignedCount()
		out = make([]common.Address, 0, n)
		for i := 0; i < n; i++ {
			addr, err := fa.UnassignedWalletAt(i)
			if err != nil {
				return err
			}
			out = append(out, addr)
		}
		return nil
	})
	return out, err
}

func (s *Service) FactoryStatus(ctx context.Context) (FactoryStatus, error) {
	var st FactoryStatus
	err := s.view(ctx, s.contracts.FactoryAddr, func(*chain.Frame) error {
		fa := s.contracts.Factory
		st = FactoryStatus{
			Address:        s.contracts.FactoryAddr,
			Owner:          fa.Owner(),
			Implementation: fa.Implementation(),
			EventEmitter:   fa.EventEmitter(),
			SSORegistry:    fa.SSORegistry(),
			Paused:         fa.Paused(),
			TotalWallets:   fa.TotalWallets(),
			Unassigned:     fa.UnassignedCount(),
			DeployCounter:  fa.DeployCounter(),
		}
		return nil
	})
	return st, err
}

// SetFactoryPaused pauses or unpauses wallet provisioning.
func (s *Service) SetFactoryPaused(ctx context.Context, caller common.Address, paused bool) (*chain.Receipt, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	op := "factory.unpause"
	if paused {
		op = "factory.pause"
	}
	return s.apply(ctx, op, caller, s.contracts.FactoryAddr, func(f *chain.Frame) error {
		if paused {
			return s.contracts.Factory.Pause(f)
		}
		return s.contracts.Factory.Unpause(f)
	})
}
