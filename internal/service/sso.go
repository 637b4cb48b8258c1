package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
	"walletcore/internal/sso"
)

// RegisterSessionKeyFor registers a key on behalf of wallet. caller must be
// an authorized caller of the registry.
func (s *Service) RegisterSessionKeyFor(ctx context.Context, caller, wallet common.Address, grant SessionKeyGrant) (*chain.Receipt, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	receipt, err := s.apply(ctx, "sso.register_for", caller, s.contracts.RegistryAddr, func(f *chain.Frame) error {
		return s.contracts.Registry.RegisterSessionKeyFor(f, wallet, grant.Signer, grant.ValidAfter, grant.ValidUntil, grant.Permissions)
	})
	if err == nil && s.metrics != nil {
		s.metrics.IncSessionKeyOperation("register")
	}
	return receipt, err
}

func (s *Service) RevokeSessionKeyFor(ctx context.Context, caller, wallet, signer common.Address) (*chain.Receipt, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	receipt, err := s.apply(ctx, "sso.revoke_for", caller, s.contracts.RegistryAddr, func(f *chain.Frame) error {
		return s.contracts.Registry.RevokeSessionKeyFor(f, wallet, signer)
	})
	if err == nil && s.metrics != nil {
		s.metrics.IncSessionKeyOperation("revoke")
	}
	return receipt, err
}

// SetAuthorizedCaller grants or withdraws delegated registration rights.
// Only the registry owner may call it.
func (s *Service) SetAuthorizedCaller(ctx context.Context, caller, target common.Address, allowed bool) (*chain.Receipt, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return s.apply(ctx, "sso.set_authorized_caller", caller, s.contracts.RegistryAddr, func(f *chain.Frame) error {
		return s.contracts.Registry.SetAuthorizedCaller(f, target, allowed)
	})
}

func (s *Service) IsAuthorizedCaller(ctx context.Context, target common.Address) (bool, error) {
	var ok bool
	err := s.view(ctx, s.contracts.RegistryAddr, func(*chain.Frame) error {
		ok = s.contracts.Registry.IsAuthorizedCaller(target)
		return nil
	})
	return ok, err
}

// SessionKeys returns the records of the wallet's active signers.
func (s *Service) SessionKeys(ctx context.Context, wallet common.Address) ([]sso.SessionKey, error) {
	var keys []sso.SessionKey
	err := s.view(ctx, s.contracts.RegistryAddr, func(*chain.Frame) error {
		reg := s.contracts.Registry
		signers := reg.GetActiveSigners(wallet)
		keys = make([]sso.SessionKey, 0, len(signers))
		for _, signer := range signers {
			if key, ok := reg.GetSessionKey(wallet, signer); ok {
				keys = append(keys, key)
			}
		}
		return nil
	})
	return keys, err
}

// ValidateSessionKey reports whether signer may act for wallet with required
// at the next block's timestamp.
func (s *Service) ValidateSessionKey(ctx context.Context, wallet, signer common.Address, required sso.Permission) (bool, error) {
	var ok bool
	err := s.view(ctx, s.contracts.RegistryAddr, func(f *chain.Frame) error {
		ok = s.contracts.Registry.ValidateSessionKey(f, wallet, signer, required)
		return nil
	})
	return ok, err
}
