// Package sso implements the session key registry: time and permission
// scoped delegate keys that may authorize actions on a wallet without owning
// it.
package sso

import (
	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/access"
	"walletcore/internal/chain"
)

// SessionKey is the stored record for a (wallet, signer) pair. Revocation
// clears Active; records are never removed.
type SessionKey struct {
	Wallet      common.Address `json:"wallet"`
	Signer      common.Address `json:"signer"`
	ValidAfter  uint64         `json:"validAfter"`
	ValidUntil  uint64         `json:"validUntil"`
	Permissions Permission     `json:"permissions"`
	Active      bool           `json:"active"`
}

// ValidAt reports whether the key is active and now falls in
// [ValidAfter, ValidUntil).
func (k SessionKey) ValidAt(now uint64) bool {
	return k.Active && k.ValidAfter <= now && now < k.ValidUntil
}

type walletKeys struct {
	keys    map[common.Address]*SessionKey
	signers []common.Address
	active  int
}

// Registry holds session keys for every wallet.
type Registry struct {
	access.Ownable

	wallets           map[common.Address]*walletKeys
	authorizedCallers map[common.Address]bool
}

// New is the registry constructor. The deployer becomes the owner.
func New(f *chain.Frame) (*Registry, error) {
	owner, err := access.NewOwnable(f, f.Caller())
	if err != nil {
		return nil, err
	}
	return &Registry{
		Ownable:           owner,
		wallets:           make(map[common.Address]*walletKeys),
		authorizedCallers: make(map[common.Address]bool),
	}, nil
}

// RegisterSessionKey registers signer for the calling wallet.
func (r *Registry) RegisterSessionKey(f *chain.Frame, signer common.Address, validAfter, validUntil uint64, permissions Permission) error {
	return r.register(f, f.Caller(), signer, validAfter, validUntil, permissions)
}

// RegisterSessionKeyFor registers signer for wallet on behalf of an
// authorized caller.
func (r *Registry) RegisterSessionKeyFor(f *chain.Frame, wallet, signer common.Address, validAfter, validUntil uint64, permissions Permission) error {
	if !r.authorizedCallers[f.Caller()] {
		return ErrUnauthorizedCaller
	}
	return r.register(f, wallet, signer, validAfter, validUntil, permissions)
}

func (r *Registry) register(f *chain.Frame, wallet, signer common.Address, validAfter, validUntil uint64, permissions Permission) error {
	if signer == (common.Address{}) {
		return ErrInvalidSigner
	}
	if err := checkWindow(validAfter, validUntil); err != nil {
		return err
	}

	wk := r.walletKeys(f, wallet)
	existing, known := wk.keys[signer]
	if known && existing.Active {
		return &SessionKeyAlreadyExistsError{Wallet: wallet, Signer: signer}
	}
	if wk.active >= MaxKeysPerWallet {
		return ErrMaxKeysPerWalletReached
	}

	chain.SetKey(f, wk.keys, signer, &SessionKey{
		Wallet:      wallet,
		Signer:      signer,
		ValidAfter:  validAfter,
		ValidUntil:  validUntil,
		Permissions: permissions,
		Active:      true,
	})
	if !known {
		chain.Append(f, &wk.signers, signer)
	}
	chain.Set(f, &wk.active, wk.active+1)

	f.Emit(SessionKeyRegistered{
		Wallet:      wallet,
		Signer:      signer,
		ValidAfter:  validAfter,
		ValidUntil:  validUntil,
		Permissions: permissions,
	})
	return nil
}

// RevokeSessionKey revokes signer for the calling wallet.
func (r *Registry) RevokeSessionKey(f *chain.Frame, signer common.Address) error {
	return r.revoke(f, f.Caller(), signer)
}

// RevokeSessionKeyFor revokes signer for wallet. The caller must be an
// authorized caller or the signer itself.
func (r *Registry) RevokeSessionKeyFor(f *chain.Frame, wallet, signer common.Address) error {
	if f.Caller() != signer && !r.authorizedCallers[f.Caller()] {
		return ErrUnauthorizedCaller
	}
	return r.revoke(f, wallet, signer)
}

func (r *Registry) revoke(f *chain.Frame, wallet, signer common.Address) error {
	key := r.activeKey(wallet, signer)
	if key == nil {
		return &SessionKeyNotFoundError{Wallet: wallet, Signer: signer}
	}
	wk := r.wallets[wallet]
	chain.Set(f, &key.Active, false)
	chain.Set(f, &wk.active, wk.active-1)
	f.Emit(SessionKeyRevoked{Wallet: wallet, Signer: signer, RevokedBy: f.Caller()})
	return nil
}

// UpdateSessionKey changes the expiry and permissions of an active key of
// the calling wallet. The window rules of registration apply.
func (r *Registry) UpdateSessionKey(f *chain.Frame, signer common.Address, validUntil uint64, permissions Permission) error {
	wallet := f.Caller()
	key := r.activeKey(wallet, signer)
	if key == nil {
		return &SessionKeyNotFoundError{Wallet: wallet, Signer: signer}
	}
	if err := checkWindow(key.ValidAfter, validUntil); err != nil {
		return err
	}
	chain.Set(f, &key.ValidUntil, validUntil)
	chain.Set(f, &key.Permissions, permissions)
	f.Emit(SessionKeyUpdated{Wallet: wallet, Signer: signer, ValidUntil: validUntil, Permissions: permissions})
	return nil
}

func (r *Registry) SetAuthorizedCaller(f *chain.Frame, caller common.Address, allowed bool) error {
	if err := r.CheckOwner(f); err != nil {
		return err
	}
	if allowed {
		chain.SetKey(f, r.authorizedCallers, caller, true)
	} else {
		chain.DeleteKey(f, r.authorizedCallers, caller)
	}
	f.Emit(AuthorizedCallerUpdated{Caller: caller, Allowed: allowed})
	return nil
}

func (r *Registry) IsAuthorizedCaller(caller common.Address) bool {
	return r.authorizedCallers[caller]
}

// GetActiveSigners returns the wallet's active signers in the order they
// were first registered.
func (r *Registry) GetActiveSigners(wallet common.Address) []common.Address {
	wk, ok := r.wallets[wallet]
	if !ok {
		return []common.Address{}
	}
	signers := make([]common.Address, 0, wk.active)
	for _, signer := range wk.signers {
		if wk.keys[signer].Active {
			signers = append(signers, signer)
		}
	}
	return signers
}

// GetSessionKey returns the stored record whether or not it is active.
func (r *Registry) GetSessionKey(wallet, signer common.Address) (SessionKey, bool) {
	wk, ok := r.wallets[wallet]
	if !ok {
		return SessionKey{}, false
	}
	key, ok := wk.keys[signer]
	if !ok {
		return SessionKey{}, false
	}
	return *key, true
}

func (r *Registry) ActiveKeyCount(wallet common.Address) int {
	if wk, ok := r.wallets[wallet]; ok {
		return wk.active
	}
	return 0
}

// ValidateSessionKey reports whether signer may act for wallet with the
// required permissions at the frame's block time. It never mutates state.
func (r *Registry) ValidateSessionKey(f *chain.Frame, wallet, signer common.Address, required Permission) bool {
	key, ok := r.GetSessionKey(wallet, signer)
	if !ok {
		return false
	}
	return key.ValidAt(f.BlockTime()) && key.Permissions.Satisfies(required)
}

func (r *Registry) walletKeys(f *chain.Frame, wallet common.Address) *walletKeys {
	if wk, ok := r.wallets[wallet]; ok {
		return wk
	}
	wk := &walletKeys{keys: make(map[common.Address]*SessionKey)}
	chain.SetKey(f, r.wallets, wallet, wk)
	return wk
}

func (r *Registry) activeKey(wallet, signer common.Address) *SessionKey {
	wk, ok := r.wallets[wallet]
	if !ok {
		return nil
	}
	key, ok := wk.keys[signer]
	if !ok || !key.Active {
		return nil
	}
	return key
}

func checkWindow(validAfter, validUntil uint64) error {
	if validUntil <= validAfter {
		return ErrInvalidValidityWindow
	}
	if validUntil-validAfter > uint64(MaxSessionDuration.Seconds()) {
		return ErrSessionDurationTooLong
	}
	return nil
}
