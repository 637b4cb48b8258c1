// Package wallet implements the smart wallet: a programmable account with one
// owner, a monotonic nonce and delegated authorization through session keys
// and signed requests.
//
// Wallets are created as clones of a shared template by the factory. A clone
// starts uninitialized, is initialized exactly once by the factory that
// deployed it, and may be bound to an owner either then or later when it is
// assigned from the factory's pool.
package wallet

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"walletcore/internal/access"
	"walletcore/internal/chain"
	"walletcore/internal/sso"
	"walletcore/internal/token"
)

// State is the lifecycle state of a wallet.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateActive        State = "active"
	StatePaused        State = "paused"
)

// Metadata is the free-form profile record of a wallet.
type Metadata struct {
	ExternalID  string   `json:"externalId"`
	OnChainID   string   `json:"onChainId"`
	Alias       string   `json:"alias"`
	SocialLinks []string `json:"socialLinks"`
}

func (m Metadata) clone() Metadata {
	m.SocialLinks = slices.Clone(m.SocialLinks)
	return m
}

// Transaction is the history entry stored for each consumed nonce.
type Transaction struct {
	Nonce       uint64         `json:"nonce"`
	To          common.Address `json:"to"`
	Value       *uint256.Int   `json:"value"`
	Data        []byte         `json:"data"`
	Success     bool           `json:"success"`
	ReturnData  []byte         `json:"returnData"`
	Executor    common.Address `json:"executor"`
	BlockNumber uint64         `json:"blockNumber"`
	Timestamp   uint64         `json:"timestamp"`
}

// EventEmitter is the ledger the wallet reports executions to.
type EventEmitter interface {
	EmitTransaction(f *chain.Frame, to common.Address, value *uint256.Int, data []byte, txNonce uint64, success bool, returnData []byte) error
}

// SessionKeyRegistry is the subset of the session key registry the wallet
// drives.
type SessionKeyRegistry interface {
	RegisterSessionKey(f *chain.Frame, signer common.Address, validAfter, validUntil uint64, permissions sso.Permission) error
	RevokeSessionKey(f *chain.Frame, signer common.Address) error
	ValidateSessionKey(f *chain.Frame, wallet, signer common.Address, required sso.Permission) bool
}

// Wallet is one clone instance.
type Wallet struct {
	access.Ownable
	access.Pausable
	access.ReentrancyGuard

	factory      common.Address
	template     common.Address
	eventEmitter common.Address
	ssoRegistry  common.Address
	initialized  bool
	nonce        uint64
	metadata     Metadata
	history      map[uint64]Transaction
}

func newClone(f *chain.Frame, template common.Address) *Wallet {
	return &Wallet{
		factory:  f.Caller(),
		template: template,
		history:  make(map[uint64]Transaction),
	}
}

// Initialize binds the owner and collaborators. Only the deploying factory
// may call it, once. A zero owner leaves the wallet unassigned.
func (w *Wallet) Initialize(f *chain.Frame, owner, eventEmitter, ssoRegistry common.Address) error {
	if f.Caller() != w.factory {
		return ErrCallerNotFactory
	}
	if w.initialized {
		return ErrAlreadyInitialized
	}
	chain.Set(f, &w.initialized, true)
	chain.Set(f, &w.eventEmitter, eventEmitter)
	chain.Set(f, &w.ssoRegistry, ssoRegistry)
	w.Bind(f, owner)
	f.Emit(Initialized{
		Owner:        owner,
		Factory:      w.factory,
		EventEmitter: eventEmitter,
		SSORegistry:  ssoRegistry,
	})
	return nil
}

// AssignOwner binds the owner of a pooled wallet. Only the factory may call
// it; general ownership changes go through TransferOwnership.
func (w *Wallet) AssignOwner(f *chain.Frame, newOwner common.Address) error {
	if f.Caller() != w.factory {
		return ErrCallerNotFactory
	}
	if !w.initialized {
		return ErrNotInitialized
	}
	if newOwner == (common.Address{}) {
		return &access.OwnableInvalidOwnerError{Owner: newOwner}
	}
	previous := w.Owner()
	w.Bind(f, newOwner)
	f.Emit(OwnerAssigned{PreviousOwner: previous, NewOwner: newOwner})
	return nil
}

func (w *Wallet) Pause(f *chain.Frame) error {
	if err := w.CheckOwner(f); err != nil {
		return err
	}
	return w.Pausable.Pause(f)
}

func (w *Wallet) Unpause(f *chain.Frame) error {
	if err := w.CheckOwner(f); err != nil {
		return err
	}
	return w.Pausable.Unpause(f)
}

// SetMetadata replaces the whole metadata record.
func (w *Wallet) SetMetadata(f *chain.Frame, metadata Metadata) error {
	if err := w.CheckOwner(f); err != nil {
		return err
	}
	metadata = metadata.clone()
	chain.Set(f, &w.metadata, metadata)
	f.Emit(MetadataUpdated{Metadata: metadata.clone()})
	return nil
}

// AddSessionKey registers signer with the session key registry, with this
// wallet as principal. It does not consume a nonce.
func (w *Wallet) AddSessionKey(f *chain.Frame, signer common.Address, validAfter, validUntil uint64, permissions sso.Permission) error {
	if err := w.CheckOwner(f); err != nil {
		return err
	}
	if err := w.WhenNotPaused(); err != nil {
		return err
	}
	registry, err := w.registry(f)
	if err != nil {
		return err
	}
	err = f.Invoke(w.ssoRegistry, func(child *chain.Frame) error {
		return registry.RegisterSessionKey(child, signer, validAfter, validUntil, permissions)
	})
	if err != nil {
		return err
	}
	f.Emit(SessionKeyAuthorized{Signer: signer, ValidAfter: validAfter, ValidUntil: validUntil, Permissions: permissions})
	return nil
}

// RemoveSessionKey revokes signer in the session key registry.
func (w *Wallet) RemoveSessionKey(f *chain.Frame, signer common.Address) error {
	if err := w.CheckOwner(f); err != nil {
		return err
	}
	registry, err := w.registry(f)
	if err != nil {
		return err
	}
	err = f.Invoke(w.ssoRegistry, func(child *chain.Frame) error {
		return registry.RevokeSessionKey(child, signer)
	})
	if err != nil {
		return err
	}
	f.Emit(SessionKeyRevoked{Signer: signer})
	return nil
}

// Receive accepts plain value transfers and the execute calldata interface.
func (w *Wallet) Receive(f *chain.Frame, data []byte) ([]byte, error) {
	if len(data) == 0 {
		f.Emit(Received{From: f.Caller(), Value: f.Value()})
		return nil, nil
	}
	return w.dispatch(f, data)
}

func (w *Wallet) State() State {
	switch {
	case !w.initialized:
		return StateUninitialized
	case w.Paused():
		return StatePaused
	default:
		return StateActive
	}
}

func (w *Wallet) Nonce() uint64 {
	return w.nonce
}

func (w *Wallet) Factory() common.Address {
	return w.factory
}

// Template is the implementation this wallet was cloned from.
func (w *Wallet) Template() common.Address {
	return w.template
}

func (w *Wallet) EventEmitter() common.Address {
	return w.eventEmitter
}

func (w *Wallet) SSORegistry() common.Address {
	return w.ssoRegistry
}

func (w *Wallet) Metadata() Metadata {
	return w.metadata.clone()
}

// GetTransaction returns the history entry for nonce.
func (w *Wallet) GetTransaction(nonce uint64) (Transaction, bool) {
	tx, ok := w.history[nonce]
	return tx, ok
}

// GetBalance returns the wallet's native balance.
func (w *Wallet) GetBalance(f *chain.Frame) *uint256.Int {
	return f.BalanceOf(f.Self())
}

// GetTokenBalance queries tokenAddr's balanceOf for this wallet.
func (w *Wallet) GetTokenBalance(f *chain.Frame, tokenAddr common.Address) (*uint256.Int, error) {
	query, err := token.EncodeBalanceOf(f.Self())
	if err != nil {
		return nil, err
	}
	ret, err := f.Call(tokenAddr, nil, query)
	if err != nil {
		return nil, err
	}
	return token.DecodeBalance(ret)
}

func (w *Wallet) registry(f *chain.Frame) (SessionKeyRegistry, error) {
	if w.ssoRegistry == (common.Address{}) {
		return nil, ErrNoSSORegistry
	}
	return chain.Resolve[SessionKeyRegistry](f, w.ssoRegistry)
}

// Template is the shared implementation contract wallets are cloned from.
type Template struct {
	Version string
}

// NewInstance creates a clone. It runs as the clone's constructor, called by
// the deploying factory.
func (t *Template) NewInstance(f *chain.Frame, template common.Address) (any, error) {
	return newClone(f, template), nil
}
