// Package ledger implements the event emitter: the single registry of
// factory-created wallets and the append-only stream of their execution
// records.
package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"walletcore/internal/access"
	"walletcore/internal/chain"
	dErrors "walletcore/pkg/domain-errors"
)

var (
	ErrCallerNotFactory        = chain.NewRevert("CallerNotFactory", dErrors.CodeForbidden, "caller is not the factory")
	ErrUnauthorizedCaller      = chain.NewRevert("UnauthorizedCaller", dErrors.CodeForbidden, "caller is not a registered wallet")
	ErrWalletAlreadyRegistered = chain.NewRevert("WalletAlreadyRegistered", dErrors.CodeConflict, "wallet already registered")
	ErrWalletNotRegistered     = chain.NewRevert("WalletNotRegistered", dErrors.CodeNotFound, "wallet not registered")
	ErrInvalidFactory          = chain.NewRevert("InvalidFactory", dErrors.CodeInvalidInput, "factory address is zero")
)

// EventEmitter accepts registrations from the factory and execution records
// from registered wallets.
type EventEmitter struct {
	access.Ownable
	access.Pausable

	factory           common.Address
	registered        map[common.Address]bool
	walletOwners      map[common.Address]common.Address
	totalTransactions uint64
}

// New is the emitter constructor. The deployer becomes the owner.
func New(f *chain.Frame) (*EventEmitter, error) {
	owner, err := access.NewOwnable(f, f.Caller())
	if err != nil {
		return nil, err
	}
	return &EventEmitter{
		Ownable:      owner,
		registered:   make(map[common.Address]bool),
		walletOwners: make(map[common.Address]common.Address),
	}, nil
}

func (e *EventEmitter) SetFactory(f *chain.Frame, factory common.Address) error {
	if err := e.CheckOwner(f); err != nil {
		return err
	}
	if factory == (common.Address{}) {
		return ErrInvalidFactory
	}
	previous := e.factory
	chain.Set(f, &e.factory, factory)
	f.Emit(FactoryUpdated{PreviousFactory: previous, NewFactory: factory})
	return nil
}

func (e *EventEmitter) RegisterWallet(f *chain.Frame, wallet, walletOwner common.Address) error {
	if err := e.onlyFactory(f); err != nil {
		return err
	}
	if e.registered[wallet] {
		return ErrWalletAlreadyRegistered
	}
	chain.SetKey(f, e.registered, wallet, true)
	chain.SetKey(f, e.walletOwners, wallet, walletOwner)
	f.Emit(WalletRegistered{Wallet: wallet, Owner: walletOwner})
	return nil
}

func (e *EventEmitter) DeregisterWallet(f *chain.Frame, wallet common.Address) error {
	if err := e.onlyFactory(f); err != nil {
		return err
	}
	if !e.registered[wallet] {
		return ErrWalletNotRegistered
	}
	chain.DeleteKey(f, e.registered, wallet)
	chain.DeleteKey(f, e.walletOwners, wallet)
	f.Emit(WalletDeregistered{Wallet: wallet})
	return nil
}

// UpdateWalletOwner records the owner of a pooled wallet once it is assigned.
func (e *EventEmitter) UpdateWalletOwner(f *chain.Frame, wallet, walletOwner common.Address) error {
	if err := e.onlyFactory(f); err != nil {
		return err
	}
	if !e.registered[wallet] {
		return ErrWalletNotRegistered
	}
	previous := e.walletOwners[wallet]
	chain.SetKey(f, e.walletOwners, wallet, walletOwner)
	f.Emit(WalletOwnerUpdated{Wallet: wallet, PreviousOwner: previous, NewOwner: walletOwner})
	return nil
}

// EmitTransaction appends one execution record for the calling wallet.
func (e *EventEmitter) EmitTransaction(f *chain.Frame, to common.Address, value *uint256.Int, data []byte, txNonce uint64, success bool, returnData []byte) error {
	if !e.registered[f.Caller()] {
		return ErrUnauthorizedCaller
	}
	if err := e.WhenNotPaused(); err != nil {
		return err
	}
	sequence := e.totalTransactions + 1
	chain.Set(f, &e.totalTransactions, sequence)
	f.Emit(TransactionExecuted{
		Wallet:     f.Caller(),
		To:         to,
		Value:      valueOf(value),
		Data:       clone(data),
		Nonce:      txNonce,
		Success:    success,
		ReturnData: clone(returnData),
		Sequence:   sequence,
	})
	return nil
}

func (e *EventEmitter) Pause(f *chain.Frame) error {
	if err := e.CheckOwner(f); err != nil {
		return err
	}
	return e.Pausable.Pause(f)
}

func (e *EventEmitter) Unpause(f *chain.Frame) error {
	if err := e.CheckOwner(f); err != nil {
		return err
	}
	return e.Pausable.Unpause(f)
}

func (e *EventEmitter) Factory() common.Address {
	return e.factory
}

func (e *EventEmitter) IsRegisteredWallet(wallet common.Address) bool {
	return e.registered[wallet]
}

// WalletOwnerOf returns the owner recorded at registration or assignment.
// It is not updated by ownership transfers made directly on the wallet.
func (e *EventEmitter) WalletOwnerOf(wallet common.Address) common.Address {
	return e.walletOwners[wallet]
}

func (e *EventEmitter) TotalTransactions() uint64 {
	return e.totalTransactions
}

func (e *EventEmitter) onlyFactory(f *chain.Frame) error {
	if e.factory == (common.Address{}) || f.Caller() != e.factory {
		return ErrCallerNotFactory
	}
	return nil
}

func valueOf(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(v)
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return []byte{}
	}
	return append([]byte(nil), b...)
}
