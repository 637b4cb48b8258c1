// Package access holds the ownership, pause and reentrancy primitives that
// gate contract operations. Each primitive journals its state through the
// frame it is mutated in, so a reverted transaction restores it.
package access

import (
	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
)

type OwnershipTransferred struct {
	PreviousOwner common.Address `json:"previousOwner"`
	NewOwner      common.Address `json:"newOwner"`
}

func (OwnershipTransferred) EventName() string { return "OwnershipTransferred" }

// Ownable records exactly one owner. The zero owner means renounced, or not
// yet assigned for pooled wallets.
type Ownable struct {
	owner common.Address
}

// NewOwnable sets the initial owner and emits OwnershipTransferred from the
// zero address.
func NewOwnable(f *chain.Frame, owner common.Address) (Ownable, error) {
	if owner == (common.Address{}) {
		return Ownable{}, &OwnableInvalidOwnerError{Owner: owner}
	}
	f.Emit(OwnershipTransferred{NewOwner: owner})
	return Ownable{owner: owner}, nil
}

// Bind sets the owner without the zero check, for clones that are
// initialized before they are assigned.
func (o *Ownable) Bind(f *chain.Frame, owner common.Address) {
	previous := o.owner
	chain.Set(f, &o.owner, owner)
	if previous != owner {
		f.Emit(OwnershipTransferred{PreviousOwner: previous, NewOwner: owner})
	}
}

func (o *Ownable) Owner() common.Address {
	return o.owner
}

// CheckOwner fails unless the frame's caller is the owner.
func (o *Ownable) CheckOwner(f *chain.Frame) error {
	if f.Caller() != o.owner || o.owner == (common.Address{}) {
		return &OwnableUnauthorizedAccountError{Account: f.Caller()}
	}
	return nil
}

func (o *Ownable) TransferOwnership(f *chain.Frame, newOwner common.Address) error {
	if err := o.CheckOwner(f); err != nil {
		return err
	}
	if newOwner == (common.Address{}) {
		return &OwnableInvalidOwnerError{Owner: newOwner}
	}
	o.transfer(f, newOwner)
	return nil
}

// RenounceOwnership leaves the contract without an owner. Owner-gated
// operations are unreachable afterwards.
func (o *Ownable) RenounceOwnership(f *chain.Frame) error {
	if err := o.CheckOwner(f); err != nil {
		return err
	}
	o.transfer(f, common.Address{})
	return nil
}

func (o *Ownable) transfer(f *chain.Frame, newOwner common.Address) {
	previous := o.owner
	chain.Set(f, &o.owner, newOwner)
	f.Emit(OwnershipTransferred{PreviousOwner: previous, NewOwner: newOwner})
}
