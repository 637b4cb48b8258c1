package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Receiver is implemented by contracts that accept calls carrying value or
// calldata. f.Caller() is the calling account and f.Value() the attached value.
type Receiver interface {
	Receive(f *Frame, data []byte) ([]byte, error)
}

type txState struct {
	ctx     context.Context
	chain   *Chain
	origin  common.Address
	hash    common.Hash
	number  uint64
	time    uint64
	journal []func()
	logs    []Log
}

func (tx *txState) root(caller, self common.Address) *Frame {
	return &Frame{tx: tx, caller: caller, self: self, value: new(uint256.Int)}
}

func (tx *txState) snapshot() int {
	return len(tx.journal)
}

func (tx *txState) revertTo(snapshot int) {
	for i := len(tx.journal) - 1; i >= snapshot; i-- {
		tx.journal[i]()
	}
	tx.journal = tx.journal[:snapshot]
}

// Frame is the context a contract runs in: who called it, on whose behalf,
// with what value, and in which block.
type Frame struct {
	tx     *txState
	caller common.Address
	self   common.Address
	value  *uint256.Int
	depth  int
}

// Caller is the immediate caller: an externally owned account for the root
// frame, otherwise the calling contract.
func (f *Frame) Caller() common.Address { return f.caller }

// Self is the address of the contract executing in this frame.
func (f *Frame) Self() common.Address { return f.self }

// Origin is the account that sent the ledger transaction.
func (f *Frame) Origin() common.Address { return f.tx.origin }

func (f *Frame) Value() *uint256.Int { return new(uint256.Int).Set(f.value) }

func (f *Frame) Context() context.Context { return f.tx.ctx }

func (f *Frame) BlockNumber() uint64 { return f.tx.number }

// BlockTime is the block timestamp in unix seconds.
func (f *Frame) BlockTime() uint64 { return f.tx.time }

func (f *Frame) TxHash() common.Hash { return f.tx.hash }

func (f *Frame) ChainID() *big.Int { return new(big.Int).Set(f.tx.chain.chainID) }

// OnRevert registers undo to run if the enclosing call or transaction fails.
func (f *Frame) OnRevert(undo func()) {
	f.tx.journal = append(f.tx.journal, undo)
}

// Emit appends ev to the transaction's logs under the executing contract's
// address.
func (f *Frame) Emit(ev Event) {
	tx := f.tx
	n := len(tx.logs)
	tx.logs = append(tx.logs, Log{Address: f.self, Event: ev})
	f.OnRevert(func() { tx.logs = tx.logs[:n] })
}

// BalanceOf returns the native balance of addr.
func (f *Frame) BalanceOf(addr common.Address) *uint256.Int {
	if acct, ok := f.tx.chain.accounts[addr]; ok {
		return new(uint256.Int).Set(acct.balance)
	}
	return new(uint256.Int)
}

// Call transfers value from the executing contract to to and delivers data.
// Calls to accounts without a contract only move value. If the callee fails,
// the value transfer and every change the callee made are reverted.
func (f *Frame) Call(to common.Address, value *uint256.Int, data []byte) ([]byte, error) {
	if value == nil {
		value = new(uint256.Int)
	}
	if f.depth+1 > MaxCallDepth {
		return nil, ErrCallDepthExceeded
	}
	snap := f.tx.snapshot()
	if err := f.transfer(f.self, to, value); err != nil {
		return nil, err
	}

	var contract any
	if acct, ok := f.tx.chain.accounts[to]; ok {
		contract = acct.contract
	}
	if contract == nil {
		return nil, nil
	}
	receiver, ok := contract.(Receiver)
	if !ok {
		f.tx.revertTo(snap)
		return nil, &NotPayableError{Address: to}
	}

	ret, err := receiver.Receive(f.child(to, value), data)
	if err != nil {
		f.tx.revertTo(snap)
		return nil, err
	}
	return ret, nil
}

// Invoke runs fn in a child frame executing as to, with the current contract
// as caller and no value. It is the typed counterpart of Call for contracts
// that expose Go methods. Changes made by fn are reverted if it fails.
func (f *Frame) Invoke(to common.Address, fn func(child *Frame) error) error {
	if f.depth+1 > MaxCallDepth {
		return ErrCallDepthExceeded
	}
	snap := f.tx.snapshot()
	if err := fn(f.child(to, new(uint256.Int))); err != nil {
		f.tx.revertTo(snap)
		return err
	}
	return nil
}

// Create deploys a contract at the address derived from the executing
// account and its nonce. build runs as the constructor in a frame whose self
// is the new address.
func (f *Frame) Create(build func(f *Frame) (any, error)) (common.Address, error) {
	acct := f.ensureAccount(f.self)
	addr := crypto.CreateAddress(f.self, acct.nonce)
	Set(f, &acct.nonce, acct.nonce+1)
	return f.deploy(addr, build)
}

// Create2 deploys a contract at the address derived from the executing
// account, salt and the hash of the init code.
func (f *Frame) Create2(salt [32]byte, initCodeHash []byte, build func(f *Frame) (any, error)) (common.Address, error) {
	return f.deploy(crypto.CreateAddress2(f.self, salt, initCodeHash), build)
}

// HasContract reports whether addr holds a contract.
func (f *Frame) HasContract(addr common.Address) bool {
	acct, ok := f.tx.chain.accounts[addr]
	return ok && acct.contract != nil
}

func (f *Frame) deploy(addr common.Address, build func(f *Frame) (any, error)) (common.Address, error) {
	if f.HasContract(addr) {
		return common.Address{}, &AddressInUseError{Address: addr}
	}
	if f.depth+1 > MaxCallDepth {
		return common.Address{}, ErrCallDepthExceeded
	}
	snap := f.tx.snapshot()
	acct := f.ensureAccount(addr)
	// The contract is installed before its constructor runs so the
	// constructor can be called back.
	placeholder := &constructing{}
	Set(f, &acct.contract, any(placeholder))
	contract, err := build(f.child(addr, new(uint256.Int)))
	if err == nil && contract == nil {
		err = &NoContractError{Address: addr}
	}
	if err != nil {
		f.tx.revertTo(snap)
		return common.Address{}, err
	}
	acct.contract = contract
	return addr, nil
}

type constructing struct{}

func (f *Frame) child(to common.Address, value *uint256.Int) *Frame {
	return &Frame{
		tx:     f.tx,
		caller: f.self,
		self:   to,
		value:  value,
		depth:  f.depth + 1,
	}
}

func (f *Frame) ensureAccount(addr common.Address) *account {
	accounts := f.tx.chain.accounts
	if acct, ok := accounts[addr]; ok {
		return acct
	}
	acct := &account{balance: new(uint256.Int)}
	SetKey(f, accounts, addr, acct)
	return acct
}

func (f *Frame) transfer(from, to common.Address, value *uint256.Int) error {
	if value.IsZero() {
		return nil
	}
	src := f.ensureAccount(from)
	if src.balance.Lt(value) {
		return &InsufficientFundsError{
			Account:   from,
			Required:  new(uint256.Int).Set(value),
			Available: new(uint256.Int).Set(src.balance),
		}
	}
	dst := f.ensureAccount(to)
	Set(f, &src.balance, new(uint256.Int).Sub(src.balance, value))
	Set(f, &dst.balance, new(uint256.Int).Add(dst.balance, value))
	return nil
}

// Resolve returns the contract at addr as T.
func Resolve[T any](f *Frame, addr common.Address) (T, error) {
	var zero T
	acct, ok := f.tx.chain.accounts[addr]
	if !ok || acct.contract == nil {
		return zero, &NoContractError{Address: addr}
	}
	contract, ok := acct.contract.(T)
	if !ok {
		return zero, &NoContractError{Address: addr}
	}
	return contract, nil
}
