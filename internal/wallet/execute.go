package wallet

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"walletcore/internal/chain"
	"walletcore/internal/sso"
)

// Call is one item of an execution.
type Call struct {
	To    common.Address
	Value *uint256.Int
	Data  []byte
}

// Result is the outcome of one executed call.
type Result struct {
	Nonce      uint64
	ReturnData []byte
}

// Execute performs a single call as the owner.
//
// A failed inner call fails the whole operation with ExecutionFailed and
// nothing it did persists, the nonce increment included. The same rule
// applies to ExecuteBatch and ExecuteWithSignature.
func (w *Wallet) Execute(f *chain.Frame, to common.Address, value *uint256.Int, data []byte) (Result, error) {
	if err := w.CheckOwner(f); err != nil {
		return Result{}, err
	}
	if err := w.requireActive(); err != nil {
		return Result{}, err
	}
	release, err := w.Enter(f)
	if err != nil {
		return Result{}, err
	}
	defer release()

	return w.execute(f, Call{To: to, Value: value, Data: data}, f.Caller(), true)
}

// ExecuteBatch performs calls in order, consuming one nonce per call. It
// emits one BatchExecuted summary instead of per-call Executed events.
func (w *Wallet) ExecuteBatch(f *chain.Frame, targets []common.Address, values []*uint256.Int, datas [][]byte) ([]Result, error) {
	if err := w.CheckOwner(f); err != nil {
		return nil, err
	}
	if err := w.requireActive(); err != nil {
		return nil, err
	}
	if len(targets) != len(values) || len(targets) != len(datas) {
		return nil, ErrArrayLengthMismatch
	}
	release, err := w.Enter(f)
	if err != nil {
		return nil, err
	}
	defer release()

	startNonce := w.nonce
	results := make([]Result, 0, len(targets))
	for i := range targets {
		res, err := w.execute(f, Call{To: targets[i], Value: values[i], Data: datas[i]}, f.Caller(), false)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	f.Emit(BatchExecuted{Count: uint64(len(targets)), StartNonce: startNonce})
	return results, nil
}

// ExecuteWithSignature performs a call authorized off-line by the owner or
// by a session key holding PermissionExecute. Anyone may submit it.
func (w *Wallet) ExecuteWithSignature(f *chain.Frame, to common.Address, value *uint256.Int, data []byte, deadline uint64, signature []byte) (Result, error) {
	if err := w.requireActive(); err != nil {
		return Result{}, err
	}
	release, err := w.Enter(f)
	if err != nil {
		return Result{}, err
	}
	defer release()

	if now := f.BlockTime(); now > deadline {
		return Result{}, &ExpiredDeadlineError{Deadline: deadline, Now: now}
	}
	digest := w.Digest(f, ExecuteRequest{To: to, Value: value, Data: data, Nonce: w.nonce, Deadline: deadline})
	signer, err := RecoverSigner(digest, signature)
	if err != nil {
		return Result{}, err
	}
	if !w.authorizes(f, signer) {
		return Result{}, ErrUnauthorizedCaller
	}
	return w.execute(f, Call{To: to, Value: value, Data: data}, signer, true)
}

// Digest is the typed-data hash a signer signs to authorize req on this
// wallet.
func (w *Wallet) Digest(f *chain.Frame, req ExecuteRequest) common.Hash {
	return TypedDataHash(f.ChainID(), f.Self(), req)
}

func (w *Wallet) authorizes(f *chain.Frame, signer common.Address) bool {
	if owner := w.Owner(); owner != (common.Address{}) && signer == owner {
		return true
	}
	registry, err := w.registry(f)
	if err != nil {
		return false
	}
	return registry.ValidateSessionKey(f, f.Self(), signer, sso.PermissionExecute)
}

func (w *Wallet) requireActive() error {
	if !w.initialized {
		return ErrNotInitialized
	}
	return w.WhenNotPaused()
}

// execute is the core shared by every execution path.
func (w *Wallet) execute(f *chain.Frame, call Call, executor common.Address, emitExecuted bool) (Result, error) {
	value := call.Value
	if value == nil {
		value = new(uint256.Int)
	}
	if balance := f.BalanceOf(f.Self()); balance.Lt(value) {
		return Result{}, &InsufficientBalanceError{Required: new(uint256.Int).Set(value), Available: balance}
	}

	nonce := w.nonce
	chain.Set(f, &w.nonce, nonce+1)

	ret, err := f.Call(call.To, value, call.Data)
	if err != nil {
		return Result{}, &ExecutionFailedError{
			To:    call.To,
			Value: new(uint256.Int).Set(value),
			Data:  append([]byte(nil), call.Data...),
			Err:   err,
		}
	}

	chain.SetKey(f, w.history, nonce, Transaction{
		Nonce:       nonce,
		To:          call.To,
		Value:       new(uint256.Int).Set(value),
		Data:        append([]byte(nil), call.Data...),
		Success:     true,
		ReturnData:  ret,
		Executor:    executor,
		BlockNumber: f.BlockNumber(),
		Timestamp:   f.BlockTime(),
	})
	if emitExecuted {
		f.Emit(Executed{
			To:         call.To,
			Value:      new(uint256.Int).Set(value),
			Data:       append([]byte(nil), call.Data...),
			Nonce:      nonce,
			Success:    true,
			ReturnData: ret,
			Executor:   executor,
		})
	}
	if err := w.report(f, call.To, value, call.Data, nonce, ret); err != nil {
		return Result{}, err
	}
	return Result{Nonce: nonce, ReturnData: ret}, nil
}

// report appends the canonical execution record to the event emitter.
func (w *Wallet) report(f *chain.Frame, to common.Address, value *uint256.Int, data []byte, nonce uint64, ret []byte) error {
	if w.eventEmitter == (common.Address{}) {
		return nil
	}
	emitter, err := chain.Resolve[EventEmitter](f, w.eventEmitter)
	if err != nil {
		return err
	}
	return f.Invoke(w.eventEmitter, func(child *chain.Frame) error {
		return emitter.EmitTransaction(child, to, value, data, nonce, true, ret)
	})
}
