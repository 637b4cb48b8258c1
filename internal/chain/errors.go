package chain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	dErrors "walletcore/pkg/domain-errors"
)

// MaxCallDepth bounds nested calls within one ledger transaction.
const MaxCallDepth = 64

// Reverter is implemented by typed contract errors so receipts, logs and
// metrics can report the revert by name.
type Reverter interface {
	error
	RevertName() string
}

// RevertName returns the name of the first typed revert in err's chain, or
// "Error" for untyped failures.
func RevertName(err error) string {
	if err == nil {
		return ""
	}
	var r Reverter
	if errors.As(err, &r) {
		return r.RevertName()
	}
	return "Error"
}

var (
	ErrCallDepthExceeded = dErrors.New(dErrors.CodeExecutionFailed, "call depth exceeded")
	ErrInvalidSignature  = dErrors.New(dErrors.CodeInvalidInput, "invalid signature")
)

// InsufficientFundsError is raised by native value transfers.
type InsufficientFundsError struct {
	Account   common.Address
	Required  *uint256.Int
	Available *uint256.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: %s has %s, needs %s", e.Account.Hex(), e.Available, e.Required)
}

func (e *InsufficientFundsError) RevertName() string { return "InsufficientFunds" }
func (e *InsufficientFundsError) ErrorCode() dErrors.Code { return dErrors.CodeConflict }

// AddressInUseError is raised when a deployment targets an address that
// already holds a contract.
type AddressInUseError struct {
	Address common.Address
}

func (e *AddressInUseError) Error() string {
	return "address already in use: " + e.Address.Hex()
}

func (e *AddressInUseError) RevertName() string { return "AddressInUse" }
func (e *AddressInUseError) ErrorCode() dErrors.Code { return dErrors.CodeConflict }

// NoContractError is raised when a contract lookup finds nothing, or finds a
// contract of an unexpected kind.
type NoContractError struct {
	Address common.Address
}

func (e *NoContractError) Error() string {
	return "no contract at " + e.Address.Hex()
}

func (e *NoContractError) RevertName() string { return "NoContract" }
func (e *NoContractError) ErrorCode() dErrors.Code { return dErrors.CodeNotFound }

// NotPayableError is raised when calling a contract that does not accept
// calls.
type NotPayableError struct {
	Address common.Address
}

func (e *NotPayableError) Error() string {
	return "contract does not accept calls: " + e.Address.Hex()
}

func (e *NotPayableError) RevertName() string { return "NotPayable" }
func (e *NotPayableError) ErrorCode() dErrors.Code { return dErrors.CodeExecutionFailed }

// PanicError wraps a panic raised by contract code.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("contract panic: %v", e.Value)
}

func (e *PanicError) RevertName() string { return "Panic" }
func (e *PanicError) ErrorCode() dErrors.Code { return dErrors.CodeInternal }

// Revert is a named contract error that carries no typed fields.
type Revert struct {
	Name    string
	Code    dErrors.Code
	Message string
}

func NewRevert(name string, code dErrors.Code, message string) *Revert {
	return &Revert{Name: name, Code: code, Message: message}
}

func (e *Revert) Error() string { return e.Message }

func (e *Revert) RevertName() string { return e.Name }

func (e *Revert) ErrorCode() dErrors.Code { return e.Code }

// Is matches reverts by name so a decoded revert compares equal to the
// declared value.
func (e *Revert) Is(target error) bool {
	t, ok := target.(*Revert)
	return ok && t.Name == e.Name
}
