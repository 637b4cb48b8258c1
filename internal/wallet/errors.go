package wallet

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"walletcore/internal/chain"
	dErrors "walletcore/pkg/domain-errors"
)

var (
	ErrCallerNotFactory      = chain.NewRevert("CallerNotFactory", dErrors.CodeForbidden, "caller is not the factory")
	ErrUnauthorizedCaller    = chain.NewRevert("UnauthorizedCaller", dErrors.CodeForbidden, "signer is neither the owner nor a valid session key")
	ErrAlreadyInitialized    = chain.NewRevert("AlreadyInitialized", dErrors.CodeConflict, "wallet already initialized")
	ErrNotInitialized        = chain.NewRevert("NotInitialized", dErrors.CodeConflict, "wallet not initialized")
	ErrArrayLengthMismatch   = chain.NewRevert("ArrayLengthMismatch", dErrors.CodeInvalidInput, "batch arrays differ in length")
	ErrECDSAInvalidSignature = chain.NewRevert("ECDSAInvalidSignature", dErrors.CodeInvalidInput, "invalid signature")
	ErrUnknownSelector       = chain.NewRevert("UnknownSelector", dErrors.CodeInvalidInput, "unknown function selector")
	ErrNoSSORegistry         = chain.NewRevert("NoSSORegistry", dErrors.CodeConflict, "wallet has no session key registry")
)

// ExpiredDeadlineError is returned when a signed authorization is used after
// its deadline.
type ExpiredDeadlineError struct {
	Deadline uint64
	Now      uint64
}

func (e *ExpiredDeadlineError) Error() string {
	return fmt.Sprintf("deadline %d expired at %d", e.Deadline, e.Now)
}

func (e *ExpiredDeadlineError) RevertName() string { return "ExpiredDeadline" }

func (e *ExpiredDeadlineError) ErrorCode() dErrors.Code { return dErrors.CodeExpired }

type InsufficientBalanceError struct {
	Required  *uint256.Int
	Available *uint256.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, available %s", e.Required, e.Available)
}

func (e *InsufficientBalanceError) RevertName() string { return "InsufficientBalance" }

func (e *InsufficientBalanceError) ErrorCode() dErrors.Code { return dErrors.CodeExecutionFailed }

// ExecutionFailedError wraps the failure of the inner call of an execution.
type ExecutionFailedError struct {
	To    common.Address
	Value *uint256.Int
	Data  []byte
	Err   error
}

func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("execution failed: call to %s with value %s: %v", e.To.Hex(), e.Value, e.Err)
}

func (e *ExecutionFailedError) Unwrap() error { return e.Err }

func (e *ExecutionFailedError) RevertName() string { return "ExecutionFailed" }

func (e *ExecutionFailedError) ErrorCode() dErrors.Code { return dErrors.CodeExecutionFailed }

type ECDSAInvalidSignatureLengthError struct {
	Length int
}

func (e *ECDSAInvalidSignatureLengthError) Error() string {
	return fmt.Sprintf("invalid signature length %d", e.Length)
}

func (e *ECDSAInvalidSignatureLengthError) RevertName() string {
	return "ECDSAInvalidSignatureLength"
}

func (e *ECDSAInvalidSignatureLengthError) ErrorCode() dErrors.Code { return dErrors.CodeInvalidInput }

// ECDSAInvalidSignatureSError rejects malleable signatures with s in the
// upper half of the curve order.
type ECDSAInvalidSignatureSError struct {
	S common.Hash
}

func (e *ECDSAInvalidSignatureSError) Error() string {
	return "invalid signature s value " + e.S.Hex()
}

func (e *ECDSAInvalidSignatureSError) RevertName() string { return "ECDSAInvalidSignatureS" }

func (e *ECDSAInvalidSignatureSError) ErrorCode() dErrors.Code { return dErrors.CodeInvalidInput }
