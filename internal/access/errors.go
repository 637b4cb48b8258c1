package access

import (
	"github.com/ethereum/go-ethereum/common"

	dErrors "walletcore/pkg/domain-errors"
)

// OwnableUnauthorizedAccountError is returned when a non-owner calls an
// owner-gated operation.
type OwnableUnauthorizedAccountError struct {
	Account common.Address
}

func (e *OwnableUnauthorizedAccountError) Error() string {
	return "ownable: unauthorized account " + e.Account.Hex()
}

func (e *OwnableUnauthorizedAccountError) RevertName() string {
	return "OwnableUnauthorizedAccount"
}

func (e *OwnableUnauthorizedAccountError) ErrorCode() dErrors.Code { return dErrors.CodeForbidden }

// OwnableInvalidOwnerError is returned when the zero address is proposed as
// owner.
type OwnableInvalidOwnerError struct {
	Owner common.Address
}

func (e *OwnableInvalidOwnerError) Error() string {
	return "ownable: invalid owner " + e.Owner.Hex()
}

func (e *OwnableInvalidOwnerError) RevertName() string { return "OwnableInvalidOwner" }

func (e *OwnableInvalidOwnerError) ErrorCode() dErrors.Code { return dErrors.CodeInvalidInput }

// PauseError covers EnforcedPause and ExpectedPause.
type PauseError struct {
	name string
}

var (
	ErrEnforcedPause = &PauseError{name: "EnforcedPause"}
	ErrExpectedPause = &PauseError{name: "ExpectedPause"}
)

func (e *PauseError) Error() string {
	if e == ErrEnforcedPause {
		return "pausable: paused"
	}
	return "pausable: not paused"
}

func (e *PauseError) RevertName() string { return e.name }

func (e *PauseError) ErrorCode() dErrors.Code { return dErrors.CodeConflict }

// ReentrantCallError is returned when a guarded operation is entered again
// before it has exited.
type ReentrantCallError struct{}

// ErrReentrantCall is the single ReentrancyGuardReentrantCall value.
var ErrReentrantCall = &ReentrantCallError{}

func (e *ReentrantCallError) Error() string { return "reentrancy guard: reentrant call" }

func (e *ReentrantCallError) RevertName() string { return "ReentrancyGuardReentrantCall" }

func (e *ReentrantCallError) ErrorCode() dErrors.Code { return dErrors.CodeConflict }
