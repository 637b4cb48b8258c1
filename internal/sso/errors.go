package sso

import (
	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
	dErrors "walletcore/pkg/domain-errors"
)

var (
	ErrUnauthorizedCaller      = chain.NewRevert("UnauthorizedCaller", dErrors.CodeForbidden, "caller is not authorized for this wallet")
	ErrInvalidSigner           = chain.NewRevert("InvalidSigner", dErrors.CodeInvalidInput, "signer is the zero address")
	ErrInvalidValidityWindow   = chain.NewRevert("InvalidValidityWindow", dErrors.CodeInvalidInput, "validUntil must be after validAfter")
	ErrSessionDurationTooLong  = chain.NewRevert("SessionDurationTooLong", dErrors.CodeInvalidInput, "session exceeds the maximum duration")
	ErrInvalidPermissions      = chain.NewRevert("InvalidPermissions", dErrors.CodeInvalidInput, "permissions do not fit the bitmask")
	ErrMaxKeysPerWalletReached = chain.NewRevert("MaxKeysPerWalletReached", dErrors.CodeConflict, "wallet has the maximum number of active session keys")
	ErrUnknownSelector         = chain.NewRevert("UnknownSelector", dErrors.CodeInvalidInput, "unknown function selector")
	ErrNotPayable              = chain.NewRevert("NotPayable", dErrors.CodeInvalidInput, "registry does not accept value")
)

// SessionKeyAlreadyExistsError is returned when an active key is registered
// again for the same wallet.
type SessionKeyAlreadyExistsError struct {
	Wallet common.Address
	Signer common.Address
}

func (e *SessionKeyAlreadyExistsError) Error() string {
	return "session key already exists: " + e.Signer.Hex() + " for wallet " + e.Wallet.Hex()
}

func (e *SessionKeyAlreadyExistsError) RevertName() string { return "SessionKeyAlreadyExists" }

func (e *SessionKeyAlreadyExistsError) ErrorCode() dErrors.Code { return dErrors.CodeConflict }

// SessionKeyNotFoundError is returned when no active key exists for the pair.
type SessionKeyNotFoundError struct {
	Wallet common.Address
	Signer common.Address
}

func (e *SessionKeyNotFoundError) Error() string {
	return "session key not found: " + e.Signer.Hex() + " for wallet " + e.Wallet.Hex()
}

func (e *SessionKeyNotFoundError) RevertName() string { return "SessionKeyNotFound" }

func (e *SessionKeyNotFoundError) ErrorCode() dErrors.Code { return dErrors.CodeNotFound }
