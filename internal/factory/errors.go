package factory

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
	dErrors "walletcore/pkg/domain-errors"
)

var (
	ErrUnauthorizedCaller = chain.NewRevert("UnauthorizedCaller", dErrors.CodeForbidden, "caller may only create a wallet for itself")
	ErrInvalidAddress     = chain.NewRevert("InvalidAddress", dErrors.CodeInvalidInput, "address is zero")
)

type WalletAlreadyExistsError struct {
	Owner  common.Address
	Wallet common.Address
}

func (e *WalletAlreadyExistsError) Error() string {
	return fmt.Sprintf("owner %s already has wallet %s", e.Owner.Hex(), e.Wallet.Hex())
}

func (e *WalletAlreadyExistsError) RevertName() string { return "WalletAlreadyExists" }

func (e *WalletAlreadyExistsError) ErrorCode() dErrors.Code { return dErrors.CodeConflict }

type WalletNotFromFactoryError struct {
	Wallet common.Address
}

func (e *WalletNotFromFactoryError) Error() string {
	return "wallet not deployed by this factory: " + e.Wallet.Hex()
}

func (e *WalletNotFromFactoryError) RevertName() string { return "WalletNotFromFactory" }

func (e *WalletNotFromFactoryError) ErrorCode() dErrors.Code { return dErrors.CodeNotFound }

type WalletNotUnassignedError struct {
	Wallet common.Address
}

func (e *WalletNotUnassignedError) Error() string {
	return "wallet is not in the unassigned pool: " + e.Wallet.Hex()
}

func (e *WalletNotUnassignedError) RevertName() string { return "WalletNotUnassigned" }

func (e *WalletNotUnassignedError) ErrorCode() dErrors.Code { return dErrors.CodeConflict }

type InvalidCountError struct {
	Count int
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("count %d outside 1..%d", e.Count, MaxDeployBatch)
}

func (e *InvalidCountError) RevertName() string { return "InvalidCount" }

func (e *InvalidCountError) ErrorCode() dErrors.Code { return dErrors.CodeInvalidInput }

type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

func (e *IndexOutOfRangeError) RevertName() string { return "IndexOutOfRange" }

func (e *IndexOutOfRangeError) ErrorCode() dErrors.Code { return dErrors.CodeNotFound }
