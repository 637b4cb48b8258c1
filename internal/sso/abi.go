package sso

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
)

const registryABIJSON = `[
  {"type":"function","name":"registerSessionKey","stateMutability":"nonpayable","inputs":[
    {"name":"signer","type":"address"},{"name":"validAfter","type":"uint64"},
    {"name":"validUntil","type":"uint64"},{"name":"permissions","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"revokeSessionKey","stateMutability":"nonpayable","inputs":[
    {"name":"signer","type":"address"}],"outputs":[]},
  {"type":"function","name":"updateSessionKey","stateMutability":"nonpayable","inputs":[
    {"name":"signer","type":"address"},{"name":"validUntil","type":"uint64"},
    {"name":"permissions","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"validateSessionKey","stateMutability":"view","inputs":[
    {"name":"wallet","type":"address"},{"name":"signer","type":"address"},
    {"name":"requiredPermissions","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

// RegistryABI is the calldata interface wallets use to drive the registry
// through execute.
var RegistryABI = mustParseABI(registryABIJSON)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

func EncodeRegisterSessionKey(signer common.Address, validAfter, validUntil uint64, permissions Permission) ([]byte, error) {
	return RegistryABI.Pack("registerSessionKey", signer, validAfter, validUntil, new(big.Int).SetUint64(uint64(permissions)))
}

func EncodeRevokeSessionKey(signer common.Address) ([]byte, error) {
	return RegistryABI.Pack("revokeSessionKey", signer)
}

func EncodeUpdateSessionKey(signer common.Address, validUntil uint64, permissions Permission) ([]byte, error) {
	return RegistryABI.Pack("updateSessionKey", signer, validUntil, new(big.Int).SetUint64(uint64(permissions)))
}

func EncodeValidateSessionKey(wallet, signer common.Address, required Permission) ([]byte, error) {
	return RegistryABI.Pack("validateSessionKey", wallet, signer, new(big.Int).SetUint64(uint64(required)))
}

// Receive dispatches calldata to the registry operations. The calling
// account is the wallet principal.
func (r *Registry) Receive(f *chain.Frame, data []byte) ([]byte, error) {
	if !f.Value().IsZero() {
		return nil, ErrNotPayable
	}
	if len(data) < 4 {
		return nil, ErrUnknownSelector
	}
	method, err := RegistryABI.MethodById(data[:4])
	if err != nil {
		return nil, ErrUnknownSelector
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, chain.NewRevert("InvalidCalldata", ErrUnknownSelector.Code, "decode "+method.Name+": "+err.Error())
	}

	switch method.Name {
	case "registerSessionKey":
		perms, err := permissionArg(args[3])
		if err != nil {
			return nil, err
		}
		return nil, r.RegisterSessionKey(f, args[0].(common.Address), args[1].(uint64), args[2].(uint64), perms)
	case "revokeSessionKey":
		return nil, r.RevokeSessionKey(f, args[0].(common.Address))
	case "updateSessionKey":
		perms, err := permissionArg(args[2])
		if err != nil {
			return nil, err
		}
		return nil, r.UpdateSessionKey(f, args[0].(common.Address), args[1].(uint64), perms)
	case "validateSessionKey":
		perms, err := permissionArg(args[2])
		if err != nil {
			return nil, err
		}
		valid := r.ValidateSessionKey(f, args[0].(common.Address), args[1].(common.Address), perms)
		return method.Outputs.Pack(valid)
	default:
		return nil, ErrUnknownSelector
	}
}

func permissionArg(v any) (Permission, error) {
	n, ok := v.(*big.Int)
	if !ok || n.Sign() < 0 || !n.IsUint64() {
		return 0, ErrInvalidPermissions
	}
	return Permission(n.Uint64()), nil
}
