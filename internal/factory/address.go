package factory

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	clonePrefix = common.FromHex("0x3d602d80600a3d3981f3363d3d373d3d3d363d73")
	cloneSuffix = common.FromHex("0x5af43d82803e903d91602b57fd5bf3")
)

// CloneInitCode is the EIP-1167 minimal proxy creation code delegating to
// implementation.
func CloneInitCode(implementation common.Address) []byte {
	code := make([]byte, 0, len(clonePrefix)+common.AddressLength+len(cloneSuffix))
	code = append(code, clonePrefix...)
	code = append(code, implementation.Bytes()...)
	return append(code, cloneSuffix...)
}

func CloneInitCodeHash(implementation common.Address) []byte {
	return crypto.Keccak256(CloneInitCode(implementation))
}

// PredictAddress is the CREATE2 address of a clone of implementation
// deployed by factory with salt.
func PredictAddress(factory, implementation common.Address, salt common.Hash) common.Address {
	return crypto.CreateAddress2(factory, salt, CloneInitCodeHash(implementation))
}

// DeriveSalt is keccak256(abi.encode(owner, counter)).
func DeriveSalt(owner common.Address, counter uint64) common.Hash {
	var word [32]byte
	binary.BigEndian.PutUint64(word[24:], counter)
	return crypto.Keccak256Hash(common.LeftPadBytes(owner.Bytes(), 32), word[:])
}
