package wallet

import (
	"crypto/ecdsa"
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"walletcore/internal/chain"
)

const (
	DomainName    = "SmartWallet"
	DomainVersion = "1"
)

var (
	domainTypeHash  = crypto.Keccak256Hash([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	executeTypeHash = crypto.Keccak256Hash([]byte("Execute(address to,uint256 value,bytes data,uint256 nonce,uint256 deadline)"))
	nameHash        = crypto.Keccak256Hash([]byte(DomainName))
	versionHash     = crypto.Keccak256Hash([]byte(DomainVersion))

	// secp256k1n / 2; signatures with a larger s are malleable.
	secp256k1HalfN = uint256.MustFromHex("0x7fffffffffffffffffffffffffffffff5d576e7357a4501ddfe92f46681b20a0")
)

// ExecuteRequest is the signed authorization for one execution.
type ExecuteRequest struct {
	To       common.Address
	Value    *uint256.Int
	Data     []byte
	Nonce    uint64
	Deadline uint64
}

// DomainSeparator binds signatures to one chain and one wallet.
func DomainSeparator(chainID *big.Int, wallet common.Address) common.Hash {
	return crypto.Keccak256Hash(
		domainTypeHash[:],
		nameHash[:],
		versionHash[:],
		common.LeftPadBytes(chainID.Bytes(), 32),
		common.LeftPadBytes(wallet.Bytes(), 32),
	)
}

// TypedDataHash is the EIP-712 digest of req for wallet on chainID.
func TypedDataHash(chainID *big.Int, wallet common.Address, req ExecuteRequest) common.Hash {
	value := req.Value
	if value == nil {
		value = new(uint256.Int)
	}
	valueWord := value.Bytes32()
	structHash := crypto.Keccak256Hash(
		executeTypeHash[:],
		common.LeftPadBytes(req.To.Bytes(), 32),
		valueWord[:],
		crypto.Keccak256(req.Data),
		word(req.Nonce),
		word(req.Deadline),
	)
	domain := DomainSeparator(chainID, wallet)
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, domain[:], structHash[:])
}

func word(v uint64) []byte {
	out := make([]byte, 32)
	binary.BigEndian.PutUint64(out[24:], v)
	return out
}

// RecoverSigner validates the shape of a 65 byte [R || S || V] signature
// and returns its signer. V may be 27/28 or 0/1.
func RecoverSigner(digest common.Hash, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, &ECDSAInvalidSignatureLengthError{Length: len(signature)}
	}
	s := new(uint256.Int).SetBytes(signature[32:64])
	if s.Gt(secp256k1HalfN) {
		return common.Address{}, &ECDSAInvalidSignatureSError{S: common.BytesToHash(signature[32:64])}
	}
	v := signature[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return common.Address{}, ErrECDSAInvalidSignature
	}

	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, signature)
	normalized[64] = v
	signer, err := chain.Ecrecover(digest, normalized)
	if err != nil {
		return common.Address{}, ErrECDSAInvalidSignature
	}
	return signer, nil
}

// Sign produces a signature over req with V in {27, 28}, the form wallets
// expect from off-line signers.
func Sign(key *ecdsa.PrivateKey, chainID *big.Int, wallet common.Address, req ExecuteRequest) ([]byte, error) {
	digest := TypedDataHash(chainID, wallet, req)
	sig, err := crypto.Sign(digest[:], key)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}
