package httptransport

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"walletcore/internal/factory"
	"walletcore/internal/service"
	"walletcore/internal/sso"
	"walletcore/internal/wallet"
	dErrors "walletcore/pkg/domain-errors"
	"walletcore/pkg/platform/textutil"
)

const (
	maxBatchCalls   = 64
	maxSocialLinks  = 16
	maxMetadataText = 256
)

func parseAddress(field, s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, dErrors.New(dErrors.CodeValidation, field+" must be a 20-byte hex address")
	}
	return common.HexToAddress(s), nil
}

// parseAmount accepts a decimal or 0x-prefixed hex quantity. Empty means zero.
func parseAmount(field, s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(uint256.Int), nil
	}
	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, field+" must be an unsigned 256-bit integer")
	}
	return v, nil
}

func parseSalt(s string) (*common.Hash, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return nil, dErrors.New(dErrors.CodeValidation, "salt must be 32 bytes of 0x-prefixed hex")
	}
	salt := common.BytesToHash(b)
	return &salt, nil
}

func parsePermissions(names []string) (sso.Permission, error) {
	names = textutil.DedupeAndTrim(names, true)
	if len(names) == 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "permissions are required")
	}
	p, ok := sso.ParsePermissions(names)
	if !ok {
		return 0, dErrors.New(dErrors.CodeValidation, "unknown permission name")
	}
	return p, nil
}

// CreateWalletRequest is the body of POST /factory/wallets. Owner defaults
// to the caller.
type CreateWalletRequest struct {
	Owner string `json:"owner"`
	Salt  string `json:"salt"`

	owner *common.Address
	salt  *common.Hash
}

func (r *CreateWalletRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.Owner) != "" {
		owner, err := parseAddress("owner", r.Owner)
		if err != nil {
			return err
		}
		r.owner = &owner
	}
	salt, err := parseSalt(r.Salt)
	if err != nil {
		return err
	}
	r.salt = salt
	return nil
}

// DeployWalletsRequest is the body of POST /factory/pool.
type DeployWalletsRequest struct {
	Count int `json:"count"`
}

func (r *DeployWalletsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Count < 1 || r.Count > factory.MaxDeployBatch {
		return dErrors.New(dErrors.CodeValidation, "count must be between 1 and 100")
	}
	return nil
}

// AssignWalletRequest is the body of POST /factory/pool/assign.
type AssignWalletRequest struct {
	Wallet string `json:"wallet"`
	Owner  string `json:"owner"`

	wallet common.Address
	owner  common.Address
}

func (r *AssignWalletRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	var err error
	if r.wallet, err = parseAddress("wallet", r.Wallet); err != nil {
		return err
	}
	if r.owner, err = parseAddress("owner", r.Owner); err != nil {
		return err
	}
	return nil
}

// PauseRequest toggles a pausable contract.
type PauseRequest struct {
	Paused bool `json:"paused"`
}

func (r *PauseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// CallRequest is one call a wallet should make. Value is a decimal or hex
// quantity of native units.
type CallRequest struct {
	To    string        `json:"to"`
	Value string        `json:"value"`
	Data  hexutil.Bytes `json:"data"`

	call wallet.Call
}

func (r *CallRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	to, err := parseAddress("to", r.To)
	if err != nil {
		return err
	}
	value, err := parseAmount("value", r.Value)
	if err != nil {
		return err
	}
	r.call = wallet.Call{To: to, Value: value, Data: r.Data}
	return nil
}

// BatchRequest is the body of POST /wallets/{wallet}/execute-batch.
type BatchRequest struct {
	Calls []CallRequest `json:"calls"`

	calls []wallet.Call
}

func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Calls) > maxBatchCalls {
		return dErrors.New(dErrors.CodeValidation, "too many calls in batch")
	}
	r.calls = make([]wallet.Call, 0, len(r.Calls))
	for i := range r.Calls {
		if err := r.Calls[i].Validate(); err != nil {
			return err
		}
		r.calls = append(r.calls, r.Calls[i].call)
	}
	return nil
}

// DigestRequest asks for the digest to sign for a call.
type DigestRequest struct {
	CallRequest
	Deadline uint64 `json:"deadline"`
}

func (r *DigestRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Deadline == 0 {
		return dErrors.New(dErrors.CodeValidation, "deadline is required")
	}
	return r.CallRequest.Validate()
}

// SignedExecuteRequest is the body of POST /wallets/{wallet}/execute-signed.
type SignedExecuteRequest struct {
	DigestRequest
	Signature hexutil.Bytes `json:"signature"`
}

func (r *SignedExecuteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Signature) == 0 {
		return dErrors.New(dErrors.CodeValidation, "signature is required")
	}
	return r.DigestRequest.Validate()
}

func (r *SignedExecuteRequest) signed() service.SignedCall {
	return service.SignedCall{Call: r.call, Deadline: r.Deadline, Signature: r.Signature}
}

// MetadataRequest replaces the wallet's metadata record.
type MetadataRequest struct {
	ExternalID  string   `json:"externalId"`
	OnChainID   string   `json:"onChainId"`
	Alias       string   `json:"alias"`
	SocialLinks []string `json:"socialLinks"`
}

func (r *MetadataRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	for _, s := range []string{r.ExternalID, r.OnChainID, r.Alias} {
		if len(s) > maxMetadataText {
			return dErrors.New(dErrors.CodeValidation, "metadata fields must be at most 256 characters")
		}
	}
	r.SocialLinks = textutil.DedupeAndTrim(r.SocialLinks, false)
	if len(r.SocialLinks) > maxSocialLinks {
		return dErrors.New(dErrors.CodeValidation, "too many social links")
	}
	return nil
}

func (r *MetadataRequest) metadata() wallet.Metadata {
	return wallet.Metadata{
		ExternalID:  r.ExternalID,
		OnChainID:   r.OnChainID,
		Alias:       r.Alias,
		SocialLinks: r.SocialLinks,
	}
}

// SessionKeyRequest grants a session key. Windows are unix seconds.
type SessionKeyRequest struct {
	Signer      string   `json:"signer"`
	ValidAfter  uint64   `json:"validAfter"`
	ValidUntil  uint64   `json:"validUntil"`
	Permissions []string `json:"permissions"`

	grant service.SessionKeyGrant
}

func (r *SessionKeyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	signer, err := parseAddress("signer", r.Signer)
	if err != nil {
		return err
	}
	perms, err := parsePermissions(r.Permissions)
	if err != nil {
		return err
	}
	r.grant = service.SessionKeyGrant{
		Signer:      signer,
		ValidAfter:  r.ValidAfter,
		ValidUntil:  r.ValidUntil,
		Permissions: perms,
	}
	return nil
}

// AuthorizedCallerRequest is the body of PUT /sso/authorized-callers/{caller}.
type AuthorizedCallerRequest struct {
	Allowed bool `json:"allowed"`
}

func (r *AuthorizedCallerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// DepositRequest moves native value from the caller into a wallet.
type DepositRequest struct {
	Amount string `json:"amount"`

	amount *uint256.Int
}

func (r *DepositRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	amount, err := parseAmount("amount", r.Amount)
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	r.amount = amount
	return nil
}
