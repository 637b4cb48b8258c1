package wallet

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"walletcore/internal/sso"
)

type Initialized struct {
	Owner        common.Address `json:"owner"`
	Factory      common.Address `json:"factory"`
	EventEmitter common.Address `json:"eventEmitter"`
	SSORegistry  common.Address `json:"ssoRegistry"`
}

type Executed struct {
	To         common.Address `json:"to"`
	Value      *uint256.Int   `json:"value"`
	Data       []byte         `json:"data"`
	Nonce      uint64         `json:"nonce"`
	Success    bool           `json:"success"`
	ReturnData []byte         `json:"returnData"`
	Executor   common.Address `json:"executor"`
}

type BatchExecuted struct {
	Count      uint64 `json:"count"`
	StartNonce uint64 `json:"startNonce"`
}

type MetadataUpdated struct {
	Metadata Metadata `json:"metadata"`
}

type OwnerAssigned struct {
	PreviousOwner common.Address `json:"previousOwner"`
	NewOwner      common.Address `json:"newOwner"`
}

type Received struct {
	From  common.Address `json:"from"`
	Value *uint256.Int   `json:"value"`
}

type SessionKeyAuthorized struct {
	Signer      common.Address `json:"signer"`
	ValidAfter  uint64         `json:"validAfter"`
	ValidUntil  uint64         `json:"validUntil"`
	Permissions sso.Permission `json:"permissions"`
}

type SessionKeyRevoked struct {
	Signer common.Address `json:"signer"`
}

func (Initialized) EventName() string { return "Initialized" }

func (Executed) EventName() string { return "Executed" }

func (BatchExecuted) EventName() string { return "BatchExecuted" }

func (MetadataUpdated) EventName() string { return "MetadataUpdated" }

func (OwnerAssigned) EventName() string { return "OwnerAssigned" }

func (Received) EventName() string { return "Received" }

func (SessionKeyAuthorized) EventName() string { return "SessionKeyAuthorized" }

func (SessionKeyRevoked) EventName() string { return "SessionKeyRevoked" }
