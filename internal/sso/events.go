package sso

import "github.com/ethereum/go-ethereum/common"

type SessionKeyRegistered struct {
	Wallet      common.Address `json:"wallet"`
	Signer      common.Address `json:"signer"`
	ValidAfter  uint64         `json:"validAfter"`
	ValidUntil  uint64         `json:"validUntil"`
	Permissions Permission     `json:"permissions"`
}

type SessionKeyRevoked struct {
	Wallet    common.Address `json:"wallet"`
	Signer    common.Address `json:"signer"`
	RevokedBy common.Address `json:"revokedBy"`
}

type SessionKeyUpdated struct {
	Wallet      common.Address `json:"wallet"`
	Signer      common.Address `json:"signer"`
	ValidUntil  uint64         `json:"validUntil"`
	Permissions Permission     `json:"permissions"`
}

type AuthorizedCallerUpdated struct {
	Caller  common.Address `json:"caller"`
	Allowed bool           `json:"allowed"`
}

func (SessionKeyRegistered) EventName() string { return "SessionKeyRegistered" }

func (SessionKeyRevoked) EventName() string { return "SessionKeyRevoked" }

func (SessionKeyUpdated) EventName() string { return "SessionKeyUpdated" }

func (AuthorizedCallerUpdated) EventName() string { return "AuthorizedCallerUpdated" }
