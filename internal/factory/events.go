package factory

import "github.com/ethereum/go-ethereum/common"

type WalletCreated struct {
	Wallet common.Address `json:"wallet"`
	Owner  common.Address `json:"owner"`
	Salt   common.Hash    `json:"salt"`
}

type WalletPreDeployed struct {
	Wallet common.Address `json:"wallet"`
	Index  uint64         `json:"index"`
}

type WalletAssigned struct {
	Wallet common.Address `json:"wallet"`
	Owner  common.Address `json:"owner"`
}

// WalletRetired carries the owner the wallet had, zero for pooled wallets.
type WalletRetired struct {
	Wallet common.Address `json:"wallet"`
	Owner  common.Address `json:"owner"`
}

type ImplementationUpdated struct {
	PreviousImplementation common.Address `json:"previousImplementation"`
	NewImplementation      common.Address `json:"newImplementation"`
}

type EventEmitterUpdated struct {
	PreviousEventEmitter common.Address `json:"previousEventEmitter"`
	NewEventEmitter      common.Address `json:"newEventEmitter"`
}

type SSORegistryUpdated struct {
	PreviousSSORegistry common.Address `json:"previousSsoRegistry"`
	NewSSORegistry      common.Address `json:"newSsoRegistry"`
}

func (WalletCreated) EventName() string { return "WalletCreated" }

func (WalletPreDeployed) EventName() string { return "WalletPreDeployed" }

func (WalletAssigned) EventName() string { return "WalletAssigned" }

func (WalletRetired) EventName() string { return "WalletRetired" }

func (ImplementationUpdated) EventName() string { return "ImplementationUpdated" }

func (EventEmitterUpdated) EventName() string { return "EventEmitterUpdated" }

func (SSORegistryUpdated) EventName() string { return "SSORegistryUpdated" }
