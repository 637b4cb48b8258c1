package sso

import (
	"strings"
	"time"
)

const (
	MaxSessionDuration = 30 * 24 * time.Hour
	MaxKeysPerWallet   = 10
)

// Permission is a capability bitmask granted to a session key.
type Permission uint64

const (
	PermissionCallAnyContract Permission = 1 << 0
	PermissionExecute         Permission = 1 << 1
	PermissionExecuteBatch    Permission = 1 << 2
	PermissionTransferERC20   Permission = 1 << 3
	PermissionTransferNative  Permission = 1 << 4

	// PermissionAll satisfies every requirement on its own.
	PermissionAll Permission = 1 << 63
)

var permissionNames = []struct {
	bit  Permission
	name string
}{
	{PermissionCallAnyContract, "call_any_contract"},
	{PermissionExecute, "execute"},
	{PermissionExecuteBatch, "execute_batch"},
	{PermissionTransferERC20, "transfer_erc20"},
	{PermissionTransferNative, "transfer_native"},
	{PermissionAll, "all"},
}

// Satisfies reports whether granted covers every bit of required.
func (granted Permission) Satisfies(required Permission) bool {
	return granted&required == required || granted&PermissionAll != 0
}

func (p Permission) String() string {
	if p == 0 {
		return "none"
	}
	var names []string
	for _, pn := range permissionNames {
		if p&pn.bit != 0 {
			names = append(names, pn.name)
		}
	}
	if rest := p &^ (PermissionCallAnyContract | PermissionExecute | PermissionExecuteBatch |
		PermissionTransferERC20 | PermissionTransferNative | PermissionAll); rest != 0 {
		names = append(names, "unknown")
	}
	return strings.Join(names, "|")
}

// ParsePermissions turns names as produced by String back into a mask.
func ParsePermissions(names []string) (Permission, bool) {
	var p Permission
	for _, name := range names {
		found := false
		for _, pn := range permissionNames {
			if pn.name == name {
				p |= pn.bit
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return p, true
}
