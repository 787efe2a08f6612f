package acl

import (
	sdk "github.com/bnb-chain/tokenvote/types"
)

const (
	// ModuleName is the name of the module
	ModuleName = "acl"

	// StoreKey is the store key string for acl
	StoreKey = ModuleName

	// RouterKey is the message route for acl
	RouterKey = ModuleName

	// QuerierRoute is the querier route for acl
	QuerierRoute = ModuleName
)

var (
	GrantKeyPrefix = []byte{0x01}
)

// GetGrantKey returns the key of a grant: prefix | len(cap) | cap | address
func GetGrantKey(cap Capability, addr sdk.AccAddress) []byte {
	return append(GetCapabilityPrefix(cap), addr.Bytes()...)
}

// GetCapabilityPrefix returns the prefix of every grant of one capability.
func GetCapabilityPrefix(cap Capability) []byte {
	key := make([]byte, 0, len(GrantKeyPrefix)+1+len(cap))
	key = append(key, GrantKeyPrefix...)
	key = append(key, byte(len(cap)))
	return append(key, []byte(cap)...)
}

func splitGrantKey(key []byte) (Capability, sdk.AccAddress) {
	capLen := int(key[len(GrantKeyPrefix)])
	start := len(GrantKeyPrefix) + 1
	return Capability(key[start : start+capLen]), sdk.AccAddress(key[start+capLen:])
}
