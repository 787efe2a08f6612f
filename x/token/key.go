package token

import (
	sdk "github.com/bnb-chain/tokenvote/types"
)

const (
	// ModuleName is the name of the module
	ModuleName = "token"

	// StoreKey is the store key string for token
	StoreKey = ModuleName

	// RouterKey is the message route for token
	RouterKey = ModuleName

	// QuerierRoute is the querier route for token
	QuerierRoute = ModuleName
)

var (
	BalanceKeyPrefix = []byte{0x01}
	TotalSupplyKey   = []byte{0x02}
)

// GetBalanceKey returns the key of the balance of addr
func GetBalanceKey(addr sdk.AccAddress) []byte {
	return append(BalanceKeyPrefix, addr.Bytes()...)
}

func addressFromBalanceKey(key []byte) sdk.AccAddress {
	return sdk.AccAddress(key[len(BalanceKeyPrefix):])
}
