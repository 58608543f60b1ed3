package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)

// Store key prefixes
var (
	ParamsKey        = []byte{0x00} // key for module parameters
	PoolKey          = []byte{0x01} // prefix for pool records
	PoolCountKey     = []byte{0x02} // key for the pool id counter
	PoolByLpDenomKey = []byte{0x03} // prefix for pool lookup by LP denom
)

// GetPoolKey returns the store key for a pool.
func GetPoolKey(poolID uint64) []byte {
	return append(PoolKey, sdk.Uint64ToBigEndian(poolID)...)
}

// GetPoolByLpDenomKey returns the store key indexing a pool by its LP denom.
func GetPoolByLpDenomKey(lpDenom string) []byte {
	return append(PoolByLpDenomKey, []byte(lpDenom)...)
}
