package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "bonding"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// KVStore key prefixes
var (
	ParamsKey         = []byte{0x00}
	BondKey           = []byte{0x01}
	GlobalIndexKey    = []byte{0x02}
	RewardBucketKey   = []byte{0x03}
	UpcomingBucketKey = []byte{0x04}
	LastClaimedKey    = []byte{0x05}
)

// GetBondKey returns the store key for one (owner, denom) bond. The
// owner is length-prefixed so no (owner, denom) pair can collide with
// another.
func GetBondKey(owner sdk.AccAddress, denom string) []byte {
	key := append([]byte{}, BondKey...)
	key = append(key, address.MustLengthPrefix(owner)...)
	key = append(key, []byte(denom)...)
	return key
}

// GetBondOwnerPrefix returns the store prefix covering every bond of
// one owner.
func GetBondOwnerPrefix(owner sdk.AccAddress) []byte {
	key := append([]byte{}, BondKey...)
	key = append(key, address.MustLengthPrefix(owner)...)
	return key
}

// GetRewardBucketKey returns the store key for one epoch's reward
// bucket.
func GetRewardBucketKey(epochID uint64) []byte {
	return append(RewardBucketKey, sdk.Uint64ToBigEndian(epochID)...)
}

// GetLastClaimedKey returns the store key for one owner's last-claimed
// epoch marker.
func GetLastClaimedKey(owner sdk.AccAddress) []byte {
	key := append([]byte{}, LastClaimedKey...)
	key = append(key, owner.Bytes()...)
	return key
}
