package types

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Bond is one owner's position in one bonding denom. Weight accrues
// per epoch and is recomputed lazily each time the bond is touched.
type Bond struct {
	Owner       string      `json:"owner"`
	Asset       sdk.Coin    `json:"asset"`
	Weight      sdkmath.Int `json:"weight"`
	LastUpdated uint64      `json:"last_updated"`
}

// WeightAt returns the bond's weight recomputed as of epochID without
// mutating the bond.
func (b Bond) WeightAt(epochID uint64, growthRate sdkmath.LegacyDec) sdkmath.Int {
	return ComputeWeight(epochID, b.Weight, b.Asset.Amount, growthRate, b.LastUpdated)
}

// GlobalIndex aggregates every active bond: total bonded amount per
// denom and the summed weight, under the same growth function bonds
// use individually.
type GlobalIndex struct {
	BondedAmount sdkmath.Int `json:"bonded_amount"`
	BondedAssets sdk.Coins   `json:"bonded_assets"`
	LastWeight   sdkmath.Int `json:"last_weight"`
	LastUpdated  uint64      `json:"last_updated"`
}

// NewGlobalIndex returns an empty global index.
func NewGlobalIndex() GlobalIndex {
	return GlobalIndex{
		BondedAmount: sdkmath.ZeroInt(),
		BondedAssets: sdk.NewCoins(),
		LastWeight:   sdkmath.ZeroInt(),
		LastUpdated:  0,
	}
}

// WeightAt returns the global weight recomputed as of epochID without
// mutating the index.
func (g GlobalIndex) WeightAt(epochID uint64, growthRate sdkmath.LegacyDec) sdkmath.Int {
	return ComputeWeight(epochID, g.LastWeight, g.BondedAmount, growthRate, g.LastUpdated)
}

// RewardBucket is one epoch's matured reward pot. Total is immutable
// after promotion; Available shrinks with every claim. GlobalIndex is
// the snapshot frozen at promotion time, so shares for this bucket
// never shift under later bond changes.
type RewardBucket struct {
	EpochId     uint64      `json:"epoch_id"`
	Total       sdk.Coins   `json:"total"`
	Available   sdk.Coins   `json:"available"`
	GlobalIndex GlobalIndex `json:"global_index"`
}

// IsClaimable reports whether the bucket is still inside its grace
// window at currentEpoch.
func (b RewardBucket) IsClaimable(currentEpoch, gracePeriod uint64) bool {
	return currentEpoch-b.EpochId < gracePeriod
}

// UpcomingRewardBucket accumulates fee deposits between epochs. It has
// no epoch id or index snapshot until promotion.
type UpcomingRewardBucket struct {
	Total sdk.Coins `json:"total"`
}
