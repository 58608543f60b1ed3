package types

// GenesisState holds the bonding module's genesis state.
type GenesisState struct {
	Params         Params               `json:"params"`
	Bonds          []Bond               `json:"bonds"`
	GlobalIndex    GlobalIndex          `json:"global_index"`
	RewardBuckets  []RewardBucket       `json:"reward_buckets"`
	UpcomingBucket UpcomingRewardBucket `json:"upcoming_bucket"`
}

// DefaultGenesis returns the default genesis state for the bonding module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:         DefaultParams(),
		Bonds:          []Bond{},
		GlobalIndex:    NewGlobalIndex(),
		RewardBuckets:  []RewardBucket{},
		UpcomingBucket: UpcomingRewardBucket{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	seenBuckets := make(map[uint64]struct{}, len(gs.RewardBuckets))
	for _, bucket := range gs.RewardBuckets {
		if _, ok := seenBuckets[bucket.EpochId]; ok {
			return ErrBucketNotFound.Wrapf("duplicate reward bucket for epoch %d", bucket.EpochId)
		}
		seenBuckets[bucket.EpochId] = struct{}{}
		if bucket.Available.IsAnyGT(bucket.Total) {
			return ErrInvalidReward.Wrapf("bucket %d available exceeds total", bucket.EpochId)
		}
	}
	for _, bond := range gs.Bonds {
		if bond.Asset.Amount.IsNil() || bond.Asset.Amount.IsNegative() {
			return ErrInvalidZeroAmount.Wrapf("bond for %s has invalid amount", bond.Owner)
		}
		if bond.Weight.IsNil() || bond.Weight.IsNegative() {
			return ErrInvalidZeroAmount.Wrapf("bond for %s has invalid weight", bond.Owner)
		}
	}
	return nil
}
