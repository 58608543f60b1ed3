package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

// GetBond returns one (owner, denom) bond, reporting whether it
// exists.
func (k Keeper) GetBond(ctx context.Context, owner sdk.AccAddress, denom string) (types.Bond, bool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.GetBondKey(owner, denom))
	if bz == nil {
		return types.Bond{}, false, nil
	}
	var bond types.Bond
	if err := json.Unmarshal(bz, &bond); err != nil {
		return types.Bond{}, false, fmt.Errorf("GetBond: unmarshal: %w", err)
	}
	return bond, true, nil
}

// SetBond stores a bond.
func (k Keeper) SetBond(ctx context.Context, owner sdk.AccAddress, bond types.Bond) error {
	bz, err := json.Marshal(bond)
	if err != nil {
		return fmt.Errorf("SetBond: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.GetBondKey(owner, bond.Asset.Denom), bz)
	return nil
}

// RemoveBond deletes a fully unbonded position.
func (k Keeper) RemoveBond(ctx context.Context, owner sdk.AccAddress, denom string) {
	k.getStore(ctx).Delete(types.GetBondKey(owner, denom))
}

// GetBondsByOwner returns every bond of one owner.
func (k Keeper) GetBondsByOwner(ctx context.Context, owner sdk.AccAddress) ([]types.Bond, error) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.GetBondOwnerPrefix(owner))
	defer iterator.Close()

	var bonds []types.Bond
	for ; iterator.Valid(); iterator.Next() {
		var bond types.Bond
		if err := json.Unmarshal(iterator.Value(), &bond); err != nil {
			return nil, fmt.Errorf("GetBondsByOwner: unmarshal: %w", err)
		}
		bonds = append(bonds, bond)
	}
	return bonds, nil
}

// IterateBonds walks every bond, stopping when cb returns true.
func (k Keeper) IterateBonds(ctx context.Context, cb func(types.Bond) bool) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.BondKey)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var bond types.Bond
		if err := json.Unmarshal(iterator.Value(), &bond); err != nil {
			return fmt.Errorf("IterateBonds: unmarshal: %w", err)
		}
		if cb(bond) {
			break
		}
	}
	return nil
}

// GetGlobalIndex returns the global index singleton, zero-valued when
// nothing has ever been bonded.
func (k Keeper) GetGlobalIndex(ctx context.Context) (types.GlobalIndex, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.GlobalIndexKey)
	if bz == nil {
		return types.NewGlobalIndex(), nil
	}
	var index types.GlobalIndex
	if err := json.Unmarshal(bz, &index); err != nil {
		return types.GlobalIndex{}, fmt.Errorf("GetGlobalIndex: unmarshal: %w", err)
	}
	return index, nil
}

// SetGlobalIndex stores the global index singleton.
func (k Keeper) SetGlobalIndex(ctx context.Context, index types.GlobalIndex) error {
	bz, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("SetGlobalIndex: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.GlobalIndexKey, bz)
	return nil
}

// GetRewardBucket returns one epoch's reward bucket.
func (k Keeper) GetRewardBucket(ctx context.Context, epochID uint64) (types.RewardBucket, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.GetRewardBucketKey(epochID))
	if bz == nil {
		return types.RewardBucket{}, types.ErrBucketNotFound.Wrapf("epoch %d", epochID)
	}
	var bucket types.RewardBucket
	if err := json.Unmarshal(bz, &bucket); err != nil {
		return types.RewardBucket{}, fmt.Errorf("GetRewardBucket: unmarshal: %w", err)
	}
	return bucket, nil
}

// SetRewardBucket stores one epoch's reward bucket.
func (k Keeper) SetRewardBucket(ctx context.Context, bucket types.RewardBucket) error {
	bz, err := json.Marshal(bucket)
	if err != nil {
		return fmt.Errorf("SetRewardBucket: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.GetRewardBucketKey(bucket.EpochId), bz)
	return nil
}

// IterateRewardBuckets walks the bucket ledger in epoch order,
// stopping when cb returns true.
func (k Keeper) IterateRewardBuckets(ctx context.Context, cb func(types.RewardBucket) bool) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.RewardBucketKey)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var bucket types.RewardBucket
		if err := json.Unmarshal(iterator.Value(), &bucket); err != nil {
			return fmt.Errorf("IterateRewardBuckets: unmarshal: %w", err)
		}
		if cb(bucket) {
			break
		}
	}
	return nil
}

// GetUpcomingBucket returns the bucket accumulating deposits for the
// next epoch.
func (k Keeper) GetUpcomingBucket(ctx context.Context) (types.UpcomingRewardBucket, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.UpcomingBucketKey)
	if bz == nil {
		return types.UpcomingRewardBucket{Total: sdk.NewCoins()}, nil
	}
	var bucket types.UpcomingRewardBucket
	if err := json.Unmarshal(bz, &bucket); err != nil {
		return types.UpcomingRewardBucket{}, fmt.Errorf("GetUpcomingBucket: unmarshal: %w", err)
	}
	return bucket, nil
}

// SetUpcomingBucket stores the upcoming bucket.
func (k Keeper) SetUpcomingBucket(ctx context.Context, bucket types.UpcomingRewardBucket) error {
	bz, err := json.Marshal(bucket)
	if err != nil {
		return fmt.Errorf("SetUpcomingBucket: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.UpcomingBucketKey, bz)
	return nil
}

// GetLastClaimedEpoch returns the newest epoch the owner has claimed
// through, zero if never.
func (k Keeper) GetLastClaimedEpoch(ctx context.Context, owner sdk.AccAddress) uint64 {
	bz := k.getStore(ctx).Get(types.GetLastClaimedKey(owner))
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

// SetLastClaimedEpoch marks every bucket up to and including epochID
// as settled for the owner.
func (k Keeper) SetLastClaimedEpoch(ctx context.Context, owner sdk.AccAddress, epochID uint64) {
	k.getStore(ctx).Set(types.GetLastClaimedKey(owner), sdk.Uint64ToBigEndian(epochID))
}
