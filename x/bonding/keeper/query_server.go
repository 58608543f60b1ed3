package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the bonding
// QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params returns the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	params, err := qs.Keeper.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Params: get params: %w", err)
	}

	return &types.QueryParamsResponse{
		Params: params,
	}, nil
}

// Bonded returns the owner's bonds with weights rolled forward to the
// current epoch. Stored records are left untouched.
func (qs queryServer) Bonded(goCtx context.Context, req *types.QueryBondedRequest) (*types.QueryBondedResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	owner, err := sdk.AccAddressFromBech32(req.Owner)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid owner address: %s", err)
	}
	params, err := qs.Keeper.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Bonded: get params: %w", err)
	}
	current, err := qs.epochsKeeper.GetCurrentEpoch(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Bonded: current epoch: %w", err)
	}
	bonds, err := qs.Keeper.GetBondsByOwner(goCtx, owner)
	if err != nil {
		return nil, fmt.Errorf("Bonded: get bonds: %w", err)
	}

	for i := range bonds {
		bonds[i].Weight = bonds[i].WeightAt(current.Id, params.GrowthRate)
		bonds[i].LastUpdated = current.Id
	}

	return &types.QueryBondedResponse{
		Bonds: bonds,
	}, nil
}

// Claimable returns the owner's claimable buckets and the total an
// execute-claim would pay right now. An empty result is not an error.
func (qs queryServer) Claimable(goCtx context.Context, req *types.QueryClaimableRequest) (*types.QueryClaimableResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	owner, err := sdk.AccAddressFromBech32(req.Owner)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid owner address: %s", err)
	}

	total, buckets, err := qs.Keeper.PendingRewards(goCtx, owner)
	if err != nil {
		return nil, fmt.Errorf("Claimable: compute rewards: %w", err)
	}

	return &types.QueryClaimableResponse{
		Buckets: buckets,
		Total:   total,
	}, nil
}

// GlobalIndex returns the live global index, or the snapshot frozen in
// a specific epoch's reward bucket when an epoch id is given.
func (qs queryServer) GlobalIndex(goCtx context.Context, req *types.QueryGlobalIndexRequest) (*types.QueryGlobalIndexResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	if req.EpochId != nil {
		bucket, err := qs.Keeper.GetRewardBucket(goCtx, *req.EpochId)
		if err != nil {
			return nil, fmt.Errorf("GlobalIndex: bucket %d: %w", *req.EpochId, err)
		}
		return &types.QueryGlobalIndexResponse{Index: bucket.GlobalIndex}, nil
	}

	index, err := qs.Keeper.GetGlobalIndex(goCtx)
	if err != nil {
		return nil, fmt.Errorf("GlobalIndex: get index: %w", err)
	}
	return &types.QueryGlobalIndexResponse{Index: index}, nil
}

// RewardBuckets returns every bucket still inside its grace window.
func (qs queryServer) RewardBuckets(goCtx context.Context, req *types.QueryRewardBucketsRequest) (*types.QueryRewardBucketsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	params, err := qs.Keeper.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("RewardBuckets: get params: %w", err)
	}
	current, err := qs.epochsKeeper.GetCurrentEpoch(goCtx)
	if err != nil {
		return nil, fmt.Errorf("RewardBuckets: current epoch: %w", err)
	}

	var buckets []types.RewardBucket
	if err := qs.Keeper.IterateRewardBuckets(goCtx, func(bucket types.RewardBucket) bool {
		if bucket.IsClaimable(current.Id, params.GracePeriod) {
			buckets = append(buckets, bucket)
		}
		return false
	}); err != nil {
		return nil, fmt.Errorf("RewardBuckets: iterate: %w", err)
	}

	return &types.QueryRewardBucketsResponse{
		Buckets: buckets,
	}, nil
}

// ExpiringRewardBucket returns the bucket that falls out of the grace
// window on the next epoch rollover, if one exists.
func (qs queryServer) ExpiringRewardBucket(goCtx context.Context, req *types.QueryExpiringRewardBucketRequest) (*types.QueryExpiringRewardBucketResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	params, err := qs.Keeper.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("ExpiringRewardBucket: get params: %w", err)
	}
	current, err := qs.epochsKeeper.GetCurrentEpoch(goCtx)
	if err != nil {
		return nil, fmt.Errorf("ExpiringRewardBucket: current epoch: %w", err)
	}

	var expiring *types.RewardBucket
	if err := qs.Keeper.IterateRewardBuckets(goCtx, func(bucket types.RewardBucket) bool {
		if current.Id-bucket.EpochId == params.GracePeriod-1 {
			b := bucket
			expiring = &b
			return true
		}
		return false
	}); err != nil {
		return nil, fmt.Errorf("ExpiringRewardBucket: iterate: %w", err)
	}

	return &types.QueryExpiringRewardBucketResponse{
		Bucket: expiring,
	}, nil
}
