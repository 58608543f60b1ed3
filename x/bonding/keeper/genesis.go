package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

// InitGenesis initializes the bonding module state from genesis.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: validate: %w", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("InitGenesis: set params: %w", err)
	}
	for _, bond := range genState.Bonds {
		owner, err := sdk.AccAddressFromBech32(bond.Owner)
		if err != nil {
			return fmt.Errorf("InitGenesis: bond owner %s: %w", bond.Owner, err)
		}
		if err := k.SetBond(ctx, owner, bond); err != nil {
			return fmt.Errorf("InitGenesis: set bond: %w", err)
		}
	}
	if err := k.SetGlobalIndex(ctx, genState.GlobalIndex); err != nil {
		return fmt.Errorf("InitGenesis: set global index: %w", err)
	}
	for _, bucket := range genState.RewardBuckets {
		if err := k.SetRewardBucket(ctx, bucket); err != nil {
			return fmt.Errorf("InitGenesis: set bucket %d: %w", bucket.EpochId, err)
		}
	}
	if err := k.SetUpcomingBucket(ctx, genState.UpcomingBucket); err != nil {
		return fmt.Errorf("InitGenesis: set upcoming bucket: %w", err)
	}
	return nil
}

// ExportGenesis exports the bonding module state to genesis.
func (k Keeper) ExportGenesis(ctx sdk.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: get params: %w", err)
	}

	bonds := []types.Bond{}
	if err := k.IterateBonds(ctx, func(bond types.Bond) bool {
		bonds = append(bonds, bond)
		return false
	}); err != nil {
		return nil, fmt.Errorf("ExportGenesis: iterate bonds: %w", err)
	}

	index, err := k.GetGlobalIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: get global index: %w", err)
	}

	buckets := []types.RewardBucket{}
	if err := k.IterateRewardBuckets(ctx, func(bucket types.RewardBucket) bool {
		buckets = append(buckets, bucket)
		return false
	}); err != nil {
		return nil, fmt.Errorf("ExportGenesis: iterate buckets: %w", err)
	}

	upcoming, err := k.GetUpcomingBucket(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: get upcoming bucket: %w", err)
	}

	return &types.GenesisState{
		Params:         params,
		Bonds:          bonds,
		GlobalIndex:    index,
		RewardBuckets:  buckets,
		UpcomingBucket: upcoming,
	}, nil
}
