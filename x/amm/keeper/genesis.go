package keeper

import (
	"context"
	"fmt"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// InitGenesis initializes the amm module state from a genesis state.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: validate: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("InitGenesis: set params: %w", err)
	}
	for _, pool := range genState.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return fmt.Errorf("InitGenesis: set pool %d: %w", pool.Id, err)
		}
	}
	k.SetNextPoolID(ctx, genState.NextPoolId)
	return nil
}

// ExportGenesis exports the amm module state to a genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: get params: %w", err)
	}

	pools := []types.Pool{}
	if err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	}); err != nil {
		return nil, fmt.Errorf("ExportGenesis: iterate pools: %w", err)
	}

	return &types.GenesisState{
		Params:     params,
		Pools:      pools,
		NextPoolId: k.PeekNextPoolID(ctx),
	}, nil
}
