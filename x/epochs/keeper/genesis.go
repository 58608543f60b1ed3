package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/epochs/types"
)

// InitGenesis initializes the epochs module state from a genesis
// state. A zero start time means "anchor epoch zero at the genesis
// block time".
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: validate: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("InitGenesis: set params: %w", err)
	}

	epoch := genState.CurrentEpoch
	if epoch.StartTime.IsZero() {
		epoch.StartTime = sdk.UnwrapSDKContext(ctx).BlockTime()
	}
	if err := k.SetCurrentEpoch(ctx, epoch); err != nil {
		return fmt.Errorf("InitGenesis: set current epoch: %w", err)
	}
	return nil
}

// ExportGenesis exports the epochs module state to a genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: get params: %w", err)
	}
	epoch, err := k.GetCurrentEpoch(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: get current epoch: %w", err)
	}
	return &types.GenesisState{
		Params:       params,
		CurrentEpoch: epoch,
	}, nil
}
