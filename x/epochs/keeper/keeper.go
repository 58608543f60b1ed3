package keeper

import (
	"context"
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/epochs/types"
)

// Keeper of the epochs store. It tracks a single monotonically
// advancing epoch record and notifies registered hooks on rollover.
type Keeper struct {
	storeKey  storetypes.StoreKey
	cdc       codec.BinaryCodec
	hooks     types.EpochHooks
	authority string
}

// NewKeeper creates a new epochs Keeper instance.
func NewKeeper(
	cdc codec.BinaryCodec,
	key storetypes.StoreKey,
	authority string,
) *Keeper {
	return &Keeper{
		storeKey:  key,
		cdc:       cdc,
		authority: authority,
	}
}

// SetHooks wires the rollover listeners. Call once during app wiring;
// calling twice is a wiring bug.
func (k *Keeper) SetHooks(hooks types.EpochHooks) {
	if k.hooks != nil {
		panic("epochs hooks already set")
	}
	k.hooks = hooks
}

// GetAuthority returns the account authorized to update params.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// getStore returns the KVStore for the epochs module.
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// GetParams returns the current module parameters.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams(), nil
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, err
	}
	return params, nil
}

// SetParams validates and stores the module parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}
