package keeper

import (
	"context"
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// Keeper of the amm store. All pool state lives behind the module's
// KVStore; token movements go through the bank keeper; collected
// protocol fees are handed to the reward collector (the bonding
// module) when configured.
type Keeper struct {
	storeKey        storetypes.StoreKey
	cdc             codec.BinaryCodec
	bankKeeper      types.BankKeeper
	rewardCollector types.RewardCollector
	authority       string
	metrics         *AMMMetrics
}

// NewKeeper creates a new amm Keeper instance.
func NewKeeper(
	cdc codec.BinaryCodec,
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		storeKey:   key,
		cdc:        cdc,
		bankKeeper: bankKeeper,
		authority:  authority,
		metrics:    NewAMMMetrics(),
	}
}

// SetRewardCollector wires the destination for collected protocol
// fees. Wiring is optional; without it collected fees stay on the
// module account until a collector is registered.
func (k *Keeper) SetRewardCollector(rc types.RewardCollector) {
	k.rewardCollector = rc
}

// GetAuthority returns the account authorized to update params and
// ramp amplification factors.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// getStore returns the KVStore for the amm module.
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// GetModuleAddress returns the amm module account address.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
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
