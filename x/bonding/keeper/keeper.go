package keeper

import (
	"context"
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

// Keeper of the bonding store. Bonds, the global index and the reward
// bucket ledger live behind the module's KVStore; bonded funds and
// reward pots sit on the module account.
type Keeper struct {
	storeKey     storetypes.StoreKey
	cdc          codec.BinaryCodec
	bankKeeper   types.BankKeeper
	epochsKeeper types.EpochsKeeper
	authority    string
	metrics      *BondingMetrics
}

// NewKeeper creates a new bonding Keeper instance.
func NewKeeper(
	cdc codec.BinaryCodec,
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	epochsKeeper types.EpochsKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		storeKey:     key,
		cdc:          cdc,
		bankKeeper:   bankKeeper,
		epochsKeeper: epochsKeeper,
		authority:    authority,
		metrics:      NewBondingMetrics(),
	}
}

// GetAuthority returns the account authorized to update params.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// getStore returns the KVStore for the bonding module.
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// GetModuleAddress returns the bonding module account address.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

// ModuleName implements the reward-collector contract consumed by the
// amm module.
func (k Keeper) ModuleName() string {
	return types.ModuleName
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
