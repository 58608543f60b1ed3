package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// GetNextPoolID returns the next pool ID and increments the counter.
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolCountKey)

	var poolID uint64 = 1
	if bz != nil {
		poolID = sdk.BigEndianToUint64(bz)
	}
	store.Set(types.PoolCountKey, sdk.Uint64ToBigEndian(poolID+1))
	return poolID
}

// SetNextPoolID sets the pool id counter. Used by genesis import.
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	k.getStore(ctx).Set(types.PoolCountKey, sdk.Uint64ToBigEndian(poolID))
}

// PeekNextPoolID reads the counter without incrementing it.
func (k Keeper) PeekNextPoolID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PoolCountKey)
	if bz == nil {
		return 1
	}
	return sdk.BigEndianToUint64(bz)
}

// GetPool retrieves a pool by id.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.GetPoolKey(poolID))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return pool, nil
}

// SetPool saves a pool to the store and maintains the LP denom index.
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	store := k.getStore(ctx)
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	store.Set(types.GetPoolKey(pool.Id), bz)
	store.Set(types.GetPoolByLpDenomKey(pool.LpDenom), sdk.Uint64ToBigEndian(pool.Id))
	return nil
}

// GetPoolByLpDenom resolves a pool from its LP share denom.
func (k Keeper) GetPoolByLpDenom(ctx context.Context, lpDenom string) (types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.GetPoolByLpDenomKey(lpDenom))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("lp denom %s", lpDenom)
	}
	return k.GetPool(ctx, sdk.BigEndianToUint64(bz))
}

// IteratePools walks every pool in id order, stopping when cb returns
// true.
func (k Keeper) IteratePools(ctx context.Context, cb func(types.Pool) bool) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKey)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// CreatePool creates a pool seeded with the creator's initial deposit.
// The first deposit mints invariant(deposits) minus the dead-liquidity
// floor to the creator; the floor shares are minted to the module
// account itself and never redeemed.
func (k Keeper) CreatePool(ctx context.Context, creator sdk.AccAddress, msg *types.MsgCreatePool) (types.Pool, sdkmath.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	poolID := k.GetNextPoolID(ctx)
	pool := types.Pool{
		Id:          poolID,
		LpDenom:     types.LpDenomForPool(poolID),
		PoolType:    msg.PoolType,
		Fees:        msg.Fees,
		TotalShares: sdkmath.ZeroInt(),
	}
	if msg.PoolType == types.PoolTypeStableSwap {
		pool.Ramp = types.RampState{
			InitialAmp:      msg.Amp,
			TargetAmp:       msg.Amp,
			InitialAmpBlock: sdkCtx.BlockHeight(),
			TargetAmpBlock:  sdkCtx.BlockHeight(),
		}
	}

	deposit := sdk.NewCoins()
	for _, a := range msg.Assets {
		pool.Assets = append(pool.Assets, types.PoolAsset{Denom: a.Denom, Amount: a.Amount, Decimals: a.Decimals})
		pool.ProtocolFees = append(pool.ProtocolFees, types.PoolAsset{Denom: a.Denom, Amount: sdkmath.ZeroInt(), Decimals: a.Decimals})
		deposit = deposit.Add(sdk.NewCoin(a.Denom, a.Amount))
	}
	if err := pool.Validate(); err != nil {
		return types.Pool{}, sdkmath.ZeroInt(), err
	}

	reserves := make([]sdkmath.Int, len(pool.Assets))
	for i, a := range pool.Assets {
		reserves[i] = a.Amount
	}
	invariant, err := poolInvariant(pool, reserves, sdkCtx.BlockHeight())
	if err != nil {
		return types.Pool{}, sdkmath.ZeroInt(), err
	}

	deadShares := types.MinimumLiquidityAmount.MulRaw(int64(len(pool.Assets)))
	creatorShares := invariant.Sub(deadShares)
	if !creatorShares.IsPositive() {
		return types.Pool{}, sdkmath.ZeroInt(), types.ErrInvalidInitialLiquidityAmount.Wrapf(
			"invariant %s does not cover the dead liquidity floor %s", invariant, deadShares)
	}
	pool.TotalShares = invariant

	if err := k.SetPool(ctx, pool); err != nil {
		return types.Pool{}, sdkmath.ZeroInt(), err
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, creator, types.ModuleName, deposit); err != nil {
		return types.Pool{}, sdkmath.ZeroInt(), fmt.Errorf("CreatePool: fund pool: %w", err)
	}

	// LP shares are a bank denom: mint the creator's portion out, keep
	// the dead shares on the module account forever.
	lpCoins := sdk.NewCoins(sdk.NewCoin(pool.LpDenom, invariant))
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, lpCoins); err != nil {
		return types.Pool{}, sdkmath.ZeroInt(), fmt.Errorf("CreatePool: mint lp shares: %w", err)
	}
	creatorCoins := sdk.NewCoins(sdk.NewCoin(pool.LpDenom, creatorShares))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, creator, creatorCoins); err != nil {
		return types.Pool{}, sdkmath.ZeroInt(), fmt.Errorf("CreatePool: send lp shares: %w", err)
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreatePool,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyPoolType, pool.PoolType),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(types.AttributeKeyShares, creatorShares.String()),
		),
	)
	if k.metrics != nil {
		k.metrics.PoolsCreated.Inc()
	}

	return pool, creatorShares, nil
}
