package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// ProvideLiquidity deposits assets into an existing pool and mints LP
// shares. Stableswap pools mint by invariant growth:
//
//	minted = total_shares * (D_after - D_before) / D_before
//
// Constant product pools mint by the smallest deposit/reserve ratio
// across the pool's assets; anything above the limiting ratio is
// donated to the pool rather than minted for. A deposit that prices to
// zero shares is invalid, not silently consumed. The optional slippage
// tolerance is enforced before any state changes.
func (k Keeper) ProvideLiquidity(ctx context.Context, provider sdk.AccAddress, poolID uint64, deposits sdk.Coins, tolerance sdkmath.LegacyDec) (sdkmath.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	for _, c := range deposits {
		if _, err := pool.AssetIndex(c.Denom); err != nil {
			return sdkmath.ZeroInt(), err
		}
	}

	reservesBefore, err := pool.TradableReserves()
	if err != nil {
		return sdkmath.ZeroInt(), err
	}

	var minted sdkmath.Int
	if pool.IsStableSwap() {
		minted, err = stableSwapMint(pool, deposits, reservesBefore, sdkCtx.BlockHeight())
	} else {
		minted, err = constantProductMint(pool, deposits, reservesBefore)
	}
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	if !minted.IsPositive() {
		return sdkmath.ZeroInt(), types.ErrInvalidZeroAmount.Wrap("deposit too small to mint shares")
	}

	if err := k.assertSlippageTolerance(ctx, pool, deposits, reservesBefore, minted, tolerance); err != nil {
		return sdkmath.ZeroInt(), err
	}

	for i := range pool.Assets {
		pool.Assets[i].Amount = pool.Assets[i].Amount.Add(deposits.AmountOf(pool.Assets[i].Denom))
	}
	pool.TotalShares = pool.TotalShares.Add(minted)
	if err := k.SetPool(ctx, pool); err != nil {
		return sdkmath.ZeroInt(), err
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, provider, types.ModuleName, deposits); err != nil {
		return sdkmath.ZeroInt(), fmt.Errorf("ProvideLiquidity: fund pool: %w", err)
	}
	lpCoins := sdk.NewCoins(sdk.NewCoin(pool.LpDenom, minted))
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, lpCoins); err != nil {
		return sdkmath.ZeroInt(), fmt.Errorf("ProvideLiquidity: mint shares: %w", err)
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, provider, lpCoins); err != nil {
		return sdkmath.ZeroInt(), fmt.Errorf("ProvideLiquidity: send shares: %w", err)
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProvideLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyShares, minted.String()),
		),
	)
	if k.metrics != nil {
		k.metrics.LiquidityProvided.WithLabelValues(fmt.Sprintf("%d", poolID)).Inc()
	}

	return minted, nil
}

// constantProductMint prices a subsequent constant product deposit by
// the minimum deposit/reserve ratio:
//
//	minted = total_shares * min_i(deposit_i / reserve_i)
//
// An asset the deposit omits contributes a zero ratio, so a one-sided
// deposit mints nothing. That keeps deposit-then-withdraw from acting
// as a swap that never pays the pool's fees.
func constantProductMint(pool types.Pool, deposits sdk.Coins, reserves []sdkmath.Int) (sdkmath.Int, error) {
	minted := sdkmath.Int{}
	for i, a := range pool.Assets {
		if !reserves[i].IsPositive() {
			return sdkmath.ZeroInt(), types.ErrInsufficientLiquidity.Wrapf("pool has no %s liquidity", a.Denom)
		}
		share, err := SafeMulDiv(pool.TotalShares, deposits.AmountOf(a.Denom), reserves[i])
		if err != nil {
			return sdkmath.ZeroInt(), err
		}
		if minted.IsNil() || share.LT(minted) {
			minted = share
		}
	}
	return minted, nil
}

// stableSwapMint prices a subsequent stableswap deposit by the growth
// of the D invariant, which accepts any deposit composition. The curve
// itself charges the imbalance cost, so no ratio floor applies.
func stableSwapMint(pool types.Pool, deposits sdk.Coins, reserves []sdkmath.Int, blockHeight int64) (sdkmath.Int, error) {
	invBefore, err := poolInvariant(pool, reserves, blockHeight)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	if !invBefore.IsPositive() {
		return sdkmath.ZeroInt(), types.ErrInsufficientLiquidity.Wrap("pool has no liquidity")
	}

	reservesAfter := make([]sdkmath.Int, len(reserves))
	for i, r := range reserves {
		reservesAfter[i] = r.Add(deposits.AmountOf(pool.Assets[i].Denom))
	}
	invAfter, err := poolInvariant(pool, reservesAfter, blockHeight)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	if invAfter.LTE(invBefore) {
		return sdkmath.ZeroInt(), types.ErrInvalidZeroAmount.Wrap("deposit does not grow the pool invariant")
	}

	return SafeMulDiv(pool.TotalShares, invAfter.Sub(invBefore), invBefore)
}

// WithdrawLiquidity burns LP shares and refunds each pool asset
// proportionally, net of accumulated protocol fees. No invariant solve
// is needed on exit.
func (k Keeper) WithdrawLiquidity(ctx context.Context, provider sdk.AccAddress, poolID uint64, lpAmount sdkmath.Int) ([]types.PoolAsset, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if lpAmount.GT(pool.TotalShares) {
		return nil, types.ErrInsufficientLiquidity.Wrapf("burning %s of %s total shares", lpAmount, pool.TotalShares)
	}

	refunds := make([]types.PoolAsset, 0, len(pool.Assets))
	refundCoins := sdk.NewCoins()
	for i, a := range pool.Assets {
		net, err := pool.TradableReserve(a.Denom)
		if err != nil {
			return nil, err
		}
		refund, err := SafeMulDiv(net, lpAmount, pool.TotalShares)
		if err != nil {
			return nil, err
		}
		refunds = append(refunds, types.PoolAsset{Denom: a.Denom, Amount: refund, Decimals: a.Decimals})
		if refund.IsPositive() {
			refundCoins = refundCoins.Add(sdk.NewCoin(a.Denom, refund))
			pool.Assets[i].Amount = pool.Assets[i].Amount.Sub(refund)
		}
	}
	pool.TotalShares = pool.TotalShares.Sub(lpAmount)
	if err := k.SetPool(ctx, pool); err != nil {
		return nil, err
	}

	lpCoins := sdk.NewCoins(sdk.NewCoin(pool.LpDenom, lpAmount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, provider, types.ModuleName, lpCoins); err != nil {
		return nil, fmt.Errorf("WithdrawLiquidity: collect shares: %w", err)
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, lpCoins); err != nil {
		return nil, fmt.Errorf("WithdrawLiquidity: burn shares: %w", err)
	}
	if !refundCoins.IsZero() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, provider, refundCoins); err != nil {
			return nil, fmt.Errorf("WithdrawLiquidity: refund: %w", err)
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyShares, lpAmount.String()),
			sdk.NewAttribute(types.AttributeKeyRefund, refundCoins.String()),
		),
	)
	if k.metrics != nil {
		k.metrics.LiquidityWithdrawn.WithLabelValues(fmt.Sprintf("%d", poolID)).Inc()
	}

	return refunds, nil
}
