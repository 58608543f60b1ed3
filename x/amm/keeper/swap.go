package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// ComputeSwap runs the full forward settlement for an exact-offer swap
// against the pool's tradable reserves: curve output, spread, then the
// fee decomposition. It is pure: the pool is not modified, so the same
// function backs both execution and the Simulation query.
//
// Fees are each computed on the pre-fee return amount (never
// cascading) and subtracted sequentially in the fixed order swap,
// protocol, burn, extra. If the fees exceed the computed return the
// swap fails rather than settling at zero.
func (k Keeper) ComputeSwap(ctx context.Context, pool types.Pool, offerDenom, askDenom string, offerAmount sdkmath.Int) (types.SwapResult, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if offerDenom == askDenom {
		return types.SwapResult{}, types.ErrSameAsset.Wrap("offer and ask denoms must differ")
	}
	if !offerAmount.IsPositive() {
		return types.SwapResult{}, types.ErrInvalidZeroAmount.Wrap("offer amount")
	}
	offerIdx, err := pool.AssetIndex(offerDenom)
	if err != nil {
		return types.SwapResult{}, err
	}
	askIdx, err := pool.AssetIndex(askDenom)
	if err != nil {
		return types.SwapResult{}, err
	}

	reserves, err := pool.TradableReserves()
	if err != nil {
		return types.SwapResult{}, err
	}
	for i, r := range reserves {
		if r.IsZero() {
			return types.SwapResult{}, types.ErrInsufficientLiquidity.Wrapf("empty reserve for %s", pool.Assets[i].Denom)
		}
	}

	var preFeeReturn, spread sdkmath.Int
	if pool.IsStableSwap() {
		preFeeReturn, spread, err = k.stableSwapReturn(pool, reserves, offerIdx, askIdx, offerAmount, sdkCtx.BlockHeight())
	} else {
		preFeeReturn, spread, err = ConstantProductSwap(reserves[offerIdx], reserves[askIdx], offerAmount)
	}
	if err != nil {
		return types.SwapResult{}, err
	}

	result := types.SwapResult{
		ReturnAmount:      preFeeReturn,
		SpreadAmount:      spread,
		SwapFeeAmount:     pool.Fees.SwapFee.Compute(preFeeReturn),
		ProtocolFeeAmount: pool.Fees.ProtocolFee.Compute(preFeeReturn),
		BurnFeeAmount:     pool.Fees.BurnFee.Compute(preFeeReturn),
		ExtraFeeAmount:    pool.Fees.ExtraFee.Compute(preFeeReturn),
	}
	for _, fee := range []sdkmath.Int{result.SwapFeeAmount, result.ProtocolFeeAmount, result.BurnFeeAmount, result.ExtraFeeAmount} {
		result.ReturnAmount, err = SafeSub(result.ReturnAmount, fee)
		if err != nil {
			return types.SwapResult{}, types.ErrInsufficientLiquidity.Wrap("fees exceed computed return")
		}
	}
	if result.ReturnAmount.GTE(reserves[askIdx]) {
		return types.SwapResult{}, types.ErrInsufficientLiquidity.Wrapf("return %s drains ask reserve %s", result.ReturnAmount, reserves[askIdx])
	}
	return result, nil
}

// stableSwapReturn computes the pre-fee return and spread through the
// stableswap solvers. All balances are normalized to the pool's
// working precision before solving and the result is denormalized back
// to the ask asset's native decimals.
func (k Keeper) stableSwapReturn(pool types.Pool, reserves []sdkmath.Int, offerIdx, askIdx int, offerAmount sdkmath.Int, height int64) (sdkmath.Int, sdkmath.Int, error) {
	target := pool.MaxDecimals()
	amp := pool.Ramp.AmpAtHeight(height)

	normalized := make([]sdkmath.Int, len(reserves))
	for i, r := range reserves {
		normalized[i] = NormalizeBalance(r, pool.Assets[i].Decimals, target)
	}
	offerNorm := NormalizeBalance(offerAmount, pool.Assets[offerIdx].Decimals, target)

	d, err := StableSwapD(normalized, amp)
	if err != nil {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), err
	}

	// Fixed balances for the Y solve: every asset except ask, with the
	// offer side already bumped by the incoming amount.
	fixed := make([]sdkmath.Int, 0, len(normalized)-1)
	for i, b := range normalized {
		if i == askIdx {
			continue
		}
		if i == offerIdx {
			b = b.Add(offerNorm)
		}
		fixed = append(fixed, b)
	}
	y, err := StableSwapY(fixed, d, amp, len(normalized))
	if err != nil {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), err
	}

	returnNorm, err := SafeSub(normalized[askIdx], y)
	if err != nil {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), types.ErrInsufficientLiquidity.Wrap("solver output exceeds ask reserve")
	}
	preFeeReturn := DenormalizeBalance(returnNorm, pool.Assets[askIdx].Decimals, target)

	// Stable assets trade near 1:1, so spread is the shortfall against
	// the decimal-adjusted offer amount, floored at zero.
	naive := DenormalizeBalance(offerNorm, pool.Assets[askIdx].Decimals, target)
	spread := sdkmath.ZeroInt()
	if naive.GT(preFeeReturn) {
		spread = naive.Sub(preFeeReturn)
	}
	return preFeeReturn, spread, nil
}

// ComputeReverseSwap derives the offer amount needed to net exactly
// askAmount after fees, plus the implied settlement. For stableswap
// pools the offer amount is found by inverting through the Y solver on
// the ask side.
func (k Keeper) ComputeReverseSwap(ctx context.Context, pool types.Pool, offerDenom, askDenom string, askAmount sdkmath.Int) (offerAmount sdkmath.Int, result types.SwapResult, err error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if !askAmount.IsPositive() {
		return sdkmath.ZeroInt(), types.SwapResult{}, types.ErrInvalidZeroAmount.Wrap("ask amount")
	}
	offerIdx, err := pool.AssetIndex(offerDenom)
	if err != nil {
		return sdkmath.ZeroInt(), types.SwapResult{}, err
	}
	askIdx, err := pool.AssetIndex(askDenom)
	if err != nil {
		return sdkmath.ZeroInt(), types.SwapResult{}, err
	}
	reserves, err := pool.TradableReserves()
	if err != nil {
		return sdkmath.ZeroInt(), types.SwapResult{}, err
	}

	if pool.IsStableSwap() {
		offerAmount, err = k.stableSwapReverseOffer(pool, reserves, offerIdx, askIdx, askAmount, sdkCtx.BlockHeight())
	} else {
		offerAmount, _, err = ConstantProductReverse(reserves[offerIdx], reserves[askIdx], askAmount, pool.Fees)
	}
	if err != nil {
		return sdkmath.ZeroInt(), types.SwapResult{}, err
	}

	// Settle forward with the derived offer so the reported fees and
	// spread match what execution would produce.
	result, err = k.ComputeSwap(ctx, pool, offerDenom, askDenom, offerAmount)
	if err != nil {
		return sdkmath.ZeroInt(), types.SwapResult{}, err
	}
	return offerAmount, result, nil
}

// stableSwapReverseOffer inverts the stableswap curve: it inflates the
// net ask by the fee share, solves Y for the offer side with the ask
// balance reduced by the gross return, and reads the required offer
// amount off the difference.
func (k Keeper) stableSwapReverseOffer(pool types.Pool, reserves []sdkmath.Int, offerIdx, askIdx int, askAmount sdkmath.Int, height int64) (sdkmath.Int, error) {
	oneMinusFees := sdkmath.LegacyOneDec().Sub(pool.Fees.TotalShare())
	if !oneMinusFees.IsPositive() {
		return sdkmath.ZeroInt(), types.ErrInvalidFees.Wrap("fees consume the entire return")
	}
	grossAsk := sdkmath.LegacyNewDecFromInt(askAmount).Quo(oneMinusFees).Ceil().TruncateInt()
	if grossAsk.GTE(reserves[askIdx]) {
		return sdkmath.ZeroInt(), types.ErrInsufficientLiquidity.Wrapf("ask amount %s exceeds pool depth %s", grossAsk, reserves[askIdx])
	}

	target := pool.MaxDecimals()
	amp := pool.Ramp.AmpAtHeight(height)
	normalized := make([]sdkmath.Int, len(reserves))
	for i, r := range reserves {
		normalized[i] = NormalizeBalance(r, pool.Assets[i].Decimals, target)
	}
	grossNorm := NormalizeBalance(grossAsk, pool.Assets[askIdx].Decimals, target)

	d, err := StableSwapD(normalized, amp)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}

	// Solve for the offer balance with the ask side already drained.
	fixed := make([]sdkmath.Int, 0, len(normalized)-1)
	for i, b := range normalized {
		if i == offerIdx {
			continue
		}
		if i == askIdx {
			var subErr error
			b, subErr = SafeSub(b, grossNorm)
			if subErr != nil {
				return sdkmath.ZeroInt(), types.ErrInsufficientLiquidity.Wrap("ask amount exceeds reserve")
			}
		}
		fixed = append(fixed, b)
	}
	newOffer, err := StableSwapY(fixed, d, amp, len(normalized))
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	offerNorm, err := SafeSub(newOffer, normalized[offerIdx])
	if err != nil {
		return sdkmath.ZeroInt(), types.ErrSwapOverflow.Wrap("reverse solve produced non-positive offer")
	}
	// Round the offer up so the netted ask is never short.
	offer := DenormalizeBalance(offerNorm, pool.Assets[offerIdx].Decimals, target)
	return offer.Add(sdkmath.OneInt()), nil
}

// assertMaxSpread enforces the trader's slippage guard. With a belief
// price the guard compares the realized return (return plus fees, the
// trader's gross) against the expected return at that price; without
// one it bounds the spread ratio of the settlement itself.
func assertMaxSpread(beliefPrice, maxSpread sdkmath.LegacyDec, offerAmount sdkmath.Int, result types.SwapResult) error {
	grossReturn := result.ReturnAmount.Add(result.TotalFees())

	if !beliefPrice.IsNil() && beliefPrice.IsPositive() {
		expected := sdkmath.LegacyNewDecFromInt(offerAmount).Quo(beliefPrice).TruncateInt()
		if expected.IsPositive() && grossReturn.LT(expected) {
			lost := sdkmath.LegacyNewDecFromInt(expected.Sub(grossReturn))
			if lost.Quo(sdkmath.LegacyNewDecFromInt(expected)).GT(maxSpread) {
				return types.ErrMaxSpreadAssertion.Wrapf("expected %s at belief price, got %s", expected, grossReturn)
			}
		}
		return nil
	}

	base := grossReturn.Add(result.SpreadAmount)
	if base.IsPositive() {
		ratio := sdkmath.LegacyNewDecFromInt(result.SpreadAmount).Quo(sdkmath.LegacyNewDecFromInt(base))
		if ratio.GT(maxSpread) {
			return types.ErrMaxSpreadAssertion.Wrapf("spread ratio %s exceeds %s", ratio, maxSpread)
		}
	}
	return nil
}

// ExecuteSwap settles a swap against the pool: computes the result,
// enforces the spread and minimum-receive guards, moves tokens, burns
// the burn fee and accrues the protocol and extra fees on the pool's
// accumulator.
func (k Keeper) ExecuteSwap(ctx context.Context, trader sdk.AccAddress, msg *types.MsgSwap) (types.SwapResult, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool, err := k.GetPool(ctx, msg.PoolId)
	if err != nil {
		return types.SwapResult{}, err
	}

	result, err := k.ComputeSwap(ctx, pool, msg.OfferAsset.Denom, msg.AskDenom, msg.OfferAsset.Amount)
	if err != nil {
		return types.SwapResult{}, err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return types.SwapResult{}, err
	}
	maxSpread := msg.MaxSpread
	if maxSpread.IsNil() {
		maxSpread = params.DefaultMaxSpread
	}
	if err := assertMaxSpread(msg.BeliefPrice, maxSpread, msg.OfferAsset.Amount, result); err != nil {
		return types.SwapResult{}, err
	}
	if !msg.MinReceive.IsNil() && result.ReturnAmount.LT(msg.MinReceive) {
		return types.SwapResult{}, types.ErrMinimumReceiveAssertion.Wrapf("return %s below minimum %s", result.ReturnAmount, msg.MinReceive)
	}

	offerIdx, _ := pool.AssetIndex(msg.OfferAsset.Denom)
	askIdx, _ := pool.AssetIndex(msg.AskDenom)

	// Pool balance bookkeeping: the offer joins the reserve; the
	// return and the burned fee leave the pool entirely; protocol and
	// extra fees stay in the pool's balance but move to the
	// accumulator so they stop being tradable.
	pool.Assets[offerIdx].Amount = pool.Assets[offerIdx].Amount.Add(msg.OfferAsset.Amount)
	outOfPool := result.ReturnAmount.Add(result.BurnFeeAmount)
	pool.Assets[askIdx].Amount, err = SafeSub(pool.Assets[askIdx].Amount, outOfPool)
	if err != nil {
		return types.SwapResult{}, types.ErrInsufficientLiquidity.Wrap("settlement drains ask reserve")
	}
	accrued := result.ProtocolFeeAmount.Add(result.ExtraFeeAmount)
	pool.ProtocolFees[askIdx].Amount = pool.ProtocolFees[askIdx].Amount.Add(accrued)

	if err := k.SetPool(ctx, pool); err != nil {
		return types.SwapResult{}, err
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, trader, types.ModuleName, sdk.NewCoins(msg.OfferAsset)); err != nil {
		return types.SwapResult{}, fmt.Errorf("ExecuteSwap: collect offer: %w", err)
	}
	if result.ReturnAmount.IsPositive() {
		returnCoin := sdk.NewCoins(sdk.NewCoin(msg.AskDenom, result.ReturnAmount))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, trader, returnCoin); err != nil {
			return types.SwapResult{}, fmt.Errorf("ExecuteSwap: pay return: %w", err)
		}
	}
	if result.BurnFeeAmount.IsPositive() {
		burnCoin := sdk.NewCoins(sdk.NewCoin(msg.AskDenom, result.BurnFeeAmount))
		if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, burnCoin); err != nil {
			return types.SwapResult{}, fmt.Errorf("ExecuteSwap: burn fee: %w", err)
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
			sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
			sdk.NewAttribute(types.AttributeKeyOfferAsset, msg.OfferAsset.String()),
			sdk.NewAttribute(types.AttributeKeyAskDenom, msg.AskDenom),
			sdk.NewAttribute(types.AttributeKeyReturnAmount, result.ReturnAmount.String()),
			sdk.NewAttribute(types.AttributeKeySpreadAmount, result.SpreadAmount.String()),
			sdk.NewAttribute(types.AttributeKeySwapFee, result.SwapFeeAmount.String()),
			sdk.NewAttribute(types.AttributeKeyProtocolFee, result.ProtocolFeeAmount.String()),
			sdk.NewAttribute(types.AttributeKeyBurnFee, result.BurnFeeAmount.String()),
			sdk.NewAttribute(types.AttributeKeyExtraFee, result.ExtraFeeAmount.String()),
		),
	)
	if k.metrics != nil {
		k.metrics.SwapsTotal.WithLabelValues(fmt.Sprintf("%d", pool.Id), pool.PoolType).Inc()
	}

	return result, nil
}
