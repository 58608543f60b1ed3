package keeper

import (
	"context"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

// assertReadyForBondChange enforces the two preconditions every bond
// mutation shares: the current epoch must not be stale, and the owner
// must not be sitting on claimable rewards that the mutation would
// reprice.
func (k Keeper) assertReadyForBondChange(ctx context.Context, owner sdk.AccAddress) error {
	stale, err := k.epochsKeeper.EpochIsStale(ctx)
	if err != nil {
		return err
	}
	if stale {
		return types.ErrEpochNotCreatedYet
	}

	claimable, err := k.ClaimableBuckets(ctx, owner)
	if err != nil {
		return err
	}
	if len(claimable) > 0 {
		return types.ErrUnclaimedRewards.Wrapf("%d claimable reward buckets", len(claimable))
	}
	return nil
}

// Bond locks the owner's coins under the module account and opens or
// tops up their position. The position's weight is rolled forward to
// the current epoch before the amount changes, so a top-up starts
// accruing on the new amount only from the next epoch.
func (k Keeper) Bond(ctx context.Context, owner sdk.AccAddress, asset sdk.Coin) (sdkmath.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	params, err := k.GetParams(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if !params.IsBondDenom(asset.Denom) {
		return sdkmath.Int{}, types.ErrInvalidBondDenom.Wrapf("denom %s is not bondable", asset.Denom)
	}
	if !asset.Amount.IsPositive() {
		return sdkmath.Int{}, types.ErrInvalidZeroAmount
	}
	if err := k.assertReadyForBondChange(ctx, owner); err != nil {
		return sdkmath.Int{}, err
	}

	current, err := k.epochsKeeper.GetCurrentEpoch(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}

	bond, found, err := k.GetBond(ctx, owner, asset.Denom)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if !found {
		bond = types.Bond{
			Owner:       owner.String(),
			Asset:       sdk.NewCoin(asset.Denom, sdkmath.ZeroInt()),
			Weight:      sdkmath.ZeroInt(),
			LastUpdated: current.Id,
		}
	}

	bond.Weight = bond.WeightAt(current.Id, params.GrowthRate)
	bond.LastUpdated = current.Id
	bond.Asset = bond.Asset.Add(asset)
	if err := k.SetBond(ctx, owner, bond); err != nil {
		return sdkmath.Int{}, err
	}

	index, err := k.GetGlobalIndex(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}
	index.LastWeight = index.WeightAt(current.Id, params.GrowthRate)
	index.LastUpdated = current.Id
	index.BondedAmount = index.BondedAmount.Add(asset.Amount)
	index.BondedAssets = index.BondedAssets.Add(asset)
	if err := k.SetGlobalIndex(ctx, index); err != nil {
		return sdkmath.Int{}, err
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, owner, types.ModuleName, sdk.NewCoins(asset)); err != nil {
		return sdkmath.Int{}, fmt.Errorf("Bond: lock funds: %w", err)
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBond,
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, asset.String()),
			sdk.NewAttribute(types.AttributeKeyWeight, bond.Weight.String()),
			sdk.NewAttribute(types.AttributeKeyEpochID, fmt.Sprintf("%d", current.Id)),
		),
	)
	if k.metrics != nil {
		k.metrics.BondsTotal.WithLabelValues(asset.Denom).Inc()
	}
	return bond.Weight, nil
}

// Unbond releases part or all of the owner's position. Accrued weight
// shrinks in proportion to the amount removed, and the same delta
// leaves the global index so bucket shares stay consistent. A full
// unbond deletes the position.
func (k Keeper) Unbond(ctx context.Context, owner sdk.AccAddress, asset sdk.Coin) (sdk.Coin, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	params, err := k.GetParams(ctx)
	if err != nil {
		return sdk.Coin{}, err
	}
	if !asset.Amount.IsPositive() {
		return sdk.Coin{}, types.ErrInvalidZeroAmount
	}
	if err := k.assertReadyForBondChange(ctx, owner); err != nil {
		return sdk.Coin{}, err
	}

	bond, found, err := k.GetBond(ctx, owner, asset.Denom)
	if err != nil {
		return sdk.Coin{}, err
	}
	if !found {
		return sdk.Coin{}, types.ErrNothingToUnbond.Wrapf("no bond in %s", asset.Denom)
	}
	if asset.Amount.GT(bond.Asset.Amount) {
		return sdk.Coin{}, types.ErrInsufficientBond.Wrapf(
			"unbond %s exceeds bonded %s", asset, bond.Asset,
		)
	}

	current, err := k.epochsKeeper.GetCurrentEpoch(ctx)
	if err != nil {
		return sdk.Coin{}, err
	}

	prevAmount := bond.Asset.Amount
	weightNow := bond.WeightAt(current.Id, params.GrowthRate)
	remaining := prevAmount.Sub(asset.Amount)
	newWeight := scaleWeight(weightNow, remaining, prevAmount)
	weightDelta := weightNow.Sub(newWeight)

	index, err := k.GetGlobalIndex(ctx)
	if err != nil {
		return sdk.Coin{}, err
	}
	index.LastWeight = index.WeightAt(current.Id, params.GrowthRate).Sub(weightDelta)
	if index.LastWeight.IsNegative() {
		index.LastWeight = sdkmath.ZeroInt()
	}
	index.LastUpdated = current.Id
	index.BondedAmount = index.BondedAmount.Sub(asset.Amount)
	index.BondedAssets = index.BondedAssets.Sub(asset)
	if err := k.SetGlobalIndex(ctx, index); err != nil {
		return sdk.Coin{}, err
	}

	remainingCoin := sdk.NewCoin(asset.Denom, remaining)
	if remaining.IsZero() {
		k.RemoveBond(ctx, owner, asset.Denom)
	} else {
		bond.Asset = remainingCoin
		bond.Weight = newWeight
		bond.LastUpdated = current.Id
		if err := k.SetBond(ctx, owner, bond); err != nil {
			return sdk.Coin{}, err
		}
	}

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, owner, sdk.NewCoins(asset)); err != nil {
		return sdk.Coin{}, fmt.Errorf("Unbond: release funds: %w", err)
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeUnbond,
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, asset.String()),
			sdk.NewAttribute(types.AttributeKeyWeight, newWeight.String()),
			sdk.NewAttribute(types.AttributeKeyEpochID, fmt.Sprintf("%d", current.Id)),
		),
	)
	if k.metrics != nil {
		k.metrics.UnbondsTotal.WithLabelValues(asset.Denom).Inc()
	}
	return remainingCoin, nil
}

// scaleWeight computes floor(weight * num / den). den is the previous
// bonded amount and is known positive at every call site.
func scaleWeight(weight, num, den sdkmath.Int) sdkmath.Int {
	if num.IsZero() {
		return sdkmath.ZeroInt()
	}
	out := new(big.Int).Mul(weight.BigInt(), num.BigInt())
	out.Quo(out, den.BigInt())
	return sdkmath.NewIntFromBigInt(out)
}
