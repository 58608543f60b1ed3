package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// CollectProtocolFees drains the accumulated protocol fee buckets of a
// pool. When a reward collector is wired the coins fund the current
// epoch's reward bucket; otherwise they move to the collector-less
// module account and sit there until one is registered.
//
// Anyone may trigger collection. The caller pays gas, the fees always
// go to the protocol.
func (k Keeper) CollectProtocolFees(ctx context.Context, poolID uint64) (sdk.Coins, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}

	collected := sdk.NewCoins()
	for i := range pool.ProtocolFees {
		amt := pool.ProtocolFees[i].Amount
		if !amt.IsPositive() {
			continue
		}
		collected = collected.Add(sdk.NewCoin(pool.ProtocolFees[i].Denom, amt))
		pool.Assets[i].Amount = pool.Assets[i].Amount.Sub(amt)
		pool.ProtocolFees[i].Amount = sdkmath.ZeroInt()
	}
	if collected.IsZero() {
		return sdk.NewCoins(), nil
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return nil, err
	}

	// DepositRewards pulls the coins from the amm module account
	// itself, so no transfer happens here when no collector is wired.
	if k.rewardCollector != nil {
		moduleAddr := k.GetModuleAddress()
		if err := k.rewardCollector.DepositRewards(ctx, moduleAddr, collected); err != nil {
			return nil, fmt.Errorf("CollectProtocolFees: deposit rewards: %w", err)
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCollectProtocolFees,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyCollected, collected.String()),
		),
	)

	return collected, nil
}
