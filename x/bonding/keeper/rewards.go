package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

// DepositRewards moves coins from the depositor onto the module
// account and credits them to the upcoming reward bucket. This is the
// reward-collector entry point the amm module's fee collection calls;
// MsgFillRewards routes here too.
func (k Keeper) DepositRewards(ctx context.Context, from sdk.AccAddress, rewards sdk.Coins) error {
	if rewards.IsZero() {
		return types.ErrInvalidZeroAmount.Wrap("rewards cannot be empty")
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, from, types.ModuleName, rewards); err != nil {
		return fmt.Errorf("DepositRewards: fund module: %w", err)
	}

	upcoming, err := k.GetUpcomingBucket(ctx)
	if err != nil {
		return err
	}
	upcoming.Total = upcoming.Total.Add(rewards...)
	if err := k.SetUpcomingBucket(ctx, upcoming); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFillRewards,
			sdk.NewAttribute(types.AttributeKeySender, from.String()),
			sdk.NewAttribute(types.AttributeKeyRewards, rewards.String()),
		),
	)
	if k.metrics != nil {
		for _, c := range rewards {
			if c.Amount.IsInt64() {
				k.metrics.RewardsDeposited.WithLabelValues(c.Denom).Add(float64(c.Amount.Int64()))
			}
		}
	}
	return nil
}
