package keeper

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

// RegisterInvariants registers the bonding module invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "module-balance", ModuleBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "bucket-funds", BucketFundsInvariant(k))
	ir.RegisterRoute(types.ModuleName, "global-index", GlobalIndexInvariant(k))
}

// AllInvariants runs all invariants of the bonding module.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if msg, broken := ModuleBalanceInvariant(k)(ctx); broken {
			return msg, broken
		}
		if msg, broken := BucketFundsInvariant(k)(ctx); broken {
			return msg, broken
		}
		return GlobalIndexInvariant(k)(ctx)
	}
}

// ModuleBalanceInvariant checks that the module account holds at least
// the bonded assets plus every outstanding reward pot.
func ModuleBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		index, err := k.GetGlobalIndex(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "module-balance",
				fmt.Sprintf("failed to load global index: %v", err)), true
		}

		owed := sdk.NewCoins(index.BondedAssets...)
		if err := k.IterateRewardBuckets(ctx, func(bucket types.RewardBucket) bool {
			owed = owed.Add(bucket.Available...)
			return false
		}); err != nil {
			return sdk.FormatInvariant(types.ModuleName, "module-balance",
				fmt.Sprintf("failed to iterate buckets: %v", err)), true
		}
		upcoming, err := k.GetUpcomingBucket(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "module-balance",
				fmt.Sprintf("failed to load upcoming bucket: %v", err)), true
		}
		owed = owed.Add(upcoming.Total...)

		moduleAddr := k.GetModuleAddress()
		for _, coin := range owed {
			balance := k.bankKeeper.GetBalance(ctx, moduleAddr, coin.Denom)
			if balance.Amount.LT(coin.Amount) {
				return sdk.FormatInvariant(types.ModuleName, "module-balance",
					fmt.Sprintf("module holds %s but owes %s", balance, coin)), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "module-balance",
			"module balance covers bonds and reward pots"), false
	}
}

// BucketFundsInvariant checks that no bucket's available funds exceed
// its promoted total.
func BucketFundsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		broken := false
		if err := k.IterateRewardBuckets(ctx, func(bucket types.RewardBucket) bool {
			if bucket.Available.IsAnyGT(bucket.Total) {
				msg = fmt.Sprintf("bucket %d available %s exceeds total %s",
					bucket.EpochId, bucket.Available, bucket.Total)
				broken = true
				return true
			}
			return false
		}); err != nil {
			return sdk.FormatInvariant(types.ModuleName, "bucket-funds",
				fmt.Sprintf("failed to iterate buckets: %v", err)), true
		}
		if broken {
			return sdk.FormatInvariant(types.ModuleName, "bucket-funds", msg), true
		}
		return sdk.FormatInvariant(types.ModuleName, "bucket-funds",
			"all buckets within promoted totals"), false
	}
}

// GlobalIndexInvariant checks that the global index's bonded amount
// equals the sum over all bond records.
func GlobalIndexInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		index, err := k.GetGlobalIndex(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "global-index",
				fmt.Sprintf("failed to load global index: %v", err)), true
		}

		total := sdkmath.ZeroInt()
		if err := k.IterateBonds(ctx, func(bond types.Bond) bool {
			total = total.Add(bond.Asset.Amount)
			return false
		}); err != nil {
			return sdk.FormatInvariant(types.ModuleName, "global-index",
				fmt.Sprintf("failed to iterate bonds: %v", err)), true
		}

		if !index.BondedAmount.Equal(total) {
			return sdk.FormatInvariant(types.ModuleName, "global-index",
				fmt.Sprintf("index bonded amount %s != sum of bonds %s",
					index.BondedAmount, total)), true
		}
		return sdk.FormatInvariant(types.ModuleName, "global-index",
			"index bonded amount matches bond records"), false
	}
}
