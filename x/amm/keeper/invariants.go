package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// RegisterInvariants registers all amm invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-reserves", PoolReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-shares", PoolSharesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "protocol-fees", ProtocolFeesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "lp-supply", LpSupplyInvariant(k))
}

// AllInvariants runs all invariants of the amm module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PoolSharesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = ProtocolFeesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return LpSupplyInvariant(k)(ctx)
	}
}

// PoolReservesInvariant checks that recorded reserves are covered by
// the module account balances. Multiple pools can share a denom, so
// balances are checked against the summed reserves.
func PoolReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		totalReserves := make(map[string]math.Int)
		_ = k.IteratePools(ctx, func(pool types.Pool) bool {
			for _, a := range pool.Assets {
				if existing, ok := totalReserves[a.Denom]; ok {
					totalReserves[a.Denom] = existing.Add(a.Amount)
				} else {
					totalReserves[a.Denom] = a.Amount
				}
			}
			return false
		})

		moduleAddr := k.GetModuleAddress()
		for denom, required := range totalReserves {
			balance := k.bankKeeper.GetBalance(ctx, moduleAddr, denom)
			if balance.Amount.LT(required) {
				count++
				msg += fmt.Sprintf("denom %s: module balance (%s) < total reserves (%s)\n",
					denom, balance.Amount.String(), required.String())
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-reserves",
			fmt.Sprintf("found %d denoms with reserves exceeding module balance\n%s", count, msg),
		), broken
	}
}

// PoolSharesInvariant checks that every pool keeps a positive share
// supply at or above the dead-liquidity floor.
func PoolSharesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		_ = k.IteratePools(ctx, func(pool types.Pool) bool {
			if pool.TotalShares.IsNil() || pool.TotalShares.LTE(math.ZeroInt()) {
				count++
				msg += fmt.Sprintf("pool %d: total shares is nil or non-positive (%s)\n",
					pool.Id, pool.TotalShares.String())
				return false
			}

			floor := types.MinimumLiquidityAmount.MulRaw(int64(len(pool.Assets)))
			if pool.TotalShares.LT(floor) {
				count++
				msg += fmt.Sprintf("pool %d: total shares (%s) below dead-liquidity floor (%s)\n",
					pool.Id, pool.TotalShares.String(), floor.String())
			}
			return false
		})

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-shares",
			fmt.Sprintf("found %d pools with invalid shares\n%s", count, msg),
		), broken
	}
}

// ProtocolFeesInvariant checks that accumulated protocol fees never
// exceed the reserve they are carved out of.
func ProtocolFeesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		_ = k.IteratePools(ctx, func(pool types.Pool) bool {
			for i, fee := range pool.ProtocolFees {
				if fee.Amount.IsNil() || fee.Amount.IsNegative() {
					count++
					msg += fmt.Sprintf("pool %d: protocol fee for %s is nil or negative (%s)\n",
						pool.Id, fee.Denom, fee.Amount.String())
					continue
				}
				if fee.Amount.GT(pool.Assets[i].Amount) {
					count++
					msg += fmt.Sprintf("pool %d: protocol fee for %s (%s) > reserve (%s)\n",
						pool.Id, fee.Denom, fee.Amount.String(), pool.Assets[i].Amount.String())
				}
			}
			return false
		})

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "protocol-fees",
			fmt.Sprintf("found %d protocol fee accumulators exceeding reserves\n%s", count, msg),
		), broken
	}
}

// LpSupplyInvariant checks that the dead-liquidity shares remain on
// the module account for every pool.
func LpSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		moduleAddr := k.GetModuleAddress()
		_ = k.IteratePools(ctx, func(pool types.Pool) bool {
			floor := types.MinimumLiquidityAmount.MulRaw(int64(len(pool.Assets)))
			held := k.bankKeeper.GetBalance(ctx, moduleAddr, pool.LpDenom)
			if held.Amount.LT(floor) {
				count++
				msg += fmt.Sprintf("pool %d: module holds %s LP shares, floor is %s\n",
					pool.Id, held.Amount.String(), floor.String())
			}
			return false
		})

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "lp-supply",
			fmt.Sprintf("found %d pools missing dead-liquidity shares\n%s", count, msg),
		), broken
	}
}
