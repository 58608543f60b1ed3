package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// PoolTypeConstantProduct is the x*y=k invariant.
	PoolTypeConstantProduct = "constant_product"

	// PoolTypeStableSwap is the Curve-style invariant with an
	// amplification factor.
	PoolTypeStableSwap = "stable_swap"

	// MinAmp and MaxAmp bound the stableswap amplification factor.
	MinAmp uint64 = 1
	MaxAmp uint64 = 1_000_000

	// MaxAmpChange bounds how far a single ramp may move the amp,
	// as a multiple of the current value, in either direction.
	MaxAmpChange uint64 = 10

	// MinRampBlocks is the minimum duration of an amp ramp.
	MinRampBlocks int64 = 1000

	// MinPoolAssets and MaxPoolAssets bound the pool arity. Pairs and
	// trios are the supported shapes.
	MinPoolAssets = 2
	MaxPoolAssets = 3
)

// MinimumLiquidityAmount is the dead-liquidity floor per pool asset.
// On the first deposit this many LP shares per asset are minted to the
// module itself and never redeemed, preventing share-price griefing on
// tiny subsequent deposits.
var MinimumLiquidityAmount = sdkmath.NewInt(1_000)

// PoolAsset is one asset held by a pool: its denom, current reserve
// and decimal precision.
type PoolAsset struct {
	Denom    string      `json:"denom"`
	Amount   sdkmath.Int `json:"amount"`
	Decimals uint32      `json:"decimals"`
}

// RampState tracks an in-flight amplification ramp. The effective amp
// at a block height is linearly interpolated between the initial and
// target values over the block range, clamping outside it.
type RampState struct {
	InitialAmp      uint64 `json:"initial_amp"`
	TargetAmp       uint64 `json:"target_amp"`
	InitialAmpBlock int64  `json:"initial_amp_block"`
	TargetAmpBlock  int64  `json:"target_amp_block"`
}

// AmpAtHeight returns the effective amplification factor at the given
// block height.
func (r RampState) AmpAtHeight(height int64) uint64 {
	if height <= r.InitialAmpBlock || r.TargetAmpBlock <= r.InitialAmpBlock {
		return r.InitialAmp
	}
	if height >= r.TargetAmpBlock {
		return r.TargetAmp
	}
	elapsed := uint64(height - r.InitialAmpBlock)
	window := uint64(r.TargetAmpBlock - r.InitialAmpBlock)
	if r.TargetAmp >= r.InitialAmp {
		return r.InitialAmp + (r.TargetAmp-r.InitialAmp)*elapsed/window
	}
	return r.InitialAmp - (r.InitialAmp-r.TargetAmp)*elapsed/window
}

// Validate checks amp bounds on both endpoints of the ramp.
func (r RampState) Validate() error {
	for _, amp := range []uint64{r.InitialAmp, r.TargetAmp} {
		if amp < MinAmp || amp > MaxAmp {
			return ErrInvalidAmpFactor.Wrapf("amp %d outside [%d, %d]", amp, MinAmp, MaxAmp)
		}
	}
	return nil
}

// Pool holds the full state of one liquidity pool. ProtocolFees are
// accumulated per asset and are NOT part of the tradable reserve: all
// swap and withdrawal math subtracts them first.
type Pool struct {
	Id           uint64      `json:"id"`
	LpDenom      string      `json:"lp_denom"`
	PoolType     string      `json:"pool_type"`
	Assets       []PoolAsset `json:"assets"`
	Fees         PoolFees    `json:"fees"`
	Ramp         RampState   `json:"ramp"`
	TotalShares  sdkmath.Int `json:"total_shares"`
	ProtocolFees []PoolAsset `json:"protocol_fees"`
}

// LpDenomForPool derives the LP share denom for a pool id.
func LpDenomForPool(poolID uint64) string {
	return fmt.Sprintf("%s/pool/%d/lp", ModuleName, poolID)
}

// AssetIndex returns the position of denom in the pool, or an
// ErrAssetMismatch if the pool does not hold it.
func (p Pool) AssetIndex(denom string) (int, error) {
	for i, a := range p.Assets {
		if a.Denom == denom {
			return i, nil
		}
	}
	return 0, ErrAssetMismatch.Wrapf("denom %s not in pool %d", denom, p.Id)
}

// TradableReserve returns the reserve of denom with accumulated
// protocol fees subtracted.
func (p Pool) TradableReserve(denom string) (sdkmath.Int, error) {
	i, err := p.AssetIndex(denom)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	reserve := p.Assets[i].Amount.Sub(p.ProtocolFees[i].Amount)
	if reserve.IsNegative() {
		return sdkmath.ZeroInt(), ErrInsufficientLiquidity.Wrapf("protocol fees exceed reserve for %s", denom)
	}
	return reserve, nil
}

// TradableReserves returns every reserve net of protocol fees, in
// asset order.
func (p Pool) TradableReserves() ([]sdkmath.Int, error) {
	out := make([]sdkmath.Int, len(p.Assets))
	for i, a := range p.Assets {
		r, err := p.TradableReserve(a.Denom)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// MaxDecimals returns the highest decimal precision among pool assets.
// Stableswap math normalizes every balance to this precision.
func (p Pool) MaxDecimals() uint32 {
	var maxDec uint32
	for _, a := range p.Assets {
		if a.Decimals > maxDec {
			maxDec = a.Decimals
		}
	}
	return maxDec
}

// IsStableSwap reports whether the pool uses the stableswap invariant.
func (p Pool) IsStableSwap() bool {
	return p.PoolType == PoolTypeStableSwap
}

// Validate checks structural pool invariants.
func (p Pool) Validate() error {
	if p.Id == 0 {
		return ErrInvalidPoolId.Wrap("pool id must be positive")
	}
	if len(p.Assets) < MinPoolAssets || len(p.Assets) > MaxPoolAssets {
		return ErrInvalidPoolAssets.Wrapf("pool must hold between %d and %d assets, got %d", MinPoolAssets, MaxPoolAssets, len(p.Assets))
	}
	if len(p.ProtocolFees) != len(p.Assets) {
		return ErrInvalidPoolAssets.Wrap("protocol fee accumulator arity mismatch")
	}
	seen := make(map[string]struct{}, len(p.Assets))
	for i, a := range p.Assets {
		if err := sdk.ValidateDenom(a.Denom); err != nil {
			return ErrInvalidPoolAssets.Wrapf("invalid denom %s: %v", a.Denom, err)
		}
		if _, ok := seen[a.Denom]; ok {
			return ErrSameAsset.Wrapf("duplicate denom %s", a.Denom)
		}
		seen[a.Denom] = struct{}{}
		if a.Amount.IsNil() || a.Amount.IsNegative() {
			return ErrInvalidPoolAssets.Wrapf("negative reserve for %s", a.Denom)
		}
		if p.ProtocolFees[i].Denom != a.Denom {
			return ErrInvalidPoolAssets.Wrap("protocol fee accumulator denom mismatch")
		}
	}
	switch p.PoolType {
	case PoolTypeConstantProduct:
	case PoolTypeStableSwap:
		if err := p.Ramp.Validate(); err != nil {
			return err
		}
	default:
		return ErrInvalidPoolType.Wrapf("pool type %q", p.PoolType)
	}
	if p.TotalShares.IsNil() || p.TotalShares.IsNegative() {
		return ErrInvalidPoolAssets.Wrap("negative total shares")
	}
	return p.Fees.Validate()
}
