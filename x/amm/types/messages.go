package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgCreatePool          = "create_pool"
	TypeMsgProvideLiquidity    = "provide_liquidity"
	TypeMsgWithdrawLiquidity   = "withdraw_liquidity"
	TypeMsgSwap                = "swap"
	TypeMsgRampAmp             = "ramp_amp"
	TypeMsgStopRamp            = "stop_ramp"
	TypeMsgCollectProtocolFees = "collect_protocol_fees"
	TypeMsgUpdateParams        = "update_params"
)

var (
	_ sdk.Msg = &MsgCreatePool{}
	_ sdk.Msg = &MsgProvideLiquidity{}
	_ sdk.Msg = &MsgWithdrawLiquidity{}
	_ sdk.Msg = &MsgSwap{}
	_ sdk.Msg = &MsgRampAmp{}
	_ sdk.Msg = &MsgStopRamp{}
	_ sdk.Msg = &MsgCollectProtocolFees{}
	_ sdk.Msg = &MsgUpdateParams{}
)

// MsgCreatePool creates a new pool seeded with the initial deposit.
type MsgCreatePool struct {
	Creator  string      `json:"creator"`
	PoolType string      `json:"pool_type"`
	Assets   []PoolAsset `json:"assets"`
	Fees     PoolFees    `json:"fees"`
	Amp      uint64      `json:"amp,omitempty"`
}

func (m *MsgCreatePool) Reset()         { *m = MsgCreatePool{} }
func (m *MsgCreatePool) String() string { return fmt.Sprintf("%s(%s)", TypeMsgCreatePool, m.Creator) }
func (m *MsgCreatePool) ProtoMessage()  {}

// ValidateBasic performs stateless validation of MsgCreatePool.
func (m *MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Creator); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid creator address: %s", err)
	}
	if len(m.Assets) < MinPoolAssets || len(m.Assets) > MaxPoolAssets {
		return sdkerrors.Wrapf(ErrInvalidPoolAssets, "pool must hold between %d and %d assets", MinPoolAssets, MaxPoolAssets)
	}
	seen := make(map[string]struct{}, len(m.Assets))
	for _, a := range m.Assets {
		if err := sdk.ValidateDenom(a.Denom); err != nil {
			return sdkerrors.Wrapf(ErrInvalidPoolAssets, "invalid denom: %s", err)
		}
		if _, ok := seen[a.Denom]; ok {
			return sdkerrors.Wrapf(ErrSameAsset, "duplicate denom %s", a.Denom)
		}
		seen[a.Denom] = struct{}{}
		if a.Amount.IsNil() || !a.Amount.IsPositive() {
			return sdkerrors.Wrapf(ErrInvalidZeroAmount, "initial deposit for %s must be positive", a.Denom)
		}
	}
	switch m.PoolType {
	case PoolTypeConstantProduct:
	case PoolTypeStableSwap:
		if m.Amp < MinAmp || m.Amp > MaxAmp {
			return sdkerrors.Wrapf(ErrInvalidAmpFactor, "amp %d outside [%d, %d]", m.Amp, MinAmp, MaxAmp)
		}
	default:
		return sdkerrors.Wrapf(ErrInvalidPoolType, "pool type %q", m.PoolType)
	}
	return m.Fees.Validate()
}

// GetSigners returns the expected signers for MsgCreatePool.
func (m *MsgCreatePool) GetSigners() []sdk.AccAddress {
	creator, _ := sdk.AccAddressFromBech32(m.Creator)
	return []sdk.AccAddress{creator}
}

// MsgProvideLiquidity deposits assets into an existing pool.
// SlippageTolerance is optional; when set it must not exceed the
// module's MaxAllowedSlippage param.
type MsgProvideLiquidity struct {
	Provider          string            `json:"provider"`
	PoolId            uint64            `json:"pool_id"`
	Assets            []sdk.Coin        `json:"assets"`
	SlippageTolerance sdkmath.LegacyDec `json:"slippage_tolerance,omitempty"`
}

func (m *MsgProvideLiquidity) Reset() { *m = MsgProvideLiquidity{} }
func (m *MsgProvideLiquidity) String() string {
	return fmt.Sprintf("%s(%s, pool %d)", TypeMsgProvideLiquidity, m.Provider, m.PoolId)
}
func (m *MsgProvideLiquidity) ProtoMessage() {}

// ValidateBasic performs stateless validation of MsgProvideLiquidity.
func (m *MsgProvideLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if m.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id must be positive")
	}
	if len(m.Assets) == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolAssets, "deposit cannot be empty")
	}
	for _, c := range m.Assets {
		if err := c.Validate(); err != nil {
			return sdkerrors.Wrapf(ErrInvalidPoolAssets, "invalid deposit coin: %s", err)
		}
		if c.Amount.IsZero() {
			return sdkerrors.Wrapf(ErrInvalidZeroAmount, "deposit for %s", c.Denom)
		}
	}
	if !m.SlippageTolerance.IsNil() {
		if m.SlippageTolerance.IsNegative() || m.SlippageTolerance.GT(sdkmath.LegacyOneDec()) {
			return sdkerrors.Wrapf(ErrInvalidSlippageTolerance, "tolerance %s", m.SlippageTolerance)
		}
	}
	return nil
}

// GetSigners returns the expected signers for MsgProvideLiquidity.
func (m *MsgProvideLiquidity) GetSigners() []sdk.AccAddress {
	provider, _ := sdk.AccAddressFromBech32(m.Provider)
	return []sdk.AccAddress{provider}
}

// MsgWithdrawLiquidity burns LP shares for a proportional refund.
type MsgWithdrawLiquidity struct {
	Provider string      `json:"provider"`
	PoolId   uint64      `json:"pool_id"`
	Amount   sdkmath.Int `json:"amount"`
}

func (m *MsgWithdrawLiquidity) Reset() { *m = MsgWithdrawLiquidity{} }
func (m *MsgWithdrawLiquidity) String() string {
	return fmt.Sprintf("%s(%s, pool %d)", TypeMsgWithdrawLiquidity, m.Provider, m.PoolId)
}
func (m *MsgWithdrawLiquidity) ProtoMessage() {}

// ValidateBasic performs stateless validation of MsgWithdrawLiquidity.
func (m *MsgWithdrawLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if m.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id must be positive")
	}
	if m.Amount.IsNil() || !m.Amount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidZeroAmount, "withdraw amount must be positive")
	}
	return nil
}

// GetSigners returns the expected signers for MsgWithdrawLiquidity.
func (m *MsgWithdrawLiquidity) GetSigners() []sdk.AccAddress {
	provider, _ := sdk.AccAddressFromBech32(m.Provider)
	return []sdk.AccAddress{provider}
}

// MsgSwap swaps an exact offer asset for the pool's ask asset.
// BeliefPrice and MaxSpread are optional guard inputs; MinReceive is
// an optional absolute floor on the post-fee return amount.
type MsgSwap struct {
	Trader      string            `json:"trader"`
	PoolId      uint64            `json:"pool_id"`
	OfferAsset  sdk.Coin          `json:"offer_asset"`
	AskDenom    string            `json:"ask_denom"`
	BeliefPrice sdkmath.LegacyDec `json:"belief_price,omitempty"`
	MaxSpread   sdkmath.LegacyDec `json:"max_spread,omitempty"`
	MinReceive  sdkmath.Int       `json:"min_receive,omitempty"`
}

func (m *MsgSwap) Reset() { *m = MsgSwap{} }
func (m *MsgSwap) String() string {
	return fmt.Sprintf("%s(%s, pool %d, %s->%s)", TypeMsgSwap, m.Trader, m.PoolId, m.OfferAsset.Denom, m.AskDenom)
}
func (m *MsgSwap) ProtoMessage() {}

// ValidateBasic performs stateless validation of MsgSwap.
func (m *MsgSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Trader); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid trader address: %s", err)
	}
	if m.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id must be positive")
	}
	if err := m.OfferAsset.Validate(); err != nil {
		return sdkerrors.Wrapf(ErrInvalidPoolAssets, "invalid offer asset: %s", err)
	}
	if m.OfferAsset.Amount.IsZero() {
		return sdkerrors.Wrap(ErrInvalidZeroAmount, "offer amount")
	}
	if err := sdk.ValidateDenom(m.AskDenom); err != nil {
		return sdkerrors.Wrapf(ErrInvalidPoolAssets, "invalid ask denom: %s", err)
	}
	if m.OfferAsset.Denom == m.AskDenom {
		return sdkerrors.Wrap(ErrSameAsset, "offer and ask denoms must differ")
	}
	if !m.BeliefPrice.IsNil() && !m.BeliefPrice.IsPositive() {
		return sdkerrors.Wrapf(ErrInvalidZeroAmount, "belief price %s", m.BeliefPrice)
	}
	if !m.MaxSpread.IsNil() {
		if m.MaxSpread.IsNegative() || m.MaxSpread.GT(sdkmath.LegacyOneDec()) {
			return sdkerrors.Wrapf(ErrInvalidSlippageTolerance, "max spread %s", m.MaxSpread)
		}
	}
	if !m.MinReceive.IsNil() && m.MinReceive.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidZeroAmount, "min receive cannot be negative")
	}
	return nil
}

// GetSigners returns the expected signers for MsgSwap.
func (m *MsgSwap) GetSigners() []sdk.AccAddress {
	trader, _ := sdk.AccAddressFromBech32(m.Trader)
	return []sdk.AccAddress{trader}
}

// MsgRampAmp starts an amplification ramp on a stableswap pool.
type MsgRampAmp struct {
	Authority   string `json:"authority"`
	PoolId      uint64 `json:"pool_id"`
	TargetAmp   uint64 `json:"target_amp"`
	TargetBlock int64  `json:"target_block"`
}

func (m *MsgRampAmp) Reset() { *m = MsgRampAmp{} }
func (m *MsgRampAmp) String() string {
	return fmt.Sprintf("%s(pool %d, target %d)", TypeMsgRampAmp, m.PoolId, m.TargetAmp)
}
func (m *MsgRampAmp) ProtoMessage() {}

// ValidateBasic performs stateless validation of MsgRampAmp.
func (m *MsgRampAmp) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if m.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id must be positive")
	}
	if m.TargetAmp < MinAmp || m.TargetAmp > MaxAmp {
		return sdkerrors.Wrapf(ErrInvalidAmpFactor, "target amp %d outside [%d, %d]", m.TargetAmp, MinAmp, MaxAmp)
	}
	return nil
}

// GetSigners returns the expected signers for MsgRampAmp.
func (m *MsgRampAmp) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}

// MsgStopRamp freezes an in-flight amplification ramp at its current value.
type MsgStopRamp struct {
	Authority string `json:"authority"`
	PoolId    uint64 `json:"pool_id"`
}

func (m *MsgStopRamp) Reset()         { *m = MsgStopRamp{} }
func (m *MsgStopRamp) String() string { return fmt.Sprintf("%s(pool %d)", TypeMsgStopRamp, m.PoolId) }
func (m *MsgStopRamp) ProtoMessage()  {}

// ValidateBasic performs stateless validation of MsgStopRamp.
func (m *MsgStopRamp) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if m.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id must be positive")
	}
	return nil
}

// GetSigners returns the expected signers for MsgStopRamp.
func (m *MsgStopRamp) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}

// MsgCollectProtocolFees zeroes a pool's protocol fee accumulator and
// forwards the accumulated assets to the reward collector.
type MsgCollectProtocolFees struct {
	Sender string `json:"sender"`
	PoolId uint64 `json:"pool_id"`
}

func (m *MsgCollectProtocolFees) Reset() { *m = MsgCollectProtocolFees{} }
func (m *MsgCollectProtocolFees) String() string {
	return fmt.Sprintf("%s(pool %d)", TypeMsgCollectProtocolFees, m.PoolId)
}
func (m *MsgCollectProtocolFees) ProtoMessage() {}

// ValidateBasic performs stateless validation of MsgCollectProtocolFees.
func (m *MsgCollectProtocolFees) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if m.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id must be positive")
	}
	return nil
}

// GetSigners returns the expected signers for MsgCollectProtocolFees.
func (m *MsgCollectProtocolFees) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{sender}
}

// MsgUpdateParams updates the module parameters.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

func (m *MsgUpdateParams) Reset()         { *m = MsgUpdateParams{} }
func (m *MsgUpdateParams) String() string { return TypeMsgUpdateParams }
func (m *MsgUpdateParams) ProtoMessage()  {}

// ValidateBasic performs stateless validation of MsgUpdateParams.
func (m *MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	return m.Params.Validate()
}

// GetSigners returns the expected signers for MsgUpdateParams.
func (m *MsgUpdateParams) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}
