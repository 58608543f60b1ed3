package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// MsgServer defines the amm module's Msg service.
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	ProvideLiquidity(context.Context, *MsgProvideLiquidity) (*MsgProvideLiquidityResponse, error)
	WithdrawLiquidity(context.Context, *MsgWithdrawLiquidity) (*MsgWithdrawLiquidityResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
	RampAmp(context.Context, *MsgRampAmp) (*MsgRampAmpResponse, error)
	StopRamp(context.Context, *MsgStopRamp) (*MsgStopRampResponse, error)
	CollectProtocolFees(context.Context, *MsgCollectProtocolFees) (*MsgCollectProtocolFeesResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgCreatePoolResponse defines the response for CreatePool.
type MsgCreatePoolResponse struct {
	PoolId  uint64      `json:"pool_id"`
	LpDenom string      `json:"lp_denom"`
	Shares  sdkmath.Int `json:"shares"`
}

// MsgProvideLiquidityResponse defines the response for ProvideLiquidity.
type MsgProvideLiquidityResponse struct {
	Shares sdkmath.Int `json:"shares"`
}

// MsgWithdrawLiquidityResponse defines the response for WithdrawLiquidity.
type MsgWithdrawLiquidityResponse struct {
	RefundAssets []PoolAsset `json:"refund_assets"`
}

// MsgSwapResponse defines the response for Swap.
type MsgSwapResponse struct {
	Result SwapResult `json:"result"`
}

// MsgRampAmpResponse defines the response for RampAmp.
type MsgRampAmpResponse struct{}

// MsgStopRampResponse defines the response for StopRamp.
type MsgStopRampResponse struct{}

// MsgCollectProtocolFeesResponse defines the response for CollectProtocolFees.
type MsgCollectProtocolFeesResponse struct {
	Collected []PoolAsset `json:"collected"`
}

// MsgUpdateParamsResponse defines the response for UpdateParams.
type MsgUpdateParamsResponse struct{}
