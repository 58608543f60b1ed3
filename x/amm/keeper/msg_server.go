package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the amm MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles the creation of a new liquidity pool
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate: %w", err)
	}

	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: invalid creator address: %w", err)
	}

	pool, shares, err := ms.Keeper.CreatePool(goCtx, creator, msg)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: %w", err)
	}

	return &types.MsgCreatePoolResponse{
		PoolId:  pool.Id,
		LpDenom: pool.LpDenom,
		Shares:  shares,
	}, nil
}

// ProvideLiquidity handles depositing assets into an existing pool
func (ms msgServer) ProvideLiquidity(goCtx context.Context, msg *types.MsgProvideLiquidity) (*types.MsgProvideLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("ProvideLiquidity: validate: %w", err)
	}

	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("ProvideLiquidity: invalid provider address: %w", err)
	}

	deposits := sdk.NewCoins(msg.Assets...)
	shares, err := ms.Keeper.ProvideLiquidity(goCtx, provider, msg.PoolId, deposits, msg.SlippageTolerance)
	if err != nil {
		return nil, fmt.Errorf("ProvideLiquidity: %w", err)
	}

	return &types.MsgProvideLiquidityResponse{Shares: shares}, nil
}

// WithdrawLiquidity handles burning LP shares for a proportional refund
func (ms msgServer) WithdrawLiquidity(goCtx context.Context, msg *types.MsgWithdrawLiquidity) (*types.MsgWithdrawLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("WithdrawLiquidity: validate: %w", err)
	}

	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("WithdrawLiquidity: invalid provider address: %w", err)
	}

	refunds, err := ms.Keeper.WithdrawLiquidity(goCtx, provider, msg.PoolId, msg.Amount)
	if err != nil {
		return nil, fmt.Errorf("WithdrawLiquidity: %w", err)
	}

	return &types.MsgWithdrawLiquidityResponse{RefundAssets: refunds}, nil
}

// Swap handles an exact-offer swap against a pool
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Swap: validate: %w", err)
	}

	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, fmt.Errorf("Swap: invalid trader address: %w", err)
	}

	result, err := ms.Keeper.ExecuteSwap(goCtx, trader, msg)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}

	return &types.MsgSwapResponse{Result: result}, nil
}

// RampAmp handles scheduling an amplification ramp on a stableswap pool
func (ms msgServer) RampAmp(goCtx context.Context, msg *types.MsgRampAmp) (*types.MsgRampAmpResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RampAmp: validate: %w", err)
	}

	if err := ms.Keeper.RampAmp(goCtx, msg.Authority, msg.PoolId, msg.TargetAmp, msg.TargetBlock); err != nil {
		return nil, fmt.Errorf("RampAmp: %w", err)
	}

	return &types.MsgRampAmpResponse{}, nil
}

// StopRamp handles freezing an in-flight amplification ramp
func (ms msgServer) StopRamp(goCtx context.Context, msg *types.MsgStopRamp) (*types.MsgStopRampResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("StopRamp: validate: %w", err)
	}

	if err := ms.Keeper.StopRamp(goCtx, msg.Authority, msg.PoolId); err != nil {
		return nil, fmt.Errorf("StopRamp: %w", err)
	}

	return &types.MsgStopRampResponse{}, nil
}

// CollectProtocolFees handles draining a pool's protocol fee accumulator
func (ms msgServer) CollectProtocolFees(goCtx context.Context, msg *types.MsgCollectProtocolFees) (*types.MsgCollectProtocolFeesResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CollectProtocolFees: validate: %w", err)
	}

	collected, err := ms.Keeper.CollectProtocolFees(goCtx, msg.PoolId)
	if err != nil {
		return nil, fmt.Errorf("CollectProtocolFees: %w", err)
	}

	out := make([]types.PoolAsset, 0, len(collected))
	for _, c := range collected {
		out = append(out, types.PoolAsset{Denom: c.Denom, Amount: c.Amount})
	}
	return &types.MsgCollectProtocolFeesResponse{Collected: out}, nil
}

// UpdateParams handles a governance parameter update
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("UpdateParams: validate: %w", err)
	}
	if msg.Authority != ms.Keeper.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf("expected %s, got %s", ms.Keeper.GetAuthority(), msg.Authority)
	}

	if err := ms.Keeper.SetParams(goCtx, msg.Params); err != nil {
		return nil, fmt.Errorf("UpdateParams: %w", err)
	}

	return &types.MsgUpdateParamsResponse{}, nil
}
