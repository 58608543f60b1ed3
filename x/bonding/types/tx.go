package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgServer defines the bonding module's Msg service.
type MsgServer interface {
	Bond(context.Context, *MsgBond) (*MsgBondResponse, error)
	Unbond(context.Context, *MsgUnbond) (*MsgUnbondResponse, error)
	Claim(context.Context, *MsgClaim) (*MsgClaimResponse, error)
	FillRewards(context.Context, *MsgFillRewards) (*MsgFillRewardsResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgBondResponse defines the response for Bond.
type MsgBondResponse struct {
	Weight sdkmath.Int `json:"weight"`
}

// MsgUnbondResponse defines the response for Unbond.
type MsgUnbondResponse struct {
	Remaining sdk.Coin `json:"remaining"`
}

// MsgClaimResponse defines the response for Claim.
type MsgClaimResponse struct {
	Claimed sdk.Coins `json:"claimed"`
}

// MsgFillRewardsResponse defines the response for FillRewards.
type MsgFillRewardsResponse struct{}

// MsgUpdateParamsResponse defines the response for UpdateParams.
type MsgUpdateParamsResponse struct{}
