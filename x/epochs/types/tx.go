package types

import (
	"context"
)

// MsgServer defines the epochs module's Msg service.
type MsgServer interface {
	CreateEpoch(context.Context, *MsgCreateEpoch) (*MsgCreateEpochResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgCreateEpochResponse defines the response for CreateEpoch.
type MsgCreateEpochResponse struct {
	Epoch EpochInfo `json:"epoch"`
}

// MsgUpdateParamsResponse defines the response for UpdateParams.
type MsgUpdateParamsResponse struct{}
