package keeper

import (
	"context"
	"fmt"

	"github.com/lagoon-chain/lagoon/x/epochs/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the epochs MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreateEpoch handles the permissionless epoch-rollover trigger
func (ms msgServer) CreateEpoch(goCtx context.Context, msg *types.MsgCreateEpoch) (*types.MsgCreateEpochResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreateEpoch: validate: %w", err)
	}

	epoch, err := ms.Keeper.CreateEpoch(goCtx, msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("CreateEpoch: %w", err)
	}

	return &types.MsgCreateEpochResponse{Epoch: epoch}, nil
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
