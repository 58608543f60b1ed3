package keeper

import (
	"context"
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/lagoon-chain/lagoon/x/epochs/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the epochs QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// CurrentEpoch returns the current epoch record
func (qs queryServer) CurrentEpoch(goCtx context.Context, req *types.QueryCurrentEpochRequest) (*types.QueryCurrentEpochResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	epoch, err := qs.Keeper.GetCurrentEpoch(goCtx)
	if err != nil {
		return nil, fmt.Errorf("CurrentEpoch: %w", err)
	}

	return &types.QueryCurrentEpochResponse{Epoch: epoch}, nil
}

// EpochConfig returns the epoch configuration
func (qs queryServer) EpochConfig(goCtx context.Context, req *types.QueryEpochConfigRequest) (*types.QueryEpochConfigResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	params, err := qs.Keeper.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("EpochConfig: get params: %w", err)
	}

	return &types.QueryEpochConfigResponse{Params: params}, nil
}
