package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/lagoon-chain/lagoon/x/amm/types"
)

type queryServer struct {
	Keeper
}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 1000
)

// NewQueryServerImpl returns an implementation of the amm QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params returns the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	params, err := qs.Keeper.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Params: get params: %w", err)
	}

	return &types.QueryParamsResponse{
		Params: params,
	}, nil
}

// Pool returns a specific pool by ID
func (qs queryServer) Pool(goCtx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPool(goCtx, req.PoolId)
	if err != nil {
		return nil, fmt.Errorf("Pool: get pool %d: %w", req.PoolId, err)
	}

	return &types.QueryPoolResponse{
		Pool: pool,
	}, nil
}

// Pools returns all pools with pagination
func (qs queryServer) Pools(goCtx context.Context, req *types.QueryPoolsRequest) (*types.QueryPoolsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	// Enforce sane pagination defaults and caps to protect against unbounded queries.
	if req.Pagination == nil {
		req.Pagination = &query.PageRequest{Limit: defaultPaginationLimit}
	} else {
		if req.Pagination.Limit == 0 {
			req.Pagination.Limit = defaultPaginationLimit
		}
		if req.Pagination.Limit > maxPaginationLimit {
			req.Pagination.Limit = maxPaginationLimit
		}
	}

	// Charge gas proportional to requested limit to prevent abuse
	ctx.GasMeter().ConsumeGas(req.Pagination.Limit*100, "paginated pools query")

	pools := make([]types.Pool, 0, int(req.Pagination.Limit))
	store := qs.Keeper.getStore(goCtx)
	poolStore := prefix.NewStore(store, types.PoolKey)

	pageRes, err := query.Paginate(poolStore, req.Pagination, func(key []byte, value []byte) error {
		var pool types.Pool
		if err := json.Unmarshal(value, &pool); err != nil {
			return fmt.Errorf("unmarshal pool: %w", err)
		}
		pools = append(pools, pool)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Pools: paginate: %w", err)
	}

	return &types.QueryPoolsResponse{
		Pools:      pools,
		Pagination: pageRes,
	}, nil
}

// PoolByLpDenom returns the pool backing an LP share denom
func (qs queryServer) PoolByLpDenom(goCtx context.Context, req *types.QueryPoolByLpDenomRequest) (*types.QueryPoolByLpDenomResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPoolByLpDenom(goCtx, req.LpDenom)
	if err != nil {
		return nil, fmt.Errorf("PoolByLpDenom: get pool for %s: %w", req.LpDenom, err)
	}

	return &types.QueryPoolByLpDenomResponse{
		Pool: pool,
	}, nil
}

// Simulation simulates an exact-offer swap without executing it
func (qs queryServer) Simulation(goCtx context.Context, req *types.QuerySimulationRequest) (*types.QuerySimulationResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPool(goCtx, req.PoolId)
	if err != nil {
		return nil, fmt.Errorf("Simulation: get pool %d: %w", req.PoolId, err)
	}

	result, err := qs.Keeper.ComputeSwap(goCtx, pool, req.OfferDenom, req.AskDenom, req.OfferAmount)
	if err != nil {
		return nil, fmt.Errorf("Simulation: simulate for pool %d: %w", req.PoolId, err)
	}

	return &types.QuerySimulationResponse{
		Result: result,
	}, nil
}

// ReverseSimulation derives the offer amount needed for a desired
// post-fee return amount
func (qs queryServer) ReverseSimulation(goCtx context.Context, req *types.QueryReverseSimulationRequest) (*types.QueryReverseSimulationResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPool(goCtx, req.PoolId)
	if err != nil {
		return nil, fmt.Errorf("ReverseSimulation: get pool %d: %w", req.PoolId, err)
	}

	offerAmount, result, err := qs.Keeper.ComputeReverseSwap(goCtx, pool, req.OfferDenom, req.AskDenom, req.AskAmount)
	if err != nil {
		return nil, fmt.Errorf("ReverseSimulation: simulate for pool %d: %w", req.PoolId, err)
	}

	return &types.QueryReverseSimulationResponse{
		OfferAmount: offerAmount,
		Result:      result,
	}, nil
}
