package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/query"
)

// QueryServer defines the amm module's Query service.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	Pools(context.Context, *QueryPoolsRequest) (*QueryPoolsResponse, error)
	PoolByLpDenom(context.Context, *QueryPoolByLpDenomRequest) (*QueryPoolByLpDenomResponse, error)
	Simulation(context.Context, *QuerySimulationRequest) (*QuerySimulationResponse, error)
	ReverseSimulation(context.Context, *QueryReverseSimulationRequest) (*QueryReverseSimulationResponse, error)
}

// QueryParamsRequest requests the module parameters.
type QueryParamsRequest struct{}

// QueryParamsResponse carries the module parameters.
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryPoolRequest requests a single pool by id.
type QueryPoolRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryPoolResponse carries one pool.
type QueryPoolResponse struct {
	Pool Pool `json:"pool"`
}

// QueryPoolsRequest requests all pools with pagination.
type QueryPoolsRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

// QueryPoolsResponse carries a page of pools.
type QueryPoolsResponse struct {
	Pools      []Pool              `json:"pools"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// QueryPoolByLpDenomRequest requests the pool backing an LP share denom.
type QueryPoolByLpDenomRequest struct {
	LpDenom string `json:"lp_denom"`
}

// QueryPoolByLpDenomResponse carries the pool backing an LP share denom.
type QueryPoolByLpDenomResponse struct {
	Pool Pool `json:"pool"`
}

// QuerySimulationRequest simulates an exact-offer swap without
// executing it.
type QuerySimulationRequest struct {
	PoolId      uint64      `json:"pool_id"`
	OfferDenom  string      `json:"offer_denom"`
	AskDenom    string      `json:"ask_denom"`
	OfferAmount sdkmath.Int `json:"offer_amount"`
}

// QuerySimulationResponse carries the simulated swap result.
type QuerySimulationResponse struct {
	Result SwapResult `json:"result"`
}

// QueryReverseSimulationRequest asks what offer amount is needed for a
// desired post-fee return amount.
type QueryReverseSimulationRequest struct {
	PoolId     uint64      `json:"pool_id"`
	OfferDenom string      `json:"offer_denom"`
	AskDenom   string      `json:"ask_denom"`
	AskAmount  sdkmath.Int `json:"ask_amount"`
}

// QueryReverseSimulationResponse carries the derived offer amount and
// the swap result it would settle to.
type QueryReverseSimulationResponse struct {
	OfferAmount sdkmath.Int `json:"offer_amount"`
	Result      SwapResult  `json:"result"`
}
