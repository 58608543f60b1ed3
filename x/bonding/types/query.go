package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// QueryServer defines the bonding module's Query service.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Bonded(context.Context, *QueryBondedRequest) (*QueryBondedResponse, error)
	Claimable(context.Context, *QueryClaimableRequest) (*QueryClaimableResponse, error)
	GlobalIndex(context.Context, *QueryGlobalIndexRequest) (*QueryGlobalIndexResponse, error)
	RewardBuckets(context.Context, *QueryRewardBucketsRequest) (*QueryRewardBucketsResponse, error)
	ExpiringRewardBucket(context.Context, *QueryExpiringRewardBucketRequest) (*QueryExpiringRewardBucketResponse, error)
}

// QueryParamsRequest requests the module parameters.
type QueryParamsRequest struct{}

// QueryParamsResponse carries the module parameters.
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryBondedRequest requests one owner's bonds with weights
// recomputed at the current epoch.
type QueryBondedRequest struct {
	Owner string `json:"owner"`
}

// QueryBondedResponse carries the owner's bonds.
type QueryBondedResponse struct {
	Bonds []Bond `json:"bonds"`
}

// QueryClaimableRequest requests an owner's pending rewards without
// mutating anything.
type QueryClaimableRequest struct {
	Owner string `json:"owner"`
}

// QueryClaimableResponse carries the claimable buckets and the total
// the owner would receive from an execute-claim now.
type QueryClaimableResponse struct {
	Buckets []RewardBucket `json:"buckets"`
	Total   sdk.Coins      `json:"total"`
}

// QueryGlobalIndexRequest requests the global index, live or as frozen
// in a specific epoch's bucket.
type QueryGlobalIndexRequest struct {
	EpochId *uint64 `json:"epoch_id,omitempty"`
}

// QueryGlobalIndexResponse carries the global index.
type QueryGlobalIndexResponse struct {
	Index GlobalIndex `json:"index"`
}

// QueryRewardBucketsRequest requests every claimable reward bucket.
type QueryRewardBucketsRequest struct{}

// QueryRewardBucketsResponse carries the claimable reward buckets.
type QueryRewardBucketsResponse struct {
	Buckets []RewardBucket `json:"buckets"`
}

// QueryExpiringRewardBucketRequest requests the bucket that leaves the
// grace window on the next epoch rollover.
type QueryExpiringRewardBucketRequest struct{}

// QueryExpiringRewardBucketResponse carries the about-to-expire
// bucket, if any.
type QueryExpiringRewardBucketResponse struct {
	Bucket *RewardBucket `json:"bucket,omitempty"`
}
