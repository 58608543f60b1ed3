package types

import (
	"context"
)

// QueryServer defines the epochs module's Query service.
type QueryServer interface {
	CurrentEpoch(context.Context, *QueryCurrentEpochRequest) (*QueryCurrentEpochResponse, error)
	EpochConfig(context.Context, *QueryEpochConfigRequest) (*QueryEpochConfigResponse, error)
}

// QueryCurrentEpochRequest requests the current epoch record.
type QueryCurrentEpochRequest struct{}

// QueryCurrentEpochResponse carries the current epoch record.
type QueryCurrentEpochResponse struct {
	Epoch EpochInfo `json:"epoch"`
}

// QueryEpochConfigRequest requests the epoch configuration.
type QueryEpochConfigRequest struct{}

// QueryEpochConfigResponse carries the epoch configuration.
type QueryEpochConfigResponse struct {
	Params Params `json:"params"`
}
