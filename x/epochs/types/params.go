package types

import (
	"time"
)

// DefaultEpochDuration is one day.
const DefaultEpochDuration = 24 * time.Hour

// Params holds the epochs module parameters.
type Params struct {
	EpochDuration time.Duration `json:"epoch_duration"`
}

// DefaultParams returns the default epochs parameters.
func DefaultParams() Params {
	return Params{
		EpochDuration: DefaultEpochDuration,
	}
}

// Validate checks the parameter set.
func (p Params) Validate() error {
	if p.EpochDuration <= 0 {
		return ErrInvalidDuration.Wrapf("epoch duration %s must be positive", p.EpochDuration)
	}
	return nil
}
