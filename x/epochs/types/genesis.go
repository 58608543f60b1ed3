package types

import (
	"time"
)

// GenesisState holds the epochs module's genesis state.
type GenesisState struct {
	Params       Params    `json:"params"`
	CurrentEpoch EpochInfo `json:"current_epoch"`
}

// DefaultGenesis returns the default genesis state: epoch zero,
// starting at the genesis block time (filled in by InitGenesis when
// left zero here).
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:       DefaultParams(),
		CurrentEpoch: EpochInfo{Id: 0, StartTime: time.Time{}},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	return gs.Params.Validate()
}
