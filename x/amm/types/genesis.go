package types

// GenesisState holds the amm module's genesis state.
type GenesisState struct {
	Params     Params `json:"params"`
	Pools      []Pool `json:"pools"`
	NextPoolId uint64 `json:"next_pool_id"`
}

// DefaultGenesis returns the default genesis state for the amm module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Pools:      []Pool{},
		NextPoolId: 1,
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	seen := make(map[uint64]struct{}, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return err
		}
		if _, ok := seen[pool.Id]; ok {
			return ErrPoolAlreadyExists.Wrapf("duplicate pool id %d", pool.Id)
		}
		seen[pool.Id] = struct{}{}
		if pool.Id >= gs.NextPoolId {
			return ErrInvalidPoolId.Wrapf("pool id %d not below next pool id %d", pool.Id, gs.NextPoolId)
		}
	}
	return nil
}
