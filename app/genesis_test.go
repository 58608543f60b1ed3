package app_test

import (
	"encoding/json"
	"testing"
	"time"

	"cosmossdk.io/math"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
	"github.com/stretchr/testify/require"

	"github.com/lagoon-chain/lagoon/app"
	ammtypes "github.com/lagoon-chain/lagoon/x/amm/types"
	bondingtypes "github.com/lagoon-chain/lagoon/x/bonding/types"
	epochstypes "github.com/lagoon-chain/lagoon/x/epochs/types"
)

func TestDefaultGenesisConfig(t *testing.T) {
	cfg := app.DefaultGenesisConfig()

	require.Equal(t, "lagoon-1", cfg.ChainID)
	require.Equal(t, []string{app.BondDenom}, cfg.BondDenoms)
	require.Equal(t, bondingtypes.DefaultGracePeriod, cfg.GracePeriod)
	require.Equal(t, int64(86400), cfg.EpochDurationSeconds)
}

func TestNewGenesisStateFromConfig(t *testing.T) {
	cdc := app.MakeEncodingConfig().Codec
	cfg := app.DefaultGenesisConfig()

	genesis := app.NewGenesisStateFromConfig(cdc, cfg)

	var stakingGenesis stakingtypes.GenesisState
	cdc.MustUnmarshalJSON(genesis[stakingtypes.ModuleName], &stakingGenesis)
	require.Equal(t, app.BondDenom, stakingGenesis.Params.BondDenom)
	require.Equal(t, cfg.MaxValidators, stakingGenesis.Params.MaxValidators)
	require.Equal(t, time.Duration(cfg.UnbondingPeriodSeconds)*time.Second, stakingGenesis.Params.UnbondingTime)

	var mintGenesis minttypes.GenesisState
	cdc.MustUnmarshalJSON(genesis[minttypes.ModuleName], &mintGenesis)
	require.True(t, mintGenesis.Params.InflationMax.IsZero())
	require.True(t, mintGenesis.Minter.Inflation.IsZero())

	var epochsGenesis epochstypes.GenesisState
	require.NoError(t, json.Unmarshal(genesis[epochstypes.ModuleName], &epochsGenesis))
	require.Equal(t, 24*time.Hour, epochsGenesis.Params.EpochDuration)

	var bondingGenesis bondingtypes.GenesisState
	require.NoError(t, json.Unmarshal(genesis[bondingtypes.ModuleName], &bondingGenesis))
	require.Equal(t, []string{app.BondDenom}, bondingGenesis.Params.BondDenoms)
	require.True(t, bondingGenesis.Params.GrowthRate.Equal(math.LegacyOneDec()))
	require.Equal(t, cfg.GracePeriod, bondingGenesis.Params.GracePeriod)
}

func TestGetMaccPermsReturnsCopy(t *testing.T) {
	perms := app.GetMaccPerms()
	require.Equal(t, []string{authtypes.Minter, authtypes.Burner}, perms[ammtypes.ModuleName])

	perms[ammtypes.ModuleName] = nil
	require.Equal(t, []string{authtypes.Minter, authtypes.Burner}, app.GetMaccPerms()[ammtypes.ModuleName])
}

func TestBlockedModuleAccountAddrs(t *testing.T) {
	blocked := app.BlockedModuleAccountAddrs()

	// Users deposit reward funding into the bonding module account directly.
	require.False(t, blocked[authtypes.NewModuleAddress(bondingtypes.ModuleName).String()])
	require.True(t, blocked[authtypes.NewModuleAddress(minttypes.ModuleName).String()])
	require.True(t, blocked[authtypes.NewModuleAddress(ammtypes.ModuleName).String()])
}
