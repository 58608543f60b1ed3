package app

import (
	"encoding/json"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	crisistypes "github.com/cosmos/cosmos-sdk/x/crisis/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	govv1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"
	slashingtypes "github.com/cosmos/cosmos-sdk/x/slashing/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	bondingtypes "github.com/lagoon-chain/lagoon/x/bonding/types"
	epochstypes "github.com/lagoon-chain/lagoon/x/epochs/types"
)

// GenesisState maps module names to their raw genesis documents.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState collects the default genesis of every wired module.
func NewDefaultGenesisState(cdc codec.JSONCodec) GenesisState {
	return ModuleBasics.DefaultGenesis(cdc)
}

// GenesisConfig holds the network parameters a lagoon genesis is built from.
type GenesisConfig struct {
	ChainID                     string
	TotalSupply                 int64
	MaxValidators               uint32
	UnbondingPeriodSeconds      int64
	DoubleSignPenalty           string
	DowntimePenalty             string
	DowntimeWindowBlocks        uint64
	DowntimeJailDurationSeconds int64
	MinDepositAmount            int64
	VotingPeriodSeconds         int64
	Quorum                      string
	Threshold                   string
	VetoThreshold               string

	// Lagoon module parameters.
	EpochDurationSeconds int64
	BondDenoms           []string
	GrowthRate           string
	GracePeriod          uint64
}

// DefaultGenesisConfig returns the lagoon mainnet launch parameters.
func DefaultGenesisConfig() GenesisConfig {
	return GenesisConfig{
		ChainID:                     "lagoon-1",
		TotalSupply:                 100000000000000, // 100M LGN
		MaxValidators:               100,
		UnbondingPeriodSeconds:      1814400, // 21 days
		DoubleSignPenalty:           "0.05",  // 5%
		DowntimePenalty:             "0.001", // 0.1%
		DowntimeWindowBlocks:        10000,
		DowntimeJailDurationSeconds: 86400,                  // 24 hours
		MinDepositAmount:            10000000000,            // 10,000 LGN
		VotingPeriodSeconds:         604800,                 // 7 days
		Quorum:                      "0.400000000000000000", // 40%
		Threshold:                   "0.667000000000000000", // 66.7%
		VetoThreshold:               "0.333000000000000000", // 33.3%

		EpochDurationSeconds: 86400, // daily reward epochs
		BondDenoms:           []string{BondDenom},
		GrowthRate:           "1.0",
		GracePeriod:          bondingtypes.DefaultGracePeriod,
	}
}

// NewGenesisStateFromConfig builds a genesis state from module defaults and
// applies the config's network parameters on top.
func NewGenesisStateFromConfig(cdc codec.JSONCodec, config GenesisConfig) GenesisState {
	genesis := NewDefaultGenesisState(cdc)

	// Staking
	var stakingGenesis stakingtypes.GenesisState
	cdc.MustUnmarshalJSON(genesis[stakingtypes.ModuleName], &stakingGenesis)
	stakingGenesis.Params.BondDenom = BondDenom
	stakingGenesis.Params.MaxValidators = config.MaxValidators
	stakingGenesis.Params.UnbondingTime = time.Duration(config.UnbondingPeriodSeconds) * time.Second
	stakingGenesis.Params.MinCommissionRate = math.LegacyMustNewDecFromStr("0.05")
	genesis[stakingtypes.ModuleName] = cdc.MustMarshalJSON(&stakingGenesis)

	// Slashing
	var slashingGenesis slashingtypes.GenesisState
	cdc.MustUnmarshalJSON(genesis[slashingtypes.ModuleName], &slashingGenesis)
	slashingGenesis.Params.SignedBlocksWindow = int64(config.DowntimeWindowBlocks)
	slashingGenesis.Params.MinSignedPerWindow = math.LegacyMustNewDecFromStr("0.50")
	slashingGenesis.Params.DowntimeJailDuration = time.Duration(config.DowntimeJailDurationSeconds) * time.Second
	slashingGenesis.Params.SlashFractionDoubleSign = math.LegacyMustNewDecFromStr(config.DoubleSignPenalty)
	slashingGenesis.Params.SlashFractionDowntime = math.LegacyMustNewDecFromStr(config.DowntimePenalty)
	genesis[slashingtypes.ModuleName] = cdc.MustMarshalJSON(&slashingGenesis)

	// Governance
	var govGenesis govv1.GenesisState
	cdc.MustUnmarshalJSON(genesis[govtypes.ModuleName], &govGenesis)
	govGenesis.Params.MinDeposit = sdk.NewCoins(sdk.NewInt64Coin(BondDenom, config.MinDepositAmount))
	govGenesis.Params.VotingPeriod = durationPtr(time.Duration(config.VotingPeriodSeconds) * time.Second)
	govGenesis.Params.Quorum = config.Quorum
	govGenesis.Params.Threshold = config.Threshold
	govGenesis.Params.VetoThreshold = config.VetoThreshold
	genesis[govtypes.ModuleName] = cdc.MustMarshalJSON(&govGenesis)

	// Bank supply
	var bankGenesis banktypes.GenesisState
	cdc.MustUnmarshalJSON(genesis[banktypes.ModuleName], &bankGenesis)
	bankGenesis.Supply = sdk.NewCoins(sdk.NewInt64Coin(BondDenom, config.TotalSupply))
	genesis[banktypes.ModuleName] = cdc.MustMarshalJSON(&bankGenesis)

	// Mint: fixed supply, no inflation
	var mintGenesis minttypes.GenesisState
	cdc.MustUnmarshalJSON(genesis[minttypes.ModuleName], &mintGenesis)
	mintGenesis.Params.MintDenom = BondDenom
	mintGenesis.Params.InflationRateChange = math.LegacyZeroDec()
	mintGenesis.Params.InflationMax = math.LegacyZeroDec()
	mintGenesis.Params.InflationMin = math.LegacyZeroDec()
	mintGenesis.Minter.Inflation = math.LegacyZeroDec()
	mintGenesis.Minter.AnnualProvisions = math.LegacyZeroDec()
	genesis[minttypes.ModuleName] = cdc.MustMarshalJSON(&mintGenesis)

	// Crisis
	var crisisGenesis crisistypes.GenesisState
	cdc.MustUnmarshalJSON(genesis[crisistypes.ModuleName], &crisisGenesis)
	crisisGenesis.ConstantFee = sdk.NewInt64Coin(BondDenom, 1000000000)
	genesis[crisistypes.ModuleName] = cdc.MustMarshalJSON(&crisisGenesis)

	// Epochs: the reward cadence the bonding module accrues against.
	// Epochs and bonding genesis records are plain JSON, not proto.
	var epochsGenesis epochstypes.GenesisState
	mustUnmarshalJSON(genesis[epochstypes.ModuleName], &epochsGenesis)
	epochsGenesis.Params.EpochDuration = time.Duration(config.EpochDurationSeconds) * time.Second
	genesis[epochstypes.ModuleName] = mustMarshalJSON(&epochsGenesis)

	// Bonding
	var bondingGenesis bondingtypes.GenesisState
	mustUnmarshalJSON(genesis[bondingtypes.ModuleName], &bondingGenesis)
	bondingGenesis.Params.BondDenoms = config.BondDenoms
	bondingGenesis.Params.GrowthRate = math.LegacyMustNewDecFromStr(config.GrowthRate)
	bondingGenesis.Params.GracePeriod = config.GracePeriod
	genesis[bondingtypes.ModuleName] = mustMarshalJSON(&bondingGenesis)

	return genesis
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}

func mustUnmarshalJSON(bz []byte, v interface{}) {
	if err := json.Unmarshal(bz, v); err != nil {
		panic(err)
	}
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}
