package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/cosmos-sdk/server"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	genutiltypes "github.com/cosmos/cosmos-sdk/x/genutil/types"
	slashingtypes "github.com/cosmos/cosmos-sdk/x/slashing/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	tmtypes "github.com/cometbft/cometbft/types"
)

// collectedGenTx pairs a decoded gentx with its create-validator message and
// the CometBFT validator it maps to.
type collectedGenTx struct {
	tx        sdk.Tx
	msg       *stakingtypes.MsgCreateValidator
	validator tmtypes.GenesisValidator
	fileName  string
}

// CollectGenTxsCmd returns a command to collect genesis transactions.
func CollectGenTxsCmd(mbm module.BasicManager, defaultNodeHome string, genBalIterator genutiltypes.GenesisBalancesIterator, validator genutiltypes.MessageValidator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect-gentxs",
		Short: "Collect genesis txs and output a genesis.json file",
		Long: `Collect genesis transactions from the configured gentx directory and
update the genesis file with the collected transactions.

Example:
  lagoond collect-gentxs --home ~/.lagoon
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverCtx := server.GetServerContextFromCmd(cmd)
			clientCtx := client.GetClientContextFromCmd(cmd)

			config := serverCtx.Config
			config.SetRoot(clientCtx.HomeDir)
			genFile := config.GenesisFile()

			// Earlier tooling may have written numeric fields as bare
			// numbers; rewrite to canonical encoding before parsing.
			if err := canonicalizeGenesisFile(genFile); err != nil {
				return fmt.Errorf("failed to normalize genesis: %w", err)
			}

			genDoc, err := tmtypes.GenesisDocFromFile(genFile)
			if err != nil {
				return fmt.Errorf("failed to read genesis doc from file %s: %w", genFile, err)
			}

			var genesisState map[string]json.RawMessage
			if err = json.Unmarshal(genDoc.AppState, &genesisState); err != nil {
				return fmt.Errorf("failed to unmarshal genesis state: %w", err)
			}

			gentxDir := filepath.Join(config.RootDir, "config", "gentx")
			collected, err := loadGenTxs(clientCtx, gentxDir)
			if err != nil {
				return err
			}
			if collected == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No gentx directory found at %s; leaving genesis unchanged.\n", gentxDir)
				return nil
			}
			if len(collected) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No gentx files found in %s; leaving genesis unchanged.\n", gentxDir)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Collecting genesis transactions...\n")
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d gentx files\n", len(collected))
			for _, c := range collected {
				fmt.Fprintf(cmd.OutOrStdout(), "  ✓ Collected gentx from %s\n", c.fileName)
			}

			if err := applyGenTxsToState(clientCtx, genesisState, collected); err != nil {
				return err
			}

			if err = mbm.ValidateGenesis(clientCtx.Codec, clientCtx.TxConfig, genesisState); err != nil {
				return fmt.Errorf("failed to validate genesis state: %w", err)
			}

			appStateJSON, err := json.MarshalIndent(genesisState, "", " ")
			if err != nil {
				return fmt.Errorf("failed to marshal genesis state: %w", err)
			}

			genDoc.AppState = appStateJSON
			genDoc.Validators = make([]tmtypes.GenesisValidator, 0, len(collected))
			for _, c := range collected {
				genDoc.Validators = append(genDoc.Validators, c.validator)
			}

			if err = genDoc.ValidateAndComplete(); err != nil {
				return fmt.Errorf("failed to validate genesis doc: %w", err)
			}
			if err = genDoc.SaveAs(genFile); err != nil {
				return fmt.Errorf("failed to save genesis file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nSuccessfully collected %d genesis transactions\n", len(collected))
			fmt.Fprintf(cmd.OutOrStdout(), "Genesis file updated: %s\n", genFile)
			fmt.Fprintf(cmd.OutOrStdout(), "\nValidators:\n")
			for i, c := range collected {
				fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s (%s)\n", i+1, c.msg.Description.Moniker, c.msg.ValidatorAddress)
			}

			return nil
		},
	}

	cmd.Flags().String(flags.FlagHome, defaultNodeHome, "The application home directory")
	flags.AddQueryFlagsToCmd(cmd)

	return cmd
}

// loadGenTxs reads and decodes every gentx JSON file in dir, rejecting
// malformed transactions and duplicate validators. A nil slice with nil error
// means the directory does not exist.
func loadGenTxs(clientCtx client.Context, dir string) ([]collectedGenTx, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read gentx directory: %w", err)
	}

	collected := make([]collectedGenTx, 0, len(entries))
	seen := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		bz, err := os.ReadFile(path) // #nosec G304 - gentx files are operator supplied
		if err != nil {
			return nil, fmt.Errorf("failed to read gentx file %s: %w", path, err)
		}

		tx, err := clientCtx.TxConfig.TxJSONDecoder()(bz)
		if err != nil {
			return nil, fmt.Errorf("failed to decode gentx %s: %w", path, err)
		}

		msgs := tx.GetMsgs()
		if len(msgs) != 1 {
			return nil, fmt.Errorf("gentx must contain exactly one message, got %d", len(msgs))
		}
		msg, ok := msgs[0].(*stakingtypes.MsgCreateValidator)
		if !ok {
			return nil, fmt.Errorf("gentx message must be MsgCreateValidator")
		}
		if msg.ValidatorAddress == "" {
			return nil, fmt.Errorf("invalid gentx: validator address is required")
		}
		if msg.Pubkey == nil {
			return nil, fmt.Errorf("invalid gentx: pubkey is required")
		}

		if _, dup := seen[msg.ValidatorAddress]; dup {
			return nil, fmt.Errorf("duplicate gentx for validator %s", msg.ValidatorAddress)
		}
		seen[msg.ValidatorAddress] = struct{}{}

		genesisVal, err := msgCreateValidatorToGenesisValidator(clientCtx.InterfaceRegistry, msg)
		if err != nil {
			return nil, err
		}

		collected = append(collected, collectedGenTx{
			tx:        tx,
			msg:       msg,
			validator: genesisVal,
			fileName:  entry.Name(),
		})
	}

	return collected, nil
}

// applyGenTxsToState folds the collected create-validator messages into the
// bank, staking, slashing, and genutil genesis documents: self-delegations
// move into the bonded pool, validators appear pre-bonded with their signing
// info initialized, and no gentxs are left for DeliverGenTxs to replay.
func applyGenTxsToState(clientCtx client.Context, genesisState map[string]json.RawMessage, collected []collectedGenTx) error {
	genUtilGenesis := genutiltypes.GetGenesisStateFromAppState(clientCtx.Codec, genesisState)
	bankGenesis := banktypes.GetGenesisStateFromAppState(clientCtx.Codec, genesisState)
	stakingGenesis := stakingtypes.GetGenesisStateFromAppState(clientCtx.Codec, genesisState)

	var slashingGenesis slashingtypes.GenesisState
	if genesisState[slashingtypes.ModuleName] != nil {
		clientCtx.Codec.MustUnmarshalJSON(genesisState[slashingtypes.ModuleName], &slashingGenesis)
	} else {
		slashingGenesis = *slashingtypes.DefaultGenesisState()
	}

	bondedPoolAddress := authtypes.NewModuleAddress(stakingtypes.BondedPoolName).String()
	bondedPoolBalance := ensureBalance(&bankGenesis.Balances, bondedPoolAddress)

	stakingGenesis.Validators = make([]stakingtypes.Validator, 0, len(collected))
	stakingGenesis.Delegations = make([]stakingtypes.Delegation, 0, len(collected))
	stakingGenesis.LastValidatorPowers = make([]stakingtypes.LastValidatorPower, 0, len(collected))

	lastTotalPower := math.NewInt(0)
	bondDenom := stakingGenesis.Params.BondDenom

	for idx, c := range collected {
		msg := c.msg
		if msg.Value.Denom != bondDenom {
			return fmt.Errorf("gentx %d uses %s but bond denom is %s", idx+1, msg.Value.Denom, bondDenom)
		}

		delegatorAddr := msg.DelegatorAddress
		if delegatorAddr == "" {
			valAddr, err := sdk.ValAddressFromBech32(msg.ValidatorAddress)
			if err != nil {
				return fmt.Errorf("invalid validator address %s: %w", msg.ValidatorAddress, err)
			}
			delegatorAddr = sdk.AccAddress(valAddr).String()
		}

		delegatorBalance := findBalance(bankGenesis.Balances, delegatorAddr)
		if delegatorBalance == nil {
			return fmt.Errorf("delegator %s has no balance entry in genesis", delegatorAddr)
		}
		if delegatorBalance.Coins.AmountOf(msg.Value.Denom).LT(msg.Value.Amount) {
			return fmt.Errorf("delegator %s insufficient balance for self-delegation", delegatorAddr)
		}

		delegatorBalance.Coins = delegatorBalance.Coins.Sub(msg.Value)
		bondedPoolBalance.Coins = bondedPoolBalance.Coins.Add(msg.Value)

		shares := math.LegacyNewDecFromInt(msg.Value.Amount)
		stakingGenesis.Validators = append(stakingGenesis.Validators, stakingtypes.Validator{
			OperatorAddress:         msg.ValidatorAddress,
			ConsensusPubkey:         msg.Pubkey,
			Jailed:                  false,
			Status:                  stakingtypes.Bonded,
			Tokens:                  msg.Value.Amount,
			DelegatorShares:         shares,
			Description:             msg.Description,
			UnbondingHeight:         0,
			UnbondingTime:           time.Unix(0, 0).UTC(),
			Commission:              stakingtypes.Commission{CommissionRates: msg.Commission, UpdateTime: time.Unix(0, 0).UTC()},
			MinSelfDelegation:       msg.MinSelfDelegation,
			UnbondingOnHoldRefCount: 0,
		})
		stakingGenesis.Delegations = append(stakingGenesis.Delegations, stakingtypes.Delegation{
			DelegatorAddress: delegatorAddr,
			ValidatorAddress: msg.ValidatorAddress,
			Shares:           shares,
		})

		power := sdk.TokensToConsensusPower(msg.Value.Amount, sdk.DefaultPowerReduction)
		stakingGenesis.LastValidatorPowers = append(stakingGenesis.LastValidatorPowers, stakingtypes.LastValidatorPower{
			Address: msg.ValidatorAddress,
			Power:   power,
		})
		lastTotalPower = lastTotalPower.Add(math.NewInt(power))

		// Slashing needs a signing-info record per validator to track
		// uptime from the first block.
		var pubKey cryptotypes.PubKey
		if err := clientCtx.InterfaceRegistry.UnpackAny(msg.Pubkey, &pubKey); err != nil {
			return fmt.Errorf("failed to unpack validator pubkey for slashing info: %w", err)
		}
		consAddr := sdk.ConsAddress(pubKey.Address())
		slashingGenesis.SigningInfos = append(slashingGenesis.SigningInfos, slashingtypes.SigningInfo{
			Address: consAddr.String(),
			ValidatorSigningInfo: slashingtypes.NewValidatorSigningInfo(
				consAddr,
				0,                     // start height, set at first block
				0,                     // index offset
				time.Unix(0, 0).UTC(), // jailed until
				false,                 // tombstoned
				0,                     // missed blocks counter
			),
		})
	}

	stakingGenesis.LastTotalPower = lastTotalPower
	genUtilGenesis.GenTxs = []json.RawMessage{}

	genesisState[banktypes.ModuleName] = clientCtx.Codec.MustMarshalJSON(bankGenesis)
	genesisState[stakingtypes.ModuleName] = clientCtx.Codec.MustMarshalJSON(stakingGenesis)
	genesisState[slashingtypes.ModuleName] = clientCtx.Codec.MustMarshalJSON(&slashingGenesis)
	genesisState[genutiltypes.ModuleName] = clientCtx.Codec.MustMarshalJSON(genUtilGenesis)

	return nil
}

func msgCreateValidatorToGenesisValidator(registry codectypes.InterfaceRegistry, msg *stakingtypes.MsgCreateValidator) (tmtypes.GenesisValidator, error) {
	if msg == nil {
		return tmtypes.GenesisValidator{}, fmt.Errorf("msg create validator cannot be nil")
	}

	var pubKey cryptotypes.PubKey
	if err := registry.UnpackAny(msg.Pubkey, &pubKey); err != nil {
		return tmtypes.GenesisValidator{}, fmt.Errorf("failed to unpack validator pubkey: %w", err)
	}

	consensusPubKey, err := cryptocodec.ToCmtPubKeyInterface(pubKey)
	if err != nil {
		return tmtypes.GenesisValidator{}, fmt.Errorf("failed to convert validator pubkey: %w", err)
	}

	power := sdk.TokensToConsensusPower(msg.Value.Amount, sdk.DefaultPowerReduction)
	if power <= 0 {
		return tmtypes.GenesisValidator{}, fmt.Errorf("validator %s has zero consensus power", msg.ValidatorAddress)
	}

	return tmtypes.GenesisValidator{
		Address: consensusPubKey.Address(),
		PubKey:  consensusPubKey,
		Power:   power,
		Name:    msg.Description.Moniker,
	}, nil
}

func findBalance(balances []banktypes.Balance, address string) *banktypes.Balance {
	for i := range balances {
		if balances[i].Address == address {
			return &balances[i]
		}
	}
	return nil
}

func ensureBalance(balances *[]banktypes.Balance, address string) *banktypes.Balance {
	if existing := findBalance(*balances, address); existing != nil {
		return existing
	}

	*balances = append(*balances, banktypes.Balance{
		Address: address,
		Coins:   sdk.NewCoins(),
	})
	return &(*balances)[len(*balances)-1]
}
