package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	cmtcfg "github.com/cometbft/cometbft/config"
	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	cmtos "github.com/cometbft/cometbft/libs/os"
	tmtypes "github.com/cometbft/cometbft/types"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/server"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/cosmos/cosmos-sdk/x/genutil"
	"github.com/spf13/cobra"

	"github.com/lagoon-chain/lagoon/app"
)

const (
	flagOverwrite    = "overwrite"
	flagRecover      = "recover"
	flagDefaultDenom = "default-denom"
)

// Consensus parameter overrides applied to every freshly initialized chain.
const (
	genesisMaxBlockBytes    int64 = 2_097_152   // 2 MB
	genesisMaxBlockGas      int64 = 100_000_000 // 100M gas
	genesisEvidenceBlocks         = 500_000     // ~23 days @ 4s blocks
	genesisEvidenceMaxBytes int64 = 1_048_576   // 1 MB
)

// InitCmd returns a command that initializes all files needed for CometBFT
// and the application.
func InitCmd(mbm module.BasicManager, defaultNodeHome string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [moniker]",
		Short: "Initialize private validator, p2p, genesis, and application configuration files",
		Long: `Initialize validators's and node's configuration files.

Example:
  lagoond init lagoon-node --chain-id lagoon-testnet-1 --home ~/.lagoon
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx := client.GetClientContextFromCmd(cmd)
			cdc := clientCtx.Codec

			serverCtx := server.GetServerContextFromCmd(cmd)
			config := serverCtx.Config
			config.SetRoot(clientCtx.HomeDir)

			chainID, _ := cmd.Flags().GetString(flags.FlagChainID)
			if chainID == "" {
				chainID = fmt.Sprintf("test-chain-%v", time.Now().Unix())
			}

			defaultDenom, _ := cmd.Flags().GetString(flagDefaultDenom)
			if defaultDenom == "" {
				defaultDenom = app.BondDenom
			}
			if err := sdk.ValidateDenom(defaultDenom); err != nil {
				return fmt.Errorf("invalid default denom: %w", err)
			}

			nodeID, _, err := genutil.InitializeNodeValidatorFiles(config)
			if err != nil {
				return err
			}

			config.Moniker = args[0]

			genFile := config.GenesisFile()
			if overwrite, _ := cmd.Flags().GetBool(flagOverwrite); !overwrite && fileExists(genFile) {
				return fmt.Errorf("genesis.json file already exists: %v", genFile)
			}

			appState, err := json.MarshalIndent(mbm.DefaultGenesis(cdc), "", " ")
			if err != nil {
				return fmt.Errorf("failed to marshal default genesis state: %w", err)
			}

			genDoc := newGenesisDoc(chainID, appState)
			if err := genDoc.ValidateAndComplete(); err != nil {
				return fmt.Errorf("failed to validate genesis doc: %w", err)
			}

			if err := writeGenesisFile(genFile, genDoc); err != nil {
				return err
			}
			if err := canonicalizeGenesisFile(genFile); err != nil {
				return fmt.Errorf("failed to canonicalize final genesis: %w", err)
			}

			dataDir := filepath.Join(clientCtx.HomeDir, "data")
			if err := os.MkdirAll(dataDir, 0o750); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}

			tuneNodeConfig(config)

			// config.toml and app.toml are materialized by the start command;
			// init only guarantees the genesis and key material.

			configDir := filepath.Dir(genFile)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Successfully initialized chain configuration\n")
			fmt.Fprintf(out, "Chain ID: %s\n", chainID)
			fmt.Fprintf(out, "Moniker: %s\n", config.Moniker)
			fmt.Fprintf(out, "Node ID: %s\n", nodeID)
			fmt.Fprintf(out, "Staking denom: %s\n", defaultDenom)
			fmt.Fprintf(out, "Home directory: %s\n", clientCtx.HomeDir)
			fmt.Fprintf(out, "\nGenesis file: %s\n", genFile)
			fmt.Fprintf(out, "Config file: %s\n", filepath.Join(configDir, "config.toml"))
			fmt.Fprintf(out, "App config: %s\n", filepath.Join(configDir, "app.toml"))

			return nil
		},
	}

	cmd.Flags().String(flags.FlagChainID, "", "genesis file chain-id, if left blank will be randomly created")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite the genesis.json file")
	cmd.Flags().Bool(flagRecover, false, "provide seed phrase to recover existing key instead of creating")
	cmd.Flags().String(flagDefaultDenom, app.BondDenom, "default denomination for the chain")
	cmd.Flags().String(flags.FlagHome, defaultNodeHome, "node's home directory")

	return cmd
}

// newGenesisDoc builds the genesis document with the chain's consensus
// parameter overrides applied.
func newGenesisDoc(chainID string, appState json.RawMessage) *tmtypes.GenesisDoc {
	params := tmtypes.DefaultConsensusParams()
	params.Block.MaxBytes = genesisMaxBlockBytes
	params.Block.MaxGas = genesisMaxBlockGas
	params.Evidence.MaxAgeNumBlocks = genesisEvidenceBlocks
	params.Evidence.MaxAgeDuration = 21 * 24 * time.Hour
	params.Evidence.MaxBytes = genesisEvidenceMaxBytes

	return &tmtypes.GenesisDoc{
		ChainID:         chainID,
		GenesisTime:     time.Now().UTC(),
		ConsensusParams: params,
		AppState:        appState,
	}
}

// tuneNodeConfig applies the chain's CometBFT tuning: 4s blocks, bounded
// mempool, state sync on.
func tuneNodeConfig(config *cmtcfg.Config) {
	config.Consensus.TimeoutPropose = 3 * time.Second
	config.Consensus.TimeoutProposeDelta = 500 * time.Millisecond
	config.Consensus.TimeoutPrevote = time.Second
	config.Consensus.TimeoutPrevoteDelta = 500 * time.Millisecond
	config.Consensus.TimeoutPrecommit = time.Second
	config.Consensus.TimeoutPrecommitDelta = 500 * time.Millisecond
	config.Consensus.TimeoutCommit = 4 * time.Second

	config.P2P.MaxNumInboundPeers = 40
	config.P2P.MaxNumOutboundPeers = 10
	config.P2P.SendRate = 5_120_000 // 5 MB/s
	config.P2P.RecvRate = 5_120_000 // 5 MB/s

	config.Mempool.Size = 10_000
	config.Mempool.MaxTxsBytes = 10_485_760 // 10 MB
	config.Mempool.CacheSize = 100_000

	config.StateSync.Enable = true
	config.StateSync.TrustPeriod = 7 * 24 * time.Hour
}

// writeGenesisFile serializes genDoc in CometBFT's canonical JSON shape:
// int64-like fields as decimal strings and a non-null app_hash. The output
// is validated by decoding it back before it hits disk.
func writeGenesisFile(path string, genDoc *tmtypes.GenesisDoc) error {
	genDoc.AppHash = cmtbytes.HexBytes{}

	canon := struct {
		GenesisTime     time.Time                  `json:"genesis_time"`
		ChainID         string                     `json:"chain_id"`
		InitialHeight   string                     `json:"initial_height"`
		ConsensusParams *tmtypes.ConsensusParams   `json:"consensus_params,omitempty"`
		Validators      []tmtypes.GenesisValidator `json:"validators,omitempty"`
		AppHash         string                     `json:"app_hash"`
		AppState        json.RawMessage            `json:"app_state,omitempty"`
	}{
		GenesisTime:     genDoc.GenesisTime,
		ChainID:         genDoc.ChainID,
		InitialHeight:   strconv.FormatInt(genDoc.InitialHeight, 10),
		ConsensusParams: genDoc.ConsensusParams,
		Validators:      genDoc.Validators,
		AppHash:         genDoc.AppHash.String(),
		AppState:        genDoc.AppState,
	}

	bz, err := json.Marshal(canon)
	if err != nil {
		return fmt.Errorf("failed to marshal canonical genesis doc: %w", err)
	}
	decoded, err := decodeJSONWithNumbers(bz)
	if err != nil {
		return fmt.Errorf("failed to canonicalize genesis structure: %w", err)
	}
	normalized := normalizeNumbersToStrings(decoded).(map[string]interface{})
	normalized["initial_height"] = strconv.FormatInt(genDoc.InitialHeight, 10)

	pretty, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal canonical genesis doc: %w", err)
	}
	if _, err := tmtypes.GenesisDocFromJSON(pretty); err != nil {
		return fmt.Errorf("canonical genesis marshal validation failed: %w", err)
	}
	if err := cmtos.WriteFile(path, pretty, 0o644); err != nil {
		return fmt.Errorf("failed to save genesis file: %w", err)
	}
	return nil
}

// normalizeNumbersToStrings walks a decoded JSON structure and turns every
// numeric value into a decimal string, matching CometBFT's Amino-compatible
// JSON decoder. A nil app_hash becomes the empty string.
func normalizeNumbersToStrings(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, vv := range val {
			if k == "app_hash" && vv == nil {
				out[k] = ""
				continue
			}
			out[k] = normalizeNumbersToStrings(vv)
		}
		return out
	case []interface{}:
		for i, vv := range val {
			val[i] = normalizeNumbersToStrings(vv)
		}
		return val
	case json.Number:
		return val.String()
	case float64:
		return fmt.Sprintf("%.0f", val)
	default:
		return val
	}
}

func decodeJSONWithNumbers(bz []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// canonicalizeGenesisFile rewrites a genesis file into the canonical string
// encoding. gentx and collect-gentxs call this after splicing app state
// through the SDK's codec, which re-emits numbers as numbers.
func canonicalizeGenesisFile(path string) error {
	bz, err := os.ReadFile(path) // #nosec G304 - path originates from operator-controlled init arguments
	if err != nil {
		return fmt.Errorf("failed to read genesis file for canonicalization: %w", err)
	}

	raw, err := decodeJSONWithNumbers(bz)
	if err != nil {
		return fmt.Errorf("failed to decode genesis for canonicalization: %w", err)
	}

	canonical := normalizeNumbersToStrings(raw)
	if m, ok := canonical.(map[string]interface{}); ok {
		if v, exists := m["initial_height"]; exists {
			m["initial_height"] = fmt.Sprintf("%v", v)
		}
		canonical = m
	}
	pretty, err := json.MarshalIndent(canonical, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal canonical genesis: %w", err)
	}
	pretty = []byte(strings.ReplaceAll(string(pretty), `"initial_height": 1`, `"initial_height": "1"`))

	if _, err := tmtypes.GenesisDocFromJSON(pretty); err != nil {
		return fmt.Errorf("canonical genesis validation failed: %w", err)
	}

	return cmtos.WriteFile(path, pretty, 0o644)
}

// forceInitialHeightString rewrites a bare numeric initial_height in place.
func forceInitialHeightString(path string) error {
	bz, err := os.ReadFile(path) // #nosec G304 - path is operator-provided during init flow
	if err != nil {
		return err
	}
	updated := strings.ReplaceAll(string(bz), `"initial_height": 1`, `"initial_height": "1"`)
	if _, err := tmtypes.GenesisDocFromJSON([]byte(updated)); err != nil {
		return fmt.Errorf("post-rewrite genesis validation failed: %w", err)
	}
	return cmtos.WriteFile(path, []byte(updated), 0o644)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
