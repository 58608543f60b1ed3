package cmd

import (
	"path/filepath"
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
	"github.com/stretchr/testify/require"

	"github.com/lagoon-chain/lagoon/app"
)

func newCreateValidatorMsg(t *testing.T, pk cryptotypes.PubKey, amount math.Int) *stakingtypes.MsgCreateValidator {
	t.Helper()
	msg, err := stakingtypes.NewMsgCreateValidator(
		sdk.ValAddress(pk.Address()).String(),
		pk,
		sdk.NewCoin(app.BondDenom, amount),
		stakingtypes.NewDescription("node1", "", "", "", ""),
		stakingtypes.NewCommissionRates(
			math.LegacyMustNewDecFromStr("0.10"),
			math.LegacyMustNewDecFromStr("0.20"),
			math.LegacyMustNewDecFromStr("0.01"),
		),
		math.NewInt(1),
	)
	require.NoError(t, err)
	return msg
}

func TestMsgCreateValidatorToGenesisValidator(t *testing.T) {
	registry := app.MakeEncodingConfig().InterfaceRegistry

	t.Run("bonded stake maps to consensus power", func(t *testing.T) {
		pk := ed25519.GenPrivKey().PubKey()
		msg := newCreateValidatorMsg(t, pk, math.NewInt(5_000_000))

		validator, err := msgCreateValidatorToGenesisValidator(registry, msg)
		require.NoError(t, err)
		require.Equal(t, sdk.ValAddress(pk.Address()), sdk.ValAddress(validator.Address))
		require.Equal(t, "node1", validator.Name)
		require.Equal(t,
			sdk.TokensToConsensusPower(msg.Value.Amount, sdk.DefaultPowerReduction),
			validator.Power)
	})

	t.Run("zero stake is rejected", func(t *testing.T) {
		msg := newCreateValidatorMsg(t, ed25519.GenPrivKey().PubKey(), math.ZeroInt())

		_, err := msgCreateValidatorToGenesisValidator(registry, msg)
		require.Error(t, err)
	})
}

func TestLoadGenTxsMissingDir(t *testing.T) {
	enc := app.MakeEncodingConfig()
	clientCtx := client.Context{}.
		WithCodec(enc.Codec).
		WithTxConfig(enc.TxConfig).
		WithInterfaceRegistry(enc.InterfaceRegistry)

	collected, err := loadGenTxs(clientCtx, filepath.Join(t.TempDir(), "gentx"))
	require.NoError(t, err)
	require.Empty(t, collected)
}

func TestEnsureBalance(t *testing.T) {
	addr1 := sdk.AccAddress(ed25519.GenPrivKey().PubKey().Address()).String()
	addr2 := sdk.AccAddress(ed25519.GenPrivKey().PubKey().Address()).String()

	var balances []banktypes.Balance

	first := ensureBalance(&balances, addr1)
	require.Len(t, balances, 1)
	first.Coins = sdk.NewCoins(sdk.NewInt64Coin(app.BondDenom, 100))

	// A second call for the same address must return the existing record.
	again := ensureBalance(&balances, addr1)
	require.Len(t, balances, 1)
	require.True(t, again.Coins.Equal(sdk.NewCoins(sdk.NewInt64Coin(app.BondDenom, 100))))

	ensureBalance(&balances, addr2)
	require.Len(t, balances, 2)
	require.Nil(t, findBalance(balances, "missing-address"))
}
