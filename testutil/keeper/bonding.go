package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	bondingkeeper "github.com/lagoon-chain/lagoon/x/bonding/keeper"
	bondingtypes "github.com/lagoon-chain/lagoon/x/bonding/types"
	epochskeeper "github.com/lagoon-chain/lagoon/x/epochs/keeper"
	epochstypes "github.com/lagoon-chain/lagoon/x/epochs/types"
)

// BondingKeeper creates a test keeper for the bonding module wired to
// a real epochs keeper and the mock bank, with the epoch hooks
// registered so bucket promotion fires on rollover.
func BondingKeeper(t testing.TB) (*bondingkeeper.Keeper, *epochskeeper.Keeper, *MockBankKeeper, sdk.Context) {
	bondingKey := storetypes.NewKVStoreKey(bondingtypes.StoreKey)
	epochsKey := storetypes.NewKVStoreKey(epochstypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(bondingKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(epochsKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(registry)

	bank := NewMockBankKeeper()
	ek := epochskeeper.NewKeeper(cdc, epochsKey, TestAuthority)
	bk := bondingkeeper.NewKeeper(cdc, bondingKey, bank, ek, TestAuthority)
	ek.SetHooks(bk.EpochHooks())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: testBlockTime}, false, log.NewNopLogger())

	require.NoError(t, ek.InitGenesis(ctx, *epochstypes.DefaultGenesis()))
	require.NoError(t, bk.InitGenesis(ctx, *bondingtypes.DefaultGenesis()))

	return bk, ek, bank, ctx
}
