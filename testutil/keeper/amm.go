package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	"github.com/lagoon-chain/lagoon/x/amm/keeper"
	"github.com/lagoon-chain/lagoon/x/amm/types"
)

// TestAuthority is the params-update authority used by every test
// keeper, matching the gov module account the app wires in.
var TestAuthority = authtypes.NewModuleAddress(govtypes.ModuleName).String()

// testBlockTime anchors the test block clock so epoch arithmetic is
// deterministic.
var testBlockTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// AMMKeeper creates a test keeper for the amm module backed by an
// in-memory store and mock bank.
func AMMKeeper(t testing.TB) (*keeper.Keeper, *MockBankKeeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(registry)

	bank := NewMockBankKeeper()
	k := keeper.NewKeeper(cdc, storeKey, bank, TestAuthority)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: testBlockTime}, false, log.NewNopLogger())

	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, bank, ctx
}
