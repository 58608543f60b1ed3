package keeper_test

import (
	"context"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/lagoon-chain/lagoon/testutil/keeper"
	"github.com/lagoon-chain/lagoon/x/epochs/keeper"
	"github.com/lagoon-chain/lagoon/x/epochs/types"
)

var testSender = sdk.AccAddress([]byte("epoch_test_sender_ad")).String()

func TestCreateEpochBeforeDurationElapsed(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	_, err := k.CreateEpoch(ctx, testSender)
	require.ErrorIs(t, err, types.ErrEpochNotElapsed)

	current, err := k.GetCurrentEpoch(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), current.Id)
}

func TestCreateEpochAdvancesOnFixedGrid(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	genesis, err := k.GetCurrentEpoch(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), genesis.Id)
	require.Equal(t, ctx.BlockTime(), genesis.StartTime)

	// Trigger an hour late; the new epoch still starts exactly one
	// duration after the previous one, not at the trigger's block time.
	late := ctx.WithBlockTime(genesis.StartTime.Add(25 * time.Hour))
	epoch, err := k.CreateEpoch(late, testSender)
	require.NoError(t, err)
	require.Equal(t, uint64(1), epoch.Id)
	require.Equal(t, genesis.StartTime.Add(24*time.Hour), epoch.StartTime)

	// A second rollover from the same late block keeps the grid.
	moreLate := ctx.WithBlockTime(genesis.StartTime.Add(49 * time.Hour))
	epoch, err = k.CreateEpoch(moreLate, testSender)
	require.NoError(t, err)
	require.Equal(t, uint64(2), epoch.Id)
	require.Equal(t, genesis.StartTime.Add(48*time.Hour), epoch.StartTime)

	current, err := k.GetCurrentEpoch(moreLate)
	require.NoError(t, err)
	require.Equal(t, epoch, current)
}

func TestCreateEpochExactBoundary(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	genesis, err := k.GetCurrentEpoch(ctx)
	require.NoError(t, err)

	boundary := ctx.WithBlockTime(genesis.StartTime.Add(24 * time.Hour))
	epoch, err := k.CreateEpoch(boundary, testSender)
	require.NoError(t, err)
	require.Equal(t, uint64(1), epoch.Id)
}

func TestEpochIsStale(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	stale, err := k.EpochIsStale(ctx)
	require.NoError(t, err)
	require.False(t, stale)

	later := ctx.WithBlockTime(ctx.BlockTime().Add(24 * time.Hour))
	stale, err = k.EpochIsStale(later)
	require.NoError(t, err)
	require.True(t, stale)

	_, err = k.CreateEpoch(later, testSender)
	require.NoError(t, err)

	stale, err = k.EpochIsStale(later)
	require.NoError(t, err)
	require.False(t, stale)
}

type recordingHooks struct {
	created []uint64
	fail    error
}

func (h *recordingHooks) AfterEpochCreated(_ context.Context, epochID uint64) error {
	if h.fail != nil {
		return h.fail
	}
	h.created = append(h.created, epochID)
	return nil
}

func TestCreateEpochRunsHooks(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	hooks := &recordingHooks{}
	k.SetHooks(hooks)

	later := ctx.WithBlockTime(ctx.BlockTime().Add(24 * time.Hour))
	_, err := k.CreateEpoch(later, testSender)
	require.NoError(t, err)
	require.Equal(t, []uint64{1}, hooks.created)

	// A failed rollover does not fire hooks on the retry path.
	_, err = k.CreateEpoch(later, testSender)
	require.ErrorIs(t, err, types.ErrEpochNotElapsed)
	require.Equal(t, []uint64{1}, hooks.created)
}

func TestCreateEpochHookErrorAborts(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	hooks := &recordingHooks{fail: types.ErrEpochNotFound}
	k.SetHooks(hooks)

	later := ctx.WithBlockTime(ctx.BlockTime().Add(24 * time.Hour))
	_, err := k.CreateEpoch(later, testSender)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrEpochNotFound)
}

func TestMsgServerCreateEpoch(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)
	srv := keeper.NewMsgServerImpl(*k)

	later := ctx.WithBlockTime(ctx.BlockTime().Add(24 * time.Hour))
	resp, err := srv.CreateEpoch(later, &types.MsgCreateEpoch{Sender: testSender})
	require.NoError(t, err)
	require.Equal(t, uint64(1), resp.Epoch.Id)

	_, err = srv.CreateEpoch(later, &types.MsgCreateEpoch{Sender: "not-an-address"})
	require.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestMsgServerUpdateParams(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)
	srv := keeper.NewMsgServerImpl(*k)

	params := types.Params{EpochDuration: time.Hour}

	_, err := srv.UpdateParams(ctx, &types.MsgUpdateParams{
		Authority: testSender,
		Params:    params,
	})
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = srv.UpdateParams(ctx, &types.MsgUpdateParams{
		Authority: keepertest.TestAuthority,
		Params:    params,
	})
	require.NoError(t, err)

	got, err := k.GetParams(ctx)
	require.NoError(t, err)
	require.Equal(t, time.Hour, got.EpochDuration)

	_, err = srv.UpdateParams(ctx, &types.MsgUpdateParams{
		Authority: keepertest.TestAuthority,
		Params:    types.Params{EpochDuration: -time.Hour},
	})
	require.ErrorIs(t, err, types.ErrInvalidDuration)
}

func TestQueryServerCurrentEpoch(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)
	qs := keeper.NewQueryServerImpl(*k)

	resp, err := qs.CurrentEpoch(ctx, &types.QueryCurrentEpochRequest{})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.Epoch.Id)

	_, err = qs.CurrentEpoch(ctx, nil)
	require.Error(t, err)

	cfg, err := qs.EpochConfig(ctx, &types.QueryEpochConfigRequest{})
	require.NoError(t, err)
	require.Equal(t, types.DefaultEpochDuration, cfg.Params.EpochDuration)
}

func TestGenesisRoundTrip(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	anchored, err := k.GetCurrentEpoch(ctx)
	require.NoError(t, err)
	require.False(t, anchored.StartTime.IsZero())

	later := ctx.WithBlockTime(ctx.BlockTime().Add(48 * time.Hour))
	_, err = k.CreateEpoch(later, testSender)
	require.NoError(t, err)

	exported, err := k.ExportGenesis(later)
	require.NoError(t, err)
	require.Equal(t, uint64(1), exported.CurrentEpoch.Id)

	// Re-importing the exported state preserves the explicit start time.
	require.NoError(t, k.InitGenesis(later, *exported))
	reloaded, err := k.GetCurrentEpoch(later)
	require.NoError(t, err)
	require.Equal(t, exported.CurrentEpoch, reloaded)
}
