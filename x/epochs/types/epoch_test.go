package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lagoon-chain/lagoon/x/epochs/types"
)

func TestEpochHasElapsed(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	epoch := types.EpochInfo{Id: 3, StartTime: start}

	require.False(t, epoch.HasElapsed(start, time.Hour))
	require.False(t, epoch.HasElapsed(start.Add(59*time.Minute), time.Hour))
	require.True(t, epoch.HasElapsed(start.Add(time.Hour), time.Hour))
	require.True(t, epoch.HasElapsed(start.Add(90*time.Minute), time.Hour))
}

func TestEpochNextKeepsGrid(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	epoch := types.EpochInfo{Id: 0, StartTime: start}

	for i := 1; i <= 5; i++ {
		epoch = epoch.Next(time.Hour)
		require.Equal(t, uint64(i), epoch.Id)
		require.Equal(t, start.Add(time.Duration(i)*time.Hour), epoch.StartTime)
	}
}
