package ante_test

import (
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/lagoon-chain/lagoon/app/ante"
)

func TestValidateBlockTime(t *testing.T) {
	t.Parallel()

	now := time.Now()
	prev := now.Add(-10 * time.Second)

	tests := []struct {
		name      string
		blockTime time.Time
		prevTime  time.Time
		wantErr   string
	}{
		{"current time", now, prev, ""},
		{"no previous block", now, time.Time{}, ""},
		{"equal to previous block", prev, prev, ""},
		{"at the future drift cap", now.Add(ante.MaxFutureBlockTime), prev, ""},
		{"past the future drift cap", now.Add(ante.MaxFutureBlockTime + time.Second), prev, "too far in the future"},
		{"two minutes ahead", now.Add(2 * time.Minute), prev, "too far in the future"},
		{"behind previous block", prev.Add(-time.Second), prev, "before previous block time"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ante.ValidateBlockTime(tc.blockTime, tc.prevTime, now)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestTimeValidatorDecoratorAnteHandle(t *testing.T) {
	t.Parallel()

	handler := sdk.ChainAnteDecorators(ante.NewTimeValidatorDecorator())

	newCtx := func(height int64, blockTime time.Time) sdk.Context {
		return sdk.Context{}.
			WithBlockHeight(height).
			WithBlockTime(blockTime)
	}

	t.Run("rejects far-future block time", func(t *testing.T) {
		ctx := newCtx(100, time.Now().Add(10*time.Minute))
		_, err := handler(ctx, nil, false)
		require.ErrorContains(t, err, "too far in the future")
	})

	t.Run("accepts historical block time", func(t *testing.T) {
		ctx := newCtx(100, time.Now().Add(-24*time.Hour))
		_, err := handler(ctx, nil, false)
		require.NoError(t, err)
	})

	t.Run("genesis block skips the check", func(t *testing.T) {
		ctx := newCtx(1, time.Now().Add(time.Hour))
		_, err := handler(ctx, nil, false)
		require.NoError(t, err)
	})

	t.Run("simulation skips the check", func(t *testing.T) {
		ctx := newCtx(100, time.Now().Add(time.Hour))
		_, err := handler(ctx, nil, true)
		require.NoError(t, err)
	})
}
