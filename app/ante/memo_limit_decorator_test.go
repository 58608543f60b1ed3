package ante

import (
	"strings"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestMemoLimitDecorator(t *testing.T) {
	dec := NewMemoLimitDecorator(16)
	ante := sdk.ChainAnteDecorators(dec)
	ctx := sdk.Context{}.WithTxBytes([]byte{})

	cases := []struct {
		name    string
		memo    string
		wantErr bool
	}{
		{"empty memo", "", false},
		{"under cap", "short", false},
		{"exactly at cap", strings.Repeat("x", 16), false},
		{"one byte over", strings.Repeat("x", 17), true},
		{"far over", strings.Repeat("x", 4096), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ante(ctx, mockMemoTx{memo: tc.memo}, false)
			if tc.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "limit is 16")
			} else {
				require.NoError(t, err)
			}
		})
	}
}
