package types_test

import (
	"bytes"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

func TestGetBondKeyDistinctPairsNeverCollide(t *testing.T) {
	// Without a length prefix on the owner, ("ab", "cd") and ("abc",
	// "d") would concatenate to the same key bytes.
	keyA := types.GetBondKey(sdk.AccAddress("ab"), "cd")
	keyB := types.GetBondKey(sdk.AccAddress("abc"), "d")
	require.NotEqual(t, keyA, keyB)

	// The same pair always maps to the same key.
	require.Equal(t, keyA, types.GetBondKey(sdk.AccAddress("ab"), "cd"))
}

func TestGetBondOwnerPrefixCoversOnlyThatOwner(t *testing.T) {
	owner := sdk.AccAddress("owner_______________")
	other := sdk.AccAddress("owner_______________x")

	key := types.GetBondKey(owner, "ulgn")
	prefix := types.GetBondOwnerPrefix(owner)
	require.True(t, bytes.HasPrefix(key, prefix))

	// A longer address that happens to start with the same bytes does
	// not fall under the prefix.
	otherKey := types.GetBondKey(other, "ulgn")
	require.False(t, bytes.HasPrefix(otherKey, prefix))
}
