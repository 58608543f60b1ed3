package ante

import (
	"testing"

	txsigning "cosmossdk.io/x/tx/signing"
	"github.com/stretchr/testify/require"
)

func TestNewAnteHandlerMissingAccountKeeper(t *testing.T) {
	handler, err := NewAnteHandler(HandlerOptions{})
	require.Error(t, err)
	require.Nil(t, handler)
	require.Contains(t, err.Error(), "account keeper is required")
}

func TestNewAnteHandlerMissingBankKeeper(t *testing.T) {
	handler, err := NewAnteHandler(HandlerOptions{
		AccountKeeper: mockAccountKeeper{},
	})
	require.Error(t, err)
	require.Nil(t, handler)
	require.Contains(t, err.Error(), "bank keeper is required")
}

func TestNewAnteHandlerMissingSignModeHandler(t *testing.T) {
	handler, err := NewAnteHandler(HandlerOptions{
		AccountKeeper: mockAccountKeeper{},
		BankKeeper:    mockBankKeeper{},
	})
	require.Error(t, err)
	require.Nil(t, handler)
	require.Contains(t, err.Error(), "sign mode handler is required")
}

func TestNewAnteHandlerWithoutModuleKeepers(t *testing.T) {
	// The amm decorator is optional: a handler built without it is the
	// plain auth chain and must still construct.
	handler, err := NewAnteHandler(HandlerOptions{
		AccountKeeper:   mockAccountKeeper{},
		BankKeeper:      mockBankKeeper{},
		SignModeHandler: &txsigning.HandlerMap{},
	})
	require.NoError(t, err)
	require.NotNil(t, handler)
}
