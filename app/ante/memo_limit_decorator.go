package ante

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MemoLimitDecorator rejects transactions whose memo exceeds a byte cap. It
// sits ahead of signature verification so oversized payloads are dropped
// before any expensive work. The SDK's own memo check is parameter driven and
// runs later; this cap is a fixed chain-level bound.
type MemoLimitDecorator struct {
	maxBytes int
}

// NewMemoLimitDecorator returns a decorator enforcing the given byte cap.
func NewMemoLimitDecorator(maxBytes int) MemoLimitDecorator {
	return MemoLimitDecorator{maxBytes: maxBytes}
}

// AnteHandle implements sdk.AnteDecorator.
func (d MemoLimitDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (sdk.Context, error) {
	memoTx, ok := tx.(sdk.TxWithMemo)
	if !ok {
		return next(ctx, tx, simulate)
	}

	if n := len(memoTx.GetMemo()); n > d.maxBytes {
		return ctx, errorsmod.Wrapf(sdkerrors.ErrMemoTooLarge, "memo is %d bytes, limit is %d", n, d.maxBytes)
	}

	return next(ctx, tx, simulate)
}
