package ante

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	ammtypes "github.com/lagoon-chain/lagoon/x/amm/types"
	bondingtypes "github.com/lagoon-chain/lagoon/x/bonding/types"
	epochstypes "github.com/lagoon-chain/lagoon/x/epochs/types"
)

// Gas limits for different operation types to prevent exhaustion attacks
const (
	// AMM operations
	MaxGasPerSwap             uint64 = 200_000
	MaxGasPerPoolCreation     uint64 = 300_000
	MaxGasPerProvideLiquidity uint64 = 150_000
	MaxGasPerWithdraw         uint64 = 150_000
	MaxGasPerRamp             uint64 = 100_000
	MaxGasPerFeeCollection    uint64 = 150_000

	// Bonding operations. Bond/Unbond/Claim may auto-chain an epoch
	// rollover and a multi-bucket claim, so they get the largest caps.
	MaxGasPerBond        uint64 = 300_000
	MaxGasPerUnbond      uint64 = 300_000
	MaxGasPerClaim       uint64 = 400_000
	MaxGasPerFillRewards uint64 = 100_000

	// Epoch operations trigger the bonding rollover hook.
	MaxGasPerEpochCreation uint64 = 250_000

	// General limits
	MaxGasPerTx      uint64 = 10_000_000 // Maximum gas per transaction
	MaxGasPerMessage uint64 = 500_000    // Maximum gas per message in tx
	MaxMessagesPerTx int    = 10         // Maximum messages per transaction
)

// GasLimitDecorator enforces per-operation gas limits to prevent exhaustion attacks
type GasLimitDecorator struct{}

// NewGasLimitDecorator creates a new GasLimitDecorator
func NewGasLimitDecorator() GasLimitDecorator {
	return GasLimitDecorator{}
}

// AnteHandle enforces gas limits on transactions and individual messages
func (gld GasLimitDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (sdk.Context, error) {
	msgs := tx.GetMsgs()

	if len(msgs) > MaxMessagesPerTx {
		return ctx, sdkerrors.ErrInvalidRequest.Wrapf(
			"transaction contains too many messages: %d > %d",
			len(msgs), MaxMessagesPerTx,
		)
	}

	for i, msg := range msgs {
		requiredGas := requiredGasForMessage(msg)
		if requiredGas > MaxGasPerMessage {
			return ctx, sdkerrors.ErrInvalidRequest.Wrapf(
				"message %d requires too much gas: %d > %d",
				i, requiredGas, MaxGasPerMessage,
			)
		}
	}

	// Check total transaction gas limit
	totalGasRequired := ctx.GasMeter().Limit()
	if totalGasRequired > MaxGasPerTx && !simulate {
		return ctx, sdkerrors.ErrInvalidRequest.Wrapf(
			"transaction gas limit too high: %d > %d",
			totalGasRequired, MaxGasPerTx,
		)
	}

	gasBefore := ctx.GasMeter().GasConsumed()

	newCtx, err := next(ctx, tx, simulate)
	if err != nil {
		return newCtx, err
	}

	gasUsed := newCtx.GasMeter().GasConsumed() - gasBefore

	// Log excessive gas usage for monitoring
	if gasUsed > MaxGasPerTx/2 {
		ctx.Logger().Info("High gas consumption detected",
			"gas_used", gasUsed,
			"num_messages", len(msgs),
			"tx_hash", fmt.Sprintf("%X", ctx.TxBytes()),
		)
	}

	return newCtx, nil
}

// requiredGasForMessage returns the gas cap for a specific message type
func requiredGasForMessage(msg sdk.Msg) uint64 {
	switch msg.(type) {
	// AMM messages
	case *ammtypes.MsgSwap:
		return MaxGasPerSwap
	case *ammtypes.MsgCreatePool:
		return MaxGasPerPoolCreation
	case *ammtypes.MsgProvideLiquidity:
		return MaxGasPerProvideLiquidity
	case *ammtypes.MsgWithdrawLiquidity:
		return MaxGasPerWithdraw
	case *ammtypes.MsgRampAmp, *ammtypes.MsgStopRamp:
		return MaxGasPerRamp
	case *ammtypes.MsgCollectProtocolFees:
		return MaxGasPerFeeCollection

	// Bonding messages
	case *bondingtypes.MsgBond:
		return MaxGasPerBond
	case *bondingtypes.MsgUnbond:
		return MaxGasPerUnbond
	case *bondingtypes.MsgClaim:
		return MaxGasPerClaim
	case *bondingtypes.MsgFillRewards:
		return MaxGasPerFillRewards

	// Epoch messages
	case *epochstypes.MsgCreateEpoch:
		return MaxGasPerEpochCreation

	default:
		// For unknown message types, use a conservative default
		return MaxGasPerMessage
	}
}

// ConsumeGasForOperation consumes gas and checks it doesn't exceed per-operation limits
func ConsumeGasForOperation(ctx sdk.Context, gas uint64, operationType string, maxGas uint64) error {
	if gas > maxGas {
		return sdkerrors.ErrInvalidRequest.Wrapf(
			"operation '%s' requires too much gas: %d > %d",
			operationType, gas, maxGas,
		)
	}

	// Consume the gas (will panic if exceeds meter limit)
	ctx.GasMeter().ConsumeGas(gas, operationType)

	return nil
}
