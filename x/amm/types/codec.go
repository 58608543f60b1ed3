package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterCodec registers the module's concrete message types on the
// legacy amino codec.
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreatePool{}, "amm/MsgCreatePool", nil)
	cdc.RegisterConcrete(&MsgProvideLiquidity{}, "amm/MsgProvideLiquidity", nil)
	cdc.RegisterConcrete(&MsgWithdrawLiquidity{}, "amm/MsgWithdrawLiquidity", nil)
	cdc.RegisterConcrete(&MsgSwap{}, "amm/MsgSwap", nil)
	cdc.RegisterConcrete(&MsgRampAmp{}, "amm/MsgRampAmp", nil)
	cdc.RegisterConcrete(&MsgStopRamp{}, "amm/MsgStopRamp", nil)
	cdc.RegisterConcrete(&MsgCollectProtocolFees{}, "amm/MsgCollectProtocolFees", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "amm/MsgUpdateParams", nil)
}

// RegisterInterfaces registers the module's message implementations
// with the interface registry.
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreatePool{},
		&MsgProvideLiquidity{},
		&MsgWithdrawLiquidity{},
		&MsgSwap{},
		&MsgRampAmp{},
		&MsgStopRamp{},
		&MsgCollectProtocolFees{},
		&MsgUpdateParams{},
	)
}

var amino = codec.NewLegacyAmino()

func init() {
	RegisterCodec(amino)
	amino.Seal()
}
