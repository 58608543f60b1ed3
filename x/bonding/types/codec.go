package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterCodec registers the module's concrete message types on the
// legacy amino codec.
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgBond{}, "bonding/MsgBond", nil)
	cdc.RegisterConcrete(&MsgUnbond{}, "bonding/MsgUnbond", nil)
	cdc.RegisterConcrete(&MsgClaim{}, "bonding/MsgClaim", nil)
	cdc.RegisterConcrete(&MsgFillRewards{}, "bonding/MsgFillRewards", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "bonding/MsgUpdateParams", nil)
}

// RegisterInterfaces registers the module's message implementations
// with the interface registry.
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgBond{},
		&MsgUnbond{},
		&MsgClaim{},
		&MsgFillRewards{},
		&MsgUpdateParams{},
	)
}

var amino = codec.NewLegacyAmino()

func init() {
	RegisterCodec(amino)
	amino.Seal()
}
