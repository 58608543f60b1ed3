package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgCreateEpoch  = "create_epoch"
	TypeMsgUpdateParams = "update_params"
)

var (
	_ sdk.Msg = &MsgCreateEpoch{}
	_ sdk.Msg = &MsgUpdateParams{}
)

// MsgCreateEpoch is the permissionless epoch-rollover trigger. Anyone
// may submit it once the configured duration has elapsed.
type MsgCreateEpoch struct {
	Sender string `json:"sender"`
}

func (m *MsgCreateEpoch) Reset()         { *m = MsgCreateEpoch{} }
func (m *MsgCreateEpoch) String() string { return fmt.Sprintf("%s(%s)", TypeMsgCreateEpoch, m.Sender) }
func (m *MsgCreateEpoch) ProtoMessage()  {}

// ValidateBasic performs stateless validation of MsgCreateEpoch.
func (m *MsgCreateEpoch) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	return nil
}

// GetSigners returns the expected signers for MsgCreateEpoch.
func (m *MsgCreateEpoch) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{sender}
}

// MsgUpdateParams updates the module parameters.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

func (m *MsgUpdateParams) Reset()         { *m = MsgUpdateParams{} }
func (m *MsgUpdateParams) String() string { return TypeMsgUpdateParams }
func (m *MsgUpdateParams) ProtoMessage()  {}

// ValidateBasic performs stateless validation of MsgUpdateParams.
func (m *MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	return m.Params.Validate()
}

// GetSigners returns the expected signers for MsgUpdateParams.
func (m *MsgUpdateParams) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}
