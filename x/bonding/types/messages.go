package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgBond         = "bond"
	TypeMsgUnbond       = "unbond"
	TypeMsgClaim        = "claim"
	TypeMsgFillRewards  = "fill_rewards"
	TypeMsgUpdateParams = "update_params"
)

var (
	_ sdk.Msg = &MsgBond{}
	_ sdk.Msg = &MsgUnbond{}
	_ sdk.Msg = &MsgClaim{}
	_ sdk.Msg = &MsgFillRewards{}
	_ sdk.Msg = &MsgUpdateParams{}
)

// MsgBond bonds an asset so it starts accruing reward weight.
type MsgBond struct {
	Owner string   `json:"owner"`
	Asset sdk.Coin `json:"asset"`
}

func (m *MsgBond) Reset()         { *m = MsgBond{} }
func (m *MsgBond) String() string { return fmt.Sprintf("%s(%s, %s)", TypeMsgBond, m.Owner, m.Asset) }
func (m *MsgBond) ProtoMessage()  {}

// ValidateBasic performs stateless validation of MsgBond.
func (m *MsgBond) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid owner address: %s", err)
	}
	if err := m.Asset.Validate(); err != nil {
		return sdkerrors.Wrapf(ErrInvalidBondDenom, "invalid asset: %s", err)
	}
	if m.Asset.Amount.IsZero() {
		return sdkerrors.Wrap(ErrInvalidZeroAmount, "bond amount")
	}
	return nil
}

// GetSigners returns the expected signers for MsgBond.
func (m *MsgBond) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(m.Owner)
	return []sdk.AccAddress{owner}
}

// MsgUnbond releases part or all of a bonded asset.
type MsgUnbond struct {
	Owner string   `json:"owner"`
	Asset sdk.Coin `json:"asset"`
}

func (m *MsgUnbond) Reset()         { *m = MsgUnbond{} }
func (m *MsgUnbond) String() string { return fmt.Sprintf("%s(%s, %s)", TypeMsgUnbond, m.Owner, m.Asset) }
func (m *MsgUnbond) ProtoMessage()  {}

// ValidateBasic performs stateless validation of MsgUnbond.
func (m *MsgUnbond) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid owner address: %s", err)
	}
	if err := m.Asset.Validate(); err != nil {
		return sdkerrors.Wrapf(ErrInvalidBondDenom, "invalid asset: %s", err)
	}
	if m.Asset.Amount.IsZero() {
		return sdkerrors.Wrap(ErrInvalidZeroAmount, "unbond amount")
	}
	return nil
}

// GetSigners returns the expected signers for MsgUnbond.
func (m *MsgUnbond) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(m.Owner)
	return []sdk.AccAddress{owner}
}

// MsgClaim claims the owner's share of every claimable reward bucket.
type MsgClaim struct {
	Owner string `json:"owner"`
}

func (m *MsgClaim) Reset()         { *m = MsgClaim{} }
func (m *MsgClaim) String() string { return fmt.Sprintf("%s(%s)", TypeMsgClaim, m.Owner) }
func (m *MsgClaim) ProtoMessage()  {}

// ValidateBasic performs stateless validation of MsgClaim.
func (m *MsgClaim) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid owner address: %s", err)
	}
	return nil
}

// GetSigners returns the expected signers for MsgClaim.
func (m *MsgClaim) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(m.Owner)
	return []sdk.AccAddress{owner}
}

// MsgFillRewards deposits assets into the upcoming reward bucket.
type MsgFillRewards struct {
	Sender  string    `json:"sender"`
	Rewards sdk.Coins `json:"rewards"`
}

func (m *MsgFillRewards) Reset()         { *m = MsgFillRewards{} }
func (m *MsgFillRewards) String() string { return fmt.Sprintf("%s(%s)", TypeMsgFillRewards, m.Sender) }
func (m *MsgFillRewards) ProtoMessage()  {}

// ValidateBasic performs stateless validation of MsgFillRewards.
func (m *MsgFillRewards) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if err := m.Rewards.Validate(); err != nil {
		return sdkerrors.Wrapf(ErrInvalidZeroAmount, "invalid rewards: %s", err)
	}
	if m.Rewards.IsZero() {
		return sdkerrors.Wrap(ErrInvalidZeroAmount, "rewards cannot be empty")
	}
	return nil
}

// GetSigners returns the expected signers for MsgFillRewards.
func (m *MsgFillRewards) GetSigners() []sdk.AccAddress {
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
