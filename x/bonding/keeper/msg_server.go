package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lagoon-chain/lagoon/x/bonding/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the bonding MsgServer
// interface for the provided keeper.
func NewMsgServerImpl(k Keeper) types.MsgServer {
	return &msgServer{Keeper: k}
}

var _ types.MsgServer = msgServer{}

// Bond handles MsgBond. When the epoch is overdue it rolls the epoch
// first; when the owner has unclaimed rewards it claims them first.
// Each recovery runs at most once before the bond is retried.
func (m msgServer) Bond(goCtx context.Context, msg *types.MsgBond) (*types.MsgBondResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Bond: %w", err)
	}
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, fmt.Errorf("Bond: %w", err)
	}

	var weight sdkmath.Int
	if err := m.withRecovery(goCtx, owner, func() error {
		var opErr error
		weight, opErr = m.Keeper.Bond(goCtx, owner, msg.Asset)
		return opErr
	}); err != nil {
		return nil, fmt.Errorf("Bond: %w", err)
	}
	return &types.MsgBondResponse{Weight: weight}, nil
}

// Unbond handles MsgUnbond with the same recovery chain as Bond.
func (m msgServer) Unbond(goCtx context.Context, msg *types.MsgUnbond) (*types.MsgUnbondResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Unbond: %w", err)
	}
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, fmt.Errorf("Unbond: %w", err)
	}

	var remaining sdk.Coin
	if err := m.withRecovery(goCtx, owner, func() error {
		var opErr error
		remaining, opErr = m.Keeper.Unbond(goCtx, owner, msg.Asset)
		return opErr
	}); err != nil {
		return nil, fmt.Errorf("Unbond: %w", err)
	}
	return &types.MsgUnbondResponse{Remaining: remaining}, nil
}

// Claim handles MsgClaim. A stale epoch is rolled first so rewards due
// for promotion become claimable inside the same transaction.
func (m msgServer) Claim(goCtx context.Context, msg *types.MsgClaim) (*types.MsgClaimResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Claim: %w", err)
	}
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, fmt.Errorf("Claim: %w", err)
	}

	stale, err := m.epochsKeeper.EpochIsStale(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Claim: %w", err)
	}
	if stale {
		if _, err := m.epochsKeeper.CreateEpoch(goCtx, types.ModuleName); err != nil {
			return nil, fmt.Errorf("Claim: roll epoch: %w", err)
		}
	}

	claimed, err := m.Keeper.Claim(goCtx, owner)
	if err != nil {
		return nil, fmt.Errorf("Claim: %w", err)
	}
	return &types.MsgClaimResponse{Claimed: claimed}, nil
}

// FillRewards handles MsgFillRewards.
func (m msgServer) FillRewards(goCtx context.Context, msg *types.MsgFillRewards) (*types.MsgFillRewardsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("FillRewards: %w", err)
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("FillRewards: %w", err)
	}
	if err := m.DepositRewards(goCtx, sender, msg.Rewards); err != nil {
		return nil, fmt.Errorf("FillRewards: %w", err)
	}
	return &types.MsgFillRewardsResponse{}, nil
}

// UpdateParams handles MsgUpdateParams.
func (m msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("UpdateParams: %w", err)
	}
	if msg.Authority != m.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf(
			"expected authority %s, got %s", m.GetAuthority(), msg.Authority,
		)
	}
	if err := m.SetParams(goCtx, msg.Params); err != nil {
		return nil, fmt.Errorf("UpdateParams: %w", err)
	}
	return &types.MsgUpdateParamsResponse{}, nil
}

// withRecovery runs op, recovering from the two gates a bond mutation
// can hit: an overdue epoch is rolled, then pending rewards are
// claimed. Each recovery fires at most once; anything else aborts.
func (m msgServer) withRecovery(ctx context.Context, owner sdk.AccAddress, op func() error) error {
	rolledEpoch := false
	claimed := false
	for {
		err := op()
		switch {
		case err == nil:
			return nil
		case errorsmod.IsOf(err, types.ErrEpochNotCreatedYet) && !rolledEpoch:
			rolledEpoch = true
			if _, cerr := m.epochsKeeper.CreateEpoch(ctx, types.ModuleName); cerr != nil {
				return fmt.Errorf("roll epoch: %w", cerr)
			}
		case errorsmod.IsOf(err, types.ErrUnclaimedRewards) && !claimed:
			claimed = true
			if _, cerr := m.Keeper.Claim(ctx, owner); cerr != nil {
				return fmt.Errorf("claim pending rewards: %w", cerr)
			}
		default:
			return err
		}
	}
}
