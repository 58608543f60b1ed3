package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the bank functionality the amm module depends on.
// The module only computes amounts; every token movement goes through
// this interface.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromModuleToModule(ctx context.Context, senderModule, recipientModule string, amt sdk.Coins) error
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

// AccountKeeper defines the account functionality the amm module
// depends on.
type AccountKeeper interface {
	GetModuleAddress(name string) sdk.AccAddress
}

// RewardCollector receives collected protocol fees. The bonding module
// implements it so swap fees fund the epoch reward buckets.
type RewardCollector interface {
	DepositRewards(ctx context.Context, from sdk.AccAddress, rewards sdk.Coins) error
	ModuleName() string
}
