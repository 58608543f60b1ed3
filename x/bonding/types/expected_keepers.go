package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	epochstypes "github.com/lagoon-chain/lagoon/x/epochs/types"
)

// BankKeeper defines the bank functionality the bonding module depends
// on. Bonded funds and reward pots are held on the module account.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

// EpochsKeeper is the epoch-manager collaborator: the current epoch
// record, the staleness gate and the rollover trigger used by the
// auto-chaining message server.
type EpochsKeeper interface {
	GetCurrentEpoch(ctx context.Context) (epochstypes.EpochInfo, error)
	EpochIsStale(ctx context.Context) (bool, error)
	CreateEpoch(ctx context.Context, trigger string) (epochstypes.EpochInfo, error)
}
