package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/bonding module sentinel errors
var (
	ErrInvalidGrowthRate  = errorsmod.Register(ModuleName, 1, "invalid growth rate")
	ErrInvalidBondDenom   = errorsmod.Register(ModuleName, 2, "denom is not bondable")
	ErrInvalidZeroAmount  = errorsmod.Register(ModuleName, 3, "amount must be positive")
	ErrUnclaimedRewards   = errorsmod.Register(ModuleName, 4, "unclaimed rewards outstanding")
	ErrEpochNotCreatedYet = errorsmod.Register(ModuleName, 5, "a due epoch has not been created")
	ErrNothingToClaim     = errorsmod.Register(ModuleName, 6, "nothing to claim")
	ErrNothingToUnbond    = errorsmod.Register(ModuleName, 7, "nothing to unbond")
	ErrInsufficientBond   = errorsmod.Register(ModuleName, 8, "insufficient bonded amount")
	ErrInvalidShare       = errorsmod.Register(ModuleName, 9, "computed share exceeds 100%")
	ErrInvalidReward      = errorsmod.Register(ModuleName, 10, "computed reward exceeds bucket availability")
	ErrBucketNotFound     = errorsmod.Register(ModuleName, 11, "reward bucket not found")
	ErrInvalidGracePeriod = errorsmod.Register(ModuleName, 12, "invalid grace period")
	ErrInvalidAddress     = errorsmod.Register(ModuleName, 13, "invalid address")
	ErrUnauthorized       = errorsmod.Register(ModuleName, 14, "unauthorized")
)
