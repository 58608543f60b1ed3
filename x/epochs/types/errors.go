package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/epochs module sentinel errors
var (
	ErrEpochNotElapsed = errorsmod.Register(ModuleName, 1, "epoch duration has not elapsed")
	ErrEpochNotFound   = errorsmod.Register(ModuleName, 2, "epoch not found")
	ErrInvalidDuration = errorsmod.Register(ModuleName, 3, "invalid epoch duration")
	ErrInvalidAddress  = errorsmod.Register(ModuleName, 4, "invalid address")
	ErrUnauthorized    = errorsmod.Register(ModuleName, 5, "unauthorized")
)
