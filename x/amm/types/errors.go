package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors. The set is closed: callers (and tests)
// distinguish failure modes by sentinel, never by message text.
var (
	ErrInvalidPoolId                 = errors.Register(ModuleName, 1, "invalid pool id")
	ErrPoolNotFound                  = errors.Register(ModuleName, 2, "pool not found")
	ErrPoolAlreadyExists             = errors.Register(ModuleName, 3, "pool already exists")
	ErrSameAsset                     = errors.Register(ModuleName, 4, "operation requires distinct assets")
	ErrAssetMismatch                 = errors.Register(ModuleName, 5, "asset does not belong to pool")
	ErrInvalidZeroAmount             = errors.Register(ModuleName, 6, "amount cannot be zero")
	ErrInvalidFee                    = errors.Register(ModuleName, 7, "fee share must be between 0 and 1")
	ErrInvalidFees                   = errors.Register(ModuleName, 8, "total fee shares must sum to less than 1")
	ErrInsufficientLiquidity         = errors.Register(ModuleName, 9, "insufficient liquidity in pool")
	ErrInvalidInitialLiquidityAmount = errors.Register(ModuleName, 10, "initial liquidity amount too small")
	ErrConvergeFailure               = errors.Register(ModuleName, 11, "stableswap solver failed to converge")
	ErrSwapOverflow                  = errors.Register(ModuleName, 12, "swap computation overflow")
	ErrOverflow                      = errors.Register(ModuleName, 13, "arithmetic overflow")
	ErrMaxSpreadAssertion            = errors.Register(ModuleName, 14, "spread exceeds maximum allowed")
	ErrMaxSlippageAssertion          = errors.Register(ModuleName, 15, "deposit slippage exceeds tolerance")
	ErrMinimumReceiveAssertion       = errors.Register(ModuleName, 16, "return amount below minimum receive")
	ErrInvalidSlippageTolerance      = errors.Register(ModuleName, 17, "slippage tolerance out of range")
	ErrInvalidAmpFactor              = errors.Register(ModuleName, 18, "amplification factor out of range")
	ErrAmpRampTooFast                = errors.Register(ModuleName, 19, "amplification change exceeds maximum rate")
	ErrAmpRampTooShort               = errors.Register(ModuleName, 20, "amplification ramp duration too short")
	ErrInvalidPoolType               = errors.Register(ModuleName, 21, "invalid pool type")
	ErrInvalidAddress                = errors.Register(ModuleName, 22, "invalid address")
	ErrInvalidPoolAssets             = errors.Register(ModuleName, 23, "invalid pool assets")
	ErrUnauthorized                  = errors.Register(ModuleName, 24, "unauthorized")
)
