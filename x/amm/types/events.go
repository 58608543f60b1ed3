package types

// Event types for the amm module
const (
	EventTypeCreatePool          = "amm_create_pool"
	EventTypeProvideLiquidity    = "amm_provide_liquidity"
	EventTypeWithdrawLiquidity   = "amm_withdraw_liquidity"
	EventTypeSwap                = "amm_swap"
	EventTypeRampAmp             = "amm_ramp_amp"
	EventTypeStopRamp            = "amm_stop_ramp"
	EventTypeCollectProtocolFees = "amm_collect_protocol_fees"
)

// Event attribute keys
const (
	AttributeKeyPoolID       = "pool_id"
	AttributeKeyPoolType     = "pool_type"
	AttributeKeyCreator      = "creator"
	AttributeKeyProvider     = "provider"
	AttributeKeyTrader       = "trader"
	AttributeKeyOfferAsset   = "offer_asset"
	AttributeKeyAskDenom     = "ask_denom"
	AttributeKeyReturnAmount = "return_amount"
	AttributeKeySpreadAmount = "spread_amount"
	AttributeKeySwapFee      = "swap_fee_amount"
	AttributeKeyProtocolFee  = "protocol_fee_amount"
	AttributeKeyBurnFee      = "burn_fee_amount"
	AttributeKeyExtraFee     = "extra_fee_amount"
	AttributeKeyShares       = "shares"
	AttributeKeyRefund       = "refund"
	AttributeKeyAmp          = "amp"
	AttributeKeyTargetAmp    = "target_amp"
	AttributeKeyTargetBlock  = "target_block"
	AttributeKeyCollected    = "collected"
)
