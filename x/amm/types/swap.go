package types

import (
	sdkmath "cosmossdk.io/math"
)

// SwapResult is the full settlement of one swap: the post-fee return
// amount, the informational spread versus the 1:1-adjusted exchange
// amount, and every fee amount by category. Fees are each computed on
// the pre-fee return amount, never cascading, and subtracted from it;
// spread is never deducted twice.
type SwapResult struct {
	ReturnAmount      sdkmath.Int `json:"return_amount"`
	SpreadAmount      sdkmath.Int `json:"spread_amount"`
	SwapFeeAmount     sdkmath.Int `json:"swap_fee_amount"`
	ProtocolFeeAmount sdkmath.Int `json:"protocol_fee_amount"`
	BurnFeeAmount     sdkmath.Int `json:"burn_fee_amount"`
	ExtraFeeAmount    sdkmath.Int `json:"extra_fee_amount"`
}

// TotalFees returns the sum of every fee amount in the settlement.
func (r SwapResult) TotalFees() sdkmath.Int {
	return r.SwapFeeAmount.
		Add(r.ProtocolFeeAmount).
		Add(r.BurnFeeAmount).
		Add(r.ExtraFeeAmount)
}
