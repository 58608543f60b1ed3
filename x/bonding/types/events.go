package types

// Event types for the bonding module
const (
	EventTypeBond           = "bonding_bond"
	EventTypeUnbond         = "bonding_unbond"
	EventTypeClaim          = "bonding_claim"
	EventTypeFillRewards    = "bonding_fill_rewards"
	EventTypeBucketPromoted = "bonding_bucket_promoted"
)

// Event attribute keys
const (
	AttributeKeyOwner   = "owner"
	AttributeKeyAmount  = "amount"
	AttributeKeyDenom   = "denom"
	AttributeKeyWeight  = "weight"
	AttributeKeyEpochID = "epoch_id"
	AttributeKeyRewards = "rewards"
	AttributeKeySender  = "sender"
)
