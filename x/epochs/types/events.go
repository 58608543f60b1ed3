package types

// Event types for the epochs module
const (
	EventTypeCreateEpoch = "epochs_create_epoch"
)

// Event attribute keys
const (
	AttributeKeyEpochID   = "epoch_id"
	AttributeKeyStartTime = "start_time"
	AttributeKeyTrigger   = "trigger"
)
