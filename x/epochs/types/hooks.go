package types

import (
	"context"
)

// EpochHooks is the event interface other modules implement to react
// to epoch rollover. AfterEpochCreated runs inside the CreateEpoch
// transaction; an error aborts the rollover.
type EpochHooks interface {
	AfterEpochCreated(ctx context.Context, epochID uint64) error
}

// MultiEpochHooks fans a hook call out to several listeners in
// registration order.
type MultiEpochHooks []EpochHooks

var _ EpochHooks = MultiEpochHooks{}

// NewMultiEpochHooks combines several EpochHooks into one.
func NewMultiEpochHooks(hooks ...EpochHooks) MultiEpochHooks {
	return MultiEpochHooks(hooks)
}

// AfterEpochCreated calls every registered hook, stopping at the first
// error.
func (h MultiEpochHooks) AfterEpochCreated(ctx context.Context, epochID uint64) error {
	for _, hook := range h {
		if err := hook.AfterEpochCreated(ctx, epochID); err != nil {
			return err
		}
	}
	return nil
}
