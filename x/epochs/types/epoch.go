package types

import (
	"time"
)

// EpochInfo is the current epoch record: a monotonically increasing id
// and the wall-clock time the epoch started.
type EpochInfo struct {
	Id        uint64    `json:"id"`
	StartTime time.Time `json:"start_time"`
}

// HasElapsed reports whether a full epoch duration has passed since
// the epoch started.
func (e EpochInfo) HasElapsed(now time.Time, duration time.Duration) bool {
	return !now.Before(e.StartTime.Add(duration))
}

// Next returns the follow-up epoch. Start times advance on the fixed
// grid anchored at genesis, not at the trigger's block time, so late
// triggers do not drift the schedule.
func (e EpochInfo) Next(duration time.Duration) EpochInfo {
	return EpochInfo{
		Id:        e.Id + 1,
		StartTime: e.StartTime.Add(duration),
	}
}
