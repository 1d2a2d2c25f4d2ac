package domain

import (
	"time"

	"github.com/m04kA/SMC-AutoService/pkg/types"
)

// Holiday represents a full or partial closure of the facility.
// Nil StartTime means the closure begins at 00:00, nil EndTime means it lasts until 24:00.
type Holiday struct {
	ID        int64
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFullDay returns true if the holiday blocks the whole day
func (h *Holiday) IsFullDay() bool {
	return h.StartTime == nil && h.EndTime == nil
}

// BlockedInterval returns the blocked [start, end) range in minutes
func (h *Holiday) BlockedInterval() Interval {
	blocked := Interval{Start: 0, End: EndOfDayMinutes}
	if h.StartTime != nil {
		blocked.Start = h.StartTime.Minutes()
	}
	if h.EndTime != nil {
		blocked.End = h.EndTime.Minutes()
	}
	return blocked
}
