package domain

import "github.com/m04kA/SMC-AutoService/pkg/types"

// Slot represents a bookable time range of a single day
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Interval returns the slot as a half-open interval in minutes
func (s Slot) Interval() Interval {
	return Interval{Start: s.StartTime.Minutes(), End: s.EndTime.Minutes()}
}

// DurationMinutes returns the slot length
func (s Slot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}
