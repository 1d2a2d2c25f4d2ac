package domain

import (
	"fmt"

	"github.com/m04kA/SMC-AutoService/pkg/types"
)

// Calendar represents the facility working hours and slot granularity.
// Created once at startup and shared read-only, so all fields are unexported.
type Calendar struct {
	workingStart types.TimeString
	workingEnd   types.TimeString
	granularity  int
}

// NewCalendar создает конфигурацию календаря
// Требования: start < end, granularity > 0
func NewCalendar(workingStart, workingEnd types.TimeString, granularityMinutes int) (*Calendar, error) {
	if err := workingStart.Validate(); err != nil {
		return nil, fmt.Errorf("%w: working start: %v", ErrInvalidCalendar, err)
	}
	if err := workingEnd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: working end: %v", ErrInvalidCalendar, err)
	}
	if !workingStart.IsBefore(workingEnd) {
		return nil, fmt.Errorf("%w: working start %s must be before working end %s",
			ErrInvalidCalendar, workingStart, workingEnd)
	}
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot granularity must be positive, got %d",
			ErrInvalidCalendar, granularityMinutes)
	}

	return &Calendar{
		workingStart: workingStart,
		workingEnd:   workingEnd,
		granularity:  granularityMinutes,
	}, nil
}

func (c *Calendar) WorkingStart() types.TimeString {
	return c.workingStart
}

func (c *Calendar) WorkingEnd() types.TimeString {
	return c.workingEnd
}

func (c *Calendar) SlotGranularityMinutes() int {
	return c.granularity
}

// WorkingHours returns the working day as an interval in minutes
func (c *Calendar) WorkingHours() Interval {
	return Interval{Start: c.workingStart.Minutes(), End: c.workingEnd.Minutes()}
}

// IsWithinWorkingHours returns true if [start, end) fits into working hours
func (c *Calendar) IsWithinWorkingHours(i Interval) bool {
	return c.WorkingHours().Contains(i)
}
