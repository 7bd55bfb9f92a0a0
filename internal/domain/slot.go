package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// OpenSlot a slot of a committed schedule offered on a concrete date
type OpenSlot struct {
	Date            time.Time
	StartTime       types.TimeOfDay
	EndTime         types.TimeOfDay
	DurationMinutes int
}

// NewOpenSlot builds an OpenSlot from a schedule slot
func NewOpenSlot(date time.Time, s Slot) OpenSlot {
	return OpenSlot{
		Date:            DateOnly(date),
		StartTime:       s.Start,
		EndTime:         s.End,
		DurationMinutes: s.Duration(),
	}
}
