package availability

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// checkSlot runs the per-slot rules in fixed order:
// range, minimum duration, business hours, overlap with buffer.
// skip is the index of the slot being edited (-1 for a new slot).
func checkSlot(day *domain.DaySchedule, skip int, candidate domain.Slot, cfg domain.ScheduleConfig) error {
	if err := checkRange(candidate); err != nil {
		return err
	}
	if err := checkDuration(candidate, cfg); err != nil {
		return err
	}
	if err := checkBusinessHours(candidate, cfg); err != nil {
		return err
	}
	return checkOverlaps(day, skip, candidate, cfg.BufferMinutes)
}

func checkRange(s domain.Slot) error {
	if !s.End.IsAfter(s.Start) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidRange, s.Start, s.End)
	}
	return nil
}

func checkDuration(s domain.Slot, cfg domain.ScheduleConfig) error {
	if s.Duration() < cfg.MinSessionMinutes {
		return fmt.Errorf("%w: %s-%s is %d min, minimum %d min",
			ErrDurationTooShort, s.Start, s.End, s.Duration(), cfg.MinSessionMinutes)
	}
	return nil
}

func checkBusinessHours(s domain.Slot, cfg domain.ScheduleConfig) error {
	if s.Start.IsBefore(cfg.BusinessStart) || s.End.IsAfter(cfg.BusinessEnd) {
		return fmt.Errorf("%w: %s-%s not within %s-%s",
			ErrOutsideBusinessHours, s.Start, s.End, cfg.BusinessStart, cfg.BusinessEnd)
	}
	return nil
}

func checkOverlaps(day *domain.DaySchedule, skip int, candidate domain.Slot, buffer int) error {
	for i, other := range day.Slots {
		if i == skip {
			continue
		}
		if conflicts(candidate, other, buffer) {
			return &OverlapError{
				Day:           day.Day,
				Slot:          candidate,
				Other:         other,
				OtherIndex:    i,
				GapMinutes:    gap(candidate, other),
				BufferMinutes: buffer,
			}
		}
	}
	return nil
}

// conflicts is the buffer-inflated interval overlap test.
// Symmetric in a and b; touching slots conflict whenever buffer > 0.
func conflicts(a, b domain.Slot, buffer int) bool {
	return a.Start.Minutes() < b.End.Minutes()+buffer &&
		a.End.Minutes()+buffer > b.Start.Minutes()
}

// gap minutes between the earlier slot's end and the later slot's start
func gap(a, b domain.Slot) int {
	if a.Start.IsAfter(b.Start) {
		a, b = b, a
	}
	return b.Start.Sub(a.End)
}
