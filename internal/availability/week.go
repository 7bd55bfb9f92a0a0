package availability

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ValidateFullSchedule is the commit gate: every active day needs at least one slot.
// Days are checked Monday to Sunday and the first empty one is reported.
func ValidateFullSchedule(week *domain.WeekSchedule) error {
	if week == nil {
		return fmt.Errorf("%w: nil week", ErrIndexOutOfRange)
	}
	for _, day := range domain.AllDays() {
		ds := week.Days[day]
		if ds.Active && len(ds.Slots) == 0 {
			return &EmptyDayError{Day: day}
		}
	}
	return nil
}

// ValidateWeek checks a whole week against cfg.
// Used for weeks that were not built through single edits:
// loaded from storage, replaced wholesale or read from a file.
func ValidateWeek(week *domain.WeekSchedule, cfg domain.ScheduleConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if week == nil {
		return fmt.Errorf("%w: nil week", ErrIndexOutOfRange)
	}

	for _, day := range domain.AllDays() {
		ds := &week.Days[day]
		if ds.Day != day {
			return fmt.Errorf("%w: position %s holds %s", domain.ErrInvalidDay, day, ds.Day)
		}
		if err := validateDay(ds, cfg); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}

func validateDay(ds *domain.DaySchedule, cfg domain.ScheduleConfig) error {
	if len(ds.Slots) > cfg.MaxSlotsPerDay {
		return fmt.Errorf("%w: %d slots, maximum %d", ErrCapacityExceeded, len(ds.Slots), cfg.MaxSlotsPerDay)
	}

	for i, s := range ds.Slots {
		if err := s.Start.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrOutsideBusinessHours, err)
		}
		if err := s.End.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrOutsideBusinessHours, err)
		}
		if err := checkRange(s); err != nil {
			return err
		}
		if err := checkDuration(s, cfg); err != nil {
			return err
		}
		if err := checkBusinessHours(s, cfg); err != nil {
			return err
		}
		// пары (i, j) при j < i уже проверены на предыдущих итерациях
		for j := i + 1; j < len(ds.Slots); j++ {
			if conflicts(s, ds.Slots[j], cfg.BufferMinutes) {
				return &OverlapError{
					Day:           ds.Day,
					Slot:          s,
					Other:         ds.Slots[j],
					OtherIndex:    j,
					GapMinutes:    gap(s, ds.Slots[j]),
					BufferMinutes: cfg.BufferMinutes,
				}
			}
		}
	}
	return nil
}

// Normalize orders every day's slots by start time
func Normalize(week *domain.WeekSchedule) {
	if week == nil {
		return
	}
	for i := range week.Days {
		week.Days[i].Day = domain.DayOfWeek(i)
		if week.Days[i].Slots == nil {
			week.Days[i].Slots = []domain.Slot{}
		}
		week.Days[i].SortSlots()
	}
}
