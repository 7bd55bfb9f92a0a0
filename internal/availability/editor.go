package availability

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// SlotField endpoint of a slot changed by UpdateSlot
type SlotField int

const (
	FieldStart SlotField = iota
	FieldEnd
)

func (f SlotField) String() string {
	switch f {
	case FieldStart:
		return "start"
	case FieldEnd:
		return "end"
	default:
		return fmt.Sprintf("SlotField(%d)", int(f))
	}
}

// ParseSlotField parses "start" or "end"
func ParseSlotField(s string) (SlotField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return FieldStart, nil
	case "end":
		return FieldEnd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidField, s)
	}
}

// DefaultSlotLength length of a slot created by AddSlot
func DefaultSlotLength(cfg domain.ScheduleConfig) int {
	return max(domain.DefaultSlotLengthMinutes, cfg.MinSessionMinutes)
}

// AddSlot appends a default slot to the day.
// The new slot starts at BusinessStart on an empty day, otherwise one buffer
// after the latest end. It runs through the same rules as UpdateSlot.
func AddSlot(week *domain.WeekSchedule, cfg domain.ScheduleConfig, day domain.DayOfWeek) (domain.Slot, error) {
	if err := cfg.Validate(); err != nil {
		return domain.Slot{}, err
	}
	ds, err := dayAt(week, day)
	if err != nil {
		return domain.Slot{}, err
	}
	if len(ds.Slots) >= cfg.MaxSlotsPerDay {
		return domain.Slot{}, fmt.Errorf("%w: %s already has %d of %d slots",
			ErrCapacityExceeded, day, len(ds.Slots), cfg.MaxSlotsPerDay)
	}

	slot, err := defaultSlot(ds, cfg)
	if err != nil {
		return domain.Slot{}, err
	}
	if err := checkSlot(ds, -1, slot, cfg); err != nil {
		return domain.Slot{}, err
	}

	ds.Slots = append(ds.Slots, slot)
	ds.SortSlots()
	return slot, nil
}

func defaultSlot(ds *domain.DaySchedule, cfg domain.ScheduleConfig) (domain.Slot, error) {
	start := cfg.BusinessStart
	if len(ds.Slots) > 0 {
		latest := ds.Slots[0].End
		for _, s := range ds.Slots[1:] {
			if s.End.IsAfter(latest) {
				latest = s.End
			}
		}
		next, err := latest.AddMinutes(cfg.BufferMinutes)
		if err != nil {
			return domain.Slot{}, fmt.Errorf("%w: no room after %s on %s", ErrOutsideBusinessHours, latest, ds.Day)
		}
		start = next
	}

	end, err := start.AddMinutes(DefaultSlotLength(cfg))
	if err != nil || end.IsAfter(cfg.BusinessEnd) {
		return domain.Slot{}, fmt.Errorf("%w: no room for a %d min slot after %s on %s",
			ErrOutsideBusinessHours, DefaultSlotLength(cfg), start, ds.Day)
	}

	return domain.Slot{Start: start, End: end, Available: true}, nil
}

// RemoveSlot deletes a slot, no rules apply
func RemoveSlot(week *domain.WeekSchedule, day domain.DayOfWeek, slot int) error {
	ds, err := slotAt(week, day, slot)
	if err != nil {
		return err
	}
	ds.Slots = append(ds.Slots[:slot:slot], ds.Slots[slot+1:]...)
	return nil
}

// UpdateSlot changes one endpoint of a slot.
// On any rule violation the week is left untouched.
func UpdateSlot(week *domain.WeekSchedule, cfg domain.ScheduleConfig, day domain.DayOfWeek, slot int, field SlotField, value types.TimeOfDay) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ds, err := slotAt(week, day, slot)
	if err != nil {
		return err
	}
	if err := value.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideBusinessHours, err)
	}

	candidate := ds.Slots[slot]
	switch field {
	case FieldStart:
		candidate.Start = value
	case FieldEnd:
		candidate.End = value
	default:
		return fmt.Errorf("%w: %s", ErrInvalidField, field)
	}

	return writeSlot(ds, slot, candidate, cfg)
}

// MoveSlot sets both endpoints of a slot at once
func MoveSlot(week *domain.WeekSchedule, cfg domain.ScheduleConfig, day domain.DayOfWeek, slot int, start, end types.TimeOfDay) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ds, err := slotAt(week, day, slot)
	if err != nil {
		return err
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideBusinessHours, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideBusinessHours, err)
	}

	candidate := ds.Slots[slot]
	candidate.Start = start
	candidate.End = end

	return writeSlot(ds, slot, candidate, cfg)
}

func writeSlot(ds *domain.DaySchedule, idx int, candidate domain.Slot, cfg domain.ScheduleConfig) error {
	if err := checkSlot(ds, idx, candidate, cfg); err != nil {
		return err
	}
	ds.Slots[idx] = candidate
	ds.SortSlots()
	return nil
}

// SetSlotAvailable marks a slot as offered or withheld
func SetSlotAvailable(week *domain.WeekSchedule, day domain.DayOfWeek, slot int, available bool) error {
	ds, err := slotAt(week, day, slot)
	if err != nil {
		return err
	}
	ds.Slots[slot].Available = available
	return nil
}

// ToggleDayActive flips the active flag, slots are kept as they are
func ToggleDayActive(week *domain.WeekSchedule, day domain.DayOfWeek) error {
	ds, err := dayAt(week, day)
	if err != nil {
		return err
	}
	ds.Active = !ds.Active
	return nil
}

func dayAt(week *domain.WeekSchedule, day domain.DayOfWeek) (*domain.DaySchedule, error) {
	if week == nil {
		return nil, fmt.Errorf("%w: nil week", ErrIndexOutOfRange)
	}
	ds := week.Day(day)
	if ds == nil {
		return nil, fmt.Errorf("%w: day %d", ErrIndexOutOfRange, int(day))
	}
	return ds, nil
}

func slotAt(week *domain.WeekSchedule, day domain.DayOfWeek, slot int) (*domain.DaySchedule, error) {
	ds, err := dayAt(week, day)
	if err != nil {
		return nil, err
	}
	if slot < 0 || slot >= len(ds.Slots) {
		return nil, fmt.Errorf("%w: slot %d on %s (%d slots)", ErrIndexOutOfRange, slot, day, len(ds.Slots))
	}
	return ds, nil
}
