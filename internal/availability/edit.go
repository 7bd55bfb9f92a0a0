package availability

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Op edit operation name
type Op string

const (
	OpAdd          Op = "add"
	OpRemove       Op = "remove"
	OpUpdate       Op = "update"
	OpMove         Op = "move"
	OpToggle       Op = "toggle"
	OpSetAvailable Op = "set_available"
)

// Edit a single user edit of a week. Only the fields used by Op are read.
type Edit struct {
	Op        Op
	Day       domain.DayOfWeek
	Slot      int
	Field     SlotField       // update
	Value     types.TimeOfDay // update
	Start     types.TimeOfDay // move
	End       types.TimeOfDay // move
	Available bool            // set_available
}

// Apply dispatches e to the matching editor operation
func Apply(week *domain.WeekSchedule, cfg domain.ScheduleConfig, e Edit) error {
	switch e.Op {
	case OpAdd:
		_, err := AddSlot(week, cfg, e.Day)
		return err
	case OpRemove:
		return RemoveSlot(week, e.Day, e.Slot)
	case OpUpdate:
		return UpdateSlot(week, cfg, e.Day, e.Slot, e.Field, e.Value)
	case OpMove:
		return MoveSlot(week, cfg, e.Day, e.Slot, e.Start, e.End)
	case OpToggle:
		return ToggleDayActive(week, e.Day)
	case OpSetAvailable:
		return SetSlotAvailable(week, e.Day, e.Slot, e.Available)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEdit, e.Op)
	}
}
