package edit_schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var errMissingField = errors.New("missing field")

// EditRequest одна правка расписания
//
//	{"op": "add", "day": "Monday"}
//	{"op": "update", "day": "Monday", "slot": 0, "field": "end", "value": "11:30"}
//	{"op": "move", "day": "Monday", "slot": 0, "start": "12:00", "end": "13:00"}
//	{"op": "set_available", "day": "Monday", "slot": 0, "available": false}
type EditRequest struct {
	Op        availability.Op   `json:"op"`
	Day       *domain.DayOfWeek `json:"day"`
	Slot      int               `json:"slot"`
	Field     string            `json:"field,omitempty"`
	Value     *types.TimeOfDay  `json:"value,omitempty"`
	Start     *types.TimeOfDay  `json:"start,omitempty"`
	End       *types.TimeOfDay  `json:"end,omitempty"`
	Available *bool             `json:"available,omitempty"`
}

// ToEdit проверяет, что для операции переданы нужные поля
func (r *EditRequest) ToEdit() (availability.Edit, error) {
	if r.Day == nil {
		return availability.Edit{}, fmt.Errorf("%w: day", errMissingField)
	}

	e := availability.Edit{
		Op:   r.Op,
		Day:  *r.Day,
		Slot: r.Slot,
	}

	switch r.Op {
	case availability.OpUpdate:
		field, err := availability.ParseSlotField(r.Field)
		if err != nil {
			return availability.Edit{}, err
		}
		if r.Value == nil {
			return availability.Edit{}, fmt.Errorf("%w: value", errMissingField)
		}
		e.Field = field
		e.Value = *r.Value
	case availability.OpMove:
		if r.Start == nil || r.End == nil {
			return availability.Edit{}, fmt.Errorf("%w: start and end", errMissingField)
		}
		e.Start = *r.Start
		e.End = *r.End
	case availability.OpSetAvailable:
		if r.Available == nil {
			return availability.Edit{}, fmt.Errorf("%w: available", errMissingField)
		}
		e.Available = *r.Available
	}

	return e, nil
}

// EditResponse расписание после правки
type EditResponse struct {
	Schedule *models.ScheduleResponse `json:"schedule"`
	Added    *models.SlotDTO          `json:"addedSlot,omitempty"`
}
