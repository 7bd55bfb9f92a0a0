package replace_schedule

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// SlotRequest слот в теле запроса, available по умолчанию true
type SlotRequest struct {
	Start     types.TimeOfDay `json:"start"`
	End       types.TimeOfDay `json:"end"`
	Available *bool           `json:"available,omitempty"`
}

// DayRequest день в теле запроса
type DayRequest struct {
	Day    domain.DayOfWeek `json:"day"`
	Active bool             `json:"active"`
	Slots  []SlotRequest    `json:"slots"`
}

// ReplaceScheduleRequest неделя целиком. Не перечисленные дни неактивны и пусты.
type ReplaceScheduleRequest struct {
	Days []DayRequest `json:"days"`
}

// ToWeek собирает неделю, повтор дня считается ошибкой
func (r *ReplaceScheduleRequest) ToWeek() (*domain.WeekSchedule, error) {
	week := domain.NewWeekSchedule()
	for i := range week.Days {
		week.Days[i].Active = false
	}

	seen := make(map[domain.DayOfWeek]bool, domain.DaysPerWeek)
	for _, d := range r.Days {
		if seen[d.Day] {
			return nil, fmt.Errorf("day %s listed twice", d.Day)
		}
		seen[d.Day] = true

		ds := week.Day(d.Day)
		if ds == nil {
			return nil, fmt.Errorf("%w: %d", domain.ErrInvalidDay, int(d.Day))
		}
		ds.Active = d.Active
		for _, s := range d.Slots {
			ds.Slots = append(ds.Slots, domain.Slot{
				Start:     s.Start,
				End:       s.End,
				Available: ptr.ValueOr(s.Available, true),
			})
		}
	}

	return week, nil
}
