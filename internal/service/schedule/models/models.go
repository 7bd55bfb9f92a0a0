package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// SlotDTO слот расписания
type SlotDTO struct {
	Start           types.TimeOfDay `json:"start"`
	End             types.TimeOfDay `json:"end"`
	Available       bool            `json:"available"`
	DurationMinutes int             `json:"durationMinutes"`
}

// DayDTO день недели расписания
type DayDTO struct {
	Day    domain.DayOfWeek `json:"day"`
	Active bool             `json:"active"`
	Slots  []SlotDTO        `json:"slots"`
}

// ScheduleResponse недельное расписание ментора
type ScheduleResponse struct {
	MentorID    int64                 `json:"mentorId"`
	Status      domain.ScheduleStatus `json:"status"`
	CommittedAt *time.Time            `json:"committedAt,omitempty"`
	UpdatedAt   *time.Time            `json:"updatedAt,omitempty"`
	TotalSlots  int                   `json:"totalSlots"`
	Days        []DayDTO              `json:"days"`
}

// FromDomain конвертирует domain модель в DTO
func FromDomain(s *domain.MentorSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	week := s.Week
	if week == nil {
		week = domain.NewWeekSchedule()
	}

	resp := &ScheduleResponse{
		MentorID:    s.MentorID,
		Status:      s.Status,
		CommittedAt: s.CommittedAt,
		TotalSlots:  week.TotalSlots(),
		Days:        make([]DayDTO, 0, domain.DaysPerWeek),
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	for _, day := range domain.AllDays() {
		ds := week.Day(day)
		slots := make([]SlotDTO, 0, len(ds.Slots))
		for _, slot := range ds.Slots {
			slots = append(slots, SlotDTO{
				Start:           slot.Start,
				End:             slot.End,
				Available:       slot.Available,
				DurationMinutes: slot.Duration(),
			})
		}
		resp.Days = append(resp.Days, DayDTO{
			Day:    day,
			Active: ds.Active,
			Slots:  slots,
		})
	}

	return resp
}
