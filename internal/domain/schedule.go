package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ScheduleStatus статус недельного расписания ментора
type ScheduleStatus string

const (
	// StatusDraft расписание редактируется, не доступно для записи менти
	StatusDraft ScheduleStatus = "draft"
	// StatusCommitted расписание прошло полную проверку и опубликовано
	StatusCommitted ScheduleStatus = "committed"
)

// Slot a single bookable interval within a day
type Slot struct {
	Start     types.TimeOfDay `json:"start" yaml:"start"`
	End       types.TimeOfDay `json:"end" yaml:"end"`
	Available bool            `json:"available" yaml:"available"`
}

// Duration returns the slot length in minutes
func (s Slot) Duration() int {
	return s.End.Sub(s.Start)
}

// DaySchedule slots of one day, ordered by start time.
// An inactive day keeps its slots but offers no bookable time.
type DaySchedule struct {
	Day    DayOfWeek `json:"day" yaml:"day"`
	Slots  []Slot    `json:"slots" yaml:"slots"`
	Active bool      `json:"active" yaml:"active"`
}

// BookableSlots returns slots that are offered to mentees
func (d DaySchedule) BookableSlots() []Slot {
	if !d.Active {
		return nil
	}
	result := make([]Slot, 0, len(d.Slots))
	for _, s := range d.Slots {
		if s.Available {
			result = append(result, s)
		}
	}
	return result
}

// SortSlots orders slots by start time; equal starts keep their relative order
func (d *DaySchedule) SortSlots() {
	sort.SliceStable(d.Slots, func(i, j int) bool {
		return d.Slots[i].Start.IsBefore(d.Slots[j].Start)
	})
}

// WeekSchedule exactly seven days indexed by DayOfWeek
type WeekSchedule struct {
	Days [DaysPerWeek]DaySchedule `json:"days"`
}

// NewWeekSchedule returns a week with every day active and no slots
func NewWeekSchedule() *WeekSchedule {
	w := &WeekSchedule{}
	for _, day := range AllDays() {
		w.Days[day] = DaySchedule{
			Day:    day,
			Slots:  []Slot{},
			Active: true,
		}
	}
	return w
}

// Day returns the schedule of the given day, nil for an invalid day
func (w *WeekSchedule) Day(day DayOfWeek) *DaySchedule {
	if !day.IsValid() {
		return nil
	}
	return &w.Days[day]
}

// Clone deep-copies the week
func (w *WeekSchedule) Clone() *WeekSchedule {
	c := &WeekSchedule{}
	for i, d := range w.Days {
		slots := make([]Slot, len(d.Slots))
		copy(slots, d.Slots)
		c.Days[i] = DaySchedule{
			Day:    d.Day,
			Slots:  slots,
			Active: d.Active,
		}
	}
	return c
}

// TotalSlots counts slots across all days, active or not
func (w *WeekSchedule) TotalSlots() int {
	total := 0
	for _, d := range w.Days {
		total += len(d.Slots)
	}
	return total
}

// MentorSchedule сохраненное расписание ментора
type MentorSchedule struct {
	MentorID    int64
	Week        *WeekSchedule
	Status      ScheduleStatus
	CommittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMentorSchedule пустой черновик расписания
func NewMentorSchedule(mentorID int64) *MentorSchedule {
	return &MentorSchedule{
		MentorID: mentorID,
		Week:     NewWeekSchedule(),
		Status:   StatusDraft,
	}
}

// IsCommitted returns true if the schedule passed the commit gate and was not edited since
func (s *MentorSchedule) IsCommitted() bool {
	return s.Status == StatusCommitted
}
