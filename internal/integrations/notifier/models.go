package notifier

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// EventScheduleCommitted тип события о фиксации расписания
const EventScheduleCommitted = "schedule.committed"

// ScheduleCommitted полезная нагрузка события
type ScheduleCommitted struct {
	MentorID    int64                `json:"mentor_id"`
	CommittedAt time.Time            `json:"committed_at"`
	TotalSlots  int                  `json:"total_slots"`
	Week        *domain.WeekSchedule `json:"week"`
}

// message конверт, публикуемый в NATS
type message struct {
	EventType string      `json:"event_type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
	MessageID string      `json:"message_id"`
}
