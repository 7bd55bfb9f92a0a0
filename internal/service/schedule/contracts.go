package schedule

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Get(ctx context.Context, mentorID int64) (*domain.MentorSchedule, error)
}

// AccessChecker проверка, что пользователь управляет расписанием ментора
type AccessChecker interface {
	CheckOwner(ctx context.Context, userID, mentorID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
