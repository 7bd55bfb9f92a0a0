package config

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetByMentor(ctx context.Context, mentorID int64) (*domain.MentorScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.MentorScheduleConfig) (*domain.MentorScheduleConfig, error)
	Delete(ctx context.Context, mentorID int64) error
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
