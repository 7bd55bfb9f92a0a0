package replace_schedule

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	replaceSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/replace_schedule"
)

type ReplaceScheduleUseCase interface {
	Execute(ctx context.Context, req *replaceSchedule.Request) (*domain.MentorSchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
