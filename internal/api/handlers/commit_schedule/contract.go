package commit_schedule

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	commitSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/commit_schedule"
)

type CommitScheduleUseCase interface {
	Execute(ctx context.Context, req *commitSchedule.Request) (*domain.MentorSchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
