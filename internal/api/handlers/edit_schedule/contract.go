package edit_schedule

import (
	"context"

	editSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/edit_schedule"
)

type EditScheduleUseCase interface {
	Execute(ctx context.Context, req *editSchedule.Request) (*editSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
