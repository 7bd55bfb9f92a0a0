package create_blocked_date

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocked_dates/models"
)

type BlockedDatesService interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.BlockedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
