package reset_schedule_config

import "context"

type ConfigService interface {
	Reset(ctx context.Context, mentorID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
