package delete_blocked_date

import "context"

type BlockedDatesService interface {
	Delete(ctx context.Context, mentorID, id, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
