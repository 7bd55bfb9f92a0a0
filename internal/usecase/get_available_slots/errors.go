package get_available_slots

import "errors"

var (
	// ErrScheduleNotCommitted возвращается, если у ментора нет опубликованного расписания
	ErrScheduleNotCommitted = errors.New("mentor has no committed schedule")

	// ErrInvalidDate возвращается, если дата в прошлом
	ErrInvalidDate = errors.New("date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата дальше допустимого горизонта
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
