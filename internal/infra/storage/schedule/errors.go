package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у ментора нет сохраненного расписания
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrCorruptedData возвращается, если в БД день недели вне диапазона 0..6
	ErrCorruptedData = errors.New("schedule.repository: corrupted schedule data")
)
