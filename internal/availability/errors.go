package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidRange возвращается, если конец слота не позже начала
	ErrInvalidRange = errors.New("availability: end time must be after start time")

	// ErrDurationTooShort возвращается, если слот короче минимальной сессии
	ErrDurationTooShort = errors.New("availability: slot is shorter than the minimum session")

	// ErrOutsideBusinessHours возвращается, если слот выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("availability: slot is outside business hours")

	// ErrSlotOverlap возвращается, если слот пересекается с другим слотом с учетом буфера
	ErrSlotOverlap = errors.New("availability: slot overlaps another slot or its buffer")

	// ErrCapacityExceeded возвращается, если в дне уже максимальное количество слотов
	ErrCapacityExceeded = errors.New("availability: maximum slots per day reached")

	// ErrEmptyActiveDay возвращается при фиксации расписания, если активный день пуст
	ErrEmptyActiveDay = errors.New("availability: active day has no slots")

	// ErrIndexOutOfRange возвращается при обращении к несуществующему дню или слоту
	ErrIndexOutOfRange = errors.New("availability: day or slot index out of range")

	// ErrInvalidField возвращается при попытке изменить неизвестное поле слота
	ErrInvalidField = errors.New("availability: unknown slot field")

	// ErrUnknownEdit возвращается для неизвестной операции редактирования
	ErrUnknownEdit = errors.New("availability: unknown edit operation")
)

// Error kinds, stable codes for API responses and metrics
const (
	KindInvalidRange         = "invalid_range"
	KindDurationTooShort     = "duration_too_short"
	KindOutsideBusinessHours = "outside_business_hours"
	KindSlotOverlap          = "slot_overlap"
	KindCapacityExceeded     = "capacity_exceeded"
	KindEmptyActiveDay       = "empty_active_day"
	KindIndexOutOfRange      = "index_out_of_range"
	KindInvalidField         = "invalid_field"
	KindUnknownEdit          = "unknown_edit"
	KindInvalidConfig        = "invalid_config"
	KindInvalidDay           = "invalid_day"
)

// OverlapError names the pair of slots that violate the buffer rule
type OverlapError struct {
	Day           domain.DayOfWeek
	Slot          domain.Slot // проверяемый слот
	Other         domain.Slot
	OtherIndex    int
	GapMinutes    int // отрицательный, если интервалы пересекаются
	BufferMinutes int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%v: %s %s-%s conflicts with %s-%s (gap %d min, buffer %d min)",
		ErrSlotOverlap, e.Day,
		e.Slot.Start, e.Slot.End,
		e.Other.Start, e.Other.End,
		e.GapMinutes, e.BufferMinutes)
}

func (e *OverlapError) Unwrap() error {
	return ErrSlotOverlap
}

// EmptyDayError names the active day that has no slots
type EmptyDayError struct {
	Day domain.DayOfWeek
}

func (e *EmptyDayError) Error() string {
	return fmt.Sprintf("%v: %s", ErrEmptyActiveDay, e.Day)
}

func (e *EmptyDayError) Unwrap() error {
	return ErrEmptyActiveDay
}

// Kind maps a validation error to its stable code.
// Returns "" for nil and for errors that are not validation failures.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRange):
		return KindInvalidRange
	case errors.Is(err, ErrDurationTooShort):
		return KindDurationTooShort
	case errors.Is(err, ErrOutsideBusinessHours):
		return KindOutsideBusinessHours
	case errors.Is(err, ErrSlotOverlap):
		return KindSlotOverlap
	case errors.Is(err, ErrCapacityExceeded):
		return KindCapacityExceeded
	case errors.Is(err, ErrEmptyActiveDay):
		return KindEmptyActiveDay
	case errors.Is(err, ErrIndexOutOfRange):
		return KindIndexOutOfRange
	case errors.Is(err, ErrInvalidField):
		return KindInvalidField
	case errors.Is(err, ErrUnknownEdit):
		return KindUnknownEdit
	case errors.Is(err, domain.ErrInvalidConfig):
		return KindInvalidConfig
	case errors.Is(err, domain.ErrInvalidDay):
		return KindInvalidDay
	default:
		return ""
	}
}

// IsValidationError reports whether err is a rule violation
// that the caller should show to the user
func IsValidationError(err error) bool {
	return Kind(err) != ""
}
