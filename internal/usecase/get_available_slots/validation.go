package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше maxAdvanceDays от сегодня
func validateDate(requestDate time.Time, now time.Time, maxAdvanceDays int) error {
	date := domain.DateOnly(requestDate)
	today := domain.DateOnly(now)

	if date.Before(today) {
		return ErrInvalidDate
	}

	if date.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return fmt.Errorf("%w: slots are published %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}
