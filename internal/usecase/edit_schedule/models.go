package edit_schedule

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на редактирование расписания
type Request struct {
	UserID   int64
	MentorID int64
	Edit     availability.Edit
}

// Response модель ответа
type Response struct {
	Schedule *domain.MentorSchedule
	Added    *domain.Slot // заполнен для операции add
}
