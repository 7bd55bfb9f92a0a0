package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Options ограничения выдачи слотов
type Options struct {
	MinNoticeMinutes int // слоты сегодняшнего дня, начинающиеся раньше now+MinNotice, не показываются
	MaxAdvanceDays   int // 0 - domain.MaxAdvanceDays
}

// Request модель запроса на получение доступных слотов
type Request struct {
	MentorID int64     // ID ментора
	Date     time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	MentorID  int64
	Date      time.Time
	Day       domain.DayOfWeek
	Blocked   bool // дата заблокирована ментором
	DayActive bool
	Slots     []domain.OpenSlot
}
