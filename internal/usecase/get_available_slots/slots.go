package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// openSlots возвращает слоты дня, которые можно предложить на дату
// Если дата - сегодня, отбрасываются слоты, начинающиеся раньше now + minNoticeMinutes
func openSlots(day domain.DaySchedule, date, now time.Time, minNoticeMinutes int) []domain.OpenSlot {
	bookable := day.BookableSlots()
	result := make([]domain.OpenSlot, 0, len(bookable))

	// Минимальное время начала в минутах от полуночи, может быть больше 24:00
	earliest := 0
	if isSameDay(date, now) {
		earliest = types.NewTimeOfDayFromTime(now).Minutes() + minNoticeMinutes
	}

	for _, slot := range bookable {
		if slot.Start.Minutes() < earliest {
			continue
		}
		result = append(result, domain.NewOpenSlot(date, slot))
	}

	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
