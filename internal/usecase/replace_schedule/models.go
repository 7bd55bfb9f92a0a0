package replace_schedule

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// OpReplace метка операции для метрик
const OpReplace = "replace"

// Request модель запроса на замену недельного расписания целиком
type Request struct {
	UserID   int64
	MentorID int64
	Week     *domain.WeekSchedule
}
