package create_blocked_date

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocked_dates/models"
)

// CreateBlockedDateRequest тело запроса на блокировку даты
type CreateBlockedDateRequest struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Reason string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *CreateBlockedDateRequest) ToServiceRequest(userID, mentorID int64) (*models.CreateRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateRequest{
		UserID:   userID,
		MentorID: mentorID,
		Date:     date,
		Reason:   r.Reason,
	}, nil
}
