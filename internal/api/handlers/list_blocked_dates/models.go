package list_blocked_dates

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocked_dates/models"
)

// ToServiceRequest формирует фильтр из query параметров from и to (YYYY-MM-DD, опционально)
func ToServiceRequest(mentorID int64, fromStr, toStr string) (*models.ListRequest, error) {
	req := &models.ListRequest{MentorID: mentorID}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.To = to
	}

	return req, nil
}
