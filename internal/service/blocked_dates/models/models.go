package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// CreateRequest запрос на блокировку даты
type CreateRequest struct {
	UserID   int64
	MentorID int64
	Date     time.Time
	Reason   string
}

// ListRequest фильтр списка заблокированных дат, нулевая граница не ограничивает
type ListRequest struct {
	MentorID int64
	From     time.Time
	To       time.Time
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	ID        int64     `json:"id"`
	MentorID  int64     `json:"mentorId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedDateListResponse список заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// FromDomain конвертирует domain модель в DTO
func FromDomain(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}
	return &BlockedDateResponse{
		ID:        b.ID,
		MentorID:  b.MentorID,
		Date:      b.Date.Format(domain.DateFormat),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainList конвертирует список domain моделей в DTO
func FromDomainList(list []*domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{
		BlockedDates: make([]BlockedDateResponse, 0, len(list)),
	}
	for _, b := range list {
		if item := FromDomain(b); item != nil {
			resp.BlockedDates = append(resp.BlockedDates, *item)
		}
	}
	return resp
}
