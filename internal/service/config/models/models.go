package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации расписания
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	UserID            int64            `json:"-"`
	MentorID          int64            `json:"-"`
	BufferMinutes     *int             `json:"bufferMinutes,omitempty"`
	MaxSlotsPerDay    *int             `json:"maxSlotsPerDay,omitempty"`
	MinSessionMinutes *int             `json:"minSessionMinutes,omitempty"`
	BusinessStart     *types.TimeOfDay `json:"businessStart,omitempty"`
	BusinessEnd       *types.TimeOfDay `json:"businessEnd,omitempty"`
}

// IsEmpty true, если в запросе нет ни одного поля
func (r *UpdateConfigRequest) IsEmpty() bool {
	return r.BufferMinutes == nil && r.MaxSlotsPerDay == nil && r.MinSessionMinutes == nil &&
		r.BusinessStart == nil && r.BusinessEnd == nil
}

// ApplyToConfig применяет обновления к конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.ScheduleConfig) {
	if r.BufferMinutes != nil {
		config.BufferMinutes = *r.BufferMinutes
	}
	if r.MaxSlotsPerDay != nil {
		config.MaxSlotsPerDay = *r.MaxSlotsPerDay
	}
	if r.MinSessionMinutes != nil {
		config.MinSessionMinutes = *r.MinSessionMinutes
	}
	if r.BusinessStart != nil {
		config.BusinessStart = *r.BusinessStart
	}
	if r.BusinessEnd != nil {
		config.BusinessEnd = *r.BusinessEnd
	}
}

// Response модели

// ConfigResponse конфигурация расписания ментора
type ConfigResponse struct {
	MentorID           int64           `json:"mentorId"`
	BufferMinutes      int             `json:"bufferMinutes"`
	MaxSlotsPerDay     int             `json:"maxSlotsPerDay"`
	MinSessionMinutes  int             `json:"minSessionMinutes"`
	BusinessStart      types.TimeOfDay `json:"businessStart"`
	BusinessEnd        types.TimeOfDay `json:"businessEnd"`
	DefaultSlotMinutes int             `json:"defaultSlotMinutes"`
	IsDefault          bool            `json:"isDefault"` // у ментора нет своей конфигурации
	UpdatedAt          *time.Time      `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromScheduleConfig конвертирует конфигурацию в DTO
func FromScheduleConfig(mentorID int64, c domain.ScheduleConfig) *ConfigResponse {
	return &ConfigResponse{
		MentorID:           mentorID,
		BufferMinutes:      c.BufferMinutes,
		MaxSlotsPerDay:     c.MaxSlotsPerDay,
		MinSessionMinutes:  c.MinSessionMinutes,
		BusinessStart:      c.BusinessStart,
		BusinessEnd:        c.BusinessEnd,
		DefaultSlotMinutes: availability.DefaultSlotLength(c),
	}
}

// FromDomainConfig конвертирует сохраненную конфигурацию в DTO
func FromDomainConfig(c *domain.MentorScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := FromScheduleConfig(c.MentorID, c.Config)
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
