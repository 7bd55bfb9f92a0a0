package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ErrInvalidConfig возвращается, если конфигурация расписания некорректна
var ErrInvalidConfig = errors.New("invalid schedule config")

// ScheduleConfig rules a mentor's week must satisfy.
// Supplied by the caller on every edit and may change between edits.
type ScheduleConfig struct {
	BufferMinutes     int             `json:"bufferMinutes" toml:"buffer_minutes" yaml:"bufferMinutes"`
	MaxSlotsPerDay    int             `json:"maxSlotsPerDay" toml:"max_slots_per_day" yaml:"maxSlotsPerDay"`
	MinSessionMinutes int             `json:"minSessionMinutes" toml:"min_session_minutes" yaml:"minSessionMinutes"`
	BusinessStart     types.TimeOfDay `json:"businessStart" toml:"business_start" yaml:"businessStart"`
	BusinessEnd       types.TimeOfDay `json:"businessEnd" toml:"business_end" yaml:"businessEnd"`
}

// DefaultScheduleConfig returns the platform defaults
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		BufferMinutes:     DefaultBufferMinutes,
		MaxSlotsPerDay:    DefaultMaxSlotsPerDay,
		MinSessionMinutes: DefaultMinSessionMinutes,
		BusinessStart:     types.TimeOfDay(DefaultBusinessStartMinutes),
		BusinessEnd:       types.TimeOfDay(DefaultBusinessEndMinutes),
	}
}

// Validate checks structural sanity of the config
func (c ScheduleConfig) Validate() error {
	if c.BufferMinutes < 0 {
		return fmt.Errorf("%w: bufferMinutes must be >= 0", ErrInvalidConfig)
	}
	if c.MaxSlotsPerDay < 1 {
		return fmt.Errorf("%w: maxSlotsPerDay must be >= 1", ErrInvalidConfig)
	}
	if c.MinSessionMinutes < 1 {
		return fmt.Errorf("%w: minSessionMinutes must be >= 1", ErrInvalidConfig)
	}
	if err := c.BusinessStart.Validate(); err != nil {
		return fmt.Errorf("%w: businessStart: %v", ErrInvalidConfig, err)
	}
	if err := c.BusinessEnd.Validate(); err != nil {
		return fmt.Errorf("%w: businessEnd: %v", ErrInvalidConfig, err)
	}
	if !c.BusinessStart.IsBefore(c.BusinessEnd) {
		return fmt.Errorf("%w: businessStart %s must be before businessEnd %s",
			ErrInvalidConfig, c.BusinessStart, c.BusinessEnd)
	}
	return nil
}

// MentorScheduleConfig конфигурация расписания, сохраненная для ментора
type MentorScheduleConfig struct {
	MentorID  int64
	Config    ScheduleConfig
	CreatedAt time.Time
	UpdatedAt time.Time
}
