package domain

// Default schedule configuration values
const (
	DefaultBufferMinutes        = 15
	DefaultMaxSlotsPerDay       = 5
	DefaultMinSessionMinutes    = 45
	DefaultBusinessStartMinutes = 9 * 60  // 09:00
	DefaultBusinessEndMinutes   = 21 * 60 // 21:00

	// DefaultSlotLengthMinutes длина слота, который добавляется без явного времени
	DefaultSlotLengthMinutes = 60
)

// Business validation constants
const (
	MinBufferMinutes      = 0
	MaxBufferMinutes      = 240
	MinSlotsPerDay        = 1
	MaxSlotsPerDay        = 24
	MinSessionMinutes     = 5
	MaxSessionMinutes     = 480 // 8 hours
	MaxBlockReasonLength  = 500
	MaxAdvanceDays        = 90
	DefaultMinNoticeHours = 2
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
