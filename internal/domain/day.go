package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDay возвращается при некорректном дне недели
var ErrInvalidDay = errors.New("invalid day of week")

// DayOfWeek day of week, Monday = 0 ... Sunday = 6
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek number of days in a WeekSchedule
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// AllDays returns days in week order
func AllDays() []DayOfWeek {
	return []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// IsValid reports whether d is Monday..Sunday
func (d DayOfWeek) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the English day name
func (d DayOfWeek) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDayOfWeek parses a day name, case-insensitive, full or three-letter form
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, dayName := range dayNames {
		lower := strings.ToLower(dayName)
		if name == lower || name == lower[:3] {
			return DayOfWeek(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// DayOfWeekFromWeekday converts time.Weekday (Sunday = 0) to DayOfWeek (Monday = 0)
func DayOfWeekFromWeekday(w time.Weekday) DayOfWeek {
	return DayOfWeek((int(w) + 6) % 7)
}

// MarshalJSON encodes the day as its name
func (d DayOfWeek) MarshalJSON() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a day name or an index 0..6
func (d *DayOfWeek) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseDayOfWeek(name)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}

	var idx int
	if err := json.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDay, string(data))
	}
	if !DayOfWeek(idx).IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidDay, idx)
	}
	*d = DayOfWeek(idx)
	return nil
}
