package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinutesPerDay количество минут в сутках, 24:00 - допустимая верхняя граница
	MinutesPerDay = 24 * 60

	// Layout формат времени HH:MM
	Layout = "15:04"
)

var (
	// ErrInvalidTimeFormat возвращается, если строка не в формате HH:MM
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, если время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time of day out of range")
)

// TimeOfDay время суток с точностью до минуты (минуты от полуночи).
// Не содержит даты и часового пояса, поэтому сравнение и арифметика
// не зависят от перехода на летнее время и смены месяца.
type TimeOfDay int

// NewTimeOfDay создает время суток из часов и минут
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrTimeOutOfRange, hour, minute)
	}
	t := TimeOfDay(hour*60 + minute)
	if err := t.Validate(); err != nil {
		return 0, err
	}
	return t, nil
}

// NewTimeOfDayFromTime берет часы и минуты из time.Time (секунды отбрасываются)
func NewTimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// ParseTimeOfDay парсит "HH:MM" или "HH:MM:SS" (формат PostgreSQL TIME).
// "24:00" допустимо и означает конец суток.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	values := make([]int, len(parts))
	for i, part := range parts {
		if len(part) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		values[i] = v
	}

	if len(values) == 3 && (values[2] < 0 || values[2] > 59) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return NewTimeOfDay(values[0], values[1])
}

// MustParseTimeOfDay как ParseTimeOfDay, но паникует при ошибке.
// Используется для констант и в тестах.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour возвращает часы
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute возвращает минуты в пределах часа
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// String возвращает время в формате HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Validate проверяет, что время в пределах [00:00, 24:00]
func (t TimeOfDay) Validate() error {
	if t < 0 || t > MinutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, int(t))
	}
	return nil
}

// AddMinutes возвращает время, сдвинутое на n минут.
// Выход за пределы суток - ошибка, перенос на следующий день не выполняется.
func (t TimeOfDay) AddMinutes(n int) (TimeOfDay, error) {
	result := t + TimeOfDay(n)
	if err := result.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %s %+d min", ErrTimeOutOfRange, t, n)
	}
	return result, nil
}

// Sub возвращает разницу t - u в минутах
func (t TimeOfDay) Sub(u TimeOfDay) int {
	return int(t - u)
}

// IsBefore проверяет, что t строго раньше u
func (t TimeOfDay) IsBefore(u TimeOfDay) bool {
	return t < u
}

// IsAfter проверяет, что t строго позже u
func (t TimeOfDay) IsAfter(u TimeOfDay) bool {
	return t > u
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON парсит строку "HH:MM"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText реализует encoding.TextMarshaler (используется toml)
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML сериализует время как строку "HH:MM"
func (t TimeOfDay) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML парсит скаляр "HH:MM"
func (t *TimeOfDay) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d", ErrInvalidTimeFormat, value.Line)
	}
	parsed, err := ParseTimeOfDay(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer, в БД хранится как TIME
func (t TimeOfDay) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t.String(), nil
}

// Scan реализует sql.Scanner.
// lib/pq возвращает TIME как []byte "HH:MM:SS".
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case time.Time:
		*t = NewTimeOfDayFromTime(v)
	case int64:
		parsed := TimeOfDay(v)
		if err := parsed.Validate(); err != nil {
			return err
		}
		*t = parsed
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}
	return nil
}
