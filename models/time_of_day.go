package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay stores a wall-clock time as minutes since midnight.
// Appointments never cross midnight, so a single day's worth of
// minutes is enough.
type TimeOfDay int

const MinutesPerDay = 24 * 60

// NewTimeOfDay builds a TimeOfDay from hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay accepts "15:04" or "15:04:05" (seconds are discarded).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute, second int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &hour, &minute, &second); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return NewTimeOfDay(hour, minute), nil
}

// Add returns the time shifted by d, capped at the end of the day.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	shifted := int(t) + int(d/time.Minute)
	if shifted > MinutesPerDay {
		shifted = MinutesPerDay
	}
	return TimeOfDay(shifted)
}

// String renders "15:04:05" to match the time format used in
// validation messages.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", int(t)/60, int(t)%60)
}

// Short renders "15:04".
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Value implements the driver.Valuer interface
func (t TimeOfDay) Value() (driver.Value, error) {
	return int64(t), nil
}

// Scan implements the sql.Scanner interface
func (t *TimeOfDay) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TimeOfDay(v)
	case int:
		*t = TimeOfDay(v)
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
	default:
		return fmt.Errorf("failed to scan TimeOfDay: unsupported type %T", value)
	}
	return nil
}

// MarshalJSON renders the time as "15:04".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Short())
}

// UnmarshalJSON accepts "15:04" or "15:04:05".
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
