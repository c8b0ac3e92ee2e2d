package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Availability maps a weekday abbreviation ("Mon".."Sun") to a
// [start, end] pair in "HH:MM" 24h format. Stored as a JSON column.
type Availability map[string][2]string

// Value implements the driver.Valuer interface
func (a Availability) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (a *Availability) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal Availability: unsupported type %T", value)
	}

	return json.Unmarshal(data, a)
}

// Validate checks that every window parses as "HH:MM" and starts before it ends.
func (a Availability) Validate() error {
	for day, window := range a {
		start, err := time.Parse("15:04", window[0])
		if err != nil {
			return fmt.Errorf("invalid start time for %s: %s", day, window[0])
		}
		end, err := time.Parse("15:04", window[1])
		if err != nil {
			return fmt.Errorf("invalid end time for %s: %s", day, window[1])
		}
		if !start.Before(end) {
			return fmt.Errorf("start time must be before end time for %s", day)
		}
	}
	return nil
}

// Covers reports whether t falls inside the provider's window for that weekday.
// An empty availability map means the provider takes bookings at any time.
func (a Availability) Covers(t time.Time) bool {
	if len(a) == 0 {
		return true
	}

	window, ok := a[t.Weekday().String()[:3]]
	if !ok {
		return false
	}

	start, err := time.Parse("15:04", window[0])
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", window[1])
	if err != nil {
		return false
	}

	minutes := t.Hour()*60 + t.Minute()
	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()

	return minutes >= startMinutes && minutes <= endMinutes
}
