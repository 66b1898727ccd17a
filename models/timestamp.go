package models

import (
	"encoding/json"
	"time"
)

// Timestamp tolerates the date shapes the backend is known to emit: an
// ISO string, a numeric epoch in milliseconds, or a Spring-style
// [year, month, day, hour, minute, second] array with a 1-based month.
// Anything unrecognized leaves the value unset and renders as "N/A".
type Timestamp struct {
	Time  time.Time
	Valid bool
}

var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time, t.Valid = time.Time{}, false
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil || s == "" {
			return nil
		}
		for _, layout := range stringLayouts {
			if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				t.Time, t.Valid = parsed, true
				return nil
			}
		}
	case '[':
		var parts []float64
		if err := json.Unmarshal(data, &parts); err != nil || len(parts) < 3 {
			return nil
		}
		// Pad hour/minute/second; extra elements (nanoseconds) are ignored.
		for len(parts) < 6 {
			parts = append(parts, 0)
		}
		t.Time = time.Date(int(parts[0]), time.Month(parts[1]), int(parts[2]),
			int(parts[3]), int(parts[4]), int(parts[5]), 0, time.Local)
		t.Valid = true
	default:
		var ms float64
		if err := json.Unmarshal(data, &ms); err != nil {
			return nil
		}
		t.Time, t.Valid = time.UnixMilli(int64(ms)).Local(), true
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Format renders the timestamp for display, "N/A" when absent.
func (t Timestamp) Format() string {
	if !t.Valid {
		return "N/A"
	}
	return t.Time.Format("Jan 2, 2006, 03:04 PM")
}
