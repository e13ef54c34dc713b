package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONDate wraps time.Time so request payloads can send dates either as
// plain dates ("2026-09-14") or full RFC3339 timestamps. Ship agents'
// systems are not consistent about this.
type JSONDate time.Time

func (jd *JSONDate) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*jd = JSONDate(time.Time{})
		return nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*jd = JSONDate(t)
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		*jd = JSONDate(t)
		return nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		*jd = JSONDate(t)
		return nil
	}
	return fmt.Errorf("cannot parse %q as date", s)
}

func (jd JSONDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(jd).Format("2006-01-02"))
}

// Value implements driver.Valuer
func (jd JSONDate) Value() (driver.Value, error) {
	return time.Time(jd), nil
}

// Scan implements sql.Scanner
func (jd *JSONDate) Scan(value interface{}) error {
	if value == nil {
		*jd = JSONDate(time.Time{})
		return nil
	}
	if t, ok := value.(time.Time); ok {
		*jd = JSONDate(t)
		return nil
	}
	return fmt.Errorf("cannot scan %T into JSONDate", value)
}

// Time returns the underlying time.Time, or nil when zero.
func (jd *JSONDate) Time() *time.Time {
	if jd == nil {
		return nil
	}
	t := time.Time(*jd)
	if t.IsZero() {
		return nil
	}
	return &t
}
