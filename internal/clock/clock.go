// Package clock resolves the calendar day a daily record belongs to.
package clock

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"
)

const dayKeyLayout = "2006-01-02"

// DayKey identifies a calendar day as YYYY-MM-DD. Two keys for the same day
// compare equal with ==.
type DayKey string

// ParseDayKey validates s as a YYYY-MM-DD date.
func ParseDayKey(s string) (DayKey, error) {
	if _, err := time.Parse(dayKeyLayout, s); err != nil {
		return "", fmt.Errorf("invalid day %q: expected YYYY-MM-DD", s)
	}
	return DayKey(s), nil
}

// KeyOf returns the day key of t in t's own location.
func KeyOf(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

// String returns the key as YYYY-MM-DD.
func (k DayKey) String() string {
	return string(k)
}

// IsZero reports whether the key is unset.
func (k DayKey) IsZero() bool {
	return k == ""
}

// MarshalYAML implements yaml.Marshaler.
func (k DayKey) MarshalYAML() (interface{}, error) {
	return string(k), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (k *DayKey) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDayKey(value.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. The empty string is accepted so
// that half-initialised documents still decode.
func (k *DayKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*k = ""
		return nil
	}
	parsed, err := ParseDayKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Clock reports wall-clock time.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock in the local timezone.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed reports a settable instant. Safe for use from several goroutines.
type Fixed struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixed returns a Fixed clock stopped at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.t = t
	f.mu.Unlock()
}

// Today returns the local-timezone day key of c.Now().
func Today(c Clock) DayKey {
	return KeyOf(c.Now().Local())
}

// IsWeekend reports whether c.Now() falls on a Saturday or Sunday in local time.
func IsWeekend(c Clock) bool {
	switch c.Now().Local().Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}
