// Package duration converts HH:MM time-of-day values to minutes and renders
// minute counts for humans.
package duration

import (
	"fmt"
	"strconv"
	"strings"
)

// ToMinutes converts an HH:MM time of day into minutes since midnight.
// Empty or malformed input yields 0; use Parse where bad input must be rejected.
func ToMinutes(s string) int {
	m, err := Parse(s)
	if err != nil {
		return 0
	}
	return m
}

// Parse is the strict form of ToMinutes.
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("time is required (expected HH:MM)")
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || !isDigits(hh) || len(hh) > 2 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q (expected 00-23)", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || !isDigits(mm) || len(mm) != 2 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q (expected 00-59)", s)
	}
	return h*60 + m, nil
}

// Normalize renders a valid time of day in canonical HH:MM form, so "7:05"
// becomes "07:05". Invalid input is returned trimmed for Parse to reject.
func Normalize(s string) string {
	m, err := Parse(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Between returns end minus start in minutes. The result is not clamped:
// an end before start gives a negative duration.
func Between(start, end string) int {
	return ToMinutes(end) - ToMinutes(start)
}

// Format renders minutes as "1h 30m", "1h" or "45m". Zero renders as "0m"
// and negative values carry a leading minus sign.
func Format(minutes int) string {
	if minutes < 0 {
		return "-" + Format(-minutes)
	}
	h := minutes / 60
	m := minutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
