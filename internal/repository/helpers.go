package repository

import (
	"time"

	"github.com/alexanderramin/protocol/internal/clock"
)

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// parseDay decodes a stored day key. Rows written by this package always
// carry a valid key, so a bad value means the file was edited by hand.
func parseDay(column, s string) (clock.DayKey, error) {
	k, err := clock.ParseDayKey(s)
	if err != nil {
		return "", errBadColumn(column, err)
	}
	return k, nil
}
