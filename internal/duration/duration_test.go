package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetween(t *testing.T) {
	assert.Equal(t, 90, Between("09:00", "10:30"))
	assert.Equal(t, -60, Between("10:00", "09:00"), "no clamping")
	assert.Equal(t, 0, Between("12:15", "12:15"))
}

func TestToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:05", 545},
		{"23:59", 1439},
		{"7:30", 450},
		{"", 0},
		{"noon", 0},
		{"25:00", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToMinutes(tt.in), "input=%q", tt.in)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "  ", "0900", "24:00", "12:60", "12:5", "ab:cd", "+7:00", "-1:00", "007:00", "07:+5"} {
		_, err := Parse(in)
		assert.Error(t, err, "input=%q", in)
	}
	m, err := Parse(" 18:45 ")
	require.NoError(t, err)
	assert.Equal(t, 1125, m)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{125, "2h 5m"},
		{-30, "-30m"},
		{-90, "-1h 30m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in), "minutes=%d", tt.in)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"07:00", "07:00"},
		{"7:00", "07:00"},
		{" 9:05 ", "09:05"},
		{"23:59", "23:59"},
		{" noon ", "noon"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input=%q", tt.in)
	}
}
