package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// plain strips ANSI escape codes so assertions are terminal-independent.
func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{-30, "-30m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "0a1b2c3d", plain(TruncID("0a1b2c3d-4e5f-6789")))
	assert.Equal(t, "short", plain(TruncID("short")))
}

func TestTimeRange(t *testing.T) {
	assert.Equal(t, "07:00 → 08:30", TimeRange("07:00", "08:30"))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero", time.Time{}, "never"},
		{"seconds", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestamp(tt.in, now))
		})
	}

	old := HumanTimestamp(now.Add(-72*time.Hour), now)
	assert.True(t, strings.HasPrefix(old, "Oct"), old)
}

func TestHeader(t *testing.T) {
	got := plain(Header("Tasks"))
	assert.Equal(t, "TASKS\n─────", got)
}

func TestRenderBox_Title(t *testing.T) {
	got := plain(RenderBox("Protocol", "body"))
	assert.Contains(t, got, "PROTOCOL")
	assert.Contains(t, got, "body")
	assert.Contains(t, got, "╭")
}
