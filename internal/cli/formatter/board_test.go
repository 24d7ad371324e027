package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/stretchr/testify/assert"
)

func boardRecord() domain.DailyRecord {
	return domain.DailyRecord{
		Date:    "2026-10-14",
		LastRun: "2026-10-14",
		Tasks: []domain.Task{
			{Label: "Gym", Start: "07:00", End: "08:00", Duration: 60, Completed: true},
			{Label: "Code", Start: "09:00", End: "12:00", Duration: 180, Completed: true, PartiallyCompleted: true},
			{Label: "Read", Start: "20:00", End: "21:00", Duration: 60},
		},
		Penalties: []domain.Penalty{
			{ID: "aaaaaaaa-1111", Label: "Code", Duration: 90},
			{ID: "bbbbbbbb-2222", Label: "Walk", Duration: 45, Completed: true},
			{ID: "cccccccc-3333", Label: "Read", Duration: 15},
		},
	}
}

func TestFormatBoard(t *testing.T) {
	got := plain(FormatBoard(boardRecord(), false))

	assert.Contains(t, got, "2026-10-14")
	assert.NotContains(t, got, "WEEKEND")
	assert.Contains(t, got, "2/3")
	assert.Contains(t, got, "07:00 → 08:00")
	assert.Contains(t, got, "3h")
	assert.Contains(t, got, "✔ Done")
	assert.Contains(t, got, "◐ Partial")
	assert.Contains(t, got, "○ Open")
	assert.Contains(t, got, "TOTAL 1h 45m")
}

func TestFormatBoard_Weekend(t *testing.T) {
	rec := boardRecord()
	rec.Tasks = nil
	got := plain(FormatBoard(rec, true))

	assert.Contains(t, got, "WEEKEND")
	assert.Contains(t, got, "No tasks scheduled.")
}

func TestFormatPenalties_OnlyOpen(t *testing.T) {
	got := plain(FormatPenalties(boardRecord()))

	assert.Contains(t, got, "aaaaaaaa")
	assert.Contains(t, got, "cccccccc")
	assert.NotContains(t, got, "bbbbbbbb", "settled penalties are hidden")
	assert.Contains(t, got, "TOTAL 1h 45m")
}

func TestFormatPenalties_None(t *testing.T) {
	got := plain(FormatPenalties(domain.DailyRecord{}))
	assert.Equal(t, "No open penalties.\n", got)
}

func TestFormatSchedule(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	s := domain.BaseSchedule{
		Tasks: []domain.TaskTemplate{
			{Label: "Gym", Start: "07:00", End: "08:00", Duration: 60},
			{Label: "Read", Start: "20:00", End: "20:30", Duration: 30},
		},
		UpdatedAt: now.Add(-2 * time.Hour),
	}

	got := plain(FormatSchedule(s, now))
	assert.Contains(t, got, "BASE SCHEDULE")
	assert.Contains(t, got, "20:00 → 20:30")
	assert.Contains(t, got, "PLANNED 1h 30m")
	assert.Contains(t, got, "updated 2h ago")
}

func TestFormatSchedule_Empty(t *testing.T) {
	got := plain(FormatSchedule(domain.BaseSchedule{}, time.Now()))
	assert.Contains(t, got, "No tasks.")
}
