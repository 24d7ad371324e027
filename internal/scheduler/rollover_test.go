package scheduler

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/protocol/internal/clock"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	day1 clock.DayKey = "2026-10-13"
	day2 clock.DayKey = "2026-10-14"
)

// seqIDs returns an IDFunc yielding pen-1, pen-2, ...
func seqIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("pen-%d", n)
	}
}

func baseSchedule() domain.BaseSchedule {
	return domain.BaseSchedule{Tasks: []domain.TaskTemplate{
		domain.NewTaskTemplate("Gym", "07:00", "08:00"),
		domain.NewTaskTemplate("Read", "20:00", "21:00"),
		domain.NewTaskTemplate("Code", "09:00", "12:00"),
	}}
}

func penaltyFor(t *testing.T, penalties []domain.Penalty, label string) domain.Penalty {
	t.Helper()
	for _, p := range penalties {
		if p.Label == label {
			return p
		}
	}
	t.Fatalf("no penalty labeled %q in %+v", label, penalties)
	return domain.Penalty{}
}

// closeAll marks every task and penalty of rec resolved.
func closeAll(rec *domain.DailyRecord) *domain.DailyRecord {
	out := rec.Clone()
	for i := range out.Tasks {
		out.Tasks[i].Completed = true
	}
	for i := range out.Penalties {
		out.Penalties[i].Completed = true
	}
	return &out
}

func TestRollover_NilPreviousRecord(t *testing.T) {
	rec := Rollover(nil, baseSchedule(), day2, false, seqIDs())

	assert.Equal(t, day2, rec.Date)
	assert.Equal(t, day2, rec.LastRun)
	assert.Empty(t, rec.Penalties)
	require.Len(t, rec.Tasks, 3)
	for _, task := range rec.Tasks {
		assert.False(t, task.Completed)
		assert.False(t, task.PartiallyCompleted)
		assert.Equal(t, 0, task.Remaining)
	}
}

func TestRollover_PreservesBaseOrder(t *testing.T) {
	rec := Rollover(nil, baseSchedule(), day2, false, seqIDs())
	assert.Equal(t, "Gym", rec.Tasks[0].Label)
	assert.Equal(t, "Read", rec.Tasks[1].Label)
	assert.Equal(t, "Code", rec.Tasks[2].Label, "rollover does not re-sort the base schedule")
}

func TestRollover_MergesPenaltiesAndTasksByLabel(t *testing.T) {
	prev := &domain.DailyRecord{
		Date: day1,
		Penalties: []domain.Penalty{
			{ID: "old-1", Label: "Gym", Duration: 20},
			{ID: "old-2", Label: "Gym", Duration: 15},
		},
		Tasks: []domain.Task{
			{Label: "Gym", Start: "07:00", Duration: 10},
		},
	}

	rec := Rollover(prev, domain.BaseSchedule{}, day2, false, seqIDs())

	require.Len(t, rec.Penalties, 1)
	gym := rec.Penalties[0]
	assert.Equal(t, "Gym", gym.Label)
	assert.Equal(t, 45, gym.Duration)
	assert.False(t, gym.Completed)
	assert.Equal(t, "pen-1", gym.ID, "merged penalties get a fresh id")
}

func TestRollover_SkipsResolvedItems(t *testing.T) {
	prev := &domain.DailyRecord{
		Date: day1,
		Penalties: []domain.Penalty{
			{ID: "a", Label: "Gym", Duration: 20, Completed: true},
			{ID: "b", Label: "Read", Duration: 0, Completed: true},
		},
		Tasks: []domain.Task{
			{Label: "Gym", Duration: 60, Completed: true},
			{Label: "Read", Duration: 60, Completed: true, PartiallyCompleted: true},
		},
	}

	rec := Rollover(prev, baseSchedule(), day2, false, seqIDs())
	assert.Empty(t, rec.Penalties)
}

func TestRollover_OpenPartialTaskUsesRemaining(t *testing.T) {
	prev := &domain.DailyRecord{
		Date: day1,
		Tasks: []domain.Task{
			{Label: "Read", Duration: 60, PartiallyCompleted: true, Remaining: 25},
			{Label: "Code", Duration: 90, PartiallyCompleted: true, Remaining: 0},
		},
	}

	rec := Rollover(prev, domain.BaseSchedule{}, day2, false, seqIDs())
	require.Len(t, rec.Penalties, 1, "zero remaining generates no debt")
	assert.Equal(t, 25, penaltyFor(t, rec.Penalties, "Read").Duration)
}

func TestRollover_NonPositiveTaskDurationIgnored(t *testing.T) {
	prev := &domain.DailyRecord{
		Date: day1,
		Tasks: []domain.Task{
			{Label: "Backwards", Start: "10:00", End: "09:00", Duration: -60},
			{Label: "Instant", Start: "10:00", End: "10:00", Duration: 0},
		},
	}
	rec := Rollover(prev, domain.BaseSchedule{}, day2, false, seqIDs())
	assert.Empty(t, rec.Penalties)
}

func TestRollover_PenaltiesSortedDescending(t *testing.T) {
	prev := &domain.DailyRecord{
		Date: day1,
		Penalties: []domain.Penalty{
			{ID: "x", Label: "Small", Duration: 5},
		},
		Tasks: []domain.Task{
			{Label: "Big", Duration: 120},
			{Label: "Medium", Duration: 30},
		},
	}
	rec := Rollover(prev, domain.BaseSchedule{}, day2, false, seqIDs())

	require.Len(t, rec.Penalties, 3)
	assert.Equal(t, "Big", rec.Penalties[0].Label)
	assert.Equal(t, "Medium", rec.Penalties[1].Label)
	assert.Equal(t, "Small", rec.Penalties[2].Label)
	assert.True(t, isLedgerSorted(rec.Penalties))
}

func TestRollover_WeekendHasNoTasks(t *testing.T) {
	prev := &domain.DailyRecord{
		Date:  day1,
		Tasks: []domain.Task{{Label: "Gym", Duration: 60}},
	}
	rec := Rollover(prev, baseSchedule(), day2, true, seqIDs())

	assert.NotNil(t, rec.Tasks)
	assert.Empty(t, rec.Tasks)
	require.Len(t, rec.Penalties, 1, "weekend still carries debt forward")
	assert.Equal(t, 60, rec.Penalties[0].Duration)
}

func TestRollover_IdempotentWithNoOpenItems(t *testing.T) {
	base := baseSchedule()
	first := closeAll(Rollover(nil, base, day1, false, seqIDs()))

	second := Rollover(first, base, day2, false, seqIDs())
	third := Rollover(closeAll(second), base, "2026-10-15", false, seqIDs())

	fresh := InstantiateTasks(base, false)
	assert.Equal(t, fresh, second.Tasks)
	assert.Equal(t, fresh, third.Tasks)
	assert.Empty(t, second.Penalties)
	assert.Empty(t, third.Penalties)
}

func TestRollover_DoesNotMutatePrevious(t *testing.T) {
	prev := &domain.DailyRecord{
		Date:      day1,
		Penalties: []domain.Penalty{{ID: "a", Label: "Gym", Duration: 20}},
		Tasks:     []domain.Task{{Label: "Gym", Duration: 10}},
	}
	snapshot := prev.Clone()

	_ = Rollover(prev, baseSchedule(), day2, false, seqIDs())
	assert.Equal(t, snapshot, *prev)
}

func TestRollover_DefaultIDGenerator(t *testing.T) {
	prev := &domain.DailyRecord{
		Tasks: []domain.Task{{Label: "A", Duration: 10}, {Label: "B", Duration: 20}},
	}
	rec := Rollover(prev, domain.BaseSchedule{}, day2, false, nil)
	require.Len(t, rec.Penalties, 2)
	assert.NotEmpty(t, rec.Penalties[0].ID)
	assert.NotEqual(t, rec.Penalties[0].ID, rec.Penalties[1].ID)
}
