package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyRecord_CloneIsDeep(t *testing.T) {
	r := DailyRecord{
		Date:      "2026-10-14",
		Tasks:     []Task{{Label: "Gym", Duration: 30}},
		Penalties: []Penalty{{ID: "p1", Label: "Read", Duration: 20}},
	}
	c := r.Clone()
	c.Tasks[0].Completed = true
	c.Penalties[0].Duration = 1

	assert.False(t, r.Tasks[0].Completed)
	assert.Equal(t, 20, r.Penalties[0].Duration)
}

func TestDailyRecord_Totals(t *testing.T) {
	r := DailyRecord{
		Tasks: []Task{
			{Label: "A", Completed: true},
			{Label: "B"},
			{Label: "C", Completed: true, PartiallyCompleted: true},
		},
		Penalties: []Penalty{
			{ID: "1", Duration: 30},
			{ID: "2", Duration: 15, Completed: true},
			{ID: "3", Duration: 5},
		},
	}
	closed, total := r.Progress()
	assert.Equal(t, 2, closed)
	assert.Equal(t, 3, total)
	assert.Equal(t, 35, r.OpenPenaltyMinutes())
	assert.Len(t, r.OpenPenalties(), 2)
}

func TestDailyRecord_JSONShape(t *testing.T) {
	r := DailyRecord{
		Date:      "2026-10-14",
		LastRun:   "2026-10-14",
		Tasks:     []Task{{Label: "Read", Start: "20:00", End: "21:00", Duration: 60, PartiallyCompleted: true}},
		Penalties: []Penalty{{ID: "p1", Label: "Read", Duration: 20}},
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	s := string(data)
	for _, key := range []string{`"date":"2026-10-14"`, `"lastRun":"2026-10-14"`, `"partiallyCompleted":true`, `"remaining":0`, `"id":"p1"`} {
		assert.Contains(t, s, key)
	}
}
