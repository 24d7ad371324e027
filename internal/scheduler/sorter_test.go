package scheduler

import (
	"sort"
	"testing"

	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSortPenalties_LargestFirst(t *testing.T) {
	penalties := []domain.Penalty{
		{ID: "a", Duration: 10},
		{ID: "b", Duration: 45},
		{ID: "c", Duration: 20},
	}
	SortPenalties(penalties)

	assert.Equal(t, "b", penalties[0].ID)
	assert.Equal(t, "c", penalties[1].ID)
	assert.Equal(t, "a", penalties[2].ID)
	assert.True(t, isLedgerSorted(penalties))
}

func TestSortPenalties_StableOnTies(t *testing.T) {
	penalties := []domain.Penalty{
		{ID: "first", Duration: 15},
		{ID: "big", Duration: 30},
		{ID: "second", Duration: 15},
	}
	SortPenalties(penalties)

	assert.Equal(t, []string{"big", "first", "second"}, []string{penalties[0].ID, penalties[1].ID, penalties[2].ID})
}

func TestSortTemplates_ByStart(t *testing.T) {
	tasks := []domain.TaskTemplate{
		domain.NewTaskTemplate("Lunch", "12:00", "12:30"),
		domain.NewTaskTemplate("Gym", "07:00", "08:00"),
		domain.NewTaskTemplate("Standup", "09:30", "09:45"),
		domain.NewTaskTemplate("Read", "07:00", "07:30"),
	}
	SortTemplates(tasks)

	labels := make([]string, len(tasks))
	for i, tk := range tasks {
		labels[i] = tk.Label
	}
	assert.Equal(t, []string{"Gym", "Read", "Standup", "Lunch"}, labels, "same start keeps insertion order")
}

// isLedgerSorted reports whether penalties are non-increasing by duration.
func isLedgerSorted(penalties []domain.Penalty) bool {
	return sort.SliceIsSorted(penalties, func(i, j int) bool {
		return penalties[i].Duration > penalties[j].Duration
	})
}

func TestIsLedgerSorted(t *testing.T) {
	assert.True(t, isLedgerSorted(nil))
	assert.True(t, isLedgerSorted([]domain.Penalty{{Duration: 5}, {Duration: 5}, {Duration: 1}}))
	assert.False(t, isLedgerSorted([]domain.Penalty{{Duration: 5}, {Duration: 6}}))
}
