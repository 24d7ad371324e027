package scheduler

import (
	"sort"

	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/duration"
)

// SortPenalties orders the ledger largest debt first. Equal durations keep
// their relative order.
func SortPenalties(penalties []domain.Penalty) {
	sort.SliceStable(penalties, func(i, j int) bool {
		return penalties[i].Duration > penalties[j].Duration
	})
}

// SortTemplates orders base schedule entries by start time, earliest first.
// Entries with the same start keep their relative order.
func SortTemplates(tasks []domain.TaskTemplate) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return duration.ToMinutes(tasks[i].Start) < duration.ToMinutes(tasks[j].Start)
	})
}
