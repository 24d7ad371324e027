package scheduler

import (
	"github.com/alexanderramin/protocol/internal/clock"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/google/uuid"
)

// IDFunc generates penalty identifiers.
type IDFunc func() string

// NewID is the production penalty id generator.
func NewID() string {
	return uuid.NewString()
}

// debtLedger accumulates minutes per label, remembering first-seen order so
// the materialized ledger is deterministic before sorting.
type debtLedger struct {
	order   []string
	minutes map[string]int
}

func newDebtLedger() *debtLedger {
	return &debtLedger{minutes: make(map[string]int)}
}

func (l *debtLedger) add(label string, minutes int) {
	if _, seen := l.minutes[label]; !seen {
		l.order = append(l.order, label)
	}
	l.minutes[label] += minutes
}

func (l *debtLedger) materialize(newID IDFunc) []domain.Penalty {
	penalties := make([]domain.Penalty, 0, len(l.order))
	for _, label := range l.order {
		penalties = append(penalties, domain.NewPenalty(newID(), label, l.minutes[label]))
	}
	SortPenalties(penalties)
	return penalties
}

// CarryForward merges yesterday's unresolved debt into a fresh penalty
// ledger: open penalties and unfinished tasks are summed per label, each
// label becomes one new open penalty, largest first.
func CarryForward(prev *domain.DailyRecord, newID IDFunc) []domain.Penalty {
	ledger := newDebtLedger()
	if prev == nil {
		return ledger.materialize(newID)
	}

	for _, p := range prev.Penalties {
		if !p.Completed {
			ledger.add(p.Label, p.Duration)
		}
	}
	for _, t := range prev.Tasks {
		if owed := t.OutstandingMinutes(); owed > 0 {
			ledger.add(t.Label, owed)
		}
	}
	return ledger.materialize(newID)
}

// InstantiateTasks copies the base schedule into today's task list in stored
// order. Weekends get no tasks.
func InstantiateTasks(base domain.BaseSchedule, isWeekend bool) []domain.Task {
	if isWeekend {
		return []domain.Task{}
	}
	tasks := make([]domain.Task, 0, len(base.Tasks))
	for _, tmpl := range base.Tasks {
		tasks = append(tasks, tmpl.Instantiate())
	}
	return tasks
}

// Rollover derives today's record from the previous one. A nil prev is an
// empty previous day.
func Rollover(prev *domain.DailyRecord, base domain.BaseSchedule, today clock.DayKey, isWeekend bool, newID IDFunc) *domain.DailyRecord {
	if newID == nil {
		newID = NewID
	}
	return &domain.DailyRecord{
		Date:      today,
		Tasks:     InstantiateTasks(base, isWeekend),
		Penalties: CarryForward(prev, newID),
		LastRun:   today,
	}
}
