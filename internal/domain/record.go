package domain

import (
	"slices"
	"time"

	"github.com/alexanderramin/protocol/internal/clock"
)

// DailyRecord is the live state for one calendar day.
type DailyRecord struct {
	Date      clock.DayKey `json:"date"`
	Tasks     []Task       `json:"tasks"`
	Penalties []Penalty    `json:"penalties"`
	LastRun   clock.DayKey `json:"lastRun"`
}

// Clone returns a deep copy so callers can hand out snapshots.
func (r DailyRecord) Clone() DailyRecord {
	out := r
	out.Tasks = slices.Clone(r.Tasks)
	out.Penalties = slices.Clone(r.Penalties)
	return out
}

// OpenPenalties returns unresolved penalties in ledger order.
func (r DailyRecord) OpenPenalties() []Penalty {
	var open []Penalty
	for _, p := range r.Penalties {
		if !p.Completed {
			open = append(open, p)
		}
	}
	return open
}

// OpenPenaltyMinutes sums the duration of unresolved penalties.
func (r DailyRecord) OpenPenaltyMinutes() int {
	total := 0
	for _, p := range r.Penalties {
		if !p.Completed {
			total += p.Duration
		}
	}
	return total
}

// Progress returns how many of the day's tasks are closed.
func (r DailyRecord) Progress() (closed, total int) {
	for _, t := range r.Tasks {
		if t.Completed {
			closed++
		}
	}
	return closed, len(r.Tasks)
}

// BaseSchedule is the recurring weekday plan.
type BaseSchedule struct {
	Tasks     []TaskTemplate `json:"tasks"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Clone returns a deep copy of the schedule.
func (s BaseSchedule) Clone() BaseSchedule {
	out := s
	out.Tasks = slices.Clone(s.Tasks)
	return out
}
