// Package tracker owns the live daily record: it applies task and penalty
// commands, rolls the record over when the calendar day changes and writes
// every change behind to persistence.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/protocol/internal/clock"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/scheduler"
	"github.com/alexanderramin/protocol/internal/service"
)

// Deps are the collaborators of a Store. Only Persistence is required.
type Deps struct {
	Persistence Persistence
	Clock       clock.Clock
	NewID       scheduler.IDFunc
	Observer    service.UseCaseObserver
	// OnChange receives a snapshot after every successful mutation or
	// rollover. It runs on the goroutine that caused the change, outside
	// the store lock.
	OnChange func(domain.DailyRecord)
}

// Store holds the single active daily record.
type Store struct {
	persist  Persistence
	clock    clock.Clock
	newID    scheduler.IDFunc
	observer service.UseCaseObserver
	onChange func(domain.DailyRecord)

	mu    sync.Mutex
	rec   *domain.DailyRecord
	queue *Queue
}

// New returns a Store over d. Call Open before issuing commands.
func New(d Deps) *Store {
	s := &Store{
		persist:  d.Persistence,
		clock:    d.Clock,
		newID:    d.NewID,
		observer: d.Observer,
		onChange: d.OnChange,
	}
	if s.clock == nil {
		s.clock = clock.System{}
	}
	if s.newID == nil {
		s.newID = scheduler.NewID
	}
	if s.observer == nil {
		s.observer = service.NoopUseCaseObserver{}
	}
	return s
}

// Open loads the persisted record and rolls it over when it belongs to an
// earlier day or does not exist. The rolled record is saved before Open
// returns.
func (s *Store) Open(ctx context.Context) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { service.ObserveSince(ctx, s.observer, "open-tracker", startedAt, fields, err) }()

	s.mu.Lock()
	if s.queue != nil {
		s.mu.Unlock()
		return nil
	}

	rec, err := s.persist.LoadRecord(ctx)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("opening tracker: %w", err)
	}

	today := clock.Today(s.clock)
	fields["today"] = today.String()
	rolled := false
	if rec == nil || rec.Date != today {
		rec, err = s.rollover(ctx, rec, today)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		if err = s.persist.SaveRecord(ctx, *rec); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("saving rolled over record: %w", err)
		}
		rolled = true
	}
	fields["rolled_over"] = rolled

	s.rec = rec
	s.queue = NewQueue(s.persist, s.observer)
	snapshot := rec.Clone()
	s.mu.Unlock()

	if rolled {
		s.notify(snapshot)
	}
	return nil
}

// Current returns a copy of the live record. It is the zero record before
// Open.
func (s *Store) Current() domain.DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return domain.DailyRecord{}
	}
	return s.rec.Clone()
}

// CompleteTask closes the task without debt.
func (s *Store) CompleteTask(ctx context.Context, key domain.TaskKey) (domain.DailyRecord, error) {
	fields := map[string]any{"task": key.String()}
	return s.mutate(ctx, "complete-task", ChangeTasks, fields, func(rec *domain.DailyRecord) error {
		t, err := findTask(rec, key)
		if err != nil {
			return err
		}
		return t.Complete()
	})
}

// PartialCompleteTask closes the task with completedMinutes of work done.
// Any shortfall becomes a new open penalty.
func (s *Store) PartialCompleteTask(ctx context.Context, key domain.TaskKey, completedMinutes int) (domain.DailyRecord, error) {
	fields := map[string]any{"task": key.String(), "minutes": completedMinutes}
	return s.mutate(ctx, "partial-complete-task", ChangeRecord, fields, func(rec *domain.DailyRecord) error {
		t, err := findTask(rec, key)
		if err != nil {
			return err
		}
		p, err := t.PartialComplete(completedMinutes, s.newID)
		if err != nil {
			return err
		}
		if p != nil {
			fields["penalty_minutes"] = p.Duration
			rec.Penalties = append(rec.Penalties, *p)
			scheduler.SortPenalties(rec.Penalties)
		}
		return nil
	})
}

// ResolvePenalty settles the penalty with the given id.
func (s *Store) ResolvePenalty(ctx context.Context, id string) (domain.DailyRecord, error) {
	fields := map[string]any{"penalty": id}
	return s.mutate(ctx, "resolve-penalty", ChangePenalties, fields, func(rec *domain.DailyRecord) error {
		p, err := findPenalty(rec, id)
		if err != nil {
			return err
		}
		return p.Resolve()
	})
}

// ReducePenalty pays off minutes of the penalty with the given id.
func (s *Store) ReducePenalty(ctx context.Context, id string, minutes int) (domain.DailyRecord, error) {
	fields := map[string]any{"penalty": id, "minutes": minutes}
	return s.mutate(ctx, "reduce-penalty", ChangePenalties, fields, func(rec *domain.DailyRecord) error {
		p, err := findPenalty(rec, id)
		if err != nil {
			return err
		}
		if err := p.Reduce(minutes); err != nil {
			return err
		}
		scheduler.SortPenalties(rec.Penalties)
		return nil
	})
}

// ApplyBaseToToday replaces today's tasks with a fresh copy of base. The
// penalty ledger is kept; progress on the replaced tasks is lost. A record
// left over from an earlier day is rolled over first, so the new tasks are
// dated today and the old day's debt is still charged. The whole record is
// written because the date may change.
func (s *Store) ApplyBaseToToday(ctx context.Context, base domain.BaseSchedule) (domain.DailyRecord, error) {
	fields := map[string]any{"task_count": len(base.Tasks)}
	return s.mutate(ctx, "apply-base-to-today", ChangeRecord, fields, func(rec *domain.DailyRecord) error {
		today := clock.Today(s.clock)
		if rec.Date != today {
			rolled, err := s.rollover(ctx, rec, today)
			if err != nil {
				return err
			}
			*rec = *rolled
			fields["rolled_over"] = true
		}
		rec.Tasks = scheduler.InstantiateTasks(base, clock.IsWeekend(s.clock))
		return nil
	})
}

// CheckDayChange rolls the record over when the calendar day has moved on
// since it was created. Pending writes are flushed first so the rollover
// starts from the persisted record. A stored record already dated today is
// adopted as is.
func (s *Store) CheckDayChange(ctx context.Context) (changed bool, err error) {
	s.mu.Lock()
	if s.rec == nil {
		s.mu.Unlock()
		return false, ErrNotOpen
	}
	today := clock.Today(s.clock)
	if s.rec.Date == today {
		s.mu.Unlock()
		return false, nil
	}

	startedAt := time.Now()
	fields := map[string]any{"from": s.rec.Date.String(), "today": today.String()}
	defer func() { service.ObserveSince(ctx, s.observer, "day-change", startedAt, fields, err) }()

	prev := s.rec
	if flushErr := s.queue.Flush(ctx); flushErr != nil {
		// The in-memory record is the newest state; roll from it.
		fields["flush_error"] = flushErr.Error()
	} else if stored, loadErr := s.persist.LoadRecord(ctx); loadErr != nil {
		fields["load_error"] = loadErr.Error()
	} else if stored != nil {
		prev = stored
	}

	if prev.Date == today {
		// Another process already rolled the stored record over.
		fields["adopted"] = true
		s.rec = prev
		snapshot := prev.Clone()
		s.mu.Unlock()
		s.notify(snapshot)
		return true, nil
	}

	next, err := s.rollover(ctx, prev, today)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.rec = next
	s.queue.Enqueue(next.Clone(), ChangeRecord)
	snapshot := next.Clone()
	err = s.queue.Flush(ctx)
	s.mu.Unlock()

	s.notify(snapshot)
	if err != nil {
		return true, fmt.Errorf("saving rolled over record: %w", err)
	}
	return true, nil
}

// Run polls for a day change every interval until ctx is cancelled.
// Failures are reported to the observer and retried on the next tick.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// CheckDayChange reports its own failures.
			_, _ = s.CheckDayChange(ctx)
		}
	}
}

// Flush waits for pending writes and returns the first write error since
// the previous Flush.
func (s *Store) Flush(ctx context.Context) error {
	q := s.currentQueue()
	if q == nil {
		return nil
	}
	return q.Flush(ctx)
}

// Close flushes pending writes and stops the background writer.
func (s *Store) Close(ctx context.Context) error {
	q := s.currentQueue()
	if q == nil {
		return nil
	}
	return q.Close(ctx)
}

func (s *Store) currentQueue() *Queue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue
}

// mutate applies fn to a copy of the live record. On error nothing changes;
// on success the copy becomes live and is queued for writing.
func (s *Store) mutate(
	ctx context.Context,
	name string,
	change Change,
	fields map[string]any,
	fn func(rec *domain.DailyRecord) error,
) (out domain.DailyRecord, err error) {
	startedAt := time.Now()
	defer func() { service.ObserveSince(ctx, s.observer, name, startedAt, fields, err) }()

	s.mu.Lock()
	if s.rec == nil {
		s.mu.Unlock()
		return domain.DailyRecord{}, ErrNotOpen
	}
	next := s.rec.Clone()
	if err = fn(&next); err != nil {
		current := s.rec.Clone()
		s.mu.Unlock()
		return current, err
	}
	s.rec = &next
	s.queue.Enqueue(next.Clone(), change)
	snapshot := next.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot, nil
}

func (s *Store) rollover(ctx context.Context, prev *domain.DailyRecord, today clock.DayKey) (*domain.DailyRecord, error) {
	base, err := s.persist.LoadSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading base schedule: %w", err)
	}
	return scheduler.Rollover(prev, base, today, clock.IsWeekend(s.clock), s.newID), nil
}

func (s *Store) notify(rec domain.DailyRecord) {
	if s.onChange != nil {
		s.onChange(rec)
	}
}

func findTask(rec *domain.DailyRecord, key domain.TaskKey) (*domain.Task, error) {
	for i := range rec.Tasks {
		if rec.Tasks[i].Key() == key {
			return &rec.Tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %s: %w", key, ErrTaskNotFound)
}

func findPenalty(rec *domain.DailyRecord, id string) (*domain.Penalty, error) {
	for i := range rec.Penalties {
		if rec.Penalties[i].ID == id {
			return &rec.Penalties[i], nil
		}
	}
	return nil, fmt.Errorf("penalty %s: %w", id, ErrPenaltyNotFound)
}
