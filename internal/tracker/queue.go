package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/service"
)

// Queue writes record snapshots behind the caller. Pending snapshots
// coalesce so only the latest is written; the parts touched by every
// coalesced mutation are written together. A failed write is reported to
// the observer and kept until the next Flush returns it. Parts that failed
// are rewritten with the next snapshot.
type Queue struct {
	persist  Persistence
	observer service.UseCaseObserver

	mu       sync.Mutex
	pending  *domain.DailyRecord
	change   Change
	failed   Change
	inflight bool
	firstErr error
	waiters  []chan struct{}
	closed   bool

	wake chan struct{}
	stop context.CancelFunc
	done chan struct{}
}

// NewQueue starts the background writer. Call Close to stop it.
func NewQueue(p Persistence, observer service.UseCaseObserver) *Queue {
	if observer == nil {
		observer = service.NoopUseCaseObserver{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		persist:  p,
		observer: observer,
		wake:     make(chan struct{}, 1),
		stop:     cancel,
		done:     make(chan struct{}),
	}
	go q.run(ctx)
	return q
}

// Enqueue schedules rec for writing. It never blocks on storage.
func (q *Queue) Enqueue(rec domain.DailyRecord, change Change) {
	q.mu.Lock()
	if q.closed {
		if q.firstErr == nil {
			q.firstErr = ErrQueueClosed
		}
		q.mu.Unlock()
		return
	}
	q.pending = &rec
	q.change |= change
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Flush waits until every enqueued snapshot has been written and returns
// the first write error since the previous Flush.
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	if q.pending == nil && !q.inflight {
		err := q.takeErr()
		q.mu.Unlock()
		return err
	}
	if q.closed {
		err := q.takeErr()
		q.mu.Unlock()
		return err
	}
	ch := make(chan struct{})
	q.waiters = append(q.waiters, ch)
	q.mu.Unlock()

	select {
	case <-ch:
	case <-ctx.Done():
		return ctx.Err()
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.takeErr()
}

// Close flushes pending writes and stops the writer.
func (q *Queue) Close(ctx context.Context) error {
	err := q.Flush(ctx)

	q.mu.Lock()
	alreadyClosed := q.closed
	q.closed = true
	q.mu.Unlock()

	if !alreadyClosed {
		q.stop()
		<-q.done
	}
	return err
}

func (q *Queue) takeErr() error {
	err := q.firstErr
	q.firstErr = nil
	return err
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			q.release()
			return
		case <-q.wake:
			q.drain(ctx)
		}
	}
}

func (q *Queue) drain(ctx context.Context) {
	for {
		q.mu.Lock()
		if q.pending == nil {
			q.inflight = false
			waiters := q.waiters
			q.waiters = nil
			q.mu.Unlock()
			for _, w := range waiters {
				close(w)
			}
			return
		}
		rec := *q.pending
		change := q.change | q.failed
		q.pending, q.change, q.failed = nil, 0, 0
		q.inflight = true
		q.mu.Unlock()

		if err := q.write(ctx, rec, change); err != nil {
			q.mu.Lock()
			q.failed |= change
			if q.firstErr == nil {
				q.firstErr = err
			}
			q.mu.Unlock()
		}
	}
}

// release wakes any Flush still waiting after the writer stopped.
func (q *Queue) release() {
	q.mu.Lock()
	waiters := q.waiters
	q.waiters = nil
	q.mu.Unlock()
	for _, w := range waiters {
		close(w)
	}
}

func (q *Queue) write(ctx context.Context, rec domain.DailyRecord, change Change) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"date": rec.Date.String(), "change": change.String()}
	defer func() { service.ObserveSince(ctx, q.observer, "persist-record", startedAt, fields, err) }()

	switch change {
	case ChangeTasks:
		return q.persist.SaveTasks(ctx, rec.Tasks)
	case ChangePenalties:
		return q.persist.SavePenalties(ctx, rec.Penalties)
	default:
		return q.persist.SaveRecord(ctx, rec)
	}
}

func (c Change) String() string {
	switch c {
	case ChangeTasks:
		return "tasks"
	case ChangePenalties:
		return "penalties"
	case ChangeRecord:
		return "record"
	default:
		return "none"
	}
}
