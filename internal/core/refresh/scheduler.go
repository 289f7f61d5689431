// Package refresh drives periodic re-fetching of a feed with a manual trigger
//
// A Scheduler owns one fetch function and the last result it produced. Interval
// ticks and manual triggers go through the same entry point and the same in-flight
// guard, so at most one fetch runs per scheduler and a trigger during a fetch is
// dropped rather than queued. Schedulers share nothing with each other.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	perr "oasis/internal/platform/errors"

	"github.com/google/uuid"
)

// Fetcher produces a full replacement result
type Fetcher[T any] func(ctx context.Context) (T, error)

// Trigger tells observers what started a fetch
type Trigger string

const (
	TriggerTick   Trigger = "tick"
	TriggerManual Trigger = "manual"
)

// Snapshot is a consistent copy of scheduler state
type Snapshot[T any] struct {
	Value       T
	HasValue    bool
	Err         error
	FetchedAt   time.Time // last success
	AttemptedAt time.Time // last fetch start
	Version     uint64    // successful fetches applied
	Fetching    bool
}

// Stale reports whether the snapshot is older than maxAge or has no value yet
func (s Snapshot[T]) Stale(now time.Time, maxAge time.Duration) bool {
	return !s.HasValue || now.Sub(s.FetchedAt) > maxAge
}

// Scheduler is safe for concurrent use
type Scheduler[T any] struct {
	name      string
	fetch     Fetcher[T]
	observers []Observer
	now       func() time.Time

	inflight atomic.Bool

	mu          sync.Mutex
	value       T
	hasValue    bool
	err         error
	fetchedAt   time.Time
	attemptedAt time.Time
	version     uint64
	epoch       uint64 // bumped by Stop; results from an older epoch are dropped
	cancel      context.CancelFunc
	done        chan struct{}
}

// Option customizes a Scheduler
type Option func(*options)

type options struct {
	observers []Observer
	now       func() time.Time
}

// WithObserver adds a fetch lifecycle observer
func WithObserver(o Observer) Option {
	return func(opt *options) {
		if o != nil {
			opt.observers = append(opt.observers, o)
		}
	}
}

// WithClock overrides time.Now (tests)
func WithClock(now func() time.Time) Option {
	return func(opt *options) {
		if now != nil {
			opt.now = now
		}
	}
}

// New builds an idle scheduler; name labels logs and metrics
func New[T any](name string, fetch Fetcher[T], opts ...Option) *Scheduler[T] {
	if fetch == nil {
		panic("refresh: nil fetcher")
	}
	o := options{now: time.Now}
	for _, f := range opts {
		f(&o)
	}
	return &Scheduler[T]{
		name:      name,
		fetch:     fetch,
		observers: o.observers,
		now:       o.now,
	}
}

// Name returns the scheduler label
func (s *Scheduler[T]) Name() string { return s.name }

// Start fetches once and then every interval until Stop or ctx is done
// starting a running scheduler is an error; a stopped one can be started again
func (s *Scheduler[T]) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return perr.InvalidArgf("refresh %s: interval must be positive, got %s", s.name, interval)
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return perr.Conflictf("refresh %s: already running", s.name)
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	epoch := s.epoch
	s.mu.Unlock()

	// fetches run on ctx, not loopCtx: Stop ends the ticks but lets an in-flight
	// fetch finish, its result is then dropped by the epoch check
	go s.loop(ctx, loopCtx, interval, done, epoch)
	return nil
}

// loop is pinned to the epoch of its Start; once Stop moves past it no tick fetches
func (s *Scheduler[T]) loop(fetchCtx, loopCtx context.Context, interval time.Duration, done chan struct{}, epoch uint64) {
	defer close(done)

	s.run(fetchCtx, TriggerTick, epoch)

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-loopCtx.Done():
			return
		case <-t.C:
			if loopCtx.Err() != nil {
				return
			}
			s.run(fetchCtx, TriggerTick, epoch)
		}
	}
}

// Stop cancels the interval; it does not wait for an in-flight fetch,
// whose result will be discarded. Stop on an idle scheduler is a no-op
func (s *Scheduler[T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Done is closed when the interval loop of the current run exits; nil when never started
func (s *Scheduler[T]) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Running reports whether the interval loop is active
func (s *Scheduler[T]) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Trigger runs a fetch now and waits for it
// returns false without fetching when a fetch is already in flight
func (s *Scheduler[T]) Trigger(ctx context.Context) bool {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()
	return s.run(ctx, TriggerManual, epoch)
}

// run fetches on behalf of epoch; it skips the fetch when epoch is already
// torn down and drops the result when Stop lands while it is in flight
func (s *Scheduler[T]) run(ctx context.Context, by Trigger, epoch uint64) bool {
	if !s.inflight.CompareAndSwap(false, true) {
		return false
	}
	defer s.inflight.Store(false)

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return false
	}
	started := s.now()
	s.attemptedAt = started
	s.mu.Unlock()

	ev := Event{Scheduler: s.name, RunID: uuid.NewString(), Trigger: by, Started: started}
	for _, o := range s.observers {
		o.FetchStarted(ev)
	}

	v, err := s.safeFetch(ctx)

	s.mu.Lock()
	finished := s.now()
	discarded := s.epoch != epoch
	if !discarded {
		if err != nil {
			s.err = err
		} else {
			s.value = v
			s.hasValue = true
			s.err = nil
			s.fetchedAt = finished
			s.version++
		}
	}
	s.mu.Unlock()

	ev.Duration = finished.Sub(started)
	ev.Err = err
	ev.Discarded = discarded
	for _, o := range s.observers {
		o.FetchFinished(ev)
	}
	return true
}

func (s *Scheduler[T]) safeFetch(ctx context.Context) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = perr.PanicErrf("refresh %s: fetch panicked: %v", s.name, r)
		}
	}()
	return s.fetch(ctx)
}

// Current returns a snapshot of the held result, error and timings
func (s *Scheduler[T]) Current() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[T]{
		Value:       s.value,
		HasValue:    s.hasValue,
		Err:         s.err,
		FetchedAt:   s.fetchedAt,
		AttemptedAt: s.attemptedAt,
		Version:     s.version,
		Fetching:    s.inflight.Load(),
	}
}

// Err returns the error of the last fetch, nil after a success
func (s *Scheduler[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// IsFetching reports whether a fetch is in flight
func (s *Scheduler[T]) IsFetching() bool { return s.inflight.Load() }

// String implements fmt.Stringer
func (s *Scheduler[T]) String() string {
	return fmt.Sprintf("refresh.Scheduler(%s)", s.name)
}
