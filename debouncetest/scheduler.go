// Package debouncetest provides a deterministic debounce.Scheduler for tests.
package debouncetest

import (
	"sort"
	"sync"
	"time"

	"github.com/romdo/go-debounce/v2"
)

// Scheduler is a fake debounce.Scheduler driven by a virtual clock. Scheduled
// functions only run when Advance moves the clock past their deadline, and
// they run synchronously in the goroutine calling Advance.
type Scheduler struct {
	mux    sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*timer
}

var _ debounce.Scheduler = (*Scheduler)(nil)

type timer struct {
	s     *Scheduler
	when  time.Duration
	seq   uint64
	f     func()
	fired bool
}

// NewScheduler returns a Scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc implements debounce.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) debounce.Timer {
	s.mux.Lock()
	defer s.mux.Unlock()

	if d < 0 {
		d = 0
	}

	s.seq++
	t := &timer{s: s, when: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)

	return t
}

// Advance moves the clock forward by d, calling every function whose deadline
// is reached, in deadline order. Functions scheduled by those calls also run
// if their deadline falls within d.
func (s *Scheduler) Advance(d time.Duration) {
	s.mux.Lock()
	target := s.now + d
	s.mux.Unlock()

	for {
		s.mux.Lock()
		t := s.next(target)
		if t == nil {
			s.now = target
			s.mux.Unlock()

			return
		}

		s.now = t.when
		t.fired = true
		s.remove(t)
		s.mux.Unlock()

		t.f()
	}
}

// Now returns the virtual time elapsed since the Scheduler was created.
func (s *Scheduler) Now() time.Duration {
	s.mux.Lock()
	defer s.mux.Unlock()

	return s.now
}

// Len returns the number of scheduled functions which have not yet been
// called or stopped.
func (s *Scheduler) Len() int {
	s.mux.Lock()
	defer s.mux.Unlock()

	return len(s.timers)
}

// next returns the earliest timer due at or before target. It should only be
// called while the mutex is locked.
func (s *Scheduler) next(target time.Duration) *timer {
	if len(s.timers) == 0 {
		return nil
	}

	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].when == s.timers[j].when {
			return s.timers[i].seq < s.timers[j].seq
		}

		return s.timers[i].when < s.timers[j].when
	})

	if t := s.timers[0]; t.when <= target {
		return t
	}

	return nil
}

// remove deletes t from the list of scheduled timers, returning false if it
// was not present. It should only be called while the mutex is locked.
func (s *Scheduler) remove(t *timer) bool {
	for i, x := range s.timers {
		if x == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)

			return true
		}
	}

	return false
}

// Stop implements debounce.Timer.
func (t *timer) Stop() bool {
	t.s.mux.Lock()
	defer t.s.mux.Unlock()

	if t.fired {
		return false
	}

	return t.s.remove(t)
}
