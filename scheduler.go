package debounce

import (
	"time"
)

// Scheduler runs a function once after a delay. It is the timer facility a
// Debouncer uses for its deferred actions, and can be replaced with
// WithScheduler, for example with a fake clock in tests.
type Scheduler interface {
	// AfterFunc schedules f to be called once after d has elapsed, and returns
	// a Timer which can be used to cancel the call.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to a function scheduled by a Scheduler.
type Timer interface {
	// Stop prevents the scheduled function from being called. It returns false
	// if the function has already been called or the timer was stopped.
	Stop() bool
}

// SystemScheduler is a Scheduler backed by time.AfterFunc. Scheduled functions
// run in their own goroutine.
type SystemScheduler struct{}

var _ Scheduler = SystemScheduler{}

// AfterFunc implements Scheduler.
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
