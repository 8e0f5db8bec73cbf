// Package debounce provides functions to debounce function calls, i.e., to
// ensure that a function is only executed after a certain amount of time has
// passed since the last call.
//
// Debouncing can be useful in scenarios where function calls may be triggered
// rapidly, such as in response to user input, but the underlying operation is
// expensive and only needs to be performed once per batch of calls.
//
// Debouncer is the general form, which passes the receiver and arguments of
// the most recent call through to the target, and exposes Invoke, Cancel and
// Flush. NewFunc and NewMutable wrap it in plain closures.
package debounce

import (
	"fmt"
	"time"
)

// NewFunc returns a debounced function that delays invoking f until after wait
// time has elapsed since the last time the debounced function was invoked.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times.
//
// Trailing invocations of f run in the Scheduler's goroutine, while leading
// invocations run synchronously within the debounced function. NewFunc panics
// if f is nil or wait is negative.
func NewFunc(
	wait time.Duration,
	f func(),
	opts ...Option,
) (debounced func(), cancel func()) {
	if f == nil {
		panic(fmt.Errorf("%w: nil function", ErrInvalidArgument))
	}

	d, err := New(wait, func(struct{}, ...struct{}) error {
		f()

		return nil
	}, opts...)
	if err != nil {
		panic(err)
	}

	debounced = func() {
		_ = d.Invoke(struct{}{})
	}

	return debounced, d.Cancel
}
