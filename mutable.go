package debounce

import (
	"time"
)

// NewMutable returns a debounced function like NewFunc, but it allows the
// callback function to be changed, as a new callback function is passed to
// each invocation of the debounced function.
//
// The returned cancel function can be used to cancel any pending invocation,
// but is not required to be called, so can be ignored if not needed.
//
// Only the very last f passed to the debounced function is called when the
// delay expires and the callback function is invoked. Previous f values are
// discarded. A nil f is recorded like any other call, but nothing is called
// for it.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times. NewMutable panics if wait
// is negative.
func NewMutable(
	wait time.Duration,
	opts ...Option,
) (debounced func(f func()), cancel func()) {
	d, err := New(wait, callLast, opts...)
	if err != nil {
		panic(err)
	}

	debounced = func(f func()) {
		_ = d.Invoke(struct{}{}, f)
	}

	return debounced, d.Cancel
}

// callLast calls the last function in fns, which is the one passed to the most
// recent invocation of a mutable debounced function.
func callLast(_ struct{}, fns ...func()) error {
	if len(fns) == 0 {
		return nil
	}

	if f := fns[len(fns)-1]; f != nil {
		f()
	}

	return nil
}
