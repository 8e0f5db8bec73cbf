package debounce

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Func is a function which can be debounced. The receiver and arguments of the
// most recent call to the debounced function are passed through to it.
type Func[R, A any] func(recv R, args ...A) error

// Debouncer provides debouncing functionality for calls to a Func. It combines
// configuration and state into a single struct with methods for invoking,
// cancelling and flushing the debounced function.
//
// All methods are safe for concurrent use. The target is never called while
// internal locks are held, so it may itself call methods on the Debouncer.
type Debouncer[R, A any] struct {
	// Configuration
	wait      time.Duration
	fn        Func[R, A]
	leading   bool
	trailing  bool
	maxWait   time.Duration
	scheduler Scheduler
	log       zerolog.Logger
	onError   func(error)

	// State
	mux      sync.Mutex
	timer    Timer
	maxTimer Timer
	seq      uint64 // identifies the current wait timer
	burst    uint64 // identifies the current maxWait timer
	pending  bool
	recv     R
	args     []A
	running  int // trailing edge invocations in progress
	idle     sync.Cond
}

type call[R, A any] struct {
	recv R
	args []A
}

// New creates a new Debouncer which delays invoking fn until after wait time
// has elapsed since the last call to Invoke.
//
// It returns an error wrapping ErrInvalidArgument if fn is nil or wait is
// negative. A zero wait defers the invocation as briefly as the Scheduler
// allows.
func New[R, A any](
	wait time.Duration,
	fn Func[R, A],
	opts ...Option,
) (*Debouncer[R, A], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}
	if wait < 0 {
		return nil, fmt.Errorf("%w: negative wait %s", ErrInvalidArgument, wait)
	}

	c := newConfig(opts)
	d := &Debouncer[R, A]{
		wait:      wait,
		fn:        fn,
		leading:   c.leading,
		trailing:  c.trailing,
		maxWait:   c.maxWait,
		scheduler: c.scheduler,
		log:       c.logger,
		onError:   c.onError,
	}
	d.idle.L = &d.mux

	// If maxWait is less than wait, disable maxWait.
	if d.maxWait <= d.wait {
		d.maxWait = 0
	}

	return d, nil
}

// Invoke records recv and a copy of args as the most recent call, and restarts
// the wait period. Calls made before the wait period has elapsed replace the recorded
// call, so only the last receiver and arguments of a burst are used.
//
// With the Leading option, the first call of a burst invokes the target
// immediately, in which case the target's error is returned.
func (d *Debouncer[R, A]) Invoke(recv R, args ...A) error {
	d.mux.Lock()

	d.recv = recv
	d.args = append([]A(nil), args...)
	d.pending = true

	callNow := d.leading && d.timer == nil

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.scheduler.AfterFunc(d.wait, func() {
		d.waitExpired(seq)
	})

	if d.maxWait > 0 && d.maxTimer == nil {
		burst := d.burst
		d.maxTimer = d.scheduler.AfterFunc(d.maxWait, func() {
			d.maxWaitExpired(burst)
		})
	}

	var c call[R, A]
	if callNow {
		c = d.take()
	}
	d.mux.Unlock()

	if !callNow {
		return nil
	}

	d.log.Debug().Str("edge", "leading").Msg("debounce: invoke")

	return d.fn(c.recv, c.args...)
}

// Cancel discards any pending invocation without calling the target. It is a
// no-op if nothing is pending.
func (d *Debouncer[R, A]) Cancel() {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.timer != nil {
		d.log.Debug().Msg("debounce: cancel")
	}

	d.clear()
	d.take()
}

// Flush immediately invokes the target with the most recent call if an
// invocation is pending, and returns the target's error. It is a no-op if
// nothing is pending.
//
// When Leading is used and no calls were made after the leading invocation,
// Flush only ends the current wait period.
func (d *Debouncer[R, A]) Flush() error {
	d.mux.Lock()

	if d.timer == nil {
		d.mux.Unlock()

		return nil
	}

	d.clear()
	ok := d.pending
	c := d.take()
	d.mux.Unlock()

	if !ok {
		return nil
	}

	d.log.Debug().Str("edge", "flush").Msg("debounce: invoke")

	return d.fn(c.recv, c.args...)
}

// Pending reports whether a deferred invocation is currently scheduled.
func (d *Debouncer[R, A]) Pending() bool {
	d.mux.Lock()
	defer d.mux.Unlock()

	return d.timer != nil
}

// Wait blocks until every trailing edge invocation already started by a timer
// has returned. It must not be called from within the target.
func (d *Debouncer[R, A]) Wait() {
	d.mux.Lock()
	defer d.mux.Unlock()

	for d.running > 0 {
		d.idle.Wait()
	}
}

// waitExpired is called when the wait timer identified by seq expires.
func (d *Debouncer[R, A]) waitExpired(seq uint64) {
	d.mux.Lock()
	if seq != d.seq || d.timer == nil {
		d.mux.Unlock()
		d.log.Debug().Str("timer", "wait").Msg("debounce: stale timer")

		return
	}

	c, ok := d.expire()
	d.mux.Unlock()

	d.trailingInvoke("wait", c, ok)
}

// maxWaitExpired is called when the maxWait timer of the given burst expires.
func (d *Debouncer[R, A]) maxWaitExpired(burst uint64) {
	d.mux.Lock()
	if burst != d.burst || d.maxTimer == nil {
		d.mux.Unlock()
		d.log.Debug().Str("timer", "max_wait").Msg("debounce: stale timer")

		return
	}

	c, ok := d.expire()
	d.mux.Unlock()

	d.trailingInvoke("max_wait", c, ok)
}

// expire ends the current burst, returning the call to invoke on the trailing
// edge if there is one. It should only be called while the mutex is locked.
func (d *Debouncer[R, A]) expire() (call[R, A], bool) {
	d.clear()

	ok := d.trailing && d.pending
	c := d.take()
	if ok {
		d.running++
	}

	return c, ok
}

func (d *Debouncer[R, A]) trailingInvoke(timer string, c call[R, A], ok bool) {
	if !ok {
		d.log.Debug().Str("timer", timer).Msg("debounce: expired, nothing to invoke")

		return
	}

	defer d.done()

	d.log.Debug().Str("edge", "trailing").Str("timer", timer).
		Msg("debounce: invoke")

	if err := d.fn(c.recv, c.args...); err != nil && d.onError != nil {
		d.onError(err)
	}
}

func (d *Debouncer[R, A]) done() {
	d.mux.Lock()
	defer d.mux.Unlock()

	d.running--
	if d.running == 0 {
		d.idle.Broadcast()
	}
}

// clear stops any pending timers and invalidates callbacks which may already
// have been dispatched. It should only be called while the mutex is locked.
func (d *Debouncer[R, A]) clear() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.maxTimer != nil {
		d.maxTimer.Stop()
		d.maxTimer = nil
	}
	d.seq++
	d.burst++
}

// take returns and clears the recorded call. It should only be called while
// the mutex is locked.
func (d *Debouncer[R, A]) take() call[R, A] {
	c := call[R, A]{recv: d.recv, args: d.args}

	var zero R
	d.recv = zero
	d.args = nil
	d.pending = false

	return c
}
