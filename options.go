package debounce

import (
	"time"

	"github.com/rs/zerolog"
)

// Option is a function that can be used to configure a Debouncer.
type Option func(*config)

type config struct {
	leading   bool
	trailing  bool
	maxWait   time.Duration
	scheduler Scheduler
	logger    zerolog.Logger
	onError   func(error)
}

func newConfig(opts []Option) *config {
	c := &config{
		scheduler: SystemScheduler{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// If neither leading nor trailing is set, default to trailing.
	if !c.leading && !c.trailing {
		c.trailing = true
	}

	if c.scheduler == nil {
		c.scheduler = SystemScheduler{}
	}

	return c
}

// Leading returns an option that will cause the debounced function to invoke
// the target immediately on the first call of a burst.
//
// When only leading is used, a burst of calls immediately invokes the target,
// and any subsequent calls are ignored until the wait duration has passed
// without further calls.
func Leading() Option {
	return func(c *config) {
		c.leading = true
	}
}

// Trailing returns an option that will cause the target to be invoked after
// the wait duration has passed since the last call. This is the default when
// Leading is not used.
//
// If both Leading and Trailing are used, a burst of calls immediately invokes
// the target, followed by another invocation after the wait duration has
// passed since the last call. If only a single call is made, only one
// invocation will occur.
func Trailing() Option {
	return func(c *config) {
		c.trailing = true
	}
}

// MaxWait returns an option that will cause the target to be invoked at least
// once every maxWait duration, even if the debounced function is called
// repeatedly within the wait duration.
//
// Without a max wait, the target might never be invoked if the debounced
// function is called repeatedly within the wait duration. A maxWait less than
// or equal to the wait duration is ignored.
func MaxWait(maxWait time.Duration) Option {
	return func(c *config) {
		c.maxWait = maxWait
	}
}

// WithScheduler returns an option that sets the Scheduler used to defer
// invocations. Defaults to SystemScheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
	}
}

// WithLogger returns an option that sets a logger which receives debug level
// events about timers and invocations.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// OnError returns an option that sets a handler for errors returned by the
// target when it is invoked from a timer. Errors from leading edge and
// flushed invocations are returned to the caller instead.
func OnError(f func(error)) Option {
	return func(c *config) {
		c.onError = f
	}
}
