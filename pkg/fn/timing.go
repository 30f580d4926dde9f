package fn

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

type timingOptions struct {
	clock clock.Clock
}

// TimingOption configures Debounce and Throttle.
type TimingOption func(*timingOptions)

// WithClock sets the clock used for timers. Defaults to the wall clock.
func WithClock(c clock.Clock) TimingOption {
	return func(o *timingOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

func buildTiming(opts []TimingOption) timingOptions {
	o := timingOptions{clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Debounce returns a function that delays calling fn until d has elapsed
// since its last invocation. Only the arguments of the last call are used.
// A non-positive d returns fn unchanged.
func Debounce[T any](fn func(T), d time.Duration, opts ...TimingOption) func(T) {
	if fn == nil || d <= 0 {
		return fn
	}
	o := buildTiming(opts)

	var (
		mu    sync.Mutex
		timer *clock.Timer
	)
	return func(arg T) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = o.clock.AfterFunc(d, func() { fn(arg) })
	}
}

// Throttle returns a function that calls fn at most once per d. Calls made
// while the window is open are dropped. A non-positive d returns fn
// unchanged.
func Throttle[T any](fn func(T), d time.Duration, opts ...TimingOption) func(T) {
	if fn == nil || d <= 0 {
		return fn
	}
	o := buildTiming(opts)

	var (
		mu     sync.Mutex
		opened time.Time
		fired  bool
	)
	return func(arg T) {
		mu.Lock()
		now := o.clock.Now()
		if fired && now.Sub(opened) < d {
			mu.Unlock()
			return
		}
		fired = true
		opened = now
		mu.Unlock()

		fn(arg)
	}
}
