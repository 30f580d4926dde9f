// Package fn wraps functions with timing and caching behavior: Debounce,
// Throttle and Memoize.
//
// Timers run on a clock.Clock so tests can drive them with clock.NewMock.
package fn
