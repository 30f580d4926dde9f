package toolbox

import (
	"github.com/vango-dev/toolbox/pkg/fn"
)

// Debounce debounces f with the configured window on the Kit's clock.
func Debounce[T any](k *Kit, f func(T)) func(T) {
	return fn.Debounce(f, k.cfg.DebounceWindow(), fn.WithClock(k.clock))
}

// Throttle throttles f with the configured window on the Kit's clock.
func Throttle[T any](k *Kit, f func(T)) func(T) {
	return fn.Throttle(f, k.cfg.ThrottleWindow(), fn.WithClock(k.clock))
}

// Memoize memoizes f with the configured cache size.
func Memoize[A, R any](k *Kit, f func(A) R) (func(A) R, error) {
	return fn.Memoize(f, fn.WithCacheSize(k.cfg.Memoize.CacheSize), fn.WithMemoLogger(k.logger))
}
