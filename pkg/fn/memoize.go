package fn

import (
	"encoding/json"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vango-dev/toolbox/internal/errors"
)

type memoOptions struct {
	size   int
	logger *slog.Logger
}

// MemoOption configures Memoize.
type MemoOption func(*memoOptions)

// WithCacheSize bounds the cache to n results, evicting the least recently
// used. n <= 0 keeps every result.
func WithCacheSize(n int) MemoOption {
	return func(o *memoOptions) { o.size = n }
}

// WithMemoLogger sets the logger receiving cache hit/miss debug output.
func WithMemoLogger(l *slog.Logger) MemoOption {
	return func(o *memoOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// cache is the storage behind a memoized function.
type cache[V any] interface {
	Get(key string) (V, bool)
	Add(key string, value V) bool
}

type mapCache[V any] struct {
	mu sync.Mutex
	m  map[string]V
}

func (c *mapCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache[V]) Add(key string, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return false
}

// Memoize caches the results of fn keyed by the JSON encoding of its
// argument. Arguments that cannot be encoded bypass the cache.
//
// Memoize reports E001 when fn is nil.
func Memoize[A, R any](fn func(A) R, opts ...MemoOption) (func(A) R, error) {
	if fn == nil {
		return nil, errors.New("E001")
	}

	o := memoOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	var store cache[R]
	if o.size > 0 {
		c, err := lru.New[string, R](o.size)
		if err != nil {
			return nil, errors.FromError(err, "E001")
		}
		store = c
	} else {
		store = &mapCache[R]{m: make(map[string]R)}
	}

	return func(arg A) R {
		raw, err := json.Marshal(arg)
		if err != nil {
			return fn(arg)
		}
		key := string(raw)

		if v, ok := store.Get(key); ok {
			o.logger.Debug("memoize: cache hit", "key", key)
			return v
		}
		o.logger.Debug("memoize: calculating result", "key", key)
		v := fn(arg)
		store.Add(key, v)
		return v
	}, nil
}
