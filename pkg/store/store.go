// Package store provides a small observable key/value store.
//
// A Store holds an ordered State and an internal event bus. Set compares the
// new value against the current one with deep.Equal and notifies observers of
// that key only when the value actually changed:
//
//	s := store.New(store.Of(store.E("count", 0)))
//	s.Observe(bus.Func(func(v any, _ bus.Event) {
//	    fmt.Println("count is now", v)
//	}), "count")
//
//	s.Set("count", 1) // notifies
//	s.Set("count", 1) // no-op
//	s.Reset()         // notifies with 0
//
// Notifications run synchronously on the goroutine calling Set, after the
// store's lock has been released, so observers may read or write the store.
package store

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/toolbox/pkg/bus"
	"github.com/vango-dev/toolbox/pkg/deep"
)

// ChangeHook is called after a key changed and its observers were notified.
type ChangeHook func(key string)

// Store is an observable key/value store.
type Store struct {
	mu       sync.Mutex
	original State
	state    State
	bus      *bus.Bus
	onChange ChangeHook
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithChangeHook installs a hook observing every effective change.
func WithChangeHook(h ChangeHook) Option {
	return func(s *Store) {
		s.onChange = h
	}
}

// WithBus makes the store dispatch on b instead of a private bus.
func WithBus(b *bus.Bus) Option {
	return func(s *Store) {
		if b != nil {
			s.bus = b
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store seeded with initial. The initial state is captured
// once and restored by Reset.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		original: initial.DeepClone(),
		state:    initial.DeepClone(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = bus.New()
	}
	return s
}

// Get returns a deep copy of the full state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DeepClone()
}

// Value returns the current value of key, or nil when absent.
func (s *Store) Value(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Value(key)
}

// Lookup returns the current value of key and whether it is present.
func (s *Store) Lookup(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Get(key)
}

// Set assigns value to key. Observers of key are notified only when value
// differs structurally from the current value. A nil value on an absent key
// is a change: the key becomes present.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	current, ok := s.state.Get(key)
	if ok && deep.Equal(current, value) {
		s.mu.Unlock()
		return
	}
	s.state.Set(key, value)
	hook := s.onChange
	s.mu.Unlock()

	s.logger.Debug("store: value changed", "key", key)
	s.bus.Dispatch(key, value)

	if hook != nil {
		hook(key)
	}
}

// Merge applies every entry of partial through Set, in the record's
// iteration order. Each key is compared and dispatched independently.
func (s *Store) Merge(partial State) {
	for _, e := range partial.Entries() {
		s.Set(e.Key, e.Value)
	}
}

// Update calls fn with a copy of the current state and merges the record it
// returns.
func (s *Store) Update(fn func(State) State) {
	if fn == nil {
		return
	}
	s.Merge(fn(s.Get()))
}

// Reset merges the initial state back, notifying observers of every key
// whose current value differs from its initial value. Keys added after
// construction are left untouched.
func (s *Store) Reset() {
	s.Merge(s.original.DeepClone())
}

// Initial returns a copy of the state the store was created with.
func (s *Store) Initial() State {
	return s.original.DeepClone()
}

// Observe subscribes cb to changes of every given key.
func (s *Store) Observe(cb *bus.Callback, keys ...string) {
	for _, k := range keys {
		s.bus.Subscribe(k, cb, nil)
	}
}

// Unobserve removes cb from every given key.
func (s *Store) Unobserve(cb *bus.Callback, keys ...string) {
	for _, k := range keys {
		s.bus.Unsubscribe(k, cb)
	}
}

// Observed reports whether key has at least one observer.
func (s *Store) Observed(key string) bool {
	return s.bus.HasSubscriptions(key)
}
