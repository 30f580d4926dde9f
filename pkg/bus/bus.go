package bus

import "sync"

// Handler receives a dispatched payload together with the dispatch details.
type Handler func(payload any, e Event)

// Callback is a subscribable handler. Its pointer is its identity.
type Callback struct {
	fn Handler
}

// Func wraps fn in a Callback handle. A nil fn yields a nil handle.
func Func(fn Handler) *Callback {
	if fn == nil {
		return nil
	}
	return &Callback{fn: fn}
}

// Call invokes the wrapped handler directly.
func (c *Callback) Call(payload any, e Event) {
	if c == nil || c.fn == nil {
		return
	}
	c.fn(payload, e)
}

// Options configures how payloads reach one subscription.
type Options struct {
	// PayloadFilter transforms the payload before the callback sees it.
	PayloadFilter func(any) any

	// DefaultPayload is used when Dispatch is called without a payload.
	DefaultPayload any
}

// Event describes one delivery to a callback.
type Event struct {
	// Type is the dispatched event type.
	Type string

	// Options are the options the callback was subscribed with.
	Options Options

	// RawPayload is the payload before PayloadFilter was applied.
	RawPayload any
}

type subscription struct {
	cb   *Callback
	opts Options
}

// Hook observes dispatches. It is called once per Dispatch that reaches at
// least one subscriber, after every callback has returned.
type Hook func(eventType string, delivered int)

// Bus maps event types to ordered subscription lists.
//
// The subscription table is guarded by a mutex that is never held while
// callbacks run, so callbacks may subscribe and unsubscribe re-entrantly.
type Bus struct {
	mu            sync.Mutex
	subscriptions map[string][]subscription
	hook          Hook
}

// Option configures a Bus.
type Option func(*Bus)

// WithHook installs a dispatch observer.
func WithHook(h Hook) Option {
	return func(b *Bus) {
		b.hook = h
	}
}

// New creates an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{subscriptions: make(map[string][]subscription)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe adds cb under eventType. It is a no-op when eventType is empty,
// cb is nil, or cb is already subscribed under eventType. A nil opts is
// treated as zero Options.
func (b *Bus) Subscribe(eventType string, cb *Callback, opts *Options) {
	if eventType == "" || cb == nil || cb.fn == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subscriptions[eventType] {
		if s.cb == cb {
			return
		}
	}

	var o Options
	if opts != nil {
		o = *opts
	}
	b.subscriptions[eventType] = append(b.subscriptions[eventType], subscription{cb: cb, opts: o})
}

// Unsubscribe removes cb from eventType. It is a no-op when cb is not
// subscribed.
func (b *Bus) Unsubscribe(eventType string, cb *Callback) {
	if eventType == "" || cb == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.subscriptions[eventType]
	if !ok {
		return
	}
	for i, s := range subs {
		if s.cb == cb {
			// Copy so an in-flight Dispatch keeps its own snapshot intact.
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			b.subscriptions[eventType] = next
			return
		}
	}
}

// Dispatch invokes every callback subscribed to eventType, in subscription
// order. payload is optional; when omitted each subscription's
// DefaultPayload is used instead. Only the first payload value is used.
func (b *Bus) Dispatch(eventType string, payload ...any) {
	if eventType == "" {
		return
	}

	b.mu.Lock()
	subs := b.subscriptions[eventType]
	hook := b.hook
	b.mu.Unlock()

	if len(subs) == 0 {
		return
	}

	for _, s := range subs {
		raw := s.opts.DefaultPayload
		if len(payload) > 0 {
			raw = payload[0]
		}
		p := raw
		if s.opts.PayloadFilter != nil {
			p = s.opts.PayloadFilter(raw)
		}
		s.cb.fn(p, Event{Type: eventType, Options: s.opts, RawPayload: raw})
	}

	if hook != nil {
		hook(eventType, len(subs))
	}
}

// HasSubscriptions reports whether at least one callback is subscribed to
// eventType.
func (b *Bus) HasSubscriptions(eventType string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscriptions[eventType]) > 0
}

// Types returns the event types that currently have subscribers.
func (b *Bus) Types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	types := make([]string, 0, len(b.subscriptions))
	for t, subs := range b.subscriptions {
		if len(subs) > 0 {
			types = append(types, t)
		}
	}
	return types
}

// Clear removes the subscriptions of the given event types, or of every type
// when called without arguments.
func (b *Bus) Clear(eventTypes ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(eventTypes) == 0 {
		b.subscriptions = make(map[string][]subscription)
		return
	}
	for _, t := range eventTypes {
		delete(b.subscriptions, t)
	}
}
