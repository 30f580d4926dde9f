// Package cursor implements a custom cursor: a global Tracker that follows
// the pointer from dispatched UI events, and a Cursor component that
// mirrors the tracked state onto an element.
package cursor

import (
	"sync"

	"github.com/vango-dev/toolbox/pkg/bus"
	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/store"
)

// Keys of the tracker state.
const (
	KeyCoords  = "coords"
	KeyVisible = "visible"
	KeyHolding = "holding"
	KeyTarget  = "target"
)

// Tracker keeps the pointer state in a store fed by events dispatched on
// its bus. Each event is dispatched under its type with a *dom.Event
// payload.
type Tracker struct {
	mu          sync.Mutex
	events      *bus.Bus
	store       *store.Store
	initialized bool
	listeners   []listener
}

type listener struct {
	eventType string
	cb        *bus.Callback
}

var (
	defaultOnce    sync.Once
	defaultTracker *Tracker
)

// Default returns the process-wide tracker.
func Default() *Tracker {
	defaultOnce.Do(func() {
		defaultTracker = NewTracker(nil)
	})
	return defaultTracker
}

// InitialState is the state of a fresh tracker.
func InitialState() store.State {
	return store.Of(
		store.E(KeyCoords, dom.Point{}),
		store.E(KeyVisible, false),
		store.E(KeyHolding, false),
		store.E(KeyTarget, nil),
	)
}

// NewTracker creates a tracker listening on events. A nil bus gets a
// private one. Store options are passed through to the state store.
func NewTracker(events *bus.Bus, opts ...store.Option) *Tracker {
	if events == nil {
		events = bus.New()
	}
	t := &Tracker{
		events: events,
		store:  store.New(InitialState(), opts...),
	}

	onMove := bus.Func(t.onMove)
	onEnter := bus.Func(func(any, bus.Event) { t.store.Set(KeyVisible, true) })
	onLeave := bus.Func(func(any, bus.Event) {
		t.store.Merge(store.Of(store.E(KeyVisible, false), store.E(KeyTarget, nil)))
	})
	onDown := bus.Func(func(any, bus.Event) { t.store.Set(KeyHolding, true) })
	onUp := bus.Func(func(any, bus.Event) { t.store.Set(KeyHolding, false) })
	onOver := bus.Func(t.onOver)

	t.listeners = []listener{
		{dom.EventMouseMove, onMove},
		{dom.EventTouchMove, onMove},
		{dom.EventMouseEnter, onEnter},
		{dom.EventMouseLeave, onLeave},
		{dom.EventTouchLeave, onLeave},
		{dom.EventMouseDown, onDown},
		{dom.EventTouchStart, onDown},
		{dom.EventMouseUp, onUp},
		{dom.EventTouchEnd, onUp},
		{dom.EventMouseOver, onOver},
	}
	return t
}

// Init starts listening. Calling it on an initialized tracker does nothing.
func (t *Tracker) Init() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.initialized {
		return
	}
	for _, l := range t.listeners {
		t.events.Subscribe(l.eventType, l.cb, nil)
	}
	t.initialized = true
}

// Destroy stops listening. Calling it on an idle tracker does nothing.
func (t *Tracker) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized {
		return
	}
	for _, l := range t.listeners {
		t.events.Unsubscribe(l.eventType, l.cb)
	}
	t.initialized = false
}

// Initialized reports whether the tracker is listening.
func (t *Tracker) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialized
}

// Events returns the bus UI events are dispatched on.
func (t *Tracker) Events() *bus.Bus { return t.events }

// Store returns the state store.
func (t *Tracker) Store() *store.Store { return t.store }

// State returns a copy of the tracked state.
func (t *Tracker) State() store.State { return t.store.Get() }

// Coords returns the last pointer position.
func (t *Tracker) Coords() dom.Point {
	p, _ := t.store.Value(KeyCoords).(dom.Point)
	return p
}

// Visible reports whether the pointer is inside the document.
func (t *Tracker) Visible() bool {
	v, _ := t.store.Value(KeyVisible).(bool)
	return v
}

// Holding reports whether a button or touch is down.
func (t *Tracker) Holding() bool {
	v, _ := t.store.Value(KeyHolding).(bool)
	return v
}

// Target returns the element last hovered, or nil.
func (t *Tracker) Target() *dom.Node {
	n, _ := t.store.Value(KeyTarget).(*dom.Node)
	return n
}

func (t *Tracker) onMove(payload any, _ bus.Event) {
	e, ok := payload.(*dom.Event)
	if !ok {
		return
	}
	t.store.Merge(store.Of(store.E(KeyCoords, e.Coords()), store.E(KeyVisible, true)))
}

func (t *Tracker) onOver(payload any, _ bus.Event) {
	e, ok := payload.(*dom.Event)
	if !ok || e.Target == nil {
		t.store.Set(KeyTarget, nil)
		return
	}
	t.store.Set(KeyTarget, e.Target)
}
