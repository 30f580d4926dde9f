package dom

import "strings"

// Event types understood by the toolbox widgets.
const (
	EventClick      = "click"
	EventMouseMove  = "mousemove"
	EventTouchMove  = "touchmove"
	EventMouseEnter = "mouseenter"
	EventMouseLeave = "mouseleave"
	EventTouchLeave = "touchleave"
	EventMouseDown  = "mousedown"
	EventTouchStart = "touchstart"
	EventMouseUp    = "mouseup"
	EventTouchEnd   = "touchend"
	EventMouseOver  = "mouseover"
	EventResize     = "resize"
	EventScroll     = "scroll"
)

// Point is a pair of viewport coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Event is a UI event delivered to toolbox widgets.
type Event struct {
	// Type is the event type (e.g. "click").
	Type string

	// Target is the element the event originated from.
	Target *Node

	// Client holds pointer coordinates for mouse events.
	Client Point

	// Touches holds active touch points for touch events; ChangedTouches
	// holds the touches that changed in this event.
	Touches        []Point
	ChangedTouches []Point

	defaultPrevented bool
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Coords returns the pointer position, normalizing touch events to their
// first active (or changed) touch.
func (e *Event) Coords() Point {
	if strings.Contains(e.Type, "touch") {
		if len(e.Touches) > 0 {
			return e.Touches[0]
		}
		if len(e.ChangedTouches) > 0 {
			return e.ChangedTouches[0]
		}
	}
	return e.Client
}

// Delegate returns a handler that calls fn only for events whose target is
// (or sits inside) an element matching selector. An invalid selector never
// matches.
func Delegate(selector string, fn func(e *Event, target *Node)) func(e *Event) {
	return func(e *Event) {
		if e == nil || e.Target == nil {
			return
		}
		target := Closest(e.Target, selector)
		if target == nil {
			return
		}
		fn(e, target)
	}
}
