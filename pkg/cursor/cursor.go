package cursor

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vango-dev/toolbox/pkg/bus"
	"github.com/vango-dev/toolbox/pkg/component"
	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/fn"
)

// Attributes reflecting the cursor state on its element.
const (
	AttrVisible = "data-cursor-visible"
	AttrHold    = "data-cursor-hold"
	AttrHover   = "data-cursor-hover"
)

// DefaultTriggers are the selectors that put the cursor in hover state.
var DefaultTriggers = []string{"a", "button"}

// DefaultProps are the props a Cursor starts from.
func DefaultProps() component.Props {
	return component.Props{
		"origin":  []any{0.5, 0.5},
		"inertia": 0.2,
		"z":       9999.0,
	}
}

// ResizeDelay debounces style recomputation after a resize event.
const ResizeDelay = 300 * time.Millisecond

// Hooks observe a Cursor. Any field may be nil.
type Hooks struct {
	OnShow    func()
	OnHide    func()
	OnHold    func()
	OnRelease func()
	OnMove    func(p dom.Point)
	OnHover   func(trigger string)
	OnDestroy func()
}

type options struct {
	defaults component.Props
	hooks    Hooks
	clock    clock.Clock
	markers  []component.Option
}

// Option configures the Cursor constructor.
type Option func(*options)

// WithDefaults overrides DefaultProps entries.
func WithDefaults(p component.Props) Option {
	return func(o *options) {
		for k, v := range p {
			o.defaults[k] = v
		}
	}
}

// WithHooks installs state observers.
func WithHooks(h Hooks) Option {
	return func(o *options) { o.hooks = h }
}

// WithClock sets the clock driving the resize debounce.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithComponentOptions passes options (such as custom markers) to
// component.NewBase.
func WithComponentOptions(opts ...component.Option) Option {
	return func(o *options) { o.markers = append(o.markers, opts...) }
}

// Cursor is a component following the pointer tracked by a Tracker.
type Cursor struct {
	*component.Base

	tracker *Tracker
	hooks   Hooks

	mu     sync.Mutex
	coords *dom.Point
	ready  bool

	onInit    *bus.Callback
	onVisible *bus.Callback
	onHolding *bus.Callback
	onTarget  *bus.Callback
	onResize  *bus.Callback
}

// Constructor returns a component constructor for cursors following t.
// The tracker is initialized by the first cursor built.
func Constructor(t *Tracker, opts ...Option) component.Constructor {
	o := options{defaults: DefaultProps()}
	for _, opt := range opts {
		opt(&o)
	}

	return func(el *dom.Node, props component.Props) component.Instance {
		merged := o.defaults.Clone()
		for k, v := range props {
			merged[k] = v
		}
		return mount(t, el, merged, o)
	}
}

// mount builds a cursor on el and starts following t.
func mount(t *Tracker, el *dom.Node, props component.Props, o options) *Cursor {
	c := &Cursor{
		Base:    component.NewBase(el, props, o.markers...),
		tracker: t,
		hooks:   o.hooks,
	}

	c.onInit = bus.Func(c.init)
	c.onVisible = bus.Func(func(v any, _ bus.Event) { c.toggleVisibility(v == true) })
	c.onHolding = bus.Func(func(v any, _ bus.Event) { c.toggleHolding(v == true) })
	c.onTarget = bus.Func(func(v any, _ bus.Event) {
		n, _ := v.(*dom.Node)
		c.checkTarget(n)
	})

	var timing []fn.TimingOption
	if o.clock != nil {
		timing = append(timing, fn.WithClock(o.clock))
	}
	resize := fn.Debounce(func(struct{}) { c.setup() }, ResizeDelay, timing...)
	c.onResize = bus.Func(func(any, bus.Event) { resize(struct{}{}) })

	c.setup()
	t.Events().Subscribe(dom.EventResize, c.onResize, nil)
	t.Store().Observe(c.onInit, KeyCoords)
	t.Init()
	return c
}

// Ready reports whether the cursor has seen the pointer and follows it.
func (c *Cursor) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Coords returns the cursor position, or false before the first move.
func (c *Cursor) Coords() (dom.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.coords == nil {
		return dom.Point{}, false
	}
	return *c.coords, true
}

func (c *Cursor) origin() (float64, float64) {
	o := c.Props.Floats("origin", nil)
	if len(o) < 2 {
		return 0.5, 0.5
	}
	return o[0], o[1]
}

// setup writes the fixed positioning style on the root.
func (c *Cursor) setup() {
	c.mu.Lock()
	coords := c.coords
	c.mu.Unlock()
	dom.SetAttr(c.Root, "style", c.style(coords))
}

func (c *Cursor) style(coords *dom.Point) string {
	ox, oy := c.origin()
	ox, oy = offset(ox), offset(oy)
	z := int(c.Props.Float("z", 9999))

	var b strings.Builder
	fmt.Fprintf(&b, "position: fixed; top: 0; left: 0; z-index: %d; pointer-events: none; ", z)
	if coords != nil {
		fmt.Fprintf(&b, "transform: translate3d(%gpx, %gpx, 0) translate(%g%%, %g%%);", coords.X, coords.Y, ox, oy)
	} else {
		fmt.Fprintf(&b, "transform: translate(%g%%, %g%%);", ox, oy)
	}
	return b.String()
}

// offset converts an origin fraction to a translate percentage.
func offset(f float64) float64 {
	if f == 0 {
		return 0
	}
	return -100 * f
}

func (c *Cursor) init(v any, _ bus.Event) {
	if !c.tracker.Visible() {
		return
	}
	coords, ok := v.(dom.Point)
	if !ok {
		return
	}

	store := c.tracker.Store()
	store.Unobserve(c.onInit, KeyCoords)
	store.Observe(c.onVisible, KeyVisible)
	store.Observe(c.onHolding, KeyHolding)
	store.Observe(c.onTarget, KeyTarget)

	c.Move(coords, 0)
	c.mu.Lock()
	c.ready = true
	c.mu.Unlock()
	c.Show()
}

// Tick moves the cursor one interpolation step towards the tracked
// position. It does nothing until the pointer has been seen.
func (c *Cursor) Tick() {
	c.mu.Lock()
	ready, hasCoords := c.ready, c.coords != nil
	c.mu.Unlock()
	if !ready {
		return
	}

	inertia := c.Props.Float("inertia", 0)
	if !hasCoords || inertia <= 0 || inertia >= 1 {
		inertia = 0
	}
	c.Move(c.tracker.Coords(), inertia)
}

// Move places the cursor at p, or a fraction inertia of the way from its
// current position to p when inertia is in (0, 1).
func (c *Cursor) Move(p dom.Point, inertia float64) {
	c.mu.Lock()
	next := p
	if inertia > 0 && inertia < 1 && c.coords != nil {
		next = dom.Point{
			X: lerp(c.coords.X, p.X, inertia),
			Y: lerp(c.coords.Y, p.Y, inertia),
		}
	}
	c.coords = &next
	c.mu.Unlock()

	dom.SetAttr(c.Root, "style", c.style(&next))
	if c.hooks.OnMove != nil {
		c.hooks.OnMove(next)
	}
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

func (c *Cursor) toggleVisibility(visible bool) {
	if visible {
		c.Show()
	} else {
		c.Hide()
	}
}

func (c *Cursor) toggleHolding(holding bool) {
	if holding {
		c.Hold()
	} else {
		c.Release()
	}
}

// checkTarget enters hover state when target is, or sits inside, one of the
// trigger selectors. The hover attribute holds the trigger's tag name.
func (c *Cursor) checkTarget(target *dom.Node) {
	triggers := c.Props.Strings("triggers", DefaultTriggers)
	trigger := ""
	if target != nil {
		if t := dom.Closest(target, strings.Join(triggers, ", ")); t != nil {
			trigger = t.Data
		}
	}
	c.Hover(trigger)
}

// Show sets the visible attribute.
func (c *Cursor) Show() {
	dom.SetAttr(c.Root, AttrVisible, "")
	if c.hooks.OnShow != nil {
		c.hooks.OnShow()
	}
}

// Hide removes the visible attribute.
func (c *Cursor) Hide() {
	dom.RemoveAttr(c.Root, AttrVisible)
	if c.hooks.OnHide != nil {
		c.hooks.OnHide()
	}
}

// Hold sets the hold attribute.
func (c *Cursor) Hold() {
	dom.SetAttr(c.Root, AttrHold, "")
	if c.hooks.OnHold != nil {
		c.hooks.OnHold()
	}
}

// Release removes the hold attribute.
func (c *Cursor) Release() {
	dom.RemoveAttr(c.Root, AttrHold)
	if c.hooks.OnRelease != nil {
		c.hooks.OnRelease()
	}
}

// Hover sets the hover attribute to trigger, or removes it when trigger is
// empty.
func (c *Cursor) Hover(trigger string) {
	if trigger != "" {
		dom.SetAttr(c.Root, AttrHover, trigger)
	} else {
		dom.RemoveAttr(c.Root, AttrHover)
	}
	if c.hooks.OnHover != nil {
		c.hooks.OnHover(trigger)
	}
}

// Destroy clears the cursor styles and stops following the tracker. The
// tracker itself keeps running.
func (c *Cursor) Destroy() error {
	dom.RemoveAttr(c.Root, "style")

	c.mu.Lock()
	c.ready = false
	c.mu.Unlock()

	c.tracker.Events().Unsubscribe(dom.EventResize, c.onResize)
	store := c.tracker.Store()
	store.Unobserve(c.onInit, KeyCoords)
	store.Unobserve(c.onVisible, KeyVisible)
	store.Unobserve(c.onHolding, KeyHolding)
	store.Unobserve(c.onTarget, KeyTarget)

	if c.hooks.OnDestroy != nil {
		c.hooks.OnDestroy()
	}
	return nil
}
