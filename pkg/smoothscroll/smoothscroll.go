// Package smoothscroll eases a fixed scroll container towards the native
// scroll position, so native scrolling keeps working while the content
// moves smoothly.
//
// The container is the element marked data-smooth-scroll. The host calls
// Tick once per animation frame with the document's native scroll offset.
package smoothscroll

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/vango-dev/toolbox/pkg/bus"
	"github.com/vango-dev/toolbox/pkg/dom"
)

// ContainerSelector matches the scroll container.
const ContainerSelector = "[data-smooth-scroll]"

// DefaultIntensity is used when no intensity is configured.
const DefaultIntensity = 0.85

// Scroller drives one smooth scroll container.
type Scroller struct {
	// Intensity in [0, 1): higher values ease more slowly.
	Intensity float64

	mu        sync.Mutex
	container *dom.Node
	body      *dom.Node
	scrollTop float64
	scrolled  bool
	height    func(container *dom.Node) float64
	onScroll  func(y float64)
	events    *bus.Bus
	onResize  *bus.Callback
	logger    *slog.Logger
}

// Option configures a Scroller.
type Option func(*Scroller)

// WithIntensity sets the easing intensity.
func WithIntensity(i float64) Option {
	return func(s *Scroller) { s.Intensity = i }
}

// WithScrollTop sets the initial scroll position.
func WithScrollTop(y float64) Option {
	return func(s *Scroller) { s.scrollTop = y }
}

// WithHeight sets how the container height is measured. The body is
// sized to it so the native scrollbar spans the content. Without it the
// body height is left alone.
func WithHeight(fn func(container *dom.Node) float64) Option {
	return func(s *Scroller) { s.height = fn }
}

// WithOnScroll is called with the new offset after every scroll step.
func WithOnScroll(fn func(y float64)) Option {
	return func(s *Scroller) { s.onScroll = fn }
}

// WithEvents sets the bus resize events arrive on.
func WithEvents(b *bus.Bus) Option {
	return func(s *Scroller) { s.events = b }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scroller) {
		if l != nil {
			s.logger = l
		}
	}
}

// New sets up smooth scrolling for the container found in doc. When doc has
// no container the Scroller is inert.
func New(doc *dom.Node, opts ...Option) *Scroller {
	s := &Scroller{
		Intensity: DefaultIntensity,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.container = dom.Query(doc, ContainerSelector)
	s.body = dom.Query(doc, "body")
	if s.container == nil {
		s.logger.Debug("smoothscroll: no container", "selector", ContainerSelector)
		return s
	}

	s.setRootHeight()
	dom.SetStyle(s.body, "overscroll-behavior", "none")
	dom.SetStyle(s.container,
		"width", "100%",
		"overflow", "hidden",
		"position", "fixed",
		"top", "0",
		"left", "0",
	)

	if s.events != nil {
		s.onResize = bus.Func(func(any, bus.Event) { s.setRootHeight() })
		s.events.Subscribe(dom.EventResize, s.onResize, nil)
	}
	return s
}

// Active reports whether a container was found.
func (s *Scroller) Active() bool {
	return s.container != nil
}

// Container returns the scroll container, or nil.
func (s *Scroller) Container() *dom.Node {
	return s.container
}

// ScrollTop returns the current eased offset.
func (s *Scroller) ScrollTop() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollTop
}

func (s *Scroller) setRootHeight() {
	if s.height == nil || s.body == nil {
		return
	}
	dom.SetStyle(s.body, "height", px(s.height(s.container)))
}

// Tick moves one easing step from the current offset towards native.
func (s *Scroller) Tick(native float64) {
	if !s.Active() {
		return
	}
	s.mu.Lock()
	from := s.scrollTop
	s.mu.Unlock()

	factor := 1 - s.Intensity
	s.ScrollTo(from + (native-from)*factor)
}

// ScrollTo places the content at offset y.
func (s *Scroller) ScrollTo(y float64) {
	if !s.Active() {
		return
	}
	s.mu.Lock()
	if s.scrolled && y == s.scrollTop {
		s.mu.Unlock()
		return
	}
	s.scrollTop = y
	s.scrolled = true
	s.mu.Unlock()

	dom.SetStyle(s.container,
		"overflow", "hidden",
		"position", "fixed",
		"transform", fmt.Sprintf("translate3d(0, %s, 0)", px(-y)),
	)
	if s.onScroll != nil {
		s.onScroll(y)
	}
}

// Destroy stops listening and clears the styles set by New and ScrollTo.
func (s *Scroller) Destroy() error {
	if s.events != nil && s.onResize != nil {
		s.events.Unsubscribe(dom.EventResize, s.onResize)
	}
	if !s.Active() {
		return nil
	}
	dom.ClearStyle(s.body, "height", "overscroll-behavior")
	dom.ClearStyle(s.container, "width", "height", "position", "top", "left", "overflow", "transform")
	return nil
}

func px(v float64) string {
	if v == 0 {
		return "0px"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
