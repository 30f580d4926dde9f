package share

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/toolbox/pkg/bus"
	"github.com/vango-dev/toolbox/pkg/dom"
)

// TriggerSelector matches elements whose clicks open a share link.
const TriggerSelector = "[data-share-target]"

// Window name and features passed to the Opener.
const (
	WindowTarget   = "_blank"
	WindowFeatures = "width=640,height=480"
)

// Opener opens a share link, usually in a new window.
type Opener interface {
	Open(url, target, features string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url, target, features string) error

// Open calls f.
func (f OpenerFunc) Open(url, target, features string) error {
	return f(url, target, features)
}

// Manager opens share links through an Opener and listens for clicks on
// trigger elements dispatched on an events bus.
type Manager struct {
	mu      sync.Mutex
	events  *bus.Bus
	opener  Opener
	pageURL string
	logger  *slog.Logger

	click *bus.Callback
	root  *dom.Node
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithEvents sets the bus click events are read from.
func WithEvents(b *bus.Bus) ManagerOption {
	return func(m *Manager) { m.events = b }
}

// WithPageURL sets the URL shared when Data.URL is empty.
func WithPageURL(u string) ManagerOption {
	return func(m *Manager) { m.pageURL = u }
}

// WithLogger sets the Manager's logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a Manager opening links with opener.
func NewManager(opener Opener, opts ...ManagerOption) *Manager {
	m := &Manager{
		events: bus.New(),
		opener: opener,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.click = bus.Func(m.onEvent)
	return m
}

// Events returns the bus the Manager listens on.
func (m *Manager) Events() *bus.Bus {
	return m.events
}

// GenerateURL is the package GenerateURL with Data.URL defaulting to the
// page URL.
func (m *Manager) GenerateURL(d Data) (string, error) {
	if d.URL == "" {
		d.URL = m.pageURL
	}
	return GenerateURL(d)
}

// Share builds the link for d and opens it. Nothing is opened when the
// link cannot be generated.
func (m *Manager) Share(d Data) error {
	url, err := m.GenerateURL(d)
	if err != nil {
		return err
	}
	if m.opener == nil {
		return nil
	}
	return m.opener.Open(url, WindowTarget, WindowFeatures)
}

// ListenClicks starts handling click events whose target lies inside root
// (anywhere, when root is nil). Calling it again only moves the root.
func (m *Manager) ListenClicks(root *dom.Node) {
	m.mu.Lock()
	m.root = root
	m.mu.Unlock()
	m.events.Subscribe(dom.EventClick, m.click, nil)
}

// UnlistenClicks stops handling click events.
func (m *Manager) UnlistenClicks() {
	m.events.Unsubscribe(dom.EventClick, m.click)
}

func (m *Manager) onEvent(payload any, _ bus.Event) {
	e, ok := payload.(*dom.Event)
	if !ok {
		return
	}

	m.mu.Lock()
	root := m.root
	m.mu.Unlock()
	if root != nil && !dom.Contains(root, e.Target) {
		return
	}

	dom.Delegate(TriggerSelector, m.onTriggerClick)(e)
}

func (m *Manager) onTriggerClick(e *dom.Event, target *dom.Node) {
	e.PreventDefault()
	if err := m.Share(DataFromElement(target)); err != nil {
		m.logger.Debug("share: click ignored", "error", err)
	}
}
