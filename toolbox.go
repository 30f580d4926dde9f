// Package toolbox wires the toolbox packages together behind one Kit.
//
// A Kit carries the configuration, logger and telemetry shared by every
// helper: component attachment, stores, the pointer tracker, the share
// manager and smooth scrolling.
//
//	kit, err := toolbox.New(toolbox.WithConfig(cfg))
//	if err != nil {
//	    return err
//	}
//	kit.Register("Counter", component.Class(NewCounter))
//
//	instances := kit.Attach(ctx, doc)
//	defer kit.Detach(ctx, instances)
package toolbox

import (
	"context"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/toolbox/internal/config"
	"github.com/vango-dev/toolbox/internal/telemetry"
	"github.com/vango-dev/toolbox/pkg/bus"
	"github.com/vango-dev/toolbox/pkg/component"
	"github.com/vango-dev/toolbox/pkg/cursor"
	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/share"
	"github.com/vango-dev/toolbox/pkg/smoothscroll"
	"github.com/vango-dev/toolbox/pkg/store"
)

// CursorName is the registry name of the built-in cursor component.
const CursorName = "Cursor"

// Kit bundles configured toolbox services.
type Kit struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *telemetry.Recorder
	clock   clock.Clock

	events  *bus.Bus
	tracker *cursor.Tracker
	sharer  *share.Manager

	mu       sync.RWMutex
	registry component.Registry
}

// New builds a Kit. The configuration is validated; invalid settings are
// reported together as E103 errors.
func New(opts ...Option) (*Kit, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.cfg
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	k := &Kit{
		cfg:      cfg,
		logger:   o.logger,
		metrics:  o.metrics,
		clock:    o.clock,
		registry: component.Registry{},
	}
	if k.logger == nil {
		k.logger = slog.Default()
	}
	if k.clock == nil {
		k.clock = clock.New()
	}
	if k.metrics == nil && (cfg.Metrics.Enabled || cfg.Tracing.Enabled) {
		var topts []telemetry.Option
		if cfg.Metrics.Namespace != "" {
			topts = append(topts, telemetry.WithNamespace(cfg.Metrics.Namespace))
		}
		if cfg.Tracing.Enabled {
			topts = append(topts, telemetry.WithTracer(cfg.Tracing.TracerName))
		}
		k.metrics = telemetry.New(topts...)
	}

	k.events = bus.New(bus.WithHook(k.metrics.BusDispatch))
	k.tracker = cursor.NewTracker(k.events, k.storeOptions()...)
	k.sharer = share.NewManager(o.opener,
		share.WithEvents(k.events),
		share.WithPageURL(o.pageURL),
		share.WithLogger(k.logger),
	)

	k.registry[CursorName] = component.Class(cursor.Constructor(k.tracker,
		cursor.WithDefaults(k.cursorDefaults()),
		cursor.WithClock(k.clock),
		cursor.WithComponentOptions(component.WithMarkers(k.markers())),
	))
	return k, nil
}

// Config returns the Kit's configuration.
func (k *Kit) Config() *config.Config { return k.cfg }

// Logger returns the Kit's logger.
func (k *Kit) Logger() *slog.Logger { return k.logger }

// Metrics returns the telemetry recorder, or nil when disabled.
func (k *Kit) Metrics() *telemetry.Recorder { return k.metrics }

// Events returns the bus UI events are dispatched on.
func (k *Kit) Events() *bus.Bus { return k.events }

// Tracker returns the pointer tracker backing cursor components.
func (k *Kit) Tracker() *cursor.Tracker { return k.tracker }

// ShareManager returns the share manager listening on Events.
func (k *Kit) ShareManager() *share.Manager { return k.sharer }

// Dispatch delivers a UI event to every listener of its type.
func (k *Kit) Dispatch(e *dom.Event) {
	if e == nil || e.Type == "" {
		return
	}
	k.events.Dispatch(e.Type, e)
}

// Register adds or replaces a registry entry.
func (k *Kit) Register(name string, entry component.Entry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.registry[name] = entry
}

// Registry returns a copy of the registry, built-in cursor included.
func (k *Kit) Registry() component.Registry {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make(component.Registry, len(k.registry))
	for name, entry := range k.registry {
		out[name] = entry
	}
	return out
}

func (k *Kit) markers() component.Markers {
	return component.Markers{
		Component: k.cfg.Attributes.Component,
		Ref:       k.cfg.Attributes.Ref,
	}
}

func (k *Kit) policy() component.Policy {
	p, ok := component.ParsePolicy(k.cfg.Attach.Policy)
	if !ok {
		k.logger.Debug("toolbox: unknown attach policy, appending", "policy", k.cfg.Attach.Policy)
	}
	return p
}

func (k *Kit) cursorDefaults() component.Props {
	origin := make([]any, len(k.cfg.Cursor.Origin))
	for i, v := range k.cfg.Cursor.Origin {
		origin[i] = v
	}
	triggers := make([]any, len(k.cfg.Cursor.Triggers))
	for i, v := range k.cfg.Cursor.Triggers {
		triggers[i] = v
	}
	return component.Props{
		"origin":   origin,
		"inertia":  k.cfg.Cursor.Inertia,
		"triggers": triggers,
	}
}

func (k *Kit) componentOptions(extra []component.Option) []component.Option {
	opts := []component.Option{
		component.WithMarkers(k.markers()),
		component.WithPolicy(k.policy()),
		component.WithLogger(k.logger),
		component.WithHooks(component.Hooks{
			OnAttach:  func(key, _ string, _ component.Instance) { k.metrics.ComponentAttached(key) },
			OnDestroy: func(_ string, err error) { k.metrics.ComponentDestroyed(err) },
		}),
	}
	return append(opts, extra...)
}

// Attach mounts every registered component found below root.
func (k *Kit) Attach(ctx context.Context, root *dom.Node, opts ...component.Option) component.Instances {
	_, span := k.metrics.StartSpan(ctx, "toolbox.attach")
	instances := component.Attach(k.Registry(), root, k.componentOptions(opts)...)
	span.SetAttributes(
		attribute.Int("toolbox.instances", instances.Len()),
		attribute.StringSlice("toolbox.keys", instances.Keys()),
	)
	telemetry.EndSpan(span, nil)
	return instances
}

// Detach destroys every instance. Teardown failures are logged at debug
// level and counted, never returned.
func (k *Kit) Detach(ctx context.Context, instances component.Instances, opts ...component.Option) {
	_, span := k.metrics.StartSpan(ctx, "toolbox.detach",
		attribute.Int("toolbox.instances", instances.Len()),
	)
	component.Detach(instances, k.componentOptions(opts)...)
	telemetry.EndSpan(span, nil)
}

// Scan lists the mount points below root using the configured markers.
func (k *Kit) Scan(root *dom.Node) []component.MountPoint {
	return component.Scan(root, component.WithMarkers(k.markers()))
}

func (k *Kit) storeOptions() []store.Option {
	return []store.Option{
		store.WithLogger(k.logger),
		store.WithChangeHook(k.metrics.StoreChange),
	}
}

// NewStore creates an instrumented store.
func (k *Kit) NewStore(initial store.State, opts ...store.Option) *store.Store {
	return store.New(initial, append(k.storeOptions(), opts...)...)
}

// Share opens the share link for d.
func (k *Kit) Share(d share.Data) error {
	if err := k.sharer.Share(d); err != nil {
		return err
	}
	target := d.Target
	if target == "" {
		target = share.TargetCustom
	}
	k.metrics.Share(target)
	return nil
}

// SmoothScroll sets up smooth scrolling for doc with the configured
// intensity, resizing on the Kit's events.
func (k *Kit) SmoothScroll(doc *dom.Node, opts ...smoothscroll.Option) *smoothscroll.Scroller {
	base := []smoothscroll.Option{
		smoothscroll.WithIntensity(k.cfg.SmoothScroll.Intensity),
		smoothscroll.WithEvents(k.events),
		smoothscroll.WithLogger(k.logger),
	}
	return smoothscroll.New(doc, append(base, opts...)...)
}
