package component

import "log/slog"

// Policy decides what happens when two mount points share an instance key.
type Policy uint8

const (
	// PolicyAppend keeps every instance under the key, in document order.
	PolicyAppend Policy = iota
	// PolicyOverwrite keeps only the most recently attached instance.
	PolicyOverwrite
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyAppend:
		return "append"
	case PolicyOverwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "append" or "overwrite". Anything else yields
// PolicyAppend and false.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "append":
		return PolicyAppend, true
	case "overwrite":
		return PolicyOverwrite, true
	default:
		return PolicyAppend, false
	}
}

// Hooks observe attachment. Any field may be nil.
type Hooks struct {
	// OnAttach runs after an instance was created and stored under key.
	OnAttach func(key, name string, inst Instance)

	// OnSkip runs when a mount point is skipped.
	OnSkip func(name, reason string)

	// OnDestroy runs after an instance's teardown; err is the swallowed
	// failure, if any.
	OnDestroy func(key string, err error)
}

type options struct {
	markers Markers
	policy  Policy
	logger  *slog.Logger
	hooks   Hooks
}

// Option configures Attach, Detach and NewBase.
type Option func(*options)

// WithMarkers overrides the mount and reference attribute names.
func WithMarkers(m Markers) Option {
	return func(o *options) {
		o.markers = m.withDefaults()
	}
}

// WithPolicy sets the key collision policy for Attach.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger sets the logger receiving debug output about skipped mount
// points and swallowed teardown failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHooks installs attachment observers.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

func buildOptions(opts []Option) options {
	o := options{
		markers: DefaultMarkers,
		policy:  PolicyAppend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
