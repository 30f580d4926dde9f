package toolbox

import (
	"log/slog"

	"github.com/benbjohnson/clock"

	"github.com/vango-dev/toolbox/internal/config"
	"github.com/vango-dev/toolbox/internal/telemetry"
	"github.com/vango-dev/toolbox/pkg/share"
)

type options struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *telemetry.Recorder
	clock   clock.Clock
	opener  share.Opener
	pageURL string
}

// Option configures a Kit.
type Option func(*options)

// WithConfig sets the configuration. Default: config.New().
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder sets the telemetry recorder instead of building one from
// the configuration.
func WithRecorder(r *telemetry.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

// WithClock sets the clock behind debounced and throttled helpers.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithOpener sets how share links are opened.
func WithOpener(op share.Opener) Option {
	return func(o *options) { o.opener = op }
}

// WithPageURL sets the URL shared when share data carries none.
func WithPageURL(u string) Option {
	return func(o *options) { o.pageURL = u }
}
