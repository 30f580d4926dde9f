package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/toolbox/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "toolbox.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "toolbox.yaml"

	// DefaultAddr is the default HTTP service address.
	DefaultAddr = ":8080"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "toolbox"

	// PolicyAppend collects every instance sharing a key.
	PolicyAppend = "append"

	// PolicyOverwrite keeps only the most recent instance for a key.
	PolicyOverwrite = "overwrite"
)

// Config represents the complete toolbox configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Attributes names the data-attribute markers used for mounting.
	Attributes AttributesConfig `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// Attach configures component attachment.
	Attach AttachConfig `json:"attach,omitempty" yaml:"attach,omitempty"`

	// Log configures structured logging.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Memoize configures memoization caches.
	Memoize MemoizeConfig `json:"memoize,omitempty" yaml:"memoize,omitempty"`

	// Timing holds default debounce and throttle windows.
	Timing TimingConfig `json:"timing,omitempty" yaml:"timing,omitempty"`

	// Cursor holds custom cursor defaults.
	Cursor CursorConfig `json:"cursor,omitempty" yaml:"cursor,omitempty"`

	// SmoothScroll holds smooth scroll defaults.
	SmoothScroll SmoothScrollConfig `json:"smoothScroll,omitempty" yaml:"smoothScroll,omitempty"`

	// Server configures the HTTP service.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing configures OpenTelemetry spans.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// AttributesConfig names the marker attributes (without the data- prefix).
type AttributesConfig struct {
	Component string `json:"component,omitempty" yaml:"component,omitempty"`
	Ref       string `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// AttachConfig configures component attachment.
type AttachConfig struct {
	// Policy is the key collision policy: "append" or "overwrite".
	Policy string `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MemoizeConfig configures memoization.
type MemoizeConfig struct {
	// CacheSize bounds memoized entries; 0 means unbounded.
	CacheSize int `json:"cacheSize,omitempty" yaml:"cacheSize,omitempty"`
}

// TimingConfig holds debounce/throttle windows as duration strings.
type TimingConfig struct {
	Debounce string `json:"debounce,omitempty" yaml:"debounce,omitempty"`
	Throttle string `json:"throttle,omitempty" yaml:"throttle,omitempty"`
}

// CursorConfig holds custom cursor defaults.
type CursorConfig struct {
	Origin   []float64 `json:"origin,omitempty" yaml:"origin,omitempty"`
	Inertia  float64   `json:"inertia,omitempty" yaml:"inertia,omitempty"`
	Triggers []string  `json:"triggers,omitempty" yaml:"triggers,omitempty"`
}

// SmoothScrollConfig holds smooth scroll defaults.
type SmoothScrollConfig struct {
	Intensity float64 `json:"intensity,omitempty" yaml:"intensity,omitempty"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// ReadTimeout is a duration string (e.g. "10s").
	ReadTimeout string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// MaxBodyBytes bounds request bodies accepted by POST endpoints.
	MaxBodyBytes int64 `json:"maxBodyBytes,omitempty" yaml:"maxBodyBytes,omitempty"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig configures OpenTelemetry spans.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It looks for toolbox.json first, then toolbox.yaml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "toolbox.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E101").
		WithDetail("No " + ConfigFileName + " or " + YAMLConfigFileName + " found in " + dir).
		WithSuggestion("Create " + ConfigFileName + " at the project root or pass --config")
}

// LoadFile reads configuration from the specified file path.
// The format is chosen by extension: .yaml/.yml decode as YAML, anything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("E102").Wrap(err)
	}

	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid " + formatName(path))
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func formatName(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "YAML"
	default:
		return "JSON"
	}
}

// SaveTo writes the configuration as JSON to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E104").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E104").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Attributes.Component == "" {
		c.Attributes.Component = "component"
	}
	if c.Attributes.Ref == "" {
		c.Attributes.Ref = "ref"
	}

	if c.Attach.Policy == "" {
		c.Attach.Policy = PolicyAppend
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Timing.Debounce == "" {
		c.Timing.Debounce = "300ms"
	}
	if c.Timing.Throttle == "" {
		c.Timing.Throttle = "100ms"
	}

	if len(c.Cursor.Origin) == 0 {
		c.Cursor.Origin = []float64{0.5, 0.5}
	}
	if c.Cursor.Inertia == 0 {
		c.Cursor.Inertia = 0.2
	}
	if len(c.Cursor.Triggers) == 0 {
		c.Cursor.Triggers = []string{"a", "button"}
	}

	if c.SmoothScroll.Intensity == 0 {
		c.SmoothScroll.Intensity = 0.85
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "toolbox"
	}
}

// Validate checks if the configuration is valid.
// All violations are reported together.
func (c *Config) Validate() error {
	var err error

	if c.Attach.Policy != PolicyAppend && c.Attach.Policy != PolicyOverwrite {
		err = multierr.Append(err, invalid("attach.policy must be %q or %q, got %q", PolicyAppend, PolicyOverwrite, c.Attach.Policy))
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		err = multierr.Append(err, invalid("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		err = multierr.Append(err, invalid("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Memoize.CacheSize < 0 {
		err = multierr.Append(err, invalid("memoize.cacheSize must not be negative"))
	}
	if _, perr := time.ParseDuration(c.Timing.Debounce); perr != nil {
		err = multierr.Append(err, invalid("timing.debounce: %v", perr))
	}
	if _, perr := time.ParseDuration(c.Timing.Throttle); perr != nil {
		err = multierr.Append(err, invalid("timing.throttle: %v", perr))
	}
	if len(c.Cursor.Origin) != 2 {
		err = multierr.Append(err, invalid("cursor.origin must have two values"))
	}
	if c.Cursor.Inertia < 0 || c.Cursor.Inertia >= 1 {
		err = multierr.Append(err, invalid("cursor.inertia must be in [0, 1)"))
	}
	if c.SmoothScroll.Intensity < 0 || c.SmoothScroll.Intensity >= 1 {
		err = multierr.Append(err, invalid("smoothScroll.intensity must be in [0, 1)"))
	}
	if _, perr := time.ParseDuration(c.Server.ReadTimeout); perr != nil {
		err = multierr.Append(err, invalid("server.readTimeout: %v", perr))
	}

	return err
}

func invalid(format string, args ...any) error {
	return errors.New("E103").WithDetail(fmt.Sprintf(format, args...))
}

// DebounceWindow returns the parsed default debounce window.
func (c *Config) DebounceWindow() time.Duration {
	d, _ := time.ParseDuration(c.Timing.Debounce)
	return d
}

// ThrottleWindow returns the parsed default throttle window.
func (c *Config) ThrottleWindow() time.Duration {
	d, _ := time.ParseDuration(c.Timing.Throttle)
	return d
}

// ReadTimeout returns the parsed server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// Logger builds a slog.Logger writing to w according to the Log section.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
