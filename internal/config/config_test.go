package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"

	"github.com/vango-dev/toolbox/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Attributes.Component != "component" || cfg.Attributes.Ref != "ref" {
		t.Errorf("Attributes = %+v", cfg.Attributes)
	}
	if cfg.Attach.Policy != PolicyAppend {
		t.Errorf("Attach.Policy = %q, want %q", cfg.Attach.Policy, PolicyAppend)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Metrics.Namespace != DefaultNamespace || !cfg.Metrics.Enabled {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.DebounceWindow() != 300*time.Millisecond {
		t.Errorf("DebounceWindow() = %v", cfg.DebounceWindow())
	}
	if cfg.ThrottleWindow() != 100*time.Millisecond {
		t.Errorf("ThrottleWindow() = %v", cfg.ThrottleWindow())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E101") {
		t.Fatalf("Load on empty dir = %v, want E101", err)
	}

	configJSON := `{
  "name": "site",
  "attach": { "policy": "overwrite" },
  "log": { "level": "debug", "format": "json" },
  "cursor": { "inertia": 0.5, "triggers": ["a"] },
  "server": { "addr": "127.0.0.1:9000" }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Name != "site" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Attach.Policy != PolicyOverwrite {
		t.Errorf("Attach.Policy = %q", cfg.Attach.Policy)
	}
	if cfg.Cursor.Inertia != 0.5 || len(cfg.Cursor.Triggers) != 1 {
		t.Errorf("Cursor = %+v", cfg.Cursor)
	}
	// Untouched sections keep their defaults.
	if cfg.SmoothScroll.Intensity != 0.85 {
		t.Errorf("SmoothScroll.Intensity = %v", cfg.SmoothScroll.Intensity)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `name: yaml-site
attach:
  policy: append
smoothScroll:
  intensity: 0.5
metrics:
  namespace: site
`
	if err := os.WriteFile(filepath.Join(tmpDir, YAMLConfigFileName), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "yaml-site" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.SmoothScroll.Intensity != 0.5 {
		t.Errorf("SmoothScroll.Intensity = %v", cfg.SmoothScroll.Intensity)
	}
	if cfg.Metrics.Namespace != "site" {
		t.Errorf("Metrics.Namespace = %q", cfg.Metrics.Namespace)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"broken json", "bad.json", "{not json", "E102"},
		{"broken yaml", "bad.yaml", "attach: [", "E102"},
		{"bad policy", "policy.json", `{"attach":{"policy":"merge"}}`, "E103"},
		{"missing", "absent.json", "", "E101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.file)
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}
			_, err := LoadFile(path)
			if !errors.HasCode(err, tt.code) {
				t.Errorf("LoadFile() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := New()
	cfg.Attach.Policy = "merge"
	cfg.Log.Level = "loud"
	cfg.Cursor.Inertia = 1.5
	cfg.Timing.Debounce = "soon"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	if got := len(multierr.Errors(err)); got != 4 {
		t.Errorf("got %d violations, want 4: %v", got, err)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Name = "roundtrip"
	cfg.Attach.Policy = PolicyOverwrite
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Name != "roundtrip" || loaded.Attach.Policy != PolicyOverwrite {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := New()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"
	logger := cfg.Logger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("warn record missing: %s", out)
	}
}
