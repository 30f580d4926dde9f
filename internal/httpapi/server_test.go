package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vango-dev/toolbox"
	"github.com/vango-dev/toolbox/internal/config"
	"github.com/vango-dev/toolbox/pkg/component"
	"github.com/vango-dev/toolbox/pkg/detect"
	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/share"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.New()
	if mutate != nil {
		mutate(cfg)
	}
	kit, err := toolbox.New(toolbox.WithConfig(cfg), toolbox.WithPageURL("https://page"))
	if err != nil {
		t.Fatalf("toolbox.New() error: %v", err)
	}
	kit.Register("Slider", component.Class(func(*dom.Node, component.Props) component.Instance { return component.Nop }))
	return New(kit)
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(newTestServer(t, nil), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("GET /healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestScan(t *testing.T) {
	s := newTestServer(t, nil)
	rec := serve(s, http.MethodPost, "/scan", `<div data-component="Slider" data-speed="2"><i data-ref="slide"></i></div>
		<div data-component="Unknown"></div><div data-component="Slider"></div>`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /scan = %d: %s", rec.Code, rec.Body.String())
	}

	var resp ScanResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.MountPoints) != 3 {
		t.Fatalf("mount points = %d, want 3", len(resp.MountPoints))
	}
	first := resp.MountPoints[0]
	if first.Key != "slider" || first.Props["speed"] != 2.0 || first.Refs["slide"] != 1 {
		t.Errorf("first mount point = %+v", first)
	}
	if strings.Join(resp.Names, ",") != "Slider,Unknown" || strings.Join(resp.Registered, ",") != "Slider" {
		t.Errorf("names = %v, registered = %v", resp.Names, resp.Registered)
	}
}

func TestScanBodyLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Server.MaxBodyBytes = 16 })
	rec := serve(s, http.MethodPost, "/scan", strings.Repeat("<p>x</p>", 100))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized POST /scan = %d, want 413", rec.Code)
	}
}

func TestShare(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		query  string
		status int
		want   string
	}{
		{"twitter with page url", "target=twitter&description=hi", http.StatusOK, "https://twitter.com/home?status=https%3A%2F%2Fpage%20hi"},
		{"custom", "baseUrl=https%3A%2F%2Fs.io&via=me", http.StatusOK, "https://s.io?url=https%3A%2F%2Fpage&via=me"},
		{"unknown target", "target=myspace", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, http.MethodGet, "/share?"+tt.query, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				if !strings.Contains(rec.Body.String(), `"code":"E040"`) {
					t.Errorf("error body = %s", rec.Body.String())
				}
				return
			}
			var resp ShareResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.URL != tt.want {
				t.Errorf("url = %q, want %q", resp.URL, tt.want)
			}
		})
	}
}

func TestShareTargets(t *testing.T) {
	rec := serve(newTestServer(t, nil), http.MethodGet, "/share/targets", "")
	var targets []string
	if err := json.NewDecoder(rec.Body).Decode(&targets); err != nil {
		t.Fatal(err)
	}
	if len(targets) != len(share.Targets()) {
		t.Errorf("targets = %v", targets)
	}
}

func TestMeta(t *testing.T) {
	rec := serve(newTestServer(t, nil), http.MethodPost, "/meta?url=https%3A%2F%2Fpage",
		`<title>Hello</title><meta property="og:image" content="/i.png">`)
	var md map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&md); err != nil {
		t.Fatal(err)
	}
	if md["title"] != "Hello" || md["image"] != "/i.png" || md["url"] != "https://page" {
		t.Errorf("meta = %v", md)
	}
}

func TestDetect(t *testing.T) {
	const ua = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"
	req := httptest.NewRequest(http.MethodGet, "/detect", nil)
	req.Header.Set("User-Agent", ua)
	rec := httptest.NewRecorder()
	newTestServer(t, nil).Handler().ServeHTTP(rec, req)

	var info detect.Info
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Browser.Name != "Firefox" || info.Browser.Major != 115 {
		t.Errorf("info = %+v", info)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	serve(s, http.MethodGet, "/healthz", "")

	rec := serve(s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `toolbox_http_requests_total{route="/healthz",status="2xx"} 1`) {
		t.Errorf("metrics body missing request counter:\n%s", rec.Body.String())
	}
}

func TestMetricsDisabled(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Metrics.Enabled = false })
	if rec := serve(s, http.MethodGet, "/metrics", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics with metrics disabled = %d, want 404", rec.Code)
	}
	if rec := serve(s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d", rec.Code)
	}
}

func TestMetricsUnmatchedRoute(t *testing.T) {
	s := newTestServer(t, nil)
	serve(s, http.MethodGet, "/nope", "")
	serve(s, http.MethodGet, "/nope/again", "")

	body := serve(s, http.MethodGet, "/metrics", "").Body.String()
	if !strings.Contains(body, `toolbox_http_requests_total{route="unmatched",status="4xx"} 2`) {
		t.Errorf("metrics body missing unmatched counter:\n%s", body)
	}
	if strings.Contains(body, `route="/nope`) {
		t.Errorf("raw path used as route label:\n%s", body)
	}
}
