package toolbox

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/toolbox/internal/config"
	"github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/pkg/component"
	"github.com/vango-dev/toolbox/pkg/cursor"
	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/share"
	"github.com/vango-dev/toolbox/pkg/store"
)

type counter struct {
	*component.Base
	count float64
}

func newCounter(el *dom.Node, props component.Props) component.Instance {
	b := component.NewBase(el, props)
	return &counter{Base: b, count: b.Props.Float("count", 0)}
}

func metricTotal(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	total := 0.0
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func testDoc() *dom.Node {
	return dom.Body(
		dom.Div(dom.Data("component", "Counter"), dom.Data("count", "3")),
		dom.Div(dom.Data("component", "Counter"), dom.Data("count", "5")),
		dom.Div(dom.Data("component", "Cursor")),
		dom.A(dom.Data("share-target", "facebook"), dom.Data("share-url", "https://x.io")),
	)
}

func TestKitAttachDetach(t *testing.T) {
	kit, err := New()
	if err != nil {
		t.Fatal(err)
	}
	kit.Register("Counter", component.Class(newCounter))

	ctx := context.Background()
	instances := kit.Attach(ctx, testDoc())

	counters := instances.All("counter")
	if len(counters) != 2 {
		t.Fatalf("counters = %d, want 2", len(counters))
	}
	if counters[1].(*counter).count != 5 {
		t.Errorf("second counter = %v, want 5", counters[1].(*counter).count)
	}
	if _, ok := instances.First("cursor").(*cursor.Cursor); !ok {
		t.Error("built-in cursor not attached")
	}

	reg := kit.Metrics().Registry()
	if got := metricTotal(t, reg, "toolbox_components_attached_total"); got != 3 {
		t.Errorf("attached metric = %v, want 3", got)
	}

	kit.Detach(ctx, instances)
	if instances.Len() != 0 {
		t.Error("instances left after Detach")
	}
	if got := metricTotal(t, reg, "toolbox_components_destroyed_total"); got != 3 {
		t.Errorf("destroyed metric = %v, want 3", got)
	}
}

func TestKitOverwritePolicy(t *testing.T) {
	cfg := config.New()
	cfg.Attach.Policy = config.PolicyOverwrite
	kit, err := New(WithConfig(cfg))
	if err != nil {
		t.Fatal(err)
	}
	kit.Register("Counter", component.Class(newCounter))

	instances := kit.Attach(context.Background(), testDoc())
	if list := instances.All("counter"); len(list) != 1 || list[0].(*counter).count != 5 {
		t.Errorf("overwrite kept %v", list)
	}
}

func TestKitCustomMarkers(t *testing.T) {
	cfg := config.New()
	cfg.Attributes.Component = "js"
	kit, err := New(WithConfig(cfg))
	if err != nil {
		t.Fatal(err)
	}
	kit.Register("Counter", component.Class(newCounter))

	doc := dom.Body(dom.Div(dom.Data("js", "Counter")), dom.Div(dom.Data("component", "Counter")))
	if n := kit.Attach(context.Background(), doc).Len(); n != 1 {
		t.Errorf("attached %d, want 1", n)
	}
	if mps := kit.Scan(doc); len(mps) != 1 || mps[0].Name != "Counter" {
		t.Errorf("Scan() = %+v", mps)
	}
}

func TestKitInvalidConfig(t *testing.T) {
	cfg := config.New()
	cfg.Attach.Policy = "merge"
	cfg.Cursor.Inertia = 2

	_, err := New(WithConfig(cfg))
	if !errors.HasCode(err, "E103") {
		t.Fatalf("New() error = %v, want E103", err)
	}
}

func TestKitCursorFollowsDispatchedEvents(t *testing.T) {
	kit, err := New()
	if err != nil {
		t.Fatal(err)
	}
	instances := kit.Attach(context.Background(), testDoc())
	c := instances.First("cursor").(*cursor.Cursor)

	kit.Dispatch(&dom.Event{Type: dom.EventMouseMove, Client: dom.Point{X: 1, Y: 1}})
	kit.Dispatch(&dom.Event{Type: dom.EventMouseMove, Client: dom.Point{X: 2, Y: 2}})
	if !c.Ready() {
		t.Error("cursor should follow events dispatched on the kit")
	}
	if got := c.Props.Strings("triggers", nil); len(got) != 2 || got[0] != "a" {
		t.Errorf("cursor triggers = %v, want configured defaults", got)
	}

	reg := kit.Metrics().Registry()
	if got := metricTotal(t, reg, "toolbox_bus_dispatches_total"); got != 2 {
		t.Errorf("dispatch metric = %v, want 2", got)
	}
	if got := metricTotal(t, reg, "toolbox_store_changes_total"); got == 0 {
		t.Error("tracker store changes not counted")
	}
	kit.Detach(context.Background(), instances)
}

func TestKitShare(t *testing.T) {
	var opened []string
	kit, err := New(
		WithOpener(share.OpenerFunc(func(url, _, _ string) error {
			opened = append(opened, url)
			return nil
		})),
		WithPageURL("https://page"),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := kit.Share(share.Data{Target: "googleplus"}); err != nil {
		t.Fatal(err)
	}
	if err := kit.Share(share.Data{}); !errors.HasCode(err, "E041") {
		t.Errorf("custom share without base URL error = %v", err)
	}

	doc := testDoc()
	kit.ShareManager().ListenClicks(doc)
	kit.Dispatch(&dom.Event{Type: dom.EventClick, Target: dom.Query(doc, "a")})

	want := []string{
		"https://plus.google.com/share?url=https%3A%2F%2Fpage",
		"https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fx.io",
	}
	if len(opened) != 2 || opened[0] != want[0] || opened[1] != want[1] {
		t.Errorf("opened = %v, want %v", opened, want)
	}
	if got := metricTotal(t, kit.Metrics().Registry(), "toolbox_shares_total"); got != 1 {
		t.Errorf("shares metric = %v, want 1", got)
	}
}

func TestKitNewStore(t *testing.T) {
	kit, err := New()
	if err != nil {
		t.Fatal(err)
	}
	s := kit.NewStore(store.Of(store.E("count", 0.0)))
	s.Set("count", 1.0)
	s.Set("count", 1.0)
	if got := metricTotal(t, kit.Metrics().Registry(), "toolbox_store_changes_total"); got != 1 {
		t.Errorf("store changes = %v, want 1", got)
	}
}

func TestKitMetricsDisabled(t *testing.T) {
	cfg := config.New()
	cfg.Metrics.Enabled = false
	kit, err := New(WithConfig(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if kit.Metrics() != nil {
		t.Error("metrics should be disabled")
	}
	kit.Register("Counter", component.Class(newCounter))
	kit.Detach(context.Background(), kit.Attach(context.Background(), testDoc()))
	kit.NewStore(store.Of(store.E("a", 1.0))).Set("a", 2.0)
}

func TestKitTimingHelpers(t *testing.T) {
	mock := clock.NewMock()
	kit, err := New(WithClock(mock))
	if err != nil {
		t.Fatal(err)
	}

	calls := make(chan string, 4)
	debounced := Debounce(kit, func(s string) { calls <- s })
	debounced("a")
	debounced("b")
	mock.Add(kit.Config().DebounceWindow())

	select {
	case got := <-calls:
		if got != "b" {
			t.Errorf("debounced call = %q, want b", got)
		}
	case <-time.After(time.Second):
		t.Fatal("debounced call never happened")
	}

	n := 0
	throttled := Throttle(kit, func(int) { n++ })
	throttled(1)
	throttled(2)
	if n != 1 {
		t.Errorf("throttled calls = %d, want 1", n)
	}

	square, err := Memoize(kit, func(x int) int { n++; return x * x })
	if err != nil {
		t.Fatal(err)
	}
	square(3)
	square(3)
	if n != 2 {
		t.Errorf("memoized calls = %d, want 2", n)
	}
}
