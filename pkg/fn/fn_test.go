package fn

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vango-dev/toolbox/internal/errors"
)

func receive(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for call")
		return 0
	}
}

func expectNone(t *testing.T, ch <-chan int) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected call with %d", v)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestDebounceCallsOnceWithLastArgs(t *testing.T) {
	mock := clock.NewMock()
	calls := make(chan int, 8)

	debounced := Debounce(func(v int) { calls <- v }, 100*time.Millisecond, WithClock(mock))
	debounced(1)
	debounced(2)
	mock.Add(50 * time.Millisecond)
	debounced(3)

	mock.Add(99 * time.Millisecond)
	expectNone(t, calls)

	mock.Add(time.Millisecond)
	if got := receive(t, calls); got != 3 {
		t.Errorf("debounced call got %d, want 3", got)
	}
	expectNone(t, calls)
}

func TestThrottleDropsCallsInsideWindow(t *testing.T) {
	mock := clock.NewMock()
	var mu sync.Mutex
	var got []int

	throttled := Throttle(func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	}, 100*time.Millisecond, WithClock(mock))

	throttled(1)
	throttled(2)
	mock.Add(99 * time.Millisecond)
	throttled(3)
	mock.Add(time.Millisecond)
	throttled(4)
	throttled(5)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != 1 || got[1] != 4 {
		t.Errorf("throttled calls = %v, want [1 4]", got)
	}
}

func TestNonPositiveDurationReturnsFn(t *testing.T) {
	n := 0
	inc := func(int) { n++ }

	for _, d := range []time.Duration{0, -time.Second} {
		Debounce(inc, d)(0)
		Throttle(inc, d)(0)
		Throttle(inc, d)(0)
	}
	if n != 6 {
		t.Errorf("calls = %d, want 6 (unwrapped)", n)
	}
}

func TestMemoize(t *testing.T) {
	calls := 0
	square, err := Memoize(func(n int) int {
		calls++
		return n * n
	})
	if err != nil {
		t.Fatalf("Memoize() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if got := square(4); got != 16 {
			t.Fatalf("square(4) = %d", got)
		}
	}
	square(5)
	if calls != 2 {
		t.Errorf("underlying calls = %d, want 2", calls)
	}
}

func TestMemoizeStructuredArgs(t *testing.T) {
	type query struct {
		Term  string
		Limit int
	}
	calls := 0
	search, err := Memoize(func(q query) []string {
		calls++
		return []string{q.Term}
	})
	if err != nil {
		t.Fatal(err)
	}

	search(query{"a", 1})
	search(query{"a", 1})
	search(query{"a", 2})
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestMemoizeBoundedCache(t *testing.T) {
	calls := 0
	id, err := Memoize(func(s string) string {
		calls++
		return s
	}, WithCacheSize(1))
	if err != nil {
		t.Fatal(err)
	}

	id("a")
	id("b") // evicts "a"
	id("a")
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestMemoizeNil(t *testing.T) {
	_, err := Memoize[int, int](nil)
	if !errors.HasCode(err, "E001") {
		t.Fatalf("Memoize(nil) error = %v, want E001", err)
	}
}
