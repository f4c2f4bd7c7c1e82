package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/chartgeom/pkg/cache"
	"github.com/matzehuels/chartgeom/pkg/chartspec"
	"github.com/matzehuels/chartgeom/pkg/errors"
	"github.com/matzehuels/chartgeom/pkg/observability"
)

const sampleTOML = `
[[x_axis]]
type = "category"
data_key = "month"

[[y_axis]]
type = "number"

[[item]]
kind = "bar"
data_key = "uv"
stack_id = "a"

[[item]]
kind = "bar"
data_key = "pv"
stack_id = "a"

[[item]]
kind = "line"
data_key = "amt"

[[data]]
month = "Jan"
uv = 4
pv = 2
amt = 3

[[data]]
month = "Feb"
uv = 3
pv = 5
amt = 6
`

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	return data, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memCache) Close() error { return nil }

type countingCacheHooks struct {
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func parseSpec(t *testing.T, src string) *chartspec.Spec {
	t.Helper()
	s, err := chartspec.Parse([]byte(src), chartspec.FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		format  string
		wantErr bool
	}{
		{"derive json", ValidateDeriveFormat, "json", false},
		{"derive table", ValidateDeriveFormat, "table", false},
		{"derive svg", ValidateDeriveFormat, "svg", true},
		{"graph dot", ValidateGraphFormat, "dot", false},
		{"graph svg", ValidateGraphFormat, "svg", false},
		{"graph case", ValidateGraphFormat, "SVG", true},
		{"graph empty", ValidateGraphFormat, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidFormat {
				t.Errorf("code = %s", errors.GetCode(err))
			}
		})
	}
}

func TestDeriveCaches(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	runner := NewRunner(newMemCache(), nil, nil)
	spec := parseSpec(t, sampleTOML)

	first, err := runner.Derive(ctx, spec, Options{})
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if first.CacheHit {
		t.Error("first derive should miss")
	}
	if first.Stats.Items != 3 || first.Stats.Rows != 2 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if got := len(first.Derived.AllComposedData); got != 3 {
		t.Fatalf("geometries = %d, want 3", got)
	}

	second, err := runner.Derive(ctx, spec, Options{})
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !second.CacheHit {
		t.Fatal("second derive should hit")
	}
	if second.SpecHash != first.SpecHash {
		t.Errorf("spec hash changed: %s != %s", second.SpecHash, first.SpecHash)
	}
	want := first.Derived.AllComposedData[0].Rects
	got := second.Derived.AllComposedData[0].Rects
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("cached rects = %+v, want %+v", got, want)
	}
	if len(second.Derived.AxisTicks) != len(first.Derived.AxisTicks) {
		t.Errorf("cached ticks = %d, want %d", len(second.Derived.AxisTicks), len(first.Derived.AxisTicks))
	}

	refreshed, err := runner.Derive(ctx, spec, Options{Refresh: true})
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if refreshed.CacheHit {
		t.Error("refresh should bypass the cache")
	}

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 2 {
		t.Errorf("hooks = %+v, want 1 hit, 1 miss, 2 sets", *hooks)
	}
}

func TestDeriveSpecChangeMisses(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(newMemCache(), nil, nil)

	if _, err := runner.Derive(ctx, parseSpec(t, sampleTOML), Options{}); err != nil {
		t.Fatalf("Derive: %v", err)
	}
	changed := parseSpec(t, "width = 800\n"+sampleTOML)
	res, err := runner.Derive(ctx, changed, Options{})
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if res.CacheHit {
		t.Error("changed spec should not hit")
	}
}

func TestDeriveErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	if _, err := runner.Derive(ctx, nil, Options{}); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("nil spec: code = %s", errors.GetCode(err))
	}

	bad := parseSpec(t, sampleTOML)
	bad.Layout = "diagonal"
	if _, err := runner.Derive(ctx, bad, Options{}); !errors.IsInvalid(err) {
		t.Errorf("invalid layout: err = %v", err)
	}
}

func TestTopologyDOT(t *testing.T) {
	runner := NewRunner(newMemCache(), nil, nil)
	dot, hit, err := runner.Topology(context.Background(), parseSpec(t, sampleTOML), FormatDOT, Options{})
	if err != nil {
		t.Fatalf("Topology: %v", err)
	}
	if hit {
		t.Error("DOT output is never cached")
	}
	for _, want := range []string{"digraph G", `"stack:0:a"`, `"item:2" -> "y:0";`} {
		if !strings.Contains(string(dot), want) {
			t.Errorf("DOT missing %s", want)
		}
	}

	if _, _, err := runner.Topology(context.Background(), parseSpec(t, sampleTOML), "png", Options{}); err == nil {
		t.Error("png should be rejected")
	}
}

func TestTopologySVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	ctx := context.Background()
	runner := NewRunner(newMemCache(), nil, nil)
	spec := parseSpec(t, sampleTOML)

	svg, hit, err := runner.Topology(ctx, spec, FormatSVG, Options{})
	if err != nil {
		t.Fatalf("Topology: %v", err)
	}
	if hit || !bytes.Contains(svg, []byte("<svg")) {
		t.Fatalf("unexpected first render (hit=%v)", hit)
	}
	again, hit, err := runner.Topology(ctx, spec, FormatSVG, Options{})
	if err != nil {
		t.Fatalf("Topology: %v", err)
	}
	if !hit || !bytes.Equal(again, svg) {
		t.Error("second render should come from the cache")
	}
}

var _ cache.Cache = (*memCache)(nil)
