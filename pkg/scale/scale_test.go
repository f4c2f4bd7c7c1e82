package scale

import (
	"encoding/json"
	"math"
	"testing"
)

func TestBandMap(t *testing.T) {
	b := NewBand([]any{"a", "b", "c", "d"}, [2]float64{0, 100}, BandOptions{})

	if got := b.Bandwidth(); got != 25 {
		t.Fatalf("Bandwidth() = %v, want 25", got)
	}

	tests := []struct {
		value any
		want  float64
		ok    bool
	}{
		{"a", 0, true},
		{"b", 25, true},
		{"d", 75, true},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		got, ok := b.Map(tt.value)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Map(%v) = (%v, %v), want (%v, %v)", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBandReversedRange(t *testing.T) {
	b := NewBand([]any{"a", "b"}, [2]float64{100, 0}, BandOptions{})
	a, _ := b.Map("a")
	bb, _ := b.Map("b")
	if a != 50 || bb != 0 {
		t.Errorf("reversed band = (%v, %v), want (50, 0)", a, bb)
	}
}

func TestBandPadding(t *testing.T) {
	b := NewBand([]any{"a", "b"}, [2]float64{0, 100}, BandOptions{PaddingInner: 0.5, PaddingOuter: 0.25})
	// step = 100 / (2 - 0.5 + 0.5) = 50
	if b.Step() != 50 {
		t.Errorf("Step() = %v, want 50", b.Step())
	}
	if b.Bandwidth() != 25 {
		t.Errorf("Bandwidth() = %v, want 25", b.Bandwidth())
	}
	a, _ := b.Map("a")
	if a != 12.5 {
		t.Errorf("Map(a) = %v, want 12.5", a)
	}
}

func TestBandDedupAndNumericKeys(t *testing.T) {
	b := NewBand([]any{1, 2, 1}, [2]float64{0, 20}, BandOptions{})
	if len(b.Domain()) != 2 {
		t.Fatalf("Domain() len = %d, want 2", len(b.Domain()))
	}
	if got, ok := b.Map(2); !ok || got != 10 {
		t.Errorf("Map(2) = (%v, %v), want (10, true)", got, ok)
	}
}

func TestLinearMap(t *testing.T) {
	l := NewLinear(0, 10, [2]float64{100, 0})

	tests := []struct {
		value any
		want  float64
		ok    bool
	}{
		{0, 100, true},
		{10.0, 0, true},
		{int64(5), 50, true},
		{json.Number("2.5"), 75, true},
		{"x", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := l.Map(tt.value)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Map(%v) = (%v, %v), want (%v, %v)", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLinearDegenerateDomain(t *testing.T) {
	l := NewLinear(3, 3, [2]float64{0, 10})
	if got, _ := l.Map(3); got != 5 {
		t.Errorf("Map on degenerate domain = %v, want 5", got)
	}
}

func TestLinearNice(t *testing.T) {
	l := NewLinear(0.5, 9.7, [2]float64{0, 1}).Nice(5)
	d0, d1 := l.Extent()
	if d0 != 0 || d1 != 10 {
		t.Errorf("Nice extent = [%v, %v], want [0, 10]", d0, d1)
	}

	r := NewLinear(9.7, 0.5, [2]float64{0, 1}).Nice(5)
	d0, d1 = r.Extent()
	if d0 != 10 || d1 != 0 {
		t.Errorf("reversed Nice extent = [%v, %v], want [10, 0]", d0, d1)
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		want        []float64
	}{
		{"integers", 0, 10, 5, []float64{0, 2, 4, 6, 8, 10}},
		{"fractions", 0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"reversed", 10, 0, 5, []float64{10, 8, 6, 4, 2, 0}},
		{"single", 3, 3, 5, []float64{3}},
		{"no count", 0, 10, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ticks(tt.start, tt.stop, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("Ticks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("Ticks()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBandwidthHelper(t *testing.T) {
	if _, ok := Bandwidth(NewLinear(0, 1, [2]float64{0, 1})); ok {
		t.Error("Linear should not report a bandwidth")
	}
	if w, ok := Bandwidth(NewBand([]any{"a"}, [2]float64{0, 10}, BandOptions{})); !ok || w != 10 {
		t.Errorf("Bandwidth(band) = (%v, %v), want (10, true)", w, ok)
	}
}
