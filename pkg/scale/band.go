package scale

import "math"

// Band is an ordinal scale that divides its range into uniform bands, one per
// domain value. Its semantics follow d3's scaleBand with center alignment.
type Band struct {
	domain    []any
	index     map[string]int
	rng       [2]float64
	values    []float64
	step      float64
	bandwidth float64
}

// BandOptions configures padding for a [Band] scale. Both paddings are
// fractions of the step and are clamped to [0, 1].
type BandOptions struct {
	PaddingInner float64
	PaddingOuter float64
}

// NewBand creates a band scale over domain spanning rng.
// Duplicate domain values keep their first position.
func NewBand(domain []any, rng [2]float64, opts BandOptions) *Band {
	b := &Band{rng: rng, index: make(map[string]int, len(domain))}
	for _, v := range domain {
		k := key(v)
		if _, dup := b.index[k]; dup {
			continue
		}
		b.index[k] = len(b.domain)
		b.domain = append(b.domain, v)
	}

	inner := clamp01(opts.PaddingInner)
	outer := clamp01(opts.PaddingOuter)

	n := float64(len(b.domain))
	start, stop := rng[0], rng[1]
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	b.step = (stop - start) / math.Max(1, n-inner+outer*2)
	start += (stop - start - b.step*(n-inner)) * 0.5
	b.bandwidth = b.step * (1 - inner)

	b.values = make([]float64, len(b.domain))
	for i := range b.values {
		b.values[i] = start + b.step*float64(i)
	}
	if reverse {
		for i, j := 0, len(b.values)-1; i < j; i, j = i+1, j-1 {
			b.values[i], b.values[j] = b.values[j], b.values[i]
		}
	}
	return b
}

// Map returns the start coordinate of v's band.
func (b *Band) Map(v any) (float64, bool) {
	i, ok := b.index[key(v)]
	if !ok {
		return 0, false
	}
	return b.values[i], true
}

// Domain returns the distinct category values in insertion order.
func (b *Band) Domain() []any { return b.domain }

// Range returns the output extent.
func (b *Band) Range() [2]float64 { return b.rng }

// Bandwidth returns the width of each band.
func (b *Band) Bandwidth() float64 { return b.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (b *Band) Step() float64 { return b.step }

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

var _ Banded = (*Band)(nil)
