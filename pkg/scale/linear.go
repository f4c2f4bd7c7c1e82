package scale

import "math"

// Linear is a continuous scale mapping a numeric domain onto a range.
type Linear struct {
	d0, d1 float64
	rng    [2]float64
}

// NewLinear creates a linear scale from domain [d0, d1] to rng.
func NewLinear(d0, d1 float64, rng [2]float64) *Linear {
	return &Linear{d0: d0, d1: d1, rng: rng}
}

// Map interpolates v into the range. Values outside the domain extrapolate.
// A degenerate domain maps everything to the middle of the range.
func (l *Linear) Map(v any) (float64, bool) {
	f, ok := ToFloat(v)
	if !ok {
		return 0, false
	}
	if l.d1 == l.d0 {
		return (l.rng[0] + l.rng[1]) / 2, true
	}
	t := (f - l.d0) / (l.d1 - l.d0)
	return l.rng[0] + t*(l.rng[1]-l.rng[0]), true
}

// Domain returns [d0, d1].
func (l *Linear) Domain() []any { return []any{l.d0, l.d1} }

// Extent returns the numeric domain.
func (l *Linear) Extent() (float64, float64) { return l.d0, l.d1 }

// Range returns the output extent.
func (l *Linear) Range() [2]float64 { return l.rng }

// Nice returns a copy of l whose domain is extended to round tick values.
func (l *Linear) Nice(count int) *Linear {
	start, stop := l.d0, l.d1
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	var prestep float64
	for range 10 {
		step := TickIncrement(start, stop, count)
		if step == prestep {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return l.withDomain(start, stop, reverse)
		}
		prestep = step
	}
	return l.withDomain(start, stop, reverse)
}

// Ticks returns roughly count evenly spaced, human-friendly values within
// the domain.
func (l *Linear) Ticks(count int) []float64 {
	return Ticks(l.d0, l.d1, count)
}

func (l *Linear) withDomain(start, stop float64, reverse bool) *Linear {
	if reverse {
		start, stop = stop, start
	}
	return &Linear{d0: start, d1: stop, rng: l.rng}
}

var _ Scale = (*Linear)(nil)
