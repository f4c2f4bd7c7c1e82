// Package gate decides when derived chart geometry must be recomputed and
// when a repaint may be skipped.
//
// Both checks are shallow. Items compare by value per element, children by
// pointer per element, and [chart.Props] field by field with maps compared
// by key set and entry identity. Transient interaction state never forces a
// recompute, only a render.
package gate

import (
	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/chart/shallow"
	"github.com/matzehuels/chartgeom/pkg/derive"
)

// Decision is the outcome of evaluating one update.
type Decision struct {
	Recompute bool `json:"recompute"`
	Render    bool `json:"render"`
}

// ShouldRecompute reports whether next differs from prev in anything that
// affects geometry.
func ShouldRecompute(prev, next *chart.Inputs) bool {
	if prev == next {
		return false
	}
	if prev == nil || next == nil {
		return true
	}
	return !chart.ItemsEqual(prev.Items, next.Items) ||
		!chart.ChildrenEqual(prev.Children, next.Children) ||
		!prev.Props.ShallowEqual(&next.Props)
}

// ShouldRender reports whether the host must repaint. It is true when the
// inputs changed in any way, interaction included, or when the derived
// state was replaced.
func ShouldRender[G any](prev, next *chart.Inputs, prevDerived, nextDerived *derive.Derived[G]) bool {
	if ShouldRecompute(prev, next) {
		return true
	}
	if prev != next && prev.Interaction != next.Interaction {
		return true
	}
	return !sameDerived(prevDerived, nextDerived)
}

// Evaluate runs the recompute check, calls recompute when it fires,
// and runs the render check against the resulting state. It returns the
// state to keep, which is prevDerived when nothing was recomputed.
func Evaluate[G any](prev, next *chart.Inputs, prevDerived *derive.Derived[G], recompute func(*chart.Inputs) *derive.Derived[G]) (Decision, *derive.Derived[G]) {
	var d Decision
	nextDerived := prevDerived
	if ShouldRecompute(prev, next) {
		d.Recompute = true
		nextDerived = recompute(next)
	}
	d.Render = ShouldRender(prev, next, prevDerived, nextDerived)
	return d, nextDerived
}

func sameDerived[G any](a, b *derive.Derived[G]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return shallow.Same(a.AxisTicks, b.AxisTicks) && shallow.Same(a.AllComposedData, b.AllComposedData)
}
