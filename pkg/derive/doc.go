// Package derive turns chart inputs into cached, per-item geometry.
//
// The package holds the two pure steps of a chart update:
//
//  1. Discovery: resolve the ordered list of graphical items, either from an
//     explicit list or by walking the declarative child tree
//  2. Derivation: resolve axes, ticks, stacking, band size and bar placement
//     for each item and hand them to a per-chart-type [Composer]
//
// The geometric sub-steps (tick resolution, stacking, bar sizing) are
// consumed through the [Routines] interface; package cartesian provides the
// standard implementation.
//
// # Usage
//
//	p := derive.New(cartesian.Routines{}, compose.Composed,
//	    derive.WithItemTypes("bar", "line", "area"))
//	d := p.Derive(inputs)
//	for i, g := range d.AllComposedData {
//	    // g is the geometry of the i-th discovered item
//	}
//
// A [Derived] value is never modified after Derive returns. Callers may hold
// on to it and compare it by pointer.
package derive
