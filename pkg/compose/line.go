package compose

import (
	"github.com/matzehuels/chartgeom/pkg/cartesian"
	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/derive"
)

// Line composes one point per data row, centered in its category band.
func Line(ctx *derive.Context) (Geometry, bool) {
	cat, num, catTicks := axes(ctx)
	if cat == nil || num == nil || num.Scale == nil {
		return Geometry{}, false
	}
	points := make([]Point, 0, len(ctx.Inputs.Data))
	for i, row := range ctx.Inputs.Data {
		c, ok := categoryCoordinate(cat, catTicks, ctx.BandSize, row, i)
		if !ok {
			continue
		}
		c += ctx.BandSize / 2

		p := Point{Index: i}
		v, ok := cartesian.Value(row, ctx.DataKey)
		if ok {
			p.Value = v
			p.Defined = true
		}
		p.X, p.Y = place(ctx.Inputs.Layout, c, num, v, ok)
		points = append(points, p)
	}
	return Geometry{
		Kind:   chart.KindLine,
		Layout: ctx.Inputs.Layout,
		Points: points,
		Offset: ctx.Offset,
	}, true
}

// place returns the (x, y) of a point with category coordinate c and value v.
// Undefined values leave the numeric coordinate at zero.
func place(layout chart.Layout, c float64, num *chart.Axis, v float64, defined bool) (x, y float64) {
	var n float64
	if defined {
		n = mapValue(num, v)
	}
	if layout.IsHorizontal() {
		return c, n
	}
	return n, c
}
