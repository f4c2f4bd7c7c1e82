package compose

import (
	"github.com/matzehuels/chartgeom/pkg/cartesian"
	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/derive"
)

// Area composes a top edge and a baseline per data row. Stacked areas take
// both edges from their stacked span; unstacked areas sit on the numeric
// axis' base value.
func Area(ctx *derive.Context) (Geometry, bool) {
	cat, num, catTicks := axes(ctx)
	if cat == nil || num == nil || num.Scale == nil {
		return Geometry{}, false
	}
	base := baseValue(num)
	layout := ctx.Inputs.Layout

	points := make([]Point, 0, len(ctx.Inputs.Data))
	baseLine := make([]Point, 0, len(ctx.Inputs.Data))
	for i, row := range ctx.Inputs.Data {
		c, ok := categoryCoordinate(cat, catTicks, ctx.BandSize, row, i)
		if !ok {
			continue
		}
		c += ctx.BandSize / 2

		var span chart.Span
		defined := true
		if ctx.StackedData != nil {
			if i >= len(ctx.StackedData) {
				continue
			}
			span = ctx.StackedData[i]
		} else {
			v, ok := cartesian.Value(row, ctx.DataKey)
			span, defined = chart.Span{base, v}, ok
		}

		p := Point{Index: i, Value: span[1], Defined: defined}
		p.X, p.Y = place(layout, c, num, span[1], defined)
		points = append(points, p)

		b := Point{Index: i, Value: span[0], Defined: true}
		b.X, b.Y = place(layout, c, num, span[0], true)
		baseLine = append(baseLine, b)
	}
	return Geometry{
		Kind:     chart.KindArea,
		Layout:   layout,
		Points:   points,
		BaseLine: baseLine,
		Offset:   ctx.Offset,
	}, true
}
