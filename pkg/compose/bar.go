package compose

import (
	"math"

	"github.com/matzehuels/chartgeom/pkg/cartesian"
	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/derive"
)

// Bar composes one rectangle per data row. It declines when the item has no
// bar placement or either axis is unresolved.
func Bar(ctx *derive.Context) (Geometry, bool) {
	pos, ok := cartesian.FindBarPosition(ctx.BarPosition, ctx.Item)
	if !ok {
		return Geometry{}, false
	}
	cat, num, catTicks := axes(ctx)
	if cat == nil || num == nil || num.Scale == nil {
		return Geometry{}, false
	}

	horizontal := ctx.Inputs.Layout.IsHorizontal()
	base := baseValue(num)
	minSize := math.Abs(ctx.Item.MinPointSize)

	rects := make([]Rect, 0, len(ctx.Inputs.Data))
	for i, row := range ctx.Inputs.Data {
		var span chart.Span
		if ctx.StackedData != nil {
			if i >= len(ctx.StackedData) {
				continue
			}
			span = clampToDomain(ctx.StackedData[i], num)
		} else {
			v, ok := cartesian.Value(row, ctx.DataKey)
			if !ok {
				continue
			}
			span = chart.Span{base, v}
		}

		c, ok := categoryCoordinate(cat, catTicks, ctx.BandSize, row, i)
		if !ok {
			continue
		}
		c += pos.Offset

		r := Rect{Index: i, Value: span[1], Span: span, Stacked: ctx.StackedData != nil}
		if horizontal {
			top, bottom := mapValue(num, span[1]), mapValue(num, span[0])
			r.Box = Box{X: c, Y: top, Width: pos.Size, Height: bottom - top}
			if minSize > 0 && math.Abs(r.Height) < minSize {
				delta := sign(r.Height, ctx.Item.MinPointSize) * (minSize - math.Abs(r.Height))
				r.Y -= delta
				r.Height += delta
			}
			r.Background = Box{X: c, Y: num.Y, Width: pos.Size, Height: num.Height}
		} else {
			left, right := mapValue(num, span[0]), mapValue(num, span[1])
			r.Box = Box{X: left, Y: c, Width: right - left, Height: pos.Size}
			if minSize > 0 && math.Abs(r.Width) < minSize {
				r.Width += sign(r.Width, ctx.Item.MinPointSize) * (minSize - math.Abs(r.Width))
			}
			r.Background = Box{X: num.X, Y: c, Width: num.Width, Height: pos.Size}
		}
		rects = append(rects, r)
	}

	return Geometry{
		Kind:   chart.KindBar,
		Layout: ctx.Inputs.Layout,
		Rects:  rects,
		Offset: ctx.Offset,
	}, true
}

// sign returns the sign of v, or of fallback when v is zero.
func sign(v, fallback float64) float64 {
	if v == 0 {
		v = fallback
	}
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
