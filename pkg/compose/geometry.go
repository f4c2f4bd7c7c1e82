package compose

import (
	"math"

	"github.com/matzehuels/chartgeom/pkg/cartesian"
	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/derive"
	"github.com/matzehuels/chartgeom/pkg/scale"
)

// Geometry is the composed output for one item. The zero value is the empty
// record stored for items that could not be composed.
type Geometry struct {
	Kind     chart.ItemKind `json:"kind,omitempty"`
	Layout   chart.Layout   `json:"layout,omitempty"`
	Rects    []Rect         `json:"rects,omitempty"`
	Points   []Point        `json:"points,omitempty"`
	BaseLine []Point        `json:"base_line,omitempty"`
	Offset   chart.Offset   `json:"offset"`
}

// IsEmpty reports whether g is the empty record.
func (g Geometry) IsEmpty() bool { return g.Kind == "" }

// Box is an axis-aligned rectangle.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is one bar.
type Rect struct {
	Box
	Index      int        `json:"index"`
	Value      float64    `json:"value"`
	Span       chart.Span `json:"span"`
	Stacked    bool       `json:"stacked,omitempty"`
	Background Box        `json:"background"`
}

// Point is one vertex of a line or area. Defined is false for rows with no
// value; such points break the path.
type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Value   float64 `json:"value"`
	Index   int     `json:"index"`
	Defined bool    `json:"defined"`
}

// ItemTypes are the tree node types [Composed] can draw.
var ItemTypes = []string{string(chart.KindBar), string(chart.KindLine), string(chart.KindArea)}

// NewPipeline returns a pipeline that derives cartesian geometry for bar,
// line and area items.
func NewPipeline() *derive.Pipeline[Geometry] {
	return derive.New(cartesian.Routines{}, Composed, derive.WithItemTypes(ItemTypes...))
}

// Composed dispatches to [Bar], [Line] or [Area] by item kind.
func Composed(ctx *derive.Context) (Geometry, bool) {
	switch ctx.Item.Kind {
	case chart.KindBar:
		return Bar(ctx)
	case chart.KindLine:
		return Line(ctx)
	case chart.KindArea:
		return Area(ctx)
	}
	return Geometry{}, false
}

// axes returns the category and numeric axes of ctx with their ticks.
func axes(ctx *derive.Context) (cat, num *chart.Axis, catTicks []chart.Tick) {
	if ctx.Inputs.Layout.IsHorizontal() {
		return ctx.XAxis, ctx.YAxis, ctx.XTicks
	}
	return ctx.YAxis, ctx.XAxis, ctx.YTicks
}

// baseValue is where unstacked bars and areas start: zero when the numeric
// domain spans it, otherwise the domain bound closest to zero.
func baseValue(num *chart.Axis) float64 {
	dom := num.Scale.Domain()
	if len(dom) < 2 {
		return 0
	}
	d0, ok0 := scale.ToFloat(dom[0])
	d1, ok1 := scale.ToFloat(dom[len(dom)-1])
	if !ok0 || !ok1 {
		return 0
	}
	lo, hi := math.Min(d0, d1), math.Max(d0, d1)
	switch {
	case lo <= 0 && hi >= 0:
		return 0
	case hi < 0:
		return hi
	}
	return lo
}

// clampToDomain truncates a stacked span to the numeric domain.
func clampToDomain(s chart.Span, num *chart.Axis) chart.Span {
	dom := num.Scale.Domain()
	if len(dom) < 2 {
		return s
	}
	d0, ok0 := scale.ToFloat(dom[0])
	d1, ok1 := scale.ToFloat(dom[len(dom)-1])
	if !ok0 || !ok1 {
		return s
	}
	lo, hi := math.Min(d0, d1), math.Max(d0, d1)
	return chart.Span{
		math.Min(math.Max(s[0], lo), hi),
		math.Min(math.Max(s[1], lo), hi),
	}
}

// categoryCoordinate places row index on the category axis. Category axes
// map the row's category value through the axis scale, which keys values the
// same way the band was built, and fall back to the tick at the same index
// for rows the scale cannot place. Numeric category axes map the row value
// directly, centered on the band.
func categoryCoordinate(axis *chart.Axis, ticks []chart.Tick, bandSize float64, row chart.Row, index int) (float64, bool) {
	if axis.IsCategory() {
		if axis.DataKey != "" && axis.Scale != nil {
			if v, ok := row[axis.DataKey]; ok && v != nil {
				if c, ok := axis.Scale.Map(v); ok {
					return c, true
				}
			}
		}
		if index < len(ticks) {
			return ticks[index].Coordinate, true
		}
		return 0, false
	}
	if axis.DataKey == "" {
		return 0, false
	}
	v, ok := cartesian.Value(row, axis.DataKey)
	if !ok {
		return 0, false
	}
	c, ok := axis.Scale.Map(v)
	return c - bandSize/2, ok
}

func mapValue(axis *chart.Axis, v float64) float64 {
	c, _ := axis.Scale.Map(v)
	return c
}
