package chartspec

import (
	"math"

	"github.com/matzehuels/chartgeom/pkg/cartesian"
	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/scale"
)

// Build validates s and resolves it into derivation inputs. Items are
// emitted as a child tree, one node per axis and item, and Inputs.Items is
// left nil so they are discovered from it.
func (s *Spec) Build() (*chart.Inputs, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	return s.BuildWithRows(rows)
}

// BuildWithRows is [Spec.Build] with data rows supplied by the caller.
func (s *Spec) BuildWithRows(rows []chart.Row) (*chart.Inputs, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	layout := s.layout()
	width, height := s.Width, s.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	offset := chart.OffsetOf(width, height, s.Margin)

	var children []*chart.Child
	var items []*chart.Item
	for _, is := range s.Items {
		if is.Hide {
			continue
		}
		it := &chart.Item{
			Kind:         chart.ItemKind(is.Kind),
			Name:         is.Name,
			DataKey:      is.DataKey,
			XAxisID:      axisID(is.XAxisID),
			YAxisID:      axisID(is.YAxisID),
			StackID:      is.StackID,
			BarSize:      is.BarSize,
			MaxBarSize:   is.MaxBarSize,
			MinPointSize: is.MinPointSize,
		}
		items = append(items, it)
	}

	offsetKind := cartesian.OffsetNone
	if s.StackOffset != "" {
		offsetKind = cartesian.StackOffset(s.StackOffset)
	}
	stacks := cartesian.BuildStackGroups(rows, items, layout, offsetKind)

	xMap := make(chart.AxisMap, len(s.XAxes))
	for _, a := range s.XAxes {
		ax := resolveAxis(a, rows, items, stacks, !layout.IsHorizontal(), true, offset)
		xMap[ax.ID] = ax
		children = append(children, &chart.Child{Type: "x_axis"})
	}
	yMap := make(chart.AxisMap, len(s.YAxes))
	for _, a := range s.YAxes {
		ax := resolveAxis(a, rows, items, stacks, layout.IsHorizontal(), false, offset)
		yMap[ax.ID] = ax
		children = append(children, &chart.Child{Type: "y_axis"})
	}
	for _, it := range items {
		children = append(children, chart.ItemChild(it))
	}

	return &chart.Inputs{
		Children: children,
		Props: chart.Props{
			Layout:         layout,
			Width:          width,
			Height:         height,
			XAxisMap:       xMap,
			YAxisMap:       yMap,
			StackGroups:    stacks,
			BarSize:        s.BarSize,
			BarGap:         chart.Gap(s.BarGap),
			BarCategoryGap: chart.Gap(s.BarCategoryGap),
			MaxBarSize:     s.MaxBarSize,
			Offset:         offset,
			Data:           rows,
		},
	}, nil
}

func (s *Spec) layout() chart.Layout {
	if s.Layout == "" {
		return chart.LayoutHorizontal
	}
	return chart.Layout(s.Layout)
}

// resolveAxis builds the scale of one axis. numericSide is true for the axis
// that carries item values; horizontal is true for x axes.
func resolveAxis(a AxisSpec, rows []chart.Row, items []*chart.Item, stacks chart.StackGroups, numericSide, horizontal bool, off chart.Offset) *chart.Axis {
	ax := &chart.Axis{
		ID:      axisID(a.ID),
		Type:    chart.AxisType(a.Type),
		DataKey: a.DataKey,
		Ticks:   a.Ticks,
		X:       off.Left,
		Y:       off.Top,
		Width:   off.Width,
		Height:  off.Height,
	}

	rng := [2]float64{off.Left, off.Left + off.Width}
	if !horizontal {
		rng = [2]float64{off.Top, off.Top + off.Height}
		if numericSide {
			rng = [2]float64{off.Top + off.Height, off.Top}
		}
	}

	if ax.Type == chart.AxisCategory {
		ax.Scale = scale.NewBand(categories(a, rows), rng, scale.BandOptions{
			PaddingInner: a.PaddingInner,
			PaddingOuter: a.PaddingOuter,
		})
		return ax
	}

	lo, hi := 0.0, 0.0
	switch {
	case len(a.Domain) == 2:
		lo, hi = a.Domain[0], a.Domain[1]
	case numericSide:
		lo, hi = valueExtent(ax.ID, !horizontal, rows, items, stacks)
	default:
		lo, hi = keyExtent(a.DataKey, rows)
	}
	if lo == hi {
		hi = lo + 1
	}

	count := a.TickCount
	if count == 0 {
		count = DefaultTickCount
	}
	lin := scale.NewLinear(lo, hi, rng)
	if len(a.Domain) != 2 {
		lin = lin.Nice(count)
	}
	ax.Scale = lin
	for _, t := range lin.Ticks(count) {
		ax.NiceTicks = append(ax.NiceTicks, t)
	}
	return ax
}

// categories returns the band domain of a category axis.
func categories(a AxisSpec, rows []chart.Row) []any {
	if len(a.Categories) > 0 {
		return a.Categories
	}
	out := make([]any, 0, len(rows))
	if a.DataKey == "" {
		for i := range rows {
			out = append(out, i)
		}
		return out
	}
	for _, r := range rows {
		if v, ok := r[a.DataKey]; ok && v != nil {
			out = append(out, v)
		}
	}
	return out
}

// valueExtent spans the values of every item plotted against the numeric
// axis id, including zero. Stacked items contribute their stacked spans.
func valueExtent(id string, yAxis bool, rows []chart.Row, items []*chart.Item, stacks chart.StackGroups) (float64, float64) {
	lo, hi := 0.0, 0.0
	add := func(v float64) {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	if sg := stacks[id]; sg != nil && sg.HasStack {
		for _, g := range sg.Groups {
			for _, series := range g.StackedData {
				for _, span := range series {
					add(span[0])
					add(span[1])
				}
			}
		}
	}
	for _, it := range items {
		axis := it.XAxisID
		if yAxis {
			axis = it.YAxisID
		}
		if axis != id {
			continue
		}
		if sg := stacks[id]; it.StackID != "" && sg != nil && sg.HasStack {
			continue
		}
		for _, r := range rows {
			if v, ok := cartesian.Value(r, it.DataKey); ok {
				add(v)
			}
		}
	}
	return lo, hi
}

// keyExtent spans the values of key across rows.
func keyExtent(key string, rows []chart.Row) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		if v, ok := cartesian.Value(r, key); ok {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return lo, hi
}
