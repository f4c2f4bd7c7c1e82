package cartesian

import (
	"maps"
	"math"
	"slices"
	"sort"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/derive"
	"github.com/matzehuels/chartgeom/pkg/scale"
)

// Routines is the standard implementation of derive.Routines.
type Routines struct{}

var _ derive.Routines = Routines{}

// Ticks maps the axis' tick values through its scale. Values are taken from
// the explicit ticks, then the nice ticks, then the scale domain. Values the
// scale cannot place are dropped.
func (Routines) Ticks(axis *chart.Axis) []chart.Tick {
	if axis == nil || axis.Scale == nil {
		return nil
	}
	values := axis.Ticks
	if len(values) == 0 {
		values = axis.NiceTicks
	}
	if len(values) == 0 {
		values = axis.Scale.Domain()
	}
	ticks := make([]chart.Tick, 0, len(values))
	for _, v := range values {
		c, ok := axis.Scale.Map(v)
		if !ok {
			continue
		}
		ticks = append(ticks, chart.Tick{Coordinate: c, Value: v})
	}
	return ticks
}

// BandSize returns the scale's bandwidth for banded axes. Otherwise it is the
// smallest distance between neighbouring ticks, or 0 with fewer than two.
func (Routines) BandSize(axis *chart.Axis, ticks []chart.Tick) float64 {
	if axis == nil {
		return 0
	}
	if axis.Scale != nil {
		if w, ok := scale.Bandwidth(axis.Scale); ok {
			return w
		}
	}
	if len(ticks) < 2 {
		return 0
	}
	coords := make([]float64, len(ticks))
	for i, t := range ticks {
		coords[i] = t.Coordinate
	}
	sort.Float64s(coords)
	band := math.Inf(1)
	for i := 1; i < len(coords); i++ {
		band = math.Min(band, coords[i]-coords[i-1])
	}
	if math.IsInf(band, 1) {
		return 0
	}
	return band
}

// BarSizes builds one bar slot per stack group containing a bar, keyed by
// category axis. Stacked bars share the slot of the group's first bar. A
// group's size is its first bar's BarSize, else barSize.
func (Routines) BarSizes(barSize float64, groups chart.StackGroups) derive.SizeTable {
	table := derive.SizeTable{}
	if groups == nil {
		return table
	}
	for _, axisID := range slices.Sorted(maps.Keys(groups)) {
		ag := groups[axisID]
		if ag == nil {
			continue
		}
		for _, g := range ag.Groups {
			var bars []*chart.Item
			for _, it := range g.Items {
				if it.IsBar() {
					bars = append(bars, it)
				}
			}
			if len(bars) == 0 {
				continue
			}
			size := bars[0].BarSize
			if size == 0 {
				size = barSize
			}
			table[g.CategoryAxisID] = append(table[g.CategoryAxisID], derive.SizeEntry{
				Item:      bars[0],
				StackList: bars[1:],
				BarSize:   size,
			})
		}
	}
	return table
}

// BarPosition places every slot within a band of p.BandSize.
//
// When the first slot has an explicit size, slots keep their sizes and are
// centered as a block; if they overflow the band the gap is dropped and, if
// still too wide, every bar shrinks to 90% of an even share. Otherwise the
// band minus the category gap is split evenly, capped at MaxBarSize.
func (Routines) BarPosition(p derive.BarPositionParams) []derive.BarPlacement {
	n := len(p.Sizes)
	if n < 1 {
		return nil
	}
	gap := PercentValue(p.BarGap, p.BandSize)
	var out []derive.BarPlacement

	if p.Sizes[0].BarSize > 0 {
		useFull := false
		full := p.BandSize / float64(n)
		sum := 0.0
		for _, e := range p.Sizes {
			sum += e.BarSize
		}
		sum += float64(n-1) * gap
		if sum >= p.BandSize {
			sum -= float64(n-1) * gap
			gap = 0
		}
		if sum >= p.BandSize && full > 0 {
			useFull = true
			full *= 0.9
			sum = float64(n) * full
		}
		offset := math.Trunc((p.BandSize - sum) / 2)
		prev := derive.BarPlacement{Offset: offset - gap}
		for _, e := range p.Sizes {
			size := e.BarSize
			if useFull {
				size = full
			}
			prev = derive.BarPlacement{Item: e.Item, Offset: prev.Offset + prev.Size + gap, Size: size}
			out = appendSlot(out, prev, e.StackList)
		}
		return out
	}

	offset := PercentValue(p.BarCategoryGap, p.BandSize)
	if p.BandSize-2*offset-float64(n-1)*gap <= 0 {
		gap = 0
	}
	original := (p.BandSize - 2*offset - float64(n-1)*gap) / float64(n)
	if original > 1 {
		original = math.Trunc(original)
	}
	size := original
	if p.MaxBarSize > 0 {
		size = math.Min(original, p.MaxBarSize)
	}
	for i, e := range p.Sizes {
		pos := derive.BarPlacement{
			Item:   e.Item,
			Offset: offset + (original+gap)*float64(i) + (original-size)/2,
			Size:   size,
		}
		out = appendSlot(out, pos, e.StackList)
	}
	return out
}

func appendSlot(out []derive.BarPlacement, pos derive.BarPlacement, stacked []*chart.Item) []derive.BarPlacement {
	out = append(out, pos)
	for _, it := range stacked {
		out = append(out, derive.BarPlacement{Item: it, Offset: pos.Offset, Size: pos.Size})
	}
	return out
}

// StackedData returns item's spans from the group named by item.StackID.
// Items are matched by identity first, then by value.
func (Routines) StackedData(item *chart.Item, groups []*chart.Stack) []chart.Span {
	if item == nil || item.StackID == "" {
		return nil
	}
	for _, g := range groups {
		if g.ID != item.StackID || len(g.Items) == 0 {
			continue
		}
		idx := slices.Index(g.Items, item)
		if idx < 0 {
			idx = slices.IndexFunc(g.Items, func(it *chart.Item) bool { return chart.SameItem(it, item) })
		}
		if idx < 0 || idx >= len(g.StackedData) {
			return nil
		}
		return g.StackedData[idx]
	}
	return nil
}

// FindBarPosition returns the placement of item, matched by identity first,
// then by value.
func FindBarPosition(placements []derive.BarPlacement, item *chart.Item) (derive.BarPlacement, bool) {
	for _, p := range placements {
		if p.Item == item {
			return p, true
		}
	}
	for _, p := range placements {
		if chart.SameItem(p.Item, item) {
			return p, true
		}
	}
	return derive.BarPlacement{}, false
}
