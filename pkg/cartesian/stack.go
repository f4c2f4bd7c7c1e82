package cartesian

import (
	"strconv"

	"github.com/matzehuels/chartgeom/pkg/chart"
)

// StackOffset selects how stacked series are baselined.
type StackOffset string

const (
	// OffsetNone stacks series upward from zero.
	OffsetNone StackOffset = "none"
	// OffsetExpand normalizes each column to the [0, 1] range.
	OffsetExpand StackOffset = "expand"
	// OffsetSign stacks positive values up and negative values down.
	OffsetSign StackOffset = "sign"
	// OffsetSilhouette centers each column around zero.
	OffsetSilhouette StackOffset = "silhouette"
)

// ValidStackOffsets is the set of supported offsets.
var ValidStackOffsets = map[StackOffset]bool{
	OffsetNone:       true,
	OffsetExpand:     true,
	OffsetSign:       true,
	OffsetSilhouette: true,
}

// BuildStackGroups groups items by numeric axis and stack id and computes the
// stacked spans of every group on an axis that has at least one stacked item.
// Items without a stack id get a singleton group of their own so they still
// occupy a bar slot. Group order follows item order.
func BuildStackGroups(data []chart.Row, items []*chart.Item, layout chart.Layout, offset StackOffset) chart.StackGroups {
	if data == nil {
		return nil
	}
	groups := chart.StackGroups{}
	for i, it := range items {
		numericID := layout.NumericAxisID(it.XAxisID, it.YAxisID)
		categoryID := layout.CategoryAxisID(it.XAxisID, it.YAxisID)

		ag := groups[numericID]
		if ag == nil {
			ag = &chart.AxisStack{}
			groups[numericID] = ag
		}

		if it.StackID == "" {
			ag.Groups = append(ag.Groups, &chart.Stack{
				ID:             "_stack_" + strconv.Itoa(i),
				NumericAxisID:  numericID,
				CategoryAxisID: categoryID,
				Items:          []*chart.Item{it},
			})
			continue
		}

		ag.HasStack = true
		if g := ag.Group(it.StackID); g != nil {
			g.Items = append(g.Items, it)
			continue
		}
		ag.Groups = append(ag.Groups, &chart.Stack{
			ID:             it.StackID,
			NumericAxisID:  numericID,
			CategoryAxisID: categoryID,
			Items:          []*chart.Item{it},
		})
	}

	for _, ag := range groups {
		if !ag.HasStack {
			continue
		}
		for _, g := range ag.Groups {
			g.StackedData = StackSeries(data, g.Items, offset)
		}
	}
	return groups
}

// StackSeries computes, for each item, one span per row. Missing values
// count as zero.
func StackSeries(data []chart.Row, items []*chart.Item, offset StackOffset) [][]chart.Span {
	series := make([][]chart.Span, len(items))
	for i, it := range items {
		s := make([]chart.Span, len(data))
		for j, row := range data {
			v, _ := Value(row, it.DataKey)
			s[j] = chart.Span{0, v}
		}
		series[i] = s
	}

	switch offset {
	case OffsetExpand:
		expand(series)
		stackNone(series)
	case OffsetSign:
		stackSign(series)
	case OffsetSilhouette:
		stackNone(series)
		silhouette(series)
	default:
		stackNone(series)
	}
	return series
}

func stackNone(series [][]chart.Span) {
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1], series[i]
		for j := range cur {
			cur[j][0] = prev[j][1]
			cur[j][1] += cur[j][0]
		}
	}
}

func expand(series [][]chart.Span) {
	if len(series) == 0 {
		return
	}
	for j := range series[0] {
		sum := 0.0
		for _, s := range series {
			sum += s[j][1]
		}
		if sum == 0 {
			continue
		}
		for _, s := range series {
			s[j][1] /= sum
		}
	}
}

func stackSign(series [][]chart.Span) {
	if len(series) == 0 {
		return
	}
	for j := range series[0] {
		var up, down float64
		for _, s := range series {
			dy := s[j][1] - s[j][0]
			switch {
			case dy > 0:
				s[j][0] = up
				up += dy
				s[j][1] = up
			case dy < 0:
				s[j][1] = down
				down += dy
				s[j][0] = down
			default:
				s[j][0] = 0
				s[j][1] = dy
			}
		}
	}
}

func silhouette(series [][]chart.Span) {
	if len(series) == 0 {
		return
	}
	last := series[len(series)-1]
	for j := range series[0] {
		shift := -last[j][1] / 2
		for _, s := range series {
			s[j][0] += shift
			s[j][1] += shift
		}
	}
}
