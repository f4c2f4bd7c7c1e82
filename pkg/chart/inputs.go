package chart

import "github.com/matzehuels/chartgeom/pkg/chart/shallow"

// Row is one data record keyed by field name.
type Row map[string]any

// Gap is a spacing hint given either in pixels or as a percentage of the
// band it applies to.
type Gap struct {
	Value   float64 `json:"value"`
	Percent bool    `json:"percent,omitempty"`
}

// Pixels returns a fixed gap of v pixels.
func Pixels(v float64) Gap { return Gap{Value: v} }

// Percent returns a gap of p percent.
func Percent(p float64) Gap { return Gap{Value: p, Percent: true} }

// Props holds every input that affects derived geometry.
type Props struct {
	Layout         Layout
	Width, Height  float64
	XAxisMap       AxisMap
	YAxisMap       AxisMap
	StackGroups    StackGroups
	BarSize        float64
	BarGap         Gap
	BarCategoryGap Gap
	MaxBarSize     float64
	Offset         Offset
	Data           []Row
}

// HasAxes reports whether any axis map is present.
func (p *Props) HasAxes() bool {
	return p.XAxisMap != nil || p.YAxisMap != nil
}

// ShallowEqual compares p and q one level deep: scalars by value, maps by key set
// and entry identity, data rows by slice identity.
func (p *Props) ShallowEqual(q *Props) bool {
	return p.Layout == q.Layout &&
		p.Width == q.Width &&
		p.Height == q.Height &&
		shallow.Maps(p.XAxisMap, q.XAxisMap) &&
		shallow.Maps(p.YAxisMap, q.YAxisMap) &&
		shallow.Maps(p.StackGroups, q.StackGroups) &&
		p.BarSize == q.BarSize &&
		p.BarGap == q.BarGap &&
		p.BarCategoryGap == q.BarCategoryGap &&
		p.MaxBarSize == q.MaxBarSize &&
		p.Offset == q.Offset &&
		shallow.Same(p.Data, q.Data)
}

// Interaction holds transient pointer and tooltip state. It never affects
// geometry.
type Interaction struct {
	ChartX             float64 `json:"chart_x"`
	ChartY             float64 `json:"chart_y"`
	ActiveTooltipIndex int     `json:"active_tooltip_index"`
	TooltipActive      bool    `json:"tooltip_active"`
}

// Inputs is the full bundle a chart is derived from.
type Inputs struct {
	// Items is the pre-resolved item list. When nil, items are discovered
	// from Children.
	Items    []*Item
	Children []*Child

	Props
	Interaction
}

// Clone returns a shallow copy of in. Nested values are shared.
func (in *Inputs) Clone() *Inputs {
	c := *in
	return &c
}

// ItemsEqual compares two item lists element-wise by value, so a freshly
// allocated list with the same items in the same order is equal.
func ItemsEqual(a, b []*Item) bool {
	return shallow.SlicesFunc(a, b, SameItem)
}

// ChildrenEqual compares two child lists element-wise by identity.
func ChildrenEqual(a, b []*Child) bool {
	return shallow.Slices(a, b)
}
