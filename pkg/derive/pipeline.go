package derive

import "github.com/matzehuels/chartgeom/pkg/chart"

// Context is everything a [Composer] receives for one item. Fields that could
// not be resolved (no axis maps, no stacking) are left at their zero value.
type Context struct {
	Inputs      *chart.Inputs
	XAxis       *chart.Axis
	YAxis       *chart.Axis
	XTicks      []chart.Tick
	YTicks      []chart.Tick
	DataKey     string
	Item        *chart.Item
	BandSize    float64
	BarPosition []BarPlacement
	Offset      chart.Offset
	StackedData []chart.Span
}

// Composer builds the geometry of one item. The boolean result reports
// whether geometry was produced; when false the item's slot holds the zero G.
type Composer[G any] func(ctx *Context) (G, bool)

// Derived is the cached output of one derivation pass.
type Derived[G any] struct {
	// AxisTicks are the ticks of the first resolved category-side axis:
	// the x-axis under horizontal layout, the y-axis otherwise.
	AxisTicks []chart.Tick `json:"axis_ticks"`

	// AllComposedData holds one geometry per discovered item, in discovery
	// order.
	AllComposedData []G `json:"all_composed_data"`
}

// Option configures a [Pipeline].
type Option func(*config)

type config struct {
	itemTypes []string
}

// WithItemTypes restricts tree discovery to children of the given types.
func WithItemTypes(types ...string) Option {
	return func(c *config) { c.itemTypes = append(c.itemTypes, types...) }
}

// Pipeline derives geometry of type G from chart inputs.
// It holds no per-call state and may be shared.
type Pipeline[G any] struct {
	routines Routines
	compose  Composer[G]
	discover Discoverer
}

// New creates a pipeline. A nil compose stores the zero G for every item.
func New[G any](r Routines, compose Composer[G], opts ...Option) *Pipeline[G] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pipeline[G]{
		routines: r,
		compose:  compose,
		discover: NewDiscoverer(cfg.itemTypes...),
	}
}

// Discover resolves the items of in using the pipeline's item types.
func (p *Pipeline[G]) Discover(in *chart.Inputs) []*chart.Item {
	return p.discover.Discover(in)
}

// Derive runs a full derivation pass over in.
func (p *Pipeline[G]) Derive(in *chart.Inputs) *Derived[G] {
	return p.DeriveItems(in, p.discover.Discover(in))
}

// DeriveItems runs a derivation pass over items, which must be the result
// of [Pipeline.Discover] on in.
func (p *Pipeline[G]) DeriveItems(in *chart.Inputs, items []*chart.Item) *Derived[G] {
	sizes := p.routines.BarSizes(in.BarSize, in.StackGroups)
	horizontal := in.Layout.IsHorizontal()

	var axisTicks []chart.Tick
	all := make([]G, 0, len(items))

	for _, item := range items {
		ctx := Context{
			Inputs:  in,
			DataKey: item.DataKey,
			Item:    item,
			Offset:  in.Offset,
		}

		if in.HasAxes() {
			ctx.XAxis = in.XAxisMap[item.XAxisID]
			ctx.YAxis = in.YAxisMap[item.YAxisID]
			ctx.XTicks = p.routines.Ticks(ctx.XAxis)
			ctx.YTicks = p.routines.Ticks(ctx.YAxis)

			if axisTicks == nil {
				if horizontal {
					axisTicks = ctx.XTicks
				} else {
					axisTicks = ctx.YTicks
				}
			}

			numericID := in.Layout.NumericAxisID(item.XAxisID, item.YAxisID)
			categoryID := in.Layout.CategoryAxisID(item.XAxisID, item.YAxisID)
			categoryAxis, categoryTicks := ctx.YAxis, ctx.YTicks
			if horizontal {
				categoryAxis, categoryTicks = ctx.XAxis, ctx.XTicks
			}

			if sg := in.StackGroups[numericID]; sg != nil && sg.HasStack {
				ctx.StackedData = p.routines.StackedData(item, sg.Groups)
			}

			ctx.BandSize = p.routines.BandSize(categoryAxis, categoryTicks)

			maxBarSize := in.MaxBarSize
			if item.MaxBarSize != 0 {
				maxBarSize = item.MaxBarSize
			}
			ctx.BarPosition = p.routines.BarPosition(BarPositionParams{
				BarGap:         in.BarGap,
				BarCategoryGap: in.BarCategoryGap,
				BandSize:       ctx.BandSize,
				Sizes:          sizes[categoryID],
				MaxBarSize:     maxBarSize,
			})
		}

		var g G
		if p.compose != nil {
			if composed, ok := p.compose(&ctx); ok {
				g = composed
			}
		}
		all = append(all, g)
	}

	return &Derived[G]{AxisTicks: axisTicks, AllComposedData: all}
}
