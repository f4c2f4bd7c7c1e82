package derive

import "github.com/matzehuels/chartgeom/pkg/chart"

// SizeEntry is one bar slot within a category band. Items in StackList share
// the slot of Item.
type SizeEntry struct {
	Item      *chart.Item
	StackList []*chart.Item
	BarSize   float64
}

// SizeTable lists bar slots per category axis id.
type SizeTable map[string][]SizeEntry

// BarPlacement is the offset and width of one item's bar within its band.
type BarPlacement struct {
	Item   *chart.Item `json:"-"`
	Offset float64     `json:"offset"`
	Size   float64     `json:"size"`
}

// BarPositionParams are the inputs to [Routines.BarPosition].
type BarPositionParams struct {
	BarGap         chart.Gap
	BarCategoryGap chart.Gap
	BandSize       float64
	Sizes          []SizeEntry
	MaxBarSize     float64
}

// Routines are the geometric building blocks the pipeline delegates to.
// Implementations must be deterministic; panics propagate to the caller.
type Routines interface {
	// Ticks resolves the ticks of axis. It returns nil when axis is nil.
	Ticks(axis *chart.Axis) []chart.Tick

	// StackedData returns item's spans within groups, or nil.
	StackedData(item *chart.Item, groups []*chart.Stack) []chart.Span

	// BarSizes builds the shared bar slot table.
	BarSizes(barSize float64, groups chart.StackGroups) SizeTable

	// BandSize returns the width of one category slot on axis.
	BandSize(axis *chart.Axis, ticks []chart.Tick) float64

	// BarPosition places every bar slot within a band. It returns nil when
	// there are no slots.
	BarPosition(p BarPositionParams) []BarPlacement
}
