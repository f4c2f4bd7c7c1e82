package chart

// Layout selects which axis carries categories.
type Layout string

// Known layouts. Any other value behaves like [LayoutVertical] for the purpose
// of choosing category and numeric axes.
const (
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
	LayoutCentric    Layout = "centric"
)

// IsHorizontal reports whether categories run along the x-axis.
func (l Layout) IsHorizontal() bool { return l == LayoutHorizontal }

// CategoryAxisID returns whichever of xID and yID is the category axis.
func (l Layout) CategoryAxisID(xID, yID string) string {
	if l.IsHorizontal() {
		return xID
	}
	return yID
}

// NumericAxisID returns whichever of xID and yID is the numeric axis.
func (l Layout) NumericAxisID(xID, yID string) string {
	if l.IsHorizontal() {
		return yID
	}
	return xID
}

// Offset is the plot area within the chart, after margins.
type Offset struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margin is the space reserved around the plot area.
type Margin struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// OffsetOf computes the plot area of a width×height chart with margin m.
func OffsetOf(width, height float64, m Margin) Offset {
	return Offset{
		Top:    m.Top,
		Right:  m.Right,
		Bottom: m.Bottom,
		Left:   m.Left,
		Width:  max(0, width-m.Left-m.Right),
		Height: max(0, height-m.Top-m.Bottom),
	}
}
