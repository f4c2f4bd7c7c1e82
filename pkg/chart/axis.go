package chart

import "github.com/matzehuels/chartgeom/pkg/scale"

// AxisType distinguishes categorical from numeric axes.
type AxisType string

const (
	AxisCategory AxisType = "category"
	AxisNumber   AxisType = "number"
)

// Axis is a resolved axis definition.
type Axis struct {
	ID      string
	Type    AxisType
	DataKey string
	Scale   scale.Scale

	// Ticks are explicit tick values. When empty, NiceTicks and then the
	// scale's domain are used.
	Ticks     []any
	NiceTicks []any

	// Plot-area box covered by the axis, used for bar backgrounds.
	X, Y, Width, Height float64
}

// IsCategory reports whether a is a category axis.
func (a *Axis) IsCategory() bool { return a != nil && a.Type == AxisCategory }

// AxisMap indexes axes by identifier.
type AxisMap map[string]*Axis

// Tick is one resolved tick: a domain value and its coordinate.
type Tick struct {
	Coordinate float64 `json:"coordinate"`
	Value      any     `json:"value"`
	Offset     float64 `json:"offset"`
}
