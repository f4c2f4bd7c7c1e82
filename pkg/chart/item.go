package chart

// ItemKind names the shape a graphical item is drawn as.
type ItemKind string

const (
	KindBar  ItemKind = "bar"
	KindLine ItemKind = "line"
	KindArea ItemKind = "area"
)

// Item is one graphical series. Items are plain values; two items with equal
// fields are interchangeable. Zero sizes mean "inherit the chart setting".
type Item struct {
	Kind         ItemKind `json:"kind"`
	Name         string   `json:"name,omitempty"`
	DataKey      string   `json:"data_key"`
	XAxisID      string   `json:"x_axis_id,omitempty"`
	YAxisID      string   `json:"y_axis_id,omitempty"`
	StackID      string   `json:"stack_id,omitempty"`
	BarSize      float64  `json:"bar_size,omitempty"`
	// MaxBarSize overrides Props.MaxBarSize for this item. Zero means
	// unset, so an item cannot lower the cap to zero.
	MaxBarSize   float64  `json:"max_bar_size,omitempty"`
	MinPointSize float64  `json:"min_point_size,omitempty"`
}

// IsBar reports whether the item takes part in bar-size allocation.
func (it *Item) IsBar() bool { return it != nil && it.Kind == KindBar }

// Label returns the item name, falling back to its data key.
func (it *Item) Label() string {
	if it.Name != "" {
		return it.Name
	}
	return it.DataKey
}

// SameItem reports whether a and b are the same pointer or hold equal values.
func SameItem(a, b *Item) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// Child is a node in a declarative chart tree. Type names the element (for
// example "bar", "x_axis", "tooltip" or "group"); Item is set for graphical
// items and Children holds nested elements.
type Child struct {
	Type     string   `json:"type"`
	Item     *Item    `json:"item,omitempty"`
	Children []*Child `json:"children,omitempty"`
}

// ItemChild wraps it in a tree node typed by its kind.
func ItemChild(it *Item) *Child {
	return &Child{Type: string(it.Kind), Item: it}
}
