package chart

// Span is the [low, high] extent one data point occupies in a stack.
type Span [2]float64

// Stack is a set of items drawn on top of each other.
type Stack struct {
	ID             string
	NumericAxisID  string
	CategoryAxisID string
	Items          []*Item

	// StackedData holds, per item in Items order, one span per data row.
	StackedData [][]Span
}

// AxisStack groups every stack drawn against one numeric axis. Groups keep
// their declaration order, which drives bar ordering within a band.
type AxisStack struct {
	HasStack bool
	Groups   []*Stack
}

// Group returns the stack with the given id, or nil.
func (a *AxisStack) Group(id string) *Stack {
	if a == nil {
		return nil
	}
	for _, g := range a.Groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// StackGroups indexes stacking metadata by numeric axis id.
type StackGroups map[string]*AxisStack
