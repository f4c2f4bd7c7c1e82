package derive

import "github.com/matzehuels/chartgeom/pkg/chart"

// Discoverer resolves the graphical items of a chart.
type Discoverer struct {
	types map[string]bool
}

// NewDiscoverer returns a Discoverer matching children whose Type is one of
// types. With no types, any child carrying an item matches.
func NewDiscoverer(types ...string) Discoverer {
	d := Discoverer{}
	if len(types) > 0 {
		d.types = make(map[string]bool, len(types))
		for _, t := range types {
			d.types[t] = true
		}
	}
	return d
}

// Discover returns in.Items unchanged when set. Otherwise it walks
// in.Children depth-first and collects matching items in tree order.
func (d Discoverer) Discover(in *chart.Inputs) []*chart.Item {
	if in.Items != nil {
		return in.Items
	}
	var items []*chart.Item
	var walk func(children []*chart.Child)
	walk = func(children []*chart.Child) {
		for _, c := range children {
			if c == nil {
				continue
			}
			if c.Item != nil && d.matches(c.Type) {
				items = append(items, c.Item)
			}
			walk(c.Children)
		}
	}
	walk(in.Children)
	return items
}

func (d Discoverer) matches(typ string) bool {
	return d.types == nil || d.types[typ]
}
