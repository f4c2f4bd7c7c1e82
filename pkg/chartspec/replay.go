package chartspec

import (
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/errors"
)

// Replay is a scripted sequence of updates applied to a built chart.
//
//	[[update]]
//	chart_x = 120
//	chart_y = 40
//	active_tooltip_index = 2
//	tooltip_active = true
//
//	[[update]]
//	hide = ["pv"]
type Replay struct {
	Updates []Step `toml:"update" json:"update"`
}

// Step is one update. Interaction fields change only transient state;
// Hide, Show, Layout and BarGap change the spec and rebuild the chart.
type Step struct {
	ChartX             *float64 `toml:"chart_x" json:"chart_x,omitempty"`
	ChartY             *float64 `toml:"chart_y" json:"chart_y,omitempty"`
	ActiveTooltipIndex *int     `toml:"active_tooltip_index" json:"active_tooltip_index,omitempty"`
	TooltipActive      *bool    `toml:"tooltip_active" json:"tooltip_active,omitempty"`

	Hide   []string `toml:"hide" json:"hide,omitempty"`
	Show   []string `toml:"show" json:"show,omitempty"`
	Layout *string  `toml:"layout" json:"layout,omitempty"`
	BarGap *Gap     `toml:"bar_gap" json:"bar_gap,omitempty"`
}

// Structural reports whether st changes anything beyond interaction state.
func (st Step) Structural() bool {
	return len(st.Hide) > 0 || len(st.Show) > 0 || st.Layout != nil || st.BarGap != nil
}

// ApplyInteraction sets the interaction fields present in st on in.
func (st Step) ApplyInteraction(in *chart.Interaction) {
	if st.ChartX != nil {
		in.ChartX = *st.ChartX
	}
	if st.ChartY != nil {
		in.ChartY = *st.ChartY
	}
	if st.ActiveTooltipIndex != nil {
		in.ActiveTooltipIndex = *st.ActiveTooltipIndex
	}
	if st.TooltipActive != nil {
		in.TooltipActive = *st.TooltipActive
	}
}

// ApplySpec returns a copy of s with the structural fields of st applied.
// Items are matched by [ItemSpec.Label].
func (st Step) ApplySpec(s *Spec) (*Spec, error) {
	c := s.Clone()
	for _, name := range st.Hide {
		if err := c.setHidden(name, true); err != nil {
			return nil, err
		}
	}
	for _, name := range st.Show {
		if err := c.setHidden(name, false); err != nil {
			return nil, err
		}
	}
	if st.Layout != nil && chart.Layout(*st.Layout) != c.layout() {
		// Axis roles swap with the layout.
		c.Layout = *st.Layout
		c.XAxes, c.YAxes = c.YAxes, c.XAxes
		for i := range c.Items {
			c.Items[i].XAxisID, c.Items[i].YAxisID = c.Items[i].YAxisID, c.Items[i].XAxisID
		}
	}
	if st.BarGap != nil {
		c.BarGap = *st.BarGap
	}
	return c, nil
}

func (s *Spec) setHidden(name string, hide bool) error {
	i := slices.IndexFunc(s.Items, func(it ItemSpec) bool { return it.Label() == name })
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "no item named %q", name)
	}
	s.Items[i].Hide = hide
	return nil
}

// LoadReplay reads a TOML replay file.
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "replay %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read replay %s", path)
	}
	var r Replay
	md, err := toml.Decode(string(data), &r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode replay")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown replay key %q", undecoded[0].String())
	}
	return &r, nil
}

// Inputs expands r into the inputs each step produces, starting from the
// chart built from s. Interaction-only steps clone the previous inputs, so
// everything that affects geometry is shared; structural steps rebuild the
// chart and carry interaction state over. The first element is the initial
// inputs.
func (r *Replay) Inputs(s *Spec) ([]*chart.Inputs, error) {
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	cur, err := s.BuildWithRows(rows)
	if err != nil {
		return nil, err
	}

	out := []*chart.Inputs{cur}
	spec := s
	for i, st := range r.Updates {
		var next *chart.Inputs
		if st.Structural() {
			spec, err = st.ApplySpec(spec)
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "update %d", i+1)
			}
			next, err = spec.BuildWithRows(rows)
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "update %d", i+1)
			}
			next.Interaction = cur.Interaction
		} else {
			next = cur.Clone()
		}
		st.ApplyInteraction(&next.Interaction)
		out = append(out, next)
		cur = next
	}
	return out, nil
}
