package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/chartspec"
	"github.com/matzehuels/chartgeom/pkg/compose"
	"github.com/matzehuels/chartgeom/pkg/gate"
	"github.com/matzehuels/chartgeom/pkg/shell"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [spec]",
		Short: "Explore a chart interactively and watch recompute decisions",
		Long: `Explore a chart interactively and watch recompute decisions.

Move the tooltip with ←/→ and toggle it with t; these updates are transient
and keep the derived geometry. Hide or show the selected item with space
and flip the layout with o; these rebuild the chart and recompute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := chartspec.Load(args[0])
			if err != nil {
				return err
			}
			m, err := newInspectModel(spec, c.Logger)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// deriveCounter counts derivations for the inspect status line.
type deriveCounter struct {
	derives int
	last    time.Duration
}

func (d *deriveCounter) OnDeriveStart(int) {}
func (d *deriveCounter) OnDeriveComplete(_ int, elapsed time.Duration) {
	d.derives++
	d.last = elapsed
}
func (d *deriveCounter) OnDecision(bool, bool) {}

// inspectModel is the bubbletea model behind chartgeom inspect.
type inspectModel struct {
	spec    *chartspec.Spec
	rows    []chart.Row
	wrapper *shell.Wrapper[compose.Geometry]
	counter *deriveCounter

	cursor   int
	decision *gate.Decision
	change   string
	err      error
}

func newInspectModel(spec *chartspec.Spec, logger *log.Logger) (inspectModel, error) {
	rows, err := spec.Rows()
	if err != nil {
		return inspectModel{}, err
	}
	in, err := spec.BuildWithRows(rows)
	if err != nil {
		return inspectModel{}, err
	}
	counter := &deriveCounter{}
	return inspectModel{
		spec:    spec,
		rows:    rows,
		wrapper: shell.New(in, compose.NewPipeline(), shell.WithHooks(counter), shell.WithLogger(logger)),
		counter: counter,
	}, nil
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	cur := m.wrapper.Inputs().Interaction
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.spec.Items)-1 {
			m.cursor++
		}
	case "left", "h":
		idx := max(cur.ActiveTooltipIndex-1, 0)
		m = m.apply(chartspec.Step{ActiveTooltipIndex: &idx})
	case "right", "l":
		idx := cur.ActiveTooltipIndex + 1
		if n := len(m.rows); idx >= n {
			idx = max(n-1, 0)
		}
		m = m.apply(chartspec.Step{ActiveTooltipIndex: &idx})
	case "t":
		active := !cur.TooltipActive
		m = m.apply(chartspec.Step{TooltipActive: &active})
	case " ", "x":
		if len(m.spec.Items) == 0 {
			break
		}
		it := m.spec.Items[m.cursor]
		if it.Hide {
			m = m.apply(chartspec.Step{Show: []string{it.Label()}})
		} else {
			m = m.apply(chartspec.Step{Hide: []string{it.Label()}})
		}
	case "o":
		layout := string(chart.LayoutVertical)
		if m.spec.Layout == layout {
			layout = string(chart.LayoutHorizontal)
		}
		m = m.apply(chartspec.Step{Layout: &layout})
	}
	return m, nil
}

// apply pushes st through the wrapper the same way a replay step would.
func (m inspectModel) apply(st chartspec.Step) inspectModel {
	cur := m.wrapper.Inputs()
	var next *chart.Inputs
	if st.Structural() {
		spec, err := st.ApplySpec(m.spec)
		if err == nil {
			next, err = spec.BuildWithRows(m.rows)
		}
		if err != nil {
			m.err = err
			return m
		}
		m.spec = spec
		next.Interaction = cur.Interaction
	} else {
		next = cur.Clone()
	}
	st.ApplyInteraction(&next.Interaction)

	d := m.wrapper.Update(next).Decision()
	m.decision = &d
	m.change = stepSummary(st)
	m.err = nil
	return m
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("chartgeom inspect"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ←/→ tooltip  t toggle tooltip  space hide/show  o layout  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.itemTable())
	b.WriteString("\n\n")

	view := m.wrapper.View()
	in := view.Inputs
	tip := fmt.Sprintf("tooltip %d", in.ActiveTooltipIndex)
	if ticks := view.Derived.AxisTicks; in.ActiveTooltipIndex < len(ticks) {
		tip += fmt.Sprintf(" (%v)", ticks[in.ActiveTooltipIndex].Value)
	}
	if !in.TooltipActive {
		tip += " hidden"
	}
	fmt.Fprintf(&b, "%s  %s  %s\n",
		StyleValue.Render(tip),
		StyleDim.Render("layout "+string(in.Layout)),
		StyleDim.Render(fmt.Sprintf("derives %d (last %s)", m.counter.derives, m.counter.last.Round(time.Microsecond))))

	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.decision != nil:
		b.WriteString(StyleDim.Render(m.change+" "+iconArrow+" ") + decisionLabel(*m.decision))
	}
	b.WriteString("\n")
	return b.String()
}

// itemTable lists every spec item, hidden ones included, next to the
// geometry derived for it.
func (m inspectModel) itemTable() string {
	view := m.wrapper.View()
	geoms := view.Derived.AllComposedData
	rows := make([][]string, len(m.spec.Items))
	visible := 0
	for i, it := range m.spec.Items {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		shapes := "hidden"
		if !it.Hide {
			if visible < len(geoms) {
				shapes = shapeSummary(geoms[visible])
			}
			visible++
		}
		rows[i] = []string{cursor, it.Kind, it.Label(), it.StackID, shapes}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Kind", "Item", "Stack", "Shapes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row == m.cursor:
				return listSelectedStyle
			case row < len(m.spec.Items) && m.spec.Items[row].Hide:
				return listDimStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
