package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeom/pkg/chartspec"
	"github.com/matzehuels/chartgeom/pkg/compose"
	"github.com/matzehuels/chartgeom/pkg/gate"
	"github.com/matzehuels/chartgeom/pkg/pipeline"
	"github.com/matzehuels/chartgeom/pkg/shell"
)

// replayStep is the outcome of one replayed update.
type replayStep struct {
	Step     int           `json:"step"`
	Change   string        `json:"change"`
	Decision gate.Decision `json:"decision"`
	Items    int           `json:"items"`
}

// replayCommand creates the replay command.
func (c *CLI) replayCommand() *cobra.Command {
	format := pipeline.FormatTable

	cmd := &cobra.Command{
		Use:   "replay [spec] [updates]",
		Short: "Replay scripted updates and report each recompute/render decision",
		Long: `Replay scripted updates and report each recompute/render decision.

The updates file is TOML with one [[update]] table per step. Steps that set
only chart_x, chart_y, active_tooltip_index or tooltip_active are transient
and never recompute geometry. Steps with hide, show, layout or bar_gap
rebuild the chart.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateDeriveFormat(format); err != nil {
				return err
			}
			return c.runReplay(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: table, json")
	return cmd
}

func (c *CLI) runReplay(ctx context.Context, stdout io.Writer, specPath, replayPath, format string) error {
	spec, err := chartspec.Load(specPath)
	if err != nil {
		return err
	}
	replay, err := chartspec.LoadReplay(replayPath)
	if err != nil {
		return err
	}

	steps, err := replaySteps(spec, replay, loggerFromContext(ctx))
	if err != nil {
		return err
	}

	if format == pipeline.FormatJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	}
	fmt.Fprintln(stdout, replayTable(steps))

	recomputes, renders := 0, 0
	for _, s := range steps {
		if s.Decision.Recompute {
			recomputes++
		}
		if s.Decision.Render {
			renders++
		}
	}
	printInfo("%d updates: %d recomputed, %d rendered", len(steps), recomputes, renders)
	return nil
}

// replaySteps runs every update of r through a wrapper built from s.
func replaySteps(s *chartspec.Spec, r *chartspec.Replay, logger *log.Logger) ([]replayStep, error) {
	inputs, err := r.Inputs(s)
	if err != nil {
		return nil, err
	}

	p := compose.NewPipeline()
	w := shell.New(inputs[0], p, shell.WithLogger(logger))
	steps := make([]replayStep, 0, len(r.Updates))
	for i, in := range inputs[1:] {
		u := w.Update(in)
		change := "interaction"
		if r.Updates[i].Structural() {
			change = "structural"
		}
		steps = append(steps, replayStep{
			Step:     i + 1,
			Change:   change,
			Decision: u.Decision(),
			Items:    len(u.View.Derived.AllComposedData),
		})
		logger.Debug("replayed update", "step", i+1, "recompute", u.Recomputed, "render", u.Render)
	}
	return steps, nil
}

func replayTable(steps []replayStep) string {
	rows := make([][]string, len(steps))
	for i, s := range steps {
		rows[i] = []string{
			fmt.Sprintf("%d", s.Step),
			s.Change,
			decisionLabel(s.Decision),
			fmt.Sprintf("%d", s.Items),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Step", "Change", "Decision", "Items").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// stepSummary describes the fields set in st, for the inspect view.
func stepSummary(st chartspec.Step) string {
	var parts []string
	if st.ActiveTooltipIndex != nil {
		parts = append(parts, fmt.Sprintf("tooltip %d", *st.ActiveTooltipIndex))
	}
	if len(st.Hide) > 0 {
		parts = append(parts, "hide "+strings.Join(st.Hide, ","))
	}
	if len(st.Show) > 0 {
		parts = append(parts, "show "+strings.Join(st.Show, ","))
	}
	if st.Layout != nil {
		parts = append(parts, "layout "+*st.Layout)
	}
	if len(parts) == 0 {
		return "no change"
	}
	return strings.Join(parts, ", ")
}
