package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/compose"
	"github.com/matzehuels/chartgeom/pkg/gate"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings, recomputes
	colorRed    = lipgloss.Color("167") // errors
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached    = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed  = lipgloss.NewStyle().Foreground(colorGray)
	styleRecompute = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleRender    = lipgloss.NewStyle().Foreground(colorCyan)
	styleHeader    = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// statusOut receives status lines. Results go to the command's stdout so
// they can be piped.
var statusOut io.Writer = os.Stderr

func printSuccess(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats prints derivation statistics on a single line.
func printStats(items, rows int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d items", items),
		fmt.Sprintf("%d rows", rows),
	}
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	var line strings.Builder
	line.WriteString("  ")
	for _, p := range parts {
		line.WriteString(StyleDim.Render(p))
		line.WriteString(StyleDim.Render(" · "))
	}
	line.WriteString(statusStyle.Render(status))
	fmt.Fprintln(statusOut, line.String())
}

// decisionLabel renders a gate decision as a short word.
func decisionLabel(d gate.Decision) string {
	switch {
	case d.Recompute:
		return styleRecompute.Render("recompute")
	case d.Render:
		return styleRender.Render("render")
	default:
		return StyleDim.Render("skip")
	}
}

// geometryTable renders one row per item: its kind, label, the shapes it
// produced and the value extent of those shapes.
func geometryTable(items []*chart.Item, geoms []compose.Geometry) string {
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		var g compose.Geometry
		if i < len(geoms) {
			g = geoms[i]
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			string(it.Kind),
			it.Label(),
			shapeSummary(g),
			extentSummary(g),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Kind", "Item", "Shapes", "Extent").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 3 && row < len(rows) && rows[row][3] == "none" {
				return StyleWarning
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func shapeSummary(g compose.Geometry) string {
	switch {
	case g.IsEmpty():
		return "none"
	case len(g.Rects) > 0:
		return fmt.Sprintf("%d rects", len(g.Rects))
	default:
		defined := 0
		for _, p := range g.Points {
			if p.Defined {
				defined++
			}
		}
		return fmt.Sprintf("%d/%d points", defined, len(g.Points))
	}
}

func extentSummary(g compose.Geometry) string {
	var lo, hi float64
	first := true
	grow := func(v float64) {
		if first || v < lo {
			lo = v
		}
		if first || v > hi {
			hi = v
		}
		first = false
	}
	for _, r := range g.Rects {
		grow(r.Value)
	}
	for _, p := range g.Points {
		if p.Defined {
			grow(p.Value)
		}
	}
	if first {
		return "-"
	}
	return fmt.Sprintf("%g … %g", lo, hi)
}
