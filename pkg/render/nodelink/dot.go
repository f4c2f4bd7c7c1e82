package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chartgeom/pkg/chart"
)

// Options configures topology diagram rendering.
type Options struct {
	// Detailed includes data keys, stack ids and sizing hints in node
	// labels. When false, only names are shown.
	Detailed bool
}

// ToDOT converts the topology of a chart to Graphviz DOT format: one node
// per axis, stack group and item, with edges from each item to the axes it
// is plotted against and to its stack group. The resulting DOT string can be
// rendered using [RenderSVG].
//
// Items are the discovered items of in, in discovery order.
func ToDOT(in *chart.Inputs, items []*chart.Item, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeAxes(&buf, "x", in.XAxisMap, opts.Detailed)
	writeAxes(&buf, "y", in.YAxisMap, opts.Detailed)

	for _, numericID := range slices.Sorted(maps.Keys(in.StackGroups)) {
		sg := in.StackGroups[numericID]
		if sg == nil || !sg.HasStack {
			continue
		}
		for _, g := range sg.Groups {
			if strings.HasPrefix(g.ID, "_stack_") {
				continue
			}
			id := stackNode(numericID, g.ID)
			fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, fillcolor=lightyellow];\n", id, "stack "+g.ID)
		}
	}

	buf.WriteString("\n")
	for i, it := range items {
		id := itemNode(i)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(itemAttrs(it, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for i, it := range items {
		id := itemNode(i)
		if in.XAxisMap[it.XAxisID] != nil {
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, axisNode("x", it.XAxisID))
		}
		if in.YAxisMap[it.YAxisID] != nil {
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, axisNode("y", it.YAxisID))
		}
		numericID := in.Layout.NumericAxisID(it.XAxisID, it.YAxisID)
		if it.StackID != "" && in.StackGroups[numericID].Group(it.StackID) != nil {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", id, stackNode(numericID, it.StackID))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeAxes(buf *bytes.Buffer, side string, axes chart.AxisMap, detailed bool) {
	for _, id := range slices.Sorted(maps.Keys(axes)) {
		a := axes[id]
		label := side + " axis " + id
		if detailed && a != nil {
			label += fmt.Sprintf("\ntype: %s", a.Type)
			if a.DataKey != "" {
				label += "\ndata_key: " + a.DataKey
			}
		}
		fmt.Fprintf(buf, "  %q [label=%q, shape=ellipse, fillcolor=lightblue];\n", axisNode(side, id), label)
	}
}

func itemAttrs(it *chart.Item, detailed bool) []string {
	label := string(it.Kind) + " " + it.Label()
	if detailed {
		parts := []string{"data_key: " + it.DataKey}
		if it.StackID != "" {
			parts = append(parts, "stack_id: "+it.StackID)
		}
		if it.BarSize != 0 {
			parts = append(parts, fmt.Sprintf("bar_size: %g", it.BarSize))
		}
		if it.MaxBarSize != 0 {
			parts = append(parts, fmt.Sprintf("max_bar_size: %g", it.MaxBarSize))
		}
		label += "\n" + strings.Join(parts, "\n")
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if it.IsBar() {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

func axisNode(side, id string) string    { return side + ":" + id }
func stackNode(axisID, id string) string { return "stack:" + axisID + ":" + id }
func itemNode(i int) string              { return "item:" + strconv.Itoa(i) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales to its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
