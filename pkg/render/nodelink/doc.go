// Package nodelink renders the topology of a chart as a node-link diagram.
//
// The diagram shows which axes each item is plotted against and which
// items share a stack group. It is a debugging aid for chart specs, not a
// rendering of the chart itself.
//
// # Usage
//
// Convert discovered items to DOT format, then render to SVG:
//
//	items := compose.NewPipeline().Discover(in)
//	dot := nodelink.ToDOT(in, items, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
