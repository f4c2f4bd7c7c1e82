// Package pkg holds the chartgeom libraries.
//
// # Overview
//
// chartgeom turns a declarative cartesian chart (axes, graphical items,
// stack groups, data rows) into per-item geometry and keeps that geometry
// stable across updates that cannot change it.
//
//  1. [chart] - the input model: items, axes, layout, stacking metadata
//  2. [derive] - the derivation pipeline and item discovery
//  3. [cartesian] - tick, band, bar-size, bar-position and stacking routines
//  4. [compose] - bar, line and area geometry
//  5. [gate] and [shell] - recompute/render decisions and the per-chart wrapper
//  6. [chartspec], [io], [pipeline], [cache] - spec files, data import, cached runs
//
// # Data flow
//
//	spec file (TOML/JSON) + rows (inline, JSON, CSV, XLSX)
//	         ↓
//	    [chartspec] Build → *chart.Inputs
//	         ↓
//	    [derive] Pipeline.Derive → Derived{AxisTicks, AllComposedData}
//	         ↓
//	    [shell] Wrapper.Update → gate decision per update
//
// # Quick Start
//
//	spec, err := chartspec.Load("chart.toml")
//	if err != nil {
//	    return err
//	}
//	in, err := spec.Build()
//	if err != nil {
//	    return err
//	}
//	w := shell.New(in, compose.NewPipeline())
//	for i, g := range w.Derived().AllComposedData {
//	    fmt.Println(i, g.Kind, len(g.Rects))
//	}
//
// [chart]: github.com/matzehuels/chartgeom/pkg/chart
// [derive]: github.com/matzehuels/chartgeom/pkg/derive
// [cartesian]: github.com/matzehuels/chartgeom/pkg/cartesian
// [compose]: github.com/matzehuels/chartgeom/pkg/compose
// [gate]: github.com/matzehuels/chartgeom/pkg/gate
// [shell]: github.com/matzehuels/chartgeom/pkg/shell
// [chartspec]: github.com/matzehuels/chartgeom/pkg/chartspec
// [io]: github.com/matzehuels/chartgeom/pkg/io
// [pipeline]: github.com/matzehuels/chartgeom/pkg/pipeline
// [cache]: github.com/matzehuels/chartgeom/pkg/cache
package pkg
