// Package render holds renderers for chart debugging output.
//
// Painting charts is left to hosts, which draw the geometry in a derived
// state however they like. The [nodelink] subpackage draws the structure of
// a chart (axes, stack groups and items) with Graphviz.
//
// [nodelink]: github.com/matzehuels/chartgeom/pkg/render/nodelink
package render
