// Package compose builds the drawable geometry of bar, line and area series.
//
// Each composer has the derive.Composer signature and declines (returns
// false) when the axes it needs could not be resolved, so the pipeline stores
// an empty [Geometry] for that item. [Composed] dispatches on the item kind
// and is the composer used for mixed charts.
package compose
