// Package chart defines the inputs a cartesian chart is derived from.
//
// An [Inputs] bundle is immutable for the duration of one update cycle. Its
// fields fall into two groups:
//
//   - [Props]: fields that affect geometry (layout, axis maps, stack groups,
//     bar-sizing hints, offset, data rows)
//   - [Interaction]: transient pointer and tooltip state that only affects
//     what is drawn on top of the geometry
//
// Graphical items are supplied either as an explicit [Inputs.Items] list or
// as a declarative tree of [Child] nodes.
//
// # Reference Convention
//
// Nested values (axes, stacks, data rows) are compared by identity, never
// deeply. Producers must allocate a new value whenever contents change;
// mutating an *Axis in place is invisible to change detection.
package chart
