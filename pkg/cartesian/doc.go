// Package cartesian implements the geometric routines behind cartesian
// charts: tick resolution, band sizing, bar slot allocation and placement,
// and stacking.
//
// [Routines] satisfies derive.Routines and is the implementation used by the
// CLI and API. [BuildStackGroups] prepares the stacking metadata that the
// derivation pipeline consumes.
package cartesian
