// Package chartspec loads chart definitions from TOML or JSON files and
// builds derivation inputs from them.
//
// A spec names the layout, the plot size and margins, bar sizing hints, the
// axes, the graphical items and the data rows:
//
//	layout = "horizontal"
//	width = 600
//	height = 400
//	bar_category_gap = "10%"
//	data_file = "sales.csv"
//
//	[margin]
//	top = 20
//	left = 40
//
//	[[x_axis]]
//	type = "category"
//	data_key = "month"
//
//	[[y_axis]]
//	type = "number"
//
//	[[item]]
//	kind = "bar"
//	data_key = "revenue"
//	stack_id = "a"
//
// [Spec.Build] resolves scales against the plot area, computes nice ticks for
// numeric axes and stacks series. Axis and item ids default to "0", so
// single-axis charts need no ids at all.
//
// Replay files list updates to apply to a built chart one after another;
// see [Replay].
package chartspec
