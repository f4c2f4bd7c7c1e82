// Package io reads chart data rows and writes derived geometry.
//
// # Import
//
// Data rows can come from three formats, chosen by file extension in
// [ImportRows]:
//
//   - .json: an array of objects, one per row
//   - .csv: a header line naming the fields, then one line per row
//   - .xlsx: the first row of a worksheet names the fields
//
// CSV and XLSX cells that parse as numbers become float64; everything else
// stays a string. Empty cells are left out of the row, so a missing value and
// an empty cell look the same to the derivation pipeline.
//
//	rows, err := io.ImportRows("sales.csv", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// [WriteGeometryJSON] writes a derived state as indented JSON:
//
//	err := io.ExportGeometryJSON(derived, "geometry.json")
package io
