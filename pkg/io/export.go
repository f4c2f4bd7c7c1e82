package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chartgeom/pkg/derive"
)

// WriteGeometryJSON encodes d as indented JSON and writes it to w.
func WriteGeometryJSON[G any](w io.Writer, d *derive.Derived[G]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportGeometryJSON writes d to a JSON file at path.
func ExportGeometryJSON[G any](d *derive.Derived[G], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGeometryJSON(f, d)
}
