package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/errors"
)

// ReadRowsJSON decodes a JSON array of objects from r.
// Numbers decode as float64. ReadRowsJSON does not close r.
func ReadRowsJSON(r io.Reader) ([]chart.Row, error) {
	var rows []chart.Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode rows")
	}
	for i, row := range rows {
		if row == nil {
			return nil, errors.New(errors.ErrCodeInvalidData, "row %d is not an object", i)
		}
	}
	return rows, nil
}

// ReadRowsCSV reads a CSV table from r. The first record names the fields.
func ReadRowsCSV(r io.Reader) ([]chart.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read csv")
	}
	return table(records)
}

// ImportRows reads rows from path, choosing the format by extension. The
// sheet argument applies to XLSX files only; empty selects the first sheet.
func ImportRows(path, sheet string) ([]chart.Row, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return ReadXLSX(path, sheet)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch ext {
	case ".json":
		return ReadRowsJSON(f)
	case ".csv":
		return ReadRowsCSV(f)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported data file extension %q", ext)
}

// table converts header-first records into rows.
func table(records [][]string) ([]chart.Row, error) {
	if len(records) == 0 {
		return []chart.Row{}, nil
	}
	header := records[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if header[i] == "" {
			return nil, errors.New(errors.ErrCodeInvalidData, "column %d has no header", i+1)
		}
	}

	rows := make([]chart.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(chart.Row, len(header))
		for i, cell := range rec {
			if i >= len(header) || cell == "" {
				continue
			}
			row[header[i]] = parseCell(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseCell returns s as a float64 when it is a number, else s unchanged.
func parseCell(s string) any {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f
	}
	return s
}
