package io

import (
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/errors"
)

// ReadXLSX reads rows from a worksheet of the workbook at path. The first
// row names the fields. An empty sheet selects the first worksheet.
func ReadXLSX(path, sheet string) ([]chart.Row, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "open workbook %s", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return []chart.Row{}, nil
		}
		sheet = sheets[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "sheet %q not found in %s", sheet, path)
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read sheet %q", sheet)
	}
	return table(records)
}
