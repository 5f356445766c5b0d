//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package reports

import (
	"fmt"

	"github.com/tealeg/xlsx"

	"github.com/fleximart/fleximart-datakit/internal/logging"
)

// WriteXLSX writes a report result to path as a spreadsheet with one
// sheet named after the report.
func WriteXLSX(path string, res *Result) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(res.Name)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, col := range res.Columns {
		header.AddCell().SetString(col)
	}

	for _, row := range res.Rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().SetString(cell)
		}
	}

	if err := file.Save(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Info().
		Str("report", res.Name).
		Int("rows", len(res.Rows)).
		Str("file", path).
		Msg("Wrote report spreadsheet")

	return nil
}
