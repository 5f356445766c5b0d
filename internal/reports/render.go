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
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Output formats accepted by Render.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatXLSX     = "xlsx"
)

// Render writes a report result to w in the named format. XLSX is file
// based and handled by WriteXLSX instead.
func Render(w io.Writer, res *Result, format string) error {
	switch format {
	case FormatTable:
		return renderTable(w, res)
	case FormatMarkdown:
		return renderMarkdown(w, res)
	case FormatCSV:
		return renderCSV(w, res)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func renderTable(w io.Writer, res *Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))

	dashes := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		dashes[i] = strings.Repeat("-", len(col))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, row := range res.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func renderMarkdown(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(res.Columns, " | ")); err != nil {
		return err
	}

	dashes := make([]string, len(res.Columns))
	for i := range res.Columns {
		dashes[i] = "---"
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(dashes, " | ")); err != nil {
		return err
	}

	for _, row := range res.Rows {
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func renderCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Columns); err != nil {
		return err
	}
	for _, row := range res.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
