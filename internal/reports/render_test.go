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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func renderFixture() *Result {
	return &Result{
		Name:    "top-products",
		Columns: []string{"product_name", "category", "units_sold", "revenue"},
		Rows: [][]string{
			{"Laptop", "Electronics", "12", "600000.00"},
			{"Office Chair", "Furniture", "7", "52200.00"},
		},
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, renderFixture(), FormatTable); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("table has %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "product_name") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "Laptop") || !strings.Contains(lines[2], "600000.00") {
		t.Errorf("first data row = %q", lines[2])
	}
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, renderFixture(), FormatMarkdown); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "| product_name | category | units_sold | revenue |\n" +
		"| --- | --- | --- | --- |\n" +
		"| Laptop | Electronics | 12 | 600000.00 |\n" +
		"| Office Chair | Furniture | 7 | 52200.00 |\n"
	if buf.String() != want {
		t.Errorf("markdown output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, renderFixture(), FormatCSV); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "product_name,category,units_sold,revenue\n" +
		"Laptop,Electronics,12,600000.00\n" +
		"Office Chair,Furniture,7,52200.00\n"
	if buf.String() != want {
		t.Errorf("csv output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, renderFixture(), "yaml"); err == nil {
		t.Fatal("Render succeeded, want unknown format error")
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteXLSX(path, renderFixture()); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("spreadsheet is empty")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, ""},
		{"Laptop", "Laptop"},
		{float64(600000), "600000.00"},
		{float64(452300.5), "452300.50"},
		{int64(19), "19"},
		{int32(87), "87"},
		{42, "42"},
	}

	for _, tt := range tests {
		if got := formatValue(tt.value); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
