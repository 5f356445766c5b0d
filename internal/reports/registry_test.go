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
	"sort"
	"strings"
	"testing"
)

func TestRegisteredReports(t *testing.T) {
	want := []string{
		"category-performance",
		"category-revenue",
		"customer-segments",
		"monthly-sales",
		"repeat-customers",
		"running-revenue",
		"top-products",
	}

	got := List()
	if !sort.StringsAreSorted(got) {
		t.Error("List() is not sorted")
	}
	for _, name := range want {
		found := false
		for _, g := range got {
			if g == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("report %s not registered", name)
		}
	}
}

func TestGetUnknownReport(t *testing.T) {
	_, err := Get("nope")
	if err == nil {
		t.Fatal("Get succeeded, want unknown report error")
	}
	if !strings.Contains(err.Error(), "unknown report") {
		t.Errorf("error = %v, want unknown report", err)
	}
}

func TestDefinitionsHaveSourcesAndColumns(t *testing.T) {
	for _, def := range All() {
		if def.Source != SourceStore && def.Source != SourceWarehouse {
			t.Errorf("report %s has source %q", def.Name, def.Source)
		}
		if len(def.Columns) == 0 {
			t.Errorf("report %s has no columns", def.Name)
		}
		if !strings.Contains(strings.ToUpper(def.SQL), "SELECT") {
			t.Errorf("report %s has no query", def.Name)
		}
	}
}

func TestBindArgsDefaults(t *testing.T) {
	def, err := Get("top-products")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	bound, err := BindArgs(def, nil)
	if err != nil {
		t.Fatalf("BindArgs failed: %v", err)
	}
	if len(bound) != 1 {
		t.Fatalf("len(bound) = %d, want 1", len(bound))
	}
	if bound[0] != 10 {
		t.Errorf("bound[0] = %v, want default 10", bound[0])
	}
}

func TestBindArgsOverride(t *testing.T) {
	def, err := Get("repeat-customers")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	bound, err := BindArgs(def, map[string]string{"min-orders": "3", "min-spend": "2500.50"})
	if err != nil {
		t.Fatalf("BindArgs failed: %v", err)
	}
	if bound[0] != 3 {
		t.Errorf("bound[0] = %v, want 3", bound[0])
	}
	if bound[1] != 2500.50 {
		t.Errorf("bound[1] = %v, want 2500.50", bound[1])
	}
}

func TestBindArgsRejectsUnknown(t *testing.T) {
	def, err := Get("monthly-sales")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	_, err = BindArgs(def, map[string]string{"limit": "5"})
	if err == nil {
		t.Fatal("BindArgs succeeded, want unknown parameter error")
	}
}

func TestBindArgsRejectsBadValue(t *testing.T) {
	def, err := Get("top-products")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	_, err = BindArgs(def, map[string]string{"limit": "ten"})
	if err == nil {
		t.Fatal("BindArgs succeeded, want parse error")
	}
}
