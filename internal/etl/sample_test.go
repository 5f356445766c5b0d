//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package etl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func sampleTestConfig(dir string) SampleConfig {
	return SampleConfig{
		Dir:       dir,
		Customers: 30,
		Products:  20,
		Sales:     60,
		Seed:      42,
	}
}

func TestWriteSampleDataCounts(t *testing.T) {
	cfg := sampleTestConfig(t.TempDir())
	if err := WriteSampleData(cfg); err != nil {
		t.Fatalf("WriteSampleData failed: %v", err)
	}

	customers, err := ReadCustomersCSV(filepath.Join(cfg.Dir, "customers_raw.csv"))
	if err != nil {
		t.Fatalf("ReadCustomersCSV failed: %v", err)
	}
	if len(customers) != cfg.Customers {
		t.Errorf("len(customers) = %d, want %d", len(customers), cfg.Customers)
	}

	products, err := ReadProductsCSV(filepath.Join(cfg.Dir, "products_raw.csv"))
	if err != nil {
		t.Fatalf("ReadProductsCSV failed: %v", err)
	}
	if len(products) != cfg.Products {
		t.Errorf("len(products) = %d, want %d", len(products), cfg.Products)
	}

	sales, err := ReadSalesCSV(filepath.Join(cfg.Dir, "sales_raw.csv"))
	if err != nil {
		t.Fatalf("ReadSalesCSV failed: %v", err)
	}
	if len(sales) != cfg.Sales {
		t.Errorf("len(sales) = %d, want %d", len(sales), cfg.Sales)
	}
}

func TestWriteSampleDataDeterministic(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()

	cfgA := sampleTestConfig(dirA)
	cfgB := sampleTestConfig(dirB)
	if err := WriteSampleData(cfgA); err != nil {
		t.Fatalf("WriteSampleData failed: %v", err)
	}
	if err := WriteSampleData(cfgB); err != nil {
		t.Fatalf("WriteSampleData failed: %v", err)
	}

	for _, name := range []string{"customers_raw.csv", "products_raw.csv", "sales_raw.csv"} {
		a, err := os.ReadFile(filepath.Join(dirA, name))
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, name))
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between runs with the same seed", name)
		}
	}
}

// TestWriteSampleDataCleanable feeds a generated set through the
// cleaning rules and checks the guaranteed issues are present.
func TestWriteSampleDataCleanable(t *testing.T) {
	cfg := sampleTestConfig(t.TempDir())
	if err := WriteSampleData(cfg); err != nil {
		t.Fatalf("WriteSampleData failed: %v", err)
	}

	rawCustomers, err := ReadCustomersCSV(filepath.Join(cfg.Dir, "customers_raw.csv"))
	if err != nil {
		t.Fatalf("ReadCustomersCSV failed: %v", err)
	}
	rawProducts, err := ReadProductsCSV(filepath.Join(cfg.Dir, "products_raw.csv"))
	if err != nil {
		t.Fatalf("ReadProductsCSV failed: %v", err)
	}
	rawSales, err := ReadSalesCSV(filepath.Join(cfg.Dir, "sales_raw.csv"))
	if err != nil {
		t.Fatalf("ReadSalesCSV failed: %v", err)
	}

	customers, custStats := TransformCustomers(rawCustomers)
	if custStats.DuplicatesRemoved < 1 {
		t.Errorf("customers DuplicatesRemoved = %d, want at least 1", custStats.DuplicatesRemoved)
	}
	if custStats.MissingHandled < 2 {
		t.Errorf("customers MissingHandled = %d, want at least 2", custStats.MissingHandled)
	}
	if len(customers) == 0 {
		t.Fatal("no customers survived cleaning")
	}
	for _, c := range customers {
		if c.Email == "" {
			t.Errorf("cleaned customer %s has empty email", c.Code)
		}
	}

	products, prodStats := TransformProducts(rawProducts)
	if prodStats.DuplicatesRemoved < 1 {
		t.Errorf("products DuplicatesRemoved = %d, want at least 1", prodStats.DuplicatesRemoved)
	}
	if prodStats.MissingHandled < 2 {
		t.Errorf("products MissingHandled = %d, want at least 2", prodStats.MissingHandled)
	}
	for _, p := range products {
		if p.Price <= 0 {
			t.Errorf("cleaned product %s has price %v", p.Name, p.Price)
		}
	}

	orders, saleStats := TransformSales(rawSales, customers, products)
	if saleStats.DuplicatesRemoved < 1 {
		t.Errorf("sales DuplicatesRemoved = %d, want at least 1", saleStats.DuplicatesRemoved)
	}
	if saleStats.MissingHandled < 2 {
		t.Errorf("sales MissingHandled = %d, want at least 2", saleStats.MissingHandled)
	}
	if len(orders) == 0 {
		t.Fatal("no orders survived cleaning")
	}
	for _, o := range orders {
		if o.CustomerEmail == "" {
			t.Errorf("order %s has no customer email", o.Key)
		}
		if o.TotalAmount <= 0 {
			t.Errorf("order %s total = %v, want positive", o.Key, o.TotalAmount)
		}
		if o.Status == "" {
			t.Errorf("order %s has empty status", o.Key)
		}
	}
}

func TestWriteSampleDataRejectsBadCounts(t *testing.T) {
	cfg := sampleTestConfig(t.TempDir())
	cfg.Sales = 0
	if err := WriteSampleData(cfg); err == nil {
		t.Fatal("WriteSampleData succeeded, want count error")
	}
}
