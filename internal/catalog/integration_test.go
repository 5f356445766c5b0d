//go:build integration
// +build integration

//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Integration tests for the MongoDB product catalog.
//
// These tests require a running MongoDB instance:
//
//	docker run -d -p 27017:27017 mongo:7
//
// Run with: go test -tags=integration ./internal/catalog/
//
// Set FLEXIMART_TEST_MONGO to override the default URI
// (mongodb://localhost:27017). Each run uses a uniquely named scratch
// database that is dropped afterwards unless the test fails.
package catalog_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/fleximart/fleximart-datakit/internal/catalog"
	"github.com/fleximart/fleximart-datakit/internal/testutil"
)

func TestCatalogIntegration(t *testing.T) {
	uri := testutil.SkipIfNoMongo(t)
	dbName := testutil.TestMongoDatabase(t, "catalog")
	defer testutil.DropMongoDatabase(t, uri, dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cat, err := catalog.Connect(ctx, uri, dbName, "products")
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cat.Close(ctx)

	t.Run("Import", func(t *testing.T) {
		n, err := cat.ImportFile(ctx, "testdata/products_catalog.json", true)
		if err != nil {
			t.Fatalf("Failed to import catalog: %v", err)
		}
		if n != 15 {
			t.Errorf("Expected 15 products imported, got %d", n)
		}

		// A second import with drop replaces, not appends.
		n, err = cat.ImportFile(ctx, "testdata/products_catalog.json", true)
		if err != nil {
			t.Fatalf("Failed to re-import catalog: %v", err)
		}
		if n != 15 {
			t.Errorf("Expected 15 products after re-import, got %d", n)
		}
	})

	t.Run("ElectronicsUnder", func(t *testing.T) {
		rows, err := cat.ElectronicsUnder(ctx, 50000)
		if err != nil {
			t.Fatalf("ElectronicsUnder failed: %v", err)
		}

		want := []catalog.ProductSummary{
			{Name: "Smartphone", Price: 30000, Stock: 40},
			{Name: "Tablet", Price: 18000, Stock: 30},
			{Name: "Bluetooth Speaker", Price: 4000, Stock: 60},
		}
		if len(rows) != len(want) {
			t.Fatalf("Expected %d electronics under 50000, got %d: %v", len(want), len(rows), rows)
		}
		for i, w := range want {
			if rows[i] != w {
				t.Errorf("Row %d: expected %+v, got %+v", i, w, rows[i])
			}
		}

		// The Laptop sits exactly at the cutoff and must be excluded.
		rows, err = cat.ElectronicsUnder(ctx, 50001)
		if err != nil {
			t.Fatalf("ElectronicsUnder failed: %v", err)
		}
		if len(rows) != 4 || rows[0].Name != "Laptop" {
			t.Errorf("Expected Laptop to lead under 50001, got %v", rows)
		}
	})

	t.Run("TopRated", func(t *testing.T) {
		rows, err := cat.TopRated(ctx, 4.0)
		if err != nil {
			t.Fatalf("TopRated failed: %v", err)
		}

		want := []struct {
			id  string
			avg float64
		}{
			{"FURN001", 5.0},
			{"ACCS003", 14.0 / 3.0},
			{"ELEC002", 14.0 / 3.0},
			{"SPRT001", 14.0 / 3.0},
			{"ELEC001", 4.5},
			{"APPL001", 4.0},
			{"APPL003", 4.0},
			{"ELEC004", 4.0},
		}
		if len(rows) != len(want) {
			t.Fatalf("Expected %d top rated products, got %d: %v", len(want), len(rows), rows)
		}
		for i, w := range want {
			if rows[i].ProductID != w.id {
				t.Errorf("Position %d: expected %s, got %s", i, w.id, rows[i].ProductID)
			}
			if math.Abs(rows[i].AvgRating-w.avg) > 0.0001 {
				t.Errorf("%s: expected avg %.4f, got %.4f", w.id, w.avg, rows[i].AvgRating)
			}
			if rows[i].Name == "" {
				t.Errorf("%s: empty product name", w.id)
			}
		}

		// Unreviewed products never qualify, however low the bar.
		rows, err = cat.TopRated(ctx, 0)
		if err != nil {
			t.Fatalf("TopRated failed: %v", err)
		}
		if len(rows) != 13 {
			t.Errorf("Expected 13 reviewed products, got %d", len(rows))
		}
	})

	t.Run("AddReview", func(t *testing.T) {
		matched, modified, err := cat.AddReview(ctx, "ELEC001", catalog.Review{
			User:    "U999",
			Rating:  5,
			Comment: "Great product!",
		})
		if err != nil {
			t.Fatalf("AddReview failed: %v", err)
		}
		if matched != 1 || modified != 1 {
			t.Errorf("Expected matched=1 modified=1, got matched=%d modified=%d", matched, modified)
		}

		// The Laptop average moves from 4.5 to 14/3 and clears a 4.6 bar.
		rows, err := cat.TopRated(ctx, 4.6)
		if err != nil {
			t.Fatalf("TopRated failed: %v", err)
		}
		found := false
		for _, r := range rows {
			if r.ProductID == "ELEC001" {
				found = true
				if math.Abs(r.AvgRating-14.0/3.0) > 0.0001 {
					t.Errorf("Expected ELEC001 avg %.4f after review, got %.4f", 14.0/3.0, r.AvgRating)
				}
			}
		}
		if !found {
			t.Errorf("Expected ELEC001 in top rated after new review, got %v", rows)
		}

		matched, modified, err = cat.AddReview(ctx, "NOPE999", catalog.Review{User: "U999", Rating: 1})
		if err != nil {
			t.Fatalf("AddReview failed: %v", err)
		}
		if matched != 0 || modified != 0 {
			t.Errorf("Expected no match for unknown product, got matched=%d modified=%d", matched, modified)
		}
	})

	t.Run("AvgPriceByCategory", func(t *testing.T) {
		rows, err := cat.AvgPriceByCategory(ctx)
		if err != nil {
			t.Fatalf("AvgPriceByCategory failed: %v", err)
		}

		want := []struct {
			category string
			avg      float64
			count    int
		}{
			{"Electronics", 25500.00, 4},
			{"Furniture", 8833.33, 3},
			{"Appliances", 4666.67, 3},
			{"Accessories", 2933.33, 3},
			{"Sportswear", 2850.00, 2},
		}
		if len(rows) != len(want) {
			t.Fatalf("Expected %d categories, got %d: %v", len(want), len(rows), rows)
		}
		for i, w := range want {
			if rows[i].Category != w.category {
				t.Errorf("Position %d: expected %s, got %s", i, w.category, rows[i].Category)
			}
			if math.Abs(rows[i].AvgPrice-w.avg) > 0.01 {
				t.Errorf("%s: expected avg price %.2f, got %.4f", w.category, w.avg, rows[i].AvgPrice)
			}
			if rows[i].ProductCount != w.count {
				t.Errorf("%s: expected %d products, got %d", w.category, w.count, rows[i].ProductCount)
			}
		}
	})
}
