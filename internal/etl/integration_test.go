//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration test for the full ETL pipeline.
// Run with: go test -tags=integration ./internal/etl/...
// Requires PostgreSQL to be available.
// Set FLEXIMART_TEST_CONN environment variable to override connection string.

package etl_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fleximart/fleximart-datakit/internal/config"
	"github.com/fleximart/fleximart-datakit/internal/db"
	"github.com/fleximart/fleximart-datakit/internal/etl"
	"github.com/fleximart/fleximart-datakit/internal/store"
	"github.com/fleximart/fleximart-datakit/internal/testutil"
)

// TestETLIntegration runs the pipeline over the checked-in raw exports
// against a scratch database and verifies what landed.
func TestETLIntegration(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "etl")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()

	reportPath := filepath.Join(t.TempDir(), "data_quality_report.txt")
	cfg := config.ETLConfig{
		CustomersFile: filepath.Join("testdata", "customers_raw.csv"),
		ProductsFile:  filepath.Join("testdata", "products_raw.csv"),
		SalesFile:     filepath.Join("testdata", "sales_raw.csv"),
		QualityReport: reportPath,
	}

	var res *etl.Result

	t.Run("Run", func(t *testing.T) {
		var err error
		res, err = etl.Run(ctx, pool, cfg)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if res.RunID == "" {
			t.Error("Run returned empty RunID")
		}

		// Load counts for the testdata exports; the transform outcome
		// itself is pinned by TestTransformTestdata.
		if res.Load.CustomersLoaded != 5 {
			t.Errorf("CustomersLoaded = %d, want 5", res.Load.CustomersLoaded)
		}
		if res.Load.ProductsLoaded != 3 {
			t.Errorf("ProductsLoaded = %d, want 3", res.Load.ProductsLoaded)
		}
		if res.Load.OrdersLoaded != 4 {
			t.Errorf("OrdersLoaded = %d, want 4", res.Load.OrdersLoaded)
		}
		if res.Load.OrderItemsLoaded != 6 {
			t.Errorf("OrderItemsLoaded = %d, want 6", res.Load.OrderItemsLoaded)
		}
		if res.Load.MissingHandled != 0 {
			t.Errorf("Load.MissingHandled = %d, want 0", res.Load.MissingHandled)
		}
	})

	t.Run("RowCounts", func(t *testing.T) {
		counts := map[string]int{
			"customers":   5,
			"products":    3,
			"orders":      4,
			"order_items": 6,
		}
		for table, want := range counts {
			var got int
			err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&got)
			if err != nil {
				t.Fatalf("count %s failed: %v", table, err)
			}
			if got != want {
				t.Errorf("%s rows = %d, want %d", table, got, want)
			}
		}
	})

	t.Run("StoreConsistent", func(t *testing.T) {
		results, err := store.Validate(ctx, pool)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if store.Failed(results) {
			for _, r := range results {
				if !r.Passed {
					t.Errorf("check %q failed: %d violations (%s)", r.Name, r.Violations, r.Detail)
				}
			}
		}
	})

	t.Run("QualityReport", func(t *testing.T) {
		data, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read quality report: %v", err)
		}
		report := string(data)

		for _, line := range []string{
			"FlexiMart Data Quality Report",
			"Run ID: " + res.RunID,
			"Customers loaded: 5",
			"Orders loaded: 4",
			"Order items loaded: 6",
		} {
			if !strings.Contains(report, line) {
				t.Errorf("report missing line %q", line)
			}
		}
	})

	t.Run("Metadata", func(t *testing.T) {
		runID, err := db.GetMetadataValue(ctx, pool, "etl_last_run_id")
		if err != nil {
			t.Fatalf("GetMetadataValue failed: %v", err)
		}
		if runID != res.RunID {
			t.Errorf("etl_last_run_id = %q, want %q", runID, res.RunID)
		}
		if _, err := db.GetMetadataValue(ctx, pool, "etl_last_run_at"); err != nil {
			t.Errorf("etl_last_run_at not recorded: %v", err)
		}
	})

	t.Run("RerunRetainsCustomers", func(t *testing.T) {
		res2, err := etl.Run(ctx, pool, config.ETLConfig{
			CustomersFile: cfg.CustomersFile,
			ProductsFile:  cfg.ProductsFile,
			SalesFile:     cfg.SalesFile,
		})
		if err != nil {
			t.Fatalf("second Run failed: %v", err)
		}
		// existing emails hit ON CONFLICT DO NOTHING
		if res2.Load.CustomersLoaded != 0 {
			t.Errorf("second run CustomersLoaded = %d, want 0", res2.Load.CustomersLoaded)
		}

		var got int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&got); err != nil {
			t.Fatalf("count customers failed: %v", err)
		}
		if got != 5 {
			t.Errorf("customers rows after rerun = %d, want 5", got)
		}
	})
}
