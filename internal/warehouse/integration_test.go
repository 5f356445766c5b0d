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

// Integration tests for the warehouse.
// Run with: go test -tags=integration ./internal/warehouse/...
// Requires PostgreSQL to be available.
// Set FLEXIMART_TEST_CONN environment variable to override connection string.

package warehouse_test

import (
	"context"
	"testing"

	"github.com/fleximart/fleximart-datakit/internal/datagen"
	"github.com/fleximart/fleximart-datakit/internal/testutil"
	"github.com/fleximart/fleximart-datakit/internal/warehouse"
)

func TestWarehouseIntegration(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "warehouse")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()

	t.Run("CreateSchema", func(t *testing.T) {
		if err := warehouse.CreateSchema(ctx, pool); err != nil {
			t.Fatalf("CreateSchema failed: %v", err)
		}
	})

	t.Run("CreateSchemaIdempotent", func(t *testing.T) {
		if err := warehouse.CreateSchema(ctx, pool); err != nil {
			t.Fatalf("second CreateSchema failed: %v", err)
		}
	})

	t.Run("Seed", func(t *testing.T) {
		if err := warehouse.Seed(ctx, pool, datagen.DefaultBatchConfig()); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
	})

	t.Run("SeedTwiceRefused", func(t *testing.T) {
		if err := warehouse.Seed(ctx, pool, datagen.DefaultBatchConfig()); err == nil {
			t.Fatal("second Seed succeeded, want refusal")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		results, err := warehouse.Validate(ctx, pool)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if warehouse.Failed(results) {
			for _, r := range results {
				if !r.Passed {
					t.Errorf("check %q failed: %d violations (%s)", r.Name, r.Violations, r.Detail)
				}
			}
		}
	})

	t.Run("MonthlyRevenue", func(t *testing.T) {
		const sql = `
            SELECT d.month, SUM(f.total_amount)::float8
            FROM fact_sales f
            JOIN dim_date d ON d.date_key = f.date_key
            GROUP BY d.month ORDER BY d.month`

		rows, err := pool.Query(ctx, sql)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		defer rows.Close()

		want := map[int]float64{1: 452300.00, 2: 378600.00}
		for rows.Next() {
			var month int
			var revenue float64
			if err := rows.Scan(&month, &revenue); err != nil {
				t.Fatalf("scan failed: %v", err)
			}
			if revenue != want[month] {
				t.Errorf("month %d revenue = %.2f, want %.2f", month, revenue, want[month])
			}
			delete(want, month)
		}
		if len(want) != 0 {
			t.Errorf("months missing from result: %v", want)
		}
	})

	t.Run("ArithmeticDiscrepancies", func(t *testing.T) {
		const sql = `
            SELECT COUNT(*) FROM fact_sales
            WHERE total_amount <> quantity_sold * unit_price - discount_amount`

		var count int
		if err := pool.QueryRow(ctx, sql).Scan(&count); err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if count != len(warehouse.KnownDiscrepancies()) {
			t.Errorf("inconsistent rows = %d, want %d", count, len(warehouse.KnownDiscrepancies()))
		}
	})
}
