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

// Integration tests for the operational store.
// Run with: go test -tags=integration ./internal/store/...
// Requires PostgreSQL to be available.
// Set FLEXIMART_TEST_CONN environment variable to override connection string.

package store_test

import (
	"context"
	"testing"

	"github.com/fleximart/fleximart-datakit/internal/store"
	"github.com/fleximart/fleximart-datakit/internal/testutil"
)

func TestStoreIntegration(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "store")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()

	t.Run("CreateSchema", func(t *testing.T) {
		if err := store.CreateSchema(ctx, pool); err != nil {
			t.Fatalf("CreateSchema failed: %v", err)
		}
	})

	t.Run("CreateSchemaIdempotent", func(t *testing.T) {
		if err := store.CreateSchema(ctx, pool); err != nil {
			t.Fatalf("second CreateSchema failed: %v", err)
		}
	})

	t.Run("ValidateConsistentData", func(t *testing.T) {
		_, err := pool.Exec(ctx, `
            INSERT INTO customers (first_name, last_name, email, phone, city, registration_date)
            VALUES ('Asha', 'Rao', 'asha.rao@example.com', '+91-9876543210', 'Mumbai', '2023-01-15')`)
		if err != nil {
			t.Fatalf("insert customer failed: %v", err)
		}
		_, err = pool.Exec(ctx, `
            INSERT INTO products (product_name, category, price, stock_quantity)
            VALUES ('Yoga Mat', 'Sportswear', 1200.00, 100)`)
		if err != nil {
			t.Fatalf("insert product failed: %v", err)
		}
		_, err = pool.Exec(ctx, `
            INSERT INTO orders (customer_id, order_date, total_amount, status)
            SELECT customer_id, '2024-01-05', 2400.00, 'Delivered'
            FROM customers WHERE email = 'asha.rao@example.com'`)
		if err != nil {
			t.Fatalf("insert order failed: %v", err)
		}
		_, err = pool.Exec(ctx, `
            INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
            SELECT o.order_id, p.product_id, 2, 1200.00, 2400.00
            FROM orders o, products p
            WHERE p.product_name = 'Yoga Mat'`)
		if err != nil {
			t.Fatalf("insert order item failed: %v", err)
		}

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

	t.Run("ValidateFlagsBadTotal", func(t *testing.T) {
		// an order whose total does not match its line items
		_, err := pool.Exec(ctx, `
            INSERT INTO orders (customer_id, order_date, total_amount, status)
            SELECT customer_id, '2024-01-06', 9999.00, 'Pending'
            FROM customers WHERE email = 'asha.rao@example.com'`)
		if err != nil {
			t.Fatalf("insert order failed: %v", err)
		}

		results, err := store.Validate(ctx, pool)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if !store.Failed(results) {
			t.Error("Validate passed, want the order total check to fail")
		}

		var flagged bool
		for _, r := range results {
			if r.Name == "orders total matches line items" && !r.Passed && r.Violations == 1 {
				flagged = true
			}
		}
		if !flagged {
			t.Error("order total check did not flag the inconsistent order")
		}
	})
}
