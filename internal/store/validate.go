//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"fmt"

	"github.com/fleximart/fleximart-datakit/internal/db"
)

// CheckResult holds the outcome of a single validation check.
type CheckResult struct {
	Name       string
	Passed     bool
	Violations int
	Detail     string
}

// checkQuery pairs a check name with a query returning the violation count.
type checkQuery struct {
	name   string
	detail string
	sql    string
}

// The store documents two arithmetic invariants that no constraint or
// trigger enforces: line subtotals match quantity times unit price, and
// order totals match the sum of their line subtotals. The loader
// establishes both by construction; Validate re-checks them.
var storeChecks = []checkQuery{
	{
		name:   "order_items subtotal arithmetic",
		detail: "subtotal = quantity * unit_price on every line item",
		sql: `
            SELECT COUNT(*) FROM order_items
            WHERE subtotal <> ROUND(quantity * unit_price, 2)`,
	},
	{
		name:   "orders total matches line items",
		detail: "total_amount = SUM(subtotal) over the order's items",
		sql: `
            SELECT COUNT(*) FROM orders o
            LEFT JOIN (
                SELECT order_id, SUM(subtotal) AS items_total
                FROM order_items
                GROUP BY order_id
            ) s ON s.order_id = o.order_id
            WHERE o.total_amount <> COALESCE(s.items_total, 0)`,
	},
	{
		name:   "customer emails unique",
		detail: "no duplicate emails survived loading",
		sql: `
            SELECT COUNT(*) FROM (
                SELECT email FROM customers
                GROUP BY email HAVING COUNT(*) > 1
            ) d`,
	},
	{
		name:   "order items reference existing orders",
		detail: "every line item joins back to an order and a product",
		sql: `
            SELECT COUNT(*) FROM order_items oi
            LEFT JOIN orders o ON o.order_id = oi.order_id
            LEFT JOIN products p ON p.product_id = oi.product_id
            WHERE o.order_id IS NULL OR p.product_id IS NULL`,
	},
}

// Validate runs the store invariant checks and returns one result per
// check. A query error aborts the run.
func Validate(ctx context.Context, q db.Querier) ([]CheckResult, error) {
	results := make([]CheckResult, 0, len(storeChecks))

	for _, check := range storeChecks {
		var violations int
		if err := q.QueryRow(ctx, check.sql).Scan(&violations); err != nil {
			return nil, fmt.Errorf("check %q failed to run: %w", check.name, err)
		}

		results = append(results, CheckResult{
			Name:       check.name,
			Passed:     violations == 0,
			Violations: violations,
			Detail:     check.detail,
		})
	}

	return results, nil
}

// Failed reports whether any check in the set did not pass.
func Failed(results []CheckResult) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
