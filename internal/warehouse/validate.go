//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleximart/fleximart-datakit/internal/db"
)

// CheckResult holds the outcome of a single validation check.
type CheckResult struct {
	Name       string
	Passed     bool
	Violations int
	Detail     string
}

// Validate checks the seeded warehouse: the metadata stamp, per-table
// row counts, fact-to-dimension key resolution, and sale arithmetic.
// Arithmetic violations matching KnownDiscrepancies are reported as
// unreconciled source data without failing the check; any other
// violation fails it.
func Validate(ctx context.Context, pool *pgxpool.Pool) ([]CheckResult, error) {
	version, err := db.GetMetadataValue(ctx, pool, "warehouse_fixture_version")
	if err != nil {
		return nil, fmt.Errorf("warehouse has no seed metadata; run seeding first: %w", err)
	}

	results := []CheckResult{{
		Name:       "fixture version",
		Passed:     version == FixtureVersion,
		Detail:     fmt.Sprintf("seeded %s, this build carries %s", version, FixtureVersion),
		Violations: boolToViolations(version != FixtureVersion),
	}}

	counts, err := checkRowCounts(ctx, pool)
	if err != nil {
		return nil, err
	}
	results = append(results, counts)

	keys, err := checkKeyResolution(ctx, pool)
	if err != nil {
		return nil, err
	}
	results = append(results, keys)

	arithmetic, err := checkSaleArithmetic(ctx, pool)
	if err != nil {
		return nil, err
	}
	results = append(results, arithmetic)

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

func boolToViolations(failed bool) int {
	if failed {
		return 1
	}
	return 0
}

func checkRowCounts(ctx context.Context, pool *pgxpool.Pool) (CheckResult, error) {
	expected := map[string]int{
		"dim_date":     len(Dates()),
		"dim_product":  len(Products()),
		"dim_customer": len(Customers()),
		"fact_sales":   len(Sales()),
	}

	violations := 0
	detail := ""
	for _, table := range Tables() {
		var count int
		sql := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := pool.QueryRow(ctx, sql).Scan(&count); err != nil {
			return CheckResult{}, fmt.Errorf("check %q failed to run: %w", "table row counts", err)
		}
		if count != expected[table] {
			violations++
			detail += fmt.Sprintf("%s has %d rows, want %d; ", table, count, expected[table])
		}
	}
	if detail == "" {
		detail = fmt.Sprintf("%d/%d/%d/%d rows across dims and facts",
			expected["dim_date"], expected["dim_product"], expected["dim_customer"], expected["fact_sales"])
	}

	return CheckResult{
		Name:       "table row counts",
		Passed:     violations == 0,
		Violations: violations,
		Detail:     detail,
	}, nil
}

func checkKeyResolution(ctx context.Context, pool *pgxpool.Pool) (CheckResult, error) {
	const sql = `
        SELECT COUNT(*) FROM fact_sales f
        LEFT JOIN dim_date d ON d.date_key = f.date_key
        LEFT JOIN dim_product p ON p.product_key = f.product_key
        LEFT JOIN dim_customer c ON c.customer_key = f.customer_key
        WHERE d.date_key IS NULL OR p.product_key IS NULL OR c.customer_key IS NULL`

	var violations int
	if err := pool.QueryRow(ctx, sql).Scan(&violations); err != nil {
		return CheckResult{}, fmt.Errorf("check %q failed to run: %w", "fact keys resolve", err)
	}

	return CheckResult{
		Name:       "fact keys resolve",
		Passed:     violations == 0,
		Violations: violations,
		Detail:     "every fact row joins to all three dimensions",
	}, nil
}

func checkSaleArithmetic(ctx context.Context, pool *pgxpool.Pool) (CheckResult, error) {
	const sql = `
        SELECT date_key, product_key, customer_key, quantity_sold,
               unit_price::float8, discount_amount::float8, total_amount::float8
        FROM fact_sales
        WHERE total_amount <> quantity_sold * unit_price - discount_amount`

	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return CheckResult{}, fmt.Errorf("check %q failed to run: %w", "sale arithmetic", err)
	}
	defer rows.Close()

	known := make(map[Sale]bool, 3)
	for _, s := range KnownDiscrepancies() {
		known[s] = true
	}

	knownHits, unexpected := 0, 0
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.DateKey, &s.ProductKey, &s.CustomerKey, &s.Quantity,
			&s.UnitPrice, &s.Discount, &s.Total); err != nil {
			return CheckResult{}, fmt.Errorf("check %q failed to run: %w", "sale arithmetic", err)
		}
		if known[s] {
			knownHits++
		} else {
			unexpected++
		}
	}
	if err := rows.Err(); err != nil {
		return CheckResult{}, fmt.Errorf("check %q failed to run: %w", "sale arithmetic", err)
	}

	detail := fmt.Sprintf("total_amount = quantity_sold * unit_price - discount_amount; %d known source discrepancies", knownHits)
	if unexpected > 0 {
		detail = fmt.Sprintf("%d rows violate total_amount = quantity_sold * unit_price - discount_amount beyond the %d known source discrepancies", unexpected, knownHits)
	}

	return CheckResult{
		Name:       "sale arithmetic",
		Passed:     unexpected == 0,
		Violations: unexpected,
		Detail:     detail,
	}, nil
}
