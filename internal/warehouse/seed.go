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
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleximart/fleximart-datakit/internal/datagen"
	"github.com/fleximart/fleximart-datakit/internal/db"
	"github.com/fleximart/fleximart-datakit/internal/logging"
)

// Seed loads the curated dataset into an empty warehouse: dimensions
// first, then facts, then a metadata stamp recording what was seeded.
// Seeding a non-empty warehouse is refused; drop the schema first.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg datagen.BatchInsertConfig) error {
	start := time.Now()

	var existing int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM dim_date").Scan(&existing); err != nil {
		return fmt.Errorf("failed to check warehouse state: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("warehouse already seeded (%d dim_date rows); drop the schema first", existing)
	}

	if err := seedDates(ctx, pool); err != nil {
		return fmt.Errorf("failed to seed dim_date: %w", err)
	}
	if err := seedProducts(ctx, pool); err != nil {
		return fmt.Errorf("failed to seed dim_product: %w", err)
	}
	if err := seedCustomers(ctx, pool); err != nil {
		return fmt.Errorf("failed to seed dim_customer: %w", err)
	}
	if err := seedFacts(ctx, pool, cfg); err != nil {
		return fmt.Errorf("failed to seed fact_sales: %w", err)
	}

	err := db.SaveMetadata(ctx, pool, map[string]string{
		"warehouse_seeded_at":       time.Now().UTC().Format(time.RFC3339),
		"warehouse_fixture_version": FixtureVersion,
		"warehouse_date_rows":       strconv.Itoa(len(Dates())),
		"warehouse_product_rows":    strconv.Itoa(len(Products())),
		"warehouse_customer_rows":   strconv.Itoa(len(Customers())),
		"warehouse_fact_rows":       strconv.Itoa(len(Sales())),
	})
	if err != nil {
		return fmt.Errorf("failed to save warehouse metadata: %w", err)
	}

	logging.Info().
		Int("dates", len(Dates())).
		Int("products", len(Products())).
		Int("customers", len(Customers())).
		Int("facts", len(Sales())).
		Dur("elapsed", time.Since(start)).
		Msg("Warehouse seeded")

	return nil
}

func seedDates(ctx context.Context, pool *pgxpool.Pool) error {
	dates := Dates()
	values := make([]string, 0, len(dates))
	for _, d := range dates {
		values = append(values, fmt.Sprintf("(%d, '%s', %d, %d, %d, '%s', %d, '%s', %d, %t)",
			d.Key, d.Date.Format("2006-01-02"), d.Year, d.Quarter, d.Month,
			d.MonthName, d.DayOfMonth, d.DayName, d.WeekOfYear, d.IsWeekend))
	}
	return executeBatchInsert(ctx, pool, "dim_date",
		"(date_key, full_date, year, quarter, month, month_name, day_of_month, day_name, week_of_year, is_weekend)",
		values)
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool) error {
	products := Products()
	values := make([]string, 0, len(products))
	for _, p := range products {
		values = append(values, fmt.Sprintf("(%d, '%s', '%s', '%s', '%s', %.2f)",
			p.Key, p.Code, escapeSingleQuote(p.Name), p.Category,
			escapeSingleQuote(p.Brand), p.Price))
	}
	return executeBatchInsert(ctx, pool, "dim_product",
		"(product_key, product_code, product_name, category, brand, unit_price)",
		values)
}

func seedCustomers(ctx context.Context, pool *pgxpool.Pool) error {
	customers := Customers()
	values := make([]string, 0, len(customers))
	for _, c := range customers {
		values = append(values, fmt.Sprintf("(%d, '%s', '%s', '%s', '%s', '%s')",
			c.Key, c.Code, escapeSingleQuote(c.Name), escapeSingleQuote(c.City),
			escapeSingleQuote(c.State), c.Email))
	}
	return executeBatchInsert(ctx, pool, "dim_customer",
		"(customer_key, customer_code, customer_name, city, state, email)",
		values)
}

func seedFacts(ctx context.Context, pool *pgxpool.Pool, cfg datagen.BatchInsertConfig) error {
	sales := Sales()
	progress := datagen.NewProgressReporter("fact_sales", int64(len(sales)), cfg.ProgressInterval)

	batch := make([]string, 0, cfg.BatchSize)
	for _, s := range sales {
		batch = append(batch, fmt.Sprintf("(%d, %d, %d, %d, %.2f, %.2f, %.2f)",
			s.DateKey, s.ProductKey, s.CustomerKey, s.Quantity,
			s.UnitPrice, s.Discount, s.Total))

		if len(batch) >= cfg.BatchSize {
			if err := executeBatchInsert(ctx, pool, "fact_sales",
				"(date_key, product_key, customer_key, quantity_sold, unit_price, discount_amount, total_amount)",
				batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := executeBatchInsert(ctx, pool, "fact_sales",
			"(date_key, product_key, customer_key, quantity_sold, unit_price, discount_amount, total_amount)",
			batch); err != nil {
			return err
		}
		progress.Update(int64(len(batch)))
	}
	progress.Done()
	return nil
}

func executeBatchInsert(ctx context.Context, pool *pgxpool.Pool, table, columns string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	sql := fmt.Sprintf("INSERT INTO %s %s VALUES %s", table, columns, strings.Join(values, ", "))
	_, err := pool.Exec(ctx, sql)
	return err
}

func escapeSingleQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
