//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package etl implements the FlexiMart extract-transform-load pipeline:
// raw CSV exports are read, cleaned (duplicates, missing values, phone
// and date normalization), loaded into the operational store, and
// summarized in a data quality report.
package etl

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleximart/fleximart-datakit/internal/config"
	"github.com/fleximart/fleximart-datakit/internal/db"
	"github.com/fleximart/fleximart-datakit/internal/logging"
)

// Result aggregates everything a pipeline run did.
type Result struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Customers  Stats
	Products   Stats
	Sales      Stats
	Load       LoadStats
}

// Run executes the full pipeline against the configured raw files and
// records the run in the metadata table.
func Run(ctx context.Context, pool *pgxpool.Pool, cfg config.ETLConfig) (*Result, error) {
	res := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	logging.Info().
		Str("run_id", res.RunID).
		Str("customers", cfg.CustomersFile).
		Str("products", cfg.ProductsFile).
		Str("sales", cfg.SalesFile).
		Msg("Starting ETL run")

	rawCustomers, err := ReadCustomersCSV(cfg.CustomersFile)
	if err != nil {
		return nil, err
	}
	rawProducts, err := ReadProductsCSV(cfg.ProductsFile)
	if err != nil {
		return nil, err
	}
	rawSales, err := ReadSalesCSV(cfg.SalesFile)
	if err != nil {
		return nil, err
	}

	var customers []CleanCustomer
	var products []CleanProduct
	customers, res.Customers = TransformCustomers(rawCustomers)
	products, res.Products = TransformProducts(rawProducts)

	var orders []Order
	orders, res.Sales = TransformSales(rawSales, customers, products)

	logging.Info().
		Int("customers", len(customers)).
		Int("products", len(products)).
		Int("orders", len(orders)).
		Int("order_items", OrderItemCount(orders)).
		Msg("Transform complete")

	res.Load, err = Load(ctx, pool, customers, products, orders)
	if err != nil {
		return nil, err
	}

	res.FinishedAt = time.Now()

	err = db.SaveMetadata(ctx, pool, map[string]string{
		"etl_last_run_id": res.RunID,
		"etl_last_run_at": res.FinishedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	if cfg.QualityReport != "" {
		if err := WriteQualityReport(cfg.QualityReport, res); err != nil {
			return nil, err
		}
	}

	logging.Info().
		Str("run_id", res.RunID).
		Dur("elapsed", res.FinishedAt.Sub(res.StartedAt)).
		Msg("ETL run complete")

	return res, nil
}
