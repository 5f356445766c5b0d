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
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fleximart/fleximart-datakit/internal/logging"
)

// WriteQualityReport renders the run's cleaning and loading counts to
// a plain-text report file.
func WriteQualityReport(path string, res *Result) error {
	var b strings.Builder

	fmt.Fprintln(&b, "FlexiMart Data Quality Report")
	fmt.Fprintln(&b, "-----------------------------")
	fmt.Fprintf(&b, "Run ID: %s\n", res.RunID)
	fmt.Fprintf(&b, "Started: %s\n", res.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Finished: %s\n", res.FinishedAt.UTC().Format(time.RFC3339))
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Customers processed: %d\n", res.Customers.Processed)
	fmt.Fprintf(&b, "Customers duplicates removed: %d\n", res.Customers.DuplicatesRemoved)
	fmt.Fprintf(&b, "Customers missing values handled: %d\n", res.Customers.MissingHandled)
	fmt.Fprintf(&b, "Customers loaded: %d\n", res.Load.CustomersLoaded)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Products processed: %d\n", res.Products.Processed)
	fmt.Fprintf(&b, "Products duplicates removed: %d\n", res.Products.DuplicatesRemoved)
	fmt.Fprintf(&b, "Products missing values handled: %d\n", res.Products.MissingHandled)
	fmt.Fprintf(&b, "Products loaded: %d\n", res.Load.ProductsLoaded)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Sales processed: %d\n", res.Sales.Processed)
	fmt.Fprintf(&b, "Sales duplicates removed: %d\n", res.Sales.DuplicatesRemoved)
	fmt.Fprintf(&b, "Sales missing values handled: %d\n", res.Sales.MissingHandled+res.Load.MissingHandled)
	fmt.Fprintf(&b, "Orders loaded: %d\n", res.Load.OrdersLoaded)
	fmt.Fprintf(&b, "Order items loaded: %d\n", res.Load.OrderItemsLoaded)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write quality report: %w", err)
	}

	logging.Info().Str("file", path).Msg("Wrote data quality report")
	return nil
}
