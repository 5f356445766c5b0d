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
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleximart/fleximart-datakit/internal/datagen"
	"github.com/fleximart/fleximart-datakit/internal/logging"
	"github.com/fleximart/fleximart-datakit/internal/store"
)

// LoadStats counts rows written to the operational store.
type LoadStats struct {
	CustomersLoaded  int
	ProductsLoaded   int
	OrdersLoaded     int
	OrderItemsLoaded int
	MissingHandled   int // references that did not resolve at load time
}

// nullable maps empty strings to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Load writes cleaned data into the store schema, creating it first if
// needed. Customers insert with ON CONFLICT (email) DO NOTHING, orders
// capture their generated keys via RETURNING, and line items resolve
// product keys back from the database. Each table loads in its own
// transaction, mirroring the per-table commit behavior of the source
// pipeline.
func Load(ctx context.Context, pool *pgxpool.Pool, customers []CleanCustomer, products []CleanProduct, orders []Order) (LoadStats, error) {
	var stats LoadStats

	if err := store.CreateSchema(ctx, pool); err != nil {
		return stats, fmt.Errorf("failed to ensure store schema: %w", err)
	}

	if err := loadCustomers(ctx, pool, customers, &stats); err != nil {
		return stats, err
	}
	if err := loadProducts(ctx, pool, products, &stats); err != nil {
		return stats, err
	}
	if err := loadOrders(ctx, pool, orders, &stats); err != nil {
		return stats, err
	}

	return stats, nil
}

func loadCustomers(ctx context.Context, pool *pgxpool.Pool, customers []CleanCustomer, stats *LoadStats) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin customers transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := datagen.DefaultBatchConfig()
	reporter := datagen.NewProgressReporter("customers", int64(len(customers)), batch.ProgressInterval)

	for _, c := range customers {
		tag, err := tx.Exec(ctx, `
            INSERT INTO customers (first_name, last_name, email, phone, city, registration_date)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (email) DO NOTHING`,
			datagen.Truncate(c.FirstName, 50),
			datagen.Truncate(c.LastName, 50),
			datagen.Truncate(c.Email, 100),
			nullable(datagen.Truncate(c.Phone, 20)),
			nullable(datagen.Truncate(c.City, 50)),
			c.RegistrationDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert customer %s: %w", c.Email, err)
		}
		if tag.RowsAffected() > 0 {
			stats.CustomersLoaded++
		}
		reporter.Update(1)
	}
	reporter.Done()

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit customers: %w", err)
	}

	logging.Info().Int("loaded", stats.CustomersLoaded).Msg("Loaded customers")
	return nil
}

func loadProducts(ctx context.Context, pool *pgxpool.Pool, products []CleanProduct, stats *LoadStats) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin products transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := datagen.DefaultBatchConfig()
	reporter := datagen.NewProgressReporter("products", int64(len(products)), batch.ProgressInterval)

	for _, p := range products {
		_, err := tx.Exec(ctx, `
            INSERT INTO products (product_name, category, price, stock_quantity)
            VALUES ($1, $2, $3, $4)`,
			datagen.Truncate(p.Name, 100),
			datagen.Truncate(p.Category, 50),
			p.Price,
			p.Stock,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.Name, err)
		}
		stats.ProductsLoaded++
		reporter.Update(1)
	}
	reporter.Done()

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}

	logging.Info().Int("loaded", stats.ProductsLoaded).Msg("Loaded products")
	return nil
}

// resolveCustomerIDs maps loaded customer emails to their generated keys.
func resolveCustomerIDs(ctx context.Context, pool *pgxpool.Pool, emails []string) (map[string]int, error) {
	rows, err := pool.Query(ctx, `
        SELECT customer_id, email FROM customers WHERE email = ANY($1)`, emails)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int, len(emails))
	for rows.Next() {
		var id int
		var email string
		if err := rows.Scan(&id, &email); err != nil {
			return nil, fmt.Errorf("failed to scan customer id: %w", err)
		}
		ids[email] = id
	}
	return ids, rows.Err()
}

// resolveProductIDs maps loaded product names to their generated keys.
func resolveProductIDs(ctx context.Context, pool *pgxpool.Pool, names []string) (map[string]int, error) {
	rows, err := pool.Query(ctx, `
        SELECT product_id, product_name FROM products WHERE product_name = ANY($1)`, names)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int, len(names))
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

func loadOrders(ctx context.Context, pool *pgxpool.Pool, orders []Order, stats *LoadStats) error {
	emails := make([]string, 0, len(orders))
	emailSeen := make(map[string]bool, len(orders))
	nameSeen := make(map[string]bool)
	var names []string
	for _, o := range orders {
		if !emailSeen[o.CustomerEmail] {
			emailSeen[o.CustomerEmail] = true
			emails = append(emails, o.CustomerEmail)
		}
		for _, item := range o.Items {
			if !nameSeen[item.ProductName] {
				nameSeen[item.ProductName] = true
				names = append(names, item.ProductName)
			}
		}
	}

	customerIDs, err := resolveCustomerIDs(ctx, pool, emails)
	if err != nil {
		return err
	}
	productIDs, err := resolveProductIDs(ctx, pool, names)
	if err != nil {
		return err
	}

	// Orders first, capturing generated keys per order
	orderIDs := make(map[string]int, len(orders))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin orders transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, o := range orders {
		customerID, ok := customerIDs[o.CustomerEmail]
		if !ok {
			stats.MissingHandled++
			continue
		}

		var orderID int
		err := tx.QueryRow(ctx, `
            INSERT INTO orders (customer_id, order_date, total_amount, status)
            VALUES ($1, $2, $3, $4)
            RETURNING order_id`,
			customerID, o.Date, o.TotalAmount, datagen.Truncate(o.Status, 20),
		).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("failed to insert order %s: %w", o.Key, err)
		}

		orderIDs[o.Key] = orderID
		stats.OrdersLoaded++
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit orders: %w", err)
	}

	// Line items second, in their own transaction
	itemsTx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin order_items transaction: %w", err)
	}
	defer itemsTx.Rollback(ctx)

	for _, o := range orders {
		orderID, ok := orderIDs[o.Key]
		if !ok {
			continue
		}
		for _, item := range o.Items {
			productID, ok := productIDs[item.ProductName]
			if !ok {
				stats.MissingHandled++
				continue
			}

			_, err := itemsTx.Exec(ctx, `
                INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
                VALUES ($1, $2, $3, $4, $5)`,
				orderID, productID, item.Quantity, item.UnitPrice, item.Subtotal,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order item (%s, %s): %w", o.Key, item.ProductName, err)
			}
			stats.OrderItemsLoaded++
		}
	}

	if err := itemsTx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order_items: %w", err)
	}

	logging.Info().
		Int("orders", stats.OrdersLoaded).
		Int("order_items", stats.OrderItemsLoaded).
		Msg("Loaded orders")

	return nil
}
