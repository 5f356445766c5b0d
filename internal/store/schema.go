//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package store defines the FlexiMart transactional schema (customers,
// products, orders, order items) and its validation checks.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the normalized (3NF) operational store. The ETL
// pipeline loads cleaned CSV data into these tables.
const createSchemaSQL = `
-- Customers
CREATE TABLE IF NOT EXISTS customers (
    customer_id       INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    first_name        VARCHAR(50) NOT NULL,
    last_name         VARCHAR(50) NOT NULL,
    email             VARCHAR(100) UNIQUE NOT NULL,
    phone             VARCHAR(20),
    city              VARCHAR(50),
    registration_date DATE
);

-- Products
CREATE TABLE IF NOT EXISTS products (
    product_id     INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    product_name   VARCHAR(100) NOT NULL,
    category       VARCHAR(50) NOT NULL,
    price          NUMERIC(10,2) NOT NULL,
    stock_quantity INT DEFAULT 0
);

-- Orders (one row per transaction)
CREATE TABLE IF NOT EXISTS orders (
    order_id     INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    customer_id  INT NOT NULL,
    order_date   DATE NOT NULL,
    total_amount NUMERIC(12,2) NOT NULL,
    status       VARCHAR(20) DEFAULT 'Pending',
    FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
);

-- Order line items
CREATE TABLE IF NOT EXISTS order_items (
    order_item_id INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    order_id      INT NOT NULL,
    product_id    INT NOT NULL,
    quantity      INT NOT NULL,
    unit_price    NUMERIC(10,2) NOT NULL,
    subtotal      NUMERIC(12,2) NOT NULL,
    FOREIGN KEY (order_id) REFERENCES orders(order_id),
    FOREIGN KEY (product_id) REFERENCES products(product_id)
);

-- Indexes for the canned business queries
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id);
`

// Drop schema SQL
const dropSchemaSQL = `
DROP TABLE IF EXISTS order_items CASCADE;
DROP TABLE IF EXISTS orders CASCADE;
DROP TABLE IF EXISTS products CASCADE;
DROP TABLE IF EXISTS customers CASCADE;
`

// Tables lists the store tables in creation order.
func Tables() []string {
	return []string{"customers", "products", "orders", "order_items"}
}

// CreateSchema creates the operational store schema.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the operational store schema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
