//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package warehouse defines the FlexiMart analytics star schema, its
// curated seed dataset, and validation checks over the seeded facts.
package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the star-schema warehouse. Dimension keys are
// assigned by the seeder; only fact rows get generated ids.
const createSchemaSQL = `
-- Date dimension (date_key is YYYYMMDD)
CREATE TABLE IF NOT EXISTS dim_date (
    date_key     INT PRIMARY KEY,
    full_date    DATE NOT NULL UNIQUE,
    year         INT NOT NULL,
    quarter      INT NOT NULL,
    month        INT NOT NULL,
    month_name   VARCHAR(10) NOT NULL,
    day_of_month INT NOT NULL,
    day_name     VARCHAR(10) NOT NULL,
    week_of_year INT NOT NULL,
    is_weekend   BOOLEAN NOT NULL
);

-- Product dimension
CREATE TABLE IF NOT EXISTS dim_product (
    product_key  INT PRIMARY KEY,
    product_code VARCHAR(20) UNIQUE NOT NULL,
    product_name VARCHAR(100) NOT NULL,
    category     VARCHAR(50) NOT NULL,
    brand        VARCHAR(50),
    unit_price   NUMERIC(10,2) NOT NULL
);

-- Customer dimension
CREATE TABLE IF NOT EXISTS dim_customer (
    customer_key  INT PRIMARY KEY,
    customer_code VARCHAR(20) UNIQUE NOT NULL,
    customer_name VARCHAR(100) NOT NULL,
    city          VARCHAR(50),
    state         VARCHAR(50),
    email         VARCHAR(100)
);

-- Sales facts (one row per product per transaction)
CREATE TABLE IF NOT EXISTS fact_sales (
    sale_id         INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    date_key        INT NOT NULL,
    product_key     INT NOT NULL,
    customer_key    INT NOT NULL,
    quantity_sold   INT NOT NULL,
    unit_price      NUMERIC(10,2) NOT NULL,
    discount_amount NUMERIC(10,2) DEFAULT 0,
    total_amount    NUMERIC(12,2) NOT NULL,
    FOREIGN KEY (date_key) REFERENCES dim_date(date_key),
    FOREIGN KEY (product_key) REFERENCES dim_product(product_key),
    FOREIGN KEY (customer_key) REFERENCES dim_customer(customer_key)
);

-- Indexes on the fact foreign keys
CREATE INDEX IF NOT EXISTS idx_fact_sales_date ON fact_sales(date_key);
CREATE INDEX IF NOT EXISTS idx_fact_sales_product ON fact_sales(product_key);
CREATE INDEX IF NOT EXISTS idx_fact_sales_customer ON fact_sales(customer_key);
`

// Drop schema SQL
const dropSchemaSQL = `
DROP TABLE IF EXISTS fact_sales CASCADE;
DROP TABLE IF EXISTS dim_customer CASCADE;
DROP TABLE IF EXISTS dim_product CASCADE;
DROP TABLE IF EXISTS dim_date CASCADE;
`

// Tables lists the warehouse tables in creation order.
func Tables() []string {
	return []string{"dim_date", "dim_product", "dim_customer", "fact_sales"}
}

// CreateSchema creates the warehouse star schema.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the warehouse star schema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
