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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fleximart/fleximart-datakit/internal/logging"
)

// RawCustomer is one row of customers_raw.csv before cleaning.
type RawCustomer struct {
	CustomerID       string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	City             string
	RegistrationDate string
}

// RawProduct is one row of products_raw.csv before cleaning.
type RawProduct struct {
	ProductID     string
	ProductName   string
	Category      string
	Price         string
	StockQuantity string
}

// RawSale is one row of sales_raw.csv before cleaning. A sale row is a
// single line item; rows sharing a transaction ID form one order.
// Customer and product references may be id codes, emails, or names.
type RawSale struct {
	TransactionID   string
	CustomerID      string
	CustomerEmail   string
	CustomerName    string
	ProductID       string
	ProductName     string
	Quantity        string
	UnitPrice       string
	TransactionDate string
	Status          string
}

// normalizeHeader lower-cases a CSV header and maps accepted synonyms
// to their canonical column names.
func normalizeHeader(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "order_id":
		return "transaction_id"
	case "order_date":
		return "transaction_date"
	}
	return n
}

// columnIndex maps canonical column names to their position in the
// header row.
type columnIndex map[string]int

func readHeader(r *csv.Reader, path string) (columnIndex, error) {
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	cols := make(columnIndex, len(header))
	for i, name := range header {
		cols[normalizeHeader(name)] = i
	}
	return cols, nil
}

// field returns the named column from a record, or "" when the column
// is absent or the record is short.
func (c columnIndex) field(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func (c columnIndex) has(names ...string) bool {
	for _, n := range names {
		if _, ok := c[n]; ok {
			return true
		}
	}
	return false
}

func (c columnIndex) require(path string, names ...string) error {
	for _, n := range names {
		if _, ok := c[n]; !ok {
			return fmt.Errorf("%s is missing required column %q", path, n)
		}
	}
	return nil
}

func openCSV(path string) (*os.File, *csv.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	r := csv.NewReader(f)
	// Raw exports are ragged; short rows read as empty fields
	r.FieldsPerRecord = -1
	return f, r, nil
}

// ReadCustomersCSV reads a raw customers file. Requires first_name,
// last_name and email columns; everything else is optional.
func ReadCustomersCSV(path string) ([]RawCustomer, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cols, err := readHeader(r, path)
	if err != nil {
		return nil, err
	}
	if err := cols.require(path, "first_name", "last_name", "email"); err != nil {
		return nil, err
	}

	var customers []RawCustomer
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		customers = append(customers, RawCustomer{
			CustomerID:       cols.field(record, "customer_id"),
			FirstName:        cols.field(record, "first_name"),
			LastName:         cols.field(record, "last_name"),
			Email:            cols.field(record, "email"),
			Phone:            cols.field(record, "phone"),
			City:             cols.field(record, "city"),
			RegistrationDate: cols.field(record, "registration_date"),
		})
	}

	logging.Info().
		Int("records", len(customers)).
		Str("file", path).
		Msg("Read raw customers")

	return customers, nil
}

// ReadProductsCSV reads a raw products file. Requires product_name,
// category and price columns.
func ReadProductsCSV(path string) ([]RawProduct, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cols, err := readHeader(r, path)
	if err != nil {
		return nil, err
	}
	if err := cols.require(path, "product_name", "category", "price"); err != nil {
		return nil, err
	}

	var products []RawProduct
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		products = append(products, RawProduct{
			ProductID:     cols.field(record, "product_id"),
			ProductName:   cols.field(record, "product_name"),
			Category:      cols.field(record, "category"),
			Price:         cols.field(record, "price"),
			StockQuantity: cols.field(record, "stock_quantity"),
		})
	}

	logging.Info().
		Int("records", len(products)).
		Str("file", path).
		Msg("Read raw products")

	return products, nil
}

// ReadSalesCSV reads a raw sales file. Requires quantity and
// transaction_date (order_date accepted), plus at least one customer
// reference column (customer_id, customer_email or customer_name) and
// one product reference column (product_id or product_name).
func ReadSalesCSV(path string) ([]RawSale, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cols, err := readHeader(r, path)
	if err != nil {
		return nil, err
	}
	if err := cols.require(path, "quantity", "transaction_date"); err != nil {
		return nil, err
	}
	if !cols.has("customer_id", "customer_email", "customer_name") {
		return nil, fmt.Errorf("%s has no customer reference column (customer_id, customer_email or customer_name)", path)
	}
	if !cols.has("product_id", "product_name") {
		return nil, fmt.Errorf("%s has no product reference column (product_id or product_name)", path)
	}

	var sales []RawSale
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		sales = append(sales, RawSale{
			TransactionID:   cols.field(record, "transaction_id"),
			CustomerID:      cols.field(record, "customer_id"),
			CustomerEmail:   cols.field(record, "customer_email"),
			CustomerName:    cols.field(record, "customer_name"),
			ProductID:       cols.field(record, "product_id"),
			ProductName:     cols.field(record, "product_name"),
			Quantity:        cols.field(record, "quantity"),
			UnitPrice:       cols.field(record, "unit_price"),
			TransactionDate: cols.field(record, "transaction_date"),
			Status:          cols.field(record, "status"),
		})
	}

	logging.Info().
		Int("records", len(sales)).
		Str("file", path).
		Msg("Read raw sales")

	return sales, nil
}
