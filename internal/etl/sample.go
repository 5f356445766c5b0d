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
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fleximart/fleximart-datakit/internal/datagen"
	"github.com/fleximart/fleximart-datakit/internal/logging"
)

// SampleConfig controls the dirty raw-CSV generator.
type SampleConfig struct {
	Dir       string
	Customers int
	Products  int
	Sales     int
	Seed      uint64 // 0 picks a random seed
}

// DefaultSampleConfig returns the default sample sizes.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		Dir:       ".",
		Customers: 200,
		Products:  40,
		Sales:     500,
	}
}

var sampleFirstNames = []string{
	"Rahul", "Priya", "Amit", "Sneha", "Vikram", "Ananya", "Rohan",
	"Kavita", "Arjun", "Divya", "Suresh", "Neha", "Karan", "Pooja",
	"Manish", "Ritu", "Sanjay", "Meera", "Nikhil", "Lakshmi",
}

var sampleLastNames = []string{
	"Sharma", "Patel", "Verma", "Iyer", "Singh", "Das", "Mehta",
	"Nair", "Reddy", "Kulkarni", "Menon", "Gupta", "Joshi", "Chopra",
	"Banerjee", "Rao",
}

var sampleCities = []string{
	"Mumbai", "Delhi", "Bengaluru", "Hyderabad", "Chennai", "Kolkata",
	"Pune", "Ahmedabad", "Jaipur", "Kochi", "Lucknow", "Thiruvananthapuram",
}

var sampleDomains = []string{
	"gmail.com", "yahoo.in", "outlook.com", "rediffmail.com", "fleximart.example",
}

var sampleCategories = []string{
	"Electronics", "Furniture", "Appliances", "Sportswear", "Accessories",
}

// sampleCatalog is the well-known FlexiMart catalog; generated product
// files start with these so sales rows have meaningful references.
var sampleCatalog = []struct {
	Name     string
	Category string
	Price    float64
}{
	{"Laptop", "Electronics", 50000},
	{"Smartphone", "Electronics", 30000},
	{"Tablet", "Electronics", 18000},
	{"Bluetooth Speaker", "Electronics", 4000},
	{"Office Chair", "Furniture", 8000},
	{"Study Desk", "Furniture", 12000},
	{"Bookshelf", "Furniture", 6500},
	{"Microwave Oven", "Appliances", 9000},
	{"Mixer Grinder", "Appliances", 3500},
	{"Electric Kettle", "Appliances", 1500},
	{"Running Shoes", "Sportswear", 4500},
	{"Yoga Mat", "Sportswear", 1200},
	{"Backpack", "Accessories", 2200},
	{"Wrist Watch", "Accessories", 6000},
	{"Water Bottle", "Accessories", 600},
}

type sampleCustomerRef struct {
	code  string
	email string
}

type sampleProductRef struct {
	code  string
	name  string
	price string
}

// WriteSampleData generates deliberately dirty raw CSVs (duplicates,
// missing fields, mixed phone and date formats, category case noise)
// so a generated set exercises every cleaning rule. The first few rows
// of each file always carry one issue of each kind; the rest are
// random. A non-zero seed makes the output reproducible.
func WriteSampleData(cfg SampleConfig) error {
	if cfg.Customers <= 0 || cfg.Products <= 0 || cfg.Sales <= 0 {
		return fmt.Errorf("sample row counts must be positive")
	}

	var f *datagen.Faker
	if cfg.Seed != 0 {
		f = datagen.NewFakerWithSeed(cfg.Seed)
	} else {
		f = datagen.NewFaker()
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create sample dir: %w", err)
	}

	customers, err := writeSampleCustomers(f, cfg)
	if err != nil {
		return err
	}
	products, err := writeSampleProducts(f, cfg)
	if err != nil {
		return err
	}
	if err := writeSampleSales(f, cfg, customers, products); err != nil {
		return err
	}

	return nil
}

func writeSampleCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			file.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	logging.Info().
		Int("rows", len(rows)).
		Str("file", path).
		Msg("Wrote sample CSV")

	return nil
}

// dirtyPhone emits the phone formats seen in real exports, including
// ones the cleaner must reject.
func dirtyPhone(f *datagen.Faker) string {
	kind := datagen.ChooseWeighted(f,
		[]string{"plain", "prefixed", "country", "zero", "foreign"},
		[]int{35, 25, 15, 10, 15})
	switch kind {
	case "plain":
		return f.Digits(10)
	case "prefixed":
		return "+91-" + f.Digits(10)
	case "country":
		return "91" + f.Digits(10)
	case "zero":
		return "0" + f.Digits(10)
	default:
		return f.Phone()
	}
}

// dirtyDate formats a date in one of the layouts the cleaner accepts.
func dirtyDate(f *datagen.Faker, t time.Time) string {
	layout := datagen.ChooseWeighted(f,
		[]string{"2006-01-02", "02-01-2006", "02/01/2006", "01/02/2006"},
		[]int{50, 25, 15, 10})
	return t.Format(layout)
}

// dirtyCategory re-cases a category the way sloppy exports do.
func dirtyCategory(f *datagen.Faker, category string) string {
	kind := datagen.ChooseWeighted(f,
		[]string{"clean", "lower", "upper", "padded"},
		[]int{70, 15, 10, 5})
	switch kind {
	case "lower":
		return strings.ToLower(category)
	case "upper":
		return strings.ToUpper(category)
	case "padded":
		return " " + category + " "
	default:
		return category
	}
}

func writeSampleCustomers(f *datagen.Faker, cfg SampleConfig) ([]sampleCustomerRef, error) {
	header := []string{"customer_id", "first_name", "last_name", "email", "phone", "city", "registration_date"}
	rows := make([][]string, 0, cfg.Customers)
	refs := make([]sampleCustomerRef, 0, cfg.Customers)

	regStart := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	regEnd := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	for i := 0; i < cfg.Customers; i++ {
		// Guaranteed issues up front so even tiny samples are dirty
		switch {
		case i == 1 && len(rows) > 0:
			rows = append(rows, rows[0])
			continue
		case i > 4 && f.Float64(0, 1) < 0.05:
			rows = append(rows, rows[f.Int(0, len(rows)-1)])
			continue
		}

		var first, last string
		if f.Float64(0, 1) < 0.8 {
			first = datagen.Choose(f, sampleFirstNames)
			last = datagen.Choose(f, sampleLastNames)
		} else {
			first = f.FirstName()
			last = f.LastName()
		}

		email := fmt.Sprintf("%s.%s%d@%s",
			strings.ToLower(first), strings.ToLower(last), i+1,
			datagen.Choose(f, sampleDomains))
		if f.Float64(0, 1) < 0.1 {
			email = f.Email()
		}
		if i == 2 {
			email = ""
		} else if i > 4 {
			email = f.NullableString(email, 0.04)
		}

		phone := dirtyPhone(f)
		if i == 3 {
			phone = "12345" // too short to normalize
		}

		date := dirtyDate(f, f.DateRange(regStart, regEnd))
		if i == 4 {
			date = "not-a-date"
		} else if i > 4 {
			date = f.NullableString(date, 0.03)
		}

		city := datagen.Choose(f, sampleCities)
		if f.Float64(0, 1) < 0.15 {
			city = f.City()
		}

		code := fmt.Sprintf("C%03d", i+1)
		rows = append(rows, []string{code, first, last, email, phone, city, date})
		if email != "" {
			refs = append(refs, sampleCustomerRef{code: code, email: email})
		}
	}

	path := filepath.Join(cfg.Dir, "customers_raw.csv")
	if err := writeSampleCSV(path, header, rows); err != nil {
		return nil, err
	}
	return refs, nil
}

func writeSampleProducts(f *datagen.Faker, cfg SampleConfig) ([]sampleProductRef, error) {
	header := []string{"product_id", "product_name", "category", "price", "stock_quantity"}
	rows := make([][]string, 0, cfg.Products)
	refs := make([]sampleProductRef, 0, cfg.Products)

	for i := 0; i < cfg.Products; i++ {
		switch {
		case i == 1 && len(rows) > 0:
			rows = append(rows, rows[0])
			continue
		case i > 4 && f.Float64(0, 1) < 0.05:
			rows = append(rows, rows[f.Int(0, len(rows)-1)])
			continue
		}

		var name, category string
		var price float64
		if i < len(sampleCatalog) {
			name = sampleCatalog[i].Name
			category = sampleCatalog[i].Category
			price = sampleCatalog[i].Price
		} else {
			name = f.ProductName()
			category = datagen.Choose(f, sampleCategories)
			price = f.Price(200, 60000)
		}

		priceStr := strconv.FormatFloat(price, 'f', 2, 64)
		if i == 2 || (i > 4 && f.Float64(0, 1) < 0.04) {
			priceStr = ""
		} else if i == 3 {
			priceStr = "N/A"
		}

		stock := strconv.Itoa(f.Int(0, 500))
		if i == 4 {
			stock = ""
		} else if i > 4 {
			stock = f.NullableString(stock, 0.06)
		}

		code := fmt.Sprintf("P%03d", i+1)
		rows = append(rows, []string{code, name, dirtyCategory(f, category), priceStr, stock})
		if priceStr != "" && priceStr != "N/A" {
			refs = append(refs, sampleProductRef{code: code, name: name, price: priceStr})
		}
	}

	path := filepath.Join(cfg.Dir, "products_raw.csv")
	if err := writeSampleCSV(path, header, rows); err != nil {
		return nil, err
	}
	return refs, nil
}

func writeSampleSales(f *datagen.Faker, cfg SampleConfig, customers []sampleCustomerRef, products []sampleProductRef) error {
	header := []string{"transaction_id", "customer_id", "customer_email", "product_id", "product_name", "quantity", "unit_price", "transaction_date", "status"}
	rows := make([][]string, 0, cfg.Sales)

	saleStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	saleEnd := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	txCounter := 0
	var txID, txDate string
	var txCustomer sampleCustomerRef

	for i := 0; i < cfg.Sales; i++ {
		if i == 1 && len(rows) > 0 {
			rows = append(rows, rows[0])
			continue
		}

		// Start a new transaction ~70% of the time, otherwise add
		// another line item to the current one
		if txID == "" || f.Float64(0, 1) < 0.7 {
			txCounter++
			txID = fmt.Sprintf("T%04d", txCounter)
			txCustomer = datagen.Choose(f, customers)
			txDate = dirtyDate(f, f.DateRange(saleStart, saleEnd))
		}

		product := datagen.Choose(f, products)

		customerID, customerEmail := txCustomer.code, ""
		if f.Float64(0, 1) < 0.3 {
			customerID, customerEmail = "", txCustomer.email
		}
		if i > 4 && f.Float64(0, 1) < 0.02 {
			customerID, customerEmail = "C999", "" // unknown reference
		}

		productID, productName := product.code, ""
		if f.Float64(0, 1) < 0.4 {
			productID, productName = "", product.name
		}
		if i > 4 && f.Float64(0, 1) < 0.02 {
			productID, productName = "P999", ""
		}

		qty := strconv.Itoa(f.Int(1, 5))
		if i == 2 || (i > 4 && f.Float64(0, 1) < 0.02) {
			qty = "0"
		}

		unitPrice := product.price
		switch {
		case i == 4 || (i > 4 && f.Float64(0, 1) < 0.12):
			unitPrice = "" // cleaner falls back to catalog price
		case f.Float64(0, 1) < 0.03:
			unitPrice = "N/A"
		}

		date := txDate
		if i == 3 {
			date = "invalid"
		} else if i > 4 && f.Float64(0, 1) < 0.02 {
			date = "31-02-2024" // no such day in any layout
		}

		status := datagen.ChooseWeighted(f,
			[]string{"", "Delivered", "Shipped", "Pending", "Cancelled"},
			[]int{30, 30, 15, 15, 10})

		rows = append(rows, []string{txID, customerID, customerEmail, productID, productName, qty, unitPrice, date, status})
	}

	path := filepath.Join(cfg.Dir, "sales_raw.csv")
	return writeSampleCSV(path, header, rows)
}
