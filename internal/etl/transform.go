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
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultOrderStatus is assigned to orders whose source rows carry no
// status value.
const DefaultOrderStatus = "Pending"

// DefaultStock is assigned to products whose stock quantity is missing
// or unparseable.
const DefaultStock = 0

// Stats counts what a transform step did to its input.
type Stats struct {
	Processed         int
	DuplicatesRemoved int
	MissingHandled    int
}

// CleanCustomer is a customer row after cleaning, keyed by email.
type CleanCustomer struct {
	Code             string // source id code (e.g. C001), may be empty
	FirstName        string
	LastName         string
	Email            string
	Phone            string // +91-XXXXXXXXXX or empty
	City             string
	RegistrationDate string // YYYY-MM-DD
}

// CleanProduct is a product row after cleaning, keyed by name.
type CleanProduct struct {
	Code     string // source id code (e.g. P001), may be empty
	Name     string
	Category string
	Price    float64
	Stock    int
}

// Order is a group of cleaned sale rows sharing a transaction.
type Order struct {
	Key           string // transaction id, or customer|date composite
	CustomerEmail string
	Date          string // YYYY-MM-DD
	TotalAmount   float64
	Status        string
	Items         []OrderItem
}

// OrderItem is one cleaned sale line.
type OrderItem struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
}

// dateLayouts are tried in order; day-first layouts beat month-first
// for ambiguous values.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"01-02-2006",
	"01/02/2006",
	"2006/01/02",
}

// ParseDateISO normalizes a raw date value to YYYY-MM-DD, returning ""
// when no known layout matches.
func ParseDateISO(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// NormalizePhone standardizes a raw phone value to +91-XXXXXXXXXX.
// Strips non-digits; 10 digits used as-is; 12 digits starting 91 and
// any longer value keep the last 10; anything shorter is treated as
// missing and returns "".
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case len(d) == 10:
		return "+91-" + d
	case len(d) == 12 && strings.HasPrefix(d, "91"):
		return "+91-" + d[2:]
	case len(d) > 10:
		return "+91-" + d[len(d)-10:]
	}
	return ""
}

var titleCaser = cases.Title(language.English)

// TitleCase standardizes a category value to Title Case.
func TitleCase(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// parseFloat parses a trimmed decimal value; ok is false for missing
// or unparseable input.
func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseInt parses an integer, accepting decimal input by truncation
// ("3.0" reads as 3); ok is false for missing or unparseable input.
func parseInt(s string) (int, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(t); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TransformCustomers cleans raw customer rows: trims fields, drops
// rows without an email or a name, dedupes by lower-cased email
// keeping the first occurrence, normalizes phones, and defaults
// missing registration dates to today.
func TransformCustomers(raws []RawCustomer) ([]CleanCustomer, Stats) {
	stats := Stats{Processed: len(raws)}
	today := time.Now().Format("2006-01-02")

	seen := make(map[string]bool, len(raws))
	customers := make([]CleanCustomer, 0, len(raws))

	for _, raw := range raws {
		c := CleanCustomer{
			Code:      strings.TrimSpace(raw.CustomerID),
			FirstName: strings.TrimSpace(raw.FirstName),
			LastName:  strings.TrimSpace(raw.LastName),
			Email:     strings.TrimSpace(raw.Email),
			City:      strings.TrimSpace(raw.City),
		}

		// Email is the critical unique field; rows without one are dropped
		if c.Email == "" {
			stats.MissingHandled++
			continue
		}
		if c.FirstName == "" || c.LastName == "" {
			stats.MissingHandled++
			continue
		}

		key := strings.ToLower(c.Email)
		if seen[key] {
			stats.DuplicatesRemoved++
			continue
		}
		seen[key] = true

		// Phone stays nullable; empty after normalization counts as missing
		c.Phone = NormalizePhone(raw.Phone)
		if c.Phone == "" {
			stats.MissingHandled++
		}

		c.RegistrationDate = ParseDateISO(raw.RegistrationDate)
		if c.RegistrationDate == "" {
			c.RegistrationDate = today
			stats.MissingHandled++
		}

		customers = append(customers, c)
	}

	return customers, stats
}

// TransformProducts cleans raw product rows: trims fields, title-cases
// categories, drops rows with a missing or unparseable price, defaults
// missing stock to zero, and dedupes by (name, category)
// case-insensitively keeping the first occurrence.
func TransformProducts(raws []RawProduct) ([]CleanProduct, Stats) {
	stats := Stats{Processed: len(raws)}

	seen := make(map[string]bool, len(raws))
	products := make([]CleanProduct, 0, len(raws))

	for _, raw := range raws {
		p := CleanProduct{
			Code:     strings.TrimSpace(raw.ProductID),
			Name:     strings.TrimSpace(raw.ProductName),
			Category: TitleCase(raw.Category),
		}

		price, ok := parseFloat(raw.Price)
		if !ok {
			stats.MissingHandled++
			continue
		}
		p.Price = round2(price)

		stock, ok := parseInt(raw.StockQuantity)
		if !ok {
			stock = DefaultStock
			stats.MissingHandled++
		}
		p.Stock = stock

		key := strings.ToLower(p.Name) + "|" + strings.ToLower(p.Category)
		if seen[key] {
			stats.DuplicatesRemoved++
			continue
		}
		seen[key] = true

		products = append(products, p)
	}

	return products, stats
}

// customerLookup resolves sale-row customer references (id code, email
// or full name) to the cleaned customer's email.
type customerLookup struct {
	byCode  map[string]string
	byEmail map[string]string
	byName  map[string]string
}

func buildCustomerLookup(customers []CleanCustomer) customerLookup {
	l := customerLookup{
		byCode:  make(map[string]string, len(customers)),
		byEmail: make(map[string]string, len(customers)),
		byName:  make(map[string]string, len(customers)),
	}
	for _, c := range customers {
		if c.Code != "" {
			l.byCode[strings.ToLower(c.Code)] = c.Email
		}
		l.byEmail[strings.ToLower(c.Email)] = c.Email
		name := strings.ToLower(c.FirstName + " " + c.LastName)
		if _, dup := l.byName[name]; !dup {
			l.byName[name] = c.Email
		}
	}
	return l
}

func (l customerLookup) resolve(s RawSale) string {
	if e := strings.TrimSpace(s.CustomerEmail); e != "" {
		if email, ok := l.byEmail[strings.ToLower(e)]; ok {
			return email
		}
		return ""
	}
	if id := strings.TrimSpace(s.CustomerID); id != "" {
		return l.byCode[strings.ToLower(id)]
	}
	if n := strings.TrimSpace(s.CustomerName); n != "" {
		return l.byName[strings.ToLower(n)]
	}
	return ""
}

// productLookup resolves sale-row product references (id code or name)
// to the cleaned product.
type productLookup struct {
	byCode map[string]*CleanProduct
	byName map[string]*CleanProduct
}

func buildProductLookup(products []CleanProduct) productLookup {
	l := productLookup{
		byCode: make(map[string]*CleanProduct, len(products)),
		byName: make(map[string]*CleanProduct, len(products)),
	}
	for i := range products {
		p := &products[i]
		if p.Code != "" {
			l.byCode[strings.ToLower(p.Code)] = p
		}
		if _, dup := l.byName[strings.ToLower(p.Name)]; !dup {
			l.byName[strings.ToLower(p.Name)] = p
		}
	}
	return l
}

func (l productLookup) resolve(s RawSale) *CleanProduct {
	if n := strings.TrimSpace(s.ProductName); n != "" {
		return l.byName[strings.ToLower(n)]
	}
	if id := strings.TrimSpace(s.ProductID); id != "" {
		return l.byCode[strings.ToLower(id)]
	}
	return nil
}

// TransformSales cleans raw sale rows and groups them into orders.
// Exact duplicate rows are removed; rows with an unparseable date,
// non-positive quantity, or unresolvable customer/product reference
// are dropped and counted. A missing unit price falls back to the
// product's catalog price. Rows sharing a transaction ID form one
// order; rows without one group by customer and date. Order totals are
// the sum of their item subtotals.
func TransformSales(raws []RawSale, customers []CleanCustomer, products []CleanProduct) ([]Order, Stats) {
	stats := Stats{Processed: len(raws)}

	custLookup := buildCustomerLookup(customers)
	prodLookup := buildProductLookup(products)

	seen := make(map[RawSale]bool, len(raws))
	orders := make(map[string]*Order)
	var orderKeys []string // keeps output in first-seen order

	for _, raw := range raws {
		if seen[raw] {
			stats.DuplicatesRemoved++
			continue
		}
		seen[raw] = true

		date := ParseDateISO(raw.TransactionDate)
		if date == "" {
			stats.MissingHandled++
			continue
		}

		qty, ok := parseInt(raw.Quantity)
		if !ok || qty <= 0 {
			stats.MissingHandled++
			continue
		}

		email := custLookup.resolve(raw)
		if email == "" {
			stats.MissingHandled++
			continue
		}

		product := prodLookup.resolve(raw)
		if product == nil {
			stats.MissingHandled++
			continue
		}

		unitPrice, ok := parseFloat(raw.UnitPrice)
		if !ok {
			unitPrice = product.Price
			stats.MissingHandled++
		}
		unitPrice = round2(unitPrice)

		key := strings.TrimSpace(raw.TransactionID)
		if key == "" {
			key = email + "|" + date
		}

		order, exists := orders[key]
		if !exists {
			order = &Order{
				Key:           key,
				CustomerEmail: email,
				Date:          date,
				Status:        strings.TrimSpace(raw.Status),
			}
			orders[key] = order
			orderKeys = append(orderKeys, key)
		}

		subtotal := round2(float64(qty) * unitPrice)
		order.Items = append(order.Items, OrderItem{
			ProductName: product.Name,
			Quantity:    qty,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
		})
		order.TotalAmount = round2(order.TotalAmount + subtotal)
	}

	result := make([]Order, 0, len(orderKeys))
	for _, key := range orderKeys {
		order := orders[key]
		if order.Status == "" {
			order.Status = DefaultOrderStatus
			stats.MissingHandled++
		}
		result = append(result, *order)
	}

	return result, stats
}

// OrderItemCount sums the line items across orders.
func OrderItemCount(orders []Order) int {
	n := 0
	for _, o := range orders {
		n += len(o.Items)
	}
	return n
}
