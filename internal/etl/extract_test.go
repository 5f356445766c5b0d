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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestReadCustomersCSV(t *testing.T) {
	path := writeTempCSV(t, "customers.csv",
		"customer_id,first_name,last_name,email,phone,city,registration_date\n"+
			"C001,Asha,Rao,asha@example.com,9876543210,Mumbai,2023-01-15\n"+
			"C002,Vikram,Singh,vikram@example.com,,,\n")

	customers, err := ReadCustomersCSV(path)
	if err != nil {
		t.Fatalf("ReadCustomersCSV failed: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("len(customers) = %d, want 2", len(customers))
	}
	if customers[0].CustomerID != "C001" || customers[0].Email != "asha@example.com" {
		t.Errorf("customers[0] = %+v", customers[0])
	}
	if customers[1].Phone != "" || customers[1].City != "" {
		t.Errorf("customers[1] = %+v, want empty phone and city", customers[1])
	}
}

func TestReadCustomersCSVRaggedRows(t *testing.T) {
	// short rows read as empty trailing fields
	path := writeTempCSV(t, "customers.csv",
		"first_name,last_name,email,phone\n"+
			"Asha,Rao,asha@example.com\n")

	customers, err := ReadCustomersCSV(path)
	if err != nil {
		t.Fatalf("ReadCustomersCSV failed: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("len(customers) = %d, want 1", len(customers))
	}
	if customers[0].Phone != "" {
		t.Errorf("Phone = %q, want empty", customers[0].Phone)
	}
}

func TestReadCustomersCSVMissingColumn(t *testing.T) {
	path := writeTempCSV(t, "customers.csv",
		"first_name,last_name,phone\nAsha,Rao,9876543210\n")

	_, err := ReadCustomersCSV(path)
	if err == nil {
		t.Fatal("ReadCustomersCSV succeeded, want missing column error")
	}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("error = %v, want mention of email", err)
	}
}

func TestReadCustomersCSVEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "customers.csv", "")

	_, err := ReadCustomersCSV(path)
	if err == nil {
		t.Fatal("ReadCustomersCSV succeeded, want empty file error")
	}
}

func TestReadCustomersCSVMissingFile(t *testing.T) {
	_, err := ReadCustomersCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("ReadCustomersCSV succeeded, want open error")
	}
}

func TestReadProductsCSV(t *testing.T) {
	path := writeTempCSV(t, "products.csv",
		"product_id,product_name,category,price,stock_quantity,warehouse\n"+
			"P001,Laptop,Electronics,50000.00,25,BLR-1\n")

	products, err := ReadProductsCSV(path)
	if err != nil {
		t.Fatalf("ReadProductsCSV failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("len(products) = %d, want 1", len(products))
	}
	// unknown columns are ignored
	if products[0].ProductName != "Laptop" || products[0].Price != "50000.00" {
		t.Errorf("products[0] = %+v", products[0])
	}
}

func TestReadProductsCSVMissingColumn(t *testing.T) {
	path := writeTempCSV(t, "products.csv",
		"product_name,category\nLaptop,Electronics\n")

	_, err := ReadProductsCSV(path)
	if err == nil {
		t.Fatal("ReadProductsCSV succeeded, want missing column error")
	}
	if !strings.Contains(err.Error(), "price") {
		t.Errorf("error = %v, want mention of price", err)
	}
}

func TestReadSalesCSVHeaderSynonyms(t *testing.T) {
	// order_id and order_date map to transaction_id and transaction_date
	path := writeTempCSV(t, "sales.csv",
		"order_id,customer_id,product_id,quantity,unit_price,order_date,status\n"+
			"T001,C001,P001,2,15.00,2024-01-05,Delivered\n")

	sales, err := ReadSalesCSV(path)
	if err != nil {
		t.Fatalf("ReadSalesCSV failed: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("len(sales) = %d, want 1", len(sales))
	}
	if sales[0].TransactionID != "T001" {
		t.Errorf("TransactionID = %q, want T001", sales[0].TransactionID)
	}
	if sales[0].TransactionDate != "2024-01-05" {
		t.Errorf("TransactionDate = %q, want 2024-01-05", sales[0].TransactionDate)
	}
}

func TestReadSalesCSVNoCustomerReference(t *testing.T) {
	path := writeTempCSV(t, "sales.csv",
		"transaction_id,product_id,quantity,unit_price,transaction_date\n"+
			"T001,P001,2,15.00,2024-01-05\n")

	_, err := ReadSalesCSV(path)
	if err == nil {
		t.Fatal("ReadSalesCSV succeeded, want customer reference error")
	}
	if !strings.Contains(err.Error(), "customer reference") {
		t.Errorf("error = %v, want mention of customer reference", err)
	}
}

func TestReadSalesCSVNoProductReference(t *testing.T) {
	path := writeTempCSV(t, "sales.csv",
		"transaction_id,customer_id,quantity,unit_price,transaction_date\n"+
			"T001,C001,2,15.00,2024-01-05\n")

	_, err := ReadSalesCSV(path)
	if err == nil {
		t.Fatal("ReadSalesCSV succeeded, want product reference error")
	}
	if !strings.Contains(err.Error(), "product reference") {
		t.Errorf("error = %v, want mention of product reference", err)
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Order_ID", "transaction_id"},
		{"ORDER_DATE", "transaction_date"},
		{" Email ", "email"},
		{"quantity", "quantity"},
	}

	for _, tt := range tests {
		if got := normalizeHeader(tt.raw); got != tt.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
