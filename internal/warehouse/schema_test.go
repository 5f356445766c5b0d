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
	"strings"
	"testing"
)

func TestCreateSchemaDeclaresAllTables(t *testing.T) {
	sql := strings.ToLower(createSchemaSQL)
	for _, table := range Tables() {
		if !strings.Contains(sql, "create table if not exists "+table) {
			t.Errorf("schema does not declare table %s", table)
		}
	}
}

func TestCreateSchemaKeyColumns(t *testing.T) {
	sql := strings.Join(strings.Fields(strings.ToLower(createSchemaSQL)), " ")

	clauses := []string{
		"date_key int primary key",
		"full_date date not null unique",
		"is_weekend boolean not null",
		"product_code varchar(20) unique not null",
		"customer_code varchar(20) unique not null",
		"sale_id int generated always as identity primary key",
		"discount_amount numeric(10,2) default 0",
		"total_amount numeric(12,2) not null",
		"foreign key (date_key) references dim_date(date_key)",
		"foreign key (product_key) references dim_product(product_key)",
		"foreign key (customer_key) references dim_customer(customer_key)",
	}
	for _, clause := range clauses {
		if !strings.Contains(sql, clause) {
			t.Errorf("schema missing clause %q", clause)
		}
	}
}

func TestCreateSchemaIndexesFactKeys(t *testing.T) {
	sql := strings.ToLower(createSchemaSQL)
	for _, index := range []string{"idx_fact_sales_date", "idx_fact_sales_product", "idx_fact_sales_customer"} {
		if !strings.Contains(sql, index) {
			t.Errorf("schema missing index %s", index)
		}
	}
}

func TestDropSchemaOrder(t *testing.T) {
	sql := strings.ToLower(dropSchemaSQL)
	facts := strings.Index(sql, "fact_sales")
	dates := strings.Index(sql, "dim_date")

	if facts == -1 || dates == -1 {
		t.Fatal("drop schema does not name fact_sales and dim_date")
	}
	if facts > dates {
		t.Error("fact_sales must drop before its dimensions")
	}
}

func TestFailed(t *testing.T) {
	passing := []CheckResult{{Name: "a", Passed: true}, {Name: "b", Passed: true}}
	if Failed(passing) {
		t.Error("Failed(passing) = true, want false")
	}

	mixed := []CheckResult{{Name: "a", Passed: true}, {Name: "b", Passed: false, Violations: 2}}
	if !Failed(mixed) {
		t.Error("Failed(mixed) = false, want true")
	}

	if Failed(nil) {
		t.Error("Failed(nil) = true, want false")
	}
}
