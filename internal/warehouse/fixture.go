//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package warehouse

import "time"

// FixtureVersion identifies the curated dataset baked into this build.
// Bump it when the seed rows change so Validate can tell a stale seed
// from a fresh one.
const FixtureVersion = "2024.1"

// DateRow is one dim_date row.
type DateRow struct {
	Key        int // YYYYMMDD
	Date       time.Time
	Year       int
	Quarter    int
	Month      int
	MonthName  string
	DayOfMonth int
	DayName    string
	WeekOfYear int
	IsWeekend  bool
}

// Product is one dim_product row.
type Product struct {
	Key      int
	Code     string
	Name     string
	Category string
	Brand    string
	Price    float64
}

// Customer is one dim_customer row.
type Customer struct {
	Key   int
	Code  string
	Name  string
	City  string
	State string
	Email string
}

// Sale is one fact_sales row. Total is the amount as recorded in the
// source system, which for a few rows disagrees with
// Quantity×UnitPrice−Discount; see KnownDiscrepancies.
type Sale struct {
	DateKey     int
	ProductKey  int
	CustomerKey int
	Quantity    int
	UnitPrice   float64
	Discount    float64
	Total       float64
}

// ExpectedTotal is the amount the sale arithmetic says the row should
// carry.
func (s Sale) ExpectedTotal() float64 {
	return float64(s.Quantity)*s.UnitPrice - s.Discount
}

// Dates returns the date dimension: odd days through the 29th of
// January and February 2024.
func Dates() []DateRow {
	var rows []DateRow
	for _, month := range []time.Month{time.January, time.February} {
		for day := 1; day <= 29; day += 2 {
			t := time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
			_, week := t.ISOWeek()
			weekday := t.Weekday()
			rows = append(rows, DateRow{
				Key:        2024*10000 + int(month)*100 + day,
				Date:       t,
				Year:       2024,
				Quarter:    (int(month)-1)/3 + 1,
				Month:      int(month),
				MonthName:  month.String(),
				DayOfMonth: day,
				DayName:    weekday.String(),
				WeekOfYear: week,
				IsWeekend:  weekday == time.Saturday || weekday == time.Sunday,
			})
		}
	}
	return rows
}

// Products returns the product dimension.
func Products() []Product {
	return []Product{
		{1, "ELEC001", "Laptop", "Electronics", "Dell", 50000.00},
		{2, "ELEC002", "Smartphone", "Electronics", "Samsung", 30000.00},
		{3, "ELEC003", "Tablet", "Electronics", "Lenovo", 18000.00},
		{4, "ELEC004", "Bluetooth Speaker", "Electronics", "boAt", 4000.00},
		{5, "FURN001", "Office Chair", "Furniture", "Featherlite", 8000.00},
		{6, "FURN002", "Study Desk", "Furniture", "Urban Ladder", 12000.00},
		{7, "FURN003", "Bookshelf", "Furniture", "Nilkamal", 6500.00},
		{8, "APPL001", "Microwave Oven", "Appliances", "LG", 9000.00},
		{9, "APPL002", "Mixer Grinder", "Appliances", "Prestige", 3500.00},
		{10, "APPL003", "Electric Kettle", "Appliances", "Philips", 1500.00},
		{11, "SPRT001", "Running Shoes", "Sportswear", "Nike", 4500.00},
		{12, "SPRT002", "Yoga Mat", "Sportswear", "Decathlon", 1200.00},
		{13, "ACCS001", "Backpack", "Accessories", "Wildcraft", 2200.00},
		{14, "ACCS002", "Wrist Watch", "Accessories", "Titan", 6000.00},
		{15, "ACCS003", "Water Bottle", "Accessories", "Milton", 600.00},
	}
}

// Customers returns the customer dimension.
func Customers() []Customer {
	return []Customer{
		{1, "CUST001", "Rahul Sharma", "Mumbai", "Maharashtra", "rahul.sharma@gmail.com"},
		{2, "CUST002", "Priya Patel", "Ahmedabad", "Gujarat", "priya.patel@yahoo.in"},
		{3, "CUST003", "Amit Verma", "Delhi", "Delhi", "amit.verma@gmail.com"},
		{4, "CUST004", "Sneha Iyer", "Chennai", "Tamil Nadu", "sneha.iyer@outlook.com"},
		{5, "CUST005", "Vikram Singh", "Jaipur", "Rajasthan", "vikram.singh@gmail.com"},
		{6, "CUST006", "Ananya Das", "Kolkata", "West Bengal", "ananya.das@yahoo.in"},
		{7, "CUST007", "Rohan Mehta", "Pune", "Maharashtra", "rohan.mehta@gmail.com"},
		{8, "CUST008", "Kavita Nair", "Kochi", "Kerala", "kavita.nair@outlook.com"},
		{9, "CUST009", "Arjun Reddy", "Hyderabad", "Telangana", "arjun.reddy@gmail.com"},
		{10, "CUST010", "Divya Kulkarni", "Bengaluru", "Karnataka", "divya.kulkarni@yahoo.in"},
		{11, "CUST011", "Suresh Menon", "Thiruvananthapuram", "Kerala", "suresh.menon@gmail.com"},
		{12, "CUST012", "Neha Gupta", "Lucknow", "Uttar Pradesh", "neha.gupta@outlook.com"},
	}
}

// Sales returns the fact rows in date order. Columns are date_key,
// product_key, customer_key, quantity, unit_price, discount, total.
func Sales() []Sale {
	return []Sale{
		{20240101, 12, 10, 5, 1200.00, 0.00, 6000.00},
		{20240103, 1, 1, 2, 50000.00, 0.00, 100000.00},
		{20240103, 11, 12, 2, 4500.00, 900.00, 8100.00},
		{20240105, 5, 5, 2, 8000.00, 800.00, 15200.00},
		{20240107, 12, 1, 8, 1200.00, 1600.00, 8000.00},
		{20240109, 15, 3, 6, 600.00, 600.00, 3000.00},
		{20240111, 1, 2, 2, 50000.00, 0.00, 100000.00},
		{20240111, 15, 11, 12, 600.00, 0.00, 7200.00},
		{20240113, 10, 8, 6, 1500.00, 1500.00, 7500.00},
		{20240115, 15, 1, 5, 600.00, 1000.00, 2000.00},
		{20240117, 15, 9, 2, 600.00, 200.00, 1000.00},
		{20240119, 1, 3, 2, 50000.00, 0.00, 100000.00},
		{20240119, 12, 11, 9, 1200.00, 800.00, 10000.00},
		{20240121, 15, 8, 5, 600.00, 500.00, 2500.00},
		{20240123, 15, 11, 5, 600.00, 0.00, 3000.00},
		{20240125, 5, 6, 3, 8000.00, 800.00, 22400.00},
		{20240127, 1, 4, 1, 50000.00, 0.00, 50000.00},
		{20240127, 12, 12, 2, 1200.00, 0.00, 2400.00},
		{20240129, 15, 10, 8, 600.00, 800.00, 4000.00},
		{20240201, 5, 12, 2, 8000.00, 700.00, 14600.00},
		{20240201, 10, 6, 6, 1500.00, 1500.00, 7500.00},
		{20240203, 9, 4, 1, 3500.00, 400.00, 3100.00},
		{20240203, 10, 6, 3, 1500.00, 0.00, 4500.00},
		{20240205, 1, 7, 2, 50000.00, 0.00, 100000.00},
		{20240205, 12, 6, 7, 1200.00, 1200.00, 7200.00},
		{20240207, 15, 2, 8, 600.00, 600.00, 4200.00},
		{20240207, 15, 6, 14, 600.00, 1600.00, 6800.00},
		{20240209, 14, 5, 1, 6000.00, 0.00, 6000.00},
		{20240213, 1, 9, 2, 50000.00, 0.00, 100000.00},
		{20240213, 4, 12, 1, 4000.00, 0.00, 4000.00},
		{20240215, 15, 7, 2, 600.00, 200.00, 1000.00},
		{20240217, 3, 8, 1, 18000.00, 1200.00, 16800.00},
		{20240219, 7, 8, 2, 6500.00, 0.00, 13000.00},
		{20240219, 12, 2, 1, 1200.00, 400.00, 800.00},
		{20240221, 1, 5, 1, 50000.00, 0.00, 50000.00},
		{20240221, 3, 10, 1, 18000.00, 1200.00, 15600.00},
		{20240223, 12, 10, 8, 1200.00, 1600.00, 8000.00},
		{20240225, 13, 10, 1, 2200.00, 200.00, 2000.00},
		{20240227, 8, 11, 1, 9000.00, 0.00, 9000.00},
		{20240229, 15, 11, 9, 600.00, 900.00, 4500.00},
	}
}

// KnownDiscrepancies lists the fact rows whose recorded total does not
// match the sale arithmetic. All three carry totals where the discount
// was subtracted twice. They came in that way from the source system
// and are preserved as-is; Validate reports them without failing.
func KnownDiscrepancies() []Sale {
	return []Sale{
		{20240125, 5, 6, 3, 8000.00, 800.00, 22400.00},
		{20240201, 5, 12, 2, 8000.00, 700.00, 14600.00},
		{20240221, 3, 10, 1, 18000.00, 1200.00, 15600.00},
	}
}
