//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package reports

func init() {
	Register(Definition{
		Name:        "top-products",
		Description: "Products ranked by revenue",
		Source:      SourceWarehouse,
		Params: []Param{
			{Name: "limit", Kind: "int", Default: 10, Description: "number of products to return"},
		},
		Columns: []string{"product_name", "category", "units_sold", "revenue"},
		SQL: `
            SELECT p.product_name,
                   p.category,
                   SUM(f.quantity_sold) AS units_sold,
                   SUM(f.total_amount)::float8 AS revenue
            FROM fact_sales f
            JOIN dim_product p ON p.product_key = f.product_key
            GROUP BY p.product_name, p.category
            ORDER BY revenue DESC
            LIMIT $1`,
	})

	Register(Definition{
		Name:        "monthly-sales",
		Description: "Transactions, units and revenue per month",
		Source:      SourceWarehouse,
		Columns:     []string{"month", "transactions", "units_sold", "revenue"},
		SQL: `
            SELECT TO_CHAR(d.full_date, 'YYYY-MM') AS month,
                   COUNT(*) AS transactions,
                   SUM(f.quantity_sold) AS units_sold,
                   SUM(f.total_amount)::float8 AS revenue
            FROM fact_sales f
            JOIN dim_date d ON d.date_key = f.date_key
            GROUP BY TO_CHAR(d.full_date, 'YYYY-MM')
            ORDER BY month`,
	})

	Register(Definition{
		Name:        "customer-segments",
		Description: "Customers grouped into spend segments",
		Source:      SourceWarehouse,
		Columns:     []string{"segment", "customers", "revenue", "avg_revenue"},
		SQL: `
            SELECT segment,
                   COUNT(*) AS customers,
                   SUM(customer_revenue)::float8 AS revenue,
                   AVG(customer_revenue)::float8 AS avg_revenue
            FROM (
                SELECT c.customer_key,
                       SUM(f.total_amount) AS customer_revenue,
                       CASE
                           WHEN SUM(f.total_amount) >= 100000 THEN 'High Value'
                           WHEN SUM(f.total_amount) >= 50000 THEN 'Medium Value'
                           ELSE 'Low Value'
                       END AS segment
                FROM fact_sales f
                JOIN dim_customer c ON c.customer_key = f.customer_key
                GROUP BY c.customer_key
            ) s
            GROUP BY segment
            ORDER BY revenue DESC`,
	})

	Register(Definition{
		Name:        "category-performance",
		Description: "Category rollup above a revenue threshold",
		Source:      SourceWarehouse,
		Params: []Param{
			{Name: "min-revenue", Kind: "float", Default: 40000.0, Description: "minimum category revenue"},
		},
		Columns: []string{"category", "units_sold", "revenue"},
		SQL: `
            SELECT p.category,
                   SUM(f.quantity_sold) AS units_sold,
                   SUM(f.total_amount)::float8 AS revenue
            FROM fact_sales f
            JOIN dim_product p ON p.product_key = f.product_key
            GROUP BY p.category
            HAVING SUM(f.total_amount) >= $1
            ORDER BY revenue DESC`,
	})

	Register(Definition{
		Name:        "running-revenue",
		Description: "Monthly revenue with a cumulative running total",
		Source:      SourceWarehouse,
		Columns:     []string{"month", "revenue", "cumulative_revenue"},
		SQL: `
            SELECT TO_CHAR(d.full_date, 'YYYY-MM') AS month,
                   SUM(f.total_amount)::float8 AS revenue,
                   SUM(SUM(f.total_amount)) OVER (ORDER BY TO_CHAR(d.full_date, 'YYYY-MM'))::float8 AS cumulative_revenue
            FROM fact_sales f
            JOIN dim_date d ON d.date_key = f.date_key
            GROUP BY TO_CHAR(d.full_date, 'YYYY-MM')
            ORDER BY month`,
	})
}
