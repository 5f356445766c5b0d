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
		Name:        "repeat-customers",
		Description: "Customers with repeat orders above a spend floor",
		Source:      SourceStore,
		Params: []Param{
			{Name: "min-orders", Kind: "int", Default: 2, Description: "minimum order count"},
			{Name: "min-spend", Kind: "float", Default: 5000.0, Description: "minimum total spend"},
		},
		Columns: []string{"customer_name", "email", "order_count", "total_spend"},
		SQL: `
            SELECT c.first_name || ' ' || c.last_name AS customer_name,
                   c.email,
                   COUNT(o.order_id) AS order_count,
                   SUM(o.total_amount)::float8 AS total_spend
            FROM customers c
            JOIN orders o ON o.customer_id = c.customer_id
            GROUP BY c.customer_id, c.first_name, c.last_name, c.email
            HAVING COUNT(o.order_id) >= $1 AND SUM(o.total_amount) > $2
            ORDER BY total_spend DESC`,
	})

	Register(Definition{
		Name:        "category-revenue",
		Description: "Category revenue from order line items",
		Source:      SourceStore,
		Params: []Param{
			{Name: "min-revenue", Kind: "float", Default: 10000.0, Description: "minimum category revenue"},
		},
		Columns: []string{"category", "units_sold", "revenue"},
		SQL: `
            SELECT p.category,
                   SUM(oi.quantity) AS units_sold,
                   SUM(oi.subtotal)::float8 AS revenue
            FROM order_items oi
            JOIN products p ON p.product_id = oi.product_id
            GROUP BY p.category
            HAVING SUM(oi.subtotal) >= $1
            ORDER BY revenue DESC`,
	})
}
