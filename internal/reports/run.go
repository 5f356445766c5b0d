//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package reports

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fleximart/fleximart-datakit/internal/db"
	"github.com/fleximart/fleximart-datakit/internal/logging"
)

// Result is a rendered-ready report: column names plus every row as
// strings, money already formatted to two decimals.
type Result struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// BindArgs resolves a report's parameters against caller-supplied
// string arguments, in declaration order. Missing arguments take the
// declared default; unknown argument names are rejected.
func BindArgs(def Definition, args map[string]string) ([]any, error) {
	for name := range args {
		known := false
		for _, p := range def.Params {
			if p.Name == name {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("report %s has no parameter %q", def.Name, name)
		}
	}

	bound := make([]any, 0, len(def.Params))
	for _, p := range def.Params {
		raw, ok := args[p.Name]
		if !ok {
			bound = append(bound, p.Default)
			continue
		}

		switch p.Kind {
		case "int":
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %q wants an integer, got %q", p.Name, raw)
			}
			bound = append(bound, v)
		case "float":
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %q wants a number, got %q", p.Name, raw)
			}
			bound = append(bound, v)
		default:
			bound = append(bound, raw)
		}
	}
	return bound, nil
}

// Run executes a registered report and collects its rows as formatted
// strings.
func Run(ctx context.Context, q db.Querier, name string, args map[string]string) (*Result, error) {
	def, err := Get(name)
	if err != nil {
		return nil, err
	}

	bound, err := BindArgs(def, args)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := q.Query(ctx, def.SQL, bound...)
	if err != nil {
		return nil, fmt.Errorf("report %s failed to run: %w", name, err)
	}
	defer rows.Close()

	result := &Result{Name: def.Name, Columns: def.Columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("report %s failed to read a row: %w", name, err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report %s failed: %w", name, err)
	}

	logging.Debug().
		Str("report", name).
		Int("rows", len(result.Rows)).
		Dur("elapsed", time.Since(start)).
		Msg("Report executed")

	return result, nil
}

// formatValue renders a query value for tabular output. Floats carry
// two decimals since every float column is money.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', 2, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}
