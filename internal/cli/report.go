package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleximart/fleximart-datakit/internal/datagen"
	"github.com/fleximart/fleximart-datakit/internal/db"
	"github.com/fleximart/fleximart-datakit/internal/logging"
	"github.com/fleximart/fleximart-datakit/internal/reports"
)

var (
	reportArgs   []string
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run canned analytics reports",
	Long: `Run the canned FlexiMart analytics reports against the operational
store or the warehouse. Reports render as an aligned table by default
and can also be written as markdown, CSV or an Excel workbook.`,
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available reports and their parameters",
	Run:   runReportList,
}

var reportRunCmd = &cobra.Command{
	Use:   "run NAME",
	Short: "Run a report by name",
	Long: `Run a report by name. Parameters are passed as repeated --arg
name=value flags; unset parameters use their defaults.

Examples:
  fleximart-datakit report run top-products
  fleximart-datakit report run top-products --arg limit=5 --format markdown
  fleximart-datakit report run monthly-sales --format xlsx --out monthly.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportRunCmd.Flags().StringArrayVar(&reportArgs, "arg", nil,
		"report parameter as name=value (repeatable)")
	reportRunCmd.Flags().StringVar(&reportFormat, "format", "",
		"output format (table, markdown, csv, xlsx)")
	reportRunCmd.Flags().StringVar(&reportOut, "out", "",
		"write output to a file instead of stdout (required for xlsx)")

	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportRunCmd)
}

func runReportList(cmd *cobra.Command, args []string) {
	printSource := func(source reports.Source, title string) {
		cmd.Println(title)
		for _, def := range reports.All() {
			if def.Source != source {
				continue
			}
			cmd.Printf("  %-22s %s\n", def.Name, def.Description)
			for _, p := range def.Params {
				cmd.Printf("      --arg %s=%v (%s) %s\n", p.Name, p.Default, p.Kind, p.Description)
			}
		}
		cmd.Println()
	}

	printSource(reports.SourceWarehouse, "Warehouse reports:")
	printSource(reports.SourceStore, "Store reports:")
	cmd.Println("Use 'fleximart-datakit report run <name>' to run one.")
}

func runReport(cmd *cobra.Command, args []string) error {
	name := args[0]

	// Override config with CLI flags
	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}
	if err := cfg.ValidateReport(); err != nil {
		return err
	}
	if cfg.Report.Format == reports.FormatXLSX && reportOut == "" {
		return fmt.Errorf("xlsx output requires --out")
	}

	params := make(map[string]string)
	for _, pair := range reportArgs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return fmt.Errorf("invalid --arg %q, expected name=value", pair)
		}
		params[k] = v
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	res, err := reports.Run(ctx, pool, name, params)
	if err != nil {
		return err
	}

	if cfg.Report.Format == reports.FormatXLSX {
		if err := reports.WriteXLSX(reportOut, res); err != nil {
			return err
		}
		logReportFile(reportOut, res)
		return nil
	}

	if reportOut != "" {
		f, err := os.Create(reportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := reports.Render(f, res, cfg.Report.Format); err != nil {
			return err
		}
		logReportFile(reportOut, res)
		return nil
	}

	return reports.Render(cmd.OutOrStdout(), res, cfg.Report.Format)
}

func logReportFile(path string, res *reports.Result) {
	size := "unknown"
	if info, err := os.Stat(path); err == nil {
		size = datagen.FormatSize(info.Size())
	}
	logging.Info().
		Str("report", res.Name).
		Str("file", path).
		Str("size", size).
		Int("rows", len(res.Rows)).
		Msg("Report written")
}
