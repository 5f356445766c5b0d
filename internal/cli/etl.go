package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fleximart/fleximart-datakit/internal/db"
	"github.com/fleximart/fleximart-datakit/internal/etl"
	"github.com/fleximart/fleximart-datakit/internal/logging"
)

var (
	etlCustomersFile string
	etlProductsFile  string
	etlSalesFile     string
	etlQualityReport string

	sampleDir       string
	sampleCustomers int
	sampleProducts  int
	sampleSales     int
	sampleSeed      uint64
)

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Clean raw CSV exports and load them into the store",
	Long: `Run the FlexiMart ETL pipeline: read raw CSV exports of customers,
products and sales, clean them (duplicates, missing values, phone and
date normalization), load the result into the operational store, and
write a data quality report.`,
}

var etlRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full ETL pipeline",
	Long: `Run the full ETL pipeline against the configured raw CSV files.
The store schema is created if it does not exist yet.

Example:
  fleximart-datakit etl run --customers customers_raw.csv \
    --products products_raw.csv --sales sales_raw.csv \
    --connection "postgres://..."`,
	RunE: runETL,
}

var etlSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate dirty sample CSV files for the pipeline",
	Long: `Generate raw customers, products and sales CSV files seeded with the
kinds of problems the pipeline cleans: duplicate rows, missing values,
inconsistent phone and date formats, and dangling references. No
database connection is needed.

Example:
  fleximart-datakit etl sample --dir ./data --customers 500 --sales 2000`,
	RunE: runETLSample,
}

func init() {
	etlRunCmd.Flags().StringVar(&etlCustomersFile, "customers", "",
		"path to the raw customers CSV")
	etlRunCmd.Flags().StringVar(&etlProductsFile, "products", "",
		"path to the raw products CSV")
	etlRunCmd.Flags().StringVar(&etlSalesFile, "sales", "",
		"path to the raw sales CSV")
	etlRunCmd.Flags().StringVar(&etlQualityReport, "quality-report", "",
		"path for the data quality report (empty to skip)")

	sampleDefaults := etl.DefaultSampleConfig()
	etlSampleCmd.Flags().StringVar(&sampleDir, "dir", sampleDefaults.Dir,
		"directory to write the sample CSV files into")
	etlSampleCmd.Flags().IntVar(&sampleCustomers, "customers", sampleDefaults.Customers,
		"number of raw customer rows to generate")
	etlSampleCmd.Flags().IntVar(&sampleProducts, "products", sampleDefaults.Products,
		"number of raw product rows to generate")
	etlSampleCmd.Flags().IntVar(&sampleSales, "sales", sampleDefaults.Sales,
		"number of raw sales rows to generate")
	etlSampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 0,
		"random seed for reproducible output (0 picks one)")

	etlCmd.AddCommand(etlRunCmd)
	etlCmd.AddCommand(etlSampleCmd)
}

func runETL(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if etlCustomersFile != "" {
		cfg.ETL.CustomersFile = etlCustomersFile
	}
	if etlProductsFile != "" {
		cfg.ETL.ProductsFile = etlProductsFile
	}
	if etlSalesFile != "" {
		cfg.ETL.SalesFile = etlSalesFile
	}
	if cmd.Flags().Changed("quality-report") {
		cfg.ETL.QualityReport = etlQualityReport
	}

	if err := cfg.ValidateETL(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	res, err := etl.Run(ctx, pool, cfg.ETL)
	if err != nil {
		return fmt.Errorf("etl run failed: %w", err)
	}

	cmd.Printf("ETL run %s finished in %s\n",
		res.RunID, res.FinishedAt.Sub(res.StartedAt).Round(time.Millisecond))
	cmd.Printf("  customers:   %d loaded (%d duplicates removed, %d missing handled)\n",
		res.Load.CustomersLoaded, res.Customers.DuplicatesRemoved, res.Customers.MissingHandled)
	cmd.Printf("  products:    %d loaded (%d duplicates removed, %d missing handled)\n",
		res.Load.ProductsLoaded, res.Products.DuplicatesRemoved, res.Products.MissingHandled)
	cmd.Printf("  orders:      %d loaded with %d line items (%d duplicate sales removed)\n",
		res.Load.OrdersLoaded, res.Load.OrderItemsLoaded, res.Sales.DuplicatesRemoved)
	if cfg.ETL.QualityReport != "" {
		cmd.Printf("  quality report written to %s\n", cfg.ETL.QualityReport)
	}

	return nil
}

func runETLSample(cmd *cobra.Command, args []string) error {
	sampleCfg := etl.SampleConfig{
		Dir:       sampleDir,
		Customers: sampleCustomers,
		Products:  sampleProducts,
		Sales:     sampleSales,
		Seed:      sampleSeed,
	}

	if err := etl.WriteSampleData(sampleCfg); err != nil {
		return fmt.Errorf("failed to generate sample data: %w", err)
	}

	logging.Info().
		Str("customers", filepath.Join(sampleCfg.Dir, "customers_raw.csv")).
		Str("products", filepath.Join(sampleCfg.Dir, "products_raw.csv")).
		Str("sales", filepath.Join(sampleCfg.Dir, "sales_raw.csv")).
		Msg("Sample data written")

	return nil
}
