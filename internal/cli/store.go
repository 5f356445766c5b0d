package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleximart/fleximart-datakit/internal/db"
	"github.com/fleximart/fleximart-datakit/internal/logging"
	"github.com/fleximart/fleximart-datakit/internal/store"
)

var storeDropExisting bool

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the PostgreSQL operational store",
	Long: `Manage the operational store: the customers, products, orders and
order_items tables that the ETL pipeline loads cleaned data into.`,
}

var storeInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the operational store schema",
	Long: `Create the operational store schema. The schema is created with
IF NOT EXISTS, so init is safe to repeat; use --drop-existing to start
from a clean slate.

Example:
  fleximart-datakit store init --connection "postgres://..."`,
	RunE: runStoreInit,
}

var storeValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run consistency checks against the operational store",
	Long: `Run consistency checks against the operational store: row presence,
orphaned order references, and order totals reconciling with their line
items. Exits non-zero if any check fails.`,
	RunE: runStoreValidate,
}

func init() {
	storeInitCmd.Flags().BoolVar(&storeDropExisting, "drop-existing", false,
		"drop existing store tables before creating the schema")

	storeCmd.AddCommand(storeInitCmd)
	storeCmd.AddCommand(storeValidateCmd)
}

func runStoreInit(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if storeDropExisting {
		logging.Info().Msg("Dropping existing store schema")
		if err := store.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DeleteMetadataPrefix(ctx, pool, "etl_"); err != nil {
			return err
		}
	}

	logging.Info().Msg("Creating store schema")
	if err := store.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logging.Info().
		Strs("tables", store.Tables()).
		Msg("Store schema ready")

	return nil
}

func runStoreValidate(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	results, err := store.Validate(ctx, pool)
	if err != nil {
		return fmt.Errorf("store validation could not run: %w", err)
	}

	for _, r := range results {
		if r.Passed {
			logging.Info().
				Str("check", r.Name).
				Str("detail", r.Detail).
				Msg("Check passed")
		} else {
			logging.Error().
				Str("check", r.Name).
				Int("violations", r.Violations).
				Str("detail", r.Detail).
				Msg("Check failed")
		}
	}

	if store.Failed(results) {
		return fmt.Errorf("store validation failed")
	}

	logging.Info().Int("checks", len(results)).Msg("Store validation passed")
	return nil
}
