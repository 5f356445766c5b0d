//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for fleximart-datakit.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fleximart/fleximart-datakit/internal/config"
	"github.com/fleximart/fleximart-datakit/internal/logging"
	"github.com/fleximart/fleximart-datakit/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	mongoURI   string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "fleximart-datakit",
		Short: "FlexiMart retail data toolkit",
		Long: `fleximart-datakit manages the FlexiMart retail data stack across
three stores: it cleans raw CSV exports and loads them into the
PostgreSQL operational store, serves the product catalog with embedded
reviews from MongoDB, and seeds a star-schema warehouse with a curated
sales dataset for canned analytics reports.

The store, warehouse and report commands need a PostgreSQL connection;
the catalog commands need a MongoDB URI. etl sample works offline.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./fleximart-datakit.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "",
		"MongoDB connection URI for catalog commands")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(etlCmd)
	rootCmd.AddCommand(warehouseCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if mongoURI != "" {
		cfg.Mongo.URI = mongoURI
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so
// data-loading commands stop between batches instead of mid-insert.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	return ctx, cancel
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
