//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Portions copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for fleximart-datakit.
// Configuration is loaded from config files, FLEXIMART_* environment
// variables (a .env file is honored when present), and CLI flags.
// Precedence: CLI flags > environment > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for fleximart-datakit.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Mongo holds settings for the product catalog document store.
	Mongo MongoConfig `mapstructure:"mongo"`

	// ETL holds configuration for the etl subcommand.
	ETL ETLConfig `mapstructure:"etl"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`
}

// MongoConfig holds MongoDB settings for the product catalog.
type MongoConfig struct {
	// URI is the MongoDB connection URI.
	URI string `mapstructure:"uri"`

	// Database is the catalog database name.
	Database string `mapstructure:"database"`

	// Collection is the product collection name.
	Collection string `mapstructure:"collection"`
}

// ETLConfig holds configuration for the CSV cleaning pipeline.
type ETLConfig struct {
	// CustomersFile is the path to the raw customers CSV.
	CustomersFile string `mapstructure:"customers_file"`

	// ProductsFile is the path to the raw products CSV.
	ProductsFile string `mapstructure:"products_file"`

	// SalesFile is the path to the raw sales CSV.
	SalesFile string `mapstructure:"sales_file"`

	// QualityReport is where the data quality report is written.
	QualityReport string `mapstructure:"quality_report"`
}

// ReportConfig holds configuration for report rendering.
type ReportConfig struct {
	// Format is the output format: table, markdown, csv, or xlsx.
	Format string `mapstructure:"format"`
}

// ReportFormats lists the supported report output formats.
var ReportFormats = []string{"table", "markdown", "csv", "xlsx"}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "fleximart",
			Collection: "products",
		},
		ETL: ETLConfig{
			CustomersFile: "customers_raw.csv",
			ProductsFile:  "products_raw.csv",
			SalesFile:     "sales_raw.csv",
			QualityReport: "data_quality_report.txt",
		},
		Report: ReportConfig{
			Format: "table",
		},
	}
}

// defaultKeys registers every config key with its default so that
// AutomaticEnv lookups resolve during Unmarshal.
func defaultKeys(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("connection", d.Connection)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("mongo.uri", d.Mongo.URI)
	v.SetDefault("mongo.database", d.Mongo.Database)
	v.SetDefault("mongo.collection", d.Mongo.Collection)
	v.SetDefault("etl.customers_file", d.ETL.CustomersFile)
	v.SetDefault("etl.products_file", d.ETL.ProductsFile)
	v.SetDefault("etl.sales_file", d.ETL.SalesFile)
	v.SetDefault("etl.quality_report", d.ETL.QualityReport)
	v.SetDefault("report.format", d.Report.Format)
}

// Load reads configuration from config files and the environment.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./fleximart-datakit.yaml
// 3. ~/.config/fleximart-datakit/fleximart-datakit.yaml
// Environment variables use the FLEXIMART_ prefix with underscores for
// nesting, e.g. FLEXIMART_CONNECTION, FLEXIMART_MONGO_URI.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("fleximart-datakit")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "fleximart-datakit"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Environment overrides
	v.SetEnvPrefix("FLEXIMART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaultKeys(v)

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file and environment values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateETL checks configuration required for the etl run command.
func (c *Config) ValidateETL() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ETL.CustomersFile == "" {
		return fmt.Errorf("customers file is required for etl")
	}
	if c.ETL.ProductsFile == "" {
		return fmt.Errorf("products file is required for etl")
	}
	if c.ETL.SalesFile == "" {
		return fmt.Errorf("sales file is required for etl")
	}
	return nil
}

// ValidateReport checks configuration required for the report run command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	for _, f := range ReportFormats {
		if c.Report.Format == f {
			return nil
		}
	}
	return fmt.Errorf("report format must be one of: %s", strings.Join(ReportFormats, ", "))
}

// ValidateCatalog checks configuration required for catalog commands.
func (c *Config) ValidateCatalog() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo URI is required for catalog commands")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo database is required for catalog commands")
	}
	if c.Mongo.Collection == "" {
		return fmt.Errorf("mongo collection is required for catalog commands")
	}
	return nil
}
