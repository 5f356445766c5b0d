// Package main is the entry point for fleximart-datakit.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fleximart/fleximart-datakit/internal/cli"
)

func main() {
	// Load FLEXIMART_* variables from a .env file when present
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
