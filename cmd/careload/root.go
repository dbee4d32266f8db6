package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/careload/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "careload",
	Short: "Healthcare encounter batch → Postgres warehouse loader",
	Long:  "Reads raw per-encounter batch files (CSV or Parquet), normalizes locale-specific fields, and loads them into a star-schema warehouse with SCD Type 2 provider history.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}
