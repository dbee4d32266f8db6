package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/careload/internal/db"
	"github.com/gyeh/careload/internal/exitcode"
	"github.com/gyeh/careload/internal/load"
	"github.com/gyeh/careload/internal/logging"
	"github.com/gyeh/careload/internal/normalize"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a batch file into the warehouse",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to batch file, CSV or Parquet (required)")
	f.StringVar(&cfg.MappingsPath, "mappings", "", "YAML lookup-table file overriding the built-in mappings")
	f.StringVar(&cfg.AsOf, "as-of", "", "As-of timestamp for provider validity stamping (RFC3339 or YYYY-MM-DD, default now)")
	f.BoolVar(&cfg.Force, "force", false, "Re-load even if the file digest is already in the ledger")
	f.IntVar(&cfg.MaxSkipped, "max-skipped", -1, "Fail the batch when more than this many rows are skipped (-1 = unlimited)")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	table, err := loadTable()
	if err != nil {
		log.Error().Err(err).Msg("mappings load failed")
		os.Exit(exitcode.ValidationError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := load.Run(ctx, pool, log, &cfg, table)
	if err != nil {
		if pe, ok := err.(*load.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "read":
				os.Exit(exitcode.ReadError)
			default:
				os.Exit(exitcode.LoadError)
			}
		}
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.LoadError)
	}

	if summary.AlreadyLoaded {
		fmt.Printf("Batch already loaded (sha256 %s); nothing to do\n", summary.FileSHA256)
		return nil
	}
	fmt.Printf("Load complete: %d treatments, %d provider versions, %d rows skipped (%.1fs)\n",
		summary.TreatmentsInserted, summary.ProvidersInserted, summary.RowsSkipped,
		summary.DurationTotal.Seconds())
	return nil
}

func loadTable() (*normalize.Table, error) {
	if cfg.MappingsPath == "" {
		return normalize.DefaultTable(), nil
	}
	return normalize.LoadTableFromFile(cfg.MappingsPath)
}
