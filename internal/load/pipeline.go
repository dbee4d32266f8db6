package load

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/careload/internal/config"
	"github.com/gyeh/careload/internal/model"
	"github.com/gyeh/careload/internal/normalize"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full load pipeline: preflight → read → load → finalize.
// The load phase runs inside one transaction; a storage failure anywhere in
// it rolls back every write from this batch.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config, table *normalize.Table) (*model.LoadSummary, error) {
	totalStart := time.Now()
	sum := &model.LoadSummary{
		FilePath:    cfg.FilePath,
		SkipReasons: make(map[string]int64),
	}

	asOf, err := cfg.AsOfTime()
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	// Phase 1: Preflight — hash the file, consult the ledger.
	pf, err := Preflight(ctx, pool, log, cfg.FilePath, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}
	sum.FileSHA256 = pf.FileSHA256
	sum.BatchID = pf.BatchID.String()

	if pf.AlreadyLoaded {
		sum.AlreadyLoaded = true
		sum.DurationTotal = time.Since(totalStart)
		log.Info().
			Str("sha256", pf.FileSHA256).
			Msg("batch already loaded, skipping (use --force to re-load)")
		return sum, nil
	}

	// Phase 2: Read — stream, normalize, prepare typed rows.
	rows, err := ReadBatch(log, cfg.FilePath, table, sum)
	if err != nil {
		_ = finishLedger(ctx, pool, pf.BatchID, "failed", sum)
		return nil, &PipelineError{Phase: "read", Err: err}
	}

	if cfg.MaxSkipped >= 0 && sum.RowsSkipped > int64(cfg.MaxSkipped) {
		_ = finishLedger(ctx, pool, pf.BatchID, "failed", sum)
		return nil, &PipelineError{
			Phase: "read",
			Err:   fmt.Errorf("%d rows skipped exceeds threshold %d", sum.RowsSkipped, cfg.MaxSkipped),
		}
	}

	// Phase 3: Load — one transaction for the whole batch, rows in input order.
	loadStart := time.Now()
	tx, err := pool.Begin(ctx)
	if err != nil {
		_ = finishLedger(ctx, pool, pf.BatchID, "failed", sum)
		return nil, &PipelineError{Phase: "load", Err: fmt.Errorf("begin: %w", err)}
	}
	defer tx.Rollback(ctx)

	ld := NewLoader(tx, log, asOf, sum)
	if err := ld.SeedEffectiveness(ctx); err != nil {
		_ = finishLedger(ctx, pool, pf.BatchID, "failed", sum)
		return nil, &PipelineError{Phase: "load", Err: err}
	}

	for i := range rows {
		if err := ld.LoadRow(ctx, &rows[i]); err != nil {
			_ = finishLedger(ctx, pool, pf.BatchID, "failed", sum)
			return nil, &PipelineError{Phase: "load", Err: err}
		}
	}
	sum.DurationLoad = time.Since(loadStart)

	// Phase 4: Finalize — mark the ledger inside the same transaction so the
	// "loaded" mark commits atomically with the data.
	if err := finishLedger(ctx, tx, pf.BatchID, "loaded", sum); err != nil {
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		_ = finishLedger(ctx, pool, pf.BatchID, "failed", sum)
		return nil, &PipelineError{Phase: "finalize", Err: fmt.Errorf("commit: %w", err)}
	}

	sum.DurationTotal = time.Since(totalStart)
	log.Info().
		Int64("rows_read", sum.RowsRead).
		Int64("rows_skipped", sum.RowsSkipped).
		Int64("patients", sum.PatientsInserted).
		Int64("diseases", sum.DiseasesInserted).
		Int64("locations", sum.LocationsInserted).
		Int64("provider_versions", sum.ProvidersInserted).
		Int64("providers_closed", sum.ProvidersVersioned).
		Int64("treatments", sum.TreatmentsInserted).
		Int64("attribute_mismatches", sum.AttributeMismatches).
		Str("total_duration", sum.DurationTotal.String()).
		Msg("load pipeline complete")

	return sum, nil
}
