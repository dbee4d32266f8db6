package load

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gyeh/careload/internal/db"
	"github.com/gyeh/careload/internal/model"
	"github.com/gyeh/careload/internal/normalize"
)

const (
	selectLedgerSQL = `SELECT batch_id, status FROM ingest.load_ledger WHERE source_file_sha256 = $1`

	registerLedgerSQL = `INSERT INTO ingest.load_ledger (batch_id, source_file_name, source_file_sha256, file_size_bytes, status)
VALUES ($1, $2, $3, $4, 'pending')
ON CONFLICT (source_file_sha256) DO UPDATE
SET batch_id = excluded.batch_id, status = 'pending', rows_loaded = NULL, started_at = now(), completed_at = NULL`

	finishLedgerSQL = `UPDATE ingest.load_ledger
SET status = $2, rows_loaded = $3, completed_at = now()
WHERE batch_id = $1`
)

// PreflightResult holds context resolved before any warehouse write.
type PreflightResult struct {
	FilePath   string
	FileSHA256 string
	FileSize   int64
	// BatchID is a freshly generated UUIDv4 identifying this load run.
	BatchID uuid.UUID
	// AlreadyLoaded is true when the file's digest is recorded in the ledger
	// with status "loaded" and force mode is off.
	AlreadyLoaded bool
}

// Preflight hashes the batch file and consults the load ledger. The ledger
// replaces the original flat processed-file marker list: batches are keyed
// by content digest, so a renamed copy of a loaded file is still skipped.
func Preflight(ctx context.Context, q db.Querier, log zerolog.Logger, filePath string, force bool) (*PreflightResult, error) {
	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	pf := &PreflightResult{
		FilePath:   filePath,
		FileSHA256: sha,
		FileSize:   stat.Size(),
		BatchID:    uuid.New(),
	}

	var prevBatch uuid.UUID
	var status string
	err = q.QueryRow(ctx, selectLedgerSQL, sha).Scan(&prevBatch, &status)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// first sight
	case err != nil:
		return nil, fmt.Errorf("preflight ledger lookup: %w", err)
	case status == "loaded" && !force:
		pf.BatchID = prevBatch
		pf.AlreadyLoaded = true
		return pf, nil
	}

	if _, err := q.Exec(ctx, registerLedgerSQL, pf.BatchID, filepath.Base(filePath), sha, stat.Size()); err != nil {
		return nil, fmt.Errorf("preflight register batch: %w", err)
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Str("batch_id", pf.BatchID.String()).
		Msg("preflight complete")
	return pf, nil
}

// finishLedger records the terminal status of a batch. Called with the batch
// transaction for "loaded" so the mark commits atomically with the data, and
// with the pool (best effort) for "failed".
func finishLedger(ctx context.Context, q db.Querier, batchID uuid.UUID, status string, sum *model.LoadSummary) error {
	_, err := q.Exec(ctx, finishLedgerSQL, batchID, status, sum.TreatmentsInserted)
	return err
}
