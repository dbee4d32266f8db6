package load

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/careload/internal/model"
	"github.com/gyeh/careload/internal/normalize"
)

func tempBatchFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	require.NoError(t, os.WriteFile(path, []byte("treatment_id\n1\n"), 0644))
	return path
}

func TestPreflight_FirstSight(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	path := tempBatchFile(t)
	wantSHA, err := normalize.FileHash(path)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT batch_id, status FROM ingest\.load_ledger`).
		WithArgs(wantSHA).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec(`INSERT INTO ingest\.load_ledger`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	pf, err := Preflight(context.Background(), mock, zerolog.Nop(), path, false)
	require.NoError(t, err)

	assert.False(t, pf.AlreadyLoaded)
	assert.Equal(t, wantSHA, pf.FileSHA256)
	assert.NotEqual(t, uuid.Nil, pf.BatchID)
	assert.Greater(t, pf.FileSize, int64(0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreflight_AlreadyLoaded(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	path := tempBatchFile(t)
	prev := uuid.New()

	mock.ExpectQuery(`SELECT batch_id, status FROM ingest\.load_ledger`).
		WillReturnRows(pgxmock.NewRows([]string{"batch_id", "status"}).AddRow(prev, "loaded"))

	pf, err := Preflight(context.Background(), mock, zerolog.Nop(), path, false)
	require.NoError(t, err)

	assert.True(t, pf.AlreadyLoaded)
	assert.Equal(t, prev, pf.BatchID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreflight_FailedBatchIsRetried(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	path := tempBatchFile(t)
	prev := uuid.New()

	mock.ExpectQuery(`SELECT batch_id, status FROM ingest\.load_ledger`).
		WillReturnRows(pgxmock.NewRows([]string{"batch_id", "status"}).AddRow(prev, "failed"))
	mock.ExpectExec(`INSERT INTO ingest\.load_ledger`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	pf, err := Preflight(context.Background(), mock, zerolog.Nop(), path, false)
	require.NoError(t, err)

	assert.False(t, pf.AlreadyLoaded)
	assert.NotEqual(t, prev, pf.BatchID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreflight_ForceReloads(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	path := tempBatchFile(t)
	prev := uuid.New()

	mock.ExpectQuery(`SELECT batch_id, status FROM ingest\.load_ledger`).
		WillReturnRows(pgxmock.NewRows([]string{"batch_id", "status"}).AddRow(prev, "loaded"))
	mock.ExpectExec(`INSERT INTO ingest\.load_ledger`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	pf, err := Preflight(context.Background(), mock, zerolog.Nop(), path, true)
	require.NoError(t, err)

	assert.False(t, pf.AlreadyLoaded)
	assert.NotEqual(t, prev, pf.BatchID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreflight_MissingFile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = Preflight(context.Background(), mock, zerolog.Nop(), "/nonexistent/batch.csv", false)
	require.Error(t, err)
}

func TestFinishLedger(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	batchID := uuid.New()
	sum := &model.LoadSummary{TreatmentsInserted: 5}

	mock.ExpectExec(`UPDATE ingest\.load_ledger`).
		WithArgs(batchID, "loaded", int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, finishLedger(context.Background(), mock, batchID, "loaded", sum))
	assert.NoError(t, mock.ExpectationsWereMet())
}
