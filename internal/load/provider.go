package load

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gyeh/careload/internal/model"
)

const (
	selectCurrentProviderSQL = `SELECT version_id, COALESCE(first_name, ''), COALESCE(last_name, ''), speciality_id, COALESCE(speciality_name, ''), COALESCE(affiliated_hospital, '')
FROM warehouse.provider
WHERE provider_id = $1 AND is_current`

	closeProviderVersionSQL = `UPDATE warehouse.provider
SET valid_to = $1, is_current = false
WHERE version_id = $2 AND is_current`

	insertProviderVersionSQL = `INSERT INTO warehouse.provider (provider_id, first_name, last_name, speciality_id, speciality_name, affiliated_hospital, valid_from, valid_to, is_current)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, true)`
)

// providerVersion is the current version of a provider as stored.
type providerVersion struct {
	VersionID          int64
	FirstName          string
	LastName           string
	SpecialityID       *int32
	SpecialityName     string
	AffiliatedHospital string
}

// providerChanged reports whether any tracked attribute differs between the
// stored current version and the incoming row. This is the broad versioning
// policy: a change to any of first name, last name, speciality id,
// speciality name, or affiliated hospital opens a new version, not just a
// hospital change.
func providerChanged(cur providerVersion, row *model.Row) bool {
	return cur.FirstName != row.ProviderFirst ||
		cur.LastName != row.ProviderLast ||
		!eqInt32(cur.SpecialityID, row.SpecialityID) ||
		cur.SpecialityName != row.SpecialityName ||
		cur.AffiliatedHospital != row.AffiliatedHospital
}

// upsertProvider applies Type 2 history semantics for the row's provider.
// First sight opens a current version. Attribute drift closes the current
// version at the batch's as-of timestamp and opens a new current one stamped
// with the same instant, keeping validity intervals contiguous. Unchanged
// rows are no-ops, so repeated loads of the same provider data create no new
// versions. When a provider appears multiple times in a batch, each
// occurrence compares against the then-current version, so the last-seen
// attribute values win.
func (l *Loader) upsertProvider(ctx context.Context, row *model.Row) error {
	var cur providerVersion
	err := l.q.QueryRow(ctx, selectCurrentProviderSQL, row.ProviderID).Scan(
		&cur.VersionID, &cur.FirstName, &cur.LastName,
		&cur.SpecialityID, &cur.SpecialityName, &cur.AffiliatedHospital)
	if errors.Is(err, pgx.ErrNoRows) {
		if err := l.insertProviderVersion(ctx, row); err != nil {
			return err
		}
		l.sum.ProvidersInserted++
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup current provider: %w", err)
	}

	if !providerChanged(cur, row) {
		return nil
	}

	tag, err := l.q.Exec(ctx, closeProviderVersionSQL, l.asOf, cur.VersionID)
	if err != nil {
		return fmt.Errorf("close provider version %d: %w", cur.VersionID, err)
	}
	if tag.RowsAffected() != 1 {
		// The version we just read is no longer current; only possible with
		// a concurrent writer, which this loader does not support.
		return fmt.Errorf("close provider version %d: expected 1 row, got %d", cur.VersionID, tag.RowsAffected())
	}

	if err := l.insertProviderVersion(ctx, row); err != nil {
		return err
	}
	l.sum.ProvidersInserted++
	l.sum.ProvidersVersioned++

	l.log.Debug().
		Int64("provider_id", row.ProviderID).
		Int64("closed_version", cur.VersionID).
		Str("hospital", row.AffiliatedHospital).
		Msg("provider version closed")
	return nil
}

func (l *Loader) insertProviderVersion(ctx context.Context, row *model.Row) error {
	if _, err := l.q.Exec(ctx, insertProviderVersionSQL,
		row.ProviderID, nilIfEmpty(row.ProviderFirst), nilIfEmpty(row.ProviderLast),
		row.SpecialityID, nilIfEmpty(row.SpecialityName), nilIfEmpty(row.AffiliatedHospital),
		l.asOf); err != nil {
		return fmt.Errorf("insert provider version: %w", err)
	}
	return nil
}
