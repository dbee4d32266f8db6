package load

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/careload/internal/db"
	"github.com/gyeh/careload/internal/model"
)

// Loader applies one batch's rows to the warehouse. All writes go through a
// single Querier (the batch transaction), processed strictly in row order:
// every dimension lookup completes before its corresponding insert, and
// dimension resolution always precedes the fact insert for the same row.
type Loader struct {
	q    db.Querier
	log  zerolog.Logger
	asOf time.Time
	sum  *model.LoadSummary
	// scores caches the effectiveness vocabulary, lowercased status → score.
	scores map[string]int32
}

// NewLoader creates a Loader writing through q with the given as-of
// timestamp for provider validity stamping.
func NewLoader(q db.Querier, log zerolog.Logger, asOf time.Time, sum *model.LoadSummary) *Loader {
	return &Loader{q: q, log: log, asOf: asOf, sum: sum}
}

// LoadRow resolves all dimensions for the row and then inserts the fact.
func (l *Loader) LoadRow(ctx context.Context, row *model.Row) error {
	if err := l.resolvePatient(ctx, row); err != nil {
		return fmt.Errorf("row %d patient %d: %w", row.SourceRowNumber, row.PatientID, err)
	}
	if err := l.resolveDisease(ctx, row); err != nil {
		return fmt.Errorf("row %d disease %d: %w", row.SourceRowNumber, row.DiseaseID, err)
	}
	locationID, err := l.resolveLocation(ctx, row)
	if err != nil {
		return fmt.Errorf("row %d location: %w", row.SourceRowNumber, err)
	}
	if err := l.upsertProvider(ctx, row); err != nil {
		return fmt.Errorf("row %d provider %d: %w", row.SourceRowNumber, row.ProviderID, err)
	}
	if err := l.insertTreatment(ctx, row, locationID); err != nil {
		return fmt.Errorf("row %d treatment %d: %w", row.SourceRowNumber, row.TreatmentID, err)
	}
	return nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func eqInt32(a, b *int32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
