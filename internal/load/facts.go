package load

import (
	"context"
	"fmt"
	"strings"

	"github.com/gyeh/careload/internal/model"
)

const insertTreatmentSQL = `INSERT INTO warehouse.treatment (treatment_id, start_date, completion_date, outcome_date, outcome_quarter, treatment_duration, cost, effectiveness_score, type, patient_id, provider_id, location_id, disease_id, outcome_day, outcome_weekend_flag, report_duration)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (treatment_id) DO NOTHING`

// insertTreatment computes the derived temporal fields and inserts the fact
// row. Insert is keyed by treatment_id: re-loading a known treatment is a
// no-op, never an update. Dimension resolution must already have happened
// for this row; an unresolved location key here is a programming defect and
// aborts the batch.
func (l *Loader) insertTreatment(ctx context.Context, row *model.Row, locationID int64) error {
	if locationID <= 0 {
		return fmt.Errorf("location not resolved before fact insert")
	}
	if l.scores == nil {
		return fmt.Errorf("effectiveness vocabulary not seeded before fact insert")
	}

	d := DeriveOutcome(row.OutcomeDate, row.CompletionDate)
	score := l.resolveScore(row.OutcomeStatus)

	tag, err := l.q.Exec(ctx, insertTreatmentSQL,
		row.TreatmentID, row.StartDate, row.CompletionDate, row.OutcomeDate,
		d.Quarter, row.TreatmentDuration, row.Cost, score,
		nilIfEmpty(row.TreatmentType), row.PatientID, row.ProviderID, locationID, row.DiseaseID,
		d.Day, d.WeekendFlag, d.ReportDuration)
	if err != nil {
		return fmt.Errorf("insert treatment: %w", err)
	}
	l.sum.TreatmentsInserted += tag.RowsAffected()
	return nil
}

// resolveScore maps an outcome status to its effectiveness score by
// case-insensitive match. An unmatched status resolves to NULL, never a
// silent default.
func (l *Loader) resolveScore(status string) *int32 {
	if score, ok := l.scores[strings.ToLower(strings.TrimSpace(status))]; ok {
		return &score
	}
	return nil
}
