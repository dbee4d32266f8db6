package load

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gyeh/careload/internal/model"
)

// effectivenessSeed is the fixed outcome-status vocabulary. Scores are
// ordinal: deceased is the worst outcome, successful the best.
var effectivenessSeed = []struct {
	ID     int32
	Status string
	Score  int32
}{
	{1, "deceased", 0},
	{2, "worsened", 1},
	{3, "unsuccessful", 2},
	{4, "partially successful", 3},
	{5, "stable", 4},
	{6, "successful", 5},
}

const (
	seedEffectivenessSQL = `INSERT INTO warehouse.effectiveness (effectiveness_id, outcome_status, effectiveness_score)
VALUES ($1, $2, $3)
ON CONFLICT (outcome_status) DO NOTHING`

	selectEffectivenessSQL = `SELECT lower(outcome_status), effectiveness_score FROM warehouse.effectiveness`

	selectPatientSQL = `SELECT first_name, last_name, gender, age FROM warehouse.patient WHERE patient_id = $1`

	insertPatientSQL = `INSERT INTO warehouse.patient (patient_id, first_name, last_name, full_name, gender, age)
VALUES ($1, $2, $3, $4, $5, $6)`

	selectDiseaseSQL = `SELECT name, type, severity, transmission_mode FROM warehouse.disease WHERE disease_id = $1`

	insertDiseaseSQL = `INSERT INTO warehouse.disease (disease_id, speciality_id, name, type, severity, transmission_mode, mortality_rate)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectLocationSQL = `SELECT location_id FROM warehouse.location WHERE country = $1 AND state = $2 AND city = $3`

	insertLocationSQL = `INSERT INTO warehouse.location (country, state, city)
VALUES ($1, $2, $3) RETURNING location_id`
)

// SeedEffectiveness populates the fixed outcome vocabulary and caches it for
// fact scoring. The insert is keyed by status text so repeated seeding never
// duplicates or mutates scores. Must run before any fact insert.
func (l *Loader) SeedEffectiveness(ctx context.Context) error {
	for _, e := range effectivenessSeed {
		tag, err := l.q.Exec(ctx, seedEffectivenessSQL, e.ID, e.Status, e.Score)
		if err != nil {
			return fmt.Errorf("seed effectiveness %q: %w", e.Status, err)
		}
		l.sum.EffectivenessSeeded += tag.RowsAffected()
	}

	rows, err := l.q.Query(ctx, selectEffectivenessSQL)
	if err != nil {
		return fmt.Errorf("load effectiveness vocabulary: %w", err)
	}
	defer rows.Close()

	l.scores = make(map[string]int32, len(effectivenessSeed))
	for rows.Next() {
		var status string
		var score int32
		if err := rows.Scan(&status, &score); err != nil {
			return fmt.Errorf("scan effectiveness row: %w", err)
		}
		l.scores[status] = score
	}
	return rows.Err()
}

// resolvePatient inserts the patient on first sight. A re-seen patient with
// different attributes is left untouched (first write wins); the mismatch is
// tallied so operators can detect upstream drift.
func (l *Loader) resolvePatient(ctx context.Context, row *model.Row) error {
	var first, last, gender *string
	var age *int32
	err := l.q.QueryRow(ctx, selectPatientSQL, row.PatientID).Scan(&first, &last, &gender, &age)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := l.q.Exec(ctx, insertPatientSQL,
			row.PatientID, nilIfEmpty(row.PatientFirst), nilIfEmpty(row.PatientLast),
			nilIfEmpty(row.PatientName), nilIfEmpty(row.Gender), row.Age); err != nil {
			return fmt.Errorf("insert patient: %w", err)
		}
		l.sum.PatientsInserted++
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup patient: %w", err)
	}

	if derefStr(first) != row.PatientFirst || derefStr(last) != row.PatientLast ||
		derefStr(gender) != row.Gender || !eqInt32(age, row.Age) {
		l.sum.AttributeMismatches++
	}
	return nil
}

// resolveDisease mirrors resolvePatient for the disease reference dimension.
func (l *Loader) resolveDisease(ctx context.Context, row *model.Row) error {
	var name, dtype, severity, transmission *string
	err := l.q.QueryRow(ctx, selectDiseaseSQL, row.DiseaseID).Scan(&name, &dtype, &severity, &transmission)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := l.q.Exec(ctx, insertDiseaseSQL,
			row.DiseaseID, row.SpecialityID, nilIfEmpty(row.DiseaseName), nilIfEmpty(row.DiseaseType),
			nilIfEmpty(row.Severity), nilIfEmpty(row.TransmissionMode), row.MortalityRate); err != nil {
			return fmt.Errorf("insert disease: %w", err)
		}
		l.sum.DiseasesInserted++
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup disease: %w", err)
	}

	if derefStr(name) != row.DiseaseName || derefStr(dtype) != row.DiseaseType ||
		derefStr(severity) != row.Severity || derefStr(transmission) != row.TransmissionMode {
		l.sum.AttributeMismatches++
	}
	return nil
}

// resolveLocation returns the surrogate key for the row's (country, state,
// city) triple, inserting it on first sight. Lookup-then-insert is safe here
// because batches run single-writer inside one transaction; a concurrent
// extension would need an upsert or advisory lock on the triple.
func (l *Loader) resolveLocation(ctx context.Context, row *model.Row) (int64, error) {
	var locationID int64
	err := l.q.QueryRow(ctx, selectLocationSQL, row.Country, row.State, row.City).Scan(&locationID)
	if errors.Is(err, pgx.ErrNoRows) {
		if err := l.q.QueryRow(ctx, insertLocationSQL, row.Country, row.State, row.City).Scan(&locationID); err != nil {
			return 0, fmt.Errorf("insert location: %w", err)
		}
		l.sum.LocationsInserted++
		return locationID, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup location: %w", err)
	}
	return locationID, nil
}
