package load

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/careload/internal/model"
	"github.com/gyeh/careload/internal/normalize"
	"github.com/gyeh/careload/internal/recordread"
)

const readBatchSize = 1024

// skipError marks a row-preparation failure that skips the row without
// failing the batch. The reason is tallied in the summary.
type skipError struct {
	Reason string
	Detail string
}

func (e *skipError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// ReadBatch streams the batch file, applies the reference tables, and
// prepares typed rows. Malformed rows are skipped with a recorded reason;
// only I/O failures abort the read.
func ReadBatch(log zerolog.Logger, path string, table *normalize.Table, sum *model.LoadSummary) ([]model.Row, error) {
	start := time.Now()

	reader, err := recordread.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var rows []model.Row
	buf := make([]model.EncounterRow, readBatchSize)
	var rowNum int64

	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			rowNum++
			sum.RowsRead++

			prepared, prepErr := prepareRow(table.Apply(buf[i]), rowNum, table.ExchangeRate)
			if prepErr != nil {
				sum.Skip(prepErr.Reason)
				log.Warn().Int64("row", rowNum).Str("reason", prepErr.Reason).
					Str("detail", prepErr.Detail).Msg("row skipped")
				continue
			}
			rows = append(rows, prepared)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read batch at row %d: %w", rowNum, readErr)
		}
	}

	sum.DurationRead = time.Since(start)
	log.Info().
		Int64("rows_read", sum.RowsRead).
		Int64("rows_skipped", sum.RowsSkipped).
		Str("duration", sum.DurationRead.String()).
		Msg("batch read complete")

	return rows, nil
}

// prepareRow parses a normalized raw row into its typed form. Natural keys,
// the location triple, and the completion/outcome dates are required; other
// fields degrade to NULL.
func prepareRow(r model.EncounterRow, rowNum int64, rate float64) (model.Row, *skipError) {
	var row model.Row
	row.SourceRowNumber = rowNum

	var err error
	if row.TreatmentID, err = parseKey(r.TreatmentID); err != nil {
		return row, &skipError{"bad treatment_id", r.TreatmentID}
	}
	if row.PatientID, err = parseKey(r.PatientID); err != nil {
		return row, &skipError{"bad patient_id", r.PatientID}
	}
	if row.ProviderID, err = parseKey(r.ProviderID); err != nil {
		return row, &skipError{"bad provider_id", r.ProviderID}
	}
	if row.DiseaseID, err = parseKey(r.DiseaseID); err != nil {
		return row, &skipError{"bad disease_id", r.DiseaseID}
	}

	// A null component of the location triple would corrupt composite-key
	// resolution, so the row is rejected rather than inserted with nulls.
	if r.Country == "" || r.State == "" || r.City == "" {
		return row, &skipError{"incomplete location", fmt.Sprintf("%q/%q/%q", r.Country, r.State, r.City)}
	}
	row.Country, row.State, row.City = r.Country, r.State, r.City

	completion := normalize.ParseDate(r.CompletionDate)
	if completion == nil {
		return row, &skipError{"bad completion date", r.CompletionDate}
	}
	outcome := normalize.ParseDate(r.OutcomeDate)
	if outcome == nil {
		return row, &skipError{"bad outcome date", r.OutcomeDate}
	}
	row.CompletionDate = *completion
	row.OutcomeDate = *outcome
	row.StartDate = normalize.ParseDate(r.StartDate)

	row.PatientFirst, row.PatientLast = normalize.SplitName(r.PatientName)
	row.PatientName = r.PatientName
	row.Gender = r.Gender
	row.Age = parseInt32(r.Age)

	row.ProviderFirst, row.ProviderLast = normalize.SplitName(r.ProviderName)
	row.SpecialityID = parseInt32(r.SpecialityID)
	row.SpecialityName = r.SpecialityName
	row.AffiliatedHospital = r.AffiliatedHospital

	row.DiseaseName = r.DiseaseName
	row.DiseaseType = r.DiseaseType
	row.Severity = r.Severity
	row.TransmissionMode = r.TransmissionMode
	row.MortalityRate = parseFloat64(r.MortalityRate)

	row.TreatmentType = r.TreatmentType
	row.OutcomeStatus = r.OutcomeStatus
	row.TreatmentDuration = parseInt32(r.TreatmentDuration)
	if raw := parseFloat64(r.TreatmentCost); raw != nil {
		cost := normalize.ConvertCost(*raw, rate)
		row.Cost = &cost
	}

	return row, nil
}

func parseKey(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("non-positive key %d", v)
	}
	return v, nil
}

func parseInt32(s string) *int32 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		// Some sources emit integer columns as floats ("42.0").
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return nil
		}
		v = int64(f)
	}
	i := int32(v)
	return &i
}

func parseFloat64(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
