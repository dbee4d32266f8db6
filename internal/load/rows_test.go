package load

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/careload/internal/model"
	"github.com/gyeh/careload/internal/normalize"
)

func validEncounter() model.EncounterRow {
	return model.EncounterRow{
		PatientID:   "11",
		PatientName: "Asha Rao",
		Gender:      "Female",
		Age:         "34",

		ProviderID:         "7",
		ProviderName:       "Dr. Mehta",
		SpecialityID:       "2",
		SpecialityName:     "Cardiology",
		AffiliatedHospital: "Mayo Clinic",

		DiseaseID:        "3",
		DiseaseName:      "Dengue",
		DiseaseType:      "Infectious",
		Severity:         "High",
		TransmissionMode: "Vector",
		MortalityRate:    "2.5",

		Country: "United States",
		State:   "Washington",
		City:    "Seattle",

		TreatmentID:       "101",
		TreatmentType:     "Medication",
		StartDate:         "2023-01-01",
		CompletionDate:    "2023-01-10",
		OutcomeDate:       "2023-01-15",
		OutcomeStatus:     "Successful",
		TreatmentDuration: "9",
		TreatmentCost:     "8500",
	}
}

func TestPrepareRow_Valid(t *testing.T) {
	row, skip := prepareRow(validEncounter(), 1, 85)
	require.Nil(t, skip)

	assert.Equal(t, int64(101), row.TreatmentID)
	assert.Equal(t, int64(11), row.PatientID)
	assert.Equal(t, int64(7), row.ProviderID)
	assert.Equal(t, int64(3), row.DiseaseID)

	assert.Equal(t, "Asha", row.PatientFirst)
	assert.Equal(t, "Rao", row.PatientLast)
	assert.Equal(t, "Dr.", row.ProviderFirst)
	assert.Equal(t, "Mehta", row.ProviderLast)

	require.NotNil(t, row.Age)
	assert.Equal(t, int32(34), *row.Age)
	require.NotNil(t, row.StartDate)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), *row.StartDate)
	assert.Equal(t, time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), row.CompletionDate)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), row.OutcomeDate)

	require.NotNil(t, row.Cost)
	assert.Equal(t, 100.00, *row.Cost)
	require.NotNil(t, row.MortalityRate)
	assert.Equal(t, 2.5, *row.MortalityRate)
}

func TestPrepareRow_SkipReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.EncounterRow)
		reason string
	}{
		{"non-numeric treatment id", func(r *model.EncounterRow) { r.TreatmentID = "abc" }, "bad treatment_id"},
		{"non-positive treatment id", func(r *model.EncounterRow) { r.TreatmentID = "-3" }, "bad treatment_id"},
		{"empty patient id", func(r *model.EncounterRow) { r.PatientID = "" }, "bad patient_id"},
		{"zero provider id", func(r *model.EncounterRow) { r.ProviderID = "0" }, "bad provider_id"},
		{"non-numeric disease id", func(r *model.EncounterRow) { r.DiseaseID = "x" }, "bad disease_id"},
		{"missing city", func(r *model.EncounterRow) { r.City = "" }, "incomplete location"},
		{"missing country", func(r *model.EncounterRow) { r.Country = "" }, "incomplete location"},
		{"garbage completion date", func(r *model.EncounterRow) { r.CompletionDate = "soon" }, "bad completion date"},
		{"empty outcome date", func(r *model.EncounterRow) { r.OutcomeDate = "" }, "bad outcome date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := validEncounter()
			tt.mutate(&enc)
			_, skip := prepareRow(enc, 1, 85)
			require.NotNil(t, skip)
			assert.Equal(t, tt.reason, skip.Reason)
		})
	}
}

func TestPrepareRow_OptionalFieldsDegradeToNil(t *testing.T) {
	enc := validEncounter()
	enc.Age = ""
	enc.TreatmentCost = ""
	enc.StartDate = ""
	enc.MortalityRate = "n/a"

	row, skip := prepareRow(enc, 1, 85)
	require.Nil(t, skip)
	assert.Nil(t, row.Age)
	assert.Nil(t, row.Cost)
	assert.Nil(t, row.StartDate)
	assert.Nil(t, row.MortalityRate)
}

func TestParseInt32_FloatFallback(t *testing.T) {
	got := parseInt32("42.0")
	require.NotNil(t, got)
	assert.Equal(t, int32(42), *got)

	assert.Nil(t, parseInt32("forty-two"))
	assert.Nil(t, parseInt32(""))
}

func TestReadBatch_SkipsAndCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.csv")
	csv := "treatment_id,patient_id,provider_id,disease_id,country,state,city,treatment_completion_date,treatment_outcome_date\n" +
		"1,10,20,30,India,Karnataka,Bangalore,2023-01-10,2023-01-15\n" +
		"bad,10,20,30,India,Karnataka,Bangalore,2023-01-10,2023-01-15\n" +
		"2,11,20,30,India,Karnataka,Bangalore,2023-01-10,2023-01-15\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	sum := &model.LoadSummary{SkipReasons: make(map[string]int64)}
	rows, err := ReadBatch(zerolog.Nop(), path, normalize.DefaultTable(), sum)
	require.NoError(t, err)

	assert.Len(t, rows, 2)
	assert.Equal(t, int64(3), sum.RowsRead)
	assert.Equal(t, int64(1), sum.RowsSkipped)
	assert.Equal(t, int64(1), sum.SkipReasons["bad treatment_id"])

	// Reference tables applied before preparation.
	assert.Equal(t, "United States", rows[0].Country)
	assert.Equal(t, "California", rows[0].State)
	assert.Equal(t, "Los Angeles", rows[0].City)

	// Input order preserved, source row numbers point at the raw file.
	assert.Equal(t, int64(1), rows[0].SourceRowNumber)
	assert.Equal(t, int64(3), rows[1].SourceRowNumber)
}
