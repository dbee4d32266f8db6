// mkfixture generates a synthetic encounter batch fixture for tests and
// local runs. Output is CSV or Parquet by extension of --out.
// Usage: go run ./cmd/mkfixture --out testdata/encounters-small.csv --rows 200
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/careload/internal/model"
)

var (
	states = []string{"Haryana", "Karnataka", "Maharashtra", "Punjab", "Tamil Nadu", "West Bengal"}
	cities = map[string][]string{
		"Haryana":     {"Faridabad"},
		"Karnataka":   {"Mysore", "Bangalore", "Mangalore"},
		"Maharashtra": {"Pune"},
		"Punjab":      {"Amritsar", "Chandigarh"},
		"Tamil Nadu":  {"Madurai"},
		"West Bengal": {"Darjeeling"},
	}
	hospitals = []string{
		"AIIMS", "Kokilaben Hospital", "Global Hospitals", "Narayana Health",
		"Fortis Hospital", "Manipal Hospital",
	}
	specialities = []string{"Cardiology", "Oncology", "Neurology", "Orthopedics", "General Medicine"}
	diseases     = []string{"Dengue", "Tuberculosis", "Diabetes", "Hypertension", "Malaria"}
	outcomes     = []string{"deceased", "worsened", "unsuccessful", "partially successful", "stable", "successful"}
	firstNames   = []string{"Asha", "Vikram", "Priya", "Rahul", "Sunita", "Arjun", "Meera", "Karan"}
	lastNames    = []string{"Rao", "Singh", "Patel", "Sharma", "Iyer", "Gupta", "Nair", "Das"}
)

func main() {
	out := flag.String("out", "testdata/encounters-small.csv", "output file (.csv or .parquet)")
	rows := flag.Int("rows", 200, "number of encounter rows")
	seed := flag.Int64("seed", 42, "rng seed for reproducible fixtures")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	batch := make([]model.EncounterRow, *rows)
	for i := range batch {
		batch[i] = randomEncounter(rng, int64(i+1))
	}

	var err error
	switch strings.ToLower(filepath.Ext(*out)) {
	case ".csv":
		err = writeCSV(*out, batch)
	case ".parquet":
		err = writeParquet(*out, batch)
	default:
		err = fmt.Errorf("unsupported output format: %s", *out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkfixture: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d rows to %s\n", *rows, *out)
}

func randomEncounter(rng *rand.Rand, n int64) model.EncounterRow {
	state := states[rng.Intn(len(states))]
	cityList := cities[state]
	providerID := rng.Int63n(40) + 1
	diseaseIdx := rng.Intn(len(diseases))
	start := fmt.Sprintf("2023-%02d-%02d", rng.Intn(12)+1, rng.Intn(28)+1)

	return model.EncounterRow{
		PatientID:   strconv.FormatInt(rng.Int63n(500)+1, 10),
		PatientName: pick(rng, firstNames) + " " + pick(rng, lastNames),
		Gender:      pick(rng, []string{"Male", "Female"}),
		Age:         strconv.Itoa(rng.Intn(90) + 1),

		ProviderID:         strconv.FormatInt(providerID, 10),
		ProviderName:       "Dr. " + pick(rng, lastNames),
		SpecialityID:       strconv.Itoa(diseaseIdx + 1),
		SpecialityName:     specialities[rng.Intn(len(specialities))],
		AffiliatedHospital: hospitals[providerID%int64(len(hospitals))],

		DiseaseID:        strconv.Itoa(diseaseIdx + 1),
		DiseaseName:      diseases[diseaseIdx],
		DiseaseType:      pick(rng, []string{"Infectious", "Chronic"}),
		Severity:         pick(rng, []string{"Low", "Medium", "High"}),
		TransmissionMode: pick(rng, []string{"Vector", "Airborne", "None"}),
		MortalityRate:    fmt.Sprintf("%.2f", rng.Float64()*10),

		Country: "India",
		State:   state,
		City:    cityList[rng.Intn(len(cityList))],

		TreatmentID:       strconv.FormatInt(n, 10),
		TreatmentType:     pick(rng, []string{"Medication", "Surgery", "Therapy"}),
		StartDate:         start,
		CompletionDate:    fmt.Sprintf("2023-%02d-%02d", rng.Intn(12)+1, rng.Intn(28)+1),
		OutcomeDate:       fmt.Sprintf("2024-%02d-%02d", rng.Intn(12)+1, rng.Intn(28)+1),
		OutcomeStatus:     pick(rng, outcomes),
		TreatmentDuration: strconv.Itoa(rng.Intn(120) + 1),
		TreatmentCost:     strconv.Itoa(rng.Intn(800000) + 5000),
	}
}

func pick(rng *rand.Rand, vals []string) string {
	return vals[rng.Intn(len(vals))]
}

func writeCSV(path string, batch []model.EncounterRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	cols := model.EncounterColumns()
	if err := w.Write(cols); err != nil {
		return err
	}
	record := make([]string, len(cols))
	for i := range batch {
		for j, c := range cols {
			record[j] = batch[i].Get(c)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeParquet(path string, batch []model.EncounterRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := goparquet.NewGenericWriter[model.EncounterRow](f)
	if _, err := w.Write(batch); err != nil {
		return err
	}
	return w.Close()
}
