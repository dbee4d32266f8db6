package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/careload/internal/model"
)

// Table holds the static lookup tables used to rewrite locale-specific
// fields on a batch, plus the exchange rate for currency conversion.
// Keys that do not appear in a table pass through unchanged.
type Table struct {
	States    map[string]string `yaml:"states"`
	Cities    map[string]string `yaml:"cities"`
	Countries map[string]string `yaml:"countries"`
	Hospitals map[string]string `yaml:"hospitals"`
	// ExchangeRate divides the source-currency cost to produce USD.
	ExchangeRate float64 `yaml:"exchange_rate"`
}

// DefaultTable returns the built-in lookup tables for the source dataset.
func DefaultTable() *Table {
	return &Table{
		States: map[string]string{
			"Haryana":        "Washington",
			"Karnataka":      "California",
			"Madhya Pradesh": "Michigan",
			"Maharashtra":    "Massachusetts",
			"Punjab":         "New Jersey",
			"Rajasthan":      "Florida",
			"Tamil Nadu":     "Texas",
			"Uttar Pradesh":  "New York",
			"West Bengal":    "Illinois",
		},
		Cities: map[string]string{
			"Faridabad":  "Seattle",
			"Mysore":     "San Francisco",
			"Bangalore":  "Los Angeles",
			"Mangalore":  "San Diego",
			"Gwalior":    "Detroit",
			"Pune":       "Boston",
			"Amritsar":   "Jersey City",
			"Chandigarh": "Newark",
			"Jaipur":     "Miami",
			"Madurai":    "Houston",
			"Varanasi":   "New York City",
			"Lucknow":    "Buffalo",
			"Darjeeling": "Chicago",
		},
		Countries: map[string]string{
			"India": "United States",
		},
		Hospitals: map[string]string{
			"AIIMS":                         "Mayo Clinic",
			"Kokilaben Hospital":            "Cleveland Clinic",
			"Global Hospitals":              "Johns Hopkins Hospital",
			"Narayana Health":               "Massachusetts General Hospital",
			"Columbia Asia":                 "Mount Sinai Hospital",
			"Care Hospitals":                "St. Jude Children's Research Hospital",
			"Manipal Hospital":              "UCLA Medical Center",
			"Tata Memorial Hospital":        "Memorial Sloan Kettering Cancer Center",
			"BLK Super Speciality Hospital": "Cedars-Sinai Medical Center",
			"Wockhardt Hospitals":           "New York-Presbyterian Hospital",
			"Fortis Hospital":               "Washington University in St. Louis Medical Center",
		},
		ExchangeRate: 85,
	}
}

// LoadTableFromFile reads a YAML lookup-table file. Sections that are absent
// fall back to the built-in defaults, so a file can override just the
// exchange rate or just the hospital map.
func LoadTableFromFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mappings file: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse mappings file: %w", err)
	}
	def := DefaultTable()
	if t.States == nil {
		t.States = def.States
	}
	if t.Cities == nil {
		t.Cities = def.Cities
	}
	if t.Countries == nil {
		t.Countries = def.Countries
	}
	if t.Hospitals == nil {
		t.Hospitals = def.Hospitals
	}
	if t.ExchangeRate == 0 {
		t.ExchangeRate = def.ExchangeRate
	}
	if t.ExchangeRate < 0 {
		return nil, fmt.Errorf("exchange_rate must be positive, got %v", t.ExchangeRate)
	}
	return &t, nil
}

// Apply rewrites the geography and hospital fields of a row via the lookup
// tables. Unknown keys pass through unchanged and never produce an error.
// The input row is not modified.
func (t *Table) Apply(row model.EncounterRow) model.EncounterRow {
	row.State = replace(t.States, row.State)
	row.City = replace(t.Cities, row.City)
	row.Country = replace(t.Countries, row.Country)
	row.AffiliatedHospital = replace(t.Hospitals, row.AffiliatedHospital)
	return row
}

func replace(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}
