package model

// EncounterRow mirrors the raw batch schema for a single healthcare
// encounter. All fields are strings as they arrive from CSV; Parquet batch
// files carry the same column names. Parsing into typed values happens
// during row preparation, after reference normalization.
type EncounterRow struct {
	PatientID   string `parquet:"patient_id"`
	PatientName string `parquet:"patient_name"`
	Gender      string `parquet:"gender"`
	Age         string `parquet:"age"`

	ProviderID         string `parquet:"provider_id"`
	ProviderName       string `parquet:"provider_name"`
	SpecialityID       string `parquet:"speciality_id"`
	SpecialityName     string `parquet:"speciality_name"`
	AffiliatedHospital string `parquet:"affiliated_hospital"`

	DiseaseID        string `parquet:"disease_id"`
	DiseaseName      string `parquet:"disease_name"`
	DiseaseType      string `parquet:"disease_type"`
	Severity         string `parquet:"severity"`
	TransmissionMode string `parquet:"transmission_mode"`
	MortalityRate    string `parquet:"mortality_rate"`

	Country string `parquet:"country"`
	State   string `parquet:"state"`
	City    string `parquet:"city"`

	TreatmentID       string `parquet:"treatment_id"`
	TreatmentType     string `parquet:"treatment_type"`
	StartDate         string `parquet:"treatment_start_date"`
	CompletionDate    string `parquet:"treatment_completion_date"`
	OutcomeDate       string `parquet:"treatment_outcome_date"`
	OutcomeStatus     string `parquet:"treatment_outcome_status"`
	TreatmentDuration string `parquet:"treatment_duration"`
	TreatmentCost     string `parquet:"treatment_cost"`
}

// EncounterColumns returns the canonical batch column names in field order.
func EncounterColumns() []string {
	return []string{
		"patient_id",
		"patient_name",
		"gender",
		"age",
		"provider_id",
		"provider_name",
		"speciality_id",
		"speciality_name",
		"affiliated_hospital",
		"disease_id",
		"disease_name",
		"disease_type",
		"severity",
		"transmission_mode",
		"mortality_rate",
		"country",
		"state",
		"city",
		"treatment_id",
		"treatment_type",
		"treatment_start_date",
		"treatment_completion_date",
		"treatment_outcome_date",
		"treatment_outcome_status",
		"treatment_duration",
		"treatment_cost",
	}
}

// Set assigns the value for the given batch column name. Unknown columns are
// ignored so extra columns in a source file pass through harmlessly.
func (r *EncounterRow) Set(column, value string) {
	switch column {
	case "patient_id":
		r.PatientID = value
	case "patient_name":
		r.PatientName = value
	case "gender":
		r.Gender = value
	case "age":
		r.Age = value
	case "provider_id":
		r.ProviderID = value
	case "provider_name":
		r.ProviderName = value
	case "speciality_id":
		r.SpecialityID = value
	case "speciality_name":
		r.SpecialityName = value
	case "affiliated_hospital":
		r.AffiliatedHospital = value
	case "disease_id":
		r.DiseaseID = value
	case "disease_name":
		r.DiseaseName = value
	case "disease_type":
		r.DiseaseType = value
	case "severity":
		r.Severity = value
	case "transmission_mode":
		r.TransmissionMode = value
	case "mortality_rate":
		r.MortalityRate = value
	case "country":
		r.Country = value
	case "state":
		r.State = value
	case "city":
		r.City = value
	case "treatment_id":
		r.TreatmentID = value
	case "treatment_type":
		r.TreatmentType = value
	case "treatment_start_date":
		r.StartDate = value
	case "treatment_completion_date":
		r.CompletionDate = value
	case "treatment_outcome_date":
		r.OutcomeDate = value
	case "treatment_outcome_status":
		r.OutcomeStatus = value
	case "treatment_duration":
		r.TreatmentDuration = value
	case "treatment_cost":
		r.TreatmentCost = value
	}
}

// Get returns the value for the given batch column name, used when writing
// CSV fixtures. Unknown columns return the empty string.
func (r *EncounterRow) Get(column string) string {
	switch column {
	case "patient_id":
		return r.PatientID
	case "patient_name":
		return r.PatientName
	case "gender":
		return r.Gender
	case "age":
		return r.Age
	case "provider_id":
		return r.ProviderID
	case "provider_name":
		return r.ProviderName
	case "speciality_id":
		return r.SpecialityID
	case "speciality_name":
		return r.SpecialityName
	case "affiliated_hospital":
		return r.AffiliatedHospital
	case "disease_id":
		return r.DiseaseID
	case "disease_name":
		return r.DiseaseName
	case "disease_type":
		return r.DiseaseType
	case "severity":
		return r.Severity
	case "transmission_mode":
		return r.TransmissionMode
	case "mortality_rate":
		return r.MortalityRate
	case "country":
		return r.Country
	case "state":
		return r.State
	case "city":
		return r.City
	case "treatment_id":
		return r.TreatmentID
	case "treatment_type":
		return r.TreatmentType
	case "treatment_start_date":
		return r.StartDate
	case "treatment_completion_date":
		return r.CompletionDate
	case "treatment_outcome_date":
		return r.OutcomeDate
	case "treatment_outcome_status":
		return r.OutcomeStatus
	case "treatment_duration":
		return r.TreatmentDuration
	case "treatment_cost":
		return r.TreatmentCost
	}
	return ""
}
