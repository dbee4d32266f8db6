package model

import "time"

// Row is a fully typed encounter row after reference normalization and
// parsing, ready for dimension resolution and the fact insert. Natural keys
// are guaranteed non-zero; nullable attributes stay pointers so missing
// values land in the warehouse as NULL.
type Row struct {
	SourceRowNumber int64

	TreatmentID int64
	PatientID   int64
	ProviderID  int64
	DiseaseID   int64

	PatientFirst string
	PatientLast  string
	PatientName  string
	Gender       string
	Age          *int32

	ProviderFirst      string
	ProviderLast       string
	SpecialityID       *int32
	SpecialityName     string
	AffiliatedHospital string

	DiseaseName      string
	DiseaseType      string
	Severity         string
	TransmissionMode string
	MortalityRate    *float64

	Country string
	State   string
	City    string

	TreatmentType     string
	StartDate         *time.Time
	CompletionDate    time.Time
	OutcomeDate       time.Time
	OutcomeStatus     string
	TreatmentDuration *int32
	Cost              *float64
}
