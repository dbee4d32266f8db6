package model

import "time"

// LoadSummary captures metrics from a single batch load run.
type LoadSummary struct {
	FilePath      string
	FileSHA256    string
	BatchID       string
	AlreadyLoaded bool

	RowsRead    int64
	RowsSkipped int64
	SkipReasons map[string]int64

	PatientsInserted    int64
	DiseasesInserted    int64
	LocationsInserted   int64
	EffectivenessSeeded int64
	// ProvidersInserted counts provider versions opened, whether for a
	// first-seen provider or after attribute drift.
	ProvidersInserted int64
	// ProvidersVersioned counts prior current versions closed by drift.
	ProvidersVersioned int64
	TreatmentsInserted int64
	// AttributeMismatches counts re-seen patient/disease keys whose incoming
	// attributes differed from the stored row. First write wins; the count
	// lets operators spot upstream drift without changing load semantics.
	AttributeMismatches int64

	DurationRead  time.Duration
	DurationLoad  time.Duration
	DurationTotal time.Duration
}

// Skip records one skipped row with its reason.
func (s *LoadSummary) Skip(reason string) {
	s.RowsSkipped++
	if s.SkipReasons == nil {
		s.SkipReasons = make(map[string]int64)
	}
	s.SkipReasons[reason]++
}
