package geo

// Series describes one study. A freshly parsed series is a shell
// carrying only forward references (SampleRefs, PlatformRefs); the
// resolver fills Samples and Platforms with owned copies. A series
// never hands out back-references to itself.
type Series struct {
	Accession       string           `json:"accession"`
	Title           string           `json:"title"`
	PMIDs           []string         `json:"pmids"`
	Summary         string           `json:"summary"`
	OverallDesign   string           `json:"overall_design"`
	ExperimentTypes []ExperimentType `json:"experiment_types"`

	SupplementaryData []SupplementaryDataItem `json:"supplementary_data"`

	ReleaseDate    Date `json:"release_date"`
	LastUpdateDate Date `json:"last_update_date"`
	SubmissionDate Date `json:"submission_date"`

	SampleRefs   []string `json:"sample_refs"`
	PlatformRefs []string `json:"platform_refs"`

	Samples   []*Sample   `json:"samples"`
	Platforms []*Platform `json:"platforms"`
}

// Equal compares two series field by field, resolved records included.
func (s *Series) Equal(other *Series) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Samples) != len(other.Samples) || len(s.Platforms) != len(other.Platforms) {
		return false
	}
	for i := range s.Samples {
		if !s.Samples[i].Equal(other.Samples[i]) {
			return false
		}
	}
	for i := range s.Platforms {
		if !s.Platforms[i].Equal(other.Platforms[i]) {
			return false
		}
	}
	if len(s.ExperimentTypes) != len(other.ExperimentTypes) {
		return false
	}
	for i := range s.ExperimentTypes {
		if !s.ExperimentTypes[i].Equal(other.ExperimentTypes[i]) {
			return false
		}
	}
	return s.Accession == other.Accession &&
		s.Title == other.Title &&
		stringsEqual(s.PMIDs, other.PMIDs) &&
		s.Summary == other.Summary &&
		s.OverallDesign == other.OverallDesign &&
		supplementaryEqual(s.SupplementaryData, other.SupplementaryData) &&
		s.ReleaseDate.Equal(other.ReleaseDate) &&
		s.LastUpdateDate.Equal(other.LastUpdateDate) &&
		s.SubmissionDate.Equal(other.SubmissionDate) &&
		stringsEqual(s.SampleRefs, other.SampleRefs) &&
		stringsEqual(s.PlatformRefs, other.PlatformRefs)
}

// IsMalformed reports whether the record is missing its title.
func (s *Series) IsMalformed() bool { return s.Title == "" }

// SampleCount is the number of resolved samples.
func (s *Series) SampleCount() int { return len(s.Samples) }

// HasExperimentType reports whether the series declares the given
// experiment type title.
func (s *Series) HasExperimentType(title string) bool {
	for _, et := range s.ExperimentTypes {
		if et.Title == title {
			return true
		}
	}
	return false
}

// AllPlatforms returns the unique platforms referenced directly or
// transitively through resolved samples, deduplicated by accession in
// first-seen order. Directly resolved platforms come first.
func (s *Series) AllPlatforms() []*Platform {
	seen := make(map[string]struct{})
	var platforms []*Platform
	for _, platform := range s.Platforms {
		if _, ok := seen[platform.Accession]; ok {
			continue
		}
		seen[platform.Accession] = struct{}{}
		platforms = append(platforms, platform)
	}
	for _, sample := range s.Samples {
		if sample.Platform == nil {
			continue
		}
		if _, ok := seen[sample.Platform.Accession]; ok {
			continue
		}
		seen[sample.Platform.Accession] = struct{}{}
		platforms = append(platforms, sample.Platform)
	}
	return platforms
}

// Organisms returns the unique organisms across all resolved samples,
// deduplicated by taxonomy ID in first-seen order.
func (s *Series) Organisms() []Organism {
	seen := make(map[string]struct{})
	var organisms []Organism
	for _, sample := range s.Samples {
		for _, organism := range sample.Organisms() {
			if _, ok := seen[organism.TaxID]; ok {
				continue
			}
			seen[organism.TaxID] = struct{}{}
			organisms = append(organisms, organism)
		}
	}
	return organisms
}

// Clinical returns one clinical row per resolved sample.
func (s *Series) Clinical() [][]ClinicalField {
	rows := make([][]ClinicalField, 0, len(s.Samples))
	for _, sample := range s.Samples {
		rows = append(rows, sample.Clinical())
	}
	return rows
}

// PlatformClinical returns clinical rows restricted to samples run on
// the given platform accession.
func (s *Series) PlatformClinical(platformAccession string) [][]ClinicalField {
	var rows [][]ClinicalField
	for _, sample := range s.Samples {
		if sample.PlatformRef != platformAccession {
			continue
		}
		rows = append(rows, sample.Clinical())
	}
	return rows
}
