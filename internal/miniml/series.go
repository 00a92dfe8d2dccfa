package miniml

import (
	"github.com/antchfx/xmlquery"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

// Series parses one series MINiML document into a shell record: all
// scalar fields plus the declared sample and platform accession
// lists. Samples and Platforms stay empty until a resolution pass.
func (p Parser) Series(doc []byte) (*geo.Series, error) {
	root, err := parseDocument(doc)
	if err != nil {
		return nil, err
	}
	node := xmlquery.FindOne(root, "//MINiML/Series")
	if node == nil {
		return nil, &geo.ParseError{Field: "Series", Reason: "document has no series element"}
	}
	accession := text(node, "Accession")
	if accession == "" {
		return nil, &geo.ParseError{Field: "accession", Reason: "series has no accession"}
	}
	if err := geo.ValidateAccession(geo.KindSeries, accession); err != nil {
		return nil, &geo.ParseError{Accession: accession, Field: "accession", Reason: err.Error()}
	}
	release, update, submission, err := parseStatusDates(node, accession)
	if err != nil {
		return nil, err
	}

	var experimentTypes []geo.ExperimentType
	for _, title := range texts(node, "Type") {
		experimentTypes = append(experimentTypes, geo.ExperimentType{Title: title})
	}

	// A quick-view document declares references on the series element;
	// a full document instead carries sibling Sample/Platform elements.
	sampleRefs := refs(node, "Sample-Ref")
	if len(sampleRefs) == 0 {
		sampleRefs = texts(root, "//MINiML/Sample/Accession")
	}
	platformRefs := refs(node, "Platform-Ref")
	if len(platformRefs) == 0 {
		platformRefs = texts(root, "//MINiML/Platform/Accession")
	}

	return &geo.Series{
		Accession:         accession,
		Title:             text(node, "Title"),
		PMIDs:             texts(node, "Pubmed-ID"),
		Summary:           text(node, "Summary"),
		OverallDesign:     text(node, "Overall-Design"),
		ExperimentTypes:   experimentTypes,
		SupplementaryData: parseSupplementaryData(node),
		ReleaseDate:       release,
		LastUpdateDate:    update,
		SubmissionDate:    submission,
		SampleRefs:        sampleRefs,
		PlatformRefs:      platformRefs,
	}, nil
}
