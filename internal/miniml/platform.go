package miniml

import (
	"github.com/antchfx/xmlquery"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

// Platform parses one platform MINiML document.
func (p Parser) Platform(doc []byte) (*geo.Platform, error) {
	root, err := parseDocument(doc)
	if err != nil {
		return nil, err
	}
	node := xmlquery.FindOne(root, "//MINiML/Platform")
	if node == nil {
		return nil, &geo.ParseError{Field: "Platform", Reason: "document has no platform element"}
	}
	return p.platformFromNode(node)
}

func (p Parser) platformFromNode(node *xmlquery.Node) (*geo.Platform, error) {
	accession := text(node, "Accession")
	if accession == "" {
		return nil, &geo.ParseError{Field: "accession", Reason: "platform has no accession"}
	}
	if err := geo.ValidateAccession(geo.KindPlatform, accession); err != nil {
		return nil, &geo.ParseError{Accession: accession, Field: "accession", Reason: err.Error()}
	}
	columns, err := parseColumns(node, accession)
	if err != nil {
		return nil, err
	}
	internalData, err := p.parseInternalData(node, accession, columns)
	if err != nil {
		return nil, err
	}
	release, update, submission, err := parseStatusDates(node, accession)
	if err != nil {
		return nil, err
	}
	return &geo.Platform{
		Accession:            accession,
		Title:                text(node, "Title"),
		Technology:           text(node, "Technology"),
		Distribution:         text(node, "Distribution"),
		Organisms:            parseOrganisms(node),
		Manufacturer:         text(node, "Manufacturer"),
		ManufacturerProtocol: text(node, "Manufacture-Protocol"),
		Description:          text(node, "Description"),
		Columns:              columns,
		InternalData:         internalData,
		ReleaseDate:          release,
		LastUpdateDate:       update,
		SubmissionDate:       submission,
	}, nil
}
