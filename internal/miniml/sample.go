package miniml

import (
	"fmt"
	"strconv"

	"github.com/antchfx/xmlquery"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

// Sample parses one sample MINiML document. The platform reference
// stays an accession; resolving it into an owned Platform record is
// the resolver's job.
func (p Parser) Sample(doc []byte) (*geo.Sample, error) {
	root, err := parseDocument(doc)
	if err != nil {
		return nil, err
	}
	node := xmlquery.FindOne(root, "//MINiML/Sample")
	if node == nil {
		return nil, &geo.ParseError{Field: "Sample", Reason: "document has no sample element"}
	}
	return p.sampleFromNode(node)
}

func (p Parser) sampleFromNode(node *xmlquery.Node) (*geo.Sample, error) {
	accession := text(node, "Accession")
	if accession == "" {
		return nil, &geo.ParseError{Field: "accession", Reason: "sample has no accession"}
	}
	if err := geo.ValidateAccession(geo.KindSample, accession); err != nil {
		return nil, &geo.ParseError{Accession: accession, Field: "accession", Reason: err.Error()}
	}
	channelCount := 0
	if raw := text(node, "Channel-Count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &geo.ParseError{
				Accession: accession,
				Field:     "channel_count",
				Reason:    fmt.Sprintf("bad channel count %q", raw),
			}
		}
		channelCount = n
	}
	channels, err := parseChannels(node, accession)
	if err != nil {
		return nil, err
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
	platformRef := ""
	if ref := xmlquery.FindOne(node, "Platform-Ref"); ref != nil {
		platformRef = ref.SelectAttr("ref")
	}
	return &geo.Sample{
		Accession:             accession,
		Title:                 text(node, "Title"),
		Type:                  text(node, "Type"),
		ChannelCount:          channelCount,
		Channels:              channels,
		HybridizationProtocol: text(node, "Hybridization-Protocol"),
		ScanProtocol:          text(node, "Scan-Protocol"),
		Description:           text(node, "Description"),
		DataProcessing:        text(node, "Data-Processing"),
		SupplementaryData:     parseSupplementaryData(node),
		Columns:               columns,
		InternalData:          internalData,
		ReleaseDate:           release,
		LastUpdateDate:        update,
		SubmissionDate:        submission,
		PlatformRef:           platformRef,
	}, nil
}

func parseChannels(node *xmlquery.Node, accession string) ([]geo.Channel, error) {
	var channels []geo.Channel
	for _, el := range xmlquery.Find(node, "Channel") {
		position, err := strconv.Atoi(el.SelectAttr("position"))
		if err != nil {
			return nil, &geo.ParseError{
				Accession: accession,
				Field:     "channels",
				Reason:    fmt.Sprintf("bad channel position %q", el.SelectAttr("position")),
			}
		}
		var characteristics []geo.Characteristic
		for _, ch := range xmlquery.Find(el, "Characteristics") {
			characteristics = append(characteristics, geo.Characteristic{
				Tag:   ch.SelectAttr("tag"),
				Value: text(ch, "."),
			})
		}
		channels = append(channels, geo.Channel{
			Position:          position,
			Source:            text(el, "Source"),
			Organisms:         parseOrganisms(el),
			Characteristics:   characteristics,
			TreatmentProtocol: text(el, "Treatment-Protocol"),
			GrowthProtocol:    text(el, "Growth-Protocol"),
			Molecule:          text(el, "Molecule"),
			ExtractProtocol:   text(el, "Extract-Protocol"),
			Label:             text(el, "Label"),
			LabelProtocol:     text(el, "Label-Protocol"),
		})
	}
	return channels, nil
}
