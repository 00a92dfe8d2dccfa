package geo

import (
	"fmt"
	"strings"
)

// ValueDelimiter joins multi-valued clinical fields, matching the
// separator GEO-derived clinical tables conventionally use.
const ValueDelimiter = " || "

// Sample describes one biological specimen's measurement run. It
// references exactly one platform by accession; Platform is populated
// once the reference has been resolved into an owned copy.
type Sample struct {
	Accession    string    `json:"accession"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	ChannelCount int       `json:"channel_count"`
	Channels     []Channel `json:"channels"`

	HybridizationProtocol string `json:"hybridization_protocol"`
	ScanProtocol          string `json:"scan_protocol"`
	Description           string `json:"description"`
	DataProcessing        string `json:"data_processing"`

	SupplementaryData []SupplementaryDataItem `json:"supplementary_data"`
	Columns           []Column                `json:"columns"`
	InternalData      []Row                   `json:"internal_data"`

	ReleaseDate    Date `json:"release_date"`
	LastUpdateDate Date `json:"last_update_date"`
	SubmissionDate Date `json:"submission_date"`

	PlatformRef string    `json:"platform_ref"`
	Platform    *Platform `json:"platform"`
}

// Equal compares two samples field by field, nested records included.
func (s *Sample) Equal(other *Sample) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Channels) != len(other.Channels) {
		return false
	}
	for i := range s.Channels {
		if !s.Channels[i].Equal(other.Channels[i]) {
			return false
		}
	}
	return s.Accession == other.Accession &&
		s.Title == other.Title &&
		s.Type == other.Type &&
		s.ChannelCount == other.ChannelCount &&
		s.HybridizationProtocol == other.HybridizationProtocol &&
		s.ScanProtocol == other.ScanProtocol &&
		s.Description == other.Description &&
		s.DataProcessing == other.DataProcessing &&
		supplementaryEqual(s.SupplementaryData, other.SupplementaryData) &&
		columnsEqual(s.Columns, other.Columns) &&
		rowsEqual(s.InternalData, other.InternalData) &&
		s.ReleaseDate.Equal(other.ReleaseDate) &&
		s.LastUpdateDate.Equal(other.LastUpdateDate) &&
		s.SubmissionDate.Equal(other.SubmissionDate) &&
		s.PlatformRef == other.PlatformRef &&
		s.Platform.Equal(other.Platform)
}

// IsMalformed reports whether the record is missing its title.
func (s *Sample) IsMalformed() bool { return s.Title == "" }

// Organisms returns the union of per-channel organisms, deduplicated
// by taxonomy ID in first-seen order.
func (s *Sample) Organisms() []Organism {
	seen := make(map[string]struct{})
	var organisms []Organism
	for _, channel := range s.Channels {
		for _, organism := range channel.Organisms {
			if _, ok := seen[organism.TaxID]; ok {
				continue
			}
			seen[organism.TaxID] = struct{}{}
			organisms = append(organisms, organism)
		}
	}
	return organisms
}

// ClinicalField is one column of a sample's clinical row.
type ClinicalField struct {
	Key   string
	Value string
}

// Clinical flattens the sample into one clinical table row: identity
// fields first, then source, organism, characteristics, and molecule.
// Duplicate characteristic tags get numeric suffixes; two-channel
// samples prefix tags with ch1_/ch2_.
func (s *Sample) Clinical() []ClinicalField {
	b := newClinicalBuilder()
	b.put("accession", s.Accession)
	b.put("title", s.Title)
	b.put("platform", s.PlatformRef)
	if len(s.Channels) == 0 {
		return b.fields
	}
	if len(s.Channels) == 1 {
		ch := s.Channels[0]
		b.put("source", ch.Source)
		b.put("organism", joinScinames(ch.Organisms))
		for _, characteristic := range ch.Characteristics {
			b.add(characteristic.Tag, characteristic.Value)
		}
		b.put("molecule", ch.Molecule)
		return b.fields
	}
	ch1, ch2 := s.Channels[0], s.Channels[1]
	if ch1.Source == ch2.Source {
		b.put("source", ch1.Source)
	} else {
		b.put("source", ch1.Source+ValueDelimiter+ch2.Source)
	}
	b.put("organism", joinScinames(append(append([]Organism{}, ch1.Organisms...), ch2.Organisms...)))
	for _, characteristic := range ch1.Characteristics {
		b.add("ch1_"+characteristic.Tag, characteristic.Value)
	}
	for _, characteristic := range ch2.Characteristics {
		b.add("ch2_"+characteristic.Tag, characteristic.Value)
	}
	if ch1.Molecule == ch2.Molecule {
		b.put("molecule", ch1.Molecule)
	} else {
		b.put("molecule", ch1.Molecule+ValueDelimiter+ch2.Molecule)
	}
	return b.fields
}

func joinScinames(organisms []Organism) string {
	seen := make(map[string]struct{})
	var names []string
	for _, organism := range organisms {
		if _, ok := seen[organism.SciName]; ok {
			continue
		}
		seen[organism.SciName] = struct{}{}
		names = append(names, organism.SciName)
	}
	return strings.Join(names, ValueDelimiter)
}

type clinicalBuilder struct {
	fields []ClinicalField
	index  map[string]int
	counts map[string]int
}

func newClinicalBuilder() *clinicalBuilder {
	return &clinicalBuilder{
		index:  make(map[string]int),
		counts: make(map[string]int),
	}
}

func (b *clinicalBuilder) put(key, value string) {
	b.index[key] = len(b.fields)
	b.fields = append(b.fields, ClinicalField{Key: key, Value: value})
}

// add appends a characteristic value. On the second occurrence of a
// tag the first entry is renamed tag_1 and later ones become tag_N.
func (b *clinicalBuilder) add(tag, value string) {
	n := b.counts[tag]
	if n == 0 {
		b.counts[tag] = 1
		b.put(tag, value)
		return
	}
	if n == 1 {
		i := b.index[tag]
		b.fields[i].Key = tag + "_1"
		delete(b.index, tag)
		b.index[tag+"_1"] = i
	}
	b.counts[tag] = n + 1
	b.put(fmt.Sprintf("%s_%d", tag, n+1), value)
}
