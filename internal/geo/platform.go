package geo

import "fmt"

// Platform describes one measurement technology or array design,
// optionally carrying a probe/feature annotation table.
type Platform struct {
	Accession    string     `json:"accession"`
	Title        string     `json:"title"`
	Technology   string     `json:"technology"`
	Distribution string     `json:"distribution"`
	Organisms    []Organism `json:"organisms"`

	Manufacturer         string `json:"manufacturer"`
	ManufacturerProtocol string `json:"manufacturer_protocol"`
	Description          string `json:"description"`

	Columns      []Column `json:"columns"`
	InternalData []Row    `json:"internal_data"`

	ReleaseDate    Date `json:"release_date"`
	LastUpdateDate Date `json:"last_update_date"`
	SubmissionDate Date `json:"submission_date"`
}

// Equal compares two platforms field by field.
func (p *Platform) Equal(other *Platform) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Accession == other.Accession &&
		p.Title == other.Title &&
		p.Technology == other.Technology &&
		p.Distribution == other.Distribution &&
		organismsEqual(p.Organisms, other.Organisms) &&
		p.Manufacturer == other.Manufacturer &&
		p.ManufacturerProtocol == other.ManufacturerProtocol &&
		p.Description == other.Description &&
		columnsEqual(p.Columns, other.Columns) &&
		rowsEqual(p.InternalData, other.InternalData) &&
		p.ReleaseDate.Equal(other.ReleaseDate) &&
		p.LastUpdateDate.Equal(other.LastUpdateDate) &&
		p.SubmissionDate.Equal(other.SubmissionDate)
}

// IsMalformed reports whether the record is missing its title, which
// GEO only omits for withdrawn or broken entries.
func (p *Platform) IsMalformed() bool { return p.Title == "" }

// ProbeGeneMapping projects the annotation table into a probe-to-gene
// table. geneCol is the 0-based index of the column holding the gene
// symbol. Rows missing the probe or gene column are skipped.
func (p *Platform) ProbeGeneMapping(geneCol int) (map[string]string, error) {
	if len(p.Columns) == 0 || len(p.InternalData) == 0 {
		return nil, fmt.Errorf("platform %s has no annotation table", p.Accession)
	}
	if geneCol <= 0 || geneCol >= len(p.Columns) {
		return nil, fmt.Errorf(
			"gene column %d out of range: platform %s has %d columns",
			geneCol, p.Accession, len(p.Columns),
		)
	}
	probeKey := p.Columns[0].Name
	geneKey := p.Columns[geneCol].Name
	mapping := make(map[string]string, len(p.InternalData))
	for _, row := range p.InternalData {
		probe, ok := row[probeKey]
		if !ok {
			continue
		}
		gene, ok := row[geneKey]
		if !ok {
			continue
		}
		mapping[probe] = gene
	}
	return mapping, nil
}
