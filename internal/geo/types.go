package geo

// Organism is one organism reference, keyed by NCBI taxonomy ID.
type Organism struct {
	TaxID   string `json:"taxid"`
	SciName string `json:"sciname"`
}

// Equal compares two organisms field by field.
func (o Organism) Equal(other Organism) bool {
	return o.TaxID == other.TaxID && o.SciName == other.SciName
}

// ExperimentType is one experiment type declared on a series.
type ExperimentType struct {
	Title string `json:"title"`
}

// Equal compares two experiment types.
func (e ExperimentType) Equal(other ExperimentType) bool {
	return e.Title == other.Title
}

// Column is one declared column of a data table header. Position is
// 1-based as in the source documents.
type Column struct {
	Position    int    `json:"position"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Equal compares two columns field by field.
func (c Column) Equal(other Column) bool {
	return c.Position == other.Position && c.Name == other.Name && c.Description == other.Description
}

// Characteristic is one tag/value pair on a channel. Duplicate tags
// are kept as separate entries in document order.
type Characteristic struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// Equal compares two characteristics.
func (c Characteristic) Equal(other Characteristic) bool {
	return c.Tag == other.Tag && c.Value == other.Value
}

// SupplementaryDataItem is one supplementary file link.
type SupplementaryDataItem struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Equal compares two supplementary data items.
func (s SupplementaryDataItem) Equal(other SupplementaryDataItem) bool {
	return s.Type == other.Type && s.URL == other.URL
}

// Channel is one measurement channel of a sample.
type Channel struct {
	Position        int              `json:"position"`
	Source          string           `json:"source"`
	Organisms       []Organism       `json:"organisms"`
	Characteristics []Characteristic `json:"characteristics"`

	TreatmentProtocol string `json:"treatment_protocol"`
	GrowthProtocol    string `json:"growth_protocol"`
	Molecule          string `json:"molecule"`
	ExtractProtocol   string `json:"extract_protocol"`
	Label             string `json:"label"`
	LabelProtocol     string `json:"label_protocol"`
}

// Equal compares two channels field by field, nested slices in order.
func (c Channel) Equal(other Channel) bool {
	if c.Position != other.Position || c.Source != other.Source {
		return false
	}
	if !organismsEqual(c.Organisms, other.Organisms) {
		return false
	}
	if len(c.Characteristics) != len(other.Characteristics) {
		return false
	}
	for i := range c.Characteristics {
		if !c.Characteristics[i].Equal(other.Characteristics[i]) {
			return false
		}
	}
	return c.TreatmentProtocol == other.TreatmentProtocol &&
		c.GrowthProtocol == other.GrowthProtocol &&
		c.Molecule == other.Molecule &&
		c.ExtractProtocol == other.ExtractProtocol &&
		c.Label == other.Label &&
		c.LabelProtocol == other.LabelProtocol
}

// Row is one data-table row: declared column name to verbatim value.
// Every row of a record carries exactly the declared column set.
type Row map[string]string

// Equal compares two rows.
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

func rowsEqual(a, b []Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func organismsEqual(a, b []Organism) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func columnsEqual(a, b []Column) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func supplementaryEqual(a, b []SupplementaryDataItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
