package geo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ToDict converts a record into its canonical dict form, the shape
// persisted as one jsonlines object. Equality of records implies
// equality of dicts and vice versa.
func ToDict(record any) (map[string]any, error) {
	switch record.(type) {
	case *Platform, *Sample, *Series:
	default:
		return nil, fmt.Errorf("unsupported record type %T", record)
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	dict := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&dict); err != nil {
		return nil, fmt.Errorf("decode record dict: %w", err)
	}
	return dict, nil
}

// FromDict rebuilds a record of the given kind from its dict form.
// FromDict(kind, ToDict(r)) is structurally equal to r for every
// valid record.
func FromDict(kind Kind, dict map[string]any) (any, error) {
	raw, err := json.Marshal(dict)
	if err != nil {
		return nil, fmt.Errorf("marshal dict: %w", err)
	}
	switch kind {
	case KindPlatform:
		return PlatformFromJSON(raw)
	case KindSample:
		return SampleFromJSON(raw)
	case KindSeries:
		return SeriesFromJSON(raw)
	}
	return nil, &ValidationError{Accession: string(kind), Reason: "unknown entity kind"}
}

// PlatformFromJSON decodes one serialized platform record.
func PlatformFromJSON(raw []byte) (*Platform, error) {
	var p Platform
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode platform: %w", err)
	}
	if err := ValidateAccession(KindPlatform, p.Accession); err != nil {
		return nil, err
	}
	return &p, nil
}

// SampleFromJSON decodes one serialized sample record.
func SampleFromJSON(raw []byte) (*Sample, error) {
	var s Sample
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode sample: %w", err)
	}
	if err := ValidateAccession(KindSample, s.Accession); err != nil {
		return nil, err
	}
	return &s, nil
}

// SeriesFromJSON decodes one serialized series record.
func SeriesFromJSON(raw []byte) (*Series, error) {
	var s Series
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}
	if err := ValidateAccession(KindSeries, s.Accession); err != nil {
		return nil, err
	}
	return &s, nil
}

// AccessionOf extracts the accession from any record type.
func AccessionOf(record any) (string, error) {
	switch r := record.(type) {
	case *Platform:
		return r.Accession, nil
	case *Sample:
		return r.Accession, nil
	case *Series:
		return r.Accession, nil
	}
	return "", fmt.Errorf("unsupported record type %T", record)
}
