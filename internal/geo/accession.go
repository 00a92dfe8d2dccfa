package geo

import "regexp"

// Kind identifies one of the three GEO entity kinds.
type Kind string

// Entity kinds and their accession prefixes.
const (
	KindPlatform Kind = "platform"
	KindSample   Kind = "sample"
	KindSeries   Kind = "series"
)

var accessionPatterns = map[Kind]*regexp.Regexp{
	KindPlatform: regexp.MustCompile(`^GPL\d+$`),
	KindSample:   regexp.MustCompile(`^GSM\d+$`),
	KindSeries:   regexp.MustCompile(`^GSE\d+$`),
}

// Prefix returns the accession prefix for the kind.
func (k Kind) Prefix() string {
	switch k {
	case KindPlatform:
		return "GPL"
	case KindSample:
		return "GSM"
	case KindSeries:
		return "GSE"
	}
	return ""
}

// Valid reports whether k is one of the three entity kinds.
func (k Kind) Valid() bool {
	_, ok := accessionPatterns[k]
	return ok
}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", &ValidationError{Accession: s, Reason: "unknown entity kind"}
	}
	return k, nil
}

// ValidateAccession checks an accession against the format of the
// given kind before any network access happens.
func ValidateAccession(kind Kind, accession string) error {
	pattern, ok := accessionPatterns[kind]
	if !ok {
		return &ValidationError{Accession: accession, Reason: "unknown entity kind"}
	}
	if !pattern.MatchString(accession) {
		return &ValidationError{
			Accession: accession,
			Reason:    "accession does not match " + kind.Prefix() + " format",
		}
	}
	return nil
}

// KindOfAccession infers the entity kind from an accession prefix.
func KindOfAccession(accession string) (Kind, error) {
	for kind, pattern := range accessionPatterns {
		if pattern.MatchString(accession) {
			return kind, nil
		}
	}
	return "", &ValidationError{Accession: accession, Reason: "unrecognized accession format"}
}
