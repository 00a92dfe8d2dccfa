package geo

import "fmt"

// ValidationError reports a malformed accession string. It is raised
// before any network access.
type ValidationError struct {
	Accession string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid accession %q: %s", e.Accession, e.Reason)
}

// FetchError reports a network or HTTP failure for one accession.
type FetchError struct {
	Accession  string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d from %s", e.Accession, e.StatusCode, e.URL)
	}
	return fmt.Sprintf("fetch %s: %v", e.Accession, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether the failure is transient. Transport
// errors and 5xx responses are transient; 4xx responses (an unknown
// accession among them) are permanent.
func (e *FetchError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// ParseError reports a malformed or unexpected document shape. It is
// never retryable: it means a format assumption was violated.
type ParseError struct {
	Accession string
	Field     string
	Reason    string
}

func (e *ParseError) Error() string {
	acc := e.Accession
	if acc == "" {
		acc = "<unknown>"
	}
	if e.Field != "" {
		return fmt.Sprintf("parse %s: field %s: %s", acc, e.Field, e.Reason)
	}
	return fmt.Sprintf("parse %s: %s", acc, e.Reason)
}

// ResolutionError reports that a referenced accession failed to
// resolve while assembling its owner, wrapping the underlying cause.
type ResolutionError struct {
	Owner     string
	Accession string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s for %s: %v", e.Accession, e.Owner, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
