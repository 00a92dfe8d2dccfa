// Package geo defines the typed record model for NCBI GEO metadata:
// platforms, samples, and series, their nested value types, the
// accession validation rules, the error taxonomy shared by the fetch,
// parse, resolve, and crawl layers, and the dict round trip used for
// jsonlines persistence.
package geo
