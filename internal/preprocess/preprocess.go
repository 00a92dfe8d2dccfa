// Package preprocess projects a resolved expression-array series
// into the two flat study files: the clinical table (one row per
// sample) and the gene-level expression table (probe values grouped
// through a probe→gene mapping).
package preprocess

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

// ExperimentTypeArray is the only experiment type preprocessing
// accepts.
const ExperimentTypeArray = "Expression profiling by array"

// ErrNotArraySeries is returned for series of any other experiment
// type.
var ErrNotArraySeries = errors.New("expression profiling by array series only")

// AggFunc selects how probe values collapsing onto one gene are
// merged.
type AggFunc string

// Supported aggregation functions.
const (
	AggMin    AggFunc = "min"
	AggMax    AggFunc = "max"
	AggFirst  AggFunc = "first"
	AggLast   AggFunc = "last"
	AggMean   AggFunc = "mean"
	AggMedian AggFunc = "median"
)

// ParseAggFunc validates an aggregation function name.
func ParseAggFunc(s string) (AggFunc, error) {
	switch AggFunc(s) {
	case AggMin, AggMax, AggFirst, AggLast, AggMean, AggMedian:
		return AggFunc(s), nil
	}
	return "", fmt.Errorf("unknown aggregate function %q", s)
}

func (a AggFunc) apply(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("no values")
	}
	switch a {
	case AggMin:
		return stats.Min(values)
	case AggMax:
		return stats.Max(values)
	case AggFirst:
		return values[0], nil
	case AggLast:
		return values[len(values)-1], nil
	case AggMean:
		return stats.Mean(values)
	case AggMedian:
		return stats.Median(values)
	}
	return 0, fmt.Errorf("unknown aggregate function %q", a)
}

// Clinical writes the tab-separated clinical table: one row per
// resolved sample, columns being the first-seen union of every
// sample's clinical keys.
func Clinical(series *geo.Series, w io.Writer) error {
	if !series.HasExperimentType(ExperimentTypeArray) {
		return ErrNotArraySeries
	}
	rows := series.Clinical()
	var header []string
	seen := make(map[string]int)
	for _, row := range rows {
		for _, field := range row {
			if _, ok := seen[field.Key]; ok {
				continue
			}
			seen[field.Key] = len(header)
			header = append(header, field.Key)
		}
	}
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write clinical header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for _, field := range row {
			record[seen[field.Key]] = field.Value
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write clinical row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Expression writes the tab-separated gene expression table. Each
// sample's internal data supplies probe values; probes mapping to the
// same gene are merged with the aggregation function. Probes absent
// from the mapping, mapped to an empty gene, or carrying non-numeric
// values are dropped.
func Expression(series *geo.Series, mapping map[string]string, agg AggFunc, geneLabel string, w io.Writer) error {
	if !series.HasExperimentType(ExperimentTypeArray) {
		return ErrNotArraySeries
	}
	if len(series.Samples) == 0 {
		return errors.New("series has no resolved samples")
	}
	if geneLabel == "" {
		geneLabel = "GENE"
	}

	// Gene order follows the first sample's probe order.
	var genes []string
	geneIndex := make(map[string]int)
	perSample := make([]map[string][]float64, len(series.Samples))
	for i, sample := range series.Samples {
		values := make(map[string][]float64)
		probeKey, valueKey, err := expressionColumns(sample)
		if err != nil {
			return err
		}
		for _, row := range sample.InternalData {
			probe := row[probeKey]
			gene, ok := mapping[probe]
			if !ok || gene == "" {
				continue
			}
			value, err := strconv.ParseFloat(row[valueKey], 64)
			if err != nil {
				continue
			}
			if _, ok := geneIndex[gene]; !ok {
				geneIndex[gene] = len(genes)
				genes = append(genes, gene)
			}
			values[gene] = append(values[gene], value)
		}
		perSample[i] = values
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	header := make([]string, 0, len(series.Samples)+1)
	header = append(header, geneLabel)
	for _, sample := range series.Samples {
		header = append(header, sample.Accession)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write expression header: %w", err)
	}
	for _, gene := range genes {
		record := make([]string, 0, len(perSample)+1)
		record = append(record, gene)
		for _, values := range perSample {
			cell := ""
			if vs := values[gene]; len(vs) > 0 {
				merged, err := agg.apply(vs)
				if err != nil {
					return fmt.Errorf("aggregate gene %s: %w", gene, err)
				}
				cell = strconv.FormatFloat(merged, 'g', -1, 64)
			}
			record = append(record, cell)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write expression row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// expressionColumns picks the probe and value columns of a sample's
// data table: the first column holds the probe, the VALUE column (or
// the second column when none is named VALUE) holds the measurement.
func expressionColumns(sample *geo.Sample) (probeKey, valueKey string, err error) {
	if len(sample.Columns) < 2 {
		return "", "", fmt.Errorf("sample %s has no expression table", sample.Accession)
	}
	probeKey = sample.Columns[0].Name
	valueKey = sample.Columns[1].Name
	for _, column := range sample.Columns {
		if column.Name == "VALUE" {
			valueKey = column.Name
			break
		}
	}
	return probeKey, valueKey, nil
}
