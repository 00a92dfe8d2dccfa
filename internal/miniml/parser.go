// Package miniml parses GEO MINiML metadata documents into typed
// records. Parsing is pure: the same document text always yields an
// equal record, and no field absence is fatal except a missing
// accession.
package miniml

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

// Parser converts one raw MINiML document into one typed record.
//
// AllowRaggedRows switches the data-table policy from rejecting rows
// whose field count disagrees with the declared header to repairing
// them by zero-padding or truncating. Trailing empty fields (a
// whitespace artifact of the source format) are tolerated either way.
type Parser struct {
	AllowRaggedRows bool
}

func parseDocument(doc []byte) (*xmlquery.Node, error) {
	root, err := xmlquery.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, &geo.ParseError{Reason: fmt.Sprintf("malformed XML: %v", err)}
	}
	return root, nil
}

// text returns the trimmed text of the first node matched by path
// relative to n, or "" when the path matches nothing.
func text(n *xmlquery.Node, path string) string {
	found := xmlquery.FindOne(n, path)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.InnerText())
}

// texts returns the trimmed texts of every node matched by path, in
// document order.
func texts(n *xmlquery.Node, path string) []string {
	var out []string
	for _, found := range xmlquery.Find(n, path) {
		out = append(out, strings.TrimSpace(found.InnerText()))
	}
	return out
}

// refs collects the ref attribute of every node matched by path.
func refs(n *xmlquery.Node, path string) []string {
	var out []string
	for _, found := range xmlquery.Find(n, path) {
		if ref := found.SelectAttr("ref"); ref != "" {
			out = append(out, ref)
		}
	}
	return out
}

func parseDate(accession, field, value string) (geo.Date, error) {
	if value == "" {
		return geo.Date{}, nil
	}
	d, err := geo.ParseDate(value)
	if err != nil {
		return geo.Date{}, &geo.ParseError{
			Accession: accession,
			Field:     field,
			Reason:    fmt.Sprintf("bad date %q", value),
		}
	}
	return d, nil
}

func parseStatusDates(node *xmlquery.Node, accession string) (release, update, submission geo.Date, err error) {
	if release, err = parseDate(accession, "release_date", text(node, "Status/Release-Date")); err != nil {
		return
	}
	if update, err = parseDate(accession, "last_update_date", text(node, "Status/Last-Update-Date")); err != nil {
		return
	}
	submission, err = parseDate(accession, "submission_date", text(node, "Status/Submission-Date"))
	return
}

func parseOrganisms(node *xmlquery.Node) []geo.Organism {
	var organisms []geo.Organism
	for _, el := range xmlquery.Find(node, "Organism") {
		organisms = append(organisms, geo.Organism{
			TaxID:   el.SelectAttr("taxid"),
			SciName: strings.TrimSpace(el.InnerText()),
		})
	}
	return organisms
}

func parseSupplementaryData(node *xmlquery.Node) []geo.SupplementaryDataItem {
	var items []geo.SupplementaryDataItem
	for _, el := range xmlquery.Find(node, "Supplementary-Data") {
		items = append(items, geo.SupplementaryDataItem{
			Type: el.SelectAttr("type"),
			URL:  strings.TrimSpace(el.InnerText()),
		})
	}
	return items
}

func parseColumns(node *xmlquery.Node, accession string) ([]geo.Column, error) {
	var columns []geo.Column
	for _, el := range xmlquery.Find(node, "Data-Table/Column") {
		position, err := strconv.Atoi(el.SelectAttr("position"))
		if err != nil {
			return nil, &geo.ParseError{
				Accession: accession,
				Field:     "columns",
				Reason:    fmt.Sprintf("bad column position %q", el.SelectAttr("position")),
			}
		}
		columns = append(columns, geo.Column{
			Position:    position,
			Name:        text(el, "Name"),
			Description: text(el, "Description"),
		})
	}
	return columns, nil
}

// parseInternalData splits the tabular payload on newlines and tabs
// and keys each row by the declared column names.
func (p Parser) parseInternalData(node *xmlquery.Node, accession string, columns []geo.Column) ([]geo.Row, error) {
	raw := text(node, "Data-Table/Internal-Data")
	if raw == "" {
		return nil, nil
	}
	if len(columns) == 0 {
		return nil, &geo.ParseError{
			Accession: accession,
			Field:     "internal_data",
			Reason:    "data rows present but no columns declared",
		}
	}
	var rows []geo.Row
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		for len(fields) > len(columns) && fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}
		if len(fields) != len(columns) {
			if !p.AllowRaggedRows {
				return nil, &geo.ParseError{
					Accession: accession,
					Field:     "internal_data",
					Reason: fmt.Sprintf(
						"row %d has %d fields, header declares %d columns",
						i+1, len(fields), len(columns),
					),
				}
			}
			for len(fields) < len(columns) {
				fields = append(fields, "")
			}
			fields = fields[:len(columns)]
		}
		row := make(geo.Row, len(columns))
		for j, column := range columns {
			row[column.Name] = fields[j]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
