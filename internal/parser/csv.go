package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/markdownql/internal/doctree"
)

// CSVParser handles CSV files. The header row becomes a level-1 heading and
// each data row a paragraph of "header: cell" pairs.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := &doctree.DocTree{
		Title: title(filename),
		Root:  doctree.NewRoot(),
	}
	if len(records) == 0 {
		return tree, nil
	}

	// First row is headers.
	headers := records[0]
	heading := &doctree.Node{Kind: doctree.KindHeading, Type: "Header", Level: 1}
	tree.Root.Append(heading.Append(doctree.Text(strings.Join(headers, ", "))))

	for _, row := range records[1:] {
		var text strings.Builder
		for j, cell := range row {
			if j > 0 {
				text.WriteString(", ")
			}
			if j < len(headers) {
				text.WriteString(headers[j] + ": " + cell)
			} else {
				text.WriteString(cell)
			}
		}
		tree.Root.Append(paragraph(text.String()))
	}

	return tree, nil
}
