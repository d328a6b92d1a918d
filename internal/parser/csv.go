package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser renders CSV files as a single Markdown table.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Source, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &Source{
		Title:    titleFromFilename(filename),
		Filename: filename,
	}
	if len(records) == 0 {
		return doc, nil
	}

	// First row is headers; short rows are padded to its width.
	headers := records[0]
	width := len(headers)
	for _, row := range records[1:] {
		width = max(width, len(row))
	}

	var sb strings.Builder
	sb.WriteString(tableRow(headers, width))
	sb.WriteString(tableRow(separatorRow(width), width))
	for _, row := range records[1:] {
		sb.WriteString(tableRow(row, width))
	}
	doc.Markdown = sb.String()

	return doc, nil
}

func separatorRow(width int) []string {
	cells := make([]string, width)
	for i := range cells {
		cells[i] = "---"
	}
	return cells
}

// tableRow renders one pipe-table row terminated by a newline.
func tableRow(cells []string, width int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i := 0; i < width; i++ {
		cell := ""
		if i < len(cells) {
			cell = escapeCell(cells[i])
		}
		sb.WriteString(" " + cell + " |")
	}
	sb.WriteString("\n")
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}
