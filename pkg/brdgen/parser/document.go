// Package parser reads BRD/FRD workbooks: it flattens every sheet into
// plain text for prompt construction and extracts requirement tables for
// traceability.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyWorkbook indicates the workbook contains no non-empty rows.
var ErrEmptyWorkbook = errors.New("workbook contains no data")

// charsPerPage is the rough character count of one printed page, used only
// for the size estimate in Stats.
const charsPerPage = 3000

// Source is the flattened text of one workbook.
type Source struct {
	// Name is the workbook file name (base name, with extension).
	Name string
	// Text is the full extracted text: sheets delimited by "=== name ==="
	// headers, non-empty rows tab-joined.
	Text string
	// SheetCount is the number of sheets read.
	SheetCount int
	// RowCount is the number of non-empty rows across all sheets.
	RowCount int
}

// Stats summarizes the extracted text size.
type Stats struct {
	Characters int
	Words      int
	Pages      int
}

// Stats returns size statistics for the extracted text.
func (s *Source) Stats() Stats {
	chars := utf8.RuneCountInString(s.Text)
	return Stats{
		Characters: chars,
		Words:      len(strings.Fields(s.Text)),
		Pages:      (chars + charsPerPage - 1) / charsPerPage,
	}
}

// ParseSource opens an xlsx workbook, flattens it to text and extracts the
// requirement table, reading the file once for both.
func ParseSource(path string, params ExtractionParams) (*Source, []Requirement, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	src, err := ReadSource(f, filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}

	reqs, err := ExtractRequirements(f, params)
	if err != nil {
		return nil, nil, err
	}

	return src, reqs, nil
}

// ReadSource flattens an open workbook to text. Every sheet is included,
// headed by "=== name ===". Cells within a row are tab-joined with empty
// cells dropped; empty rows are skipped. A workbook with no data at all
// returns ErrEmptyWorkbook.
func ReadSource(f *excelize.File, name string) (*Source, error) {
	var b strings.Builder
	rowCount := 0

	sheetList := f.GetSheetList()
	for _, sheetName := range sheetList {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
		}

		b.WriteString("=== ")
		b.WriteString(sheetName)
		b.WriteString(" ===\n")

		for _, row := range rows {
			cells := nonEmptyCells(row)
			if len(cells) == 0 {
				continue
			}
			b.WriteString(strings.Join(cells, "\t"))
			b.WriteByte('\n')
			rowCount++
		}
		b.WriteByte('\n')
	}

	if rowCount == 0 {
		return nil, ErrEmptyWorkbook
	}

	return &Source{
		Name:       name,
		Text:       b.String(),
		SheetCount: len(sheetList),
		RowCount:   rowCount,
	}, nil
}

// nonEmptyCells returns the non-empty, whitespace-trimmed cells of a row.
func nonEmptyCells(row []string) []string {
	var cells []string
	for _, cell := range row {
		trimmed := strings.TrimSpace(cell)
		if trimmed != "" {
			cells = append(cells, trimmed)
		}
	}
	return cells
}
