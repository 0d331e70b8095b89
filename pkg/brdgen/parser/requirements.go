package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Requirement is one functional or data-quality requirement recovered from
// the workbook, keyed by its normalized id.
type Requirement struct {
	ID          string
	Description string
}

// requirementID matches requirement references like "FR-12", "FR 12",
// "fr_012" or "DQR3". Captures the kind and number so ids can be
// normalized to "FR-12" / "DQR-3".
var requirementID = regexp.MustCompile(`(?i)\b(FR|DQR)[-_ ]?0*([0-9]+)\b`)

// ExtractionParams tunes requirement table discovery.
type ExtractionParams struct {
	// SheetKeywords select requirement sheets by name. When no sheet
	// matches, every sheet is scanned.
	SheetKeywords []string
	// MinDescriptionLen drops descriptions shorter than this many
	// characters, typically stray header or id cells.
	MinDescriptionLen int
}

// DefaultExtractionParams returns the discovery parameters that match the
// spreadsheet conventions seen in BRD/FRD workbooks.
func DefaultExtractionParams() ExtractionParams {
	return ExtractionParams{
		SheetKeywords:     []string{"functional", "requirement"},
		MinDescriptionLen: 10,
	}
}

// ExtractRequirements scans the workbook for requirement tables and returns
// the requirements in first-seen order. When an id appears multiple times
// the longest description wins.
func ExtractRequirements(f *excelize.File, params ExtractionParams) ([]Requirement, error) {
	sheets := candidateSheets(f, params.SheetKeywords)

	byID := make(map[string]int)
	var result []Requirement

	for _, sheetName := range sheets {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
		}

		descCol, commentCol := findColumns(rows)

		for _, row := range rows {
			id, idCol := findRequirementID(row)
			if id == "" {
				continue
			}

			desc := rowDescription(row, idCol, descCol, commentCol)
			if len(desc) < params.MinDescriptionLen {
				continue
			}

			if idx, seen := byID[id]; seen {
				if len(desc) > len(result[idx].Description) {
					result[idx].Description = desc
				}
				continue
			}
			byID[id] = len(result)
			result = append(result, Requirement{ID: id, Description: desc})
		}
	}

	return result, nil
}

// candidateSheets returns the sheets whose names contain any keyword, or
// every sheet when none match.
func candidateSheets(f *excelize.File, keywords []string) []string {
	all := f.GetSheetList()

	var matched []string
	for _, name := range all {
		lower := strings.ToLower(name)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, name)
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}
	return all
}

// findColumns locates the description and comments columns from the first
// row that looks like a table header. Either index is -1 when not found.
func findColumns(rows [][]string) (descCol, commentCol int) {
	descCol, commentCol = -1, -1
	for _, row := range rows {
		for colIdx, cell := range row {
			lower := strings.ToLower(strings.TrimSpace(cell))
			switch {
			case descCol < 0 && (strings.Contains(lower, "description") || strings.Contains(lower, "requirement")):
				// Header cells are short; data cells with these words
				// tend to be full sentences.
				if len(lower) <= 40 {
					descCol = colIdx
				}
			case commentCol < 0 && strings.Contains(lower, "comment"):
				if len(lower) <= 40 {
					commentCol = colIdx
				}
			}
		}
		if descCol >= 0 {
			return descCol, commentCol
		}
	}
	return descCol, commentCol
}

// findRequirementID returns the normalized id of the first cell matching
// the requirement pattern, and that cell's column index.
func findRequirementID(row []string) (string, int) {
	for colIdx, cell := range row {
		m := requirementID.FindStringSubmatch(cell)
		if m == nil {
			continue
		}
		return strings.ToUpper(m[1]) + "-" + m[2], colIdx
	}
	return "", -1
}

// rowDescription picks the requirement text for one row: the description
// column when present, otherwise the longest cell that is not the id cell.
// A non-empty comments cell is appended.
func rowDescription(row []string, idCol, descCol, commentCol int) string {
	var desc string
	if descCol >= 0 && descCol < len(row) && descCol != idCol {
		desc = strings.TrimSpace(row[descCol])
	}
	if desc == "" {
		for colIdx, cell := range row {
			if colIdx == commentCol {
				continue
			}
			trimmed := strings.TrimSpace(cell)
			// The id cell counts only when it carries more than the
			// bare id, e.g. "FR-1: The system shall ...".
			if colIdx == idCol && len(trimmed) < 12 {
				continue
			}
			if len(trimmed) > len(desc) {
				desc = trimmed
			}
		}
	}

	if commentCol >= 0 && commentCol < len(row) && commentCol != idCol {
		comment := strings.TrimSpace(row[commentCol])
		if comment != "" && comment != desc {
			if desc != "" {
				desc += " | " + comment
			} else {
				desc = comment
			}
		}
	}

	return desc
}
