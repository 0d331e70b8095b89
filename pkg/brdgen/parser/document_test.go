package parser

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// saveWorkbook writes an excelize file to a temp path and reopens it, so
// tests read through the same code path as production.
func saveWorkbook(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
	return reopened
}

func TestReadSource(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "Overview")
	f.SetCellValue("Sheet1", "A2", "Customer onboarding")
	f.SetCellValue("Sheet1", "C2", "v1.2")
	_, err := f.NewSheet("Scope")
	require.NoError(t, err)
	f.SetCellValue("Scope", "A1", "In scope")
	f.SetCellValue("Scope", "B1", "Person records")

	src, err := ReadSource(saveWorkbook(t, f), "customer.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "customer.xlsx", src.Name)
	assert.Equal(t, 2, src.SheetCount)
	assert.Equal(t, 3, src.RowCount)
	assert.Contains(t, src.Text, "=== Sheet1 ===\n")
	assert.Contains(t, src.Text, "=== Scope ===\n")
	// Empty cells are dropped, survivors tab-joined.
	assert.Contains(t, src.Text, "Customer onboarding\tv1.2\n")
	assert.Contains(t, src.Text, "In scope\tPerson records\n")
}

func TestReadSourceSkipsEmptyRows(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "first")
	f.SetCellValue("Sheet1", "A5", "second")

	src, err := ReadSource(saveWorkbook(t, f), "gaps.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 2, src.RowCount)
	lines := strings.Split(strings.TrimSpace(src.Text), "\n")
	assert.Equal(t, []string{"=== Sheet1 ===", "first", "second"}, lines)
}

func TestReadSourceEmptyWorkbook(t *testing.T) {
	f := excelize.NewFile()

	_, err := ReadSource(saveWorkbook(t, f), "empty.xlsx")
	require.ErrorIs(t, err, ErrEmptyWorkbook)
}

func TestParseSourceMissingFile(t *testing.T) {
	_, _, err := ParseSource(filepath.Join(t.TempDir(), "nope.xlsx"), DefaultExtractionParams())
	require.Error(t, err)
}

func TestParseSourceTextAndRequirements(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Functional Requirements")
	require.NoError(t, err)
	f.SetCellValue("Functional Requirements", "A1", "Req ID")
	f.SetCellValue("Functional Requirements", "B1", "Description")
	f.SetCellValue("Functional Requirements", "A2", "FR-1")
	f.SetCellValue("Functional Requirements", "B2", "The system shall store person names.")

	path := filepath.Join(t.TempDir(), "frd.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	src, reqs, err := ParseSource(path, DefaultExtractionParams())
	require.NoError(t, err)

	assert.Equal(t, "frd.xlsx", src.Name)
	assert.Contains(t, src.Text, "=== Functional Requirements ===")
	require.Len(t, reqs, 1)
	assert.Equal(t, "FR-1", reqs[0].ID)
}

func TestSourceStats(t *testing.T) {
	src := &Source{Text: "one two three four"}
	stats := src.Stats()

	assert.Equal(t, 18, stats.Characters)
	assert.Equal(t, 4, stats.Words)
	assert.Equal(t, 1, stats.Pages)
}
