// Package prompt assembles the model instructions for data model generation.
// The system prompt ships embedded; the out-of-the-box entity catalog section
// can be swapped for a site-specific one at runtime.
package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed system_prompt.txt
var systemPrompt string

//go:embed ootb_catalog.txt
var defaultCatalog string

// catalogMarker is the placeholder in the system prompt replaced by the
// entity catalog.
const catalogMarker = "{{CATALOG}}"

// DefaultCatalog returns the embedded out-of-the-box entity catalog.
func DefaultCatalog() string {
	return defaultCatalog
}

// LoadCatalog reads a site-specific catalog file. An empty path selects the
// embedded default.
func LoadCatalog(path string) (string, error) {
	if path == "" {
		return defaultCatalog, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("loading catalog: %w", err)
	}
	return string(data), nil
}

// Build assembles the system and user prompts for one source document.
// An empty catalog selects the embedded default.
func Build(sourceText, catalog string) (system, user string) {
	if catalog == "" {
		catalog = defaultCatalog
	}
	system = strings.Replace(systemPrompt, catalogMarker, strings.TrimSpace(catalog), 1)

	var b strings.Builder
	b.WriteString("Analyze this FRD and generate an Informatica MDM data model.\n\n")
	b.WriteString("FRD:\n")
	b.WriteString(sourceText)
	b.WriteString("\n\nReturn ONLY valid JSON with metadata, reasoning, and dataModel sections.\n")
	user = b.String()

	return system, user
}

// Combined joins the system and user prompts into the single text written to
// the prompt artifact, so the exact model input can be reviewed or replayed.
func Combined(system, user string) string {
	return system + "\n\n---\n\n" + user
}
