// Package output serializes pipeline artifacts and writes them to disk.
package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// ToJSON serializes v to JSON, optionally pretty-printed with two-space
// indentation.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ArtifactStem derives the artifact base name from a workbook file name:
// the extension is dropped and the remainder is lowercased with spaces and
// hyphens replaced by underscores.
func ArtifactStem(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	stem = strings.ToLower(stem)
	stem = strings.ReplaceAll(stem, " ", "_")
	stem = strings.ReplaceAll(stem, "-", "_")
	return stem
}
