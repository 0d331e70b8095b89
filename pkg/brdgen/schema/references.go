package schema

import (
	"fmt"

	"github.com/aathik/brdgen-go/pkg/brdgen/models"
)

// CheckReferences verifies the cross-reference invariants that Validate
// deliberately leaves alone: lookup fields must name an entity present in
// the model, relationship endpoints must exist, and every reference entity
// must carry at least a "code" field. The checks are stricter than the
// baseline shape contract and their findings are advisory warnings, so
// previously generated files that only satisfy the shape contract still
// flow through the pipeline.
func CheckReferences(m *models.DataModel) []string {
	known := make(map[string]bool, len(m.Entities))
	for _, e := range m.Entities {
		known[e.Name] = true
	}

	var warnings []string
	for _, e := range m.Entities {
		for _, f := range e.Fields {
			if !f.IsLookup {
				continue
			}
			if f.LookupEntity == "" {
				warnings = append(warnings, fmt.Sprintf(
					"entity %q: lookup field %q has no lookupEntity", e.Name, f.Name))
				continue
			}
			if !known[f.LookupEntity] {
				warnings = append(warnings, fmt.Sprintf(
					"entity %q: lookup field %q references unknown entity %q", e.Name, f.Name, f.LookupEntity))
			}
		}

		if e.Type == models.ReferenceEntity && !hasCodeField(e) {
			warnings = append(warnings, fmt.Sprintf(
				"reference entity %q has no \"code\" field", e.Name))
		}
	}

	for i, r := range m.Relationships {
		if !known[r.FromEntity] {
			warnings = append(warnings, fmt.Sprintf(
				"relationship %d: fromEntity %q does not exist", i, r.FromEntity))
		}
		if !known[r.ToEntity] {
			warnings = append(warnings, fmt.Sprintf(
				"relationship %d: toEntity %q does not exist", i, r.ToEntity))
		}
	}
	return warnings
}

func hasCodeField(e models.Entity) bool {
	for _, f := range e.Fields {
		if f.Name == "code" {
			return true
		}
	}
	return false
}
