// Package schema validates the shape of a decoded language-model response
// against the data-model contract. Validation accumulates every violation
// found rather than stopping at the first, so one run surfaces the complete
// defect list, and it never panics on malformed input.
package schema

import (
	"fmt"

	"github.com/aathik/brdgen-go/pkg/brdgen/models"
)

// Validate checks that raw (an arbitrary decoded JSON value) matches the
// required entity/field/relationship shape. It accepts either the bare
// {entities, relationships} form or the full response envelope with the
// model nested under "dataModel". The result is advisory: callers choose
// whether to abort or render a partially-invalid model.
func Validate(raw any) (bool, []string) {
	var errs []string

	root, ok := raw.(map[string]any)
	if !ok {
		return false, []string{fmt.Sprintf("top-level value must be a JSON object, got %s", typeName(raw))}
	}

	// Envelope form: descend into the dataModel section.
	if dm, present := root["dataModel"]; present {
		inner, ok := dm.(map[string]any)
		if !ok {
			return false, []string{fmt.Sprintf("\"dataModel\" must be a JSON object, got %s", typeName(dm))}
		}
		root = inner
	}

	entities, present := root["entities"]
	if !present {
		errs = append(errs, "missing \"entities\"")
	} else if list, ok := entities.([]any); !ok {
		errs = append(errs, fmt.Sprintf("\"entities\" must be an array, got %s", typeName(entities)))
	} else {
		for i, e := range list {
			errs = append(errs, validateEntity(i, e)...)
		}
	}

	relationships, present := root["relationships"]
	if !present {
		errs = append(errs, "missing \"relationships\"")
	} else if list, ok := relationships.([]any); !ok {
		errs = append(errs, fmt.Sprintf("\"relationships\" must be an array, got %s", typeName(relationships)))
	} else {
		for i, r := range list {
			errs = append(errs, validateRelationship(i, r)...)
		}
	}

	return len(errs) == 0, errs
}

func validateEntity(index int, raw any) []string {
	entity, ok := raw.(map[string]any)
	if !ok {
		return []string{fmt.Sprintf("entity %d: must be a JSON object, got %s", index, typeName(raw))}
	}

	// Prefer the entity's own name in messages when it has one.
	label := fmt.Sprintf("entity %d", index)
	if name, ok := entity["name"].(string); ok && name != "" {
		label = fmt.Sprintf("entity %q", name)
	}

	var errs []string
	if _, ok := entity["name"].(string); !ok {
		errs = append(errs, fmt.Sprintf("%s: missing or non-string \"name\"", label))
	}

	kind, present := entity["type"]
	if !present {
		errs = append(errs, fmt.Sprintf("%s: missing \"type\"", label))
	} else if s, ok := kind.(string); !ok || !models.EntityKind(s).IsValid() {
		errs = append(errs, fmt.Sprintf("%s: \"type\" must be %q or %q, got %v",
			label, models.BusinessEntity, models.ReferenceEntity, kind))
	}

	if _, ok := entity["description"].(string); !ok {
		errs = append(errs, fmt.Sprintf("%s: missing or non-string \"description\"", label))
	}

	fields, present := entity["fields"]
	if !present {
		errs = append(errs, fmt.Sprintf("%s: missing \"fields\"", label))
		return errs
	}
	list, ok := fields.([]any)
	if !ok {
		errs = append(errs, fmt.Sprintf("%s: \"fields\" must be an array, got %s", label, typeName(fields)))
		return errs
	}
	for i, f := range list {
		errs = append(errs, validateField(label, i, f)...)
	}
	return errs
}

func validateField(entityLabel string, index int, raw any) []string {
	field, ok := raw.(map[string]any)
	if !ok {
		return []string{fmt.Sprintf("%s: field %d: must be a JSON object, got %s", entityLabel, index, typeName(raw))}
	}

	label := fmt.Sprintf("%s: field %d", entityLabel, index)
	if name, ok := field["name"].(string); ok && name != "" {
		label = fmt.Sprintf("%s: field %q", entityLabel, name)
	}

	var errs []string
	if _, ok := field["name"].(string); !ok {
		errs = append(errs, fmt.Sprintf("%s: missing or non-string \"name\"", label))
	}
	if _, ok := field["dataType"].(string); !ok {
		errs = append(errs, fmt.Sprintf("%s: missing or non-string \"dataType\"", label))
	}
	for _, key := range []string{"requirementIds", "sourceRequirements"} {
		v, present := field[key]
		if !present {
			errs = append(errs, fmt.Sprintf("%s: missing %q", label, key))
			continue
		}
		if _, ok := v.([]any); !ok {
			errs = append(errs, fmt.Sprintf("%s: %q must be an array, got %s", label, key, typeName(v)))
		}
	}
	return errs
}

func validateRelationship(index int, raw any) []string {
	rel, ok := raw.(map[string]any)
	if !ok {
		return []string{fmt.Sprintf("relationship %d: must be a JSON object, got %s", index, typeName(raw))}
	}

	var errs []string
	for _, key := range []string{"fromEntity", "toEntity", "relationshipType"} {
		if _, ok := rel[key].(string); !ok {
			errs = append(errs, fmt.Sprintf("relationship %d: missing or non-string %q", index, key))
		}
	}
	return errs
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
