// Package report turns a validated data model into a human-review document:
// per-entity field breakdowns, requirement traceability and aggregate counts,
// rendered as a single self-contained HTML file. Analysis and rendering are
// read-only over the input model.
package report

import (
	"sort"
	"strings"

	"github.com/aathik/brdgen-go/pkg/brdgen/models"
)

// noDescription is the excerpt used when no source requirement text matches
// a requirement id.
const noDescription = "No description available"

// Stats holds the aggregate counts shown at the top of the report.
type Stats struct {
	TotalEntities     int
	BusinessEntities  int
	ReferenceEntities int
	TotalFields       int
	OOTBFields        int
	CustomFields      int
	FieldGroups       int
	RequirementIDs    int
	Relationships     int
}

// TraceEntry pairs a requirement id with its excerpt for one field.
type TraceEntry struct {
	ID   string
	Text string
}

// FieldView is one field prepared for rendering.
type FieldView struct {
	models.Field
	Trace    []TraceEntry
	Decision *models.FieldDecision
}

// GroupView is one field-group cluster within an entity.
type GroupView struct {
	Name   string
	Fields []string
}

// EntityView is one entity prepared for rendering. Fields keeps the model's
// insertion order for the table; the category slices reuse the layout
// engine's partition rule so diagram and report always agree.
type EntityView struct {
	Name              string
	Type              models.EntityKind
	Description       string
	Fields            []FieldView
	Identifiers       []string
	GeneralAttributes []string
	MetaFields        []string
	Groups            []GroupView
	Decision          *models.EntityDecision
}

// RequirementRef maps one requirement id back to the fields it justified.
type RequirementRef struct {
	ID      string
	Excerpt string
	Fields  []string // "Entity.field"
}

// Report is the fully analyzed document, ready for serialization.
type Report struct {
	Metadata     models.Metadata
	Reasoning    models.Reasoning
	Stats        Stats
	Business     []EntityView
	Reference    []EntityView
	Requirements []RequirementRef
	RunID        string
}

// Analyze builds a Report from a document. The input is not mutated.
func Analyze(doc *models.Document) *Report {
	r := &Report{
		Metadata:  doc.Metadata,
		Reasoning: doc.Reasoning,
	}

	m := &doc.DataModel
	r.Stats.TotalEntities = len(m.Entities)
	r.Stats.Relationships = len(m.Relationships)

	reqExcerpt := map[string]string{}
	reqFields := map[string][]string{}
	var reqOrder []string
	groupsSeen := 0

	for _, entity := range m.Entities {
		view := analyzeEntity(entity, &doc.Reasoning)
		groupsSeen += len(view.Groups)

		switch entity.Type {
		case models.ReferenceEntity:
			r.Stats.ReferenceEntities++
			r.Reference = append(r.Reference, view)
		default:
			r.Stats.BusinessEntities++
			r.Business = append(r.Business, view)
		}

		for _, f := range entity.Fields {
			r.Stats.TotalFields++
			if f.IsCustom {
				r.Stats.CustomFields++
			} else {
				r.Stats.OOTBFields++
			}

			for _, id := range f.RequirementIDs {
				if _, seen := reqFields[id]; !seen {
					reqOrder = append(reqOrder, id)
				}
				reqFields[id] = append(reqFields[id], entity.Name+"."+f.Name)
				if _, have := reqExcerpt[id]; !have {
					if excerpt, ok := requirementExcerpt(id, f.SourceRequirements); ok {
						reqExcerpt[id] = excerpt
					}
				}
			}
		}
	}

	r.Stats.FieldGroups = groupsSeen
	r.Stats.RequirementIDs = len(reqOrder)

	sort.Strings(reqOrder)
	for _, id := range reqOrder {
		excerpt, ok := reqExcerpt[id]
		if !ok {
			excerpt = noDescription
		}
		r.Requirements = append(r.Requirements, RequirementRef{
			ID:      id,
			Excerpt: excerpt,
			Fields:  reqFields[id],
		})
	}

	return r
}

func analyzeEntity(entity models.Entity, reasoning *models.Reasoning) EntityView {
	view := EntityView{
		Name:        entity.Name,
		Type:        entity.Type,
		Description: entity.Description,
		Decision:    reasoning.EntityDecision(entity.Name),
	}

	standalone, groups := models.Partition(entity.Fields)
	for _, f := range standalone {
		switch {
		case f.InMetaGroup():
			view.MetaFields = append(view.MetaFields, f.Name)
		case f.IsIdentifier():
			view.Identifiers = append(view.Identifiers, f.Name)
		default:
			view.GeneralAttributes = append(view.GeneralAttributes, f.Name)
		}
	}
	for _, g := range groups {
		gv := GroupView{Name: g.Name}
		for _, f := range g.Fields {
			gv.Fields = append(gv.Fields, f.Name)
		}
		view.Groups = append(view.Groups, gv)
	}

	for _, f := range entity.Fields {
		fv := FieldView{
			Field:    f,
			Decision: reasoning.FieldDecision(entity.Name, f.Name),
		}
		for i, id := range f.RequirementIDs {
			text := noDescription
			if i < len(f.SourceRequirements) {
				text = f.SourceRequirements[i]
			}
			fv.Trace = append(fv.Trace, TraceEntry{ID: id, Text: text})
		}
		view.Fields = append(view.Fields, fv)
	}

	return view
}

// requirementExcerpt picks the first source entry mentioning the id, in
// list order. The second result is false when no entry matches, leaving the
// id open for a later field's sources to supply the text.
func requirementExcerpt(id string, sources []string) (string, bool) {
	for _, s := range sources {
		if strings.Contains(s, id) {
			return s, true
		}
	}
	return "", false
}
