package models

// Reasoning holds the model's free-text justification for its decisions.
// It is rendered in the report but never structurally validated.
type Reasoning struct {
	// Summary is a one-paragraph explanation of the overall approach.
	Summary string `json:"summary,omitempty"`
	// EntityDecisions justifies each entity choice.
	EntityDecisions []EntityDecision `json:"entityDecisions,omitempty"`
	// FieldDecisions justifies each field choice.
	FieldDecisions []FieldDecision `json:"fieldDecisions,omitempty"`
}

// EntityDecision explains why one entity was modelled.
type EntityDecision struct {
	EntityName   string `json:"entityName"`
	EntityType   string `json:"entityType,omitempty"`
	Reason       string `json:"reason"`
	FRDReference string `json:"frdReference,omitempty"`
	OOTBVsCustom string `json:"ootbVsCustom,omitempty"`
}

// FieldDecision explains why one field was added.
type FieldDecision struct {
	EntityName         string `json:"entityName"`
	FieldName          string `json:"fieldName"`
	FieldGroup         string `json:"fieldGroup,omitempty"`
	Reason             string `json:"reason"`
	FRDReference       string `json:"frdReference,omitempty"`
	InferredOrExplicit string `json:"inferredOrExplicit,omitempty"`
	OOTBVsCustom       string `json:"ootbVsCustom,omitempty"`
}

// EntityDecision returns the decision for the named entity, or nil.
func (r *Reasoning) EntityDecision(entityName string) *EntityDecision {
	for i := range r.EntityDecisions {
		if r.EntityDecisions[i].EntityName == entityName {
			return &r.EntityDecisions[i]
		}
	}
	return nil
}

// FieldDecision returns the decision for the named field, or nil.
func (r *Reasoning) FieldDecision(entityName, fieldName string) *FieldDecision {
	for i := range r.FieldDecisions {
		d := &r.FieldDecisions[i]
		if d.EntityName == entityName && d.FieldName == fieldName {
			return d
		}
	}
	return nil
}
