// Package models defines the typed data model parsed from the language
// model's JSON response. A Document is decoded once, validated, and treated
// as read-only for the rest of a pipeline run.
package models

// EntityKind is the closed set of entity types.
type EntityKind string

const (
	// BusinessEntity is a main master-data entity holding core business records.
	BusinessEntity EntityKind = "BusinessEntity"
	// ReferenceEntity is a lookup table providing controlled vocabulary values.
	ReferenceEntity EntityKind = "ReferenceEntity"
)

// IsValid reports whether k is one of the enumerated entity kinds.
func (k EntityKind) IsValid() bool {
	return k == BusinessEntity || k == ReferenceEntity
}

// RelationshipKind is the closed set of relationship types.
type RelationshipKind string

const (
	HasOne  RelationshipKind = "hasOne"
	HasMany RelationshipKind = "hasMany"
)

// Entity represents a named record type with an ordered field list.
type Entity struct {
	// Name is the entity name, unique within a model.
	Name string `json:"name"`
	// Type is the entity kind (BusinessEntity or ReferenceEntity).
	Type EntityKind `json:"type"`
	// Description is a human-readable summary.
	Description string `json:"description"`
	// Fields is the ordered field list; order drives rendering order.
	Fields []Field `json:"fields"`
}

// Relationship is a directed edge between two entities by name.
type Relationship struct {
	// FromEntity is the source entity name.
	FromEntity string `json:"fromEntity"`
	// ToEntity is the target entity name.
	ToEntity string `json:"toEntity"`
	// RelationshipType is the edge kind (hasOne, hasMany).
	RelationshipType RelationshipKind `json:"relationshipType"`
	// Description is a human-readable summary.
	Description string `json:"description"`
}

// DataModel is the aggregate root: ordered entities and relationships.
type DataModel struct {
	// Entities is the ordered entity list.
	Entities []Entity `json:"entities"`
	// Relationships is the ordered relationship list.
	Relationships []Relationship `json:"relationships"`
}

// Metadata carries generation metadata from the model response.
type Metadata struct {
	// OriginalFRD is the source document text echoed by the model.
	OriginalFRD string `json:"originalFRD,omitempty"`
	// GeneratedDate is the generation date (YYYY-MM-DD).
	GeneratedDate string `json:"generatedDate,omitempty"`
	// Platform is the target MDM platform.
	Platform string `json:"platform,omitempty"`
}

// Document is the full response envelope: metadata and reasoning wrap the
// data model itself. Responses that omit the envelope decode into DataModel
// directly instead.
type Document struct {
	Metadata  Metadata  `json:"metadata,omitempty"`
	Reasoning Reasoning `json:"reasoning,omitempty"`
	DataModel DataModel `json:"dataModel"`
}

// BusinessEntities returns the business entities in model order.
func (m *DataModel) BusinessEntities() []Entity {
	var out []Entity
	for _, e := range m.Entities {
		if e.Type == BusinessEntity {
			out = append(out, e)
		}
	}
	return out
}

// ReferenceEntities returns the reference entities in model order.
func (m *DataModel) ReferenceEntities() []Entity {
	var out []Entity
	for _, e := range m.Entities {
		if e.Type == ReferenceEntity {
			out = append(out, e)
		}
	}
	return out
}

// Entity returns the entity with the given name, or nil.
func (m *DataModel) Entity(name string) *Entity {
	for i := range m.Entities {
		if m.Entities[i].Name == name {
			return &m.Entities[i]
		}
	}
	return nil
}
