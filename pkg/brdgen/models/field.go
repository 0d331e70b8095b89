package models

import "strings"

// DataType is the closed set of field data types.
type DataType string

const (
	TextField     DataType = "TextField"
	LookupField   DataType = "LookupField"
	DateField     DataType = "DateField"
	DateTimeField DataType = "DateTimeField"
	BooleanField  DataType = "BooleanField"
	IntegerField  DataType = "IntegerField"
	DoubleField   DataType = "DoubleField"
	ClobField     DataType = "ClobField"
)

// DataTypes lists every valid data type.
var DataTypes = []DataType{
	TextField, LookupField, DateField, DateTimeField,
	BooleanField, IntegerField, DoubleField, ClobField,
}

// IsValid reports whether t is one of the enumerated data types.
func (t DataType) IsValid() bool {
	for _, v := range DataTypes {
		if t == v {
			return true
		}
	}
	return false
}

// MetaGroup is the field group label reserved for standard meta fields.
// Meta fields render as standalone identifiers, not as a field group.
const MetaGroup = "_meta"

// Field belongs to exactly one entity; insertion order is preserved.
type Field struct {
	// Name is the field name (camelCase by convention).
	Name string `json:"name"`
	// DataType is the field data type.
	DataType DataType `json:"dataType"`
	// FieldGroup is the optional group label. Fields sharing a non-empty,
	// non-meta group render together and represent a one-to-many
	// relationship from the owning entity.
	FieldGroup string `json:"fieldGroup,omitempty"`
	// IsCustom marks fields created for specific business needs rather
	// than drawn from the out-of-the-box catalog.
	IsCustom bool `json:"isCustom"`
	// IsRequired marks mandatory fields.
	IsRequired bool `json:"isRequired"`
	// IsLookup marks fields whose values come from a reference entity.
	IsLookup bool `json:"isLookup"`
	// LookupEntity names the reference entity when IsLookup is true.
	LookupEntity string `json:"lookupEntity,omitempty"`
	// Description is a human-readable summary.
	Description string `json:"description"`
	// RequirementIDs lists the requirement ids that justified this field.
	RequirementIDs []string `json:"requirementIds"`
	// SourceRequirements lists requirement excerpts, parallel to RequirementIDs.
	SourceRequirements []string `json:"sourceRequirements"`
}

// InMetaGroup reports whether the field belongs to the reserved meta group.
func (f *Field) InMetaGroup() bool {
	return f.FieldGroup == MetaGroup
}

// IsIdentifier reports whether the field renders in the identifier style:
// custom fields always, then meta fields and fields whose name suggests an
// identifier.
func (f *Field) IsIdentifier() bool {
	if f.IsCustom {
		return true
	}
	if f.InMetaGroup() {
		return true
	}
	name := strings.ToLower(f.Name)
	return strings.Contains(name, "id") ||
		strings.Contains(name, "pidm") ||
		strings.Contains(name, "cwid")
}

// FieldGroup is a named cluster of fields within one entity.
type FieldGroup struct {
	// Name is the group label.
	Name string
	// Fields holds the member fields in insertion order.
	Fields []Field
}

// Partition splits an entity's fields into standalone fields (no group or
// the meta group) and field groups in first-seen order, preserving field
// order within each part. The layout engine and the report renderer share
// this rule so diagram and report always agree.
func Partition(fields []Field) (standalone []Field, groups []FieldGroup) {
	index := make(map[string]int)
	for _, f := range fields {
		if f.FieldGroup == "" || f.FieldGroup == MetaGroup {
			standalone = append(standalone, f)
			continue
		}
		i, ok := index[f.FieldGroup]
		if !ok {
			i = len(groups)
			index[f.FieldGroup] = i
			groups = append(groups, FieldGroup{Name: f.FieldGroup})
		}
		groups[i].Fields = append(groups[i].Fields, f)
	}
	return standalone, groups
}
