package schema

import (
	"encoding/json"
	"testing"

	"github.com/aathik/brdgen-go/pkg/brdgen/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestValidateWellFormed(t *testing.T) {
	raw := decode(t, `{
		"entities": [
			{
				"name": "Person",
				"type": "BusinessEntity",
				"description": "Constituent master record",
				"fields": [
					{
						"name": "firstName",
						"dataType": "TextField",
						"requirementIds": ["FR-1"],
						"sourceRequirements": ["FR-1: Track customer name"]
					}
				]
			}
		],
		"relationships": [
			{"fromEntity": "Person", "toEntity": "PhoneType", "relationshipType": "hasMany"}
		]
	}`)

	ok, errs := Validate(raw)
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateEnvelopeForm(t *testing.T) {
	raw := decode(t, `{
		"metadata": {"platform": "informatica"},
		"reasoning": {"summary": "one entity"},
		"dataModel": {"entities": [], "relationships": []}
	}`)

	ok, errs := Validate(raw)
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateTopLevelNotObject(t *testing.T) {
	ok, errs := Validate(decode(t, `[1, 2, 3]`))
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "top-level")
}

func TestValidateMissingRelationships(t *testing.T) {
	raw := decode(t, `{"entities": []}`)
	ok, errs := Validate(raw)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "relationships")
}

func TestValidateEntityMissingFields(t *testing.T) {
	// An entity without "fields" yields exactly one error naming the entity
	// and the missing key, and must not panic iterating the absent value.
	raw := decode(t, `{
		"entities": [
			{"name": "Person", "type": "BusinessEntity", "description": "d"}
		],
		"relationships": []
	}`)

	ok, errs := Validate(raw)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `"Person"`)
	assert.Contains(t, errs[0], "fields")
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	raw := decode(t, `{
		"entities": [
			{"name": "Person", "type": "Widget", "description": "d", "fields": "nope"},
			"not an object"
		],
		"relationships": [
			{"fromEntity": "Person"}
		]
	}`)

	ok, errs := Validate(raw)
	assert.False(t, ok)
	// Bad type enum, bad fields type, bad entity value, two missing
	// relationship keys. Never short-circuits.
	assert.Len(t, errs, 5)
}

func TestValidateFieldShape(t *testing.T) {
	raw := decode(t, `{
		"entities": [{
			"name": "Person", "type": "BusinessEntity", "description": "d",
			"fields": [
				{"name": "firstName", "dataType": "TextField",
				 "requirementIds": "FR-1", "sourceRequirements": []},
				{"dataType": "TextField"}
			]
		}],
		"relationships": []
	}`)

	ok, errs := Validate(raw)
	assert.False(t, ok)
	// firstName: requirementIds not an array. Second field: missing name,
	// requirementIds and sourceRequirements.
	assert.Len(t, errs, 4)
}

func TestValidateShapeOnlyAcceptsDanglingLookup(t *testing.T) {
	// isLookup=true with lookupEntity=null passes the shape check; the
	// referential pass flags it separately.
	raw := decode(t, `{
		"entities": [{
			"name": "Person", "type": "BusinessEntity", "description": "d",
			"fields": [{
				"name": "gender", "dataType": "LookupField",
				"isLookup": true, "lookupEntity": null,
				"requirementIds": ["FR-2"], "sourceRequirements": ["FR-2: gender"]
			}]
		}],
		"relationships": []
	}`)

	ok, errs := Validate(raw)
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateRoundTrip(t *testing.T) {
	m := models.Document{
		DataModel: models.DataModel{
			Entities: []models.Entity{{
				Name: "Person", Type: models.BusinessEntity, Description: "d",
				Fields: []models.Field{{
					Name: "firstName", DataType: models.TextField,
					RequirementIDs:     []string{"FR-1"},
					SourceRequirements: []string{"FR-1: name"},
				}},
			}},
			Relationships: []models.Relationship{},
		},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	ok, errs := Validate(decode(t, string(data)))
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestCheckReferences(t *testing.T) {
	m := &models.DataModel{
		Entities: []models.Entity{
			{
				Name: "Person", Type: models.BusinessEntity,
				Fields: []models.Field{
					{Name: "gender", IsLookup: true, LookupEntity: "Gender"},
					{Name: "phoneType", IsLookup: true, LookupEntity: "PhoneType"},
					{Name: "status", IsLookup: true},
				},
			},
			{
				Name: "Gender", Type: models.ReferenceEntity,
				Fields: []models.Field{{Name: "code"}, {Name: "description"}},
			},
			{
				Name: "Status", Type: models.ReferenceEntity,
				Fields: []models.Field{{Name: "description"}},
			},
		},
		Relationships: []models.Relationship{
			{FromEntity: "Person", ToEntity: "Gender"},
			{FromEntity: "Person", ToEntity: "Missing"},
		},
	}

	warnings := CheckReferences(m)
	assert.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "PhoneType")
	assert.Contains(t, warnings[1], "no lookupEntity")
	assert.Contains(t, warnings[2], `"Status"`)
	assert.Contains(t, warnings[3], `"Missing"`)
}

func TestCheckReferencesClean(t *testing.T) {
	m := &models.DataModel{
		Entities: []models.Entity{
			{Name: "Person", Type: models.BusinessEntity},
		},
	}
	assert.Empty(t, CheckReferences(m))
}
