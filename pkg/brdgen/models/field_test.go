package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	fields := []Field{
		{Name: "firstName"},
		{Name: "phoneNumber", FieldGroup: "Phone"},
		{Name: "meta_businessId", FieldGroup: MetaGroup},
		{Name: "addressLine1", FieldGroup: "PostalAddress"},
		{Name: "phoneType", FieldGroup: "Phone"},
		{Name: "lastName"},
	}

	standalone, groups := Partition(fields)

	// Meta fields count as standalone; input order preserved.
	assert.Equal(t, []string{"firstName", "meta_businessId", "lastName"}, fieldNames(standalone))

	// Groups in first-seen order, members in insertion order.
	assert.Len(t, groups, 2)
	assert.Equal(t, "Phone", groups[0].Name)
	assert.Equal(t, []string{"phoneNumber", "phoneType"}, fieldNames(groups[0].Fields))
	assert.Equal(t, "PostalAddress", groups[1].Name)
	assert.Equal(t, []string{"addressLine1"}, fieldNames(groups[1].Fields))
}

func TestPartitionEmpty(t *testing.T) {
	standalone, groups := Partition(nil)
	assert.Empty(t, standalone)
	assert.Empty(t, groups)
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  bool
	}{
		{"custom always wins", Field{Name: "classification", IsCustom: true}, true},
		{"custom lookup", Field{Name: "primaryRole", IsCustom: true, IsLookup: true}, true},
		{"meta group", Field{Name: "meta_createdBy", FieldGroup: MetaGroup}, true},
		{"id in name", Field{Name: "constituentId"}, true},
		{"pidm in name", Field{Name: "bannerPidm"}, true},
		{"cwid in name", Field{Name: "cwidNumber"}, true},
		{"plain attribute", Field{Name: "firstName"}, false},
		{"grouped attribute", Field{Name: "city", FieldGroup: "PostalAddress"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.IsIdentifier())
		})
	}
}

func TestDataTypeIsValid(t *testing.T) {
	for _, dt := range DataTypes {
		assert.True(t, dt.IsValid(), string(dt))
	}
	assert.False(t, DataType("VarcharField").IsValid())
	assert.False(t, DataType("").IsValid())
}

func TestEntityLookups(t *testing.T) {
	m := DataModel{Entities: []Entity{
		{Name: "Person", Type: BusinessEntity},
		{Name: "PhoneType", Type: ReferenceEntity},
		{Name: "AddressType", Type: ReferenceEntity},
	}}

	assert.Len(t, m.BusinessEntities(), 1)
	assert.Len(t, m.ReferenceEntities(), 2)
	assert.NotNil(t, m.Entity("PhoneType"))
	assert.Nil(t, m.Entity("Missing"))
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
