package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsHandleOnlyForSchemaShapedValues(t *testing.T) {
	doc := []byte(`{"type": "object", "properties": {"name": {"type": "string"}}, "count": 5}`)
	reg, err := NewRegistry(doc)
	require.NoError(t, err)

	_, err = reg.Get("#")
	assert.NoError(t, err)

	_, err = reg.Get("#/properties/name")
	assert.NoError(t, err)

	_, err = reg.Get("#/count")
	assert.Error(t, err, "a bare number is not schema-shaped")
}

func TestGetCachesByPointer(t *testing.T) {
	doc := []byte(`{"properties": {"name": {"type": "string"}}}`)
	reg, err := NewRegistry(doc)
	require.NoError(t, err)

	first, err := reg.Get("#/properties/name")
	require.NoError(t, err)
	second, err := reg.Get("#/properties/name")
	require.NoError(t, err)
	assert.Same(t, first, second, "repeated Get on the same pointer returns the cached handle")
}

func TestResolveRefForms(t *testing.T) {
	doc := []byte(`{
		"$defs": {
			"Named": {"$anchor": "named", "$id": "named-schema", "type": "string"}
		},
		"properties": {"x": {"$ref": "#/$defs/Named"}}
	}`)
	reg, err := NewRegistry(doc)
	require.NoError(t, err)

	byPointer, err := reg.resolveRef("#/$defs/Named")
	require.NoError(t, err)
	assert.Equal(t, "#/$defs/Named", byPointer.Pointer)

	byAnchor, err := reg.resolveRef("#named")
	require.NoError(t, err)
	assert.Equal(t, "#/$defs/Named", byAnchor.Pointer)

	byID, err := reg.resolveRef("named-schema")
	require.NoError(t, err)
	assert.Equal(t, "#/$defs/Named", byID.Pointer)

	_, err = reg.resolveRef("https://example.com/external.json")
	assert.ErrorIs(t, err, ErrRefExternal)
}

func TestGetComponentSchemas(t *testing.T) {
	doc := []byte(`{
		"components": {
			"schemas": {
				"User": {"type": "object"},
				"Pet": {"type": "object"}
			}
		}
	}`)
	reg, err := NewRegistry(doc)
	require.NoError(t, err)

	schemas := reg.getComponentSchemas()
	assert.Len(t, schemas, 2)
	assert.Equal(t, "#/components/schemas/User", schemas["User"])
}

func TestCustomFormatRegistration(t *testing.T) {
	doc := []byte(`{"type": "string", "format": "even-digits"}`)
	reg, err := NewRegistry(doc)
	require.NoError(t, err)
	reg.SetAssertFormat(true)

	reg.RegisterFormat("even-digits", func(s string) bool {
		return len(s)%2 == 0
	})

	result, err := reg.Validate("#", "1234")
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = reg.Validate("#", "123")
	require.NoError(t, err)
	assert.False(t, result.Valid)

	reg.UnregisterFormat("even-digits")
	result, err = reg.Validate("#", "123")
	require.NoError(t, err)
	assert.True(t, result.Valid, "an unregistered format becomes annotation-only")
}

func TestNewRegistryRejectsNonJSON(t *testing.T) {
	_, err := NewRegistry([]byte("not json"))
	assert.ErrorIs(t, err, ErrNotJSON)
}
