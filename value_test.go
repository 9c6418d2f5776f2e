package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONTypeOf(t *testing.T) {
	cases := map[string]any{
		"null":    nil,
		"boolean": true,
		"string":  "x",
		"array":   []any{},
		"object":  map[string]any{},
		"integer": 4.0,
		"number":  4.5,
	}
	for want, instance := range cases {
		assert.Equal(t, want, jsonTypeOf(instance), "%#v", instance)
	}
}

func TestTypeMatchesIntegerSubtypeOfNumber(t *testing.T) {
	assert.True(t, typeMatches("integer", "number"))
	assert.False(t, typeMatches("number", "integer"))
	assert.True(t, typeMatches("string", "string"))
	assert.False(t, typeMatches("array", "object"))
}

func TestDeepEqualScalarsAndCollections(t *testing.T) {
	assert.True(t, deepEqual(nil, nil))
	assert.True(t, deepEqual(1.0, 1.0))
	assert.False(t, deepEqual(1.0, 2.0))
	assert.True(t, deepEqual("a", "a"))
	assert.True(t, deepEqual([]any{1.0, 2.0}, []any{1.0, 2.0}))
	assert.False(t, deepEqual([]any{1.0, 2.0}, []any{2.0, 1.0}), "array order matters")
	assert.True(t, deepEqual(
		map[string]any{"a": 1.0, "b": 2.0},
		map[string]any{"b": 2.0, "a": 1.0},
	), "object key order does not matter")
	assert.False(t, deepEqual(map[string]any{"a": 1.0}, map[string]any{"a": 1.0, "b": 2.0}))
}

func TestAsSchemaNodeClassification(t *testing.T) {
	node, ok := asSchemaNode(true)
	assert.True(t, ok)
	assert.True(t, node.isBoolean())
	assert.True(t, node.boolValue())

	node, ok = asSchemaNode(map[string]any{"type": "string"})
	assert.True(t, ok)
	assert.False(t, node.isBoolean())
	typ, ok := node.stringKeyword("type")
	assert.True(t, ok)
	assert.Equal(t, "string", typ)

	_, ok = asSchemaNode(5.0)
	assert.False(t, ok, "a bare number is not schema-shaped")
}

func TestTypeSetNormalizesStringOrArray(t *testing.T) {
	node, _ := asSchemaNode(map[string]any{"type": "string"})
	assert.Equal(t, []string{"string"}, node.typeSet())

	node, _ = asSchemaNode(map[string]any{"type": []any{"string", "null"}})
	assert.Equal(t, []string{"string", "null"}, node.typeSet())
}
