package jsonschema

import (
	"testing"

	goccyjson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAnyOfPrefersNonNullBranch(t *testing.T) {
	reg := mustRegistry(t, `{"anyOf":[{"type":"string"},{"type":"null"}]}`)

	for _, seed := range []uint64{1, 2, 3, 42, 1000} {
		gen := NewGenerator(reg, seed)
		value, err := gen.Generate("#")
		require.NoError(t, err)
		_, isString := value.(string)
		assert.True(t, isString, "seed %d: expected a string, got %#v", seed, value)
	}
}

func TestGenerateAllOfWithRefBase(t *testing.T) {
	doc := []byte(`{
		"components": {
			"schemas": {
				"Base": {
					"type": "object",
					"properties": {"token": {"type": "string"}},
					"required": ["token"]
				},
				"Child": {
					"allOf": [
						{"$ref": "#/components/schemas/Base"},
						{
							"properties": {"family": {"type": "string"}},
							"required": ["family"]
						}
					]
				}
			}
		}
	}`)
	reg, err := NewRegistry(doc)
	require.NoError(t, err)

	gen := NewGenerator(reg, 7)
	value, err := gen.Generate("#/components/schemas/Child")
	require.NoError(t, err)

	obj, ok := value.(map[string]any)
	require.True(t, ok, "expected an object, got %#v", value)
	assert.Contains(t, obj, "token")
	assert.Contains(t, obj, "family")
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	doc := []byte(`{
		"components": {
			"schemas": {
				"User": {
					"type": "object",
					"properties": {
						"id": {"type": "integer", "minimum": 1, "maximum": 1000000},
						"name": {"type": "string", "minLength": 5, "maxLength": 20}
					},
					"required": ["id", "name"]
				}
			}
		}
	}`)
	reg, err := NewRegistry(doc)
	require.NoError(t, err)

	gen42a := NewGenerator(reg, 42)
	first, err := gen42a.Generate("#/components/schemas/User")
	require.NoError(t, err)

	gen42b := NewGenerator(reg, 42)
	second, err := gen42b.Generate("#/components/schemas/User")
	require.NoError(t, err)

	firstJSON, err := goccyjson.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := goccyjson.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON), "same seed must produce byte-identical output")

	genOther := NewGenerator(reg, 43)
	third, err := genOther.Generate("#/components/schemas/User")
	require.NoError(t, err)
	thirdJSON, err := goccyjson.Marshal(third)
	require.NoError(t, err)
	assert.NotEqual(t, string(firstJSON), string(thirdJSON), "a different seed should differ on at least one field")
}

func TestGenerateRoundTripsThroughValidate(t *testing.T) {
	doc := []byte(`{
		"components": {
			"schemas": {
				"User": {
					"type": "object",
					"properties": {
						"id": {"type": "integer", "minimum": 1, "maximum": 1000000},
						"name": {"type": "string", "minLength": 5, "maxLength": 20},
						"role": {"enum": ["admin", "member"]}
					},
					"required": ["id", "name"]
				}
			}
		}
	}`)
	reg, err := NewRegistry(doc)
	require.NoError(t, err)

	for _, seed := range []uint64{1, 42, 99} {
		gen := NewGenerator(reg, seed)
		instance, err := gen.Generate("#/components/schemas/User")
		require.NoError(t, err)

		result, err := reg.Validate("#/components/schemas/User", instance)
		require.NoError(t, err)
		assert.True(t, result.Valid, "seed %d: generated instance %#v should validate: %s", seed, instance, result.Summary())
	}
}

func TestGenerateBooleanSchemas(t *testing.T) {
	reg := mustRegistry(t, `true`)
	gen := NewGenerator(reg, 1)
	value, err := gen.Generate("#")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, value)

	reg = mustRegistry(t, `false`)
	gen = NewGenerator(reg, 1)
	value, err = gen.Generate("#")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestGenerateSelfReferenceCycleProducesMarker(t *testing.T) {
	reg := mustRegistry(t, `{"$ref": "#"}`)
	gen := NewGenerator(reg, 1)
	value, err := gen.Generate("#")
	require.NoError(t, err)

	obj, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, obj, "$comment")
}
