package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsWithMinMaxContains(t *testing.T) {
	reg := mustRegistry(t, `{
		"contains": {"type": "integer"},
		"minContains": 2,
		"maxContains": 3
	}`)

	result, err := reg.Validate("#", []any{1.0, "x", "y"})
	require.NoError(t, err)
	assert.False(t, result.Valid, "only one matching item, needs at least 2")

	result, err = reg.Validate("#", []any{1.0, 2.0, "x"})
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = reg.Validate("#", []any{1.0, 2.0, 3.0, 4.0})
	require.NoError(t, err)
	assert.False(t, result.Valid, "more matches than maxContains allows")
}

func TestMinContainsZeroDisablesFailure(t *testing.T) {
	reg := mustRegistry(t, `{"contains": {"type": "integer"}, "minContains": 0}`)
	result, err := reg.Validate("#", []any{"a", "b"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestPrefixItemsThenItems(t *testing.T) {
	reg := mustRegistry(t, `{
		"prefixItems": [{"type": "string"}, {"type": "integer"}],
		"items": {"type": "boolean"}
	}`)

	result, err := reg.Validate("#", []any{"x", 1.0, true, false})
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = reg.Validate("#", []any{"x", 1.0, "not-a-bool"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestUnevaluatedItemsSeesPrefixItems(t *testing.T) {
	reg := mustRegistry(t, `{
		"prefixItems": [{"type": "string"}],
		"unevaluatedItems": false
	}`)

	result, err := reg.Validate("#", []any{"x"})
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = reg.Validate("#", []any{"x", "extra"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
}
