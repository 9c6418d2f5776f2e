package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfReferenceCycle(t *testing.T) {
	reg, err := NewRegistry([]byte(`{"$ref": "#"}`))
	require.NoError(t, err)

	assert.True(t, reg.isCyclic("#"), `"#" should be in cyclicRefs for a self-referencing schema`)

	result, err := reg.Validate("#", map[string]any{})
	require.NoError(t, err)
	assert.True(t, result.Valid, "cycle should be short-circuited, not infinitely recursed")
}

func TestMutualDefsCycle(t *testing.T) {
	doc := []byte(`{
		"$defs": {
			"A": {"$ref": "#/$defs/B"},
			"B": {"$ref": "#/$defs/A"}
		},
		"$ref": "#/$defs/A"
	}`)
	reg, err := NewRegistry(doc)
	require.NoError(t, err)

	assert.True(t, reg.isCyclic("#/$defs/A"))
	assert.True(t, reg.isCyclic("#/$defs/B"))
}

func TestCycleCensusIdempotence(t *testing.T) {
	doc := []byte(`{"$defs":{"A":{"$ref":"#/$defs/B"},"B":{"$ref":"#/$defs/A"}},"$ref":"#/$defs/A"}`)

	reg1, err := NewRegistry(doc)
	require.NoError(t, err)
	reg2, err := NewRegistry(doc)
	require.NoError(t, err)

	assert.ElementsMatch(t, reg1.cyclicRefs(), reg2.cyclicRefs())
}

func TestTopoOrderSkipsOnStackEdges(t *testing.T) {
	edges := map[string][]string{
		"#/a": {"#/b"},
		"#/b": {"#/a"},
		"#/c": {"#/a"},
	}
	nodes := []string{"#/a", "#/b", "#/c"}
	order := topoOrder(nodes, edges)
	assert.Len(t, order, 3, "every node must appear exactly once even with a cycle present")
}

func TestNonCyclicRefIsNotFlagged(t *testing.T) {
	doc := []byte(`{"$defs":{"A":{"type":"string"}},"properties":{"x":{"$ref":"#/$defs/A"}}}`)
	reg, err := NewRegistry(doc)
	require.NoError(t, err)

	assert.False(t, reg.isCyclic("#/$defs/A"))
	assert.Empty(t, reg.cyclicRefs())
}
