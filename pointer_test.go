package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeUnescapeTokenRoundTrip(t *testing.T) {
	tokens := []string{"plain", "a/b", "a~b", "a~/b", "~", "/", ""}
	for _, token := range tokens {
		escaped := escapeToken(token)
		assert.Equal(t, token, unescapeToken(escaped), "round trip for %q", token)
	}
}

func TestUnescapeTokenLeniencyOnStrayTilde(t *testing.T) {
	assert.Equal(t, "a~z", unescapeToken("a~z"), "a stray tilde not followed by 0/1 is literal")
}

func TestResolvePointer(t *testing.T) {
	doc := map[string]any{
		"foo": []any{"bar", "baz"},
		"":    0.0,
		"a/b": 1.0,
		"c~d": 2.0,
	}

	v, err := resolvePointer(doc, "#/foo/0")
	require.NoError(t, err)
	assert.Equal(t, "bar", v)

	v, err = resolvePointer(doc, "#/")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = resolvePointer(doc, "#/a~1b")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = resolvePointer(doc, "#/c~0d")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	v, err = resolvePointer(doc, "#")
	require.NoError(t, err)
	assert.Equal(t, doc, v)
}

func TestResolvePointerArrayIndexRules(t *testing.T) {
	doc := map[string]any{"foo": []any{"a", "b", "c"}}

	_, err := resolvePointer(doc, "#/foo/01")
	assert.ErrorIs(t, err, ErrPointerNotFound, "leading zero is rejected")

	_, err = resolvePointer(doc, "#/foo/3")
	assert.ErrorIs(t, err, ErrPointerNotFound, "out of range index")

	_, err = resolvePointer(doc, "#/foo/-1")
	assert.ErrorIs(t, err, ErrPointerNotFound, "negative index")

	v, err := resolvePointer(doc, "#/foo/0")
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestResolvePointerNotFound(t *testing.T) {
	doc := map[string]any{"foo": "bar"}
	_, err := resolvePointer(doc, "#/missing")
	assert.ErrorIs(t, err, ErrPointerNotFound)
}

func TestClassifyRef(t *testing.T) {
	cases := map[string]refForm{
		"#":             refFormRoot,
		"#/a/b":         refFormPointer,
		"#anchor":       refFormAnchor,
		"SimpleId":      refFormID,
		"https://x/y#z": refFormExternal,
		"relative/path": refFormExternal,
		"##bad":         refFormMalformed,
	}
	for ref, want := range cases {
		got := classifyRef(ref)
		assert.Equal(t, want, got.Form, "ref %q", ref)
	}
}

func TestClassifyRefSuggestions(t *testing.T) {
	got := classifyRef("##bad")
	assert.NotEmpty(t, got.Suggestion)

	got = classifyRef("https://example.com/schema.json")
	assert.NotEmpty(t, got.Suggestion)
}
