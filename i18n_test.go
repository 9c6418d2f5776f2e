package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizerTranslatesKnownKeyword(t *testing.T) {
	loc, err := NewLocalizer("en")
	require.NoError(t, err)

	msg, ok := loc.Translate("minLength", map[string]any{"min": 3, "actual": 1})
	assert.True(t, ok)
	assert.Contains(t, msg, "3")
}

func TestLocalizerChineseLocale(t *testing.T) {
	loc, err := NewLocalizer("zh-Hans")
	require.NoError(t, err)

	msg, ok := loc.Translate("required", map[string]any{"property": "name"})
	assert.True(t, ok)
	assert.Contains(t, msg, "name")
}

func TestLocalizerUnknownKeywordFallsBack(t *testing.T) {
	loc, err := NewLocalizer("en")
	require.NoError(t, err)

	_, ok := loc.Translate("not-a-real-keyword", nil)
	assert.False(t, ok)
}

func TestNilLocalizerTranslateIsSafe(t *testing.T) {
	var loc *Localizer
	_, ok := loc.Translate("type", nil)
	assert.False(t, ok)
}
