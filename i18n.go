package jsonschema

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// Localizer renders a keyword validation message in one locale. It wraps
// the kaptinlin/go-i18n localizer so callers of ValidationError.Localize
// never import that package directly.
type Localizer struct {
	inner *i18n.Localizer
}

// Translate looks up keyword in the bundle's message catalog and renders it
// with params as template variables. ok is false when the locale has no
// message registered for keyword, in which case callers keep the
// English fallback message built at error-construction time.
func (l *Localizer) Translate(keyword string, params map[string]any) (string, bool) {
	if l == nil || l.inner == nil {
		return "", false
	}
	msg := l.inner.Get(keyword, i18n.Vars(params))
	if msg == "" || msg == keyword {
		return "", false
	}
	return msg, true
}

// I18n loads the embedded message bundle, offering English and Simplified
// Chinese locales the way the teacher's GetI18n does.
func I18n() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)
	if err := bundle.LoadFS(localesFS, "locales/*.json"); err != nil {
		return nil, err
	}
	return bundle, nil
}

// NewLocalizer loads the embedded bundle and returns a Localizer for the
// requested locale in one call, for callers that don't need the bundle
// itself.
func NewLocalizer(locale string) (*Localizer, error) {
	bundle, err := I18n()
	if err != nil {
		return nil, err
	}
	return &Localizer{inner: bundle.NewLocalizer(locale)}, nil
}
