package jsonschema

import "strings"

// ValidationError is a single keyword failure, carrying enough structure to
// render a message in any supported locale via Localize, mirroring the
// teacher's EvaluationError.
type ValidationError struct {
	InstancePath string
	SchemaPath   string
	Keyword      string
	Message      string
	Params       map[string]any
	Suggestion   string
}

// Localize rewrites e.Message using loc, keyed by e.Keyword with e.Params as
// template data. Errors default to an English fallback message built at
// construction time, so Localize is optional: calling it upgrades the
// message, it never degrades it.
func (e *ValidationError) Localize(loc *Localizer) *ValidationError {
	if loc == nil {
		return e
	}
	if msg, ok := loc.Translate(e.Keyword, e.Params); ok {
		e.Message = msg
	}
	return e
}

func newValidationError(instancePath, schemaPath, keyword, message string, params map[string]any) *ValidationError {
	return &ValidationError{
		InstancePath: instancePath,
		SchemaPath:   schemaPath,
		Keyword:      keyword,
		Message:      message,
		Params:       params,
	}
}

// ValidationResult accumulates the outcome of validating one instance
// against one schema location: pass/fail plus an ordered list of keyword
// failures, fluent to build up the way the teacher's EvaluationResult is.
type ValidationResult struct {
	Valid       bool
	Errors      []*ValidationError
	Annotations map[string]any
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{Valid: true, Annotations: map[string]any{}}
}

// AddError appends a keyword failure and flips the result to invalid.
func (r *ValidationResult) AddError(err *ValidationError) *ValidationResult {
	if err == nil {
		return r
	}
	r.Valid = false
	r.Errors = append(r.Errors, err)
	return r
}

// Merge folds another result's errors and annotations into r, used when an
// applicator (allOf, properties, items, ...) delegates to sub-schemas and
// needs to propagate their failures upward. Errors are appended unchanged:
// sub-schema errors already carry their full schema and instance paths.
func (r *ValidationResult) Merge(other *ValidationResult) *ValidationResult {
	if other == nil {
		return r
	}
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	for k, v := range other.Annotations {
		r.Annotations[k] = v
	}
	return r
}

// Localize applies loc to every accumulated error in place.
func (r *ValidationResult) Localize(loc *Localizer) *ValidationResult {
	for _, err := range r.Errors {
		err.Localize(loc)
	}
	return r
}

// FirstError returns the first recorded error's message, or "" when valid.
func (r *ValidationResult) FirstError() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Summary joins every error, rendered as "instancePath: message", with
// "; ", useful for single-line log
// lines and test assertions.
func (r *ValidationResult) Summary() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.InstancePath + ": " + e.Message
	}
	return strings.Join(msgs, "; ")
}
