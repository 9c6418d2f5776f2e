package jsonschema

import "errors"

// === Registry construction and lookup errors ===
var (
	// ErrNotJSON is returned when the registry constructor is given input
	// that cannot be parsed as a JSON document.
	ErrNotJSON = errors.New("document is not valid JSON")

	// ErrSchemaIsNil is returned when a nil schema value is passed where a
	// schema or boolean schema was expected.
	ErrSchemaIsNil = errors.New("schema is nil")
)

// === Pointer and $ref errors ===
var (
	// ErrPointerNotFound is returned when a JSON Pointer cannot be resolved
	// against a document.
	ErrPointerNotFound = errors.New("json pointer not found")

	// ErrPointerSegmentDecode is returned when a pointer segment fails
	// percent-decoding.
	ErrPointerSegmentDecode = errors.New("json pointer segment could not be percent-decoded")

	// ErrRefMalformed is returned when a $ref string cannot be classified
	// into any of the supported forms.
	ErrRefMalformed = errors.New("$ref is malformed")

	// ErrRefExternal is returned when a $ref is classified as referring to
	// an external document, which this core does not fetch.
	ErrRefExternal = errors.New("$ref refers to an external document")

	// ErrRefUnresolved is returned when an internal $ref, anchor, or $id
	// reference cannot be found in the document.
	ErrRefUnresolved = errors.New("$ref could not be resolved")
)

// === Regex safety errors ===
var (
	// ErrRegexInvalid is returned when a pattern/patternProperties key does
	// not compile as a valid regular expression.
	ErrRegexInvalid = errors.New("regular expression is invalid")

	// ErrRegexInputTooLong is returned when a candidate string exceeds the
	// safe-regex length guard.
	ErrRegexInputTooLong = errors.New("string exceeds safe regex length guard")
)

// === Numeric conversion errors ===
var (
	// ErrRatConversion is returned when a JSON numeric value cannot be
	// converted to an exact big.Rat representation.
	ErrRatConversion = errors.New("numeric value could not be converted to an exact rational")
)
