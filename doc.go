// Package jsonschema implements the reference-resolution, validation, and
// instance-generation core of a JSON Schema 2020-12 engine, built to back an
// OpenAPI mock server. It builds a reference graph and cycle census for a
// document's internal $refs, validates arbitrary instances against any
// sub-schema addressed by a JSON Pointer, and generates plausible JSON
// instances that satisfy a schema.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for several of the
// format validators in formats.go.
package jsonschema
