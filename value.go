package jsonschema

import (
	"math/big"
)

// schemaNode is the tagged representation described by the design notes:
// a schema is either the boolean true, the boolean false, or a JSON object
// carrying a subset of the 2020-12 keyword vocabulary. Unlike the teacher's
// compiled *Schema struct, nodes here are plain decoded JSON
// (map[string]any), since the registry treats the document itself as the
// single source of truth and never builds a parallel typed tree.
type schemaNode struct {
	// boolSchema is non-nil when the node is the boolean schema form.
	boolSchema *bool
	// object is non-nil when the node is an object-form schema.
	object map[string]any
}

// asSchemaNode classifies a raw JSON value resolved from the document into
// the tagged Schema representation. Returns ok=false for values that are not
// schema-shaped (numbers, strings, bare arrays).
func asSchemaNode(v any) (schemaNode, bool) {
	switch t := v.(type) {
	case bool:
		b := t
		return schemaNode{boolSchema: &b}, true
	case map[string]any:
		return schemaNode{object: t}, true
	default:
		return schemaNode{}, false
	}
}

func (n schemaNode) isBoolean() bool { return n.boolSchema != nil }
func (n schemaNode) boolValue() bool {
	if n.boolSchema == nil {
		return true
	}
	return *n.boolSchema
}

func (n schemaNode) keyword(name string) (any, bool) {
	if n.object == nil {
		return nil, false
	}
	v, ok := n.object[name]
	return v, ok
}

func (n schemaNode) stringKeyword(name string) (string, bool) {
	v, ok := n.keyword(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (n schemaNode) boolKeyword(name string) (bool, bool) {
	v, ok := n.keyword(name)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// numberKeyword returns a keyword's value as a float64, accepting float64
// (the common decode shape), float32, int and int64. Any other value,
// including a numeric string, is reported as absent.
func (n schemaNode) numberKeyword(name string) (float64, bool) {
	v, ok := n.keyword(name)
	if !ok {
		return 0, false
	}
	return toFloat64(v)
}

func toFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func (n schemaNode) arrayKeyword(name string) ([]any, bool) {
	v, ok := n.keyword(name)
	if !ok {
		return nil, false
	}
	a, ok := v.([]any)
	return a, ok
}

func (n schemaNode) stringArrayKeyword(name string) ([]string, bool) {
	a, ok := n.arrayKeyword(name)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(a))
	for _, item := range a {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// objectKeyword returns a keyword whose value is a JSON object, e.g.
// properties, patternProperties, dependentSchemas.
func (n schemaNode) objectKeyword(name string) (map[string]any, bool) {
	v, ok := n.keyword(name)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// typeSet normalizes the "type" keyword (string or array of strings) into a
// set of allowed type names. Returns nil when "type" is absent.
func (n schemaNode) typeSet() []string {
	v, ok := n.keyword("type")
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// jsonTypeOf classifies a decoded JSON value into one of the seven 2020-12
// instance types, distinguishing "integer" from "number" the way the
// teacher's getDataType does for numeric literals.
func jsonTypeOf(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case float64:
		if isIntegral(t) {
			return "integer"
		}
		return "number"
	case float32:
		return jsonTypeOf(float64(t))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	default:
		return "unknown"
	}
}

func isIntegral(f float64) bool {
	bf := new(big.Float).SetFloat64(f)
	_, acc := bf.Int(nil)
	return acc == big.Exact
}

// typeMatches reports whether instanceType satisfies an allowed schema type,
// honoring the "integer is a subtype of number" rule from spec.md §4.4.
func typeMatches(instanceType, schemaType string) bool {
	if instanceType == schemaType {
		return true
	}
	return schemaType == "number" && instanceType == "integer"
}

// deepEqual implements the JSON deep-equality rule from spec.md §4.4:
// same type, scalars compare by value, arrays compare element-wise in
// order, objects compare by key set regardless of key order.
func deepEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		bv, ok := toFloat64(b)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, exists := bv[k]
			if !exists || !deepEqual(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func mergeStringSets(dst, src map[string]bool) map[string]bool {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func mergeIntSets(dst, src map[int]bool) map[int]bool {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
