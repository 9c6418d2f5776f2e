package jsonschema

import "github.com/rivo/uniseg"

// graphemeLength counts user-perceived characters rather than bytes or
// Go runes, so an instance like a flag emoji or a combining-mark sequence
// counts as one character for minLength/maxLength, per spec.md §4.4.
func graphemeLength(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// evaluateString applies minLength, maxLength, and pattern to a string
// instance. format is dispatched separately by evaluateFormat since it is
// gated by the registry's assert-format setting.
func evaluateString(schema schemaNode, instance, instancePath, schemaPath string) *ValidationResult {
	result := newValidationResult()
	length := graphemeLength(instance)

	if max, ok := schema.numberKeyword("maxLength"); ok {
		if length > int(max) {
			result.AddError(newValidationError(instancePath, schemaPath+"/maxLength", "maxLength",
				"string exceeds maxLength", map[string]any{"max": int(max), "actual": length}))
		}
	}

	if min, ok := schema.numberKeyword("minLength"); ok {
		if length < int(min) {
			result.AddError(newValidationError(instancePath, schemaPath+"/minLength", "minLength",
				"string is shorter than minLength", map[string]any{"min": int(min), "actual": length}))
		}
	}

	if pattern, ok := schema.stringKeyword("pattern"); ok {
		re, err := compilePattern(pattern)
		if err != nil {
			result.AddError(newValidationError(instancePath, schemaPath+"/pattern", "pattern",
				err.Error(), map[string]any{"pattern": pattern}))
		} else {
			matched, err := safeMatch(re, instance)
			if err != nil {
				result.AddError(newValidationError(instancePath, schemaPath+"/pattern", "pattern",
					err.Error(), map[string]any{"pattern": pattern}))
			} else if !matched {
				result.AddError(newValidationError(instancePath, schemaPath+"/pattern", "pattern",
					"string does not match pattern", map[string]any{"pattern": pattern}))
			}
		}
	}

	return result
}

// evaluateFormat applies the "format" keyword. The format name is always
// recorded as an annotation. A name with no registered validator never
// fails. A failed check records a ValidationError only when the registry's
// assert-format flag is on; when it is off (the default), it is ignored.
func evaluateFormat(reg *Registry, schema schemaNode, instance, instancePath, schemaPath string) *ValidationResult {
	result := newValidationResult()
	name, ok := schema.stringKeyword("format")
	if !ok {
		return result
	}

	check, known := reg.format(name)
	result.Annotations["format"] = name
	if !known {
		return result
	}

	if check(instance) {
		return result
	}
	if !reg.shouldAssertFormat() {
		return result
	}
	result.AddError(newValidationError(instancePath, schemaPath+"/format", "format",
		"value does not match format "+name, map[string]any{"format": name}))
	return result
}
