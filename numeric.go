package jsonschema

// evaluateNumeric applies multipleOf, maximum, minimum, exclusiveMaximum,
// and exclusiveMinimum against a numeric instance. multipleOf uses exact
// rational arithmetic so it does not drift the way float64 division can;
// the four bounds are plain float64 comparisons, which involve no
// arithmetic. This follows the teacher's validate.go split of
// keyword evaluation into one function per type group.
func evaluateNumeric(schema schemaNode, instance float64, instancePath, schemaPath string) *ValidationResult {
	result := newValidationResult()
	instanceRat := NewRat(instance)
	if instanceRat == nil {
		return result
	}

	if divisor, ok := schema.numberKeyword("multipleOf"); ok {
		divisorRat := NewRat(divisor)
		if divisorRat != nil && !isMultipleOf(instanceRat, divisorRat) {
			result.AddError(newValidationError(instancePath, schemaPath+"/multipleOf", "multipleOf",
				"value is not a multiple of the configured divisor",
				map[string]any{"divisor": divisor, "actual": instance}))
		}
	}

	if max, ok := schema.numberKeyword("maximum"); ok {
		if instance > max {
			result.AddError(newValidationError(instancePath, schemaPath+"/maximum", "maximum",
				"value exceeds maximum", map[string]any{"maximum": max, "actual": instance}))
		}
	}

	if min, ok := schema.numberKeyword("minimum"); ok {
		if instance < min {
			result.AddError(newValidationError(instancePath, schemaPath+"/minimum", "minimum",
				"value is below minimum", map[string]any{"minimum": min, "actual": instance}))
		}
	}

	if max, ok := schema.numberKeyword("exclusiveMaximum"); ok {
		if instance >= max {
			result.AddError(newValidationError(instancePath, schemaPath+"/exclusiveMaximum", "exclusiveMaximum",
				"value is not strictly less than exclusiveMaximum", map[string]any{"maximum": max, "actual": instance}))
		}
	}

	if min, ok := schema.numberKeyword("exclusiveMinimum"); ok {
		if instance <= min {
			result.AddError(newValidationError(instancePath, schemaPath+"/exclusiveMinimum", "exclusiveMinimum",
				"value is not strictly greater than exclusiveMinimum", map[string]any{"minimum": min, "actual": instance}))
		}
	}

	return result
}
