package jsonschema

// evaluateUnevaluated applies unevaluatedProperties and unevaluatedItems
// using the tracker accumulated from every keyword and applicator branch
// that ran against this same schema object, per spec.md §4.4: these
// keywords see the union of everything properties/patternProperties/
// additionalProperties/items/prefixItems/contains and every passing
// allOf/anyOf/oneOf/if-then-else/$ref branch already evaluated.
func (v *validator) evaluateUnevaluated(schema schemaNode, instance any, schemaPath, instancePath string, depth int, visited map[string]bool, tracker *evaluationTracker) *ValidationResult {
	result := newValidationResult()

	if unevaluatedRaw, ok := schema.keyword("unevaluatedProperties"); ok {
		if object, ok := instance.(map[string]any); ok {
			subSchema, ok := asSchemaNode(unevaluatedRaw)
			if ok {
				path := pointerJoin(schemaPath, "unevaluatedProperties")
				for _, name := range sortedKeys(object) {
					if tracker.properties[name] {
						continue
					}
					childPath := pointerJoin(instancePath, name)
					propResult, _ := v.validate(subSchema, path, object[name], childPath, depth+1, visited)
					if !propResult.Valid {
						result.AddError(newValidationError(instancePath, path, "unevaluatedProperties",
							"object has unevaluated property "+name, map[string]any{"property": name}))
					}
					tracker.properties[name] = true
				}
			}
		}
	}

	if unevaluatedRaw, ok := schema.keyword("unevaluatedItems"); ok {
		if array, ok := instance.([]any); ok {
			subSchema, ok := asSchemaNode(unevaluatedRaw)
			if ok {
				path := pointerJoin(schemaPath, "unevaluatedItems")
				for i, item := range array {
					if tracker.items[i] {
						continue
					}
					childPath := pointerJoin(instancePath, itoa(i))
					itemResult, _ := v.validate(subSchema, path, item, childPath, depth+1, visited)
					if !itemResult.Valid {
						result.AddError(newValidationError(instancePath, path, "unevaluatedItems",
							"array has unevaluated item at index "+itoa(i), map[string]any{"index": i}))
					}
					tracker.items[i] = true
				}
			}
		}
	}

	return result
}
