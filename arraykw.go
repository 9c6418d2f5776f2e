package jsonschema

// evaluateArray applies minItems, maxItems, uniqueItems, prefixItems,
// items, and contains/minContains/maxContains to an array instance,
// returning the set of indices validated by prefixItems/items/contains so
// unevaluatedItems can see past them.
func (v *validator) evaluateArray(schema schemaNode, instance []any, schemaPath, instancePath string, depth int, visited map[string]bool) (*ValidationResult, *evaluationTracker) {
	result := newValidationResult()
	tracker := newEvaluationTracker()

	if max, ok := schema.numberKeyword("maxItems"); ok {
		if len(instance) > int(max) {
			result.AddError(newValidationError(instancePath, schemaPath+"/maxItems", "maxItems",
				"array exceeds maxItems", map[string]any{"max": int(max), "actual": len(instance)}))
		}
	}
	if min, ok := schema.numberKeyword("minItems"); ok {
		if len(instance) < int(min) {
			result.AddError(newValidationError(instancePath, schemaPath+"/minItems", "minItems",
				"array has fewer than minItems", map[string]any{"min": int(min), "actual": len(instance)}))
		}
	}

	if unique, ok := schema.boolKeyword("uniqueItems"); ok && unique {
		seen := make([]any, 0, len(instance))
		for i, item := range instance {
			for _, other := range seen {
				if deepEqual(item, other) {
					result.AddError(newValidationError(instancePath, schemaPath+"/uniqueItems", "uniqueItems",
						"array items are not unique", map[string]any{"index": i}))
					break
				}
			}
			seen = append(seen, item)
		}
	}

	nextIndex := 0
	if prefixSchemas, ok := schema.arrayKeyword("prefixItems"); ok {
		for i, itemSchema := range prefixSchemas {
			if i >= len(instance) {
				break
			}
			sub, ok := asSchemaNode(itemSchema)
			if !ok {
				continue
			}
			itemPath := pointerJoin(schemaPath, "prefixItems") + "/" + itoa(i)
			itemInstancePath := pointerJoin(instancePath, itoa(i))
			itemResult, _ := v.validate(sub, itemPath, instance[i], itemInstancePath, depth+1, visited)
			result.Merge(itemResult)
			tracker.items[i] = true
			nextIndex = i + 1
		}
	}

	if itemsRaw, ok := schema.keyword("items"); ok {
		itemSchema, ok := asSchemaNode(itemsRaw)
		if ok {
			itemPath := pointerJoin(schemaPath, "items")
			for i := nextIndex; i < len(instance); i++ {
				itemInstancePath := pointerJoin(instancePath, itoa(i))
				itemResult, _ := v.validate(itemSchema, itemPath, instance[i], itemInstancePath, depth+1, visited)
				result.Merge(itemResult)
				tracker.items[i] = true
			}
		}
	}

	if containsRaw, ok := schema.keyword("contains"); ok {
		containsSchema, ok := asSchemaNode(containsRaw)
		if ok {
			containsPath := pointerJoin(schemaPath, "contains")
			matches := 0
			for i, item := range instance {
				itemInstancePath := pointerJoin(instancePath, itoa(i))
				itemResult, _ := v.validate(containsSchema, containsPath, item, itemInstancePath, depth+1, visited)
				if itemResult.Valid {
					matches++
					tracker.items[i] = true
				}
			}

			minContains := 1
			if min, ok := schema.numberKeyword("minContains"); ok {
				minContains = int(min)
			}
			if matches < minContains {
				result.AddError(newValidationError(instancePath, containsPath, "contains",
					"array does not contain enough items matching the contains schema",
					map[string]any{"min": minContains, "actual": matches}))
			}
			if max, ok := schema.numberKeyword("maxContains"); ok && matches > int(max) {
				result.AddError(newValidationError(instancePath, containsPath, "maxContains",
					"array contains more items matching the contains schema than maxContains allows",
					map[string]any{"max": int(max), "actual": matches}))
			}
		}
	}

	return result, tracker
}
