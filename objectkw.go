package jsonschema

import "sort"

// evaluateObject applies minProperties, maxProperties, required,
// dependentRequired, properties, patternProperties, additionalProperties,
// propertyNames, and dependentSchemas to an object instance, returning the
// set of property names validated by properties/patternProperties/
// additionalProperties so unevaluatedProperties can see past them.
func (v *validator) evaluateObject(schema schemaNode, instance map[string]any, schemaPath, instancePath string, depth int, visited map[string]bool) (*ValidationResult, *evaluationTracker) {
	result := newValidationResult()
	tracker := newEvaluationTracker()

	if max, ok := schema.numberKeyword("maxProperties"); ok {
		if len(instance) > int(max) {
			result.AddError(newValidationError(instancePath, schemaPath+"/maxProperties", "maxProperties",
				"object exceeds maxProperties", map[string]any{"max": int(max), "actual": len(instance)}))
		}
	}
	if min, ok := schema.numberKeyword("minProperties"); ok {
		if len(instance) < int(min) {
			result.AddError(newValidationError(instancePath, schemaPath+"/minProperties", "minProperties",
				"object has fewer than minProperties", map[string]any{"min": int(min), "actual": len(instance)}))
		}
	}

	if required, ok := schema.stringArrayKeyword("required"); ok {
		for _, name := range required {
			if _, present := instance[name]; !present {
				result.AddError(newValidationError(instancePath, schemaPath+"/required", "required",
					"object is missing required property "+name, map[string]any{"property": name}))
			}
		}
	}

	if dependentRequired, ok := schema.objectKeyword("dependentRequired"); ok {
		names := sortedKeys(dependentRequired)
		for _, name := range names {
			if _, present := instance[name]; !present {
				continue
			}
			deps, _ := dependentRequired[name].([]any)
			for _, depRaw := range deps {
				dep, ok := depRaw.(string)
				if !ok {
					continue
				}
				if _, present := instance[dep]; !present {
					result.AddError(newValidationError(instancePath, schemaPath+"/dependentRequired", "dependentRequired",
						"property "+name+" requires property "+dep, map[string]any{"property": name, "dependency": dep}))
				}
			}
		}
	}

	matchedByPattern := map[string]bool{}
	if patternProps, ok := schema.objectKeyword("patternProperties"); ok {
		for pattern, subRaw := range patternProps {
			sub, ok := asSchemaNode(subRaw)
			if !ok {
				continue
			}
			re, err := compilePattern(pattern)
			if err != nil {
				continue
			}
			patternPath := pointerJoin(schemaPath, "patternProperties") + "/" + jsonPointerFormatKey(pattern)
			for _, name := range sortedKeys(instance) {
				matched, err := safeMatch(re, name)
				if err != nil || !matched {
					continue
				}
				matchedByPattern[name] = true
				instancePathChild := pointerJoin(instancePath, name)
				propResult, _ := v.validate(sub, patternPath, instance[name], instancePathChild, depth+1, visited)
				result.Merge(propResult)
				tracker.properties[name] = true
			}
		}
	}

	declaredProps, _ := schema.objectKeyword("properties")
	if declaredProps != nil {
		propsPath := pointerJoin(schemaPath, "properties")
		for _, name := range sortedKeys(declaredProps) {
			value, present := instance[name]
			if !present {
				continue
			}
			sub, ok := asSchemaNode(declaredProps[name])
			if !ok {
				continue
			}
			propPath := propsPath + "/" + jsonPointerFormatKey(name)
			instancePathChild := pointerJoin(instancePath, name)
			propResult, _ := v.validate(sub, propPath, value, instancePathChild, depth+1, visited)
			result.Merge(propResult)
			tracker.properties[name] = true
		}
	}

	if additionalRaw, ok := schema.keyword("additionalProperties"); ok {
		additionalSchema, ok := asSchemaNode(additionalRaw)
		if ok {
			additionalPath := pointerJoin(schemaPath, "additionalProperties")
			for _, name := range sortedKeys(instance) {
				if tracker.properties[name] || matchedByPattern[name] {
					continue
				}
				instancePathChild := pointerJoin(instancePath, name)
				propResult, _ := v.validate(additionalSchema, additionalPath, instance[name], instancePathChild, depth+1, visited)
				result.Merge(propResult)
				tracker.properties[name] = true
			}
		}
	}

	if propertyNamesRaw, ok := schema.keyword("propertyNames"); ok {
		nameSchema, ok := asSchemaNode(propertyNamesRaw)
		if ok {
			namesPath := pointerJoin(schemaPath, "propertyNames")
			for _, name := range sortedKeys(instance) {
				nameResult, _ := v.validate(nameSchema, namesPath, name, instancePath, depth+1, visited)
				if !nameResult.Valid {
					result.AddError(newValidationError(instancePath, namesPath, "propertyNames",
						"property name does not satisfy propertyNames schema", map[string]any{"property": name}))
				}
			}
		}
	}

	if dependentSchemas, ok := schema.objectKeyword("dependentSchemas"); ok {
		for _, name := range sortedKeys(dependentSchemas) {
			if _, present := instance[name]; !present {
				continue
			}
			sub, ok := asSchemaNode(dependentSchemas[name])
			if !ok {
				continue
			}
			depPath := pointerJoin(schemaPath, "dependentSchemas") + "/" + jsonPointerFormatKey(name)
			depResult, depTracker := v.validate(sub, depPath, instance, instancePath, depth+1, visited)
			result.Merge(depResult)
			tracker.mergeFrom(depTracker)
		}
	}

	return result, tracker
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
