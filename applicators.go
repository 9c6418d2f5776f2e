package jsonschema

// evaluateApplicators applies allOf, anyOf, and oneOf against instance,
// merging the evaluated-properties/items sets of every branch that
// contributed to the outcome, per spec.md §4.4's in-place applicator rules.
func (v *validator) evaluateApplicators(schema schemaNode, instance any, schemaPath, instancePath string, depth int, visited map[string]bool) (*ValidationResult, *evaluationTracker) {
	result := newValidationResult()
	tracker := newEvaluationTracker()

	if branches, ok := schema.arrayKeyword("allOf"); ok {
		for i, branch := range branches {
			sub, ok := asSchemaNode(branch)
			if !ok {
				continue
			}
			branchPath := pointerJoin(schemaPath, "allOf") + "/" + itoa(i)
			branchResult, branchTracker := v.validate(sub, branchPath, instance, instancePath, depth+1, visited)
			result.Merge(branchResult)
			tracker.mergeFrom(branchTracker)
		}
	}

	if branches, ok := schema.arrayKeyword("anyOf"); ok {
		var matched bool
		anyResult := newValidationResult()
		for i, branch := range branches {
			sub, ok := asSchemaNode(branch)
			if !ok {
				continue
			}
			branchPath := pointerJoin(schemaPath, "anyOf") + "/" + itoa(i)
			branchResult, branchTracker := v.validate(sub, branchPath, instance, instancePath, depth+1, visited)
			if branchResult.Valid {
				matched = true
				tracker.mergeFrom(branchTracker)
			} else {
				anyResult.Merge(branchResult)
			}
		}
		if !matched {
			result.AddError(newValidationError(instancePath, pointerJoin(schemaPath, "anyOf"), "anyOf",
				"value does not satisfy any schema in anyOf", nil))
			result.Merge(anyResult)
		}
	}

	if branches, ok := schema.arrayKeyword("oneOf"); ok {
		matchCount := 0
		var matchedTracker *evaluationTracker
		oneResult := newValidationResult()
		for i, branch := range branches {
			sub, ok := asSchemaNode(branch)
			if !ok {
				continue
			}
			branchPath := pointerJoin(schemaPath, "oneOf") + "/" + itoa(i)
			branchResult, branchTracker := v.validate(sub, branchPath, instance, instancePath, depth+1, visited)
			if branchResult.Valid {
				matchCount++
				matchedTracker = branchTracker
			} else {
				oneResult.Merge(branchResult)
			}
		}
		switch {
		case matchCount == 1:
			tracker.mergeFrom(matchedTracker)
		case matchCount == 0:
			result.AddError(newValidationError(instancePath, pointerJoin(schemaPath, "oneOf"), "oneOf",
				"value does not satisfy any schema in oneOf", map[string]any{"matched": matchCount}))
			result.Merge(oneResult)
		default:
			result.AddError(newValidationError(instancePath, pointerJoin(schemaPath, "oneOf"), "oneOf",
				"value satisfies more than one schema in oneOf", map[string]any{"matched": matchCount}))
		}
	}

	if notSchema, ok := schema.keyword("not"); ok {
		sub, ok := asSchemaNode(notSchema)
		if ok {
			branchPath := pointerJoin(schemaPath, "not")
			branchResult, _ := v.validate(sub, branchPath, instance, instancePath, depth+1, visited)
			if branchResult.Valid {
				result.AddError(newValidationError(instancePath, branchPath, "not", "value must not satisfy the not schema", nil))
			}
		}
	}

	return result, tracker
}

// evaluateConditional applies if/then/else. The outcome of if never
// produces a validation error by itself: it only selects whether then or
// else is evaluated, per spec.md §4.4.
func (v *validator) evaluateConditional(schema schemaNode, instance any, schemaPath, instancePath string, depth int, visited map[string]bool) (*ValidationResult, *evaluationTracker) {
	result := newValidationResult()
	tracker := newEvaluationTracker()

	ifRaw, hasIf := schema.keyword("if")
	if !hasIf {
		return result, tracker
	}
	ifNode, ok := asSchemaNode(ifRaw)
	if !ok {
		return result, tracker
	}

	ifPath := pointerJoin(schemaPath, "if")
	ifResult, ifTracker := v.validate(ifNode, ifPath, instance, instancePath, depth+1, visited)

	if ifResult.Valid {
		tracker.mergeFrom(ifTracker)
		if thenRaw, ok := schema.keyword("then"); ok {
			if thenNode, ok := asSchemaNode(thenRaw); ok {
				thenPath := pointerJoin(schemaPath, "then")
				thenResult, thenTracker := v.validate(thenNode, thenPath, instance, instancePath, depth+1, visited)
				result.Merge(thenResult)
				tracker.mergeFrom(thenTracker)
			}
		}
		return result, tracker
	}

	if elseRaw, ok := schema.keyword("else"); ok {
		if elseNode, ok := asSchemaNode(elseRaw); ok {
			elsePath := pointerJoin(schemaPath, "else")
			elseResult, elseTracker := v.validate(elseNode, elsePath, instance, instancePath, depth+1, visited)
			result.Merge(elseResult)
			tracker.mergeFrom(elseTracker)
		}
	}

	return result, tracker
}
