package jsonschema

import "fmt"

// maxValidationDepth guards against runaway recursion when a $ref cycle
// somehow reaches validation despite the registry's cycle census (for
// example, a cycle entirely inside "not", which legitimately must be
// walked at least once to be evaluated).
const maxValidationDepth = 1000

// evaluationTracker accumulates which object properties and array indices
// a schema's keywords have evaluated, so unevaluatedProperties and
// unevaluatedItems (evaluated at the end of the owning schema object) can
// see past every applicator branch that actually applied, per spec.md
// §4.4's "unevaluated" semantics.
type evaluationTracker struct {
	properties map[string]bool
	items      map[int]bool
}

func newEvaluationTracker() *evaluationTracker {
	return &evaluationTracker{properties: map[string]bool{}, items: map[int]bool{}}
}

func (t *evaluationTracker) mergeFrom(other *evaluationTracker) {
	if other == nil {
		return
	}
	mergeStringSets(t.properties, other.properties)
	mergeIntSets(t.items, other.items)
}

// validator holds the single Registry a validation run is scoped to. It is
// created fresh per top-level Validate call; all recursion happens through
// its validate method, mirroring the teacher's Schema.evaluate recursion
// but operating over the tagged schemaNode representation instead of a
// compiled *Schema tree.
type validator struct {
	reg *Registry
}

// Validate resolves pointer to a schema and checks instance against it,
// localizing no errors (callers apply Localize themselves when they have a
// Localizer). This is the C4a entry point.
func (r *Registry) Validate(pointer string, instance any) (*ValidationResult, error) {
	schema, err := r.Get(pointer)
	if err != nil {
		return nil, err
	}
	v := &validator{reg: r}
	result, _ := v.validate(schema.Node, pointer, instance, "", 0, map[string]bool{})
	return result, nil
}

// validate implements the fixed evaluation order from spec.md §4.4:
// boolean schema short-circuit, $ref, const, enum, type, the type-gated
// assertion keywords, the applicators,
// the conditional keyword, and finally the unevaluated keywords (which must
// see every applicator's evaluated set).
func (v *validator) validate(schema schemaNode, schemaPath string, instance any, instancePath string, depth int, visitedRefs map[string]bool) (*ValidationResult, *evaluationTracker) {
	result := newValidationResult()
	tracker := newEvaluationTracker()

	if depth > maxValidationDepth {
		result.AddError(newValidationError(instancePath, schemaPath, "$ref", "maximum reference depth exceeded", nil))
		return result, tracker
	}

	if schema.isBoolean() {
		if !schema.boolValue() {
			result.AddError(newValidationError(instancePath, schemaPath, "false", "instance rejected by boolean schema false", nil))
		}
		return result, tracker
	}

	if ref, ok := schema.stringKeyword("$ref"); ok {
		target, err := v.reg.resolveRef(ref)
		if err != nil {
			result.AddError(newValidationError(instancePath, schemaPath+"/$ref", "$ref", err.Error(), map[string]any{"ref": ref}))
			return result, tracker
		}
		refResult, refTracker := v.validateRefTarget(target, schemaPath, instance, instancePath, depth, visitedRefs)
		result.Merge(refResult)
		tracker.mergeFrom(refTracker)
	}

	if constVal, ok := schema.keyword("const"); ok {
		if !deepEqual(instance, constVal) {
			result.AddError(newValidationError(instancePath, schemaPath+"/const", "const", "value does not equal const", nil))
		}
	}

	if enumVals, ok := schema.arrayKeyword("enum"); ok {
		matched := false
		for _, candidate := range enumVals {
			if deepEqual(instance, candidate) {
				matched = true
				break
			}
		}
		if !matched {
			result.AddError(newValidationError(instancePath, schemaPath+"/enum", "enum", "value is not one of the enumerated values", nil))
		}
	}

	instanceType := jsonTypeOf(instance)
	if types := schema.typeSet(); len(types) > 0 {
		matched := false
		for _, t := range types {
			if typeMatches(instanceType, t) {
				matched = true
				break
			}
		}
		if !matched {
			result.AddError(newValidationError(instancePath, schemaPath+"/type", "type",
				fmt.Sprintf("value must be of type %v, got %s", types, instanceType),
				map[string]any{"expected": types, "actual": instanceType}))
		}
	}

	switch instanceType {
	case "number", "integer":
		if f, ok := toFloat64(instance); ok {
			result.Merge(evaluateNumeric(schema, f, instancePath, schemaPath))
		}
	case "string":
		if s, ok := instance.(string); ok {
			result.Merge(evaluateString(schema, s, instancePath, schemaPath))
			result.Merge(evaluateFormat(v.reg, schema, s, instancePath, schemaPath))
			result.Merge(v.evaluateContent(schema, s, instancePath, schemaPath))
		}
	case "array":
		if a, ok := instance.([]any); ok {
			arrResult, arrTracker := v.evaluateArray(schema, a, schemaPath, instancePath, depth, visitedRefs)
			result.Merge(arrResult)
			tracker.mergeFrom(arrTracker)
		}
	case "object":
		if o, ok := instance.(map[string]any); ok {
			objResult, objTracker := v.evaluateObject(schema, o, schemaPath, instancePath, depth, visitedRefs)
			result.Merge(objResult)
			tracker.mergeFrom(objTracker)
		}
	}

	appResult, appTracker := v.evaluateApplicators(schema, instance, schemaPath, instancePath, depth, visitedRefs)
	result.Merge(appResult)
	tracker.mergeFrom(appTracker)

	condResult, condTracker := v.evaluateConditional(schema, instance, schemaPath, instancePath, depth, visitedRefs)
	result.Merge(condResult)
	tracker.mergeFrom(condTracker)

	result.Merge(v.evaluateUnevaluated(schema, instance, schemaPath, instancePath, depth, visitedRefs, tracker))

	return result, tracker
}

// validateRefTarget descends into an already-resolved $ref target, guarding
// against infinite recursion on a cyclic reference by tracking the
// (pointer) pairs already on the current recursion path instead of relying
// solely on the registry's static cycle census, since a cycle can
// legitimately be traversed once per distinct instance branch.
func (v *validator) validateRefTarget(target *ProcessedSchema, fromPointer string, instance any, instancePath string, depth int, visitedRefs map[string]bool) (*ValidationResult, *evaluationTracker) {
	result := newValidationResult()

	visitKey := fromPointer + "->" + target.Pointer
	if visitedRefs[visitKey] {
		return result, newEvaluationTracker()
	}
	nextVisited := make(map[string]bool, len(visitedRefs)+1)
	for k := range visitedRefs {
		nextVisited[k] = true
	}
	nextVisited[visitKey] = true

	sub, tracker := v.validate(target.Node, target.Pointer, instance, instancePath, depth+1, nextVisited)
	result.Merge(sub)
	return result, tracker
}
