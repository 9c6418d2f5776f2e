package jsonschema

import (
	"math"

	"github.com/google/uuid"
)

// maxGenerationDepth bounds recursive generation so a cyclic $ref (legal
// per spec.md §4.2, since cycles are reported rather than rejected) cannot
// recurse forever; generation falls back to null once the limit is hit.
const maxGenerationDepth = 10

// Generator produces a JSON instance that satisfies a schema, seeded for
// reproducibility: two calls with the same seed against the same document
// and pointer produce byte-identical output, per spec.md §4.5.
type Generator struct {
	reg  *Registry
	seed uint64
}

// NewGenerator returns a Generator bound to reg, seeded with seed.
func NewGenerator(reg *Registry, seed uint64) *Generator {
	return &Generator{reg: reg, seed: seed}
}

// Generate resolves pointer and synthesizes a value satisfying that
// schema. This is the C4b entry point. The RNG is re-seeded fresh on every
// call so two calls with the same seed on the same document and pointer
// produce byte-identical output.
func (g *Generator) Generate(pointer string) (any, error) {
	schema, err := g.reg.Get(pointer)
	if err != nil {
		return nil, err
	}
	rng := newLCG(g.seed)
	return g.generateFromSchema(schema.Node, pointer, 0, rng, map[string]bool{}), nil
}

// generateFromSchema synthesizes a value per the priority order from
// spec.md §4.5: depth guard, boolean schema, $ref, example, first of
// examples, default, const, enum, anyOf, oneOf, allOf, then type-directed
// synthesis as the final fallback. The first matching rule wins.
func (g *Generator) generateFromSchema(schema schemaNode, pointer string, depth int, rng *lcgRNG, visitedRefs map[string]bool) any {
	if depth > maxGenerationDepth {
		return nil
	}

	if schema.isBoolean() {
		if !schema.boolValue() {
			return nil
		}
		return map[string]any{}
	}

	if ref, ok := schema.stringKeyword("$ref"); ok {
		return g.generateRef(ref, depth, rng, visitedRefs)
	}

	if example, ok := schema.keyword("example"); ok {
		return example
	}
	if examples, ok := schema.arrayKeyword("examples"); ok && len(examples) > 0 {
		return examples[0]
	}
	if def, ok := schema.keyword("default"); ok {
		return def
	}
	if constVal, ok := schema.keyword("const"); ok {
		return constVal
	}
	if enumVals, ok := schema.arrayKeyword("enum"); ok && len(enumVals) > 0 {
		return enumVals[rng.intn(len(enumVals))]
	}

	if branches, ok := schema.arrayKeyword("anyOf"); ok && len(branches) > 0 {
		return g.generateAnyOf(branches, pointer, depth, rng, visitedRefs)
	}
	if branches, ok := schema.arrayKeyword("oneOf"); ok && len(branches) > 0 {
		if chosen, ok := asSchemaNode(branches[0]); ok {
			return g.generateFromSchema(chosen, pointer, depth+1, rng, visitedRefs)
		}
	}
	if branches, ok := schema.arrayKeyword("allOf"); ok && len(branches) > 0 {
		return g.generateAllOf(branches, pointer, depth, rng, visitedRefs)
	}

	types := schema.typeSet()
	if len(types) == 0 {
		return g.generateByType(schema, "string", pointer, depth, rng, visitedRefs)
	}
	return g.generateByType(schema, types[0], pointer, depth, rng, visitedRefs)
}

// generateRef resolves a $ref for generation. A ref already on the current
// recursion path yields a "$comment" marker instead of recursing forever
// (spec.md §4.5 rule 3); an external or otherwise unresolvable ref yields
// an analogous unresolved marker.
func (g *Generator) generateRef(ref string, depth int, rng *lcgRNG, visitedRefs map[string]bool) any {
	target, err := g.reg.resolveRef(ref)
	if err != nil {
		return map[string]any{"$comment": "Unresolved reference: " + ref}
	}
	if visitedRefs[target.Pointer] {
		return map[string]any{"$comment": "Circular reference to " + ref}
	}
	nextVisited := make(map[string]bool, len(visitedRefs)+1)
	for k := range visitedRefs {
		nextVisited[k] = true
	}
	nextVisited[target.Pointer] = true
	return g.generateFromSchema(target.Node, target.Pointer, depth+1, rng, nextVisited)
}

// generateAnyOf prefers the first branch whose inferred type is not
// "null"; if every branch is null-typed, the first branch is used. This is
// a fixed rule, not a random pick, per spec.md §4.5 rule 9.
func (g *Generator) generateAnyOf(branches []any, pointer string, depth int, rng *lcgRNG, visitedRefs map[string]bool) any {
	var fallback schemaNode
	haveFallback := false
	for _, branchRaw := range branches {
		branch, ok := asSchemaNode(branchRaw)
		if !ok {
			continue
		}
		if !haveFallback {
			fallback = branch
			haveFallback = true
		}
		types := branch.typeSet()
		isNullOnly := len(types) == 1 && types[0] == "null"
		if !isNullOnly {
			return g.generateFromSchema(branch, pointer, depth+1, rng, visitedRefs)
		}
	}
	if haveFallback {
		return g.generateFromSchema(fallback, pointer, depth+1, rng, visitedRefs)
	}
	return nil
}

// generateAllOf starts from an empty object and merges in every property
// from every branch that declares "properties" (resolving a $ref branch
// first), per spec.md §4.5 rule 11. The result is an object even when no
// branch declares a type.
func (g *Generator) generateAllOf(branches []any, pointer string, depth int, rng *lcgRNG, visitedRefs map[string]bool) any {
	merged := map[string]any{}

	for _, branchRaw := range branches {
		branch, ok := asSchemaNode(branchRaw)
		if !ok {
			continue
		}
		if ref, ok := branch.stringKeyword("$ref"); ok {
			target, err := g.reg.resolveRef(ref)
			if err == nil {
				branch = target.Node
			}
		}
		props, ok := branch.objectKeyword("properties")
		if !ok {
			continue
		}
		for _, name := range sortedKeys(props) {
			subNode, ok := asSchemaNode(props[name])
			if !ok {
				continue
			}
			propPointer := pointerJoin(pointerJoin(pointer, "properties"), name)
			merged[name] = g.generateFromSchema(subNode, propPointer, depth+1, rng, visitedRefs)
		}
	}

	return merged
}

func (g *Generator) generateByType(schema schemaNode, t, pointer string, depth int, rng *lcgRNG, visitedRefs map[string]bool) any {
	switch t {
	case "null":
		return nil
	case "boolean":
		return rng.intn(2) == 1
	case "integer":
		return float64(g.generateIntegerValue(schema, rng))
	case "number":
		return g.generateNumberValue(schema, rng)
	case "string":
		return g.generateStringValue(schema, rng)
	case "array":
		return g.generateArrayValue(schema, pointer, depth, rng, visitedRefs)
	case "object":
		return g.generateObjectValue(schema, pointer, depth, rng, visitedRefs)
	default:
		return nil
	}
}

// generateIntegerValue samples uniformly from the admissible half-open
// range, adjusting for exclusive bounds by nudging one integer inward, and
// floors the draw to a multiple of multipleOf when present.
func (g *Generator) generateIntegerValue(schema schemaNode, rng *lcgRNG) int64 {
	min := int64(0)
	hasMin := false
	if v, ok := schema.numberKeyword("minimum"); ok {
		min, hasMin = int64(v), true
	}
	if v, ok := schema.numberKeyword("exclusiveMinimum"); ok {
		min, hasMin = int64(v)+1, true
	}

	max := min + 100
	if hasMin {
		max = min + 100
	} else {
		max = 100
	}
	if v, ok := schema.numberKeyword("maximum"); ok {
		max = int64(v)
	}
	if v, ok := schema.numberKeyword("exclusiveMaximum"); ok {
		max = int64(v) - 1
	}
	if max < min {
		max = min
	}

	span := max - min
	value := min
	if span > 0 {
		value = min + int64(rng.intn(int(span)))
	}

	if step, ok := schema.numberKeyword("multipleOf"); ok && step > 0 {
		value -= value % int64(step)
		if value < min {
			value += int64(step)
		}
	}
	return value
}

// generateNumberValue samples uniformly over [min, max), nudging exclusive
// bounds by a small epsilon, then floors to a multiple of multipleOf when
// present.
func (g *Generator) generateNumberValue(schema schemaNode, rng *lcgRNG) float64 {
	const epsilon = 1e-9

	min := 0.0
	if v, ok := schema.numberKeyword("minimum"); ok {
		min = v
	}
	if v, ok := schema.numberKeyword("exclusiveMinimum"); ok {
		min = v + epsilon
	}

	max := min + 100
	if v, ok := schema.numberKeyword("maximum"); ok {
		max = v
	}
	if v, ok := schema.numberKeyword("exclusiveMaximum"); ok {
		max = v - epsilon
	}
	if max < min {
		max = min
	}

	value := min + rng.float64()*(max-min)
	if step, ok := schema.numberKeyword("multipleOf"); ok && step > 0 {
		value = math.Floor(value/step) * step
	}
	return value
}

func (g *Generator) generateStringValue(schema schemaNode, rng *lcgRNG) string {
	if format, ok := schema.stringKeyword("format"); ok {
		if s, ok := g.generateFormattedString(format, rng); ok {
			return s
		}
	}

	minLen := 1
	if v, ok := schema.numberKeyword("minLength"); ok {
		minLen = int(v)
	}
	maxLen := 10
	if v, ok := schema.numberKeyword("maxLength"); ok {
		maxLen = int(v)
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	if minLen < 0 {
		minLen = 0
	}

	length := minLen + rng.intn(maxLen-minLen+1)
	return rng.randomString(length)
}

func (g *Generator) generateFormattedString(format string, rng *lcgRNG) (string, bool) {
	switch format {
	case "uuid":
		id := uuid.NewSHA1(uuid.NameSpaceOID, rng.bytes(16))
		return id.String(), true
	case "email":
		return rng.randomString(6) + "@" + rng.randomString(5) + ".example", true
	case "date-time":
		return "2024-01-01T00:00:00Z", true
	case "date":
		return "2024-01-01", true
	case "time":
		return "00:00:00Z", true
	case "hostname":
		return rng.randomString(6) + ".example", true
	case "ipv4":
		return "192.0.2.1", true
	case "ipv6":
		return "2001:db8::1", true
	case "uri":
		return "https://example.com/" + rng.randomString(6), true
	default:
		return "", false
	}
}

// generateArrayValue fills a length in [minItems ?? 0, maxItems ?? 3] from
// prefixItems then items, per spec.md §4.5 rule 12.
func (g *Generator) generateArrayValue(schema schemaNode, pointer string, depth int, rng *lcgRNG, visitedRefs map[string]bool) []any {
	minItems := 0
	if v, ok := schema.numberKeyword("minItems"); ok {
		minItems = int(v)
	}
	maxItems := 3
	if v, ok := schema.numberKeyword("maxItems"); ok {
		maxItems = int(v)
	}
	if maxItems < minItems {
		maxItems = minItems
	}
	count := minItems
	if maxItems > minItems {
		count = minItems + rng.intn(maxItems-minItems+1)
	}

	out := make([]any, 0, count)
	prefix, _ := schema.arrayKeyword("prefixItems")
	itemsRaw, hasItems := schema.keyword("items")
	var itemSchema schemaNode
	if hasItems {
		itemSchema, hasItems = asSchemaNode(itemsRaw)
	}

	for i := 0; i < count; i++ {
		if i < len(prefix) {
			if sub, ok := asSchemaNode(prefix[i]); ok {
				out = append(out, g.generateFromSchema(sub, pointer, depth+1, rng, visitedRefs))
				continue
			}
		}
		if hasItems {
			out = append(out, g.generateFromSchema(itemSchema, pointer, depth+1, rng, visitedRefs))
			continue
		}
		out = append(out, g.generateByType(schemaNode{}, "string", pointer, depth, rng, visitedRefs))
	}
	return out
}

// generateObjectValue emits every required property using its schema (or
// a placeholder if none), then emits each remaining declared property with
// 50% probability via the seeded RNG, per spec.md §4.5 rule 12.
func (g *Generator) generateObjectValue(schema schemaNode, pointer string, depth int, rng *lcgRNG, visitedRefs map[string]bool) map[string]any {
	out := map[string]any{}
	props, _ := schema.objectKeyword("properties")
	required, _ := schema.stringArrayKeyword("required")

	isRequired := map[string]bool{}
	for _, name := range required {
		isRequired[name] = true
	}

	for _, name := range required {
		sub, ok := asSchemaNode(props[name])
		if !ok {
			out[name] = rng.randomString(8)
			continue
		}
		propPointer := pointerJoin(pointerJoin(pointer, "properties"), name)
		out[name] = g.generateFromSchema(sub, propPointer, depth+1, rng, visitedRefs)
	}

	for _, name := range sortedKeys(props) {
		if isRequired[name] {
			continue
		}
		if rng.intn(2) != 1 {
			continue
		}
		sub, ok := asSchemaNode(props[name])
		if !ok {
			continue
		}
		propPointer := pointerJoin(pointerJoin(pointer, "properties"), name)
		out[name] = g.generateFromSchema(sub, propPointer, depth+1, rng, visitedRefs)
	}

	return out
}
