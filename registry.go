package jsonschema

import (
	"fmt"
	"sort"
	"sync"

	goccyjson "github.com/goccy/go-json"
)

// ProcessedSchema is the cached, ready-to-use view of a schema location:
// its tagged node form plus the pointer it was resolved at. Caching this
// (rather than the raw decoded value) avoids re-running asSchemaNode on
// every validation pass over a hot $ref target, mirroring the teacher's
// compiler.go schema cache.
type ProcessedSchema struct {
	Pointer string
	Node    schemaNode
}

// Registry owns a single decoded JSON document and everything derived from
// it: the pointer-to-anchor/$id index, the reference graph and its cycle
// census, and an insertion-only cache of resolved schema nodes. It is safe
// for concurrent use, following the sync.RWMutex-guarded cache pattern from
// the teacher's Compiler.
type Registry struct {
	document any

	mu    sync.RWMutex
	cache map[string]*ProcessedSchema

	anchors map[string]string // $anchor name -> pointer
	ids     map[string]string // bare $id value -> pointer

	graph *refGraph

	formatMu     sync.RWMutex
	formats      map[string]func(string) bool
	assertFormat bool
}

// NewRegistry decodes raw JSON bytes (or accepts an already-decoded
// map[string]any/bool/[]any) and builds its anchor index and reference
// graph. The root schema is addressed by the empty pointer "#".
func NewRegistry(input any) (*Registry, error) {
	var document any
	switch v := input.(type) {
	case []byte:
		if err := goccyjson.Unmarshal(v, &document); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
		}
	case string:
		if err := goccyjson.Unmarshal([]byte(v), &document); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
		}
	case nil:
		return nil, ErrSchemaIsNil
	default:
		document = v
	}

	r := &Registry{
		document: document,
		cache:    map[string]*ProcessedSchema{},
		anchors:  map[string]string{},
		ids:      map[string]string{},
		formats:  defaultFormats(),
	}
	r.indexAnchors(document, "#")
	r.graph = buildRefGraph(document, "#", r.classifyAndResolve)
	return r, nil
}

// indexAnchors performs a structural descent identical in shape to
// buildRefGraph's, recording every $anchor and bare $id declared on an
// object-form schema. Per the Open Question resolution recorded in
// DESIGN.md, anchors and $ids are matched by exact string only: no URI base
// resolution or nested scope inheritance is attempted.
func (r *Registry) indexAnchors(node any, pointer string) {
	sn, ok := asSchemaNode(node)
	if !ok || sn.isBoolean() {
		return
	}
	if anchor, ok := sn.stringKeyword("$anchor"); ok {
		if _, exists := r.anchors[anchor]; !exists {
			r.anchors[anchor] = pointer
		}
	}
	if id, ok := sn.stringKeyword("$id"); ok {
		if _, exists := r.ids[id]; !exists {
			r.ids[id] = pointer
		}
	}

	for _, kw := range []string{"if", "then", "else", "not", "propertyNames", "contains", "unevaluatedItems", "unevaluatedProperties", "additionalProperties", "items"} {
		if child, ok := sn.keyword(kw); ok {
			r.indexAnchors(child, pointerJoin(pointer, kw))
		}
	}
	for _, kw := range []string{"allOf", "anyOf", "oneOf", "prefixItems"} {
		if items, ok := sn.arrayKeyword(kw); ok {
			for i, item := range items {
				r.indexAnchors(item, pointerJoin(pointer, kw)+"/"+itoa(i))
			}
		}
	}
	for _, kw := range []string{"properties", "patternProperties", "dependentSchemas", "$defs", "definitions"} {
		if obj, ok := sn.objectKeyword(kw); ok {
			for key, child := range obj {
				r.indexAnchors(child, pointerJoin(pointer, kw)+"/"+jsonPointerFormatKey(key))
			}
		}
	}
}

// classifyAndResolve is the resolveTarget callback buildRefGraph uses: it
// classifies ref per classifyRef and, for the internal forms, resolves it
// to a canonical pointer already present in the anchor/pointer index.
func (r *Registry) classifyAndResolve(ref string) (string, bool) {
	switch classifyRef(ref).Form {
	case refFormRoot:
		return "#", true
	case refFormPointer:
		if _, err := resolvePointer(r.document, ref); err != nil {
			return "", false
		}
		return ref, true
	case refFormAnchor:
		target, ok := r.anchors[ref[1:]]
		return target, ok
	case refFormID:
		target, ok := r.ids[ref]
		return target, ok
	default:
		return "", false
	}
}

// resolveRef resolves a $ref string against the whole document (this core
// never implements nested URI base scoping) to its target schema, returning
// ErrRefExternal, ErrRefMalformed or ErrRefUnresolved when it cannot.
func (r *Registry) resolveRef(ref string) (*ProcessedSchema, error) {
	classified := classifyRef(ref)
	switch classified.Form {
	case refFormExternal:
		return nil, fmt.Errorf("%w: %q (%s)", ErrRefExternal, ref, classified.Suggestion)
	case refFormMalformed:
		return nil, fmt.Errorf("%w: %q (%s)", ErrRefMalformed, ref, classified.Suggestion)
	}

	target, ok := r.classifyAndResolve(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRefUnresolved, ref)
	}
	return r.Get(target)
}

// Get resolves pointer against the registry's document and returns its
// cached ProcessedSchema, populating the cache on first access. The cache
// is insertion-only: once a pointer has been resolved it is never evicted
// or recomputed, matching the teacher's schemas map in compiler.go.
func (r *Registry) Get(pointer string) (*ProcessedSchema, error) {
	r.mu.RLock()
	if cached, ok := r.cache[pointer]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	raw, err := resolvePointer(r.document, pointer)
	if err != nil {
		return nil, err
	}
	node, ok := asSchemaNode(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q does not address a schema", ErrSchemaIsNil, pointer)
	}

	processed := &ProcessedSchema{Pointer: pointer, Node: node}
	r.mu.Lock()
	if cached, ok := r.cache[pointer]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.cache[pointer] = processed
	r.mu.Unlock()
	return processed, nil
}

// isCyclic reports whether pointer participates in a $ref cycle discovered
// during graph construction.
func (r *Registry) isCyclic(pointer string) bool {
	return r.graph.isCyclic(pointer)
}

// cyclicRefs returns the sorted list of every pointer participating in any
// detected cycle, for diagnostics. The generator does not consult it; it
// breaks recursion with its own per-call set of visited refs.
func (r *Registry) cyclicRefs() []string {
	out := make([]string, 0, len(r.graph.components))
	for p := range r.graph.components {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// getComponentSchemas returns the named schemas declared under the
// conventional OpenAPI #/components/schemas location, falling back to a
// root-level $defs or definitions map when components/schemas is absent.
// This is a convenience projection over the registry's document, not a
// distinct index: callers still address each schema by its full pointer.
func (r *Registry) getComponentSchemas() map[string]string {
	out := map[string]string{}
	root, ok := asSchemaNode(r.document)
	if !ok {
		return out
	}
	if components, ok := root.objectKeyword("components"); ok {
		if schemas, ok := components["schemas"].(map[string]any); ok {
			for name := range schemas {
				out[name] = pointerJoin(pointerJoin("#", "components"), "schemas") + "/" + jsonPointerFormatKey(name)
			}
			return out
		}
	}
	for _, kw := range []string{"$defs", "definitions"} {
		if defs, ok := root.objectKeyword(kw); ok {
			for name := range defs {
				out[name] = pointerJoin("#", kw) + "/" + jsonPointerFormatKey(name)
			}
			return out
		}
	}
	return out
}

// RegisterFormat installs a custom "format" keyword validator, overriding
// any built-in validator registered under the same name.
func (r *Registry) RegisterFormat(name string, fn func(string) bool) {
	r.formatMu.Lock()
	defer r.formatMu.Unlock()
	r.formats[name] = fn
}

// UnregisterFormat removes a format validator, built-in or custom, so the
// "format" keyword becomes a no-op annotation for that name.
func (r *Registry) UnregisterFormat(name string) {
	r.formatMu.Lock()
	defer r.formatMu.Unlock()
	delete(r.formats, name)
}

func (r *Registry) format(name string) (func(string) bool, bool) {
	r.formatMu.RLock()
	defer r.formatMu.RUnlock()
	fn, ok := r.formats[name]
	return fn, ok
}

// SetAssertFormat toggles whether the "format" keyword produces validation
// failures (true) or only annotations (false, the 2020-12 default this
// core ships with, per the Open Question resolution in DESIGN.md).
func (r *Registry) SetAssertFormat(assert bool) {
	r.formatMu.Lock()
	defer r.formatMu.Unlock()
	r.assertFormat = assert
}

func (r *Registry) shouldAssertFormat() bool {
	r.formatMu.RLock()
	defer r.formatMu.RUnlock()
	return r.assertFormat
}
