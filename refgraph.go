package jsonschema

import "sort"

// refEdge records that the schema at From contains a $ref keyword whose
// verbatim value To could not be resolved to an in-document pointer.
// Unresolved and external refs never produce an entry in refGraph.edges;
// they are reported separately as refEdge values so the registry can
// surface them without poisoning cycle detection.
type refEdge struct {
	From string
	To   string
}

// refGraph is the result of a single traversal of a document: every
// schema-shaped pointer discovered, every $ref edge between them, and the
// strongly connected components computed over those edges. No example in
// the retrieved corpus implements reference-cycle detection for JSON
// Schema, so this is original graph logic; it follows the standard
// iterative formulation of Tarjan's algorithm to avoid recursion-depth
// limits on deeply nested documents, per spec.md §4.2.
type refGraph struct {
	// pointers lists every schema-shaped location discovered during the
	// traversal, sorted by pointer string.
	pointers []string
	// edges maps a schema pointer to the set of pointers its $ref(s) target.
	edges map[string][]string
	// reverseEdges is the transpose of edges, used for impact queries.
	reverseEdges map[string][]string
	// unresolved records $ref occurrences whose target could not be
	// classified as an internal pointer, anchor, or bare $id at graph build
	// time (external refs, or refs to a location outside the document).
	unresolved []refEdge
	// components maps every pointer that participates in a cycle (SCC of
	// size > 1, or a single node with a self-edge) to the sorted list of
	// pointers in its component.
	components map[string][]string
	// order is a stable reverse-topological visitation order produced by the
	// same DFS pass: dependencies before dependents, with edges into an
	// on-stack (still-being-visited) node skipped so a cycle never blocks
	// the walk from completing.
	order []string
}

// buildRefGraph walks every schema-shaped location reachable by structural
// descent from root (properties, items, allOf, etc., the same keyword set
// validate.go understands) starting at rootPointer, recording $ref edges
// resolved against resolveTarget. resolveTarget classifies and resolves a
// raw $ref string to a canonical pointer; it returns ok=false for anything
// that is not an internal, already-resolvable reference.
func buildRefGraph(document any, rootPointer string, resolveTarget func(ref string) (string, bool)) *refGraph {
	g := &refGraph{
		edges:        map[string][]string{},
		reverseEdges: map[string][]string{},
	}

	visited := map[string]bool{}
	var walk func(node any, pointer string)
	walk = func(node any, pointer string) {
		sn, ok := asSchemaNode(node)
		if !ok || visited[pointer] {
			return
		}
		visited[pointer] = true
		g.pointers = append(g.pointers, pointer)

		if sn.isBoolean() {
			return
		}

		if ref, ok := sn.stringKeyword("$ref"); ok {
			if target, ok := resolveTarget(ref); ok {
				g.edges[pointer] = append(g.edges[pointer], target)
				g.reverseEdges[target] = append(g.reverseEdges[target], pointer)
			} else {
				g.unresolved = append(g.unresolved, refEdge{From: pointer, To: ref})
			}
		}

		for _, kw := range []string{"if", "then", "else", "not", "propertyNames", "contains", "unevaluatedItems", "unevaluatedProperties", "additionalProperties"} {
			if child, ok := sn.keyword(kw); ok {
				walk(child, pointerJoin(pointer, kw))
			}
		}
		for _, kw := range []string{"allOf", "anyOf", "oneOf", "prefixItems"} {
			if items, ok := sn.arrayKeyword(kw); ok {
				for i, item := range items {
					walk(item, pointerJoin(pointer, kw)+"/"+itoa(i))
				}
			}
		}
		if items, ok := sn.keyword("items"); ok {
			walk(items, pointerJoin(pointer, "items"))
		}
		for _, kw := range []string{"properties", "patternProperties", "dependentSchemas", "$defs", "definitions"} {
			if obj, ok := sn.objectKeyword(kw); ok {
				for key, child := range obj {
					walk(child, pointerJoin(pointer, kw)+"/"+jsonPointerFormatKey(key))
				}
			}
		}
	}

	walk(document, rootPointer)
	sort.Strings(g.pointers)
	g.components = tarjanCycles(g.pointers, g.edges)
	g.order = topoOrder(g.pointers, g.edges)
	return g
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	n := i
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func jsonPointerFormatKey(key string) string {
	return escapeToken(key)
}

// tarjanCycles computes strongly connected components over (nodes, edges)
// using the iterative index/lowlink formulation, and returns every
// component of size greater than one, plus any singleton with a self-edge,
// keyed by each member pointer for O(1) cycle membership lookup.
func tarjanCycles(nodes []string, edges map[string][]string) map[string][]string {
	type frame struct {
		node     string
		children []string
		ci       int
	}

	index := map[string]int{}
	lowlink := map[string]int{}
	onStack := map[string]bool{}
	var stack []string
	next := 0
	components := map[string][]string{}

	var process func(start string)
	process = func(start string) {
		if _, seen := index[start]; seen {
			return
		}

		var work []*frame
		work = append(work, &frame{node: start, children: edges[start]})
		index[start] = next
		lowlink[start] = next
		next++
		stack = append(stack, start)
		onStack[start] = true

		for len(work) > 0 {
			top := work[len(work)-1]

			if top.ci < len(top.children) {
				child := top.children[top.ci]
				top.ci++

				if _, seen := index[child]; !seen {
					index[child] = next
					lowlink[child] = next
					next++
					stack = append(stack, child)
					onStack[child] = true
					work = append(work, &frame{node: child, children: edges[child]})
				} else if onStack[child] {
					if index[child] < lowlink[top.node] {
						lowlink[top.node] = index[child]
					}
				}
				continue
			}

			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1]
				if lowlink[top.node] < lowlink[parent.node] {
					lowlink[parent.node] = lowlink[top.node]
				}
			}

			if lowlink[top.node] == index[top.node] {
				var component []string
				for {
					n := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[n] = false
					component = append(component, n)
					if n == top.node {
						break
					}
				}
				if len(component) > 1 || hasSelfEdge(top.node, edges) {
					sort.Strings(component)
					for _, member := range component {
						components[member] = component
					}
				}
			}
		}
	}

	for _, n := range nodes {
		process(n)
	}
	return components
}

func hasSelfEdge(node string, edges map[string][]string) bool {
	for _, target := range edges[node] {
		if target == node {
			return true
		}
	}
	return false
}

// topoOrder produces a stable dependency-first ordering via recursive DFS,
// skipping any edge into a node currently on the recursion stack so a
// reference cycle never prevents the walk from terminating. Ties (nodes
// with no ordering relationship) are broken by pointer string, keeping the
// result deterministic across runs on the same document.
func topoOrder(nodes []string, edges map[string][]string) []string {
	const (
		unvisited = 0
		onStack   = 1
		done      = 2
	)
	state := map[string]int{}
	var result []string

	var visit func(n string)
	visit = func(n string) {
		if state[n] == done || state[n] == onStack {
			return
		}
		state[n] = onStack
		children := append([]string(nil), edges[n]...)
		sort.Strings(children)
		for _, c := range children {
			if state[c] == onStack {
				continue
			}
			visit(c)
		}
		state[n] = done
		result = append(result, n)
	}

	for _, n := range nodes {
		visit(n)
	}
	return result
}

// isCyclic reports whether pointer participates in a detected reference
// cycle.
func (g *refGraph) isCyclic(pointer string) bool {
	_, ok := g.components[pointer]
	return ok
}
