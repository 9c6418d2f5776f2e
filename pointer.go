package jsonschema

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// escapeToken encodes a single raw token per RFC 6901: '~' becomes "~0"
// first, then '/' becomes "~1", so that a literal tilde is never
// reinterpreted as the start of an escape sequence introduced by the slash
// substitution.
func escapeToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}

// unescapeToken decodes a single RFC 6901 token: "~1" becomes '/' first,
// then "~0" becomes '~', so a lone unescaped tilde (not followed by 0 or 1)
// is left untouched as a literal character, per spec.md §4.1's leniency
// rule for stray tildes.
func unescapeToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// splitPointer breaks a pointer string ("#", "", or "#/a/b") into its raw,
// still-escaped segments, accepting both the bare-pointer form and the
// URI-fragment form. jsonpointer.Parse understands the "/a/b" token grammar;
// this wraps it with the "#" handling spec.md requires at the boundary.
func splitPointer(pointer string) ([]string, error) {
	p := strings.TrimPrefix(pointer, "#")
	if p == "" {
		return nil, nil
	}
	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("%w: %q", ErrRefMalformed, pointer)
	}
	return jsonpointer.Parse(p), nil
}

// decodeSegment percent-decodes a pointer segment (URI-fragment
// compatibility, RFC 3986) and then applies RFC 6901 tilde-unescaping.
func decodeSegment(segment string) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPointerSegmentDecode, err)
	}
	return unescapeToken(decoded), nil
}

// resolvePointer walks document following an RFC 6901 pointer, accepting
// percent-encoded segments. Object members are looked up by exact key;
// array segments must be non-negative base-10 integers with no leading
// zero (except the single digit "0") and in range. Any segment that cannot
// be followed yields ErrPointerNotFound.
func resolvePointer(document any, pointer string) (any, error) {
	segments, err := splitPointer(pointer)
	if err != nil {
		return nil, err
	}

	current := document
	for _, raw := range segments {
		token, err := decodeSegment(raw)
		if err != nil {
			return nil, err
		}

		switch node := current.(type) {
		case map[string]any:
			v, ok := node[token]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrPointerNotFound, pointer)
			}
			current = v
		case []any:
			idx, ok := parseArrayIndex(token)
			if !ok || idx >= len(node) {
				return nil, fmt.Errorf("%w: %q", ErrPointerNotFound, pointer)
			}
			current = node[idx]
		default:
			return nil, fmt.Errorf("%w: %q", ErrPointerNotFound, pointer)
		}
	}
	return current, nil
}

// parseArrayIndex enforces spec.md §4.1: reject leading zeros (other than
// the literal token "0") and negative or non-numeric tokens.
func parseArrayIndex(token string) (int, bool) {
	if token == "" {
		return 0, false
	}
	if token != "0" && strings.HasPrefix(token, "0") {
		return 0, false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(token)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// pointerJoin appends an already-unescaped key/index to a parent pointer,
// escaping it for storage in the ref graph and cache keys.
func pointerJoin(parent, token string) string {
	return parent + "/" + escapeToken(token)
}

// refForm classifies the verbatim form of a $ref string per spec.md §4.1
// and §6.
type refForm int

const (
	refFormRoot refForm = iota
	refFormPointer
	refFormAnchor
	refFormID
	refFormExternal
	refFormMalformed
)

// refSuggestion carries a human-actionable diagnosis for a malformed or
// externally-scoped $ref, surfaced through the $ref validation error.
type refSuggestion struct {
	Form       refForm
	Suggestion string
}

// classifyRef validates and classifies a $ref string, returning a
// structured diagnosis for malformed or external forms so callers (and the
// out-of-scope diagnostic layer) can render actionable guidance.
func classifyRef(ref string) refSuggestion {
	switch {
	case ref == "#":
		return refSuggestion{Form: refFormRoot}
	case strings.HasPrefix(ref, "##"):
		return refSuggestion{Form: refFormMalformed, Suggestion: "remove the duplicate '#'; a fragment-only ref starts with a single '#'"}
	case strings.Contains(ref, "?"):
		return refSuggestion{Form: refFormMalformed, Suggestion: "query strings are not part of JSON Pointer; drop everything from '?' onward"}
	case strings.Count(ref, "#") > 1:
		return refSuggestion{Form: refFormMalformed, Suggestion: "a $ref may contain at most one '#'; remove the extra fragment separator"}
	case strings.ContainsAny(ref, " \\"):
		return refSuggestion{Form: refFormMalformed, Suggestion: "escape spaces and backslashes, or percent-encode the segment"}
	case strings.HasPrefix(ref, "#/"):
		return refSuggestion{Form: refFormPointer}
	case strings.HasPrefix(ref, "#"):
		return refSuggestion{Form: refFormAnchor}
	case isAbsoluteURIRef(ref):
		return refSuggestion{Form: refFormExternal, Suggestion: "inline the referenced schema; external $ref fetching is not supported"}
	case strings.Contains(ref, "/"):
		return refSuggestion{Form: refFormExternal, Suggestion: "relative-path $refs are treated as external; inline the referenced schema"}
	default:
		return refSuggestion{Form: refFormID}
	}
}

func isAbsoluteURIRef(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && u.Scheme != ""
}
