package relaton

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Doc is a decoded Relaton JSON document: a map[string]any, a []any, or a
// scalar (string, float64, bool, nil). Citation bodies are loosely typed;
// Doc keeps them as-is rather than forcing them through the typed model.
type Doc = any

// ParseDoc decodes a JSON document body.
func ParseDoc(data []byte) (Doc, error) {
	var doc Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// MarshalDoc encodes a document back to JSON.
func MarshalDoc(doc Doc) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

// Contains reports whether body structurally contains pattern:
//
//   - objects: every key of pattern must exist in body with a value that
//     recursively contains the pattern value
//   - arrays: every element of pattern must be contained in some element
//     of the body array
//   - scalars: exact equality
//
// This is a subset predicate, not equality; extra keys and elements in
// body never prevent a match.
func Contains(body, pattern Doc) bool {
	switch p := pattern.(type) {
	case map[string]any:
		b, ok := body.(map[string]any)
		if !ok {
			return false
		}
		for k, pv := range p {
			bv, ok := b[k]
			if !ok || !Contains(bv, pv) {
				return false
			}
		}
		return true
	case []any:
		b, ok := body.([]any)
		if !ok {
			return false
		}
		for _, pv := range p {
			found := false
			for _, bv := range b {
				if Contains(bv, pv) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return body == pattern
	}
}

// GetString returns the string value at a key path in a document, or ""
// when the path does not resolve to a string.
func GetString(doc Doc, path ...string) string {
	cur := doc
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[key]
	}
	s, _ := cur.(string)
	return s
}

// GetList returns the array value at a key in a document, or nil.
func GetList(doc Doc, key string) []any {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	l, _ := m[key].([]any)
	return l
}

// FlattenText renders a document as a flat text blob for full-text
// indexing: object keys and scalar leaf values, space-separated. Map keys
// are emitted in sorted order so the rendering is stable.
func FlattenText(doc Doc) string {
	var b strings.Builder
	flattenText(&b, doc)
	return strings.TrimSpace(b.String())
}

func flattenText(b *strings.Builder, doc Doc) {
	switch v := doc.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(k)
			b.WriteByte(' ')
			flattenText(b, v[k])
		}
	case []any:
		for _, e := range v {
			flattenText(b, e)
		}
	case string:
		b.WriteString(v)
		b.WriteByte(' ')
	case float64:
		fmt.Fprintf(b, "%v ", v)
	case bool:
		fmt.Fprintf(b, "%v ", v)
	case nil:
		// nothing to index
	}
}
