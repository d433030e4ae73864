package blueprint

import (
	"fmt"
	"sort"
	"strings"
)

// sectionContainerKeys are object keys known to hold a section list in
// structuring output, tried in order.
var sectionContainerKeys = []string{
	"sections",
	"Sections",
	"items",
	"results",
	"blocks",
	"parts",
	"structure",
	"outline",
	"section_list",
	"chapters",
}

// sectionsStrategy is one way of locating a section list inside arbitrary
// decoded JSON. Strategies are tried in order; the first hit wins.
type sectionsStrategy struct {
	name   string
	locate func(data any) ([]any, bool)
}

// Assigned in init to break the initialization cycle with findSectionsList,
// which the recursive_list_search strategy calls.
var sectionsStrategies []sectionsStrategy

func init() {
	sectionsStrategies = []sectionsStrategy{
		{
			// The parsed value is already a non-empty list.
			name: "list_itself",
			locate: func(data any) ([]any, bool) {
				list, ok := data.([]any)
				if ok && len(list) > 0 {
					return list, true
				}
				return nil, false
			},
		},
		{
			// A lone object with a "name" key is a single section.
			name: "single_named_object",
			locate: func(data any) ([]any, bool) {
				m, ok := data.(map[string]any)
				if !ok {
					return nil, false
				}
				if _, ok := m["name"]; ok {
					return []any{m}, true
				}
				return nil, false
			},
		},
		{
			name: "known_container_keys",
			locate: func(data any) ([]any, bool) {
				m, ok := data.(map[string]any)
				if !ok {
					return nil, false
				}
				for _, k := range sectionContainerKeys {
					if list, ok := m[k].([]any); ok && len(list) > 0 {
						return list, true
					}
				}
				return nil, false
			},
		},
		{
			// Depth-first search through object values for any non-empty list.
			// Keys are visited in sorted order for deterministic results.
			name: "recursive_list_search",
			locate: func(data any) ([]any, bool) {
				m, ok := data.(map[string]any)
				if !ok {
					return nil, false
				}
				keys := make([]string, 0, len(m))
				for k := range m {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					switch v := m[k].(type) {
					case []any:
						if len(v) > 0 {
							return v, true
						}
					case map[string]any:
						if found, ok := findSectionsList(v); ok {
							return found, true
						}
					}
				}
				return nil, false
			},
		},
	}
}

// findSectionsList locates a list of section items inside arbitrary decoded
// JSON, trying each strategy in sequence.
func findSectionsList(data any) ([]any, bool) {
	for _, s := range sectionsStrategies {
		if list, ok := s.locate(data); ok {
			return list, true
		}
	}
	return nil, false
}

// Key name variants the model is known to emit for section items.
var (
	nameKeys    = []string{"name", "Name", "title", "section", "heading"}
	purposeKeys = []string{"purpose", "Purpose", "description"}
)

// sectionItemToPair normalizes one located item into a (name, purpose) pair.
// Objects are probed through the key variants; a bare string becomes a name
// with an empty purpose.
func sectionItemToPair(item any) (Pair, bool) {
	switch v := item.(type) {
	case map[string]any:
		name := firstNonEmpty(v, nameKeys)
		if name == "" {
			return Pair{}, false
		}
		return Pair{Name: name, Purpose: firstNonEmpty(v, purposeKeys)}, true
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return Pair{Name: s}, true
		}
	}
	return Pair{}, false
}

func firstNonEmpty(m map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprintf("%v", v)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
