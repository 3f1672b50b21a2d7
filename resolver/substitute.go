/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	"strings"
)

// substitute replaces every occurrence of a reference literal in value
// with its resolved replacement.
//
// Substitution rules:
//   - a whole-value match replaces the entire value
//   - a brace pattern embedded in a larger string is textually replaced
//   - array elements matching the literal are replaced per-element
//   - nested object properties matching the literal are replaced per-key
func substitute(value any, raw string, replacement any) any {
	switch v := value.(type) {
	case string:
		if v == raw {
			return replacement
		}
		if strings.Contains(v, raw) {
			return strings.ReplaceAll(v, raw, stringify(replacement))
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = substitute(elem, raw, replacement)
		}
		return out
	case map[string]any:
		// A {$ref: ...} object is a whole-value placeholder.
		if ref, ok := v["$ref"].(string); ok && ref == raw {
			return replacement
		}
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = substitute(elem, raw, replacement)
		}
		return out
	default:
		return v
	}
}

// stringify renders a resolved value for textual interpolation inside a
// larger string.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
