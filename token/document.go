/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

// Document is a raw token document: a nested keyed structure where leaves
// carry $type and $value markers.
type Document = map[string]any

// CloneDocument returns a deep copy of a document, copying nested maps and
// slices so the result can be merged or mutated independently.
func CloneDocument(doc Document) Document {
	out, _ := cloneValue(doc).(map[string]any)
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
