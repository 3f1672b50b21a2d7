/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import "bennypowers.dev/tmurot/token"

// Merge deep-merges documents in order. Later documents override earlier
// ones key-by-key, recursing into nested groups rather than replacing
// whole sub-trees. Inputs are never mutated.
func Merge(docs ...token.Document) token.Document {
	out := make(token.Document)
	for _, doc := range docs {
		mergeInto(out, doc)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		if srcIsMap {
			if dstMap, dstIsMap := dst[key].(map[string]any); dstIsMap {
				mergeInto(dstMap, srcMap)
				continue
			}
			dst[key] = token.CloneDocument(srcMap)
			continue
		}
		dst[key] = value
	}
}
