/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package analysis provides statistics and comparison over token trees.
package analysis

import "bennypowers.dev/tmurot/token"

// Statistics summarizes one token tree.
type Statistics struct {
	// Tokens is the total token count.
	Tokens int

	// Groups is the total group count, excluding the root.
	Groups int

	// ByType is the per-type token histogram.
	ByType map[token.Type]int

	// MaxDepth is the deepest token or group path length.
	MaxDepth int

	// References is the total normalized reference count.
	References int

	// Unresolved counts tokens whose references have not been resolved.
	Unresolved int
}

// Stats collects statistics over a tree in a single pass.
func Stats(root *token.Group) *Statistics {
	stats := &Statistics{ByType: make(map[token.Type]int)}

	root.VisitGroups(func(g *token.Group) bool {
		if len(g.Path) > 0 {
			stats.Groups++
			if len(g.Path) > stats.MaxDepth {
				stats.MaxDepth = len(g.Path)
			}
		}
		return true
	})

	root.VisitTokens(func(t *token.Token) bool {
		stats.Tokens++
		stats.ByType[t.Type]++
		stats.References += len(t.References)
		if !t.Resolved {
			stats.Unresolved++
		}
		if len(t.Path) > stats.MaxDepth {
			stats.MaxDepth = len(t.Path)
		}
		return true
	})

	return stats
}
