/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package analysis

import (
	"reflect"
	"sort"

	"bennypowers.dev/tmurot/token"
)

// Change records one token whose value differs between two trees.
type Change struct {
	// Path is the token's dot path.
	Path string

	// Before and After are the raw values on each side.
	Before any
	After  any

	// ColorDistance is the perceptual distance between two parseable
	// color values, -1 when not applicable.
	ColorDistance float64
}

// Diff compares two token trees by path.
type Diff struct {
	// Added lists paths present only in the new tree, sorted.
	Added []string

	// Removed lists paths present only in the old tree, sorted.
	Removed []string

	// Changed lists tokens whose values differ, sorted by path.
	Changed []Change
}

// Empty returns true when the trees are identical.
func (d *Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare diffs two token trees.
func Compare(before, after *token.Group) *Diff {
	beforeTokens := tokensByPath(before)
	afterTokens := tokensByPath(after)

	diff := &Diff{}

	for path, b := range beforeTokens {
		a, ok := afterTokens[path]
		if !ok {
			diff.Removed = append(diff.Removed, path)
			continue
		}
		if !reflect.DeepEqual(b.Value, a.Value) {
			change := Change{
				Path:          path,
				Before:        b.Value,
				After:         a.Value,
				ColorDistance: -1,
			}
			if b.Type == token.TypeColor && a.Type == token.TypeColor {
				if dist, ok := colorDistance(b.Value, a.Value); ok {
					change.ColorDistance = dist
				}
			}
			diff.Changed = append(diff.Changed, change)
		}
	}

	for path := range afterTokens {
		if _, ok := beforeTokens[path]; !ok {
			diff.Added = append(diff.Added, path)
		}
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Slice(diff.Changed, func(i, j int) bool {
		return diff.Changed[i].Path < diff.Changed[j].Path
	})

	return diff
}

func tokensByPath(root *token.Group) map[string]*token.Token {
	out := make(map[string]*token.Token)
	root.VisitTokens(func(t *token.Token) bool {
		out[t.DotPath()] = t
		return true
	})
	return out
}
