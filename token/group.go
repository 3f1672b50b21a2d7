/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "strings"

// Group represents a group of tokens (can be nested). The root group has
// an empty Path and Name.
type Group struct {
	// Name is the group's last path segment.
	Name string

	// Path is the full path to this group, root = empty.
	Path []string

	// Type is the inherited $type for untyped tokens in this group.
	Type Type

	// Description is optional documentation for the group.
	Description string

	// Extensions allows for custom metadata.
	Extensions map[string]any

	// Tokens contains the token children keyed by name.
	Tokens map[string]*Token

	// Groups contains nested group children keyed by name.
	Groups map[string]*Group

	// order preserves child insertion order for flattening. It is not
	// semantically significant for resolution.
	order []string
}

// NewGroup creates a new empty token group at the given path.
func NewGroup(name string, path []string) *Group {
	return &Group{
		Name:   name,
		Path:   path,
		Tokens: make(map[string]*Token),
		Groups: make(map[string]*Group),
	}
}

// AddToken adds a token child, preserving insertion order.
func (g *Group) AddToken(t *Token) {
	if _, exists := g.Tokens[t.Name]; !exists {
		g.order = append(g.order, t.Name)
	}
	g.Tokens[t.Name] = t
}

// AddGroup adds a group child, preserving insertion order.
func (g *Group) AddGroup(child *Group) {
	if _, exists := g.Groups[child.Name]; !exists {
		g.order = append(g.order, child.Name)
	}
	g.Groups[child.Name] = child
}

// Keys returns child names in insertion order.
func (g *Group) Keys() []string {
	return g.order
}

// FindToken descends segment by segment through group children to the
// token at the given dot path. Fails on any missing segment or on
// descending into a leaf.
func (g *Group) FindToken(path string) (*Token, bool) {
	segments := strings.Split(path, ".")
	current := g
	for i, seg := range segments {
		if i == len(segments)-1 {
			t, ok := current.Tokens[seg]
			return t, ok
		}
		next, ok := current.Groups[seg]
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// FindGroup descends to the group at the given dot path. The empty path
// returns the receiver.
func (g *Group) FindGroup(path string) (*Group, bool) {
	if path == "" {
		return g, true
	}
	current := g
	for _, seg := range strings.Split(path, ".") {
		next, ok := current.Groups[seg]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// VisitTokens walks tokens depth-first in insertion order. The visitor
// returns false to stop early; VisitTokens reports whether the walk ran
// to completion.
func (g *Group) VisitTokens(visit func(*Token) bool) bool {
	for _, key := range g.order {
		if t, ok := g.Tokens[key]; ok {
			if !visit(t) {
				return false
			}
		}
		if child, ok := g.Groups[key]; ok {
			if !child.VisitTokens(visit) {
				return false
			}
		}
	}
	return true
}

// VisitGroups walks nested groups depth-first in insertion order,
// starting with the receiver. The visitor returns false to stop early.
func (g *Group) VisitGroups(visit func(*Group) bool) bool {
	if !visit(g) {
		return false
	}
	for _, key := range g.order {
		if child, ok := g.Groups[key]; ok {
			if !child.VisitGroups(visit) {
				return false
			}
		}
	}
	return true
}

// AllTokens returns all tokens in this group and nested groups in
// insertion order.
func (g *Group) AllTokens() []*Token {
	var tokens []*Token
	g.VisitTokens(func(t *Token) bool {
		tokens = append(tokens, t)
		return true
	})
	return tokens
}

// Flatten reconstructs the document form of this subtree. Resolved tokens
// emit their resolved value, unresolved tokens their raw value.
func (g *Group) Flatten() Document {
	out := make(Document)
	if g.Type != "" {
		out["$type"] = string(g.Type)
	}
	if g.Description != "" {
		out["$description"] = g.Description
	}
	if len(g.Extensions) > 0 {
		out["$extensions"] = g.Extensions
	}
	for _, key := range g.order {
		if t, ok := g.Tokens[key]; ok {
			m := t.ToValueMap()
			if t.Resolved {
				m["$value"] = t.ResolvedValue
			}
			out[key] = m
		}
		if child, ok := g.Groups[key]; ok {
			out[key] = child.Flatten()
		}
	}
	return out
}
