/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "strings"

// Token represents a design token leaf following the DTCG specification.
// See: https://design-tokens.github.io/community-group/format/
type Token struct {
	// Name is the token's last path segment.
	Name string

	// Path is the full path to this token, root = empty.
	Path []string

	// Type is the token's effective type: its own declared $type, or the
	// nearest ancestor group's type when undeclared.
	Type Type

	// Value is the raw $value, possibly containing reference placeholders.
	Value any

	// References are the normalized references extracted from Value.
	References []Reference

	// Resolved indicates reference substitution has completed. A token
	// with zero references is resolved by construction.
	Resolved bool

	// ResolvedValue is the reference-free value, present once Resolved.
	ResolvedValue any

	// Description is optional documentation for the token.
	Description string

	// Extensions allows for custom metadata.
	Extensions map[string]any

	// Deprecated indicates if this token should no longer be used.
	Deprecated bool

	// DeprecationMessage provides context for deprecated tokens.
	DeprecationMessage string

	// FilePath is the file this token was loaded from.
	FilePath string
}

// DotPath returns the dot-separated path to this token.
func (t *Token) DotPath() string {
	return strings.Join(t.Path, ".")
}

// ParentPath returns the path of the owning group. Upward navigation is
// done by path truncation, never by an owning pointer.
func (t *Token) ParentPath() []string {
	if len(t.Path) == 0 {
		return nil
	}
	return t.Path[:len(t.Path)-1]
}

// CrossFileReferences returns the subset of references targeting other files.
func (t *Token) CrossFileReferences() []Reference {
	var refs []Reference
	for _, ref := range t.References {
		if ref.Kind == RefCrossFile {
			refs = append(refs, ref)
		}
	}
	return refs
}

// HasCrossFileReferences returns true if any reference targets another file.
func (t *Token) HasCrossFileReferences() bool {
	for _, ref := range t.References {
		if ref.Kind == RefCrossFile {
			return true
		}
	}
	return false
}

// ToValueMap reconstructs the document form of this token.
func (t *Token) ToValueMap() map[string]any {
	out := map[string]any{"$value": t.Value}
	if t.Type != "" {
		out["$type"] = string(t.Type)
	}
	if t.Description != "" {
		out["$description"] = t.Description
	}
	if len(t.Extensions) > 0 {
		out["$extensions"] = t.Extensions
	}
	if t.Deprecated {
		if t.DeprecationMessage != "" {
			out["$deprecated"] = t.DeprecationMessage
		} else {
			out["$deprecated"] = true
		}
	}
	return out
}
