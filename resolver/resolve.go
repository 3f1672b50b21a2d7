/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"

	"bennypowers.dev/tmurot/token"
)

// maxChainDepth bounds worst-case stack usage on pathologically deep
// non-cyclic alias chains. True cycles are caught by the visiting set
// before this ceiling is reached.
const maxChainDepth = 128

// resolution bundles the shared caches threaded through every resolve
// call: memo map, visiting set, and error list. Scoping them to one
// value keeps resolution re-entrant and testable in isolation.
type resolution struct {
	project  *token.Project
	memo     map[string]any
	visiting map[string]bool
	errors   []*Error
	reported map[string]bool
	depth    int
}

func newResolution(p *token.Project) *resolution {
	return &resolution{
		project:  p,
		memo:     make(map[string]any),
		visiting: make(map[string]bool),
		reported: make(map[string]bool),
	}
}

// ResolveFile resolves every reference in a single file, the one-file
// project special case.
func ResolveFile(f *token.File) *Result {
	p := token.NewProject()
	p.AddFile(f)
	return ResolveProject(p)
}

// ResolveProject resolves references across every file of a project in
// three phases: an intra-file pass over local-only tokens, a cross-file
// pass over the recorded edges, and a second intra-file pass for chains
// that cross file boundaries and return.
//
// Errors are collected, never thrown. The project is returned with as
// many tokens resolved as possible; the caller decides whether any
// error is fatal.
func ResolveProject(p *token.Project) *Result {
	rc := newResolution(p)

	// Intra-file pass: tokens with no references resolved at build time,
	// local-only chains resolve here. Aliases whose target waits on a
	// cross-file substitution are deferred without error.
	for _, path := range p.FilePaths() {
		f := p.Files[path]
		f.VisitTokens(func(t *token.Token) bool {
			if !t.Resolved && !t.HasCrossFileReferences() {
				rc.resolveToken(f, t, false, false)
			}
			return true
		})
	}

	// Cross-file pass: resolve each deferred token through the project.
	for _, path := range p.FilePaths() {
		f := p.Files[path]
		f.VisitTokens(func(t *token.Token) bool {
			if !t.Resolved && t.HasCrossFileReferences() {
				rc.resolveToken(f, t, true, true)
			}
			return true
		})
	}

	// Second intra-file pass: local aliases whose targets only became
	// resolvable after cross-file substitution. Remaining failures are
	// now definitive and reported.
	for _, path := range p.FilePaths() {
		f := p.Files[path]
		f.VisitTokens(func(t *token.Token) bool {
			if !t.Resolved && !t.HasCrossFileReferences() {
				rc.resolveToken(f, t, false, true)
			}
			return true
		})
	}

	return &Result{Project: p, Errors: rc.errors}
}

// resolveToken recursively resolves one token, substituting every
// reference into its working value. The token is marked resolved only
// once all of its references have been substituted.
//
// allowCross enables following cross-file references; outside the
// cross-file pass such tokens are deferred instead. strict controls
// whether missing targets are reported: the first intra-file pass stays
// quiet because a target may become resolvable later.
func (rc *resolution) resolveToken(f *token.File, t *token.Token, allowCross, strict bool) (any, bool) {
	if t.Resolved {
		return t.ResolvedValue, true
	}
	if !allowCross && t.HasCrossFileReferences() {
		return nil, false
	}

	key := f.FilePath + "!" + t.DotPath()
	if v, ok := rc.memo[key]; ok {
		return v, true
	}
	if rc.visiting[key] {
		rc.addError(&Error{
			Kind:    KindCircular,
			Path:    t.DotPath(),
			Message: "circular reference detected",
		})
		return nil, false
	}
	if rc.depth >= maxChainDepth {
		rc.addError(&Error{
			Kind:    KindInvalid,
			Path:    t.DotPath(),
			Message: fmt.Sprintf("reference chain exceeds %d links", maxChainDepth),
		})
		return nil, false
	}

	rc.visiting[key] = true
	rc.depth++
	defer func() {
		delete(rc.visiting, key)
		rc.depth--
	}()

	value := t.Value
	complete := true

	for _, ref := range t.References {
		replacement, ok := rc.resolveReference(f, t, ref, allowCross, strict)
		if !ok {
			complete = false
			continue
		}
		value = substitute(value, ref.Raw, replacement)
	}

	if !complete {
		return nil, false
	}

	t.ResolvedValue = value
	t.Resolved = true
	rc.memo[key] = value
	return value, true
}

// resolveReference locates and resolves the target of one reference.
func (rc *resolution) resolveReference(f *token.File, t *token.Token, ref token.Reference, allowCross, strict bool) (any, bool) {
	switch ref.Kind {
	case token.RefCrossFile:
		if !allowCross {
			return nil, false
		}
		targetFile, ok := rc.project.File(ref.File)
		if !ok {
			rc.addError(&Error{
				Kind:       KindCrossFile,
				Path:       t.DotPath(),
				Message:    "target file not found",
				Reference:  ref.Raw,
				TargetFile: ref.File,
			})
			return nil, false
		}
		target, ok := targetFile.FindToken(ref.Path)
		if !ok {
			rc.addError(&Error{
				Kind:       KindMissing,
				Path:       t.DotPath(),
				Message:    fmt.Sprintf("target token %q not found", ref.Path),
				Reference:  ref.Raw,
				TargetFile: ref.File,
			})
			return nil, false
		}
		return rc.resolveToken(targetFile, target, true, strict)

	default:
		target, ok := f.FindToken(ref.Path)
		if !ok {
			if strict {
				rc.addError(&Error{
					Kind:      KindMissing,
					Path:      t.DotPath(),
					Message:   fmt.Sprintf("reference target %q not found", ref.Path),
					Reference: ref.Raw,
				})
			}
			return nil, false
		}
		return rc.resolveToken(f, target, allowCross, strict)
	}
}

// addError records an error once; revisits across passes do not
// duplicate reports.
func (rc *resolution) addError(e *Error) {
	key := string(e.Kind) + "|" + e.Path + "|" + e.Reference
	if rc.reported[key] {
		return
	}
	rc.reported[key] = true
	rc.errors = append(rc.errors, e)
}
