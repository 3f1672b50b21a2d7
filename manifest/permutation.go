/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"bennypowers.dev/tmurot/fs"
	"bennypowers.dev/tmurot/parser"
	"bennypowers.dev/tmurot/resolver"
	"bennypowers.dev/tmurot/token"
)

// Permutation is one concrete combination of modifier selections. It is
// immutable once returned.
type Permutation struct {
	// ID deterministically names the permutation.
	ID string

	// Input is the modifier selection that produced it.
	Input map[string]any

	// Files is the ordered file list that was merged.
	Files []string

	// Document is the merged raw token document.
	Document token.Document

	// Resolved is the fully-resolved document, present when the
	// manifest requests eager resolution.
	Resolved token.Document

	// Output is the optional output path.
	Output string
}

// DocumentReader loads a token document by path. I/O errors propagate
// unchanged; the resolver never retries.
type DocumentReader interface {
	ReadDocument(path string) (token.Document, error)
}

// FSReader reads documents from a FileSystem, decoding JSONC or YAML.
type FSReader struct {
	FS fs.FileSystem
}

// ReadDocument implements DocumentReader.
func (r *FSReader) ReadDocument(path string) (token.Document, error) {
	data, err := r.FS.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parser.Decode(data)
}

// Resolver computes permutations for one manifest.
type Resolver struct {
	// Manifest is the manifest to resolve against.
	Manifest *Manifest

	// Reader loads token documents during merging.
	Reader DocumentReader

	// FS enables glob expansion of set and option file entries.
	// Nil disables expansion; entries are used verbatim.
	FS fs.FileSystem

	// Root is the base directory for relative file entries.
	Root string
}

// PermutationID computes the deterministic ID for a modifier selection:
// sorted key-value segments joined by "_", multi-value anyOf selections
// joined by "+". Identical inputs produce identical IDs irrespective of
// key order. No-modifier input maps to "default".
func PermutationID(input map[string]any) string {
	keys := make([]string, 0, len(input))
	for key := range input {
		if key != OutputKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var segments []string
	for _, key := range keys {
		switch v := input[key].(type) {
		case string:
			segments = append(segments, key+"-"+v)
		default:
			elements, ok := anyOfElements(v)
			if !ok {
				continue
			}
			var values []string
			for _, elem := range elements {
				if s, isString := elem.(string); isString {
					values = append(values, s)
				}
			}
			if len(values) == 0 {
				continue
			}
			sort.Strings(values)
			segments = append(segments, key+"-"+strings.Join(values, "+"))
		}
	}

	if len(segments) == 0 {
		return "default"
	}
	return strings.Join(segments, "_")
}

// ResolvePermutation validates the input, collects and merges the file
// set, and names the result. When the manifest requests eager reference
// resolution, any remaining resolution error fails the whole call with
// one aggregated message.
func (r *Resolver) ResolvePermutation(ctx context.Context, input map[string]any) (*Permutation, error) {
	return r.resolve(ctx, input, collectFilter{})
}

func (r *Resolver) resolve(ctx context.Context, input map[string]any, filter collectFilter) (*Permutation, error) {
	var errs []*ValidationError
	errs = append(errs, r.Manifest.Validate()...)
	errs = append(errs, r.Manifest.ValidateInput(input)...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid permutation input:\n%s", joinErrors(errs))
	}

	files, err := r.expandFiles(r.Manifest.collectFiles(input, filter))
	if err != nil {
		return nil, err
	}

	docs := make([]token.Document, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := r.Reader.ReadDocument(file)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	perm := &Permutation{
		ID:       PermutationID(input),
		Input:    input,
		Files:    files,
		Document: Merge(docs...),
	}
	if output, ok := input[OutputKey].(string); ok {
		perm.Output = output
	}

	if r.Manifest.Options.ResolveReferences {
		if err := r.resolveReferences(perm); err != nil {
			return nil, err
		}
	}

	return perm, nil
}

// resolveReferences eagerly resolves the merged document, attaching the
// flattened resolved form.
func (r *Resolver) resolveReferences(perm *Permutation) error {
	root, err := parser.Build(perm.Document, parser.Options{})
	if err != nil {
		return fmt.Errorf("failed to build permutation %s: %w", perm.ID, err)
	}

	r.localizeMergedRefs(root, perm.Files)

	file := token.NewFile(root, perm.ID)
	result := resolver.ResolveFile(file)
	if result.HasErrors() {
		return fmt.Errorf("failed to resolve permutation %s:\n%s",
			perm.ID, result.CombinedMessage())
	}

	perm.Resolved = file.Flatten()
	return nil
}

// localizeMergedRefs downgrades cross-file references to local aliases
// when the target file is part of the merged set. The merge already
// carries the target token, so the reference resolves within the
// merged tree; references to files outside the set stay cross-file and
// error as unresolvable.
func (r *Resolver) localizeMergedRefs(root *token.Group, files []string) {
	merged := make(map[string]bool, len(files))
	dirs := map[string]bool{".": true}
	if r.Root != "" {
		dirs[r.Root] = true
	}
	for _, f := range files {
		merged[filepath.Clean(f)] = true
		dirs[filepath.Dir(f)] = true
	}

	root.VisitTokens(func(t *token.Token) bool {
		for i := range t.References {
			ref := &t.References[i]
			if ref.Kind != token.RefCrossFile || isRemote(ref.File) {
				continue
			}
			if !targetMerged(ref.File, merged, dirs) {
				continue
			}
			ref.Kind = token.RefAlias
			ref.File = ""
		}
		return true
	})
}

// targetMerged reports whether a cross-file target names a file in the
// merged set. Relative targets are tried against every merged file's
// directory, since the merge discards each token's file of origin.
func targetMerged(target string, merged, dirs map[string]bool) bool {
	target = strings.TrimPrefix(target, "file://")
	if filepath.IsAbs(target) {
		return merged[filepath.Clean(target)]
	}
	for dir := range dirs {
		if merged[filepath.Clean(filepath.Join(dir, target))] {
			return true
		}
	}
	return false
}

// expandFiles resolves relative entries against Root and expands glob
// entries against the filesystem, deduplicating the final list.
func (r *Resolver) expandFiles(entries []string) ([]string, error) {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := entry
		if r.Root != "" && !filepath.IsAbs(path) && !isRemote(path) {
			path = filepath.Join(r.Root, path)
		}
		if r.FS != nil && fs.ContainsGlob(path) {
			matches, err := fs.Glob(r.FS, path)
			if err != nil {
				return nil, fmt.Errorf("failed to expand %q: %w", entry, err)
			}
			out = append(out, matches...)
			continue
		}
		out = append(out, path)
	}
	return dedupe(out), nil
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
