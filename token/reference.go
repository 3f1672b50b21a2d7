/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"regexp"
	"strings"
)

// ReferenceKind indicates the reference format.
type ReferenceKind int

const (
	// RefAlias is a local reference to a token in the same file, normalized
	// to canonical dot-path form. Both {a.b.c} and #/a/b/$value normalize
	// to this kind.
	RefAlias ReferenceKind = iota

	// RefCrossFile is a reference whose target lives in another file,
	// written as a relative path, file:// URI, or http(s):// URL followed
	// by a #fragment.
	RefCrossFile
)

// Reference is a normalized reference to another token.
type Reference struct {
	// Raw is the original reference literal as written in the document.
	Raw string

	// Path is the canonical dot-path of the target token.
	Path string

	// Kind indicates the reference format.
	Kind ReferenceKind

	// File is the target file for cross-file references, empty for aliases.
	File string
}

var (
	// curlyBracePattern matches {token.path} references.
	curlyBracePattern = regexp.MustCompile(`\{([^{}]+)\}`)

	// wholeCurlyBracePattern matches a value that is exactly one reference.
	wholeCurlyBracePattern = regexp.MustCompile(`^\{([^{}]+)\}$`)

	// jsonPointerPattern matches JSON pointer format: #/path/to/token
	jsonPointerPattern = regexp.MustCompile(`^#/(.+)$`)

	// crossFilePattern matches path-like strings bearing a token file
	// extension and a fragment: ../colors.json#brand.primary
	crossFilePattern = regexp.MustCompile(`^([^#]+\.(?:json|jsonc|yaml|yml))#(.+)$`)

	// uriPattern matches file://, http:// and https:// cross-file forms.
	uriPattern = regexp.MustCompile(`^((?:file|https?)://[^#]+)#(.+)$`)
)

// ParseReference classifies a whole-value reference literal. Returns the
// normalized reference and true, or false when raw is not a reference.
func ParseReference(raw string) (Reference, bool) {
	if m := wholeCurlyBracePattern.FindStringSubmatch(raw); m != nil {
		return Reference{Raw: raw, Path: m[1], Kind: RefAlias}, true
	}
	if m := jsonPointerPattern.FindStringSubmatch(raw); m != nil {
		return Reference{Raw: raw, Path: pointerToDotPath(m[1]), Kind: RefAlias}, true
	}
	if file, frag, ok := splitCrossFile(raw); ok {
		return Reference{Raw: raw, Path: fragmentToDotPath(frag), Kind: RefCrossFile, File: file}, true
	}
	return Reference{}, false
}

// ExtractReferences extracts every reference embedded in a string value.
// A string that is itself a whole-value reference yields one reference;
// brace patterns inside a larger string each yield their own.
func ExtractReferences(value string) []Reference {
	if ref, ok := ParseReference(value); ok {
		return []Reference{ref}
	}
	var refs []Reference
	for _, m := range curlyBracePattern.FindAllStringSubmatch(value, -1) {
		refs = append(refs, Reference{
			Raw:  m[0],
			Path: m[1],
			Kind: RefAlias,
		})
	}
	return refs
}

// splitCrossFile splits a cross-file literal into its file and fragment
// parts. URI forms keep their scheme in the file part.
func splitCrossFile(raw string) (file, fragment string, ok bool) {
	if m := uriPattern.FindStringSubmatch(raw); m != nil {
		return m[1], m[2], true
	}
	if m := crossFilePattern.FindStringSubmatch(raw); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}

// pointerToDotPath converts a JSON pointer body (a/b/$value) to a dot path,
// dropping the trailing value marker and decoding RFC 6901 escapes.
// Order matters: ~1 must be replaced before ~0.
func pointerToDotPath(pointer string) string {
	parts := strings.Split(pointer, "/")
	if len(parts) > 0 && parts[len(parts)-1] == "$value" {
		parts = parts[:len(parts)-1]
	}
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		parts[i] = part
	}
	return strings.Join(parts, ".")
}

// fragmentToDotPath normalizes a cross-file fragment. Fragments may be
// written as dot paths (a.b) or pointer-style slash paths (/a/b or a/b).
func fragmentToDotPath(fragment string) string {
	fragment = strings.TrimPrefix(fragment, "/")
	if strings.Contains(fragment, "/") {
		return pointerToDotPath(fragment)
	}
	return fragment
}

// ContainsReference returns true if the string value embeds any reference.
func ContainsReference(value string) bool {
	if curlyBracePattern.MatchString(value) {
		return true
	}
	if jsonPointerPattern.MatchString(value) {
		return true
	}
	_, _, ok := splitCrossFile(value)
	return ok
}
