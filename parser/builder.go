/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/tmurot/fs"
	"bennypowers.dev/tmurot/schema"
	"bennypowers.dev/tmurot/token"
)

// BuildError is a fatal AST construction error. It aborts construction of
// the offending subtree; remaining siblings still build so every problem
// can be reported at once.
type BuildError struct {
	// Path is the dot path to the problematic entry.
	Path string
	// Message describes what's wrong.
	Message string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// entryKind classifies a document entry once, so the permanent tree is
// built from already-tagged entries instead of re-inspecting shape at
// every consumer.
type entryKind int

const (
	entryMetadata entryKind = iota
	entryToken
	entryGroup
	entrySkip
)

// builder accumulates build errors while constructing the tree.
type builder struct {
	version schema.Version
	errs    []*BuildError
}

// Build converts a nested document into a Group tree, extracting and
// normalizing references and propagating inherited types. All build
// errors are aggregated into the returned error; the partial tree is
// still returned for inspection.
func Build(doc map[string]any, opts Options) (*token.Group, error) {
	b := &builder{version: opts.SchemaVersion}
	root := token.NewGroup("", nil)
	b.buildGroup(root, doc, "")
	return root, b.err()
}

// Parse decodes raw JSONC/YAML bytes and builds the Group tree. When no
// schema version is forced, the version is detected from content.
func Parse(data []byte, opts Options) (*token.Group, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if opts.SchemaVersion == schema.Unknown {
		if v, err := schema.DetectVersion(data, nil); err == nil {
			opts.SchemaVersion = v
		}
	}
	return Build(doc, opts)
}

// ParseFile parses a token file into a File AST with its identity,
// checksum, and cross-file edge index.
func ParseFile(filesystem fs.FileSystem, path string, opts Options) (*token.File, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	root, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}

	sum := sha256.Sum256(data)
	f := token.NewFile(root, path)
	f.Checksum = hex.EncodeToString(sum[:])
	return f, nil
}

func (b *builder) err() error {
	if len(b.errs) == 0 {
		return nil
	}
	joined := make([]error, len(b.errs))
	for i, e := range b.errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

func (b *builder) addError(path []string, message string) {
	b.errs = append(b.errs, &BuildError{Path: strings.Join(path, "."), Message: message})
}

// classify tags a document entry as metadata, token, group, or skippable.
func (b *builder) classify(key string, value any) entryKind {
	if strings.HasPrefix(key, "$") {
		return entryMetadata
	}
	valueMap, ok := value.(map[string]any)
	if !ok {
		// Scalar non-$ entries have no place in a token tree.
		return entrySkip
	}
	if _, hasValue := valueMap["$value"]; hasValue {
		return entryToken
	}
	if _, hasRef := valueMap["$ref"]; hasRef && b.version != schema.Draft {
		return entryToken
	}
	return entryGroup
}

// buildGroup populates g from data. inherited is the effective type
// context from ancestor groups.
func (b *builder) buildGroup(g *token.Group, data map[string]any, inherited token.Type) {
	if typeStr, ok := data["$type"].(string); ok {
		g.Type = token.Type(typeStr)
		inherited = g.Type
	}
	if desc, ok := data["$description"].(string); ok {
		g.Description = desc
	}
	if ext, ok := data["$extensions"].(map[string]any); ok {
		g.Extensions = ext
	}

	// Sort for deterministic construction order.
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := data[key]
		switch b.classify(key, value) {
		case entryMetadata, entrySkip:
			continue
		case entryToken:
			if t := b.buildToken(g, key, value.(map[string]any), inherited); t != nil {
				g.AddToken(t)
			}
		case entryGroup:
			childPath := append(append([]string{}, g.Path...), key)
			child := token.NewGroup(key, childPath)
			b.buildGroup(child, value.(map[string]any), inherited)
			g.AddGroup(child)
		}
	}
}

// buildToken creates a Token from an already-classified map entry.
// Returns nil when the token fails to build; the error is recorded.
func (b *builder) buildToken(g *token.Group, key string, valueMap map[string]any, inherited token.Type) *token.Token {
	path := append(append([]string{}, g.Path...), key)

	var declared token.Type
	if typeStr, ok := valueMap["$type"].(string); ok {
		declared = token.Type(typeStr)
	}
	effective := declared
	if declared == "" {
		effective = inherited
	} else if inherited != "" && declared != inherited {
		b.addError(path, fmt.Sprintf("%v: declared %q, group declares %q",
			schema.ErrTypeConflict, declared, inherited))
		return nil
	}
	if effective == "" {
		b.addError(path, schema.ErrUntypedToken.Error())
		return nil
	}

	value, hasValue := valueMap["$value"]
	if !hasValue {
		// $ref token form: the pointer is the whole-value placeholder.
		value = valueMap["$ref"]
	}

	t := &token.Token{
		Name:       key,
		Path:       path,
		Type:       effective,
		Value:      value,
		References: extractValueReferences(value),
	}

	if desc, ok := valueMap["$description"].(string); ok {
		t.Description = desc
	}
	if ext, ok := valueMap["$extensions"].(map[string]any); ok {
		t.Extensions = ext
	}
	if deprecated, ok := valueMap["$deprecated"]; ok {
		if depBool, ok := deprecated.(bool); ok {
			t.Deprecated = depBool
		} else if depStr, ok := deprecated.(string); ok {
			t.Deprecated = true
			t.DeprecationMessage = depStr
		}
	}

	// A token with zero references is resolved by construction.
	if len(t.References) == 0 {
		t.Resolved = true
		t.ResolvedValue = value
	}

	return t
}

// extractValueReferences finds references at the whole-value level and
// embedded inside string payloads, array elements, and nested object
// properties.
func extractValueReferences(value any) []token.Reference {
	switch v := value.(type) {
	case string:
		return token.ExtractReferences(v)
	case map[string]any:
		if refStr, ok := v["$ref"].(string); ok {
			if ref, parsed := token.ParseReference(refStr); parsed {
				return []token.Reference{ref}
			}
			return nil
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var refs []token.Reference
		for _, k := range keys {
			refs = append(refs, extractValueReferences(v[k])...)
		}
		return refs
	case []any:
		var refs []token.Reference
		for _, elem := range v {
			refs = append(refs, extractValueReferences(elem)...)
		}
		return refs
	default:
		return nil
	}
}
