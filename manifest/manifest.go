/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package manifest resolves token file permutations from a declarative
// manifest of sets, modifiers, and generate specs.
package manifest

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Wildcard is the modifier option whose files apply regardless of which
// option is chosen.
const Wildcard = "*"

// OutputKey is the reserved input key naming an output path; it never
// names a modifier.
const OutputKey = "output"

// Set is an unconditional list of token files.
type Set struct {
	// Name optionally identifies the set for include/exclude filtering.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Values are the set's token file paths, in order.
	Values []string `json:"values" yaml:"values"`
}

// Modifier is a manifest-declared axis of variation.
type Modifier struct {
	// Name is the modifier's key in the manifest.
	Name string `json:"-" yaml:"-"`

	// OneOf lists options of which exactly one must be selected.
	OneOf []string `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`

	// AnyOf lists options of which any subset may be selected.
	AnyOf []string `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`

	// Values maps each option to its additional file list. The wildcard
	// option "*" supplies files applied for every selection.
	Values map[string][]string `json:"values,omitempty" yaml:"values,omitempty"`
}

// IsOneOf returns true for exactly-one modifiers.
func (m *Modifier) IsOneOf() bool {
	return len(m.OneOf) > 0
}

// Options returns the modifier's option names, excluding the wildcard.
func (m *Modifier) Options() []string {
	if m.IsOneOf() {
		return m.OneOf
	}
	return m.AnyOf
}

// HasOption returns true if name is one of the modifier's options.
func (m *Modifier) HasOption(name string) bool {
	for _, opt := range m.Options() {
		if opt == name {
			return true
		}
	}
	return false
}

// GenerateSpec is one explicit permutation request: modifier-value
// assignments plus optional filters and an output path.
type GenerateSpec struct {
	// Modifiers maps modifier names to a selection: a single option, a
	// list of options to expand, or the wildcard for every option.
	Modifiers map[string]any

	// Output is the output path for the generated permutation.
	Output string

	// IncludeSets/ExcludeSets restrict which named sets contribute files.
	IncludeSets []string
	ExcludeSets []string

	// IncludeModifiers/ExcludeModifiers restrict which modifiers
	// contribute files.
	IncludeModifiers []string
	ExcludeModifiers []string
}

// Options holds manifest-level resolution options.
type Options struct {
	// ResolveReferences requests eager reference resolution for every
	// permutation.
	ResolveReferences bool `json:"resolveReferences,omitempty" yaml:"resolveReferences,omitempty"`
}

// Manifest describes how token files combine under named modifiers into
// output permutations.
type Manifest struct {
	// Name identifies the manifest.
	Name string

	// Sets are the unconditional file lists, in declaration order.
	Sets []Set

	// Modifiers are the axes of variation, keyed by name.
	Modifiers map[string]*Modifier

	// Generate lists explicit permutation requests, in order.
	Generate []GenerateSpec

	// Options holds resolution options.
	Options Options
}

// ModifierNames returns modifier names in sorted order. Document maps
// carry no reliable order, so every combinatorial walk uses this.
func (m *Manifest) ModifierNames() []string {
	names := make([]string, 0, len(m.Modifiers))
	for name := range m.Modifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rawManifest is the document shape of a manifest.
type rawManifest struct {
	Name      string               `json:"name" yaml:"name"`
	Sets      []Set                `json:"sets" yaml:"sets"`
	Modifiers map[string]*Modifier `json:"modifiers" yaml:"modifiers"`
	Generate  []map[string]any     `json:"generate" yaml:"generate"`
	Options   Options              `json:"options" yaml:"options"`
}

// Parse parses manifest bytes. JSON (optionally with comments) and YAML
// are both accepted.
func Parse(data []byte) (*Manifest, error) {
	var raw rawManifest
	if looksLikeJSON(data) {
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
		}
	}

	m := &Manifest{
		Name:      raw.Name,
		Sets:      raw.Sets,
		Modifiers: raw.Modifiers,
		Options:   raw.Options,
	}
	if m.Modifiers == nil {
		m.Modifiers = make(map[string]*Modifier)
	}
	for name, mod := range m.Modifiers {
		if mod == nil {
			continue
		}
		mod.Name = name
	}
	for _, entry := range raw.Generate {
		m.Generate = append(m.Generate, parseGenerateSpec(entry))
	}

	if errs := m.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid manifest:\n%s", joinErrors(errs))
	}
	return m, nil
}

// parseGenerateSpec splits reserved keys from modifier assignments.
func parseGenerateSpec(entry map[string]any) GenerateSpec {
	spec := GenerateSpec{Modifiers: make(map[string]any)}
	for key, value := range entry {
		switch key {
		case OutputKey:
			if s, ok := value.(string); ok {
				spec.Output = s
			}
		case "includeSets":
			spec.IncludeSets = toStringSlice(value)
		case "excludeSets":
			spec.ExcludeSets = toStringSlice(value)
		case "includeModifiers":
			spec.IncludeModifiers = toStringSlice(value)
		case "excludeModifiers":
			spec.ExcludeModifiers = toStringSlice(value)
		default:
			spec.Modifiers[key] = value
		}
	}
	return spec
}

func toStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}

// looksLikeJSON checks if data appears to be JSON rather than YAML.
func looksLikeJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r', 0xEF, 0xBB, 0xBF:
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

// Validate checks manifest structure: every modifier must declare
// exactly one of oneOf or anyOf, and option file lists must name known
// options. All problems are accumulated.
func (m *Manifest) Validate() []*ValidationError {
	var errs []*ValidationError

	for _, name := range m.ModifierNames() {
		mod := m.Modifiers[name]
		if mod == nil {
			errs = append(errs, &ValidationError{
				Modifier: name,
				Message:  "modifier has no body",
			})
			continue
		}
		hasOneOf := len(mod.OneOf) > 0
		hasAnyOf := len(mod.AnyOf) > 0
		switch {
		case hasOneOf && hasAnyOf:
			errs = append(errs, &ValidationError{
				Modifier: name,
				Message:  "modifier declares both oneOf and anyOf",
			})
		case !hasOneOf && !hasAnyOf:
			errs = append(errs, &ValidationError{
				Modifier: name,
				Message:  "modifier declares neither oneOf nor anyOf",
			})
		}
		optionNames := make([]string, 0, len(mod.Values))
		for option := range mod.Values {
			optionNames = append(optionNames, option)
		}
		sort.Strings(optionNames)
		for _, option := range optionNames {
			if option != Wildcard && !mod.HasOption(option) {
				errs = append(errs, &ValidationError{
					Modifier: name,
					Message:  fmt.Sprintf("values entry %q names no declared option", option),
				})
			}
		}
	}

	return errs
}
