/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"slices"
	"sort"
)

// collectFilter restricts which sets and modifiers contribute files,
// per a generate spec's include/exclude rules. The zero value allows
// everything.
type collectFilter struct {
	includeSets      []string
	excludeSets      []string
	includeModifiers []string
	excludeModifiers []string
}

func filterFromSpec(spec GenerateSpec) collectFilter {
	return collectFilter{
		includeSets:      spec.IncludeSets,
		excludeSets:      spec.ExcludeSets,
		includeModifiers: spec.IncludeModifiers,
		excludeModifiers: spec.ExcludeModifiers,
	}
}

func (f collectFilter) allowSet(name string) bool {
	if slices.Contains(f.excludeSets, name) {
		return false
	}
	return len(f.includeSets) == 0 || slices.Contains(f.includeSets, name)
}

func (f collectFilter) allowModifier(name string) bool {
	if slices.Contains(f.excludeModifiers, name) {
		return false
	}
	return len(f.includeModifiers) == 0 || slices.Contains(f.includeModifiers, name)
}

// CollectFiles computes the ordered file list for a modifier selection:
// every set's files in declaration order, then each selected option's
// files plus any wildcard-option files, iterating modifiers in sorted
// name order. Deduplication happens once, at the end.
func (m *Manifest) CollectFiles(input map[string]any) []string {
	return m.collectFiles(input, collectFilter{})
}

func (m *Manifest) collectFiles(input map[string]any, filter collectFilter) []string {
	var files []string

	for _, set := range m.Sets {
		if filter.allowSet(set.Name) {
			files = append(files, set.Values...)
		}
	}

	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == OutputKey {
			continue
		}
		mod, ok := m.Modifiers[key]
		if !ok || !filter.allowModifier(key) {
			continue
		}

		selections := validSelections(mod, input[key])
		if len(selections) == 0 {
			continue
		}
		for _, sel := range selections {
			files = append(files, mod.Values[sel]...)
		}
		// Wildcard files apply regardless of which option is chosen.
		files = append(files, mod.Values[Wildcard]...)
	}

	return dedupe(files)
}

// validSelections returns the option names a selection picks, dropping
// anything invalid. Validation proper happens in ValidateInput.
func validSelections(mod *Modifier, value any) []string {
	if mod.IsOneOf() {
		if s, ok := value.(string); ok && mod.HasOption(s) {
			return []string{s}
		}
		return nil
	}
	elements, ok := anyOfElements(value)
	if !ok {
		return nil
	}
	var selections []string
	for _, elem := range elements {
		if s, isString := elem.(string); isString && mod.HasOption(s) {
			selections = append(selections, s)
		}
	}
	return selections
}

// dedupe removes duplicates preserving first-occurrence order.
func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
