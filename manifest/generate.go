/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"context"
	"sort"
	"strings"
)

// GenerateAll resolves every permutation the manifest describes. With
// explicit generate specs, each spec expands into one or more inputs;
// otherwise the full combinatorial space is generated: the cross
// product of each oneOf's options and the power set of each anyOf's
// options. The first fatal error aborts without partial output.
func (r *Resolver) GenerateAll(ctx context.Context) ([]*Permutation, error) {
	if len(r.Manifest.Generate) > 0 {
		return r.generateSpecs(ctx)
	}
	return r.generateSpace(ctx)
}

func (r *Resolver) generateSpecs(ctx context.Context) ([]*Permutation, error) {
	var perms []*Permutation
	for _, spec := range r.Manifest.Generate {
		inputs := r.expandSpec(spec)
		filter := filterFromSpec(spec)
		for _, input := range inputs {
			perm, err := r.resolve(ctx, input, filter)
			if err != nil {
				return nil, err
			}
			if perm.Output == "" && spec.Output != "" {
				perm.Output = strings.ReplaceAll(spec.Output, "{id}", perm.ID)
			}
			perms = append(perms, perm)
		}
	}
	return perms, nil
}

func (r *Resolver) generateSpace(ctx context.Context) ([]*Permutation, error) {
	inputs := []map[string]any{{}}

	for _, name := range r.Manifest.ModifierNames() {
		mod := r.Manifest.Modifiers[name]
		var selections []any
		if mod.IsOneOf() {
			for _, option := range mod.OneOf {
				selections = append(selections, option)
			}
		} else {
			for _, subset := range powerSet(mod.AnyOf) {
				selections = append(selections, subset)
			}
		}
		inputs = crossWith(inputs, name, selections)
	}

	perms := make([]*Permutation, 0, len(inputs))
	for _, input := range inputs {
		perm, err := r.ResolvePermutation(ctx, input)
		if err != nil {
			return nil, err
		}
		perms = append(perms, perm)
	}
	return perms, nil
}

// expandSpec turns one generate spec into concrete inputs. Array-valued
// oneOf entries expand via cross product; "*" expands to every option
// for oneOf and to the power set for anyOf. An anyOf array is taken as
// the literal subset.
func (r *Resolver) expandSpec(spec GenerateSpec) []map[string]any {
	inputs := []map[string]any{{}}

	names := make([]string, 0, len(spec.Modifiers))
	for name := range spec.Modifiers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mod, ok := r.Manifest.Modifiers[name]
		value := spec.Modifiers[name]

		var selections []any
		switch {
		case ok && value == Wildcard && mod.IsOneOf():
			for _, option := range mod.OneOf {
				selections = append(selections, option)
			}
		case ok && value == Wildcard:
			for _, subset := range powerSet(mod.AnyOf) {
				selections = append(selections, subset)
			}
		case ok && mod.IsOneOf():
			if s, isString := value.(string); isString {
				selections = append(selections, s)
			} else if elements, isArray := anyOfElements(value); isArray {
				for _, elem := range elements {
					selections = append(selections, elem)
				}
			}
		default:
			// anyOf (or unknown modifier, surfaced by validation later):
			// a string is a single-element subset, an array the literal
			// subset.
			if s, isString := value.(string); isString {
				selections = append(selections, []string{s})
			} else {
				selections = append(selections, value)
			}
		}

		inputs = crossWith(inputs, name, selections)
	}

	return inputs
}

// crossWith extends every input with each selection for one modifier.
func crossWith(inputs []map[string]any, name string, selections []any) []map[string]any {
	if len(selections) == 0 {
		return inputs
	}
	out := make([]map[string]any, 0, len(inputs)*len(selections))
	for _, input := range inputs {
		for _, sel := range selections {
			next := make(map[string]any, len(input)+1)
			for k, v := range input {
				next[k] = v
			}
			next[name] = sel
			out = append(out, next)
		}
	}
	return out
}

// powerSet returns every subset of options, including the empty subset,
// in deterministic order: options are sorted, subsets enumerate by
// binary counting.
func powerSet(options []string) [][]string {
	sorted := append([]string{}, options...)
	sort.Strings(sorted)

	count := 1 << len(sorted)
	subsets := make([][]string, 0, count)
	for mask := 0; mask < count; mask++ {
		subset := []string{}
		for i, option := range sorted {
			if mask&(1<<i) != 0 {
				subset = append(subset, option)
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}
