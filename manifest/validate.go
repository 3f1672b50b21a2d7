/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError is one input or manifest shape violation.
type ValidationError struct {
	// Modifier is the input key that failed, when applicable.
	Modifier string

	// Message describes what's wrong.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Modifier == "" {
		return e.Message
	}
	return e.Modifier + ": " + e.Message
}

func joinErrors(errs []*ValidationError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ValidateInput checks a modifier selection against the manifest. Every
// violation across every key is accumulated before returning; nothing
// fails fast. The reserved "output" key is skipped.
func (m *Manifest) ValidateInput(input map[string]any) []*ValidationError {
	var errs []*ValidationError

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
		if !ok || mod == nil {
			errs = append(errs, &ValidationError{
				Modifier: key,
				Message: fmt.Sprintf("unknown modifier (known modifiers: %s)",
					strings.Join(m.ModifierNames(), ", ")),
			})
			continue
		}

		value := input[key]
		if mod.IsOneOf() {
			errs = append(errs, validateOneOf(mod, value)...)
		} else {
			errs = append(errs, validateAnyOf(mod, value)...)
		}
	}

	return errs
}

// validateOneOf requires a single string drawn from the option list.
func validateOneOf(mod *Modifier, value any) []*ValidationError {
	s, ok := value.(string)
	if !ok {
		return []*ValidationError{{
			Modifier: mod.Name,
			Message: fmt.Sprintf("oneOf modifier requires a single string, got %T (options: %s)",
				value, strings.Join(mod.OneOf, ", ")),
		}}
	}
	if !mod.HasOption(s) {
		return []*ValidationError{{
			Modifier: mod.Name,
			Message: fmt.Sprintf("invalid value %q (options: %s)",
				s, strings.Join(mod.OneOf, ", ")),
		}}
	}
	return nil
}

// validateAnyOf requires an array of strings drawn from the option
// list; each bad element is its own error.
func validateAnyOf(mod *Modifier, value any) []*ValidationError {
	elements, ok := anyOfElements(value)
	if !ok {
		return []*ValidationError{{
			Modifier: mod.Name,
			Message: fmt.Sprintf("anyOf modifier requires an array, got %T (options: %s)",
				value, strings.Join(mod.AnyOf, ", ")),
		}}
	}

	var errs []*ValidationError
	for _, elem := range elements {
		s, isString := elem.(string)
		if !isString {
			errs = append(errs, &ValidationError{
				Modifier: mod.Name,
				Message:  fmt.Sprintf("value %v must be a string", elem),
			})
			continue
		}
		if !mod.HasOption(s) {
			errs = append(errs, &ValidationError{
				Modifier: mod.Name,
				Message: fmt.Sprintf("invalid value %q (options: %s)",
					s, strings.Join(mod.AnyOf, ", ")),
			})
		}
	}
	return errs
}

// anyOfElements accepts both []any (decoded documents) and []string
// (programmatic input).
func anyOfElements(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
