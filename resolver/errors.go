/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"strings"

	"bennypowers.dev/tmurot/token"
)

// Kind classifies a resolution error.
type Kind string

// Resolution error kinds. Resolution errors are collected, never thrown;
// the caller decides whether any of them is fatal.
const (
	KindMissing   Kind = "missing"
	KindCircular  Kind = "circular"
	KindInvalid   Kind = "invalid"
	KindCrossFile Kind = "cross-file"
)

// Error is a structured resolution error for one token.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Path is the offending token's dot path.
	Path string

	// Message is a human-readable description.
	Message string

	// Reference is the literal reference involved, when applicable.
	Reference string

	// TargetFile is the referenced file, for cross-file failures.
	TargetFile string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	sb.WriteString(": ")
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Reference != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Reference)
		sb.WriteString(")")
	}
	if e.TargetFile != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.TargetFile)
	}
	return sb.String()
}

// Result is the outcome of a resolution pass: the project with as many
// tokens resolved as possible, plus every error encountered.
type Result struct {
	// Project is the resolved (possibly partially) project AST.
	Project *token.Project

	// Errors holds every resolution error, in discovery order.
	Errors []*Error
}

// HasErrors returns true when any resolution error was collected.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// CombinedMessage aggregates every error into one multi-line message.
func (r *Result) CombinedMessage() string {
	lines := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
