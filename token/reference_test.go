/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token_test

import (
	"testing"

	"bennypowers.dev/tmurot/token"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want token.Reference
		ok   bool
	}{
		{
			name: "curly brace alias",
			raw:  "{color.brand.primary}",
			want: token.Reference{Raw: "{color.brand.primary}", Path: "color.brand.primary", Kind: token.RefAlias},
			ok:   true,
		},
		{
			name: "json pointer",
			raw:  "#/color/brand/primary/$value",
			want: token.Reference{Raw: "#/color/brand/primary/$value", Path: "color.brand.primary", Kind: token.RefAlias},
			ok:   true,
		},
		{
			name: "json pointer without value marker",
			raw:  "#/color/brand/primary",
			want: token.Reference{Raw: "#/color/brand/primary", Path: "color.brand.primary", Kind: token.RefAlias},
			ok:   true,
		},
		{
			name: "json pointer with escapes",
			raw:  "#/weird~1name/odd~0key/$value",
			want: token.Reference{Raw: "#/weird~1name/odd~0key/$value", Path: "weird/name.odd~key", Kind: token.RefAlias},
			ok:   true,
		},
		{
			name: "relative cross-file",
			raw:  "../colors.json#brand.primary",
			want: token.Reference{Raw: "../colors.json#brand.primary", Path: "brand.primary", Kind: token.RefCrossFile, File: "../colors.json"},
			ok:   true,
		},
		{
			name: "cross-file with pointer fragment",
			raw:  "colors.yaml#/brand/primary/$value",
			want: token.Reference{Raw: "colors.yaml#/brand/primary/$value", Path: "brand.primary", Kind: token.RefCrossFile, File: "colors.yaml"},
			ok:   true,
		},
		{
			name: "file URI",
			raw:  "file:///tokens/colors.json#brand.primary",
			want: token.Reference{Raw: "file:///tokens/colors.json#brand.primary", Path: "brand.primary", Kind: token.RefCrossFile, File: "file:///tokens/colors.json"},
			ok:   true,
		},
		{
			name: "https URL",
			raw:  "https://example.com/tokens.json#brand.primary",
			want: token.Reference{Raw: "https://example.com/tokens.json#brand.primary", Path: "brand.primary", Kind: token.RefCrossFile, File: "https://example.com/tokens.json"},
			ok:   true,
		},
		{
			name: "plain string",
			raw:  "#ff0000",
			ok:   false,
		},
		{
			name: "embedded braces only",
			raw:  "1px solid {color.border}",
			ok:   false,
		},
		{
			name: "empty string",
			raw:  "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := token.ParseReference(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseReference(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("ParseReference(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExtractReferences(t *testing.T) {
	t.Run("whole value yields one reference", func(t *testing.T) {
		refs := token.ExtractReferences("{spacing.md}")
		if len(refs) != 1 {
			t.Fatalf("expected 1 reference, got %d", len(refs))
		}
		if refs[0].Path != "spacing.md" {
			t.Errorf("expected path spacing.md, got %q", refs[0].Path)
		}
	})

	t.Run("embedded references each yield one", func(t *testing.T) {
		refs := token.ExtractReferences("{border.width} solid {color.border}")
		if len(refs) != 2 {
			t.Fatalf("expected 2 references, got %d", len(refs))
		}
		if refs[0].Path != "border.width" || refs[1].Path != "color.border" {
			t.Errorf("unexpected paths: %q, %q", refs[0].Path, refs[1].Path)
		}
		if refs[0].Raw != "{border.width}" {
			t.Errorf("expected raw literal preserved, got %q", refs[0].Raw)
		}
	})

	t.Run("no references", func(t *testing.T) {
		if refs := token.ExtractReferences("#ff0000"); len(refs) != 0 {
			t.Errorf("expected no references, got %v", refs)
		}
	})
}

func TestContainsReference(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"{color.brand}", true},
		{"1px solid {color.border}", true},
		{"#/color/brand/$value", true},
		{"../colors.json#brand", true},
		{"https://example.com/t.json#a.b", true},
		{"#ff0000", false},
		{"plain", false},
	}

	for _, tt := range tests {
		if got := token.ContainsReference(tt.value); got != tt.want {
			t.Errorf("ContainsReference(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
