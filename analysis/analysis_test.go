/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package analysis_test

import (
	"slices"
	"testing"

	"bennypowers.dev/tmurot/analysis"
	"bennypowers.dev/tmurot/parser"
	"bennypowers.dev/tmurot/token"
)

func parseTree(t *testing.T, src string) *token.Group {
	t.Helper()
	root, err := parser.Parse([]byte(src), parser.Options{})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return root
}

func TestStats(t *testing.T) {
	root := parseTree(t, `{
		"color": {
			"$type": "color",
			"base": { "$value": "#ff0000" },
			"accent": { "$value": "{color.base}" },
			"brand": {
				"deep": { "$value": "#00ff00" }
			}
		},
		"duration": {
			"$type": "duration",
			"fast": { "$value": "100ms" }
		}
	}`)

	stats := analysis.Stats(root)

	if stats.Tokens != 4 {
		t.Errorf("expected 4 tokens, got %d", stats.Tokens)
	}
	if stats.Groups != 3 {
		t.Errorf("expected 3 groups, got %d", stats.Groups)
	}
	if stats.ByType[token.TypeColor] != 3 {
		t.Errorf("expected 3 color tokens, got %d", stats.ByType[token.TypeColor])
	}
	if stats.ByType[token.TypeDuration] != 1 {
		t.Errorf("expected 1 duration token, got %d", stats.ByType[token.TypeDuration])
	}
	if stats.MaxDepth != 3 {
		t.Errorf("expected max depth 3, got %d", stats.MaxDepth)
	}
	if stats.References != 1 {
		t.Errorf("expected 1 reference, got %d", stats.References)
	}
	if stats.Unresolved != 1 {
		t.Errorf("expected 1 unresolved token, got %d", stats.Unresolved)
	}
}

func TestStats_Empty(t *testing.T) {
	stats := analysis.Stats(token.NewGroup("", nil))
	if stats.Tokens != 0 || stats.Groups != 0 || stats.MaxDepth != 0 {
		t.Errorf("expected zero statistics, got %+v", stats)
	}
}

func TestCompare(t *testing.T) {
	before := parseTree(t, `{
		"color": {
			"$type": "color",
			"primary": { "$value": "#ff0000" },
			"removedSoon": { "$value": "#333333" },
			"stable": { "$value": "#ffffff" }
		}
	}`)
	after := parseTree(t, `{
		"color": {
			"$type": "color",
			"primary": { "$value": "#fe0000" },
			"brandNew": { "$value": "#00ff00" },
			"stable": { "$value": "#ffffff" }
		}
	}`)

	d := analysis.Compare(before, after)

	if !slices.Equal(d.Added, []string{"color.brandNew"}) {
		t.Errorf("unexpected added %v", d.Added)
	}
	if !slices.Equal(d.Removed, []string{"color.removedSoon"}) {
		t.Errorf("unexpected removed %v", d.Removed)
	}
	if len(d.Changed) != 1 {
		t.Fatalf("expected 1 change, got %v", d.Changed)
	}

	change := d.Changed[0]
	if change.Path != "color.primary" {
		t.Errorf("unexpected changed path %q", change.Path)
	}
	if change.Before != "#ff0000" || change.After != "#fe0000" {
		t.Errorf("unexpected values %v -> %v", change.Before, change.After)
	}
	// Near-identical reds are perceptually close but not identical.
	if change.ColorDistance <= 0 || change.ColorDistance > 1 {
		t.Errorf("unexpected color distance %f", change.ColorDistance)
	}
}

func TestCompare_Identical(t *testing.T) {
	src := `{
		"color": {
			"$type": "color",
			"primary": { "$value": "#ff0000" }
		}
	}`
	d := analysis.Compare(parseTree(t, src), parseTree(t, src))
	if !d.Empty() {
		t.Errorf("expected empty diff, got %+v", d)
	}
}

func TestCompare_NonColorChange(t *testing.T) {
	before := parseTree(t, `{
		"duration": { "$type": "duration", "fast": { "$value": "100ms" } }
	}`)
	after := parseTree(t, `{
		"duration": { "$type": "duration", "fast": { "$value": "150ms" } }
	}`)

	d := analysis.Compare(before, after)
	if len(d.Changed) != 1 {
		t.Fatalf("expected 1 change, got %v", d.Changed)
	}
	if d.Changed[0].ColorDistance != -1 {
		t.Errorf("expected no color distance for non-color change, got %f", d.Changed[0].ColorDistance)
	}
}

func TestCompare_StructuredColor(t *testing.T) {
	before := parseTree(t, `{
		"color": {
			"$type": "color",
			"brand": { "$value": { "colorSpace": "srgb", "components": [1, 0, 0] } }
		}
	}`)
	after := parseTree(t, `{
		"color": {
			"$type": "color",
			"brand": { "$value": { "colorSpace": "srgb", "components": [0, 0, 1] } }
		}
	}`)

	d := analysis.Compare(before, after)
	if len(d.Changed) != 1 {
		t.Fatalf("expected 1 change, got %v", d.Changed)
	}
	if d.Changed[0].ColorDistance <= 0 {
		t.Errorf("expected a positive distance for red vs blue, got %f", d.Changed[0].ColorDistance)
	}
}
