/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token_test

import (
	"slices"
	"testing"

	"bennypowers.dev/tmurot/token"
)

func buildTree(t *testing.T) *token.Group {
	t.Helper()

	root := token.NewGroup("", nil)
	color := token.NewGroup("color", []string{"color"})
	brand := token.NewGroup("brand", []string{"color", "brand"})
	root.AddGroup(color)
	color.AddGroup(brand)

	brand.AddToken(&token.Token{
		Name:  "primary",
		Path:  []string{"color", "brand", "primary"},
		Type:  token.TypeColor,
		Value: "#ff0000",
	})
	brand.AddToken(&token.Token{
		Name:  "secondary",
		Path:  []string{"color", "brand", "secondary"},
		Type:  token.TypeColor,
		Value: "{color.brand.primary}",
		References: []token.Reference{
			{Raw: "{color.brand.primary}", Path: "color.brand.primary", Kind: token.RefAlias},
		},
	})
	root.AddToken(&token.Token{
		Name:  "duration",
		Path:  []string{"duration"},
		Type:  token.TypeDuration,
		Value: "200ms",
	})
	return root
}

func TestFindToken(t *testing.T) {
	root := buildTree(t)

	tok, ok := root.FindToken("color.brand.primary")
	if !ok {
		t.Fatal("expected to find color.brand.primary")
	}
	if tok.Value != "#ff0000" {
		t.Errorf("expected #ff0000, got %v", tok.Value)
	}

	if _, ok := root.FindToken("color.brand.missing"); ok {
		t.Error("expected missing token lookup to fail")
	}
	if _, ok := root.FindToken("color.brand.primary.deeper"); ok {
		t.Error("expected descent through a leaf to fail")
	}
	if _, ok := root.FindToken("nope.brand.primary"); ok {
		t.Error("expected missing group segment to fail")
	}
}

func TestFindGroup(t *testing.T) {
	root := buildTree(t)

	g, ok := root.FindGroup("color.brand")
	if !ok {
		t.Fatal("expected to find color.brand")
	}
	if g.Name != "brand" {
		t.Errorf("expected group brand, got %q", g.Name)
	}

	if g, ok := root.FindGroup(""); !ok || g != root {
		t.Error("expected empty path to return the root")
	}
	if _, ok := root.FindGroup("color.missing"); ok {
		t.Error("expected missing group lookup to fail")
	}
}

func TestVisitTokensOrder(t *testing.T) {
	root := buildTree(t)

	var paths []string
	root.VisitTokens(func(tok *token.Token) bool {
		paths = append(paths, tok.DotPath())
		return true
	})

	expected := []string{
		"color.brand.primary",
		"color.brand.secondary",
		"duration",
	}
	if !slices.Equal(paths, expected) {
		t.Errorf("expected visit order %v, got %v", expected, paths)
	}
}

func TestVisitTokensEarlyStop(t *testing.T) {
	root := buildTree(t)

	count := 0
	completed := root.VisitTokens(func(tok *token.Token) bool {
		count++
		return false
	})
	if completed {
		t.Error("expected early stop to report incomplete walk")
	}
	if count != 1 {
		t.Errorf("expected 1 visit, got %d", count)
	}
}

func TestFlatten(t *testing.T) {
	root := buildTree(t)

	tok, _ := root.FindToken("color.brand.secondary")
	tok.Resolved = true
	tok.ResolvedValue = "#ff0000"

	doc := root.Flatten()

	color, ok := doc["color"].(token.Document)
	if !ok {
		t.Fatalf("expected color group in document, got %T", doc["color"])
	}
	brand, ok := color["brand"].(token.Document)
	if !ok {
		t.Fatalf("expected brand group, got %T", color["brand"])
	}

	secondary := brand["secondary"].(map[string]any)
	if secondary["$value"] != "#ff0000" {
		t.Errorf("expected resolved value in flattened output, got %v", secondary["$value"])
	}

	primary := brand["primary"].(map[string]any)
	if primary["$value"] != "#ff0000" {
		t.Errorf("expected raw value for unresolved token, got %v", primary["$value"])
	}
	if primary["$type"] != "color" {
		t.Errorf("expected $type color, got %v", primary["$type"])
	}
}

func TestCrossFileReferences(t *testing.T) {
	tok := &token.Token{
		Name: "overlay",
		Path: []string{"color", "overlay"},
		References: []token.Reference{
			{Raw: "{color.base}", Path: "color.base", Kind: token.RefAlias},
			{Raw: "../base.json#color.base", Path: "color.base", Kind: token.RefCrossFile, File: "../base.json"},
		},
	}

	cross := tok.CrossFileReferences()
	if len(cross) != 1 {
		t.Fatalf("expected 1 cross-file reference, got %d", len(cross))
	}
	if cross[0].File != "../base.json" {
		t.Errorf("unexpected file %q", cross[0].File)
	}
	if !tok.HasCrossFileReferences() {
		t.Error("expected HasCrossFileReferences to be true")
	}
}

func TestNewFileIndexesEdges(t *testing.T) {
	root := token.NewGroup("", nil)
	root.AddToken(&token.Token{
		Name:  "accent",
		Path:  []string{"accent"},
		Value: "../base.json#color.base",
		References: []token.Reference{
			{Raw: "../base.json#color.base", Path: "color.base", Kind: token.RefCrossFile, File: "../base.json"},
		},
	})

	f := token.NewFile(root, "theme.json")
	if len(f.CrossRefs) != 1 {
		t.Fatalf("expected 1 cross-file edge, got %d", len(f.CrossRefs))
	}
	edge := f.CrossRefs[0]
	if edge.SourcePath != "accent" || edge.TargetFile != "../base.json" || edge.TargetPath != "color.base" {
		t.Errorf("unexpected edge %+v", edge)
	}

	tok, _ := f.FindToken("accent")
	if tok.FilePath != "theme.json" {
		t.Errorf("expected token FilePath set, got %q", tok.FilePath)
	}

	deps := f.DependsOn()
	if !slices.Equal(deps, []string{"../base.json"}) {
		t.Errorf("unexpected deps %v", deps)
	}
}

func TestRewriteTargets(t *testing.T) {
	root := token.NewGroup("", nil)
	root.AddToken(&token.Token{
		Name:  "accent",
		Path:  []string{"accent"},
		Value: "../base.json#color.base",
		References: []token.Reference{
			{Raw: "../base.json#color.base", Path: "color.base", Kind: token.RefCrossFile, File: "../base.json"},
		},
	})

	f := token.NewFile(root, "themes/theme.json")
	f.RewriteTargets(func(target string) string {
		return "base.json"
	})

	if f.CrossRefs[0].TargetFile != "base.json" {
		t.Errorf("expected rewritten edge target, got %q", f.CrossRefs[0].TargetFile)
	}
	tok, _ := f.FindToken("accent")
	if tok.References[0].File != "base.json" {
		t.Errorf("expected rewritten token reference, got %q", tok.References[0].File)
	}
}
