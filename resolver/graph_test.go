/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver_test

import (
	"slices"
	"testing"

	"bennypowers.dev/tmurot/parser"
	"bennypowers.dev/tmurot/resolver"
)

func parseTree(t *testing.T, src string) *resolver.DependencyGraph {
	t.Helper()
	root, err := parser.Parse([]byte(src), parser.Options{})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return resolver.BuildDependencyGraph(root)
}

func TestDetectCycles_Acyclic(t *testing.T) {
	g := parseTree(t, `{
		"color": {
			"$type": "color",
			"base": { "$value": "#ff0000" },
			"accent": { "$value": "{color.base}" },
			"highlight": { "$value": "{color.accent}" }
		}
	}`)

	report := g.DetectCycles()
	if report.HasCycles {
		t.Fatalf("expected no cycles, got %v", report.Cycles)
	}
	if report.TopologicalOrder == nil {
		t.Fatal("expected a topological order for acyclic graph")
	}

	pos := make(map[string]int, len(report.TopologicalOrder))
	for i, path := range report.TopologicalOrder {
		pos[path] = i
	}
	if pos["color.base"] > pos["color.accent"] {
		t.Error("expected color.base before color.accent")
	}
	if pos["color.accent"] > pos["color.highlight"] {
		t.Error("expected color.accent before color.highlight")
	}
}

func TestDetectCycles_SelfLoop(t *testing.T) {
	g := parseTree(t, `{
		"color": {
			"$type": "color",
			"selfish": { "$value": "{color.selfish}" }
		}
	}`)

	report := g.DetectCycles()
	if !report.HasCycles {
		t.Fatal("expected a self-loop cycle")
	}
	if len(report.Cycles) != 1 || !slices.Equal(report.Cycles[0], []string{"color.selfish"}) {
		t.Errorf("unexpected cycles %v", report.Cycles)
	}
	if report.TopologicalOrder != nil {
		t.Error("expected nil topological order for cyclic graph")
	}
}

func TestDetectCycles_MutualCycle(t *testing.T) {
	g := parseTree(t, `{
		"color": {
			"$type": "color",
			"a": { "$value": "{color.b}" },
			"b": { "$value": "{color.a}" },
			"independent": { "$value": "#00ff00" }
		}
	}`)

	report := g.DetectCycles()
	if !report.HasCycles {
		t.Fatal("expected a cycle")
	}
	if len(report.Cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %v", report.Cycles)
	}
	if !slices.Equal(report.Cycles[0], []string{"color.a", "color.b"}) {
		t.Errorf("unexpected cycle members %v", report.Cycles[0])
	}
}

func TestDependencyGraph_Adjacency(t *testing.T) {
	g := parseTree(t, `{
		"color": {
			"$type": "color",
			"base": { "$value": "#ff0000" },
			"accent": { "$value": "{color.base}" }
		}
	}`)

	deps := g.Dependencies("color.accent")
	if !slices.Equal(deps, []string{"color.base"}) {
		t.Errorf("unexpected dependencies %v", deps)
	}
	dependents := g.Dependents("color.base")
	if !slices.Equal(dependents, []string{"color.accent"}) {
		t.Errorf("unexpected dependents %v", dependents)
	}
}

func TestDependencyGraph_CrossFileExcluded(t *testing.T) {
	g := parseTree(t, `{
		"color": {
			"$type": "color",
			"remote": { "$value": "base.json#color.base" }
		}
	}`)

	if deps := g.Dependencies("color.remote"); len(deps) != 0 {
		t.Errorf("expected cross-file edges excluded, got %v", deps)
	}
}
