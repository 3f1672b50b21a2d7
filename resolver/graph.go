/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver provides token reference resolution.
package resolver

import (
	"sort"

	"bennypowers.dev/tmurot/token"
)

// DependencyGraph is a directed graph over token dot paths, built from
// each token's normalized local reference list.
type DependencyGraph struct {
	dependencies map[string][]string
	dependents   map[string][]string
	nodes        []string
	nodeSet      map[string]bool
}

// CycleReport describes the cycle structure of a dependency graph.
type CycleReport struct {
	// HasCycles is true when any SCC of size > 1 or self-loop exists.
	HasCycles bool

	// Cycles holds the member paths of each cyclic SCC.
	Cycles [][]string

	// TopologicalOrder lists every token after all tokens it references.
	// Nil when the graph is cyclic: no safe order exists.
	TopologicalOrder []string
}

// BuildDependencyGraph builds a dependency graph from a token tree.
// Cross-file references have no node within a single tree and are
// excluded from the adjacency.
func BuildDependencyGraph(root *token.Group) *DependencyGraph {
	g := &DependencyGraph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		nodeSet:      make(map[string]bool),
	}

	root.VisitTokens(func(t *token.Token) bool {
		path := t.DotPath()
		g.addNode(path)
		for _, ref := range t.References {
			if ref.Kind != token.RefAlias {
				continue
			}
			g.dependencies[path] = append(g.dependencies[path], ref.Path)
			g.dependents[ref.Path] = append(g.dependents[ref.Path], path)
			g.addNode(ref.Path)
		}
		return true
	})

	sort.Strings(g.nodes)
	return g
}

func (g *DependencyGraph) addNode(path string) {
	if !g.nodeSet[path] {
		g.nodeSet[path] = true
		g.nodes = append(g.nodes, path)
	}
}

// Dependencies returns the paths the given token references.
func (g *DependencyGraph) Dependencies(path string) []string {
	return g.dependencies[path]
}

// Dependents returns the paths that reference the given token.
func (g *DependencyGraph) Dependents(path string) []string {
	return g.dependents[path]
}

// DetectCycles runs Tarjan's strongly-connected-components algorithm and
// reports every cycle. Only when the graph is acyclic does the report
// carry a topological order.
func (g *DependencyGraph) DetectCycles() *CycleReport {
	report := &CycleReport{}

	for _, scc := range g.tarjan() {
		if len(scc) > 1 || g.selfLoop(scc[0]) {
			sorted := append([]string{}, scc...)
			sort.Strings(sorted)
			report.Cycles = append(report.Cycles, sorted)
		}
	}

	report.HasCycles = len(report.Cycles) > 0
	if !report.HasCycles {
		report.TopologicalOrder = g.topologicalOrder()
	}
	return report
}

// selfLoop reports whether a node references itself.
func (g *DependencyGraph) selfLoop(node string) bool {
	for _, dep := range g.dependencies[node] {
		if dep == node {
			return true
		}
	}
	return false
}

// tarjan computes strongly connected components iterating nodes in
// sorted order for deterministic output.
func (g *DependencyGraph) tarjan() [][]string {
	index := 0
	indices := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var sccs [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.dependencies[v] {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, v := range g.nodes {
		if _, seen := indices[v]; !seen {
			strongconnect(v)
		}
	}
	return sccs
}

// topologicalOrder returns nodes in dependency order (dependencies
// first) via DFS postorder. Only valid on acyclic graphs.
func (g *DependencyGraph) topologicalOrder() []string {
	visited := make(map[string]bool)
	order := make([]string, 0, len(g.nodes))

	var visit func(v string)
	visit = func(v string) {
		visited[v] = true
		for _, dep := range g.dependencies[v] {
			if !visited[dep] {
				visit(dep)
			}
		}
		order = append(order, v)
	}

	for _, v := range g.nodes {
		if !visited[v] {
			visit(v)
		}
	}
	return order
}

// DetectCycles builds the dependency graph for a token tree and reports
// its cycle structure.
func DetectCycles(root *token.Group) *CycleReport {
	return BuildDependencyGraph(root).DetectCycles()
}
