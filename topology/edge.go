// Package topology generates small-world graphs and measures their structure.
//
// Graphs are described purely by node count and an edge list of index pairs.
// Nodes are the integers 0..n-1; every Edge satisfies Source < Target.
package topology

import "sort"

// Edge is an unordered pair of node indices with Source < Target.
type Edge struct {
	Source int `csv:"source"`
	Target int `csv:"target"`
}

// NewEdge orders a and b so that Source < Target.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{Source: a, Target: b}
}

// Valid reports whether the edge is a non-loop pair of indices below n.
func (e Edge) Valid(n int) bool {
	return e.Source >= 0 && e.Source < e.Target && e.Target < n
}

// SortEdges orders edges by (Source, Target) in place.
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
}

// Degrees returns the degree of every node. Invalid edges are ignored.
func Degrees(n int, edges []Edge) []int {
	deg := make([]int, max(n, 0))
	for _, e := range edges {
		if !e.Valid(n) {
			continue
		}
		deg[e.Source]++
		deg[e.Target]++
	}
	return deg
}
