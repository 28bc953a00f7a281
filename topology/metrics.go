package topology

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/stat"
)

// Metrics describes the small-world character of a graph.
type Metrics struct {
	Nodes      int     `csv:"nodes"`
	Edges      int     `csv:"edges"`
	DegreeMean float64 `csv:"degree_mean"`
	DegreeStd  float64 `csv:"degree_std"`
	Clustering float64 `csv:"clustering"`  // mean local clustering coefficient
	PathLength float64 `csv:"path_length"` // mean shortest path over connected pairs
	Connected  bool    `csv:"connected"`
}

// ToGraph converts an edge list into a gonum undirected graph with nodes 0..n-1.
// Invalid edges are dropped.
func ToGraph(n int, edges []Edge) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, e := range edges {
		if !e.Valid(n) {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(e.Source), T: simple.Node(e.Target)})
	}
	return g
}

// Measure computes Metrics for the graph. Path length is O(n·e·log n).
func Measure(n int, edges []Edge) Metrics {
	m := Metrics{Nodes: n, Edges: len(edges)}
	if n == 0 {
		return m
	}

	deg := Degrees(n, edges)
	degF := make([]float64, n)
	for i, d := range deg {
		degF[i] = float64(d)
	}
	m.DegreeMean, m.DegreeStd = stat.MeanStdDev(degF, nil)
	if n == 1 {
		m.DegreeStd = 0
	}

	g := ToGraph(n, edges)
	m.Clustering = clustering(g, n)
	m.PathLength, m.Connected = pathLength(g, n)
	return m
}

// clustering returns the mean local clustering coefficient. Nodes with degree
// below 2 contribute zero.
func clustering(g *simple.UndirectedGraph, n int) float64 {
	var sum float64
	for i := 0; i < n; i++ {
		nbrs := neighbors(g, int64(i))
		k := len(nbrs)
		if k < 2 {
			continue
		}
		links := 0
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if g.HasEdgeBetween(nbrs[a], nbrs[b]) {
					links++
				}
			}
		}
		sum += 2 * float64(links) / float64(k*(k-1))
	}
	return sum / float64(n)
}

func neighbors(g *simple.UndirectedGraph, id int64) []int64 {
	it := g.From(id)
	ids := make([]int64, 0, it.Len())
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	return ids
}

// pathLength averages shortest hop counts over all connected ordered pairs.
func pathLength(g *simple.UndirectedGraph, n int) (float64, bool) {
	if n < 2 {
		return 0, true
	}
	all := path.DijkstraAllPaths(g)
	var sum float64
	var pairs int
	connected := true
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			w := all.Weight(int64(u), int64(v))
			if math.IsInf(w, 1) {
				connected = false
				continue
			}
			sum += w
			pairs++
		}
	}
	if pairs == 0 {
		return 0, connected
	}
	return sum / float64(pairs), connected
}

// LogValue implements slog.LogValuer.
func (m Metrics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("nodes", m.Nodes),
		slog.Int("edges", m.Edges),
		slog.Float64("degree_mean", m.DegreeMean),
		slog.Float64("clustering", m.Clustering),
		slog.Float64("path_length", m.PathLength),
		slog.Bool("connected", m.Connected),
	)
}
