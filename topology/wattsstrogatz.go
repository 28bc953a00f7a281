package topology

import (
	"github.com/pthm-cable/smallworld/rng"
)

// DefaultSeed is the fixed seed used when no other is configured.
const DefaultSeed uint64 = 0xBADC0FFEE0DDF00D

// attemptsPerNode scales the rewire retry cap: n * attemptsPerNode.
const attemptsPerNode = 8

// RewireStats summarizes the rewiring pass of a single generation.
type RewireStats struct {
	EffectiveK int // ring degree actually used
	Attempted  int // lattice edges selected for rewiring
	Rewired    int // selected edges moved to a new endpoint
	Restored   int // selected edges put back after the attempt cap ran out
}

// MaxK returns the largest ring degree n nodes can support, never below 1.
func MaxK(n int) int {
	return max(1, (n-1)/2)
}

// EffectiveK clamps k to [1, floor((n-1)/2)]. It returns 0 when n < 2.
func EffectiveK(n, k int) int {
	if n < 2 {
		return 0
	}
	return max(0, min(k, MaxK(n)))
}

// Generate builds a Watts-Strogatz small-world graph on n nodes.
// See GenerateWithStats.
func Generate(n, k int, beta float32, seed uint64) []Edge {
	edges, _ := GenerateWithStats(n, k, beta, seed)
	return edges
}

// GenerateWithStats builds a ring lattice where every node links to its next
// k neighbors, then visits each node's lattice edges in order and, with
// probability beta, moves the far endpoint to a uniformly chosen node that is
// neither the source nor already adjacent to it. A rewire that cannot find
// such a node within n*8 draws keeps its original edge.
//
// Identical (n, k, beta, seed) always yields the identical edge list, sorted
// by (Source, Target). Degenerate inputs yield an empty list.
func GenerateWithStats(n, k int, beta float32, seed uint64) ([]Edge, RewireStats) {
	effK := EffectiveK(n, k)
	stats := RewireStats{EffectiveK: effK}
	if effK == 0 {
		return []Edge{}, stats
	}

	p := clampBeta(beta)
	adj := make([]map[int]struct{}, n)
	targets := make([][]int, n)
	for i := range adj {
		adj[i] = make(map[int]struct{}, effK*2)
		targets[i] = make([]int, 0, effK)
	}

	link := func(a, b int) {
		adj[a][b] = struct{}{}
		adj[b][a] = struct{}{}
	}
	unlink := func(a, b int) {
		delete(adj[a], b)
		delete(adj[b], a)
	}

	for src := 0; src < n; src++ {
		for off := 1; off <= effK; off++ {
			dst := (src + off) % n
			link(src, dst)
			targets[src] = append(targets[src], dst)
		}
	}

	if p > 0 {
		state := seed
		attemptCap := n * attemptsPerNode
		for src := 0; src < n; src++ {
			for idx := range targets[src] {
				if rng.Float32(&state) >= p {
					continue
				}
				stats.Attempted++

				old := targets[src][idx]
				unlink(src, old)

				next, ok := pickTarget(&state, adj, src, attemptCap)
				if !ok {
					link(src, old)
					stats.Restored++
					continue
				}
				link(src, next)
				targets[src][idx] = next
				stats.Rewired++
			}
		}
	}

	edges := make([]Edge, 0, n*effK)
	for src := 0; src < n; src++ {
		for dst := range adj[src] {
			if src < dst {
				edges = append(edges, Edge{Source: src, Target: dst})
			}
		}
	}
	SortEdges(edges)
	return edges, stats
}

// pickTarget draws candidates until one is neither src nor adjacent to it.
func pickTarget(state *uint64, adj []map[int]struct{}, src, attemptCap int) (int, bool) {
	n := len(adj)
	for attempt := 0; attempt < attemptCap; attempt++ {
		c := rng.Intn(state, n)
		if c == src {
			continue
		}
		if _, taken := adj[src][c]; taken {
			continue
		}
		return c, true
	}
	return 0, false
}

func clampBeta(beta float32) float32 {
	if beta != beta || beta <= 0 {
		return 0
	}
	if beta > 1 {
		return 1
	}
	return beta
}
