// Copyright (c) 2026 BVK Chaitanya

// Package arbitrage searches a rate graph for a negative weight cycle that
// is reachable from a source asset.
//
// The search is a single source Bellman-Ford. When more than one negative
// cycle exists, the cycle returned is the one seeded by the first edge, in
// graph edge order, that can still relax after |V|-1 passes. It is not the
// most profitable cycle.
package arbitrage

import (
	"fmt"
	"math"
	"strings"

	"github.com/bvk/arbit/graph"
)

// epsilon is the relative improvement an edge must make in the detection
// pass to count as evidence of a negative cycle. Smaller improvements are
// rounding noise, e.g. ln(1/r) differing from -ln(r) by one ulp.
const epsilon = 1e-12

// FindArbitrage runs the negative cycle search from the source node. It
// returns the closed cycle path in trade order (first and last nodes are the
// same) and the product of effective rates along it.
//
// Returns false, nil and 1.0 when the source is not a node, the graph has
// fewer than two nodes, or no negative cycle is reachable from the source.
func FindArbitrage(g *graph.Graph, source string) (bool, []string, float64) {
	if !g.HasNode(source) || g.NumNodes() < 2 {
		return false, nil, 1.0
	}

	edges := g.Edges()
	nodes := g.Nodes()

	dist := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		dist[n] = math.Inf(1)
	}
	dist[source] = 0
	pred := make(map[string]string, len(nodes))

	for i := 0; i < len(nodes)-1; i++ {
		for _, e := range edges {
			if d := dist[e.From] + e.Weight; d < dist[e.To] {
				dist[e.To] = d
				pred[e.To] = e.From
			}
		}
	}

	// Relaxations in the detection passes are applied before walking the
	// predecessor chain, so a cycle through the relaxed edge closes over it.
	// A chain that still ends at the source keeps the search relaxing, for
	// at most |V| more passes.
	for pass := 0; pass < len(nodes); pass++ {
		relaxed := false
		for _, e := range edges {
			if !relaxable(dist[e.From], e.Weight, dist[e.To]) {
				continue
			}
			relaxed = true
			dist[e.To] = dist[e.From] + e.Weight
			pred[e.To] = e.From

			cycle, ok := extractCycle(pred, e.From)
			if !ok {
				continue
			}
			if ratio, ok := PathAmount(g, cycle, 1.0); ok && ratio > 1 {
				return true, cycle, ratio
			}
		}
		if !relaxed {
			break
		}
	}
	return false, nil, 1.0
}

func relaxable(du, w, dv float64) bool {
	d := du + w
	if !(d < dv) {
		return false
	}
	if math.IsInf(dv, 1) {
		return true
	}
	return dv-d > epsilon*math.Max(1, math.Abs(dv))
}

// extractCycle walks the predecessor chain from seed till a node repeats and
// returns the repeating part in forward trade order, closed with its first
// node. Returns false if the chain ends before any node repeats.
func extractCycle(pred map[string]string, seed string) ([]string, bool) {
	seen := make(map[string]int)
	var walk []string
	current := seed
	for {
		if _, ok := seen[current]; ok {
			break
		}
		seen[current] = len(walk)
		walk = append(walk, current)
		p, ok := pred[current]
		if !ok {
			return nil, false
		}
		current = p
	}

	loop := walk[seen[current]:]
	cycle := make([]string, 0, len(loop)+1)
	for i := len(loop) - 1; i >= 0; i-- {
		cycle = append(cycle, loop[i])
	}
	cycle = append(cycle, cycle[0])
	return cycle, true
}

// PathAmount returns the amount received by converting the input amount along
// the path, using the effective rates recovered from the graph edge weights.
// Returns false if any edge on the path is missing.
func PathAmount(g *graph.Graph, path []string, amount float64) (float64, bool) {
	for i := 0; i+1 < len(path); i++ {
		w, ok := g.Weight(path[i], path[i+1])
		if !ok {
			return 0, false
		}
		amount *= math.Exp(-w)
	}
	return amount, true
}

// Result is the outcome of one negative cycle search.
type Result struct {
	Found bool

	Cycle []string

	ProfitRatio float64
}

// Find is the same as FindArbitrage, but returns the outcome as a Result.
func Find(g *graph.Graph, source string) *Result {
	found, cycle, ratio := FindArbitrage(g, source)
	return &Result{Found: found, Cycle: cycle, ProfitRatio: ratio}
}

// Profit returns the fractional profit of the cycle, e.g. 0.01 for 1%.
func (r *Result) Profit() float64 {
	return r.ProfitRatio - 1
}

func (r *Result) String() string {
	if !r.Found {
		return "no arbitrage"
	}
	return fmt.Sprintf("%s ratio=%.8f profit=%.4f%%", strings.Join(r.Cycle, "->"), r.ProfitRatio, r.Profit()*100)
}
