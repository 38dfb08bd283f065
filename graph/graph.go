// Copyright (c) 2026 BVK Chaitanya

// Package graph converts pairwise exchange rates into a weighted directed
// graph suitable for negative cycle searches.
//
// Every edge weight is the negative natural logarithm of the fee discounted
// rate, which turns the product of rates along a path into a sum of weights.
// A path that compounds to more than one unit of its starting asset has a
// negative total weight.
package graph

import (
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type Edge struct {
	From, To string

	Weight float64
}

// EffectiveRate returns the fee discounted rate this edge was built from.
func (e *Edge) EffectiveRate() float64 {
	return math.Exp(-e.Weight)
}

// Graph holds at most one edge per ordered pair. Nodes and edges are kept in
// insertion order.
//
// A Graph is not safe for concurrent use while it is being rebuilt.
type Graph struct {
	nodes *orderedmap.OrderedMap[string, struct{}]
	edges *orderedmap.OrderedMap[Pair, *Edge]
}

func New() *Graph {
	return &Graph{
		nodes: orderedmap.New[string, struct{}](),
		edges: orderedmap.New[Pair, *Edge](),
	}
}

// BuildGraph returns a new graph for the rates with the trading fee applied
// to every edge.
func BuildGraph(rates *Rates, fee float64) *Graph {
	g := New()
	g.Build(rates, fee)
	return g
}

// Build replaces all nodes and edges of the graph with the ones derived from
// the input rates. Entries whose effective rate is not positive, or whose
// logarithm is not finite, are skipped; their tokens are still nodes.
func (g *Graph) Build(rates *Rates, fee float64) {
	g.nodes = orderedmap.New[string, struct{}]()
	g.edges = orderedmap.New[Pair, *Edge]()

	factor := 1 - fee
	rates.Range(func(p Pair, rate float64) bool {
		g.nodes.Set(p.From, struct{}{})
		g.nodes.Set(p.To, struct{}{})

		effective := rate * factor
		if !(effective > 0) {
			return true
		}
		weight := -math.Log(effective)
		if math.IsInf(weight, 0) || math.IsNaN(weight) {
			return true
		}
		g.edges.Set(p, &Edge{From: p.From, To: p.To, Weight: weight})
		return true
	})
}

func (g *Graph) HasNode(n string) bool {
	if g == nil || g.nodes == nil {
		return false
	}
	_, ok := g.nodes.Get(n)
	return ok
}

func (g *Graph) NumNodes() int {
	if g == nil || g.nodes == nil {
		return 0
	}
	return g.nodes.Len()
}

func (g *Graph) NumEdges() int {
	if g == nil || g.edges == nil {
		return 0
	}
	return g.edges.Len()
}

// Nodes returns the node tokens in insertion order.
func (g *Graph) Nodes() []string {
	if g == nil || g.nodes == nil {
		return nil
	}
	ns := make([]string, 0, g.nodes.Len())
	for kv := g.nodes.Oldest(); kv != nil; kv = kv.Next() {
		ns = append(ns, kv.Key)
	}
	return ns
}

// Edges returns all edges in insertion order. Callers must not modify the
// returned edges.
func (g *Graph) Edges() []*Edge {
	if g == nil || g.edges == nil {
		return nil
	}
	es := make([]*Edge, 0, g.edges.Len())
	for kv := g.edges.Oldest(); kv != nil; kv = kv.Next() {
		es = append(es, kv.Value)
	}
	return es
}

// Weight returns the weight of edge from->to if it exists.
func (g *Graph) Weight(from, to string) (float64, bool) {
	if g == nil || g.edges == nil {
		return 0, false
	}
	e, ok := g.edges.Get(Pair{From: from, To: to})
	if !ok {
		return 0, false
	}
	return e.Weight, true
}

// ExchangeRate returns the effective rate of edge from->to or zero if the
// edge doesn't exist.
func (g *Graph) ExchangeRate(from, to string) float64 {
	w, ok := g.Weight(from, to)
	if !ok {
		return 0
	}
	return math.Exp(-w)
}
