// Copyright (c) 2026 BVK Chaitanya

package graph

import (
	"cmp"
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Pair is a directed pair of asset tokens. A rate for the pair means one unit
// of From converts to rate units of To.
type Pair struct {
	From, To string
}

func (p Pair) String() string {
	return fmt.Sprintf("%s->%s", p.From, p.To)
}

// Rates is an insertion ordered mapping from directed pairs to raw exchange
// rates. Replacing the rate of a known pair keeps its original position.
type Rates struct {
	m *orderedmap.OrderedMap[Pair, float64]
}

func NewRates() *Rates {
	return &Rates{m: orderedmap.New[Pair, float64]()}
}

// RatesFromMap returns the rates from a plain map ordered by the (From, To)
// pair names, so that graphs built from Go maps are deterministic.
func RatesFromMap(m map[Pair]float64) *Rates {
	keys := make([]Pair, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Pair) int {
		if v := cmp.Compare(a.From, b.From); v != 0 {
			return v
		}
		return cmp.Compare(a.To, b.To)
	})
	r := NewRates()
	for _, k := range keys {
		r.m.Set(k, m[k])
	}
	return r
}

func (r *Rates) Set(from, to string, rate float64) {
	r.m.Set(Pair{From: from, To: to}, rate)
}

func (r *Rates) Get(from, to string) (float64, bool) {
	return r.m.Get(Pair{From: from, To: to})
}

func (r *Rates) Len() int {
	if r == nil || r.m == nil {
		return 0
	}
	return r.m.Len()
}

// Range calls fn for every rate in insertion order till fn returns false.
func (r *Rates) Range(fn func(p Pair, rate float64) bool) {
	if r == nil || r.m == nil {
		return
	}
	for kv := r.m.Oldest(); kv != nil; kv = kv.Next() {
		if !fn(kv.Key, kv.Value) {
			return
		}
	}
}

// Pairs returns all pairs in insertion order.
func (r *Rates) Pairs() []Pair {
	var ps []Pair
	r.Range(func(p Pair, _ float64) bool {
		ps = append(ps, p)
		return true
	})
	return ps
}
