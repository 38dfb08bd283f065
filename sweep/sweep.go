// Copyright (c) 2026 BVK Chaitanya

// Package sweep evaluates arbitrage over every timestamp of a time range
// using a bounded pool of workers.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bvk/arbit/arbitrage"
	"github.com/bvk/arbit/graph"
	"github.com/bvk/arbit/snapshot"
	"github.com/bvk/arbit/timerange"
	"github.com/bvk/arbit/triangle"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Opportunity is a timestamp where the cycle search found arbitrage or a
// triangle path is profitable.
type Opportunity struct {
	Time time.Time

	// Cycle is empty when only a triangle path is profitable.
	Cycle []string

	// ProfitRatio is 1.0 when Cycle is empty.
	ProfitRatio float64

	Triangles []*triangle.Result
}

func (v *Opportunity) String() string {
	if len(v.Cycle) == 0 {
		return fmt.Sprintf("%s triangles=%d", v.Time.Format(time.RFC3339), len(v.Triangles))
	}
	return fmt.Sprintf("%s %s ratio=%.8f", v.Time.Format(time.RFC3339), strings.Join(v.Cycle, "->"), v.ProfitRatio)
}

type Report struct {
	RunID      uuid.UUID
	CreateTime time.Time

	Symbols  []string
	Source   string
	Fee      float64
	Begin    time.Time
	End      time.Time
	Interval time.Duration

	// Snapshots is the number of timestamps evaluated, including the skipped.
	Snapshots int

	// Skipped is the number of timestamps with no prices at all.
	Skipped int

	// Opportunities are sorted by the time.
	Opportunities []*Opportunity
}

// Best returns the opportunity with the largest cycle profit ratio,
// preferring the earlier one on ties. Returns nil if there are none.
func (r *Report) Best() *Opportunity {
	var best *Opportunity
	for _, v := range r.Opportunities {
		if best == nil || v.ProfitRatio > best.ProfitRatio || (v.ProfitRatio == best.ProfitRatio && v.Time.Before(best.Time)) {
			best = v
		}
	}
	return best
}

// Evaluate runs the cycle search and the triangle analysis on one snapshot,
// rebuilding the graph from the snapshot rates. Returns nil if there is no
// opportunity.
func Evaluate(g *graph.Graph, s *snapshot.Snapshot, opts *Options) *Opportunity {
	g.Build(s.Rates, opts.TradingFee)

	v := &Opportunity{Time: s.Time, ProfitRatio: 1}
	if found, cycle, ratio := arbitrage.FindArbitrage(g, opts.Source); found && ratio >= opts.MinProfitRatio {
		v.Cycle, v.ProfitRatio = cycle, ratio
	}

	for _, t := range opts.Triangles {
		result, err := triangle.Analyze(s.Prices, t, opts.TriangleAmount, opts.TradingFee)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				slog.Warn("could not analyze triangle (ignored)", "triangle", t, "time", s.Time, "err", err)
			}
			continue
		}
		if result.Profitable() {
			v.Triangles = append(v.Triangles, result)
		}
	}

	if len(v.Cycle) == 0 && len(v.Triangles) == 0 {
		return nil
	}
	return v
}

// Run evaluates every timestamp Begin, Begin+Interval, ... not after End.
// Every worker owns its graph. Cancelling the context stops the sweep.
func Run(ctx context.Context, src snapshot.PriceSource, r *timerange.Range, opts *Options) (*Report, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}
	var o Options
	if opts != nil {
		o = *opts
		o.Symbols = slices.Clone(opts.Symbols)
		o.Triangles = slices.Clone(opts.Triangles)
	}
	o.setDefaults()
	opts = &o
	if err := opts.Check(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:      uuid.New(),
		CreateTime: time.Now(),
		Symbols:    slices.Clone(opts.Symbols),
		Source:     opts.Source,
		Fee:        opts.TradingFee,
		Begin:      r.Begin,
		End:        r.End,
		Interval:   opts.Interval,
	}

	steps := r.Steps(opts.Interval)
	slog.Info("starting sweep", "run", report.RunID, "range", r, "interval", opts.Interval, "snapshots", len(steps), "workers", opts.Workers)

	var mu sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)

	stepCh := make(chan time.Time)
	eg.Go(func() error {
		defer close(stepCh)
		for _, at := range steps {
			select {
			case <-ctx.Done():
				return context.Cause(ctx)
			case stepCh <- at:
			}
		}
		return nil
	})

	for i := 0; i < opts.Workers; i++ {
		eg.Go(func() error {
			g := graph.New()
			for at := range stepCh {
				if err := ctx.Err(); err != nil {
					return context.Cause(ctx)
				}
				s, err := snapshot.Build(ctx, src, opts.Symbols, at)
				if err != nil {
					return err
				}
				var v *Opportunity
				if !s.IsEmpty() {
					v = Evaluate(g, s, opts)
				}

				mu.Lock()
				report.Snapshots++
				if s.IsEmpty() {
					report.Skipped++
				}
				if v != nil {
					report.Opportunities = append(report.Opportunities, v)
				}
				mu.Unlock()

				if v != nil {
					slog.Debug("found an opportunity", "run", report.RunID, "opportunity", v)
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("could not complete sweep %s: %w", report.RunID, err)
	}

	slices.SortFunc(report.Opportunities, func(a, b *Opportunity) int {
		return a.Time.Compare(b.Time)
	})
	slog.Info("sweep is complete", "run", report.RunID, "snapshots", report.Snapshots, "skipped", report.Skipped, "opportunities", len(report.Opportunities))
	return report, nil
}
