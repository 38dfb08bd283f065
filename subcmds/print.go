// Copyright (c) 2026 BVK Chaitanya

package subcmds

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bvk/arbit/arbitrage"
	"github.com/bvk/arbit/graph"
	"github.com/bvk/arbit/sweep"
	"github.com/bvk/arbit/triangle"
)

func printCycle(w io.Writer, g *graph.Graph, r *arbitrage.Result, amount float64) {
	if !r.Found {
		fmt.Fprintln(w, "no arbitrage")
		return
	}
	fmt.Fprintf(w, "cycle: %s\n", r)
	for i := 0; i+1 < len(r.Cycle); i++ {
		fmt.Fprintf(w, "  %s -> %s at %.10g\n", r.Cycle[i], r.Cycle[i+1], g.ExchangeRate(r.Cycle[i], r.Cycle[i+1]))
	}
	if final, ok := arbitrage.PathAmount(g, r.Cycle, amount); ok {
		fmt.Fprintf(w, "  %.8g %s becomes %.8g %s\n", amount, r.Cycle[0], final, r.Cycle[0])
	}
}

func printTriangle(w io.Writer, r *triangle.Result) {
	fmt.Fprintf(w, "triangle %s amount=%g:\n", r.Triangle, r.Amount)
	fmt.Fprintf(w, "  forward %s\n", r.Forward)
	fmt.Fprintf(w, "  reverse %s\n", r.Reverse)
}

func printReport(w io.Writer, r *sweep.Report, verbose bool) {
	fmt.Fprintf(w, "run %s created %s\n", r.RunID, r.CreateTime.Format(time.RFC3339))
	fmt.Fprintf(w, "  symbols %s source %s fee %g\n", strings.Join(r.Symbols, ","), r.Source, r.Fee)
	fmt.Fprintf(w, "  range %s to %s every %s\n", r.Begin.Format(time.RFC3339), r.End.Format(time.RFC3339), r.Interval)
	fmt.Fprintf(w, "  snapshots %d skipped %d opportunities %d\n", r.Snapshots, r.Skipped, len(r.Opportunities))
	if best := r.Best(); best != nil {
		fmt.Fprintf(w, "  best %s\n", best)
	}
	if !verbose {
		return
	}
	for _, v := range r.Opportunities {
		fmt.Fprintf(w, "  %s\n", v)
		for _, t := range v.Triangles {
			fmt.Fprintf(w, "    triangle %s best %s\n", t.Triangle, t.Best())
		}
	}
}
