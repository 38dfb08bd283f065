// Copyright (c) 2026 BVK Chaitanya

package subcmds

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bvk/arbit/arbitrage"
	"github.com/bvk/arbit/candles"
	"github.com/bvk/arbit/graph"
	"github.com/bvk/arbit/snapshot"
	"github.com/bvk/arbit/subcmds/cmdutil"
	"github.com/bvk/arbit/timerange"
	"github.com/bvk/arbit/triangle"
	"github.com/visvasity/cli"
)

type Find struct {
	cmdutil.ConfigFlags

	at string
}

func (c *Find) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("find", flag.ContinueOnError)
	c.ConfigFlags.SetFlags(fset)
	fset.StringVar(&c.at, "at", "", "Candle start timestamp (RFC3339 or YYYY-MM-DDTHH:MM) in UTC")
	return "find", fset, cli.CmdFunc(c.run)
}

func (c *Find) Purpose() string {
	return "Searches for arbitrage at one timestamp using the saved candles"
}

func (c *Find) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if c.at == "" {
		return fmt.Errorf("timestamp is required")
	}
	at, err := timerange.Parse(c.at)
	if err != nil {
		return err
	}

	cfg, err := c.ConfigFlags.Config()
	if err != nil {
		return err
	}

	db, closer, err := cmdutil.OpenDatabase(cfg.DataDir)
	if err != nil {
		return err
	}
	defer closer()

	ds := candles.NewDatastore(db, cfg.Exchange)
	s, err := snapshot.Build(ctx, ds, cfg.Symbols, at)
	if err != nil {
		return err
	}
	if s.IsEmpty() {
		return fmt.Errorf("no candles start at %s: %w", at.Format(time.RFC3339), os.ErrNotExist)
	}

	stdout := cli.Stdout(ctx)
	if len(s.Missing) > 0 {
		fmt.Fprintf(stdout, "missing prices: %s\n", strings.Join(s.Missing, ","))
	}

	g := graph.BuildGraph(s.Rates, cfg.TradingFee)
	printCycle(stdout, g, arbitrage.Find(g, cfg.Source), cfg.TriangleAmount)

	for _, t := range cfg.Triangles {
		r, err := triangle.Analyze(s.Prices, t, cfg.TriangleAmount, cfg.TradingFee)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		printTriangle(stdout, r)
	}
	return nil
}
