// Copyright (c) 2026 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/bvk/arbit/candles"
	"github.com/bvk/arbit/subcmds/cmdutil"
	"github.com/bvk/arbit/sweep"
	"github.com/bvk/arbit/timerange"
	"github.com/visvasity/cli"
)

type Sweep struct {
	cmdutil.ConfigFlags

	begin, end string

	interval time.Duration
	workers  int

	save    bool
	verbose bool
}

func (c *Sweep) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("sweep", flag.ContinueOnError)
	c.ConfigFlags.SetFlags(fset)
	fset.StringVar(&c.begin, "begin", "", "Begin timestamp (RFC3339 or YYYY-MM-DD) in UTC")
	fset.StringVar(&c.end, "end", "", "End timestamp (default is one day after the begin)")
	fset.DurationVar(&c.interval, "interval", 0, "Time between evaluated snapshots (overrides the config)")
	fset.IntVar(&c.workers, "workers", 0, "Number of concurrent workers (overrides the config)")
	fset.BoolVar(&c.save, "save", false, "Save the report in the database")
	fset.BoolVar(&c.verbose, "v", false, "Print every opportunity")
	return "sweep", fset, cli.CmdFunc(c.run)
}

func (c *Sweep) Purpose() string {
	return "Searches for arbitrage at every timestamp of a range using the saved candles"
}

func (c *Sweep) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if c.begin == "" {
		return fmt.Errorf("begin timestamp is required")
	}
	r, err := timerange.ParseRange(c.begin, c.end, 24*time.Hour)
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

	opts := &sweep.Options{
		Symbols:        cfg.Symbols,
		Source:         cfg.Source,
		TradingFee:     cfg.TradingFee,
		Interval:       cfg.Interval.Duration,
		Workers:        cfg.Workers,
		MinProfitRatio: cfg.MinProfitRatio,
		Triangles:      cfg.Triangles,
		TriangleAmount: cfg.TriangleAmount,
	}
	if c.interval != 0 {
		opts.Interval = c.interval
	}
	if c.workers != 0 {
		opts.Workers = c.workers
	}

	ds := candles.NewDatastore(db, cfg.Exchange)
	report, err := sweep.Run(ctx, ds, r, opts)
	if err != nil {
		return err
	}
	if c.save {
		if err := sweep.SaveReport(ctx, db, report); err != nil {
			return err
		}
	}
	printReport(cli.Stdout(ctx), report, c.verbose)
	return nil
}
