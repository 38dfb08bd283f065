// Copyright (c) 2026 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/bvk/arbit/candles"
	"github.com/bvk/arbit/coinbase"
	"github.com/bvk/arbit/subcmds/cmdutil"
	"github.com/bvk/arbit/timerange"
	"github.com/visvasity/cli"
)

type Download struct {
	cmdutil.ConfigFlags

	begin, end string

	force bool
}

func (c *Download) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("download", flag.ContinueOnError)
	c.ConfigFlags.SetFlags(fset)
	fset.StringVar(&c.begin, "begin", "", "Begin timestamp (RFC3339 or YYYY-MM-DD) in UTC")
	fset.StringVar(&c.end, "end", "", "End timestamp (default is one day after the begin)")
	fset.BoolVar(&c.force, "force", false, "Download again the days that are already saved")
	return "download", fset, cli.CmdFunc(c.run)
}

func (c *Download) Purpose() string {
	return "Downloads historical candles for the configured symbols into the database"
}

func (c *Download) run(ctx context.Context, args []string) error {
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
	granularity, err := coinbase.ParseGranularity(cfg.Granularity)
	if err != nil {
		return err
	}

	db, closer, err := cmdutil.OpenDatabase(cfg.DataDir)
	if err != nil {
		return err
	}
	defer closer()

	client, err := coinbase.New(cfg.CoinbaseOptions())
	if err != nil {
		return err
	}
	defer client.Close()

	ds := candles.NewDatastore(db, cfg.Exchange)
	stdout := cli.Stdout(ctx)
	for _, symbol := range cfg.Symbols {
		total := 0
		for _, day := range r.Days() {
			if !c.force {
				ok, err := ds.HasDay(ctx, symbol, day)
				if err != nil {
					return err
				}
				if ok {
					slog.Debug("candles are already saved (skipped)", "symbol", symbol, "day", day.Format(time.DateOnly))
					continue
				}
			}

			dayRange := &timerange.Range{Begin: day, End: day.Add(24*time.Hour - granularity.Duration())}
			cs, err := client.GetCandlesRange(ctx, coinbase.ProductID(symbol), dayRange, granularity)
			if err != nil {
				return fmt.Errorf("could not fetch %s candles for %s: %w", symbol, day.Format(time.DateOnly), err)
			}
			if len(cs) == 0 {
				slog.Warn("no candles are available", "symbol", symbol, "day", day.Format(time.DateOnly))
				continue
			}
			if err := ds.SaveCandles(ctx, symbol, cs); err != nil {
				return err
			}
			total += len(cs)
		}
		fmt.Fprintf(stdout, "%s: saved %d candles\n", symbol, total)
	}
	return nil
}
