// Copyright (c) 2026 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bvk/arbit/arbitrage"
	"github.com/bvk/arbit/graph"
	"github.com/bvk/arbit/snapshot"
	"github.com/bvk/arbit/triangle"
	"github.com/shopspring/decimal"
	"github.com/visvasity/cli"
)

type Eval struct {
	source   string
	fee      float64
	amount   float64
	triangle string
}

func (c *Eval) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("eval", flag.ContinueOnError)
	fset.StringVar(&c.source, "source", "USDT", "Source asset for the cycle search")
	fset.Float64Var(&c.fee, "fee", 0.001, "Trading fee fraction charged on every trade")
	fset.Float64Var(&c.amount, "amount", 1000, "Input amount for the printed trades")
	fset.StringVar(&c.triangle, "triangle", "", "Comma separated AB,BC,CA symbols to analyze directly")
	return "eval", fset, cli.CmdFunc(c.run)
}

func (c *Eval) Purpose() string {
	return "Searches for arbitrage in prices (BASE/QUOTE=PRICE) or rates (FROM:TO=RATE) given as arguments"
}

// parseArgs returns the prices in argument order and the rates. Rates are
// added after the prices.
func parseArgs(args []string) (symbols []string, prices map[string]decimal.Decimal, rates []graph.Pair, values []float64, err error) {
	prices = make(map[string]decimal.Decimal)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, nil, nil, nil, fmt.Errorf("argument %q is not in KEY=VALUE form: %w", arg, os.ErrInvalid)
		}
		if from, to, ok := strings.Cut(key, ":"); ok {
			rate, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, nil, nil, nil, fmt.Errorf("could not parse rate %q: %w", value, err)
			}
			rates = append(rates, graph.Pair{From: from, To: to})
			values = append(values, rate)
			continue
		}
		price, err := decimal.NewFromString(value)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("could not parse price %q: %w", value, err)
		}
		if _, ok := prices[key]; !ok {
			symbols = append(symbols, key)
		}
		prices[key] = price
	}
	return symbols, prices, rates, values, nil
}

func (c *Eval) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("this command takes one or more price or rate arguments")
	}
	if c.fee < 0 || c.fee >= 1 {
		return fmt.Errorf("fee %v must be in [0,1): %w", c.fee, os.ErrInvalid)
	}

	symbols, prices, pairs, values, err := parseArgs(args)
	if err != nil {
		return err
	}
	s, err := snapshot.FromPrices(time.Now(), symbols, prices)
	if err != nil {
		return err
	}
	for i, p := range pairs {
		s.Rates.Set(p.From, p.To, values[i])
	}

	stdout := cli.Stdout(ctx)
	g := graph.BuildGraph(s.Rates, c.fee)
	printCycle(stdout, g, arbitrage.Find(g, c.source), c.amount)

	if c.triangle != "" {
		parts := strings.Split(c.triangle, ",")
		if len(parts) != 3 {
			return fmt.Errorf("triangle %q must have three symbols: %w", c.triangle, os.ErrInvalid)
		}
		t := triangle.Triangle{AB: parts[0], BC: parts[1], CA: parts[2]}
		r, err := triangle.Analyze(prices, t, c.amount, c.fee)
		if err != nil {
			return err
		}
		printTriangle(stdout, r)
	}
	return nil
}
