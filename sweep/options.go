// Copyright (c) 2026 BVK Chaitanya

package sweep

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/bvk/arbit/snapshot"
	"github.com/bvk/arbit/triangle"
)

type Options struct {
	// Symbols lists the BASE/QUOTE trading pairs to resolve at every timestamp.
	Symbols []string

	// Source is the asset the negative cycle search starts from.
	Source string

	// TradingFee is the fraction charged on every trade.
	TradingFee float64

	// Interval is the distance between successive timestamps.
	Interval time.Duration

	// Workers is the max number of snapshots evaluated concurrently.
	Workers int

	// MinProfitRatio is the smallest cycle profit ratio that is reported.
	MinProfitRatio float64

	// Triangles are evaluated directly from prices at every timestamp.
	Triangles []triangle.Triangle

	// TriangleAmount is the input amount for the triangle paths.
	TriangleAmount float64
}

func (v *Options) setDefaults() {
	if v.Interval == 0 {
		v.Interval = time.Hour
	}
	if v.Workers == 0 {
		v.Workers = runtime.NumCPU()
	}
	if v.MinProfitRatio == 0 {
		v.MinProfitRatio = 1
	}
	if v.TriangleAmount == 0 {
		v.TriangleAmount = 1000
	}
}

// Check returns all problems with the options joined into one error.
func (v *Options) Check() error {
	var errs []error
	if len(v.Symbols) == 0 {
		errs = append(errs, fmt.Errorf("at least one symbol is required"))
	}
	for _, s := range v.Symbols {
		if _, _, err := snapshot.ParseSymbol(s); err != nil {
			errs = append(errs, err)
		}
	}
	if v.Source == "" {
		errs = append(errs, fmt.Errorf("source asset is required"))
	}
	if v.TradingFee < 0 || v.TradingFee >= 1 {
		errs = append(errs, fmt.Errorf("trading fee %v must be in [0,1)", v.TradingFee))
	}
	if v.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval %v must be positive", v.Interval))
	}
	if v.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d cannot be negative", v.Workers))
	}
	for _, t := range v.Triangles {
		if _, _, _, err := t.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	if v.TriangleAmount < 0 {
		errs = append(errs, fmt.Errorf("triangle amount %v cannot be negative", v.TriangleAmount))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", os.ErrInvalid, err)
	}
	return nil
}
