// Copyright (c) 2026 BVK Chaitanya

// Package triangle evaluates the two fixed trading paths of a three symbol
// triangle directly from closing prices.
package triangle

import (
	"fmt"
	"os"
	"strings"

	"github.com/bvk/arbit/snapshot"
	"github.com/shopspring/decimal"
)

// Triangle names three symbols where AB and BC share the same quote asset
// and CA prices the BC base in units of the AB base. For example AB is
// BTC/USDT, BC is ETH/USDT and CA is ETH/BTC.
type Triangle struct {
	AB string `toml:"ab"`
	BC string `toml:"bc"`
	CA string `toml:"ca"`
}

func (t Triangle) String() string {
	return fmt.Sprintf("%s,%s,%s", t.AB, t.BC, t.CA)
}

// Check verifies that the symbols form a triangle and returns the quote
// asset followed by the AB and BC base assets.
func (t Triangle) Check() (quote, b, c string, err error) {
	abBase, abQuote, err := snapshot.ParseSymbol(t.AB)
	if err != nil {
		return "", "", "", err
	}
	bcBase, bcQuote, err := snapshot.ParseSymbol(t.BC)
	if err != nil {
		return "", "", "", err
	}
	caBase, caQuote, err := snapshot.ParseSymbol(t.CA)
	if err != nil {
		return "", "", "", err
	}
	if abQuote != bcQuote {
		return "", "", "", fmt.Errorf("%s and %s must share the quote asset: %w", t.AB, t.BC, os.ErrInvalid)
	}
	if caBase != bcBase || caQuote != abBase {
		return "", "", "", fmt.Errorf("%s must be %s/%s: %w", t.CA, bcBase, abBase, os.ErrInvalid)
	}
	return abQuote, abBase, bcBase, nil
}

// Leg is one trip around the triangle.
type Leg struct {
	Path []string

	// Amounts holds the amount held after each trade.
	Amounts []float64

	Final   float64
	Profit  float64
	Percent float64
}

func (l *Leg) String() string {
	return fmt.Sprintf("%s final=%.8f profit=%.8f (%.4f%%)", strings.Join(l.Path, "->"), l.Final, l.Profit, l.Percent)
}

type Result struct {
	Triangle Triangle

	Amount float64
	Fee    float64

	Forward *Leg
	Reverse *Leg
}

// Profitable returns true if either leg ends with more than the input amount.
func (r *Result) Profitable() bool {
	return r.Forward.Profit > 0 || r.Reverse.Profit > 0
}

// Best returns the leg with the larger final amount.
func (r *Result) Best() *Leg {
	if r.Reverse.Final > r.Forward.Final {
		return r.Reverse
	}
	return r.Forward
}

// Analyze converts the amount around both directions of the triangle with
// the fee charged at every trade. Returns an error wrapping os.ErrNotExist
// if any of the three prices is missing.
func Analyze(prices map[string]decimal.Decimal, t Triangle, amount, fee float64) (*Result, error) {
	quote, b, c, err := t.Check()
	if err != nil {
		return nil, err
	}
	if !(amount > 0) {
		return nil, fmt.Errorf("amount %v must be positive: %w", amount, os.ErrInvalid)
	}
	if fee < 0 || fee >= 1 {
		return nil, fmt.Errorf("fee %v must be in [0,1): %w", fee, os.ErrInvalid)
	}

	var values [3]float64
	for i, symbol := range []string{t.AB, t.BC, t.CA} {
		p, ok := prices[symbol]
		if !ok {
			return nil, fmt.Errorf("no price for %s: %w", symbol, os.ErrNotExist)
		}
		if p.Sign() <= 0 {
			return nil, fmt.Errorf("%s price %s must be positive: %w", symbol, p, os.ErrInvalid)
		}
		values[i], _ = p.Float64()
	}
	ab, bc, ca := values[0], values[1], values[2]
	f := 1 - fee

	a1 := amount / ab * f
	a2 := a1 * ca * f
	a3 := a2 * bc * f

	b1 := amount / bc * f
	b2 := b1 * ca * f
	b3 := b2 * ab * f

	return &Result{
		Triangle: t,
		Amount:   amount,
		Fee:      fee,
		Forward:  newLeg(amount, []string{quote, b, c, quote}, a1, a2, a3),
		Reverse:  newLeg(amount, []string{quote, c, b, quote}, b1, b2, b3),
	}, nil
}

func newLeg(amount float64, path []string, amounts ...float64) *Leg {
	final := amounts[len(amounts)-1]
	return &Leg{
		Path:    path,
		Amounts: amounts,
		Final:   final,
		Profit:  final - amount,
		Percent: (final - amount) / amount * 100,
	}
}
