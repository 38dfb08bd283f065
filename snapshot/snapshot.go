// Copyright (c) 2026 BVK Chaitanya

// Package snapshot turns closing prices of trading pairs at one instant into
// directed exchange rates.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bvk/arbit/graph"
	"github.com/shopspring/decimal"
)

// PriceSource resolves the closing price of a trading pair symbol (for
// example "BTC/USDT") at an instant. Implementations must return an error
// wrapping os.ErrNotExist when no price is available at that instant.
type PriceSource interface {
	ClosePrice(ctx context.Context, symbol string, at time.Time) (decimal.Decimal, error)
}

type Snapshot struct {
	Time time.Time

	// Prices holds the resolved closing price for each available symbol.
	Prices map[string]decimal.Decimal

	// Rates holds both directions for every available symbol.
	Rates *graph.Rates

	// Missing holds the symbols that had no price at this instant.
	Missing []string
}

// ParseSymbol splits a "BASE/QUOTE" symbol into its asset tokens.
func ParseSymbol(symbol string) (base, quote string, err error) {
	base, quote, ok := strings.Cut(symbol, "/")
	if !ok || base == "" || quote == "" || strings.Contains(quote, "/") || base == quote {
		return "", "", fmt.Errorf("symbol %q is not in BASE/QUOTE form: %w", symbol, os.ErrInvalid)
	}
	return base, quote, nil
}

// Build resolves the closing price of every symbol at the given time and
// returns the snapshot. Symbols without a price are skipped and recorded in
// the Missing list.
func Build(ctx context.Context, src PriceSource, symbols []string, at time.Time) (*Snapshot, error) {
	prices := make(map[string]decimal.Decimal, len(symbols))
	for _, symbol := range symbols {
		price, err := src.ClosePrice(ctx, symbol, at)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("could not resolve %s price at %s: %w", symbol, at.Format(time.RFC3339), err)
		}
		prices[symbol] = price
	}
	return FromPrices(at, symbols, prices)
}

// FromPrices returns the snapshot for already resolved prices. For a symbol
// BASE/QUOTE with price p, rate QUOTE->BASE is 1/p and rate BASE->QUOTE is p.
// Rates are added in the symbols order.
func FromPrices(at time.Time, symbols []string, prices map[string]decimal.Decimal) (*Snapshot, error) {
	s := &Snapshot{
		Time:   at,
		Prices: make(map[string]decimal.Decimal, len(prices)),
		Rates:  graph.NewRates(),
	}
	for _, symbol := range symbols {
		base, quote, err := ParseSymbol(symbol)
		if err != nil {
			return nil, err
		}
		price, ok := prices[symbol]
		if !ok {
			s.Missing = append(s.Missing, symbol)
			continue
		}
		if price.Sign() <= 0 {
			return nil, fmt.Errorf("%s price %s at %s must be positive: %w", symbol, price, at.Format(time.RFC3339), os.ErrInvalid)
		}
		p, _ := price.Float64()
		s.Prices[symbol] = price
		s.Rates.Set(quote, base, 1/p)
		s.Rates.Set(base, quote, p)
	}
	return s, nil
}

// IsEmpty returns true if no symbol had a price.
func (s *Snapshot) IsEmpty() bool {
	return s.Rates.Len() == 0
}
