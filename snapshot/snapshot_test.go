// Copyright (c) 2026 BVK Chaitanya

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bvk/arbit/graph"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

type fakeSource map[string]decimal.Decimal

func (f fakeSource) ClosePrice(ctx context.Context, symbol string, at time.Time) (decimal.Decimal, error) {
	if symbol == "BAD/ONE" {
		return decimal.Zero, fmt.Errorf("backend failure")
	}
	v, ok := f[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("no price for %s: %w", symbol, os.ErrNotExist)
	}
	return v, nil
}

func TestParseSymbol(t *testing.T) {
	if b, q, err := ParseSymbol("BTC/USDT"); err != nil || b != "BTC" || q != "USDT" {
		t.Fatalf("want BTC USDT, got %q %q %v", b, q, err)
	}
	for _, s := range []string{"", "BTC", "BTC/", "/USDT", "A/B/C", "BTC/BTC", "BTC-USDT"} {
		if _, _, err := ParseSymbol(s); !errors.Is(err, os.ErrInvalid) {
			t.Fatalf("symbol %q: want ErrInvalid, got %v", s, err)
		}
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2022, 11, 19, 21, 0, 0, 0, time.UTC)

	src := fakeSource{
		"BTC/USDT": decimal.NewFromInt(16000),
		"ETH/USDT": decimal.NewFromInt(1200),
	}
	symbols := []string{"BTC/USDT", "ETH/USDT", "ETH/BTC"}

	s, err := Build(ctx, src, symbols, at)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Time.Equal(at) {
		t.Fatalf("want time %v, got %v", at, s.Time)
	}
	if diff := cmp.Diff([]string{"ETH/BTC"}, s.Missing); diff != "" {
		t.Fatalf("missing symbols mismatch (-want +got):\n%s", diff)
	}

	want := []graph.Pair{
		{From: "USDT", To: "BTC"},
		{From: "BTC", To: "USDT"},
		{From: "USDT", To: "ETH"},
		{From: "ETH", To: "USDT"},
	}
	if diff := cmp.Diff(want, s.Rates.Pairs()); diff != "" {
		t.Fatalf("rate pairs mismatch (-want +got):\n%s", diff)
	}
	if v, _ := s.Rates.Get("USDT", "BTC"); v != 1.0/16000 {
		t.Fatalf("want %v, got %v", 1.0/16000, v)
	}
	if v, _ := s.Rates.Get("ETH", "USDT"); v != 1200 {
		t.Fatalf("want 1200, got %v", v)
	}
	if s.IsEmpty() {
		t.Fatalf("want non-empty snapshot")
	}

	if _, err := Build(ctx, src, []string{"BTC/USDT", "BAD/ONE"}, at); err == nil {
		t.Fatalf("want backend error to propagate")
	}

	empty, err := Build(ctx, fakeSource{}, symbols, at)
	if err != nil {
		t.Fatal(err)
	}
	if !empty.IsEmpty() || len(empty.Missing) != 3 {
		t.Fatalf("want empty snapshot with 3 missing symbols, got %d rates and %v", empty.Rates.Len(), empty.Missing)
	}
}

func TestFromPricesRejectsInvalid(t *testing.T) {
	at := time.Now()
	for _, price := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := FromPrices(at, []string{"BTC/USD"}, map[string]decimal.Decimal{"BTC/USD": price})
		if !errors.Is(err, os.ErrInvalid) {
			t.Fatalf("price %s: want ErrInvalid, got %v", price, err)
		}
	}
	if _, err := FromPrices(at, []string{"BTCUSD"}, nil); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid for a malformed symbol, got %v", err)
	}
}
