// Copyright (c) 2026 BVK Chaitanya

package triangle

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

var btcEth = Triangle{AB: "BTC/USDT", BC: "ETH/USDT", CA: "ETH/BTC"}

func TestAnalyze(t *testing.T) {
	prices := map[string]decimal.Decimal{
		"BTC/USDT": decimal.NewFromInt(16000),
		"ETH/USDT": decimal.NewFromInt(1200),
		"ETH/BTC":  decimal.RequireFromString("0.077"),
	}

	r, err := Analyze(prices, btcEth, 1000, 0.001)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"USDT", "BTC", "ETH", "USDT"}, r.Forward.Path); diff != "" {
		t.Fatalf("forward path mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"USDT", "ETH", "BTC", "USDT"}, r.Reverse.Path); diff != "" {
		t.Fatalf("reverse path mismatch (-want +got):\n%s", diff)
	}

	if v := r.Forward.Amounts[0]; !closeTo(v, 0.0624375) {
		t.Fatalf("want 0.0624375 after the first trade, got %v", v)
	}
	if v := r.Forward.Final; !closeTo(v, 5.757692319225) {
		t.Fatalf("want forward final 5.757692319225, got %v", v)
	}
	if v := r.Reverse.Final; !closeTo(v, 1023.5897456400003) {
		t.Fatalf("want reverse final 1023.58974564, got %v", v)
	}
	if v := r.Reverse.Percent; !closeTo(v, 2.35897456400003) {
		t.Fatalf("want reverse percent 2.358974564, got %v", v)
	}
	if !r.Profitable() {
		t.Fatalf("want profitable result")
	}
	if r.Best() != r.Reverse {
		t.Fatalf("want reverse leg to be the best")
	}

	// With a 1% fee neither direction pays.
	r, err = Analyze(prices, btcEth, 1000, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if r.Profitable() {
		t.Fatalf("want unprofitable result, got forward %v and reverse %v", r.Forward, r.Reverse)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	prices := map[string]decimal.Decimal{
		"BTC/USDT": decimal.NewFromInt(16000),
		"ETH/USDT": decimal.NewFromInt(1200),
	}
	if _, err := Analyze(prices, btcEth, 1000, 0.001); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist for a missing price, got %v", err)
	}

	prices["ETH/BTC"] = decimal.Zero
	if _, err := Analyze(prices, btcEth, 1000, 0.001); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid for a zero price, got %v", err)
	}

	prices["ETH/BTC"] = decimal.RequireFromString("0.077")
	if _, err := Analyze(prices, btcEth, 0, 0.001); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid for a zero amount, got %v", err)
	}
	if _, err := Analyze(prices, btcEth, 1000, 1); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid for a full fee, got %v", err)
	}

	bad := []Triangle{
		{AB: "BTC/USDT", BC: "ETH/EUR", CA: "ETH/BTC"},
		{AB: "BTC/USDT", BC: "ETH/USDT", CA: "BTC/ETH"},
		{AB: "BTCUSDT", BC: "ETH/USDT", CA: "ETH/BTC"},
	}
	for _, tr := range bad {
		if _, _, _, err := tr.Check(); !errors.Is(err, os.ErrInvalid) {
			t.Fatalf("triangle %s: want ErrInvalid, got %v", tr, err)
		}
	}
}
