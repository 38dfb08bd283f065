// Copyright (c) 2026 BVK Chaitanya

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bvk/arbit/triangle"
	"github.com/google/go-cmp/cmp"
)

const testConfig = `
symbols = ["BTC/USD", "ETH/USD", "ETH/BTC", "SOL/USD", "SOL/BTC"]
source = "USD"
trading_fee = 0.004
interval = "15m"
granularity = "15m"
workers = 2

[coinbase]
requests_per_second = 3
retry_interval = "2s"

[[triangles]]
ab = "BTC/USD"
bc = "ETH/USD"
ca = "ETH/BTC"

[[triangles]]
ab = "BTC/USD"
bc = "SOL/USD"
ca = "SOL/BTC"
`

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "arbit.toml")
	if err := os.WriteFile(file, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("want valid defaults, got %v", err)
	}
	if v := cfg.CoinbaseOptions(); v.RetryInterval != time.Second || v.RequestsPerSecond != 5 {
		t.Fatalf("want default coinbase options, got %+v", v)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"BTC/USD", "ETH/USD", "ETH/BTC", "SOL/USD", "SOL/BTC"}, cfg.Symbols); diff != "" {
		t.Fatalf("symbols mismatch (-want +got):\n%s", diff)
	}
	want := []triangle.Triangle{
		{AB: "BTC/USD", BC: "ETH/USD", CA: "ETH/BTC"},
		{AB: "BTC/USD", BC: "SOL/USD", CA: "SOL/BTC"},
	}
	if diff := cmp.Diff(want, cfg.Triangles); diff != "" {
		t.Fatalf("triangles mismatch (-want +got):\n%s", diff)
	}
	if cfg.Interval.Duration != 15*time.Minute {
		t.Fatalf("want 15m interval, got %v", cfg.Interval.Duration)
	}
	if cfg.TradingFee != 0.004 {
		t.Fatalf("want fee 0.004, got %v", cfg.TradingFee)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Exchange != "coinbase" || cfg.Coinbase.RetryCount != 3 {
		t.Fatalf("want default exchange and retry count, got %q and %d", cfg.Exchange, cfg.Coinbase.RetryCount)
	}
	if cfg.Coinbase.RetryInterval.Duration != 2*time.Second || cfg.Coinbase.RequestsPerSecond != 3 {
		t.Fatalf("want coinbase overrides from the file, got %+v", cfg.Coinbase)
	}

	if _, err := Load(writeConfig(t, "symbol = [\"BTC/USD\"]\n")); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid for an unknown key, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("want error for a missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ARBIT_SYMBOLS", "BTC/EUR, EUR/USD ,BTC/USD")
	t.Setenv("ARBIT_SOURCE", "EUR")
	t.Setenv("ARBIT_TRADING_FEE", "0.002")
	t.Setenv("ARBIT_INTERVAL", "5m")
	t.Setenv("ARBIT_WORKERS", "not-a-number")

	cfg, err := Load(writeConfig(t, testConfig))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"BTC/EUR", "EUR/USD", "BTC/USD"}, cfg.Symbols); diff != "" {
		t.Fatalf("symbols mismatch (-want +got):\n%s", diff)
	}
	if cfg.Source != "EUR" || cfg.TradingFee != 0.002 || cfg.Interval.Duration != 5*time.Minute {
		t.Fatalf("want env overrides, got source %q fee %v interval %v", cfg.Source, cfg.TradingFee, cfg.Interval.Duration)
	}
	// Unparsable values are ignored.
	if cfg.Workers != 2 {
		t.Fatalf("want workers from the file, got %d", cfg.Workers)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Symbols = []string{"BTCUSD", "ETH/USD"}
	cfg.Source = "XRP"
	cfg.TradingFee = 1
	cfg.Granularity = "2h"
	cfg.Workers = 0
	cfg.LogLevel = "verbose"
	cfg.Triangles = append(cfg.Triangles, triangle.Triangle{AB: "A/B", BC: "C/D", CA: "C/A"})

	err := cfg.Validate()
	if !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
	for _, key := range []string{"symbols:", "source:", "trading_fee:", "granularity:", "workers:", "log_level:", "triangles:"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("want %q in the validation error, got %v", key, err)
		}
	}
}
