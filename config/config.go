// Copyright (c) 2026 BVK Chaitanya

// Package config defines the configuration file format for the arbit
// commands. Fields are populated from a TOML file and then optionally
// overridden by ARBIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/bvk/arbit/coinbase"
	"github.com/bvk/arbit/snapshot"
	"github.com/bvk/arbit/triangle"
)

type Config struct {
	// Symbols lists the BASE/QUOTE trading pairs that make the rate graph.
	Symbols []string `toml:"symbols"`

	// Source is the asset the negative cycle search starts from.
	Source string `toml:"source"`

	// TradingFee is the fraction charged on every trade, in [0,1).
	TradingFee float64 `toml:"trading_fee"`

	// Exchange names the candles keyspace in the database.
	Exchange string `toml:"exchange"`

	// Granularity is the candle size, one of 1m, 5m, 15m, 1h, 6h or 1d.
	Granularity string `toml:"granularity"`

	// Interval is the distance between evaluated timestamps.
	Interval duration `toml:"interval"`

	Workers int `toml:"workers"`

	DataDir string `toml:"data_dir"`

	LogLevel string `toml:"log_level"`

	// MinProfitRatio is the smallest cycle profit ratio that is reported.
	MinProfitRatio float64 `toml:"min_profit_ratio"`

	// TriangleAmount is the input amount for the triangle paths.
	TriangleAmount float64 `toml:"triangle_amount"`

	Triangles []triangle.Triangle `toml:"triangles"`

	Coinbase CoinbaseConfig `toml:"coinbase"`
}

type CoinbaseConfig struct {
	RestURL           string   `toml:"rest_url"`
	HttpClientTimeout duration `toml:"http_client_timeout"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	RetryCount        int      `toml:"retry_count"`
	RetryInterval     duration `toml:"retry_interval"`
}

// duration wraps time.Duration so the TOML decoder can parse strings like
// "1h" or "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the configuration used when no file is given. Symbols and
// fee are the BTC/ETH/USDT triangle with a 0.1% fee.
func Defaults() Config {
	return Config{
		Symbols:        []string{"BTC/USDT", "ETH/USDT", "ETH/BTC"},
		Source:         "USDT",
		TradingFee:     0.001,
		Exchange:       "coinbase",
		Granularity:    "1h",
		Interval:       duration{time.Hour},
		Workers:        4,
		DataDir:        "arbit-data",
		LogLevel:       "info",
		MinProfitRatio: 1,
		TriangleAmount: 1000,
		Triangles: []triangle.Triangle{
			{AB: "BTC/USDT", BC: "ETH/USDT", CA: "ETH/BTC"},
		},
		Coinbase: CoinbaseConfig{
			RestURL:           coinbase.RestURL,
			HttpClientTimeout: duration{10 * time.Second},
			RequestsPerSecond: 5,
			RetryCount:        3,
			RetryInterval:     duration{time.Second},
		},
	}
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Symbols) == 0 {
		errs = append(errs, errors.New("symbols: at least one symbol is required"))
	}
	assets := make(map[string]bool)
	for _, s := range c.Symbols {
		base, quote, err := snapshot.ParseSymbol(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("symbols: %w", err))
			continue
		}
		assets[base], assets[quote] = true, true
	}
	if c.Source == "" {
		errs = append(errs, errors.New("source: must not be empty"))
	} else if len(assets) > 0 && !assets[c.Source] {
		errs = append(errs, fmt.Errorf("source: %q is not an asset of any symbol", c.Source))
	}
	if c.TradingFee < 0 || c.TradingFee >= 1 {
		errs = append(errs, fmt.Errorf("trading_fee: must be in [0,1), got %v", c.TradingFee))
	}
	if c.Exchange == "" {
		errs = append(errs, errors.New("exchange: must not be empty"))
	}
	if _, err := coinbase.ParseGranularity(c.Granularity); err != nil {
		errs = append(errs, fmt.Errorf("granularity: %w", err))
	}
	if c.Interval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("interval: must be positive, got %v", c.Interval.Duration))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers: must be >= 1, got %d", c.Workers))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir: must not be empty"))
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q (valid: debug, info, warn, error)", c.LogLevel))
	}
	if c.MinProfitRatio < 1 {
		errs = append(errs, fmt.Errorf("min_profit_ratio: must be >= 1, got %v", c.MinProfitRatio))
	}
	if c.TriangleAmount <= 0 {
		errs = append(errs, fmt.Errorf("triangle_amount: must be positive, got %v", c.TriangleAmount))
	}
	for _, t := range c.Triangles {
		if _, _, _, err := t.Check(); err != nil {
			errs = append(errs, fmt.Errorf("triangles: %w", err))
		}
	}
	if c.Coinbase.RequestsPerSecond <= 0 {
		errs = append(errs, errors.New("coinbase: requests_per_second must be positive"))
	}
	if c.Coinbase.RetryCount < 0 {
		errs = append(errs, errors.New("coinbase: retry_count cannot be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config validation failed: %w: %w", os.ErrInvalid, err)
	}
	return nil
}

// CoinbaseOptions returns the coinbase client options.
func (c *Config) CoinbaseOptions() *coinbase.Options {
	return &coinbase.Options{
		RestURL:           c.Coinbase.RestURL,
		HttpClientTimeout: c.Coinbase.HttpClientTimeout.Duration,
		RequestsPerSecond: c.Coinbase.RequestsPerSecond,
		RetryCount:        c.Coinbase.RetryCount,
		RetryInterval:     c.Coinbase.RetryInterval.Duration,
	}
}
