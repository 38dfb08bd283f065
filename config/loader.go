// Copyright (c) 2026 BVK Chaitanya

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads the TOML configuration file at path over the defaults, applies
// ARBIT_* environment variable overrides and returns the result. An empty
// path uses only the defaults and the environment. The returned Config is
// not validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("could not decode config file %q: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config file %q has unknown keys %v: %w", path, undecoded, os.ErrInvalid)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStringSlice(&cfg.Symbols, "ARBIT_SYMBOLS")
	setStr(&cfg.Source, "ARBIT_SOURCE")
	setFloat64(&cfg.TradingFee, "ARBIT_TRADING_FEE")
	setStr(&cfg.Exchange, "ARBIT_EXCHANGE")
	setStr(&cfg.Granularity, "ARBIT_GRANULARITY")
	setDuration(&cfg.Interval, "ARBIT_INTERVAL")
	setInt(&cfg.Workers, "ARBIT_WORKERS")
	setStr(&cfg.DataDir, "ARBIT_DATA_DIR")
	setStr(&cfg.LogLevel, "ARBIT_LOG_LEVEL")
	setFloat64(&cfg.MinProfitRatio, "ARBIT_MIN_PROFIT_RATIO")
	setFloat64(&cfg.TriangleAmount, "ARBIT_TRIANGLE_AMOUNT")

	setStr(&cfg.Coinbase.RestURL, "ARBIT_COINBASE_REST_URL")
	setDuration(&cfg.Coinbase.HttpClientTimeout, "ARBIT_COINBASE_HTTP_CLIENT_TIMEOUT")
	setFloat64(&cfg.Coinbase.RequestsPerSecond, "ARBIT_COINBASE_REQUESTS_PER_SECOND")
	setInt(&cfg.Coinbase.RetryCount, "ARBIT_COINBASE_RETRY_COUNT")
	setDuration(&cfg.Coinbase.RetryInterval, "ARBIT_COINBASE_RETRY_INTERVAL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
