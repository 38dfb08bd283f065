// Copyright (c) 2026 BVK Chaitanya

package cmdutil

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bvk/arbit/config"
)

// ConfigFlags selects the configuration file and overrides a few commonly
// changed settings from the command line.
type ConfigFlags struct {
	configPath string

	dataDir  string
	logLevel string
	source   string
	fee      float64
	symbols  string
}

func (f *ConfigFlags) SetFlags(fset *flag.FlagSet) {
	fset.StringVar(&f.configPath, "config", "", "Path to a TOML configuration file")
	fset.StringVar(&f.dataDir, "data-dir", "", "Path to the database directory")
	fset.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn or error)")
	fset.StringVar(&f.source, "source", "", "Source asset for the cycle search")
	fset.Float64Var(&f.fee, "fee", -1, "Trading fee fraction charged on every trade")
	fset.StringVar(&f.symbols, "symbols", "", "Comma separated list of BASE/QUOTE symbols")
}

// Config loads the configuration file, applies the command line overrides,
// validates the result and installs the logger.
func (f *ConfigFlags) Config() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.dataDir != "" {
		cfg.DataDir = f.dataDir
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.source != "" {
		cfg.Source = f.source
	}
	if f.fee >= 0 {
		cfg.TradingFee = f.fee
	}
	if f.symbols != "" {
		cfg.Symbols = nil
		for _, s := range strings.Split(f.symbols, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.Symbols = append(cfg.Symbols, s)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := SetupLogging(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogging installs a text handler on stderr as the default logger.
func SetupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("could not parse log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})))
	return nil
}
