// Copyright (c) 2026 BVK Chaitanya

// Package candles saves historical candles in the key-value store and serves
// closing prices from them.
package candles

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bvk/arbit/gobs"
	"github.com/bvk/arbit/kvutil"
	"github.com/bvk/arbit/timerange"
	"github.com/bvkgo/kv"
	"github.com/shopspring/decimal"
)

const Keyspace = "/candles/"

// Datastore keeps candles for one exchange in one key per product per UTC
// day. For example, BTC/USDT candles on 2022-11-19 from coinbase are saved at
// "/candles/coinbase/BTC-USDT/2022-11-19".
type Datastore struct {
	db kv.Database

	exchange string

	mu sync.Mutex

	// dayCache maps day keys to candle close prices indexed by the unix
	// start time. A nil map records a day with no candles.
	dayCache map[string]map[int64]decimal.Decimal
}

func NewDatastore(db kv.Database, exchange string) *Datastore {
	return &Datastore{
		db:       db,
		exchange: exchange,
		dayCache: make(map[string]map[int64]decimal.Decimal),
	}
}

func (ds *Datastore) Exchange() string {
	return ds.exchange
}

func productDir(symbol string) string {
	return strings.ReplaceAll(symbol, "/", "-")
}

func (ds *Datastore) dayKey(symbol string, day time.Time) string {
	return path.Join(Keyspace, ds.exchange, productDir(symbol), timerange.DayOf(day).Format(time.DateOnly))
}

func compareStartTime(a, b *gobs.Candle) int {
	return a.StartTime.Compare(b.StartTime)
}

// SaveCandles merges the candles with the candles already saved for their
// days. Candles with a start time already saved replace the old ones.
func (ds *Datastore) SaveCandles(ctx context.Context, symbol string, candles []*gobs.Candle) error {
	kmap := make(map[string][]*gobs.Candle)
	for _, c := range candles {
		key := ds.dayKey(symbol, c.StartTime)
		kmap[key] = append(kmap[key], c)
	}

	for key, cs := range kmap {
		merge := func(old *gobs.Candles) (*gobs.Candles, error) {
			if old == nil {
				old = &gobs.Candles{ProductID: productDir(symbol)}
			}
			byTime := make(map[int64]*gobs.Candle, len(old.Candles)+len(cs))
			for _, c := range old.Candles {
				byTime[c.StartTime.Unix()] = c
			}
			for _, c := range cs {
				byTime[c.StartTime.Unix()] = c
			}
			merged := make([]*gobs.Candle, 0, len(byTime))
			for _, c := range byTime {
				merged = append(merged, c)
			}
			slices.SortFunc(merged, compareStartTime)
			old.Candles = merged
			return old, nil
		}
		if err := kvutil.UpdateDB(ctx, ds.db, key, merge); err != nil {
			return fmt.Errorf("could not save %d candles at %q: %w", len(cs), key, err)
		}

		ds.mu.Lock()
		delete(ds.dayCache, key)
		ds.mu.Unlock()
	}
	return nil
}

// LoadCandles returns the saved candles of the UTC day holding the
// timestamp. Returns os.ErrNotExist if nothing is saved for that day.
func (ds *Datastore) LoadCandles(ctx context.Context, symbol string, day time.Time) ([]*gobs.Candle, error) {
	key := ds.dayKey(symbol, day)
	value, err := kvutil.GetDB[gobs.Candles](ctx, ds.db, key)
	if err != nil {
		return nil, err
	}
	return value.Candles, nil
}

// HasDay returns true if candles are saved for the UTC day holding the
// timestamp.
func (ds *Datastore) HasDay(ctx context.Context, symbol string, day time.Time) (bool, error) {
	if _, err := ds.LoadCandles(ctx, symbol, day); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (ds *Datastore) dayPrices(ctx context.Context, symbol string, day time.Time) (map[int64]decimal.Decimal, error) {
	key := ds.dayKey(symbol, day)

	ds.mu.Lock()
	prices, ok := ds.dayCache[key]
	ds.mu.Unlock()
	if ok {
		return prices, nil
	}

	candles, err := ds.LoadCandles(ctx, symbol, day)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if len(candles) > 0 {
		prices = make(map[int64]decimal.Decimal, len(candles))
		for _, c := range candles {
			prices[c.StartTime.Unix()] = c.Close
		}
	}

	ds.mu.Lock()
	ds.dayCache[key] = prices
	ds.mu.Unlock()
	return prices, nil
}

// ClosePrice returns the close price of the candle that starts exactly at the
// given time. Returns os.ErrNotExist if there is no such candle.
func (ds *Datastore) ClosePrice(ctx context.Context, symbol string, at time.Time) (decimal.Decimal, error) {
	prices, err := ds.dayPrices(ctx, symbol, at)
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not load %s candles for %s: %w", symbol, at.Format(time.DateOnly), err)
	}
	price, ok := prices[at.Unix()]
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s candle starts at %s: %w", symbol, at.Format(time.RFC3339), os.ErrNotExist)
	}
	return price, nil
}

// Timestamps returns the start times of saved candles in the range.
func (ds *Datastore) Timestamps(ctx context.Context, symbol string, r *timerange.Range) ([]time.Time, error) {
	var stamps []time.Time
	for _, day := range r.Days() {
		candles, err := ds.LoadCandles(ctx, symbol, day)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, c := range candles {
			if r.Contains(c.StartTime) {
				stamps = append(stamps, c.StartTime)
			}
		}
	}
	return stamps, nil
}

// Products returns the product directories saved for this exchange.
func (ds *Datastore) Products(ctx context.Context) ([]string, error) {
	begin, end := kvutil.PathRange(path.Join(Keyspace, ds.exchange))
	keys, err := kvutil.Keys(ctx, ds.db, begin, end)
	if err != nil {
		return nil, fmt.Errorf("could not list candle keys: %w", err)
	}
	var products []string
	for _, key := range keys {
		product := path.Base(path.Dir(key))
		if n := len(products); n == 0 || products[n-1] != product {
			products = append(products, product)
		}
	}
	return products, nil
}
