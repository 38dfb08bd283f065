// Copyright (c) 2026 BVK Chaitanya

package coinbase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/bvk/arbit/gobs"
	"github.com/bvk/arbit/timerange"
	"github.com/shopspring/decimal"
)

type CandleGranularity time.Duration

const (
	OneMinuteCandle     = CandleGranularity(time.Minute)
	FiveMinuteCandle    = CandleGranularity(5 * time.Minute)
	FifteenMinuteCandle = CandleGranularity(15 * time.Minute)
	OneHourCandle       = CandleGranularity(time.Hour)
	SixHourCandle       = CandleGranularity(6 * time.Hour)
	OneDayCandle        = CandleGranularity(24 * time.Hour)
)

// MaxCandles is the max number of candles returned in one response.
const MaxCandles = 300

func (g CandleGranularity) Duration() time.Duration {
	return time.Duration(g)
}

func (g CandleGranularity) String() string {
	switch g {
	case OneMinuteCandle:
		return "1m"
	case FiveMinuteCandle:
		return "5m"
	case FifteenMinuteCandle:
		return "15m"
	case OneHourCandle:
		return "1h"
	case SixHourCandle:
		return "6h"
	case OneDayCandle:
		return "1d"
	}
	return time.Duration(g).String()
}

// ParseGranularity parses names like "1m", "1h" or "1d" into a supported
// candle granularity.
func ParseGranularity(s string) (CandleGranularity, error) {
	for _, g := range []CandleGranularity{OneMinuteCandle, FiveMinuteCandle, FifteenMinuteCandle, OneHourCandle, SixHourCandle, OneDayCandle} {
		if s == g.String() {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unsupported candle granularity %q: %w", s, os.ErrInvalid)
}

// ProductID converts a BASE/QUOTE symbol into a coinbase product id.
func ProductID(symbol string) string {
	return strings.ReplaceAll(symbol, "/", "-")
}

// GetCandles returns at most MaxCandles candles starting from the given time,
// sorted by the start time.
func (c *Client) GetCandles(ctx context.Context, productID string, from time.Time, granularity CandleGranularity) ([]*gobs.Candle, error) {
	if _, err := ParseGranularity(granularity.String()); err != nil {
		return nil, err
	}
	end := from.Add((MaxCandles - 1) * granularity.Duration())

	values := make(url.Values)
	values.Set("granularity", fmt.Sprintf("%d", int64(granularity.Duration()/time.Second)))
	values.Set("start", from.UTC().Format(time.RFC3339))
	values.Set("end", end.UTC().Format(time.RFC3339))

	base, err := url.Parse(c.opts.RestURL)
	if err != nil {
		return nil, err
	}
	url := base.JoinPath("products", productID, "candles")
	url.RawQuery = values.Encode()

	// Each row is [time, low, high, open, close, volume].
	var rows [][]decimal.Decimal
	if err := c.getJSON(ctx, url, &rows); err != nil {
		return nil, fmt.Errorf("could not http-get product candles %q: %w", productID, err)
	}

	cs := make([]*gobs.Candle, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("candle row %d of %q has %d fields: %w", i, productID, len(row), os.ErrInvalid)
		}
		cs = append(cs, &gobs.Candle{
			StartTime: time.Unix(row[0].IntPart(), 0).UTC(),
			Duration:  granularity.Duration(),
			Low:       row[1],
			High:      row[2],
			Open:      row[3],
			Close:     row[4],
			Volume:    row[5],
		})
	}
	slices.SortFunc(cs, func(a, b *gobs.Candle) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return cs, nil
}

// GetCandlesRange fetches all candles that start inside the range, one page
// at a time.
func (c *Client) GetCandlesRange(ctx context.Context, productID string, r *timerange.Range, granularity CandleGranularity) ([]*gobs.Candle, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}
	var result []*gobs.Candle
	for since := r.Begin; !since.After(r.End); {
		cs, err := c.GetCandles(ctx, productID, since, granularity)
		if err != nil {
			return nil, err
		}
		for _, v := range cs {
			if r.Contains(v.StartTime) {
				result = append(result, v)
			}
		}
		slog.Debug("fetched candles page", "product", productID, "since", since, "count", len(cs))

		next := since.Add(MaxCandles * granularity.Duration())
		if n := len(cs); n > 0 {
			if last := cs[n-1].StartTime.Add(granularity.Duration()); last.After(since) {
				next = last
			}
		}
		since = next
	}
	return result, nil
}
