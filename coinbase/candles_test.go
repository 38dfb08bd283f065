// Copyright (c) 2026 BVK Chaitanya

package coinbase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bvk/arbit/timerange"
	"github.com/google/go-cmp/cmp"
)

// candleServer serves hourly candles with close price equal to the hour of
// the day, in descending order like the real endpoint.
func candleServer(t *testing.T, throttle int32) (*httptest.Server, *atomic.Int32) {
	var requests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/products/BTC-USD/candles", func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= throttle {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		q := r.URL.Query()
		if v := q.Get("granularity"); v != "3600" {
			t.Errorf("want granularity 3600, got %q", v)
		}
		start, err := time.Parse(time.RFC3339, q.Get("start"))
		if err != nil {
			t.Errorf("could not parse start: %v", err)
		}
		end, err := time.Parse(time.RFC3339, q.Get("end"))
		if err != nil {
			t.Errorf("could not parse end: %v", err)
		}
		var rows [][]float64
		for ts := end; !ts.Before(start); ts = ts.Add(-time.Hour) {
			h := float64(ts.Hour())
			rows = append(rows, []float64{float64(ts.Unix()), h - 1, h + 1, h, h, 10})
		}
		json.NewEncoder(w).Encode(rows)
	})
	return httptest.NewServer(mux), &requests
}

func TestGetCandles(t *testing.T) {
	ctx := context.Background()
	server, _ := candleServer(t, 0)
	defer server.Close()

	c, err := New(&Options{RestURL: server.URL, RequestsPerSecond: 1000})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	from := time.Date(2022, 11, 19, 0, 0, 0, 0, time.UTC)
	cs, err := c.GetCandles(ctx, "BTC-USD", from, OneHourCandle)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != MaxCandles {
		t.Fatalf("want %d candles, got %d", MaxCandles, len(cs))
	}
	for i, v := range cs {
		if want := from.Add(time.Duration(i) * time.Hour); !v.StartTime.Equal(want) {
			t.Fatalf("candle %d: want start %v, got %v", i, want, v.StartTime)
		}
		if want := strconv.Itoa(v.StartTime.Hour()); v.Close.String() != want {
			t.Fatalf("candle %d: want close %s, got %s", i, want, v.Close)
		}
	}

	if _, err := c.GetCandles(ctx, "BTC-USD", from, CandleGranularity(2*time.Hour)); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid for an unsupported granularity, got %v", err)
	}
	if _, err := c.GetCandles(ctx, "ETH-USD", from, OneHourCandle); err == nil {
		t.Fatalf("want error for an unknown product")
	}
}

func TestGetCandlesRange(t *testing.T) {
	ctx := context.Background()
	server, requests := candleServer(t, 2)
	defer server.Close()

	c, err := New(&Options{RestURL: server.URL, RequestsPerSecond: 1000, RetryInterval: time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	begin := time.Date(2022, 11, 1, 0, 0, 0, 0, time.UTC)
	r := &timerange.Range{Begin: begin, End: begin.Add(499 * time.Hour)}
	cs, err := c.GetCandlesRange(ctx, "BTC-USD", r, OneHourCandle)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 500 {
		t.Fatalf("want 500 candles, got %d", len(cs))
	}
	if !cs[0].StartTime.Equal(r.Begin) || !cs[len(cs)-1].StartTime.Equal(r.End) {
		t.Fatalf("want candles from %v to %v, got %v to %v", r.Begin, r.End, cs[0].StartTime, cs[len(cs)-1].StartTime)
	}
	// Two throttled requests and two pages.
	if v := requests.Load(); v != 4 {
		t.Fatalf("want 4 requests, got %d", v)
	}
}

func TestThrottleRetryLimit(t *testing.T) {
	ctx := context.Background()
	server, _ := candleServer(t, 100)
	defer server.Close()

	c, err := New(&Options{RestURL: server.URL, RequestsPerSecond: 1000, RetryCount: 2, RetryInterval: time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetCandles(ctx, "BTC-USD", time.Now(), OneHourCandle); err == nil {
		t.Fatalf("want error after retries are exhausted")
	}
}

func TestGranularity(t *testing.T) {
	var names []string
	for _, s := range []string{"1m", "5m", "15m", "1h", "6h", "1d"} {
		g, err := ParseGranularity(s)
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, g.String())
	}
	if diff := cmp.Diff([]string{"1m", "5m", "15m", "1h", "6h", "1d"}, names); diff != "" {
		t.Fatalf("granularity names mismatch (-want +got):\n%s", diff)
	}
	if _, err := ParseGranularity("2h"); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
	if v := ProductID("BTC/USDT"); v != "BTC-USDT" {
		t.Fatalf("want BTC-USDT, got %s", v)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := New(&Options{RestURL: "://no-scheme"}); err == nil {
		t.Fatalf("want error for an unparsable rest url")
	}
	c, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if c.opts.RestURL != RestURL {
		t.Fatalf("want default rest url %q, got %q", RestURL, c.opts.RestURL)
	}
}
