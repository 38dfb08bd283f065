// Copyright (c) 2026 BVK Chaitanya

// Package coinbase implements a client for the public (unauthenticated)
// historical candles endpoint of the Coinbase Exchange.
package coinbase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bvk/arbit/ctxutil"
	"golang.org/x/time/rate"
)

type Client struct {
	opts Options

	client *http.Client

	limiter *rate.Limiter
}

// New creates a client for the coinbase public market data api.
func New(opts *Options) (*Client, error) {
	if opts == nil {
		opts = new(Options)
	}
	opts.setDefaults()

	if _, err := url.Parse(opts.RestURL); err != nil {
		return nil, fmt.Errorf("could not parse rest url %q: %w", opts.RestURL, err)
	}

	c := &Client{
		opts: *opts,
		client: &http.Client{
			Timeout: opts.HttpClientTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
	}
	return c, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *Client) getJSON(ctx context.Context, url *url.URL, result interface{}) error {
	urlStr := url.String()
	for retry := 0; ; retry++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
		if err != nil {
			slog.Error("could not create http get request with context", "url", urlStr, "err", err)
			return err
		}
		req.Header.Add("Accept", "application/json")
		req.Header.Add("User-Agent", "arbit")

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		at := time.Now()
		resp, err := c.client.Do(req)
		latency := time.Since(at)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				slog.Error("could not do http client request", "url", urlStr, "err", err)
			}
			return err
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("could not read response body: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusBadGateway {
			if retry >= c.opts.RetryCount {
				return fmt.Errorf("http GET returned %d after %d retries", resp.StatusCode, retry)
			}
			slog.Warn("get request is throttled (retrying after timeout)", "status", resp.StatusCode, "retry", retry+1)
			if err := ctxutil.Sleep(ctx, c.opts.RetryInterval); err != nil {
				return err
			}
			continue
		}
		if resp.StatusCode != http.StatusOK {
			slog.Error("http GET is unsuccessful", "status", resp.StatusCode, "url", urlStr, "response", string(data))
			return fmt.Errorf("http GET returned %d", resp.StatusCode)
		}

		slog.Debug("Coinbase GET", "url", urlStr, "latency", latency, "bytes", len(data))
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(result); err != nil {
			slog.Error("could not decode response to json", "err", err)
			return err
		}
		return nil
	}
}
