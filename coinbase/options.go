// Copyright (c) 2026 BVK Chaitanya

package coinbase

import "time"

var RestURL = "https://api.exchange.coinbase.com"

type Options struct {
	// RestURL is the base url for the public market data endpoints.
	RestURL string

	// Timeout to use for the HTTP requests.
	HttpClientTimeout time.Duration

	// RequestsPerSecond limits the request rate. Coinbase allows up to 10 public
	// requests per second from an ip address.
	RequestsPerSecond float64

	// RetryCount is the number of times a throttled request is retried.
	RetryCount int

	// RetryInterval is the wait time before retrying a throttled request.
	RetryInterval time.Duration
}

func (v *Options) setDefaults() {
	if v.RestURL == "" {
		v.RestURL = RestURL
	}
	if v.HttpClientTimeout == 0 {
		v.HttpClientTimeout = 10 * time.Second
	}
	if v.RequestsPerSecond == 0 {
		v.RequestsPerSecond = 5
	}
	if v.RetryCount == 0 {
		v.RetryCount = 3
	}
	if v.RetryInterval == 0 {
		v.RetryInterval = time.Second
	}
}
