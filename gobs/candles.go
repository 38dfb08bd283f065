// Copyright (c) 2026 BVK Chaitanya

package gobs

import (
	"time"

	"github.com/shopspring/decimal"
)

type Candle struct {
	StartTime time.Time
	Duration  time.Duration

	Low  decimal.Decimal
	High decimal.Decimal

	Open  decimal.Decimal
	Close decimal.Decimal

	Volume decimal.Decimal
}

// Candles holds all candles of a product for one UTC day, sorted by the
// start time.
type Candles struct {
	ProductID string

	Candles []*Candle
}
