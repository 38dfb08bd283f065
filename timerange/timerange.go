// Copyright (c) 2026 BVK Chaitanya

// Package timerange defines closed time intervals used to select candle
// timestamps.
package timerange

import (
	"fmt"
	"os"
	"time"
)

// Range is the closed interval [Begin, End].
type Range struct {
	Begin, End time.Time
}

func (r *Range) String() string {
	return fmt.Sprintf("[%s, %s]", r.Begin.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

func (r *Range) Equal(v *Range) bool {
	return r.Begin.Equal(v.Begin) && r.End.Equal(v.End)
}

// Check returns an error if either end is zero or the range is inverted.
func (r *Range) Check() error {
	if r.Begin.IsZero() || r.End.IsZero() {
		return fmt.Errorf("time range %s must have both ends: %w", r, os.ErrInvalid)
	}
	if r.End.Before(r.Begin) {
		return fmt.Errorf("time range end is before the begin %s: %w", r, os.ErrInvalid)
	}
	return nil
}

func (r *Range) Contains(v time.Time) bool {
	return !v.Before(r.Begin) && !v.After(r.End)
}

func (r *Range) Duration() time.Duration {
	return r.End.Sub(r.Begin)
}

// Steps returns the timestamps Begin, Begin+d, Begin+2d, ... that are not
// after End.
func (r *Range) Steps(d time.Duration) []time.Time {
	if d <= 0 || r.End.Before(r.Begin) {
		return nil
	}
	var steps []time.Time
	for t := r.Begin; !t.After(r.End); t = t.Add(d) {
		steps = append(steps, t)
	}
	return steps
}

// Days returns the start of every UTC day that overlaps the range.
func (r *Range) Days() []time.Time {
	if r.End.Before(r.Begin) {
		return nil
	}
	var days []time.Time
	last := DayOf(r.End)
	for d := DayOf(r.Begin); !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayOf returns the start of the UTC day holding the timestamp.
func DayOf(v time.Time) time.Time {
	v = v.UTC()
	return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse parses a timestamp in RFC3339, "2006-01-02T15:04" or "2006-01-02"
// format. Timestamps without a zone are in UTC.
func Parse(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return v, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse timestamp %q: %w", s, os.ErrInvalid)
}

// ParseRange parses both ends of a range. An empty end means the begin plus
// the default duration.
func ParseRange(begin, end string, defaultDuration time.Duration) (*Range, error) {
	b, err := Parse(begin)
	if err != nil {
		return nil, err
	}
	r := &Range{Begin: b, End: b.Add(defaultDuration)}
	if end != "" {
		e, err := Parse(end)
		if err != nil {
			return nil, err
		}
		r.End = e
	}
	if err := r.Check(); err != nil {
		return nil, err
	}
	return r, nil
}
