// Copyright (c) 2026 BVK Chaitanya

package timerange

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSteps(t *testing.T) {
	begin := time.Date(2022, 11, 19, 21, 0, 0, 0, time.UTC)
	r := &Range{Begin: begin, End: begin.Add(3 * time.Hour)}

	want := []time.Time{begin, begin.Add(time.Hour), begin.Add(2 * time.Hour), begin.Add(3 * time.Hour)}
	if diff := cmp.Diff(want, r.Steps(time.Hour)); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
	if v := r.Steps(2 * time.Hour); len(v) != 2 {
		t.Fatalf("want 2 steps, got %v", v)
	}
	if v := r.Steps(0); v != nil {
		t.Fatalf("want no steps for zero interval, got %v", v)
	}

	single := &Range{Begin: begin, End: begin}
	if v := single.Steps(time.Minute); len(v) != 1 || !v[0].Equal(begin) {
		t.Fatalf("want a single step, got %v", v)
	}
}

func TestDays(t *testing.T) {
	r := &Range{
		Begin: time.Date(2022, 11, 19, 21, 0, 0, 0, time.UTC),
		End:   time.Date(2022, 11, 21, 1, 0, 0, 0, time.UTC),
	}
	want := []time.Time{
		time.Date(2022, 11, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 11, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 11, 21, 0, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, r.Days()); diff != "" {
		t.Fatalf("days mismatch (-want +got):\n%s", diff)
	}
	if !r.Contains(r.End) || !r.Contains(r.Begin) || r.Contains(r.End.Add(time.Second)) {
		t.Fatalf("want closed interval semantics")
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2022-11-19T21:00", "", 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	want := &Range{
		Begin: time.Date(2022, 11, 19, 21, 0, 0, 0, time.UTC),
		End:   time.Date(2022, 11, 20, 21, 0, 0, 0, time.UTC),
	}
	if !r.Equal(want) {
		t.Fatalf("want %s, got %s", want, r)
	}

	if _, err := ParseRange("2022-11-20", "2022-11-19", 0); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid for an inverted range, got %v", err)
	}
	if _, err := ParseRange("yesterday", "", time.Hour); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid for a bad timestamp, got %v", err)
	}
	if v, err := Parse("2022-11-19T21:00:00+05:30"); err != nil || v.UTC().Hour() != 15 {
		t.Fatalf("want 15:30 UTC, got %v %v", v, err)
	}
}
