// Copyright (c) 2026 BVK Chaitanya

package gobs

import (
	"time"
)

type TriangleLeg struct {
	Path    []string
	Amounts []float64
	Final   float64
}

type TriangleResult struct {
	AB, BC, CA string

	Amount float64

	Forward TriangleLeg
	Reverse TriangleLeg
}

type Opportunity struct {
	Time time.Time

	Cycle       []string
	ProfitRatio float64

	Triangles []*TriangleResult
}

type SweepReport struct {
	RunID      string
	CreateTime time.Time

	Symbols  []string
	Source   string
	Fee      float64
	Begin    time.Time
	End      time.Time
	Interval time.Duration

	Snapshots int
	Skipped   int

	Opportunities []*Opportunity
}
