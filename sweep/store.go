// Copyright (c) 2026 BVK Chaitanya

package sweep

import (
	"context"
	"fmt"
	"path"
	"slices"

	"github.com/bvk/arbit/gobs"
	"github.com/bvk/arbit/kvutil"
	"github.com/bvk/arbit/triangle"
	"github.com/bvkgo/kv"
	"github.com/google/uuid"
)

const Keyspace = "/sweeps/"

func reportKey(id uuid.UUID) string {
	return path.Join(Keyspace, id.String())
}

func legGob(l *triangle.Leg) gobs.TriangleLeg {
	return gobs.TriangleLeg{
		Path:    slices.Clone(l.Path),
		Amounts: slices.Clone(l.Amounts),
		Final:   l.Final,
	}
}

func legFromGob(amount float64, g *gobs.TriangleLeg) *triangle.Leg {
	return &triangle.Leg{
		Path:    g.Path,
		Amounts: g.Amounts,
		Final:   g.Final,
		Profit:  g.Final - amount,
		Percent: (g.Final - amount) / amount * 100,
	}
}

func (r *Report) gobState() *gobs.SweepReport {
	gv := &gobs.SweepReport{
		RunID:      r.RunID.String(),
		CreateTime: r.CreateTime,
		Symbols:    r.Symbols,
		Source:     r.Source,
		Fee:        r.Fee,
		Begin:      r.Begin,
		End:        r.End,
		Interval:   r.Interval,
		Snapshots:  r.Snapshots,
		Skipped:    r.Skipped,
	}
	for _, v := range r.Opportunities {
		gop := &gobs.Opportunity{
			Time:        v.Time,
			Cycle:       v.Cycle,
			ProfitRatio: v.ProfitRatio,
		}
		for _, t := range v.Triangles {
			gop.Triangles = append(gop.Triangles, &gobs.TriangleResult{
				AB:      t.Triangle.AB,
				BC:      t.Triangle.BC,
				CA:      t.Triangle.CA,
				Amount:  t.Amount,
				Forward: legGob(t.Forward),
				Reverse: legGob(t.Reverse),
			})
		}
		gv.Opportunities = append(gv.Opportunities, gop)
	}
	return gv
}

func reportFromGob(gv *gobs.SweepReport) (*Report, error) {
	id, err := uuid.Parse(gv.RunID)
	if err != nil {
		return nil, fmt.Errorf("could not parse run id %q: %w", gv.RunID, err)
	}
	r := &Report{
		RunID:      id,
		CreateTime: gv.CreateTime,
		Symbols:    gv.Symbols,
		Source:     gv.Source,
		Fee:        gv.Fee,
		Begin:      gv.Begin,
		End:        gv.End,
		Interval:   gv.Interval,
		Snapshots:  gv.Snapshots,
		Skipped:    gv.Skipped,
	}
	for _, gop := range gv.Opportunities {
		v := &Opportunity{
			Time:        gop.Time,
			Cycle:       gop.Cycle,
			ProfitRatio: gop.ProfitRatio,
		}
		for _, t := range gop.Triangles {
			v.Triangles = append(v.Triangles, &triangle.Result{
				Triangle: triangle.Triangle{AB: t.AB, BC: t.BC, CA: t.CA},
				Amount:   t.Amount,
				Fee:      gv.Fee,
				Forward:  legFromGob(t.Amount, &t.Forward),
				Reverse:  legFromGob(t.Amount, &t.Reverse),
			})
		}
		r.Opportunities = append(r.Opportunities, v)
	}
	return r, nil
}

// SaveReport saves the report under its run id.
func SaveReport(ctx context.Context, db kv.Database, r *Report) error {
	if err := kvutil.SetDB(ctx, db, reportKey(r.RunID), r.gobState()); err != nil {
		return fmt.Errorf("could not save sweep report %s: %w", r.RunID, err)
	}
	return nil
}

// LoadReport loads the report with the given run id. Returns an error
// wrapping os.ErrNotExist if there is no such report.
func LoadReport(ctx context.Context, db kv.Database, id uuid.UUID) (*Report, error) {
	gv, err := kvutil.GetDB[gobs.SweepReport](ctx, db, reportKey(id))
	if err != nil {
		return nil, fmt.Errorf("could not load sweep report %s: %w", id, err)
	}
	return reportFromGob(gv)
}

// ListReports returns all saved reports ordered by the creation time.
func ListReports(ctx context.Context, db kv.Database) ([]*Report, error) {
	var reports []*Report
	collect := func(ctx context.Context, _ kv.Reader, key string, gv *gobs.SweepReport) error {
		r, err := reportFromGob(gv)
		if err != nil {
			return fmt.Errorf("could not decode sweep report at %q: %w", key, err)
		}
		reports = append(reports, r)
		return nil
	}
	begin, end := kvutil.PathRange(Keyspace)
	if err := kvutil.AscendDB(ctx, db, begin, end, collect); err != nil {
		return nil, err
	}
	slices.SortStableFunc(reports, func(a, b *Report) int {
		return a.CreateTime.Compare(b.CreateTime)
	})
	return reports, nil
}
