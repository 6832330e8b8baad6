package report

import (
	"sort"

	"github.com/blur-lab/go-blurbench/runs"
)

// BaselineKey identifies the (image, radius) pair a baseline belongs
// to.
type BaselineKey struct {
	Image  string
	Radius int
}

// DerivedRecord is an AggregateRecord joined against the baseline of
// its (image, radius). The derived fields are nil when no qualifying
// baseline exists or the record has no elapsed statistics; that is a
// normal outcome, not an error.
type DerivedRecord struct {
	AggregateRecord

	BaseTime   *float64
	Speedup    *float64
	Efficiency *float64
}

// Derive left-joins every aggregate against its per-(image, radius)
// baseline and computes speedup and parallel efficiency.
//
// Baseline selection: the parallel group at one thread when it has
// elapsed statistics, otherwise the sequential group (which is always
// at one thread). Keys with neither keep nil derived fields.
func Derive(aggs []AggregateRecord) []DerivedRecord {
	baselines := make(map[BaselineKey]float64)

	for _, agg := range aggs {
		if agg.Key.Threads != 1 || agg.Elapsed == nil {
			continue
		}
		bk := BaselineKey{Image: agg.Key.Image, Radius: agg.Key.Radius}
		switch agg.Key.Engine {
		case runs.EngineParallel:
			// Parallel at one thread always wins.
			baselines[bk] = agg.Elapsed.Mean
		case runs.EngineSequential:
			if _, ok := baselines[bk]; !ok {
				baselines[bk] = agg.Elapsed.Mean
			}
		}
	}

	out := make([]DerivedRecord, 0, len(aggs))

	for _, agg := range aggs {
		d := DerivedRecord{AggregateRecord: agg}

		bk := BaselineKey{Image: agg.Key.Image, Radius: agg.Key.Radius}
		if base, ok := baselines[bk]; ok {
			bt := base
			d.BaseTime = &bt
			if agg.Elapsed != nil && agg.Elapsed.Mean > 0 {
				sp := base / agg.Elapsed.Mean
				eff := sp / float64(agg.Key.Threads)
				d.Speedup = &sp
				d.Efficiency = &eff
			}
		}

		out = append(out, d)
	}

	return out
}

// baselineOf returns the derived record acting as the baseline for
// (image, radius), preferring parallel at one thread over sequential,
// or nil when the key has no qualifying record.
func baselineOf(derived []DerivedRecord, image string, radius int) *DerivedRecord {
	var base *DerivedRecord

	for i := range derived {
		d := &derived[i]
		if d.Key.Image != image || d.Key.Radius != radius {
			continue
		}
		if d.Key.Threads != 1 || d.Elapsed == nil {
			continue
		}
		if d.Key.Engine == runs.EngineParallel || base == nil {
			base = d
		}
	}

	return base
}

// BestParallel answers the "best parallel configuration" query for one
// (image, radius): the parallel record with the minimum elapsed mean
// across all thread counts. When no parallel record exists the answer
// is the baseline itself (one thread, speedup 1.0). The second return
// is false when the key has neither.
func BestParallel(derived []DerivedRecord, image string, radius int) (DerivedRecord, bool) {
	var best *DerivedRecord

	for i := range derived {
		d := &derived[i]
		if d.Key.Image != image || d.Key.Radius != radius {
			continue
		}
		if d.Key.Engine != runs.EngineParallel || d.Elapsed == nil {
			continue
		}
		if best == nil || d.Elapsed.Mean < best.Elapsed.Mean {
			best = d
		}
	}

	if best == nil {
		best = baselineOf(derived, image, radius)
	}
	if best == nil {
		return DerivedRecord{}, false
	}

	return *best, true
}

// SummaryRow condenses one (image, radius) into its baseline and best
// parallel configuration.
type SummaryRow struct {
	Image          string
	Radius         int
	BaselineEngine runs.Engine
	BaselineTimeS  float64
	BestThreads    int
	BestTimeS      float64
	BestSpeedup    float64
}

// Summaries builds one SummaryRow per (image, radius) that has a
// baseline. Keys whose best configuration is the baseline itself
// report one thread and a speedup of 1.0. Rows are sorted by image
// then radius.
func Summaries(derived []DerivedRecord) []SummaryRow {
	seen := make(map[BaselineKey]bool)
	rows := make([]SummaryRow, 0)

	for _, d := range derived {
		bk := BaselineKey{Image: d.Key.Image, Radius: d.Key.Radius}
		if seen[bk] {
			continue
		}
		seen[bk] = true

		base := baselineOf(derived, bk.Image, bk.Radius)
		if base == nil {
			continue
		}
		best, ok := BestParallel(derived, bk.Image, bk.Radius)
		if !ok {
			continue
		}

		speedup := 1.0
		if best.Speedup != nil {
			speedup = *best.Speedup
		}

		rows = append(rows, SummaryRow{
			Image:          bk.Image,
			Radius:         bk.Radius,
			BaselineEngine: base.Key.Engine,
			BaselineTimeS:  base.Elapsed.Mean,
			BestThreads:    best.Key.Threads,
			BestTimeS:      best.Elapsed.Mean,
			BestSpeedup:    speedup,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Image != rows[j].Image {
			return rows[i].Image < rows[j].Image
		}
		return rows[i].Radius < rows[j].Radius
	})

	return rows
}
