// Package report computes aggregate and derived performance tables
// from normalized blur benchmark runs: per-configuration statistics,
// speedup and parallel efficiency against a per-(image, radius)
// baseline, and condensed summary rows for rendering and export.
package report

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/blur-lab/go-blurbench/runs"
)

// zCI95 is the normal-approximation z value for a 95% confidence
// interval on a sample mean.
const zCI95 = 1.96

// ErrEmptyInput is returned when aggregation is asked to summarize
// zero run records. An empty table would be indistinguishable from a
// successful run, so this fails loudly instead.
var ErrEmptyInput = errors.New("no run records to aggregate")

// GroupKey identifies one benchmark configuration.
type GroupKey struct {
	Image   string
	Radius  int
	Engine  runs.Engine
	Threads int
}

// MetricStats holds the aggregate statistics of one numeric metric
// within a group. Std is the sample standard deviation (zero for a
// single observation) and CI95 the 95% confidence half-width of the
// mean.
type MetricStats struct {
	Mean float64
	Std  float64
	CI95 float64
}

// AggregateRecord is the statistics of one (image, radius, engine,
// threads) group. A metric pointer is nil when the group had no
// present values for that metric.
type AggregateRecord struct {
	Key  GroupKey
	Runs int

	Elapsed *MetricStats
	User    *MetricStats
	Sys     *MetricStats
	MaxRSS  *MetricStats
	CPUUtil *MetricStats
}

// Aggregate groups records by (image, radius, engine, threads) and
// computes per-metric statistics over the present values of each
// group. Runs counts every record in the group, present or not.
// The output is sorted by key so repeated runs produce identical
// tables.
func Aggregate(records []runs.RunRecord) ([]AggregateRecord, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	type samples struct {
		n       int
		elapsed []float64
		user    []float64
		sys     []float64
		rss     []float64
		cpu     []float64
	}

	groups := make(map[GroupKey]*samples)

	for _, rec := range records {
		key := GroupKey{
			Image:   rec.Image,
			Radius:  rec.Radius,
			Engine:  rec.Engine,
			Threads: rec.Threads,
		}
		g := groups[key]
		if g == nil {
			g = &samples{}
			groups[key] = g
		}
		g.n++
		g.elapsed = appendPresent(g.elapsed, rec.ElapsedS)
		g.user = appendPresent(g.user, rec.UserS)
		g.sys = appendPresent(g.sys, rec.SysS)
		g.rss = appendPresent(g.rss, rec.MaxRSSKB)
		g.cpu = appendPresent(g.cpu, rec.CPUUtilPct)
	}

	out := make([]AggregateRecord, 0, len(groups))
	for key, g := range groups {
		out = append(out, AggregateRecord{
			Key:     key,
			Runs:    g.n,
			Elapsed: metricStats(g.elapsed, g.n),
			User:    metricStats(g.user, g.n),
			Sys:     metricStats(g.sys, g.n),
			MaxRSS:  metricStats(g.rss, g.n),
			CPUUtil: metricStats(g.cpu, g.n),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return lessKey(out[i].Key, out[j].Key)
	})

	return out, nil
}

// metricStats summarizes the present values of one metric, or returns
// nil when the metric never appeared in the group. runCount is the
// full group size; the confidence interval clamps it to at least one
// sample to avoid a zero divisor.
func metricStats(values []float64, runCount int) *MetricStats {
	if len(values) == 0 {
		return nil
	}

	s := &MetricStats{Mean: stat.Mean(values, nil)}
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	s.CI95 = zCI95 * s.Std / math.Sqrt(float64(max(runCount, 1)))

	return s
}

func appendPresent(values []float64, v *float64) []float64 {
	if v == nil {
		return values
	}
	return append(values, *v)
}

func lessKey(a, b GroupKey) bool {
	if a.Image != b.Image {
		return a.Image < b.Image
	}
	if a.Radius != b.Radius {
		return a.Radius < b.Radius
	}
	if a.Engine != b.Engine {
		return a.Engine < b.Engine
	}
	return a.Threads < b.Threads
}
