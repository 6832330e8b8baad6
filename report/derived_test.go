package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blur-lab/go-blurbench/runs"
)

func agg(engine runs.Engine, image string, radius, threads int, elapsedMean float64) AggregateRecord {
	return AggregateRecord{
		Key: GroupKey{
			Image:   image,
			Radius:  radius,
			Engine:  engine,
			Threads: threads,
		},
		Runs:    1,
		Elapsed: &MetricStats{Mean: elapsedMean},
	}
}

func findDerived(t *testing.T, derived []DerivedRecord, key GroupKey) DerivedRecord {
	t.Helper()
	for _, d := range derived {
		if d.Key == key {
			return d
		}
	}
	t.Fatalf("no derived record for key %+v", key)
	return DerivedRecord{}
}

func TestDeriveBaselinePrefersParallelAtOneThread(t *testing.T) {
	derived := Derive([]AggregateRecord{
		agg(runs.EngineSequential, "lena", 2, 1, 2.0),
		agg(runs.EngineParallel, "lena", 2, 1, 1.8),
		agg(runs.EngineParallel, "lena", 2, 4, 0.6),
	})

	d := findDerived(t, derived, GroupKey{"lena", 2, runs.EngineParallel, 4})
	require.NotNil(t, d.BaseTime)
	assert.Equal(t, 1.8, *d.BaseTime, "parallel at one thread beats the sequential group")
	require.NotNil(t, d.Speedup)
	assert.InDelta(t, 3.0, *d.Speedup, 1e-12)
	require.NotNil(t, d.Efficiency)
	assert.InDelta(t, 0.75, *d.Efficiency, 1e-12)
}

func TestDeriveBaselineRecordIsUnity(t *testing.T) {
	derived := Derive([]AggregateRecord{
		agg(runs.EngineParallel, "lena", 2, 1, 1.8),
		agg(runs.EngineParallel, "lena", 2, 4, 0.6),
	})

	base := findDerived(t, derived, GroupKey{"lena", 2, runs.EngineParallel, 1})
	require.NotNil(t, base.Speedup)
	assert.InDelta(t, 1.0, *base.Speedup, 1e-12)
	require.NotNil(t, base.Efficiency)
	assert.InDelta(t, 1.0, *base.Efficiency, 1e-12)
}

func TestDeriveSequentialFallbackBaseline(t *testing.T) {
	derived := Derive([]AggregateRecord{
		agg(runs.EngineSequential, "lena", 2, 1, 2.0),
		agg(runs.EngineParallel, "lena", 2, 4, 0.5),
	})

	d := findDerived(t, derived, GroupKey{"lena", 2, runs.EngineParallel, 4})
	require.NotNil(t, d.BaseTime)
	assert.Equal(t, 2.0, *d.BaseTime)
	require.NotNil(t, d.Speedup)
	assert.InDelta(t, 4.0, *d.Speedup, 1e-12)
}

func TestDeriveMissingBaseline(t *testing.T) {
	// Only a parallel group at four threads: no candidate baseline.
	derived := Derive([]AggregateRecord{
		agg(runs.EngineParallel, "lena", 2, 4, 0.5),
	})

	require.Len(t, derived, 1)
	assert.Nil(t, derived[0].BaseTime)
	assert.Nil(t, derived[0].Speedup)
	assert.Nil(t, derived[0].Efficiency)
}

func TestBestParallelPicksMinimumElapsed(t *testing.T) {
	derived := Derive([]AggregateRecord{
		agg(runs.EngineSequential, "lena", 2, 1, 2.0),
		agg(runs.EngineParallel, "lena", 2, 2, 1.1),
		agg(runs.EngineParallel, "lena", 2, 4, 0.6),
		agg(runs.EngineParallel, "lena", 2, 8, 0.7),
	})

	best, ok := BestParallel(derived, "lena", 2)
	require.True(t, ok)
	assert.Equal(t, 4, best.Key.Threads)
	assert.Equal(t, 0.6, best.Elapsed.Mean)
}

func TestBestParallelFallsBackToBaseline(t *testing.T) {
	derived := Derive([]AggregateRecord{
		agg(runs.EngineSequential, "lena", 2, 1, 2.0),
	})

	best, ok := BestParallel(derived, "lena", 2)
	require.True(t, ok)
	assert.Equal(t, runs.EngineSequential, best.Key.Engine)
	assert.Equal(t, 1, best.Key.Threads)
	require.NotNil(t, best.Speedup)
	assert.InDelta(t, 1.0, *best.Speedup, 1e-12)
}

func TestBestParallelUnknownKey(t *testing.T) {
	_, ok := BestParallel(nil, "lena", 2)
	assert.False(t, ok)
}

func TestSummaries(t *testing.T) {
	derived := Derive([]AggregateRecord{
		agg(runs.EngineSequential, "peppers", 2, 1, 3.0),
		agg(runs.EngineSequential, "lena", 2, 1, 2.0),
		agg(runs.EngineParallel, "lena", 2, 4, 0.5),
	})

	rows := Summaries(derived)
	require.Len(t, rows, 2)

	assert.Equal(t, "lena", rows[0].Image, "rows are sorted by image then radius")
	assert.Equal(t, runs.EngineSequential, rows[0].BaselineEngine)
	assert.Equal(t, 2.0, rows[0].BaselineTimeS)
	assert.Equal(t, 4, rows[0].BestThreads)
	assert.Equal(t, 0.5, rows[0].BestTimeS)
	assert.InDelta(t, 4.0, rows[0].BestSpeedup, 1e-12)

	// No parallel group: the baseline is its own best configuration.
	assert.Equal(t, "peppers", rows[1].Image)
	assert.Equal(t, 1, rows[1].BestThreads)
	assert.Equal(t, 3.0, rows[1].BestTimeS)
	assert.InDelta(t, 1.0, rows[1].BestSpeedup, 1e-12)
}
