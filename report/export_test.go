package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blur-lab/go-blurbench/runs"
)

func TestWriteAggregateCSV(t *testing.T) {
	derived := Derive([]AggregateRecord{
		agg(runs.EngineSequential, "lena", 2, 1, 2.0),
		agg(runs.EngineParallel, "lena", 2, 4, 0.5),
	})

	var buf bytes.Buffer
	require.NoError(t, WriteAggregateCSV(&buf, derived))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "image,radius,engine,threads,runs,elapsed_mean"))
	assert.Equal(t, "lena,2,sequential,1,1,2,0,0,,,,,2,1,1", lines[1])
	assert.Equal(t, "lena,2,parallel,4,1,0.5,0,0,,,,,2,4,1", lines[2])
}

func TestWriteSummaryCSV(t *testing.T) {
	rows := []SummaryRow{
		{
			Image:          "lena",
			Radius:         2,
			BaselineEngine: runs.EngineSequential,
			BaselineTimeS:  2.0,
			BestThreads:    4,
			BestTimeS:      0.5,
			BestSpeedup:    4.0,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "image,radius,baseline_engine,baseline_time_s,best_threads,best_time_s,best_speedup_x", lines[0])
	assert.Equal(t, "lena,2,sequential,2,4,0.5,4", lines[1])
}
