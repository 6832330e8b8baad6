package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// WriteAggregateCSV writes the enriched aggregate table in the column
// layout the plotting tooling consumes. Missing metrics and derived
// fields render as empty cells.
func WriteAggregateCSV(w io.Writer, derived []DerivedRecord) error {
	cw := csv.NewWriter(w)

	header := []string{
		"image", "radius", "engine", "threads", "runs",
		"elapsed_mean", "elapsed_std", "elapsed_ci95",
		"user_mean", "sys_mean", "cpu_mean", "rss_kb_mean",
		"base_time", "speedup", "efficiency",
	}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write aggregate csv header")
	}

	for _, d := range derived {
		row := []string{
			d.Key.Image,
			strconv.Itoa(d.Key.Radius),
			string(d.Key.Engine),
			strconv.Itoa(d.Key.Threads),
			strconv.Itoa(d.Runs),
		}
		if d.Elapsed != nil {
			row = append(row,
				formatFloat(d.Elapsed.Mean),
				formatFloat(d.Elapsed.Std),
				formatFloat(d.Elapsed.CI95))
		} else {
			row = append(row, "", "", "")
		}
		row = append(row,
			meanCell(d.User),
			meanCell(d.Sys),
			meanCell(d.CPUUtil),
			meanCell(d.MaxRSS),
			floatCell(d.BaseTime),
			floatCell(d.Speedup),
			floatCell(d.Efficiency))

		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write aggregate csv row")
		}
	}

	cw.Flush()

	return errors.Wrap(cw.Error(), "flush aggregate csv")
}

// WriteSummaryCSV writes the per-(image, radius) summary rows.
func WriteSummaryCSV(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)

	header := []string{
		"image", "radius", "baseline_engine", "baseline_time_s",
		"best_threads", "best_time_s", "best_speedup_x",
	}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write summary csv header")
	}

	for _, r := range rows {
		row := []string{
			r.Image,
			strconv.Itoa(r.Radius),
			string(r.BaselineEngine),
			formatFloat(r.BaselineTimeS),
			strconv.Itoa(r.BestThreads),
			formatFloat(r.BestTimeS),
			formatFloat(r.BestSpeedup),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write summary csv row")
		}
	}

	cw.Flush()

	return errors.Wrap(cw.Error(), "flush summary csv")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func meanCell(s *MetricStats) string {
	if s == nil {
		return ""
	}
	return formatFloat(s.Mean)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
