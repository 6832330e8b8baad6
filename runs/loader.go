package runs

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Column names of the run-observation schema. The engine and CPU
// columns have legacy synonyms written by older bench scripts.
const (
	ColumnEngine       = "engine"
	ColumnEngineLegacy = "which"
	ColumnImage        = "image"
	ColumnRadius       = "radius"
	ColumnThreads      = "threads"
	ColumnRep          = "rep"
	ColumnElapsedS     = "elapsed_s"
	ColumnUserS        = "user_s"
	ColumnSysS         = "sys_s"
	ColumnMaxRSSKB     = "max_rss_kb"
	ColumnCPUUtilPct   = "cpu_util_pct"
	ColumnCPUPctLegacy = "cpu_pct"
)

// SchemaError reports a required identity column missing from the
// run-observation input. No aggregate can be produced without it.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("run input is missing required column %q", e.Column)
}

// FromRows normalizes raw rows (column name to raw cell value) into
// RunRecords.
//
// A row without an engine column (canonical "engine", legacy "which")
// or an image column fails the whole load with a SchemaError. Numeric
// cells that fail to parse become missing fields; the row is kept.
// Sequential runs are forced to a thread count of one regardless of
// the raw value, so grouping and baseline selection line up downstream.
func FromRows(rows []map[string]string) ([]RunRecord, error) {
	records := make([]RunRecord, 0, len(rows))

	for _, row := range rows {
		rawEngine, ok := row[ColumnEngine]
		if !ok {
			rawEngine, ok = row[ColumnEngineLegacy]
		}
		if !ok {
			return nil, &SchemaError{Column: ColumnEngine}
		}

		image, ok := row[ColumnImage]
		if !ok {
			return nil, &SchemaError{Column: ColumnImage}
		}

		rec := RunRecord{
			Engine:     ParseEngine(rawEngine),
			Image:      image,
			Radius:     intCell(row[ColumnRadius], 0),
			Rep:        intCell(row[ColumnRep], 0),
			ElapsedS:   floatCell(row, ColumnElapsedS),
			UserS:      floatCell(row, ColumnUserS),
			SysS:       floatCell(row, ColumnSysS),
			MaxRSSKB:   floatCell(row, ColumnMaxRSSKB),
			CPUUtilPct: floatCell(row, ColumnCPUUtilPct, ColumnCPUPctLegacy),
		}

		if rec.Engine == EngineSequential {
			// Bench scripts write threads=0 or blank for the
			// sequential program.
			rec.Threads = 1
		} else {
			rec.Threads = intCell(row[ColumnThreads], 1)
			if rec.Threads < 1 {
				rec.Threads = 1
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// FromCSV reads a header-driven run-observation CSV and normalizes it
// via FromRows. Columns outside the schema (tool, notes) are ignored.
func FromCSV(r io.Reader) ([]RunRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read runs csv")
	}
	if len(all) == 0 {
		return nil, errors.New("runs csv has no header row")
	}

	header := all[0]
	rows := make([]map[string]string, 0, len(all)-1)

	for _, cells := range all[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[strings.TrimSpace(name)] = strings.TrimSpace(cells[i])
			}
		}
		rows = append(rows, row)
	}

	return FromRows(rows)
}

// floatCell returns the first named cell parsed as a float, or nil when
// every candidate is absent or unparsable.
func floatCell(row map[string]string, names ...string) *float64 {
	for _, name := range names {
		raw, ok := row[name]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

func intCell(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}
