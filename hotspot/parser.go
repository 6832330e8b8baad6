// Package hotspot parses profiler self-cost reports into ranked
// records. Report lines are delimiter-separated with a variable field
// count, and function names may themselves contain the delimiter; the
// parser reads the fixed fields from both ends of each line and
// rejoins whatever sits between them into the function name.
package hotspot

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultDelimiter separates fields in the self-cost reports produced
// by the profiling scripts.
const DefaultDelimiter = ","

// Record is one ranked function from a profiler self-cost report.
// CostCount, CostPercent and Calls are nil when the source field was
// absent or unparsable.
type Record struct {
	Rank        int
	Function    string
	CostCount   *int64
	CostPercent *float64
	Calls       *int64
}

// Parser parses line-oriented self-cost reports.
type Parser struct {
	// Delimiter separates the fields of a line; DefaultDelimiter when
	// empty.
	Delimiter string
}

// Parse reads one record per line, silently skipping malformed lines
// (including a header line, whose first token is not an integer).
//
// The returned records are ordered by cost share: CostPercent
// descending, ties broken by CostCount descending. The source Rank
// field does not influence the ordering; it may be stale.
func (p Parser) Parse(r io.Reader) ([]Record, error) {
	delim := p.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	var records []Record

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rec, ok := parseLine(scanner.Text(), delim)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan hotspot report")
	}

	sortRecords(records)

	return records, nil
}

// ParseString parses an in-memory report.
func (p Parser) ParseString(text string) []Record {
	records, _ := p.Parse(strings.NewReader(text))
	return records
}

// parseLine splits one report line into its fields. The trailing
// fields are fixed-position read from the end: with five or more
// tokens the last three are cost count, cost percent and calls; with
// exactly four there is no calls field. Everything between the rank
// and the trailing fields is rejoined with the delimiter to
// reconstruct the function name.
func parseLine(line, delim string) (Record, bool) {
	tokens := strings.Split(strings.TrimSpace(line), delim)
	if len(tokens) < 4 {
		return Record{}, false
	}

	rank, err := strconv.Atoi(strings.TrimSpace(tokens[0]))
	if err != nil || rank < 0 {
		return Record{}, false
	}

	rec := Record{Rank: rank}

	end := len(tokens)
	if len(tokens) >= 5 {
		rec.Calls = parseCount(tokens[end-1])
		rec.CostPercent = parsePercent(tokens[end-2])
		rec.CostCount = parseCount(tokens[end-3])
		end -= 3
	} else {
		rec.CostPercent = parsePercent(tokens[end-1])
		rec.CostCount = parseCount(tokens[end-2])
		end -= 2
	}

	rec.Function = strings.Join(tokens[1:end], delim)

	return rec, true
}

// parsePercent strips a trailing percent sign before parsing.
func parsePercent(tok string) *float64 {
	tok = strings.TrimSuffix(strings.TrimSpace(tok), "%")
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseCount strips thousands separators before parsing. Separators
// only survive the initial split when the delimiter is not itself a
// comma.
func parseCount(tok string) *int64 {
	tok = strings.TrimSpace(tok)
	tok = strings.ReplaceAll(tok, ",", "")
	tok = strings.ReplaceAll(tok, "_", "")
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		pi, pj := percentOrder(records[i]), percentOrder(records[j])
		if pi != pj {
			return pi > pj
		}
		return countOrder(records[i]) > countOrder(records[j])
	})
}

// Missing values sort after every real one.
func percentOrder(r Record) float64 {
	if r.CostPercent == nil {
		return -1
	}
	return *r.CostPercent
}

func countOrder(r Record) int64 {
	if r.CostCount == nil {
		return -1
	}
	return *r.CostCount
}
