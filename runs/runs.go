// Package runs normalizes raw blur benchmark observations into a
// uniform record shape consumed by the report package.
package runs

import "strings"

// Engine identifies the execution mode of a benchmark run.
type Engine string

const (
	// EngineSequential is the single-threaded blur program.
	EngineSequential Engine = "sequential"
	// EngineParallel is the multi-threaded blur program.
	EngineParallel Engine = "parallel"
)

// ParseEngine maps a raw engine cell to an Engine. The bench scripts
// historically wrote the program name into this column, so "blur_par"
// means parallel and everything else means sequential.
func ParseEngine(raw string) Engine {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "parallel", "blur_par":
		return EngineParallel
	default:
		return EngineSequential
	}
}

// RunRecord is one benchmark repetition, normalized from one raw input
// row. Optional measurements are nil when the source cell was absent or
// failed to parse.
type RunRecord struct {
	Engine  Engine
	Image   string
	Radius  int
	Threads int // effective thread count, always 1 for sequential runs
	Rep     int

	ElapsedS   *float64
	UserS      *float64
	SysS       *float64
	MaxRSSKB   *float64
	CPUUtilPct *float64
}
