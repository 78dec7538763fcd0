package analysis

import "github.com/user/fluvis_go/internal/parser"

// Options controls how cells are classified.
type Options struct {
	InfectedState int // Cell value counted as infected
}

// DefaultOptions matches the simulator's encoding.
func DefaultOptions() Options {
	return Options{InfectedState: parser.StateSick}
}

// DayCensus holds the counts for one simulated day.
type DayCensus struct {
	Day              int
	Rows             int
	Cols             int // Widest row
	Cells            int
	Counts           map[int]int // state -> number of cells
	Infected         int
	InfectedFraction float64
	NewInfections    int // Cells that became infected since the previous day
	Recoveries       int // Cells that stopped being infected since the previous day
}

// RankedDayInfo is used for ranking days by infected count.
type RankedDayInfo struct {
	Day      int
	Infected int
	Fraction float64
}

// CensusResults holds all results from the analysis.
type CensusResults struct {
	Days               []DayCensus
	States             []int // Distinct states seen, ascending
	PeakDay            int   // -1 when there are no days
	PeakInfected       int
	TotalNewInfections int
	TotalRecoveries    int
	RankedDays         []RankedDayInfo // Sorted by infected count, descending
	AnalysisErrors     []string
}

func NewCensusResults() *CensusResults {
	return &CensusResults{
		Days:           make([]DayCensus, 0),
		States:         make([]int, 0),
		PeakDay:        -1,
		RankedDays:     make([]RankedDayInfo, 0),
		AnalysisErrors: make([]string, 0),
	}
}

// Count returns the number of cells in state on the given day entry.
func (d DayCensus) Count(state int) int {
	return d.Counts[state]
}
