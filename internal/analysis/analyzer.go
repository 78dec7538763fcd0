package analysis

import (
	"fmt"
	"sort"

	"github.com/user/fluvis_go/internal/parser"
)

// countStates tallies every cell of g by state.
func countStates(g parser.Grid) (map[int]int, int) {
	counts := make(map[int]int)
	cells := 0
	for _, row := range g {
		for _, v := range row {
			counts[v]++
			cells++
		}
	}
	return counts, cells
}

// compareDays counts transitions into and out of the infected state
// for coordinates present in both grids.
func compareDays(prev, curr parser.Grid, infected int) (newInfections, recoveries int) {
	for r := 0; r < len(prev) && r < len(curr); r++ {
		prevRow, currRow := prev[r], curr[r]
		for c := 0; c < len(prevRow) && c < len(currRow); c++ {
			wasInfected := prevRow[c] == infected
			isInfected := currRow[c] == infected
			switch {
			case !wasInfected && isInfected:
				newInfections++
			case wasInfected && !isInfected:
				recoveries++
			}
		}
	}
	return newInfections, recoveries
}

// AnalyzeDataset computes a per-day census of a parsed dataset.
// An empty dataset gives empty results, never an error.
func AnalyzeDataset(ds *parser.Dataset, opts Options) (*CensusResults, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil, cannot analyze")
	}

	results := NewCensusResults()
	if len(ds.Grids) == 0 {
		results.AnalysisErrors = append(results.AnalysisErrors, "Warning: Dataset holds no days.")
		return results, nil
	}

	seenStates := make(map[int]bool)
	baseRows, baseCols := ds.Grids[0].Rows(), ds.Grids[0].Cols()

	for day, grid := range ds.Grids {
		counts, cells := countStates(grid)
		for state := range counts {
			seenStates[state] = true
		}

		census := DayCensus{
			Day:      day,
			Rows:     grid.Rows(),
			Cols:     grid.Cols(),
			Cells:    cells,
			Counts:   counts,
			Infected: counts[opts.InfectedState],
		}
		if cells > 0 {
			census.InfectedFraction = float64(census.Infected) / float64(cells)
		}

		if day > 0 {
			census.NewInfections, census.Recoveries = compareDays(ds.Grids[day-1], grid, opts.InfectedState)
			results.TotalNewInfections += census.NewInfections
			results.TotalRecoveries += census.Recoveries
		}

		if census.Rows != baseRows || census.Cols != baseCols {
			results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Warning: Day %d is %dx%d, day 0 is %dx%d. Transitions only cover shared cells.", day, census.Rows, census.Cols, baseRows, baseCols))
		}
		if grid.IsRagged() {
			results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Warning: Day %d has rows of different widths.", day))
		}

		if census.Infected > results.PeakInfected || results.PeakDay < 0 {
			results.PeakDay = day
			results.PeakInfected = census.Infected
		}

		results.Days = append(results.Days, census)
		results.RankedDays = append(results.RankedDays, RankedDayInfo{Day: day, Infected: census.Infected, Fraction: census.InfectedFraction})
	}

	for state := range seenStates {
		results.States = append(results.States, state)
	}
	sort.Ints(results.States)

	sort.SliceStable(results.RankedDays, func(i, j int) bool {
		return results.RankedDays[i].Infected > results.RankedDays[j].Infected // Descending
	})

	if !seenStates[opts.InfectedState] {
		results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Warning: No cell is ever in infected state %d.", opts.InfectedState))
	}

	return results, nil
}
