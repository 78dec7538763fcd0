package parser

// DayMarker is the literal prefix that starts a new day block.
const DayMarker = "Day"

// Cell states written by the upstream flu transmission simulator.
const (
	StateHealthy = 0
	StateSick    = 1
)

// Grid holds the cell states of one simulated day, row by row.
// Rows keep whatever width the input gave them.
type Grid [][]int

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the width of the widest row.
func (g Grid) Cols() int {
	maxCols := 0
	for _, row := range g {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	return maxCols
}

// IsRagged reports whether the rows differ in length.
func (g Grid) IsRagged() bool {
	for _, row := range g {
		if len(row) != len(g[0]) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Dataset is the parsed content of one simulation file.
// Grids[i] is day i in file order.
type Dataset struct {
	Path     string
	Grids    []Grid
	Warnings []string // Non-fatal observations made while parsing
}

// NewDataset returns an empty dataset for path.
func NewDataset(path string) *Dataset {
	return &Dataset{
		Path:     path,
		Grids:    make([]Grid, 0),
		Warnings: make([]string, 0),
	}
}

// Days returns the number of parsed days.
func (d *Dataset) Days() int {
	if d == nil {
		return 0
	}
	return len(d.Grids)
}
