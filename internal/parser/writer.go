package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDayGrids writes ds in the simulator's file layout: a "Day N" marker
// followed by one line of space-separated cells per row.
// ParseReader on the output yields the same grids. Grids without rows and
// rows without cells have no such layout and are rejected before anything
// is written.
func WriteDayGrids(w io.Writer, ds *Dataset) error {
	if ds == nil {
		return nil
	}
	for day, grid := range ds.Grids {
		if len(grid) == 0 {
			return fmt.Errorf("day %d has no rows and cannot be written", day)
		}
		for r, row := range grid {
			if len(row) == 0 {
				return fmt.Errorf("day %d row %d has no cells and cannot be written", day, r)
			}
		}
	}

	bw := bufio.NewWriter(w)
	for day, grid := range ds.Grids {
		if _, err := fmt.Fprintf(bw, "%s %d\n", DayMarker, day); err != nil {
			return err
		}
		for _, row := range grid {
			buf := make([]byte, 0, len(row)*3)
			for i, v := range row {
				if i > 0 {
					buf = append(buf, ' ')
				}
				buf = strconv.AppendInt(buf, int64(v), 10)
			}
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
