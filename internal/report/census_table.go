package report

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/user/fluvis_go/internal/analysis"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	peakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
)

// censusHeaders returns the column titles shared by the table and CSV outputs.
func censusHeaders(res *analysis.CensusResults, labels StateLabeler) []string {
	headers := []string{"Day", "Rows", "Cols"}
	for _, state := range res.States {
		headers = append(headers, labels.Label(state))
	}
	return append(headers, "Infected %", "New", "Recovered")
}

// censusRow formats one day for the table and CSV outputs.
func censusRow(res *analysis.CensusResults, d analysis.DayCensus) []string {
	row := []string{
		strconv.Itoa(d.Day),
		strconv.Itoa(d.Rows),
		strconv.Itoa(d.Cols),
	}
	for _, state := range res.States {
		row = append(row, strconv.Itoa(d.Count(state)))
	}
	return append(row,
		fmt.Sprintf("%.1f", d.InfectedFraction*100),
		strconv.Itoa(d.NewInfections),
		strconv.Itoa(d.Recoveries),
	)
}

// censusCellStyle highlights the peak day. Data rows are 0-based and
// equal to the day index; the header row is table.HeaderRow.
func censusCellStyle(peakDay int) table.StyleFunc {
	return func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if row == peakDay {
			return peakStyle
		}
		return cellStyle
	}
}

func newCensusTable(res *analysis.CensusResults, labels StateLabeler, style table.StyleFunc) *table.Table {
	rows := make([][]string, 0, len(res.Days))
	for _, d := range res.Days {
		rows = append(rows, censusRow(res, d))
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderHeader(true).
		BorderRow(false).
		Headers(censusHeaders(res, labels)...).
		Rows(rows...).
		StyleFunc(style)
}

// RenderCensusTable formats the per-day census for a terminal.
// The peak day is highlighted.
func RenderCensusTable(res *analysis.CensusResults, labels StateLabeler) string {
	if res == nil || len(res.Days) == 0 {
		return "No data: the dataset holds no days.\n"
	}
	labels = labelerOrDefault(labels)

	t := newCensusTable(res, labels, censusCellStyle(res.PeakDay))
	return t.Render() + "\n" + fmt.Sprintf("Peak: day %d with %d infected\n", res.PeakDay, res.PeakInfected)
}
