package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/user/fluvis_go/internal/analysis"
)

// WriteCensusCSV writes one header line plus one line per day to path.
func WriteCensusCSV(path string, res *analysis.CensusResults, labels StateLabeler) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create census CSV: %w", err)
	}
	if err := EncodeCensusCSV(f, res, labels); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeCensusCSV is WriteCensusCSV for an arbitrary writer.
func EncodeCensusCSV(out io.Writer, res *analysis.CensusResults, labels StateLabeler) error {
	if res == nil {
		return fmt.Errorf("no census results to write")
	}
	labels = labelerOrDefault(labels)

	w := csv.NewWriter(out)
	if err := w.Write(censusHeaders(res, labels)); err != nil {
		return err
	}
	for _, d := range res.Days {
		if err := w.Write(censusRow(res, d)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
