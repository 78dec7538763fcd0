package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const maxLineBytes = 16 * 1024 * 1024

type parseOptions struct {
	path        string
	uniformRows bool
}

// Option adjusts how a day file is parsed.
type Option func(*parseOptions)

// WithUniformRows makes rows of different widths within one day a
// ValidationError instead of a warning.
func WithUniformRows() Option {
	return func(o *parseOptions) { o.uniformRows = true }
}

// WithPath sets the name used in errors and on the returned Dataset.
func WithPath(path string) Option {
	return func(o *parseOptions) { o.path = path }
}

// ParseDayGrids reads a flu simulation file and returns one grid per day block.
func ParseDayGrids(path string, opts ...Option) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer file.Close()

	return ParseReader(file, append([]Option{WithPath(path)}, opts...)...)
}

// ParseReader splits r into day blocks at every line starting with "Day".
// The rest of a marker line is ignored. Every other non-blank line is one
// grid row of whitespace-separated integers. A block without rows produces
// no grid. Lines before the first marker form a block of their own.
func ParseReader(r io.Reader, opts ...Option) (*Dataset, error) {
	o := parseOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	ds := NewDataset(o.path)
	var currentDay Grid
	sawMarker := false

	flush := func() error {
		if len(currentDay) == 0 {
			return nil
		}
		day := len(ds.Grids)
		if currentDay.IsRagged() {
			if o.uniformRows {
				return raggedError(o.path, day, currentDay)
			}
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("Warning: day %d has rows of different widths (max %d cells).", day, currentDay.Cols()))
		}
		ds.Grids = append(ds.Grids, currentDay)
		currentDay = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.HasPrefix(line, DayMarker) {
			if err := flush(); err != nil {
				return nil, err
			}
			sawMarker = true
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 { // Blank lines are neither markers nor rows
			continue
		}

		row := make([]int, len(fields))
		for i, token := range fields {
			val, err := strconv.Atoi(token)
			if err != nil {
				return nil, &ParseError{Path: o.path, Line: lineNo, Column: i + 1, Token: token, Err: unwrapNumError(err)}
			}
			row[i] = val
		}

		if !sawMarker && len(currentDay) == 0 && len(ds.Grids) == 0 {
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("Warning: line %d holds grid data before any %q marker; treating it as day 0.", lineNo, DayMarker))
		}
		currentDay = append(currentDay, row)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			// The file was readable; the offending line is the one after the last scanned
			return nil, &ParseError{Path: o.path, Line: lineNo + 1, Column: 1, Err: fmt.Errorf("line exceeds %d bytes", maxLineBytes)}
		}
		return nil, &FileAccessError{Path: o.path, Err: err}
	}

	// The last block has no trailing marker to close it
	if err := flush(); err != nil {
		return nil, err
	}
	return ds, nil
}

func raggedError(path string, day int, g Grid) error {
	want := len(g[0])
	for i, row := range g {
		if len(row) != want {
			return &ValidationError{Path: path, Day: day, Row: i, Want: want, Got: len(row)}
		}
	}
	return nil
}

// unwrapNumError drops the strconv wrapper, which repeats the token.
func unwrapNumError(err error) error {
	if numErr, ok := err.(*strconv.NumError); ok {
		return numErr.Err
	}
	return err
}
