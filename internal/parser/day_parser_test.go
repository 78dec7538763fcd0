package parser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flu_simulation.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestParseDayGridsTwoDays(t *testing.T) {
	path := writeTempFile(t, "Day 0\n0 1 0\n1 1 0\nDay 1\n0 0 0\n1 1 1\n")

	ds, err := ParseDayGrids(path)
	if err != nil {
		t.Fatalf("ParseDayGrids returned error: %v", err)
	}

	want := []Grid{
		{{0, 1, 0}, {1, 1, 0}},
		{{0, 0, 0}, {1, 1, 1}},
	}
	if !reflect.DeepEqual(ds.Grids, want) {
		t.Errorf("Expected grids %v, got %v", want, ds.Grids)
	}
	if ds.Path != path {
		t.Errorf("Expected Path %q, got %q", path, ds.Path)
	}
	if len(ds.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", ds.Warnings)
	}
}

func TestParseReaderCases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []Grid
		warnings int
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Grid{},
		},
		{
			name:  "simulator output with colon and trailing spaces",
			input: "Day 0:\n0 1 \n1 0 \nDay 1:\n1 1 \n0 0 \n",
			want:  []Grid{{{0, 1}, {1, 0}}, {{1, 1}, {0, 0}}},
		},
		{
			name:  "consecutive markers produce no empty day",
			input: "Day 0\nDay 1\n1 2\nDay 2\nDay 3\n3 4\n",
			want:  []Grid{{{1, 2}}, {{3, 4}}},
		},
		{
			name:  "trailing marker without rows",
			input: "Day 0\n5 5\nDay 1\n",
			want:  []Grid{{{5, 5}}},
		},
		{
			name:     "no markers at all is one day",
			input:    "0 1\n1 0\n",
			want:     []Grid{{{0, 1}, {1, 0}}},
			warnings: 1,
		},
		{
			name:  "only markers",
			input: "Day 0\nDay 1\n",
			want:  []Grid{},
		},
		{
			name:  "marker label is not validated",
			input: "Day whatever you like\n7\nDaybreak\n8\n",
			want:  []Grid{{{7}}, {{8}}},
		},
		{
			name:  "blank lines and CRLF",
			input: "Day 0\r\n\r\n0  1\t0\r\n   \r\n",
			want:  []Grid{{{0, 1, 0}}},
		},
		{
			name:  "negative and signed values",
			input: "Day 0\n-1 +2 3\n",
			want:  []Grid{{{-1, 2, 3}}},
		},
		{
			name:     "ragged rows are kept",
			input:    "Day 0\n1 2 3\n4 5\n",
			want:     []Grid{{{1, 2, 3}, {4, 5}}},
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ParseReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseReader returned error: %v", err)
			}
			if !reflect.DeepEqual(ds.Grids, tt.want) {
				t.Errorf("Expected grids %v, got %v", tt.want, ds.Grids)
			}
			if ds.Days() != len(tt.want) {
				t.Errorf("Expected %d days, got %d", len(tt.want), ds.Days())
			}
			if len(ds.Warnings) != tt.warnings {
				t.Errorf("Expected %d warnings, got %v", tt.warnings, ds.Warnings)
			}
		})
	}
}

func TestParseDayGridsMarkerIsCaseSensitive(t *testing.T) {
	_, err := ParseReader(strings.NewReader("day 0\n1 1\n"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError for lowercase marker, got %v", err)
	}
	if parseErr.Token != "day" || parseErr.Line != 1 || parseErr.Column != 1 {
		t.Errorf("Unexpected error context: %+v", parseErr)
	}
}

func TestParseDayGridsMalformedToken(t *testing.T) {
	path := writeTempFile(t, "Day 0\n0 0 0\nDay 1\n0 x 0\n")

	ds, err := ParseDayGrids(path)
	if ds != nil {
		t.Errorf("Expected no dataset on parse failure, got %+v", ds)
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.Path != path {
		t.Errorf("Expected path %q, got %q", path, parseErr.Path)
	}
	if parseErr.Line != 4 {
		t.Errorf("Expected line 4, got %d", parseErr.Line)
	}
	if parseErr.Column != 2 {
		t.Errorf("Expected column 2, got %d", parseErr.Column)
	}
	if parseErr.Token != "x" {
		t.Errorf("Expected token x, got %q", parseErr.Token)
	}
	if !strings.Contains(err.Error(), ":4:") {
		t.Errorf("Expected line number in message, got %q", err.Error())
	}
}

func TestParseDayGridsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does_not_exist.txt")

	ds, err := ParseDayGrids(path)
	if ds != nil {
		t.Errorf("Expected nil dataset, got %+v", ds)
	}

	var accessErr *FileAccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("Expected *FileAccessError, got %T: %v", err, err)
	}
	if accessErr.Path != path {
		t.Errorf("Expected path %q, got %q", path, accessErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected error to wrap os.ErrNotExist, got %v", err)
	}
}

func TestParseDayGridsUniformRows(t *testing.T) {
	input := "Day 0\n1 1\n1 1\nDay 1\n1 1\n1\n"

	_, err := ParseReader(strings.NewReader(input), WithUniformRows(), WithPath("sim.txt"))
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if valErr.Day != 1 || valErr.Row != 1 || valErr.Want != 2 || valErr.Got != 1 {
		t.Errorf("Unexpected validation error: %+v", valErr)
	}

	ds, err := ParseReader(strings.NewReader("Day 0\n1 1\n1 1\n"), WithUniformRows())
	if err != nil {
		t.Fatalf("Uniform input rejected: %v", err)
	}
	if ds.Days() != 1 {
		t.Errorf("Expected 1 day, got %d", ds.Days())
	}
}

func TestParseDayGridsLongLine(t *testing.T) {
	var b strings.Builder
	b.WriteString("Day 0\n")
	const width = 40000 // Well past bufio's default 64 KiB token size
	for i := 0; i < width; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('1')
	}
	b.WriteByte('\n')

	ds, err := ParseReader(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("ParseReader returned error: %v", err)
	}
	if got := ds.Grids[0].Cols(); got != width {
		t.Errorf("Expected %d columns, got %d", width, got)
	}
}

func TestParseDayGridsDeterministic(t *testing.T) {
	path := writeTempFile(t, "Day 0\n0 1\n1 0\nDay 1\n1 1\n0 0\n")

	first, err := ParseDayGrids(path)
	if err != nil {
		t.Fatalf("First parse failed: %v", err)
	}
	second, err := ParseDayGrids(path)
	if err != nil {
		t.Fatalf("Second parse failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Repeated parses differ: %+v vs %+v", first, second)
	}

	// Results must not share storage between calls
	first.Grids[0][0][0] = 99
	if second.Grids[0][0][0] == 99 {
		t.Error("Parses share grid storage")
	}
}

func TestWriteDayGridsRoundTrip(t *testing.T) {
	original := &Dataset{Grids: []Grid{
		{{0, 1, 0}, {1, 1, 0}},
		{{0, 0, 0}, {1, 1, 1}},
		{{-3, 12}, {7}},
	}}

	var buf bytes.Buffer
	if err := WriteDayGrids(&buf, original); err != nil {
		t.Fatalf("WriteDayGrids returned error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Day 0\n0 1 0\n") {
		t.Errorf("Unexpected output layout:\n%s", buf.String())
	}

	parsed, err := ParseReader(&buf)
	if err != nil {
		t.Fatalf("ParseReader on written output failed: %v", err)
	}
	if !reflect.DeepEqual(parsed.Grids, original.Grids) {
		t.Errorf("Round trip mismatch: want %v, got %v", original.Grids, parsed.Grids)
	}
}

func TestWriteDayGridsNilDataset(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDayGrids(&buf, nil); err != nil {
		t.Fatalf("WriteDayGrids(nil) returned error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestWriteDayGridsRejectsEmptyRowsAndGrids(t *testing.T) {
	tests := []struct {
		name    string
		grids   []Grid
		wantErr string
	}{
		{"empty row", []Grid{{{1, 2}, {}}, {{3}}}, "day 0 row 1 has no cells"},
		{"empty grid", []Grid{{{1}}, {}, {{3}}}, "day 1 has no rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteDayGrids(&buf, &Dataset{Grids: tt.grids})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
			if buf.Len() != 0 {
				t.Errorf("Expected nothing written, got %q", buf.String())
			}
		})
	}
}

func TestParseReaderLineTooLong(t *testing.T) {
	input := "Day 0\n1 1\n" + strings.Repeat("1 ", maxLineBytes/2+1) + "\n"

	ds, err := ParseReader(strings.NewReader(input))
	if ds != nil {
		t.Errorf("Expected no dataset, got %d days", ds.Days())
	}

	var accessErr *FileAccessError
	if errors.As(err, &accessErr) {
		t.Fatalf("Oversized line reported as an access failure: %v", err)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.Line != 3 {
		t.Errorf("Expected line 3, got %d", parseErr.Line)
	}
	if !strings.HasPrefix(err.Error(), "<input>:3:") {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestErrorMessagesNameUnnamedInput(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"access", &FileAccessError{Err: os.ErrPermission}},
		{"parse", &ParseError{Line: 2, Column: 1, Token: "x", Err: errors.New("invalid syntax")}},
		{"validation", &ValidationError{Day: 1, Row: 1, Want: 2, Got: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.err.Error(), "<input>") {
				t.Errorf("Expected <input> in %q", tt.err.Error())
			}
		})
	}

	named := &FileAccessError{Path: "sim.txt", Err: os.ErrPermission}
	if !strings.Contains(named.Error(), "sim.txt") {
		t.Errorf("Expected path in %q", named.Error())
	}
}

func TestGridHelpers(t *testing.T) {
	g := Grid{{1, 2, 3}, {4, 5}}
	if g.Rows() != 2 {
		t.Errorf("Expected 2 rows, got %d", g.Rows())
	}
	if g.Cols() != 3 {
		t.Errorf("Expected 3 cols, got %d", g.Cols())
	}
	if !g.IsRagged() {
		t.Error("Expected ragged grid")
	}
	if (Grid{{1, 2}, {3, 4}}).IsRagged() {
		t.Error("Expected uniform grid")
	}

	c := g.Clone()
	c[0][0] = 42
	if g[0][0] != 1 {
		t.Error("Clone shares storage with original")
	}
}
