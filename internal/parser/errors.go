package parser

import "fmt"

// FileAccessError is returned when the input file cannot be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

// displayPath names unnamed readers in messages.
func displayPath(path string) string {
	if path == "" {
		return "<input>"
	}
	return path
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", displayPath(e.Path), e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports a data line token that is not an integer, or a line
// too long to read (Token is then empty).
// Line and Column are 1-based; Column counts tokens, not bytes.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Token  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s:%d: %v", displayPath(e.Path), e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: column %d: invalid cell value %q: %v", displayPath(e.Path), e.Line, e.Column, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a day whose rows do not share one width.
// It is only produced when uniform rows are required.
type ValidationError struct {
	Path string
	Day  int
	Row  int // 0-based row within the day
	Want int
	Got  int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: day %d row %d has %d cells, expected %d", displayPath(e.Path), e.Day, e.Row, e.Got, e.Want)
}
