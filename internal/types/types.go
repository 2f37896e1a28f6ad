package types

import "fmt"

// Position points at a location in a source file. Lines and columns
// are 1-based, matching the convention of Python tooling.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string // message code, e.g. "C7003"
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      Position
	End        Position
	Severity   Severity
	Confidence float64 // 0.0 to 1.0, how confident the fixer can act on Suggestion
}
