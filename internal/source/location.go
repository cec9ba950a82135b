package source

import "fmt"

// Position is a 1-based line and column in a source file.
// Columns count runes, not bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position points somewhere in a file
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Location is a span between two positions. End is inclusive of the last
// character and may be nil for single-point locations.
type Location struct {
	Start *Position
	End   *Position
}

// NewLocation creates a location from start to end
func NewLocation(start, end *Position) *Location {
	return &Location{
		Start: start,
		End:   end,
	}
}

// At creates a single-point location
func At(pos Position) *Location {
	return &Location{Start: &pos, End: &pos}
}

func (l *Location) String() string {
	if l == nil || l.Start == nil {
		return "<unknown>"
	}
	return l.Start.String()
}
