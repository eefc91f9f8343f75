package source

import "fmt"

// Position is a location in a query text.
// Line and Column are 1-based, Offset is a 0-based byte offset.
// Column counts Unicode scalars, not bytes.
type Position struct {
	Line   uint32
	Column uint32
	Offset uint32
}

// StartPosition is the position of the first character of any input.
var StartPosition = Position{Line: 1, Column: 1, Offset: 0}

// Before reports whether p is strictly before other.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
