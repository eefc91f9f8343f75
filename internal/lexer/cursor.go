package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"bwqlint/internal/source"
)

// Cursor is the scan position inside a query: byte offset plus line/column.
// Column advances by one per Unicode scalar; '\n' starts a new line.
type Cursor struct {
	File  *source.File
	Off   uint32
	Line  uint32
	Col   uint32
	limit uint32
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Line: 1, Col: 1, limit: limit}
}

// EOF reports whether the whole input has been consumed.
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit
}

// Peek returns the current rune and its byte width, or (RuneError, 0) at EOF.
func (c *Cursor) Peek() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:])
}

// PeekByte returns the byte n positions ahead of the cursor, 0 past the end.
func (c *Cursor) PeekByte(n uint32) byte {
	if c.Off+n >= c.limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// HasPrefix reports whether the remaining input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	n := uint32(len(s)) // #nosec G115 -- s is a short literal
	if c.Off+n > c.limit {
		return false
	}
	return string(c.File.Content[c.Off:c.Off+n]) == s
}

// Bump consumes one rune and updates line/column bookkeeping.
func (c *Cursor) Bump() rune {
	r, sz := c.Peek()
	if sz == 0 {
		return utf8.RuneError
	}
	c.Off += uint32(sz) // #nosec G115 -- rune width is at most 4
	if r == '\n' {
		c.Line++
		c.Col = 1
	} else {
		c.Col++
	}
	return r
}

// Pos returns the current position.
func (c *Cursor) Pos() source.Position {
	return source.Position{Line: c.Line, Column: c.Col, Offset: c.Off}
}

// SpanFrom returns the span from start up to the cursor.
func (c *Cursor) SpanFrom(start source.Position) source.Span {
	return source.NewSpan(start, c.Pos())
}

// Text returns the raw source between start and the cursor.
func (c *Cursor) Text(start source.Position) string {
	return string(c.File.Content[start.Offset:c.Off])
}
