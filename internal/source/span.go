package source

import (
	"fmt"
)

// Span is a half-open range [Start, End) of a query text.
type Span struct {
	Start Position
	End   Position
}

// NewSpan builds a span from two positions.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// Single returns a zero-width span at p.
func Single(p Position) Span {
	return Span{Start: p, End: p}
}

func (s Span) Empty() bool {
	return s.Start.Offset == s.End.Offset
}

// Len returns the length of the span in bytes.
func (s Span) Len() uint32 {
	return s.End.Offset - s.Start.Offset
}

// Contains reports whether the byte offset off lies inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start.Offset && off < s.End.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start.Offset < s.Start.Offset {
		s.Start = other.Start
	}
	if other.End.Offset > s.End.Offset {
		s.End = other.End
	}
	return s
}
