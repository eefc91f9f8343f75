package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pos(line, col, off uint32) Position {
	return Position{Line: line, Column: col, Offset: off}
}

func TestSpan_Single(t *testing.T) {
	p := pos(2, 4, 10)
	sp := Single(p)
	assert.True(t, sp.Empty())
	assert.Equal(t, uint32(0), sp.Len())
	assert.Equal(t, p, sp.Start)
	assert.Equal(t, p, sp.End)
}

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint, b after a",
			a:        NewSpan(pos(1, 1, 0), pos(1, 6, 5)),
			b:        NewSpan(pos(1, 11, 10), pos(1, 16, 15)),
			expected: NewSpan(pos(1, 1, 0), pos(1, 16, 15)),
		},
		{
			name:     "b before a",
			a:        NewSpan(pos(2, 3, 20), pos(2, 8, 25)),
			b:        NewSpan(pos(1, 1, 0), pos(1, 4, 3)),
			expected: NewSpan(pos(1, 1, 0), pos(2, 8, 25)),
		},
		{
			name:     "nested",
			a:        NewSpan(pos(1, 1, 0), pos(1, 21, 20)),
			b:        NewSpan(pos(1, 6, 5), pos(1, 8, 7)),
			expected: NewSpan(pos(1, 1, 0), pos(1, 21, 20)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Cover(tt.b))
		})
	}
}

func TestSpan_ContainsAndString(t *testing.T) {
	sp := NewSpan(pos(1, 3, 2), pos(1, 6, 5))
	assert.False(t, sp.Contains(1))
	assert.True(t, sp.Contains(2))
	assert.True(t, sp.Contains(4))
	assert.False(t, sp.Contains(5))
	assert.Equal(t, "1:3-1:6", sp.String())
	assert.Equal(t, "1:3", sp.Start.String())
	assert.True(t, sp.Start.Before(sp.End))
}
