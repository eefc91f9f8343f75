package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwqlint/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{
		Start: source.Position{Line: 1, Column: start + 1, Offset: start},
		End:   source.Position{Line: 1, Column: end + 1, Offset: end},
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	assert.True(t, b.Add(NewWarning(PerfWarning, span(0, 1), "a")))
	assert.True(t, b.Add(NewWarning(PerfWarning, span(1, 2), "b")))
	assert.False(t, b.Add(NewError(ValError, span(2, 3), "c")))
	assert.Equal(t, 2, b.Len())
	assert.False(t, b.HasErrors())
	assert.True(t, b.HasWarnings())
}

func TestBagUnbounded(t *testing.T) {
	b := NewBag(0)
	for i := range 100 {
		require.True(t, b.Add(NewWarning(PerfWarning, span(uint32(i), uint32(i+1)), "w")))
	}
	assert.Equal(t, 100, b.Len())
	assert.Equal(t, 100, b.Count(SevWarning))
	assert.Equal(t, 0, b.Count(SevError))
}

func TestBagSortIsStable(t *testing.T) {
	b := NewBag(0)
	b.Add(NewWarning(PerfWarning, span(5, 6), "late"))
	b.Add(NewWarning(PerfWarning, span(0, 1), "first"))
	b.Add(NewError(ValError, span(0, 1), "first-error"))
	b.Add(NewWarning(PerfWarning, span(0, 1), "second"))
	b.Sort()

	var msgs []string
	for _, d := range b.Items() {
		msgs = append(msgs, d.Message)
	}
	assert.Equal(t, []string{"first-error", "first", "second", "late"}, msgs)
}

func TestBagFilter(t *testing.T) {
	b := NewBag(0)
	b.Add(NewWarning(PerfWarning, span(0, 1), "w"))
	b.Add(NewError(ValError, span(0, 1), "e"))
	b.Filter(func(d Diagnostic) bool { return d.IsError() })
	require.Equal(t, 1, b.Len())
	assert.Equal(t, "e", b.Items()[0].Message)
}

func TestBagReporter(t *testing.T) {
	b := NewBag(0)
	r := BagReporter{Bag: b}
	ReportError(r, SynUnknownField, span(0, 3), "unknown field")
	ReportWarning(r, PerfWarning, span(0, 3), "slow")
	ReportError(nil, SynUnknownField, span(0, 3), "dropped")
	assert.Equal(t, 2, b.Len())
	assert.True(t, b.HasErrors())
}
