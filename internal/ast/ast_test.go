package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyWord(t *testing.T) {
	tests := []struct {
		raw  string
		want TermKind
	}{
		{"apple", TermWord},
		{"app*", TermWildcard},
		{"*pple", TermWildcard},
		{"ap?le", TermReplacement},
		{"a?p*", TermWildcard},
		{"e-mail.com", TermWord},
	}
	for _, tt := range tests {
		got := ClassifyWord(tt.raw)
		assert.Equal(t, tt.want, got.Kind, tt.raw)
		assert.Equal(t, tt.raw, got.Value)
	}
}

func TestTermText(t *testing.T) {
	assert.Equal(t, `"a b"`, Term{Kind: TermPhrase, Value: "a b"}.Text())
	assert.Equal(t, "#tag", Term{Kind: TermHashtag, Value: "tag"}.Text())
	assert.Equal(t, "@me", Term{Kind: TermMention, Value: "me"}.Text())
	assert.Equal(t, "~Apple", Term{Kind: TermCaseSensitive, Value: "Apple"}.Text())
}

func term(v string) *TermExpr {
	return &TermExpr{Term: ClassifyWord(v)}
}

func TestWalkPreOrder(t *testing.T) {
	// (a OR b) AND NOT c
	tree := &AndExpr{
		Left:  &GroupExpr{Inner: &OrExpr{Left: term("a"), Right: term("b")}},
		Right: &NotExpr{Operand: term("c")},
	}

	var names []string
	Walk(tree, func(e Expr) bool {
		if te, ok := e.(*TermExpr); ok {
			names = append(names, te.Term.Value)
		} else {
			names = append(names, NodeName(e))
		}
		return true
	})
	assert.Equal(t, []string{"And", "Group", "Or", "a", "b", "Not", "c"}, names)
	assert.Equal(t, 7, Count(tree))
	assert.Equal(t, 4, Depth(tree))
}

func TestWalkSkipChildren(t *testing.T) {
	tree := &NotExpr{Operand: &GroupExpr{Inner: term("a")}}
	n := 0
	Walk(tree, func(e Expr) bool {
		n++
		_, isGroup := e.(*GroupExpr)
		return !isGroup
	})
	assert.Equal(t, 2, n)
}

func TestUnwrap(t *testing.T) {
	inner := term("x")
	assert.Same(t, inner, Unwrap(&GroupExpr{Inner: &GroupExpr{Inner: inner}}))
}

func TestFieldLookup(t *testing.T) {
	fields := DefaultFields()

	spec, ok := fields.Lookup("AUTHORFOLLOWERS")
	require.True(t, ok)
	assert.Equal(t, FieldAuthorFollowers, spec.Type)
	assert.True(t, spec.Numeric())
	assert.True(t, spec.HasFlag(FieldFlagRange))

	spec, ok = fields.Lookup("title")
	require.True(t, ok)
	assert.False(t, spec.HasFlag(FieldFlagRange))

	_, ok = fields.Lookup("nope")
	assert.False(t, ok)
	_, ok = fields.Lookup("")
	assert.False(t, ok)

	info, ok := fields.Info(FieldLanguage)
	require.True(t, ok)
	assert.Equal(t, "language", info.Name)
	assert.Equal(t, "authorVerified", FieldAuthorVerified.String())
}

func TestFieldSpecsSorted(t *testing.T) {
	specs := DefaultFields().Specs()
	require.NotEmpty(t, specs)
	for i := 1; i < len(specs); i++ {
		assert.Less(t, specs[i-1].Name, specs[i].Name)
	}
}

func TestFieldRegistryFingerprint(t *testing.T) {
	assert.Equal(t, DefaultFields().Fingerprint(), NewFieldRegistry(DefaultFields().Specs()).Fingerprint())

	narrow := NewFieldRegistry([]FieldSpec{{Type: FieldSite, Name: "site"}})
	assert.NotEqual(t, DefaultFields().Fingerprint(), narrow.Fingerprint())
	assert.Equal(t, "site:2:0:0", narrow.Fingerprint())

	enum := NewFieldRegistry([]FieldSpec{{Type: FieldAuthorGender, Name: "authorGender", Value: ValueEnum, Enum: []string{"male"}}})
	assert.Contains(t, enum.Fingerprint(), "=male")
}
