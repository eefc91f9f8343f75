package ast

import "strings"

type TermKind uint8

const (
	TermWord TermKind = iota
	TermPhrase
	TermWildcard
	TermReplacement
	TermHashtag
	TermMention
	TermCaseSensitive
	TermNumber
)

var termKindNames = [...]string{
	TermWord:          "Word",
	TermPhrase:        "Phrase",
	TermWildcard:      "Wildcard",
	TermReplacement:   "Replacement",
	TermHashtag:       "Hashtag",
	TermMention:       "Mention",
	TermCaseSensitive: "CaseSensitive",
	TermNumber:        "Number",
}

func (k TermKind) String() string {
	if int(k) < len(termKindNames) {
		return termKindNames[k]
	}
	return "TermKind(?)"
}

// Term is a leaf atom. Value is the raw text without sigils or quotes.
type Term struct {
	Kind  TermKind
	Value string
}

// ClassifyWord turns raw word text into a Word, Wildcard or Replacement
// term. A word holding both '*' and '?' is a Wildcard.
func ClassifyWord(raw string) Term {
	switch {
	case strings.ContainsRune(raw, '*'):
		return Term{Kind: TermWildcard, Value: raw}
	case strings.ContainsRune(raw, '?'):
		return Term{Kind: TermReplacement, Value: raw}
	default:
		return Term{Kind: TermWord, Value: raw}
	}
}

// Text renders the term the way it would be written in a query.
func (t Term) Text() string {
	switch t.Kind {
	case TermPhrase:
		return `"` + t.Value + `"`
	case TermHashtag:
		return "#" + t.Value
	case TermMention:
		return "@" + t.Value
	case TermCaseSensitive:
		return "~" + t.Value
	default:
		return t.Value
	}
}
