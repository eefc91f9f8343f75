package token

import (
	"fmt"

	"bwqlint/internal/source"
)

// Token represents a single query token with its location.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Value    string
	Distance uint32
}

// IsEOF reports whether the token terminates the stream.
func (t Token) IsEOF() bool { return t.Kind == EOF }

func (t Token) String() string {
	switch t.Kind {
	case Word, Number:
		return fmt.Sprintf("%s '%s'", lower(t.Kind), t.Value)
	case QuotedString:
		return fmt.Sprintf("phrase %q", t.Value)
	case Hashtag:
		return "hashtag #" + t.Value
	case Mention:
		return "mention @" + t.Value
	case Near:
		return fmt.Sprintf("NEAR/%d", t.Distance)
	case NearForward:
		return fmt.Sprintf("NEAR/%df", t.Distance)
	case EOF:
		return "end of input"
	case CommentText:
		return "comment"
	case Whitespace:
		return "whitespace"
	default:
		return "'" + t.Kind.String() + "'"
	}
}

func lower(k Kind) string {
	switch k {
	case Word:
		return "word"
	case Number:
		return "number"
	}
	return k.String()
}
