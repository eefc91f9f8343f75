package token

// Kind represents the category of a query token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the query text.
	EOF

	// Word is a bare term (may contain * and ?).
	Word
	// QuotedString is a "quoted phrase".
	QuotedString
	// Number is a run of digits and dots, optionally negative.
	Number

	And // AND
	Or  // OR
	Not // NOT
	To  // TO

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }
	Tilde    // ~
	Colon    // :
	Question // ?
	Asterisk // *

	// Near is NEAR/<n>, unordered proximity.
	Near
	// NearForward is NEAR/<n>f, ordered proximity.
	NearForward

	CommentStart // <<<
	CommentEnd   // >>>
	// CommentText is the raw body between comment delimiters.
	CommentText

	// Field is a field name followed by ':'. The lexer emits plain words and
	// lets the parser bind the colon; the kind is kept for token producers
	// that pre-split fields.
	Field
	// Hashtag is #tag; Value excludes '#'.
	Hashtag
	// Mention is @user; Value excludes '@'.
	Mention

	// Whitespace is only produced when the lexer keeps trivia.
	Whitespace
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Word:         "Word",
	QuotedString: "QuotedString",
	Number:       "Number",
	And:          "AND",
	Or:           "OR",
	Not:          "NOT",
	To:           "TO",
	LParen:       "(",
	RParen:       ")",
	LBracket:     "[",
	RBracket:     "]",
	LBrace:       "{",
	RBrace:       "}",
	Tilde:        "~",
	Colon:        ":",
	Question:     "?",
	Asterisk:     "*",
	Near:         "NEAR",
	NearForward:  "NEARF",
	CommentStart: "<<<",
	CommentEnd:   ">>>",
	CommentText:  "CommentText",
	Field:        "Field",
	Hashtag:      "Hashtag",
	Mention:      "Mention",
	Whitespace:   "Whitespace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsOperator reports whether the kind is a boolean or proximity operator.
func (k Kind) IsOperator() bool {
	switch k {
	case And, Or, Not, Near, NearForward:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether the kind carries a user-supplied value.
func (k Kind) IsLiteral() bool {
	switch k {
	case Word, QuotedString, Number, Hashtag, Mention:
		return true
	default:
		return false
	}
}

// IsComment reports whether the kind belongs to a <<< >>> comment.
func (k Kind) IsComment() bool {
	return k == CommentStart || k == CommentEnd || k == CommentText
}

// keywords maps exact upper-case words onto operator kinds.
var keywords = map[string]Kind{
	"AND": And,
	"OR":  Or,
	"NOT": Not,
	"TO":  To,
}

// LookupKeyword returns the operator kind for an exact match of AND, OR, NOT
// or TO. Matching is case-sensitive: "and" stays a word.
func LookupKeyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}
