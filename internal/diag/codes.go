package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical failures
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexTooManyTokens      Code = 1003

	// Syntax failures
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynUnknownField       Code = 2003
	SynMalformedRange     Code = 2004
	SynMalformedProximity Code = 2005
	SynUnclosedComment    Code = 2006
	SynEmptyQuery         Code = 2007
	SynNestingTooDeep     Code = 2008
	SynExpectExpression   Code = 2009

	// Validation errors
	ValError                    Code = 3001
	ValInvalidWildcardPlacement Code = 3002
	ValRangeError               Code = 3003
	ValFieldValue               Code = 3004
	ValPureNegation             Code = 3005
	ValEmptyTerm                Code = 3006
	ValBroadWildcard            Code = 3007

	// Validation warnings
	PerfWarning      Code = 4001
	PerfLargeRange   Code = 4002
	PerfReplacement  Code = 4003
	PerfTagWildcard  Code = 4004
	PerfNearDistance Code = 4005
	ValWarning       Code = 4101

	// Rule failures
	IntRulePanic Code = 9001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unexpected character",
	LexUnterminatedString:       "Unterminated quoted string",
	LexTooManyTokens:            "Query has too many tokens",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnknownField:             "Unknown field",
	SynMalformedRange:           "Malformed range",
	SynMalformedProximity:       "Malformed proximity operator",
	SynUnclosedComment:          "Unclosed comment",
	SynEmptyQuery:               "Empty query",
	SynNestingTooDeep:           "Nesting too deep",
	SynExpectExpression:         "Expected expression",
	ValError:                    "Invalid query",
	ValInvalidWildcardPlacement: "Invalid wildcard placement",
	ValRangeError:               "Invalid range",
	ValFieldValue:               "Invalid field value",
	ValPureNegation:             "Query only contains negations",
	ValEmptyTerm:                "Empty term",
	ValBroadWildcard:            "Wildcard matches too many terms",
	PerfWarning:                 "Performance warning",
	PerfLargeRange:              "Range bound too large",
	PerfReplacement:             "Too many replacement characters",
	PerfTagWildcard:             "Wildcard after tag sigil",
	PerfNearDistance:            "Proximity distance too large",
	ValWarning:                  "Suspicious query",
	IntRulePanic:                "Internal rule failure",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 4000 && ic < 4100:
		return fmt.Sprintf("PRF%04d", ic)
	case ic >= 4100 && ic < 5000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

// Kind names the diagnostic variant a code belongs to.
func (c Code) Kind() string {
	switch {
	case c >= 1000 && c < 2000:
		return "LexerError"
	case c >= 2000 && c < 3000:
		return "ParseError"
	case c == ValInvalidWildcardPlacement:
		return "InvalidWildcardPlacement"
	case c == ValRangeError:
		return "RangeValidationError"
	case c == ValFieldValue:
		return "FieldValueError"
	case c >= 3000 && c < 4000:
		return "ValidationError"
	case c >= 4000 && c < 4100:
		return "PerformanceWarning"
	case c >= 4100 && c < 5000:
		return "ValidationWarning"
	case c >= 9000:
		return "InternalError"
	}
	return "Unknown"
}

// IsFatal reports whether the code belongs to a lexer or parser failure.
func (c Code) IsFatal() bool {
	return c >= 1000 && c < 3000
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
