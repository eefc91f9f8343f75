package lexer

import "unicode"

// ===== Классификаторы =====

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// isWordStart: буква, '_', '*' или '?'.
func isWordStart(r rune) bool {
	return r == '_' || r == '*' || r == '?' || unicode.IsLetter(r)
}

func isWordContinue(r rune) bool {
	switch r {
	case '_', '.', '-', '/', '*', '?':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isTagContinue(r rune) bool {
	return r == '_' || r == '*' || r == '?' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
