package token

import (
	"strconv"
	"strings"
)

// NearPrefix starts every proximity operator.
const NearPrefix = "NEAR/"

// ClassifyNear recognises NEAR/<digits> and NEAR/<digits>f. Anything else,
// including a distance that does not fit uint32, stays a word.
func ClassifyNear(text string) (Kind, uint32, bool) {
	rest, ok := strings.CutPrefix(text, NearPrefix)
	if !ok || rest == "" {
		return Word, 0, false
	}
	kind := Near
	if digits, fwd := strings.CutSuffix(rest, "f"); fwd {
		kind = NearForward
		rest = digits
	}
	if rest == "" || !allDigits(rest) {
		return Word, 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return Word, 0, false
	}
	return kind, uint32(n), true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
