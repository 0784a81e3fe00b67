package korean

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Normalize trims text, collapses internal whitespace runs to a single
// space, and strips everything that is not a letter, digit, or space.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false

	for _, r := range strings.TrimSpace(text) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}

	return b.String()
}

// EditDistance computes the Levenshtein distance between a and b after
// lower-casing and normalization.
func EditDistance(a, b string) int {
	if a == "" {
		return utf8.RuneCountInString(b)
	}
	if b == "" {
		return utf8.RuneCountInString(a)
	}

	na := Normalize(strings.ToLower(a))
	nb := Normalize(strings.ToLower(b))

	return edlib.LevenshteinDistance(na, nb)
}

// Similarity scores how alike two strings are, from 0 (unrelated) to 1
// (identical). Two empty strings count as identical.
func Similarity(a, b string) float64 {
	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)

	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	if maxLen == 0 {
		return 1.0
	}

	sim := 1.0 - float64(EditDistance(a, b))/float64(maxLen)

	// Normalization can shorten the inputs, letting the distance exceed the
	// raw length for very short strings.
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
