// Package korean provides Hangul-aware text processing for station search:
// initial-consonant (chosung) extraction, normalization, and edit-distance
// similarity scoring.
package korean

import (
	"strings"
	"unicode"
)

// The 19 initial consonants, indexed by the chosung slot of a composed syllable.
var chosungTable = [19]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

const (
	hangulBase = 0xAC00 // 가
	hangulEnd  = 0xD7A3 // 힣
	jamoStart  = 0x3131 // ㄱ
	jamoEnd    = 0x314E // ㅎ

	// Each initial consonant spans 21 medial vowels x 28 final consonant slots.
	syllablesPerChosung = 21 * 28
)

// IsHangulSyllable reports whether r is a composed Hangul syllable.
func IsHangulSyllable(r rune) bool {
	return r >= hangulBase && r <= hangulEnd
}

// IsChosungJamo reports whether r is a standalone consonant jamo (ㄱ-ㅎ),
// as typed during incremental Korean input.
func IsChosungJamo(r rune) bool {
	return r >= jamoStart && r <= jamoEnd
}

// ExtractChosung reduces text to its initial-consonant form. Composed
// syllables are replaced by their chosung, standalone jamo and alphanumeric
// characters are kept, and everything else is dropped.
func ExtractChosung(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case IsHangulSyllable(r):
			b.WriteRune(chosungTable[(r-hangulBase)/syllablesPerChosung])
		case IsChosungJamo(r):
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}

	return b.String()
}

// IsChosungQuery reports whether query looks like a chosung search: every
// character is a standalone jamo, alphanumeric, or whitespace, and at least
// one standalone jamo is present.
func IsChosungQuery(query string) bool {
	if query == "" {
		return false
	}

	hasChosung := false
	for _, r := range query {
		switch {
		case IsChosungJamo(r):
			hasChosung = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
		default:
			return false
		}
	}

	return hasChosung
}

// ContainsHangul reports whether text contains at least one composed syllable.
func ContainsHangul(text string) bool {
	for _, r := range text {
		if IsHangulSyllable(r) {
			return true
		}
	}
	return false
}
