package korean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims and collapses whitespace", "  부산항   관제탑  ", "부산항 관제탑"},
		{"strips punctuation", "부산항(관제탑)!", "부산항관제탑"},
		{"keeps alphanumerics", "KBS 9시 뉴스", "KBS 9시 뉴스"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "부산항", "부산항", 0},
		{"one substitution", "부산항", "부산항", 0},
		{"single insert", "부산", "부산항", 1},
		{"ascii", "kitten", "sitting", 3},
		{"empty left", "", "부산", 2},
		{"empty right", "부산", "", 2},
		{"case insensitive", "KBS", "kbs", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EditDistance(tt.a, tt.b))
		})
	}
}

func TestEditDistanceSelfIsZero(t *testing.T) {
	for _, s := range []string{"", "a", "부산항관제탑", "KBS 부산 1"} {
		assert.Equal(t, 0, EditDistance(s, s), "EditDistance(%q, %q)", s, s)
	}
}

func TestEditDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"부산항", "부산항관제탑"},
		{"kitten", "sitting"},
		{"", "항구"},
		{"해운대기지국", "해운대중계소"},
	}

	for _, p := range pairs {
		assert.Equal(t, EditDistance(p[0], p[1]), EditDistance(p[1], p[0]))
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("부산항", "부산항"))
	assert.Equal(t, 0.0, Similarity("", "부산"))

	// 1 edit over max length 3
	assert.InDelta(t, 1.0-1.0/3.0, Similarity("부산", "부산항"), 1e-9)

	// Never negative even when normalization shrinks the strings
	assert.GreaterOrEqual(t, Similarity("!!", "부산항"), 0.0)
}

func TestSimilaritySelfIsOne(t *testing.T) {
	for _, s := range []string{"부산항관제탑", "a", "해운대 송신소 2"} {
		assert.Equal(t, 1.0, Similarity(s, s))
	}
}
