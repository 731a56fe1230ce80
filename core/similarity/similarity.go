package similarity

import (
	"strings"

	"github.com/adrg/strutil"
)

// SequenceMatcher is a strutil.StringMetric computing the gestalt ratio.
type SequenceMatcher struct{}

var _ strutil.StringMetric = (*SequenceMatcher)(nil)

// NewSequenceMatcher returns a new sequence matching metric.
func NewSequenceMatcher() *SequenceMatcher {
	return &SequenceMatcher{}
}

// Compare returns the case-insensitive gestalt ratio of a and b.
func (m *SequenceMatcher) Compare(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	// The block search breaks ties by position, so order the operands to keep
	// the score symmetric.
	if string(ra) > string(rb) {
		ra, rb = rb, ra
	}

	matched := matchCount(ra, rb, 0, len(ra), 0, len(rb))
	return 2.0 * float64(matched) / float64(total)
}

// Ratio is shorthand for strutil.Similarity with a SequenceMatcher.
func Ratio(a, b string) float64 {
	return strutil.Similarity(a, b, defaultMatcher)
}

var defaultMatcher = NewSequenceMatcher()

// matchCount returns the number of runes covered by all matching blocks
// within a[alo:ahi] and b[blo:bhi].
func matchCount(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, k := longestMatch(a, b, alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	return k +
		matchCount(a, b, alo, i, blo, j) +
		matchCount(a, b, i+k, ahi, j+k, bhi)
}

// longestMatch finds the longest common block of a[alo:ahi] and b[blo:bhi].
// Ties go to the block starting earliest in a, then earliest in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	width := bhi - blo + 1
	prev := make([]int, width)
	cur := make([]int, width)

	for i := alo; i < ahi; i++ {
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				cur[j-blo+1] = 0
				continue
			}
			k := prev[j-blo] + 1
			cur[j-blo+1] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		prev, cur = cur, prev
	}
	return besti, bestj, bestk
}
