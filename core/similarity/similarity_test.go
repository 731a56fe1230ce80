package similarity_test

import (
	"testing"

	"releasedrop/core/similarity"

	"github.com/adrg/strutil"
	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"Identical", "Thriller", "Thriller", 1.0},
		{"CaseInsensitive", "THRILLER", "thriller", 1.0},
		{"BothEmpty", "", "", 1.0},
		{"OneEmpty", "abc", "", 0.0},
		{"Disjoint", "abc", "xyz", 0.0},
		// difflib.SequenceMatcher(None, "abcd", "bcde").ratio() == 0.75
		{"Overlap", "abcd", "bcde", 0.75},
		// 19 matched runes over 42 total
		{"AlbumVariant", "Random Access Memories", "Random Access Memory", 38.0 / 42.0},
		// "wanna be startin" + " somethin" = 25 matched over 52
		{"Apostrophes", "Wanna Be Startin' Somethin'", "Wanna Be Startin Somethin", 50.0 / 52.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, similarity.Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Billie Jean", "Beat It"},
		{"Discovery", "Discography"},
		{"abcabc", "cbacba"},
		{"Homework", "Homework (Remastered)"},
	}
	for _, p := range pairs {
		assert.Equal(t, similarity.Ratio(p[0], p[1]), similarity.Ratio(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestRatio_Range(t *testing.T) {
	inputs := []string{"", "a", "Thriller", "Off the Wall", "Bad", "Dangerous", "HIStory"}
	for _, a := range inputs {
		for _, b := range inputs {
			r := similarity.Ratio(a, b)
			assert.GreaterOrEqual(t, r, 0.0)
			assert.LessOrEqual(t, r, 1.0)
		}
	}
}

func TestSequenceMatcher_StrutilMetric(t *testing.T) {
	metric := similarity.NewSequenceMatcher()
	assert.Equal(t, similarity.Ratio("Discovery", "discovery"), strutil.Similarity("Discovery", "discovery", metric))
	assert.InDelta(t, 0.75, metric.Compare("abcd", "bcde"), 1e-9)
}
