// Package similarity provides the normalized string similarity used for every
// fuzzy comparison in the reconciliation engine.
//
// # Metric
//
// Ratio implements the Ratcliff/Obershelp "gestalt" ratio popularized by
// sequence-matching libraries: the longest common block of the two strings is
// found, then the search recurses on the unmatched text to its left and right.
// The score is 2*M / (len(a)+len(b)) where M is the total matched rune count.
//
// Comparison is case-insensitive. No other normalization (whitespace,
// punctuation, accents) is applied.
//
// # strutil integration
//
// SequenceMatcher satisfies strutil.StringMetric, so it can be passed to
// strutil.Similarity alongside the library's own metrics.
//
// # Usage
//
//	score := similarity.Ratio("Random Access Memories", "Random Access Memory")
//	score = strutil.Similarity(a, b, similarity.NewSequenceMatcher())
package similarity
