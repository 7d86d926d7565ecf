// Package score computes RAKE word statistics over a list of candidate phrases.
package score

import "github.com/cognicore/rake/pkg/rake/tokenize"

// WordStats holds the co-occurrence statistics of one word.
//
// Degree counts, over every phrase containing the word, the other words of
// that phrase, plus the word's own frequency. Degree >= Frequency always holds.
type WordStats struct {
	Frequency int
	Degree    int
	Score     float64 // Degree / Frequency
}

// Scorer accumulates word statistics.
type Scorer struct {
	tokenizer *tokenize.Tokenizer
}

// NewScorer creates a scorer. The tokenizer decides what counts as a word
// and must be the one used to rank the same phrases; nil means the default.
func NewScorer(tok *tokenize.Tokenizer) *Scorer {
	if tok == nil {
		tok = tokenize.New(tokenize.Options{})
	}
	return &Scorer{tokenizer: tok}
}

// Words computes statistics for every word of the given phrases.
// Words that never occur have no entry.
func (s *Scorer) Words(phrases []string) map[string]WordStats {
	frequency := make(map[string]int)
	degree := make(map[string]int)

	for _, p := range phrases {
		words := s.tokenizer.Words(p)
		contribution := len(words) - 1
		for _, w := range words {
			frequency[w]++
			degree[w] += contribution
		}
	}

	stats := make(map[string]WordStats, len(frequency))
	for w, f := range frequency {
		d := degree[w] + f
		stats[w] = WordStats{
			Frequency: f,
			Degree:    d,
			Score:     float64(d) / float64(f),
		}
	}
	return stats
}

// Words computes word statistics with the default tokenizer.
func Words(phrases []string) map[string]WordStats {
	return NewScorer(nil).Words(phrases)
}

// Scores projects statistics onto word scores.
func Scores(stats map[string]WordStats) map[string]float64 {
	out := make(map[string]float64, len(stats))
	for w, s := range stats {
		out[w] = s.Score
	}
	return out
}
