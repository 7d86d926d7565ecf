// Package rank scores candidate phrases from word statistics and orders them.
package rank

import (
	"fmt"
	"sort"

	"github.com/cognicore/rake/pkg/rake/internalerr"
	"github.com/cognicore/rake/pkg/rake/score"
	"github.com/cognicore/rake/pkg/rake/tokenize"
)

// Keyword is a unique candidate phrase with its aggregate score.
type Keyword struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// Ranker calculates phrase scores as the sum of their word scores.
type Ranker struct {
	tokenizer *tokenize.Tokenizer
}

// NewRanker creates a ranker. tok must be the tokenizer the word statistics
// were computed with; nil means the default.
func NewRanker(tok *tokenize.Tokenizer) *Ranker {
	if tok == nil {
		tok = tokenize.New(tokenize.Options{})
	}
	return &Ranker{tokenizer: tok}
}

// ScoreAll scores every phrase. The result is keyed by phrase text, so
// repeated phrases collapse into one entry.
//
// stats must come from the same phrases; a word without statistics is a
// caller bug and yields internalerr.ErrInvariantViolation.
func (r *Ranker) ScoreAll(phrases []string, stats map[string]score.WordStats) (map[string]float64, error) {
	scored := make(map[string]float64, len(phrases))
	for _, p := range phrases {
		b, err := r.ScoreWithBreakdown(p, stats)
		if err != nil {
			return nil, err
		}
		scored[p] = b.Total
	}
	return scored, nil
}

// WordScore is one word's contribution to a phrase score.
type WordScore struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Breakdown provides detailed scoring information for one phrase
type Breakdown struct {
	Phrase string      `json:"phrase"`
	Words  []WordScore `json:"words"`
	Total  float64     `json:"total"`
}

// ScoreWithBreakdown scores one phrase and reports each word's share.
func (r *Ranker) ScoreWithBreakdown(phrase string, stats map[string]score.WordStats) (Breakdown, error) {
	b := Breakdown{Phrase: phrase}
	for _, w := range r.tokenizer.Words(phrase) {
		ws, ok := stats[w]
		if !ok {
			return Breakdown{}, fmt.Errorf("rank: word %q of phrase %q has no score: %w", w, phrase, internalerr.ErrInvariantViolation)
		}
		b.Words = append(b.Words, WordScore{Word: w, Score: ws.Score})
		b.Total += ws.Score
	}
	return b, nil
}

// ScoreAll scores phrases with the default tokenizer.
func ScoreAll(phrases []string, stats map[string]score.WordStats) (map[string]float64, error) {
	return NewRanker(nil).ScoreAll(phrases, stats)
}

// Rank orders scored phrases by score, highest first. Equal scores are
// ordered by phrase text so the result does not depend on map iteration.
func Rank(scored map[string]float64) []Keyword {
	ranked := make([]Keyword, 0, len(scored))
	for p, s := range scored {
		ranked = append(ranked, Keyword{Phrase: p, Score: s})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score == ranked[j].Score {
			return ranked[i].Phrase < ranked[j].Phrase
		}
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Top returns the first len(ranked)/divisor keywords (integer division).
// Keywords tied with the last one kept are not included. A divisor below 1
// returns every keyword.
func Top(ranked []Keyword, divisor int) []Keyword {
	if divisor < 1 {
		divisor = 1
	}
	return TopN(ranked, len(ranked)/divisor)
}

// TopThird returns the leading third of ranked, rounded down.
func TopThird(ranked []Keyword) []Keyword {
	return Top(ranked, 3)
}

// TopN returns at most n keywords. n below 0 returns every keyword.
func TopN(ranked []Keyword, n int) []Keyword {
	if n < 0 || n > len(ranked) {
		n = len(ranked)
	}
	out := make([]Keyword, n)
	copy(out, ranked[:n])
	return out
}
