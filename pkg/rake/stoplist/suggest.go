package stoplist

import "sort"

// Stats holds keyword-adjacency statistics for one word of a corpus
// with known keywords.
type Stats struct {
	Token        string
	DF           int64 // documents containing the word
	Frequency    int64 // total occurrences
	KeywordFreq  int64 // occurrences inside a known keyword
	AdjacentFreq int64 // occurrences right before or after a known keyword
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	MinAdjacent int64   // minimum adjacency count
	MinDF       int64   // minimum document frequency
	Ratio       float64 // AdjacentFreq must exceed Ratio*KeywordFreq
}

// DefaultThresholds returns the adjacency rule of the RAKE paper:
// a word is a stopword candidate when it sits next to keywords more
// often than it occurs inside them.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinAdjacent: 2,
		MinDF:       1,
		Ratio:       1.0,
	}
}

// Candidate represents a candidate stopword
type Candidate struct {
	Token string
	Stats Stats
	Score float64 // share of the word's keyword contacts that are adjacencies
}

// SuggestCandidates proposes words that should be stopwords. Words already
// in existing are skipped. Results are ordered by score, then adjacency
// count, then token.
func SuggestCandidates(existing *Set, stats []Stats, thresholds Thresholds) []Candidate {
	if thresholds.Ratio <= 0 {
		thresholds.Ratio = DefaultThresholds().Ratio
	}

	var candidates []Candidate
	for _, s := range stats {
		if s.Token == "" || existing.Contains(s.Token) {
			continue
		}
		if s.AdjacentFreq < thresholds.MinAdjacent || s.DF < thresholds.MinDF {
			continue
		}
		if float64(s.AdjacentFreq) <= thresholds.Ratio*float64(s.KeywordFreq) {
			continue
		}
		candidates = append(candidates, Candidate{
			Token: s.Token,
			Stats: s,
			Score: float64(s.AdjacentFreq) / float64(s.AdjacentFreq+s.KeywordFreq),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Stats.AdjacentFreq != b.Stats.AdjacentFreq {
			return a.Stats.AdjacentFreq > b.Stats.AdjacentFreq
		}
		return a.Token < b.Token
	})
	return candidates
}

// Tokens returns the candidate words in order.
func Tokens(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Token
	}
	return out
}
