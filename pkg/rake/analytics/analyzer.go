// Package analytics accumulates corpus statistics for stop-list generation
// from documents with known keywords.
package analytics

import (
	"context"
	"sort"

	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/tokenize"
)

// Analyzer aggregates per-word document, keyword and adjacency counts.
// It is not safe for concurrent use.
type Analyzer struct {
	tokenizer    *tokenize.Tokenizer
	totalDocs    int64
	tokenDF      map[string]int64
	tokenFreq    map[string]int64
	keywordFreq  map[string]int64
	adjacentFreq map[string]int64
}

// NewAnalyzer creates an empty analyzer. A nil tokenizer means the default
// one with numbers kept, so numeric words get statistics too.
func NewAnalyzer(tok *tokenize.Tokenizer) *Analyzer {
	if tok == nil {
		tok = tokenize.New(tokenize.Options{KeepNumbers: true})
	}
	return &Analyzer{
		tokenizer:    tok,
		tokenDF:      make(map[string]int64),
		tokenFreq:    make(map[string]int64),
		keywordFreq:  make(map[string]int64),
		adjacentFreq: make(map[string]int64),
	}
}

// Process consumes one document and the keywords assigned to it.
// Keywords are matched as whole word sequences inside a sentence.
func (a *Analyzer) Process(text string, keywords []string) {
	a.totalDocs++

	var patterns [][]string
	for _, kw := range keywords {
		if words := a.tokenizer.Words(kw); len(words) > 0 {
			patterns = append(patterns, words)
		}
	}

	seen := make(map[string]struct{})
	for _, sentence := range a.tokenizer.SplitSentences(text) {
		words := a.tokenizer.Words(sentence)
		if len(words) == 0 {
			continue
		}
		for _, w := range words {
			a.tokenFreq[w]++
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				a.tokenDF[w]++
			}
		}
		a.countKeywords(words, patterns)
	}
}

func (a *Analyzer) countKeywords(words []string, patterns [][]string) {
	inKeyword := make([]bool, len(words))
	type span struct{ start, end int }
	var spans []span

	for _, p := range patterns {
		for i := 0; i+len(p) <= len(words); i++ {
			if !hasPrefix(words[i:], p) {
				continue
			}
			spans = append(spans, span{i, i + len(p)})
			for j := i; j < i+len(p); j++ {
				inKeyword[j] = true
			}
		}
	}
	if len(spans) == 0 {
		return
	}

	// a word between two keywords is one adjacency, not two
	adjacent := make([]bool, len(words))
	for _, s := range spans {
		if s.start > 0 && !inKeyword[s.start-1] {
			adjacent[s.start-1] = true
		}
		if s.end < len(words) && !inKeyword[s.end] {
			adjacent[s.end] = true
		}
	}

	for i, w := range words {
		if inKeyword[i] {
			a.keywordFreq[w]++
		}
		if adjacent[i] {
			a.adjacentFreq[w]++
		}
	}
}

func hasPrefix(words, prefix []string) bool {
	for i := range prefix {
		if words[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Stats exposes the aggregated counts.
type Stats struct {
	TotalDocs    int64
	TokenDF      map[string]int64
	TokenFreq    map[string]int64
	KeywordFreq  map[string]int64
	AdjacentFreq map[string]int64
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	return Stats{
		TotalDocs:    a.totalDocs,
		TokenDF:      copyCounts(a.tokenDF),
		TokenFreq:    copyCounts(a.tokenFreq),
		KeywordFreq:  copyCounts(a.keywordFreq),
		AdjacentFreq: copyCounts(a.adjacentFreq),
	}
}

func copyCounts(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// StopwordStats converts corpus stats into stoplist.Stats, ordered by token.
func (s Stats) StopwordStats() []stoplist.Stats {
	var out []stoplist.Stats
	if s.TotalDocs == 0 {
		return out
	}

	for tok, df := range s.TokenDF {
		out = append(out, stoplist.Stats{
			Token:        tok,
			DF:           df,
			Frequency:    s.TokenFreq[tok],
			KeywordFreq:  s.KeywordFreq[tok],
			AdjacentFreq: s.AdjacentFreq[tok],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// StatsProvider exposes the aggregated metrics required for stop-list generation.
type StatsProvider interface {
	StopwordStats(ctx context.Context) ([]stoplist.Stats, error)
}

// StopwordStatsProvider adapts Analyzer stats to StatsProvider.
type StopwordStatsProvider struct {
	stats Stats
}

func NewStopwordStatsProvider(stats Stats) *StopwordStatsProvider {
	return &StopwordStatsProvider{stats: stats}
}

func (p *StopwordStatsProvider) StopwordStats(ctx context.Context) ([]stoplist.Stats, error) {
	return p.stats.StopwordStats(), nil
}

// Suggest collects stats from provider and proposes new stopwords that
// are not in existing. Zero thresholds mean stoplist.DefaultThresholds.
func Suggest(ctx context.Context, provider StatsProvider, existing *stoplist.Set, thresholds stoplist.Thresholds) ([]stoplist.Candidate, error) {
	stats, err := provider.StopwordStats(ctx)
	if err != nil {
		return nil, err
	}
	if thresholds == (stoplist.Thresholds{}) {
		thresholds = stoplist.DefaultThresholds()
	}
	return stoplist.SuggestCandidates(existing, stats, thresholds), nil
}
