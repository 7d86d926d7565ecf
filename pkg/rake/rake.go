// Package rake extracts keywords from text with RAKE (Rapid Automatic
// Keyword Extraction): stopword-delimited candidate phrases scored by word
// degree and frequency.
package rake

import (
	"fmt"
	"io"

	"github.com/cognicore/rake/pkg/rake/phrase"
	"github.com/cognicore/rake/pkg/rake/rank"
	"github.com/cognicore/rake/pkg/rake/score"
	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/tokenize"
)

// DefaultTopDivisor keeps the leading third of the ranked keywords.
const DefaultTopDivisor = 3

// Options configures an Extractor
type Options struct {
	Stopwords  *stoplist.Set
	Tokenizer  tokenize.Options
	Filter     phrase.Filter
	TopDivisor int // Result.Top keeps len/TopDivisor keywords; 0 means DefaultTopDivisor
}

// Extractor runs the RAKE pipeline. It only holds immutable state, so one
// Extractor can serve concurrent callers.
type Extractor struct {
	tokenizer  *tokenize.Tokenizer
	matcher    *stoplist.Matcher
	segmenter  *phrase.Segmenter
	scorer     *score.Scorer
	ranker     *rank.Ranker
	topDivisor int
}

// New creates an Extractor. A nil or empty stopword set is allowed: every
// sentence then becomes a single candidate phrase.
func New(opts Options) (*Extractor, error) {
	matcher, err := stoplist.NewMatcher(opts.Stopwords)
	if err != nil {
		return nil, err
	}
	if opts.TopDivisor <= 0 {
		opts.TopDivisor = DefaultTopDivisor
	}

	tok := tokenize.New(opts.Tokenizer)
	return &Extractor{
		tokenizer:  tok,
		matcher:    matcher,
		segmenter:  phrase.NewSegmenter(matcher, tok, opts.Filter),
		scorer:     score.NewScorer(tok),
		ranker:     rank.NewRanker(tok),
		topDivisor: opts.TopDivisor,
	}, nil
}

// Stopwords returns the stopwords the extractor delimits phrases with.
func (e *Extractor) Stopwords() *stoplist.Set {
	return e.matcher.Set()
}

// Result holds every stage's output of one extraction.
type Result struct {
	Phrases   []string                   // candidate phrases in text order, repeats kept
	WordStats map[string]score.WordStats // per-word statistics
	Scores    map[string]float64         // unique phrase -> score
	Keywords  []rank.Keyword             // Scores ordered by rank.Rank

	topDivisor int
}

// Top returns the leading len(Keywords)/divisor keywords, rounded down.
func (r Result) Top() []rank.Keyword {
	return rank.Top(r.Keywords, r.topDivisor)
}

// TopThird returns the leading third of the keywords, rounded down.
func (r Result) TopThird() []rank.Keyword {
	return rank.TopThird(r.Keywords)
}

// Extract runs the pipeline over text.
func (e *Extractor) Extract(text string) Result {
	sentences := e.tokenizer.SplitSentences(text)
	phrases := e.segmenter.Segment(sentences)
	stats := e.scorer.Words(phrases)

	scored, err := e.ranker.ScoreAll(phrases, stats)
	if err != nil {
		// stats were computed from these phrases with the same tokenizer
		panic(fmt.Sprintf("rake: %v", err))
	}

	return Result{
		Phrases:    phrases,
		WordStats:  stats,
		Scores:     scored,
		Keywords:   rank.Rank(scored),
		topDivisor: e.topDivisor,
	}
}

// Explain breaks a phrase of res down into its word scores.
func (e *Extractor) Explain(res Result, phrase string) (rank.Breakdown, error) {
	return e.ranker.ScoreWithBreakdown(phrase, res.WordStats)
}

// ExtractKeywords loads stopwords from a line-oriented source and returns
// the keywords of text, highest score first.
func ExtractKeywords(text string, stopwords io.Reader) ([]rank.Keyword, error) {
	set, err := stoplist.Load(stopwords)
	if err != nil {
		return nil, err
	}
	e, err := New(Options{Stopwords: set})
	if err != nil {
		return nil, err
	}
	return e.Extract(text).Keywords, nil
}
