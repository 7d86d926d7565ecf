// Package phrase turns sentences into RAKE candidate phrases: maximal runs
// of words that are not stopwords.
package phrase

import (
	"strings"

	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/tokenize"
)

// Delimiter replaces each stopword before a sentence is split into phrases.
const Delimiter = "|"

// Filter drops candidate phrases before scoring. Zero fields are disabled.
type Filter struct {
	MaxWords int // drop phrases with more scoring words than this
	MinChars int // drop phrases shorter than this many bytes
}

// Segmenter splits sentences on stopwords.
type Segmenter struct {
	matcher   *stoplist.Matcher
	tokenizer *tokenize.Tokenizer
	filter    Filter
}

// NewSegmenter creates a segmenter. The tokenizer is only consulted when
// Filter.MaxWords is set; nil means the default tokenizer.
func NewSegmenter(matcher *stoplist.Matcher, tok *tokenize.Tokenizer, filter Filter) *Segmenter {
	if tok == nil {
		tok = tokenize.New(tokenize.Options{})
	}
	return &Segmenter{matcher: matcher, tokenizer: tok, filter: filter}
}

// Segment returns the candidate phrases of all sentences in order.
// Repeated phrases are kept as separate entries.
func (s *Segmenter) Segment(sentences []string) []string {
	var phrases []string
	for _, sentence := range sentences {
		marked := s.matcher.Replace(strings.TrimSpace(sentence), Delimiter)
		for _, piece := range strings.Split(marked, Delimiter) {
			p := tokenize.Lower(strings.TrimSpace(piece))
			if p == "" || !s.keep(p) {
				continue
			}
			phrases = append(phrases, p)
		}
	}
	return phrases
}

func (s *Segmenter) keep(p string) bool {
	if s.filter.MinChars > 0 && len(p) < s.filter.MinChars {
		return false
	}
	if s.filter.MaxWords > 0 && len(s.tokenizer.Words(p)) > s.filter.MaxWords {
		return false
	}
	return true
}

// Segment splits sentences into candidate phrases without filtering.
func Segment(sentences []string, matcher *stoplist.Matcher) []string {
	return NewSegmenter(matcher, nil, Filter{}).Segment(sentences)
}
