package stoplist

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cognicore/rake/pkg/rake/internalerr"
)

// Matcher recognizes whole-word stopword occurrences, ignoring case.
// A Matcher is immutable and may be shared between goroutines.
//
// A matcher built from an empty set matches nothing, so a sentence
// passes through the segmenter as a single phrase.
type Matcher struct {
	set *Set
	re  *regexp.Regexp
}

// NewMatcher compiles one alternation of \b-anchored stopwords.
// Stopwords are quoted, so regexp metacharacters match literally.
func NewMatcher(set *Set) (*Matcher, error) {
	m := &Matcher{set: set}
	words := set.Words()
	if len(words) == 0 {
		return m, nil
	}

	alternatives := make([]string, len(words))
	for i, w := range words {
		alternatives[i] = `\b` + regexp.QuoteMeta(w) + `\b`
	}
	re, err := regexp.Compile(`(?i)` + strings.Join(alternatives, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile stopword pattern: %w: %w", internalerr.ErrInvalidConfig, err)
	}
	m.re = re
	return m, nil
}

// MustMatcher is like NewMatcher but panics on error.
func MustMatcher(set *Set) *Matcher {
	m, err := NewMatcher(set)
	if err != nil {
		panic(err)
	}
	return m
}

// Set returns the stopwords the matcher was built from.
func (m *Matcher) Set() *Set {
	return m.set
}

// Pattern returns the compiled expression, or "" for an empty matcher.
func (m *Matcher) Pattern() string {
	if m.re == nil {
		return ""
	}
	return m.re.String()
}

// MatchString reports whether s contains a stopword.
func (m *Matcher) MatchString(s string) bool {
	return m.re != nil && m.re.MatchString(s)
}

// Replace substitutes every stopword occurrence in s with repl.
func (m *Matcher) Replace(s, repl string) string {
	if m.re == nil {
		return s
	}
	return m.re.ReplaceAllLiteralString(s, repl)
}
