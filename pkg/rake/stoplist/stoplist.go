// Package stoplist loads stopword lists and compiles them into phrase delimiters.
package stoplist

import (
	"sort"
	"strings"
)

// Set is an immutable set of lowercase stopwords.
// Load order is kept so compiled patterns are reproducible.
type Set struct {
	words map[string]struct{}
	order []string
}

// NewSet creates a set from the given words. Words are lowercased;
// empty words and duplicates are ignored.
func NewSet(words []string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := s.words[w]; ok {
			continue
		}
		s.words[w] = struct{}{}
		s.order = append(s.order, w)
	}
	return s
}

// Merge returns a new set holding the words of all given sets, in order.
func Merge(sets ...*Set) *Set {
	var words []string
	for _, s := range sets {
		words = append(words, s.Words()...)
	}
	return NewSet(words)
}

// Contains checks if a word is a stopword, ignoring case.
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct stopwords.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Words returns the stopwords in load order.
func (s *Set) Words() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns the stopwords in lexical order.
func (s *Set) Sorted() []string {
	out := s.Words()
	sort.Strings(out)
	return out
}
