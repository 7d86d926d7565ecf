// Package tokenize splits raw text into sentences and candidate phrases into words.
package tokenize

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Delimiters selects the character class used to split sentences.
type Delimiters int

const (
	// Extended splits on . ! ? , ; : tab hyphen, double and single quotes,
	// the right single quotation mark, the en dash and parentheses.
	Extended Delimiters = iota
	// Basic splits on . ! ? , ; : tab and hyphen only.
	Basic
)

// String returns the config name of the delimiter set.
func (d Delimiters) String() string {
	if d == Basic {
		return "basic"
	}
	return "extended"
}

// ParseDelimiters maps a config name to a delimiter set. Empty means Extended.
func ParseDelimiters(name string) (Delimiters, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "extended":
		return Extended, true
	case "basic":
		return Basic, true
	}
	return Extended, false
}

var (
	extendedSentenceSplitter = regexp.MustCompile("[.!?,;:\t\\-\"'’–()]")
	basicSentenceSplitter    = regexp.MustCompile("[.!?,;:\t\\-]")
	wordSplitter             = regexp.MustCompile(`[^a-zA-Z0-9_+\-/]`)
)

// Options configures a Tokenizer. The zero value is the standard RAKE setup:
// extended delimiters, numeric words dropped, no unicode normalization.
type Options struct {
	Delimiters       Delimiters
	MinWordLength    int  // words must be longer than this to be scored
	KeepNumbers      bool // keep purely numeric words in word lists
	NormalizeUnicode bool // apply NFKC before sentence splitting
}

// Tokenizer handles sentence and word splitting.
// It holds no mutable state and is safe for concurrent use.
type Tokenizer struct {
	opts      Options
	sentences *regexp.Regexp
}

// New creates a tokenizer with the given options.
func New(opts Options) *Tokenizer {
	t := &Tokenizer{opts: opts, sentences: extendedSentenceSplitter}
	if opts.Delimiters == Basic {
		t.sentences = basicSentenceSplitter
	}
	return t
}

// Options returns the options the tokenizer was built with.
func (t *Tokenizer) Options() Options {
	return t.opts
}

// SplitSentences splits text on sentence delimiters.
// Empty fragments are kept; the phrase segmenter drops them.
func (t *Tokenizer) SplitSentences(text string) []string {
	if t.opts.NormalizeUnicode {
		text = norm.NFKC.String(text)
	}
	return t.sentences.Split(text, -1)
}

// SeparateWords returns the lowercased words of text longer than minWordLength.
// Fragments that parse as numbers are skipped unless KeepNumbers is set;
// the caller's phrase text is never modified.
func (t *Tokenizer) SeparateWords(text string, minWordLength int) []string {
	var words []string
	for _, fragment := range wordSplitter.Split(text, -1) {
		word := Lower(strings.TrimSpace(fragment))
		if word == "" || len(word) <= minWordLength {
			continue
		}
		if !t.opts.KeepNumbers && IsNumber(word) {
			continue
		}
		words = append(words, word)
	}
	return words
}

// Words returns the scoring words of a phrase, honoring MinWordLength.
func (t *Tokenizer) Words(phrase string) []string {
	return t.SeparateWords(phrase, t.opts.MinWordLength)
}

var std = New(Options{})

// SplitSentences splits text with the default tokenizer.
func SplitSentences(text string) []string {
	return std.SplitSentences(text)
}

// SeparateWords splits text into words with the default tokenizer.
func SeparateWords(text string, minWordLength int) []string {
	return std.SeparateWords(text, minWordLength)
}

// Lower lowercases s. Bytes that are not valid UTF-8 are copied through
// unchanged instead of becoming U+FFFD.
func Lower(s string) string {
	if utf8.ValidString(s) {
		return strings.ToLower(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		i += size
	}
	return b.String()
}

// IsNumber reports whether s parses entirely as a number.
// Strings containing '.' are parsed as floats, everything else as integers,
// so "1.2.3" is not a number.
func IsNumber(s string) bool {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ".") {
		_, err := strconv.ParseFloat(s, 64)
		return err == nil || errors.Is(err, strconv.ErrRange)
	}
	return isInteger(s)
}

// isInteger accepts an optional sign followed by at least one ASCII digit.
// No size limit applies.
func isInteger(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
