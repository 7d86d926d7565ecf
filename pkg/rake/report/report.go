// Package report turns an extraction result into an explainable,
// serializable report.
package report

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/rake/pkg/rake"
	"github.com/cognicore/rake/pkg/rake/internalerr"
	"github.com/cognicore/rake/pkg/rake/rank"
)

// Selection chooses which ranked keywords count as the top keywords.
// The zero value keeps the extractor's configured top fraction.
type Selection struct {
	All   bool
	Third bool // keep the leading third regardless of the extractor's divisor
	N     int  // keep the first N keywords when positive
}

// ParseSelection reads "top", "third", "all" or a positive count.
func ParseSelection(s string) (Selection, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "top":
		return Selection{}, nil
	case "third":
		return Selection{Third: true}, nil
	case "all":
		return Selection{All: true}, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return Selection{}, fmt.Errorf("top %q: want top, third, all or a positive count: %w", s, internalerr.ErrInvalidInput)
	}
	return Selection{N: n}, nil
}

// Apply returns the selected keywords of res.
func (s Selection) Apply(res rake.Result) []rank.Keyword {
	switch {
	case s.All:
		return rank.TopN(res.Keywords, -1)
	case s.N > 0:
		return rank.TopN(res.Keywords, s.N)
	case s.Third:
		return rank.TopThird(res.Keywords)
	default:
		return res.Top()
	}
}

// String renders the selection in ParseSelection syntax.
func (s Selection) String() string {
	switch {
	case s.All:
		return "all"
	case s.N > 0:
		return strconv.Itoa(s.N)
	case s.Third:
		return "third"
	default:
		return "top"
	}
}

// Counts summarizes one extraction.
type Counts struct {
	Phrases       int `json:"phrases"`        // candidate phrases, repeats included
	UniquePhrases int `json:"unique_phrases"` // scored keywords
	Words         int `json:"words"`          // distinct content words
	Stopwords     int `json:"stopwords"`      // size of the stop-list used
}

// Report represents a structured, explainable extraction result
type Report struct {
	ID         string           `json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	Selection  string           `json:"selection"`
	Keywords   []rank.Keyword   `json:"keywords"`
	Top        []rank.Keyword   `json:"top"`
	Breakdowns []rank.Breakdown `json:"breakdowns,omitempty"`
	Counts     Counts           `json:"counts"`
}

// Builder constructs reports with monotonic ULIDs. It is safe for
// concurrent use.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Options controls report content.
type Options struct {
	Selection Selection
	Explain   bool // include a word breakdown for every top keyword
}

// Build creates a report for res, which must come from e.
func (b *Builder) Build(e *rake.Extractor, res rake.Result, opts Options) (Report, error) {
	now := b.now().UTC()

	b.mu.Lock()
	id, err := ulid.New(ulid.Timestamp(now), b.entropy)
	b.mu.Unlock()
	if err != nil {
		return Report{}, fmt.Errorf("report id: %w", err)
	}

	rep := Report{
		ID:        id.String(),
		CreatedAt: now,
		Selection: opts.Selection.String(),
		Keywords:  res.Keywords,
		Top:       opts.Selection.Apply(res),
		Counts: Counts{
			Phrases:       len(res.Phrases),
			UniquePhrases: len(res.Keywords),
			Words:         len(res.WordStats),
			Stopwords:     e.Stopwords().Len(),
		},
	}
	if rep.Keywords == nil {
		rep.Keywords = []rank.Keyword{}
	}

	if opts.Explain {
		rep.Breakdowns = make([]rank.Breakdown, 0, len(rep.Top))
		for _, kw := range rep.Top {
			bd, err := e.Explain(res, kw.Phrase)
			if err != nil {
				return Report{}, err
			}
			rep.Breakdowns = append(rep.Breakdowns, bd)
		}
	}

	return rep, nil
}
