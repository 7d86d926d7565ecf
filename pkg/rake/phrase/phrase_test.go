package phrase

import (
	"testing"

	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/tokenize"
)

func matcher(t *testing.T, words ...string) *stoplist.Matcher {
	t.Helper()
	m, err := stoplist.NewMatcher(stoplist.NewSet(words))
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	return m
}

func TestSegmentScenario(t *testing.T) {
	sentences := tokenize.SplitSentences("Compatibility of systems of linear constraints over the set of natural numbers.")
	got := Segment(sentences, matcher(t, "of", "the", "over"))

	want := []string{"compatibility", "systems", "linear constraints", "set", "natural numbers"}
	if !equal(got, want) {
		t.Errorf("Segment = %q, want %q", got, want)
	}
}

func TestSegmentKeepsDuplicates(t *testing.T) {
	got := Segment([]string{"Linear systems and linear systems"}, matcher(t, "and"))

	want := []string{"linear systems", "linear systems"}
	if !equal(got, want) {
		t.Errorf("Segment = %q, want %q", got, want)
	}
}

func TestSegmentEmptyStoplist(t *testing.T) {
	sentences := []string{"  First Sentence Here ", "", "Second One"}
	got := Segment(sentences, matcher(t))

	want := []string{"first sentence here", "second one"}
	if !equal(got, want) {
		t.Errorf("Segment = %q, want %q", got, want)
	}
}

func TestSegmentPreservesOrder(t *testing.T) {
	got := Segment([]string{"alpha the beta", "gamma the delta"}, matcher(t, "the"))

	want := []string{"alpha", "beta", "gamma", "delta"}
	if !equal(got, want) {
		t.Errorf("Segment = %q, want %q", got, want)
	}
}

func TestSegmentSplitsOnLiteralDelimiter(t *testing.T) {
	got := Segment([]string{"left|right"}, matcher(t))
	if !equal(got, []string{"left", "right"}) {
		t.Errorf("Segment = %q", got)
	}
}

func TestSegmentKeepsNumbersInPhrase(t *testing.T) {
	got := Segment([]string{"the 2019 annual report"}, matcher(t, "the"))
	if !equal(got, []string{"2019 annual report"}) {
		t.Errorf("Segment = %q", got)
	}
}

func TestSegmenterFilters(t *testing.T) {
	s := NewSegmenter(matcher(t, "of"), nil, Filter{MaxWords: 2, MinChars: 3})

	got := s.Segment([]string{"ab of very long candidate phrase of two words of 2019 big data"})
	want := []string{"two words", "2019 big data"}
	if !equal(got, want) {
		t.Errorf("Segment = %q, want %q", got, want)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSegmentKeepsInvalidUTF8Bytes(t *testing.T) {
	got := Segment([]string{"X\xffY of \xff Café"}, matcher(t, "of"))

	want := []string{"x\xffy", "\xff café"}
	if !equal(got, want) {
		t.Errorf("Segment = %q, want %q", got, want)
	}
}
