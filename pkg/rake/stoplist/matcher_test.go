package stoplist

import "testing"

func TestMatcherReplace(t *testing.T) {
	m := MustMatcher(NewSet([]string{"of", "the", "over"}))

	got := m.Replace("Compatibility of systems of linear constraints over the set", "|")
	want := "Compatibility | systems | linear constraints | | set"
	if got != want {
		t.Errorf("Replace = %q, want %q", got, want)
	}
}

func TestMatcherWholeWordsOnly(t *testing.T) {
	m := MustMatcher(NewSet([]string{"the", "on"}))

	got := m.Replace("theory on thermal online", "|")
	want := "theory | thermal online"
	if got != want {
		t.Errorf("Replace = %q, want %q", got, want)
	}
}

func TestMatcherCaseInsensitive(t *testing.T) {
	m := MustMatcher(NewSet([]string{"THE"}))

	if got := m.Replace("The cat and tHe dog", "|"); got != "| cat and | dog" {
		t.Errorf("Replace = %q", got)
	}
	if !m.MatchString("THE") {
		t.Error("MatchString should ignore case")
	}
}

func TestMatcherQuotesMetacharacters(t *testing.T) {
	m, err := NewMatcher(NewSet([]string{"c++", "a.b"}))
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	if m.MatchString("axb") {
		t.Error("'.' in a stopword should match literally")
	}
	if !m.MatchString("use a.b here") {
		t.Error("literal a.b should match")
	}
}

func TestMatcherEmptySetMatchesNothing(t *testing.T) {
	m, err := NewMatcher(NewSet(nil))
	if err != nil {
		t.Fatalf("empty set should not error: %v", err)
	}

	s := "Nothing here is ever a stopword"
	if got := m.Replace(s, "|"); got != s {
		t.Errorf("empty matcher changed input: %q", got)
	}
	if m.MatchString(s) || m.MatchString("") {
		t.Error("empty matcher should match nothing")
	}
	if m.Pattern() != "" {
		t.Errorf("empty matcher pattern = %q", m.Pattern())
	}
	if m.Set().Len() != 0 {
		t.Error("empty matcher should expose an empty set")
	}
}
