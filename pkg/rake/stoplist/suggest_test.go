package stoplist

import "testing"

func TestSuggestCandidates(t *testing.T) {
	stats := []Stats{
		{Token: "using", DF: 3, AdjacentFreq: 6, KeywordFreq: 1},  // Should be candidate
		{Token: "linear", DF: 3, AdjacentFreq: 1, KeywordFreq: 5}, // Should NOT
		{Token: "given", DF: 2, AdjacentFreq: 4, KeywordFreq: 0},  // Should be candidate
		{Token: "system", DF: 4, AdjacentFreq: 3, KeywordFreq: 3}, // Should NOT (not strictly greater)
	}

	candidates := SuggestCandidates(NewSet(nil), stats, DefaultThresholds())

	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d: %v", len(candidates), candidates)
	}
	if candidates[0].Token != "given" || candidates[1].Token != "using" {
		t.Errorf("unexpected order: %v", Tokens(candidates))
	}
	if candidates[0].Score != 1.0 {
		t.Errorf("given score = %v, want 1.0", candidates[0].Score)
	}
}

func TestSuggestCandidatesSkipsExisting(t *testing.T) {
	stats := []Stats{
		{Token: "the", DF: 9, AdjacentFreq: 20},
	}

	candidates := SuggestCandidates(NewSet([]string{"the"}), stats, DefaultThresholds())
	if len(candidates) != 0 {
		t.Error("Should not suggest existing stopwords")
	}
}

func TestSuggestCandidatesMinimums(t *testing.T) {
	stats := []Stats{
		{Token: "rare", DF: 1, AdjacentFreq: 1},
		{Token: "narrow", DF: 1, AdjacentFreq: 5},
	}
	th := Thresholds{MinAdjacent: 2, MinDF: 2, Ratio: 1}

	if got := SuggestCandidates(nil, stats, th); len(got) != 0 {
		t.Errorf("minimums should filter everything, got %v", Tokens(got))
	}
}

func TestSuggestCandidatesTieBreak(t *testing.T) {
	stats := []Stats{
		{Token: "zeta", DF: 1, AdjacentFreq: 3},
		{Token: "alpha", DF: 1, AdjacentFreq: 3},
		{Token: "beta", DF: 1, AdjacentFreq: 5},
	}

	got := Tokens(SuggestCandidates(nil, stats, DefaultThresholds()))
	want := []string{"beta", "alpha", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()
	if th.Ratio != 1.0 || th.MinAdjacent != 2 || th.MinDF != 1 {
		t.Errorf("unexpected defaults: %+v", th)
	}
}
