package rake

import (
	"math"
	"os"
	"testing"

	"github.com/cognicore/rake/pkg/rake/stoplist"
)

// The abstract and expected ranking follow Table 1.1 of Rose et al. (2010),
// "Automatic keyword extraction from individual documents".
func TestE2EAbstract(t *testing.T) {
	text, err := os.ReadFile("testdata/abstract.txt")
	if err != nil {
		t.Fatal(err)
	}
	stops, err := stoplist.LoadFile("testdata/stoplist.txt", stoplist.LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}

	e, err := New(Options{Stopwords: stops})
	if err != nil {
		t.Fatal(err)
	}
	res := e.Extract(string(text))

	if len(res.Phrases) != 32 {
		t.Errorf("Expected 32 candidate phrases, got %d", len(res.Phrases))
	}
	if len(res.Keywords) != 25 {
		t.Errorf("Expected 25 unique keywords, got %d", len(res.Keywords))
	}

	want := []struct {
		phrase string
		score  float64
	}{
		{"minimal generating sets", 26.0 / 3},
		{"linear diophantine equations", 8.5},
		{"minimal supporting set", 23.0 / 3},
		{"minimal set", 14.0 / 3},
		{"linear constraints", 4.5},
		{"natural numbers", 4},
		{"nonstrict inequations", 4},
		{"strict inequations", 4},
		{"upper bounds", 4},
	}
	for i, w := range want {
		got := res.Keywords[i]
		if got.Phrase != w.phrase {
			t.Errorf("rank %d: got %q, want %q", i, got.Phrase, w.phrase)
			continue
		}
		if math.Abs(got.Score-w.score) > 1e-9 {
			t.Errorf("%q: score %v, want %v", w.phrase, got.Score, w.score)
		}
	}

	top := res.TopThird()
	if len(top) != 8 {
		t.Fatalf("TopThird of 25 should keep 8, got %d", len(top))
	}
	if top[7].Phrase != "strict inequations" {
		t.Errorf("TopThird cut should fall inside the 4.0 tie, got %q", top[7].Phrase)
	}

	ws := res.WordStats["minimal"]
	if ws.Frequency != 3 || ws.Degree != 8 {
		t.Errorf("minimal = %+v, want frequency 3 degree 8", ws)
	}
}

func TestE2EExtractKeywordsFromFile(t *testing.T) {
	text, err := os.ReadFile("testdata/abstract.txt")
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Open("testdata/stoplist.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	kws, err := ExtractKeywords(string(text), f)
	if err != nil {
		t.Fatalf("ExtractKeywords: %v", err)
	}
	if kws[0].Phrase != "minimal generating sets" {
		t.Errorf("top keyword = %q", kws[0].Phrase)
	}
	last := kws[len(kws)-1]
	if last.Phrase != "systems" || last.Score != 1 {
		t.Errorf("last keyword = %+v", last)
	}
}
