package blaze

import (
	"math"
	"testing"
)

func TestNewSearchResult_Score(t *testing.T) {
	doc := NewDocument(1, "the quick fox")
	positions := []Position{NewPosition(4, 9, 1)} // "quick"
	result := newSearchResult(&doc, positions)

	want := 5.0 / math.Sqrt(float64(len(doc.Content)))
	if math.Abs(result.Score-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", result.Score, want)
	}
}

func TestNewSearchResult_ScoreSumsMultiplePositions(t *testing.T) {
	doc := NewDocument(1, "fox fox")
	positions := []Position{NewPosition(0, 3, 0), NewPosition(4, 7, 1)}
	result := newSearchResult(&doc, positions)

	want := 6.0 / math.Sqrt(float64(len(doc.Content)))
	if math.Abs(result.Score-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", result.Score, want)
	}
}

func TestSearchResult_Highlight_MultipleSpans(t *testing.T) {
	doc := NewDocument(1, "the quick brown fox jumps")
	positions := []Position{
		NewPosition(4, 9, 1),   // quick
		NewPosition(16, 19, 3), // fox
	}
	result := SearchResult{Doc: &doc, Positions: positions}

	got := result.Highlight("[", "]")
	want := "the [quick] brown [fox] jumps"
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestSearchResult_Highlight_NoPositions(t *testing.T) {
	doc := NewDocument(1, "untouched content")
	result := SearchResult{Doc: &doc}

	if got := result.Highlight("<b>", "</b>"); got != doc.Content {
		t.Errorf("Highlight with no positions = %q, want unchanged %q", got, doc.Content)
	}
}
