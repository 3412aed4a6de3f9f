package blaze

import (
	"reflect"
	"testing"
)

func TestWhitespaceAnalyzer_OneTokenPerWord(t *testing.T) {
	got := WhitespaceAnalyzer{}.AnalyzeTerms("Learn To Program")
	want := []string{"learn", "to", "program"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AnalyzeTerms = %v, want %v", got, want)
	}
}

func TestWhitespaceAnalyzer_Positions(t *testing.T) {
	tokens := WhitespaceAnalyzer{}.Analyze("fox jumps")
	if len(tokens) != 2 {
		t.Fatalf("Analyze returned %d tokens, want 2", len(tokens))
	}
	if tokens[0].Position != NewPosition(0, 3, 0) {
		t.Errorf("token 0 position = %v, want {0,3,0}", tokens[0].Position)
	}
	if tokens[1].Position != NewPosition(4, 9, 1) {
		t.Errorf("token 1 position = %v, want {4,9,1}", tokens[1].Position)
	}
}

func TestNgramsAnalyzer_EmitsAllPrefixes(t *testing.T) {
	got := NgramsAnalyzer{}.AnalyzeTerms("to")
	want := []string{"t", "to"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AnalyzeTerms(to) = %v, want %v", got, want)
	}
}

func TestNgramsAnalyzer_PrefixesShareTokenPosition(t *testing.T) {
	tokens := NgramsAnalyzer{}.Analyze("fox")
	if len(tokens) != 3 {
		t.Fatalf("Analyze(fox) returned %d tokens, want 3", len(tokens))
	}
	for _, tok := range tokens {
		if tok.Position.TokenPos != 0 {
			t.Errorf("token %q has TokenPos %d, want 0", tok.Term, tok.Position.TokenPos)
		}
	}
}

func TestSplitWords_Unicode(t *testing.T) {
	words := splitWords("café\tnaïve")
	if len(words) != 2 {
		t.Fatalf("splitWords returned %d words, want 2", len(words))
	}
	if words[0].pos != 0 || words[1].pos != 1 {
		t.Errorf("word positions = %d, %d, want 0, 1", words[0].pos, words[1].pos)
	}
}

func TestPrefixToken_OffsetsIndexOriginalString(t *testing.T) {
	words := splitWords("Café")
	tok := prefixToken(words[0], 3)
	if tok.Term != "caf" {
		t.Errorf("term = %q, want \"caf\"", tok.Term)
	}
	// "é" is 2 bytes in UTF-8, so the 3-rune prefix "Caf" spans bytes [0,3).
	if tok.Position.Begin() != 0 || tok.Position.End() != 3 {
		t.Errorf("offsets = [%d,%d), want [0,3)", tok.Position.Begin(), tok.Position.End())
	}
}

func TestStemmingAnalyzer_ReducesToStem(t *testing.T) {
	got := StemmingAnalyzer{}.AnalyzeTerms("running runs")
	if got[0] != "run" || got[1] != "run" {
		t.Errorf("AnalyzeTerms(running runs) = %v, want both stemmed to \"run\"", got)
	}
}
