package blaze

import (
	"strings"
	"testing"
)

func TestEnglishUTF8Tokenizer_SplitsOnWhitespace(t *testing.T) {
	tok := NewEnglishUTF8Tokenizer(strings.NewReader("quick brown fox"))
	got, err := Collect(tok)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Collect returned %d tokens, want 3", len(got))
	}
	words := []string{"quick", "brown", "fox"}
	for i, w := range words {
		if got[i].Text != w {
			t.Errorf("token %d = %q, want %q", i, got[i].Text, w)
		}
		if got[i].Position.TokenPos != i {
			t.Errorf("token %d position = %d, want %d", i, got[i].Position.TokenPos, i)
		}
	}
}

func TestEnglishUTF8Tokenizer_SkipsPunctuation(t *testing.T) {
	tok := NewEnglishUTF8Tokenizer(strings.NewReader("well, hello!"))
	got, err := Collect(tok)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(got) != 2 || got[0].Text != "well" || got[1].Text != "hello" {
		t.Errorf("Collect = %+v, want [well hello]", got)
	}
}

func TestEnglishUTF8Tokenizer_TinyBuffer(t *testing.T) {
	// A reader that only ever yields one byte at a time must not
	// change tokenization, only how many underlying Read calls it takes.
	r := iotest1ByteReader{strings.NewReader("the quick fox")}
	tok := NewEnglishUTF8Tokenizer(r)
	got, err := Collect(tok)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	words := []string{"the", "quick", "fox"}
	if len(got) != len(words) {
		t.Fatalf("Collect returned %d tokens, want %d", len(got), len(words))
	}
	for i, w := range words {
		if got[i].Text != w {
			t.Errorf("token %d = %q, want %q", i, got[i].Text, w)
		}
	}
}

// iotest1ByteReader forces its wrapped reader to be consumed one byte per
// Read call, exercising the tokenizer's cursor bookkeeping under a
// pathologically small buffer.
type iotest1ByteReader struct {
	r *strings.Reader
}

func (o iotest1ByteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return o.r.Read(p[:1])
}

func TestNgramsStreamFilter_ExpandsPrefixes(t *testing.T) {
	base := NewEnglishUTF8Tokenizer(strings.NewReader("to"))
	filter := NewNgramsStreamFilter(base)
	got, err := Collect(filter)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	want := []string{"t", "to"}
	if len(got) != len(want) {
		t.Fatalf("Collect = %+v, want %v", got, want)
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("token %d = %q, want %q", i, got[i].Text, w)
		}
		if got[i].Position.TokenPos != 0 {
			t.Errorf("token %d TokenPos = %d, want 0", i, got[i].Position.TokenPos)
		}
	}
}

func TestLowercaseNgrams_ComposesAllThreeFilters(t *testing.T) {
	got, err := Collect(LowercaseNgrams(strings.NewReader("Fox")))
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	want := []string{"f", "fo", "fox"}
	if len(got) != len(want) {
		t.Fatalf("Collect = %+v, want %v", got, want)
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("token %d = %q, want %q", i, got[i].Text, w)
		}
	}
}
