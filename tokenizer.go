package blaze

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ═══════════════════════════════════════════════════════════════════════════════
// BYTE-STREAM TOKENIZER (optional input adapter)
// ═══════════════════════════════════════════════════════════════════════════════
// Index.Index always analyzes a materialized string. This file is for callers
// who instead have an io.Reader and want to tokenize it incrementally —
// batch pre-processing a corpus, for instance — without first buffering the
// whole thing into a string. It shares the in-memory analyzers' Unicode
// whitespace delimiting, byte offsets into the input, ngram prefix expansion
// and lowercase folding, as a pull-based reader instead of a slice built all
// at once. Unlike the in-memory analyzers, it drops every character that is
// not a letter or digit, so a run made only of such characters yields no
// token and takes no token position.
//
// Invalid UTF-8 byte sequences are not a fatal error: the cursor advances by
// one byte and tokenization continues, matching this package's "total over
// well-formed input, permissive over malformed input" stance (see the error
// handling section of the design notes). A genuine read failure from the
// underlying reader is returned as-is.
// ═══════════════════════════════════════════════════════════════════════════════

// StreamToken is the byte-stream equivalent of Token.
type StreamToken struct {
	Text     string
	Position Position
}

// StreamTokenizer is a pull-based source of StreamTokens.
type StreamTokenizer interface {
	// Read returns the next token. ok is false (with a nil error) at a clean
	// end of stream; err is non-nil only on a genuine read failure from the
	// underlying source.
	Read() (tok StreamToken, ok bool, err error)
}

// EnglishUTF8Tokenizer tokenizes a byte stream into whitespace-delimited,
// alphanumeric-only runs, tracking byte offsets against bytes consumed from
// the stream and a 0-based token ordinal.
type EnglishUTF8Tokenizer struct {
	r         *bufio.Reader
	offset    int
	numTokens int
}

// NewEnglishUTF8Tokenizer wraps r in an EnglishUTF8Tokenizer.
func NewEnglishUTF8Tokenizer(r io.Reader) *EnglishUTF8Tokenizer {
	return &EnglishUTF8Tokenizer{r: bufio.NewReader(r)}
}

// Read implements StreamTokenizer.
func (t *EnglishUTF8Tokenizer) Read() (StreamToken, bool, error) {
	var text []rune
	var begin, end int
	started := false
	for {
		r, size, err := t.r.ReadRune()
		if err == io.EOF {
			if len(text) == 0 {
				return StreamToken{}, false, nil
			}
			break
		}
		if err != nil {
			return StreamToken{}, false, err
		}
		if r == utf8.RuneError && size == 1 {
			// An undecodable byte: skip it and keep scanning, per this
			// package's policy of silently tolerating malformed input.
			t.offset++
			continue
		}
		if unicode.IsSpace(r) {
			t.offset += size
			if len(text) == 0 {
				continue
			}
			break
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			t.offset += size
			continue
		}
		if !started {
			begin = t.offset
			started = true
		}
		t.offset += size
		text = append(text, r)
		end = t.offset
	}
	pos := NewPosition(begin, end, t.numTokens)
	t.numTokens++
	return StreamToken{Text: string(text), Position: pos}, true, nil
}

// NgramsStreamFilter expands each token read from an underlying
// StreamTokenizer into its character-prefixes, the streaming equivalent of
// NgramsAnalyzer.
type NgramsStreamFilter struct {
	inner   StreamTokenizer
	pending []StreamToken
}

// NewNgramsStreamFilter wraps inner with ngram expansion.
func NewNgramsStreamFilter(inner StreamTokenizer) *NgramsStreamFilter {
	return &NgramsStreamFilter{inner: inner}
}

// Read implements StreamTokenizer.
func (f *NgramsStreamFilter) Read() (StreamToken, bool, error) {
	if len(f.pending) > 0 {
		tok := f.pending[0]
		f.pending = f.pending[1:]
		return tok, true, nil
	}
	tok, ok, err := f.inner.Read()
	if err != nil || !ok {
		return StreamToken{}, ok, err
	}
	runes := []rune(tok.Text)
	start := tok.Position.Begin()
	byteOffsets := make([]int, len(runes)+1)
	byteOffsets[0] = start
	for i, r := range runes {
		byteOffsets[i+1] = byteOffsets[i] + utf8.RuneLen(r)
	}
	prefixes := make([]StreamToken, len(runes))
	for k := 1; k <= len(runes); k++ {
		prefixes[k-1] = StreamToken{
			Text:     string(runes[:k]),
			Position: NewPosition(start, byteOffsets[k], tok.Position.TokenPos),
		}
	}
	f.pending = prefixes[1:]
	return prefixes[0], true, nil
}

// LowercaseStreamFilter lowercases every token read from an underlying
// StreamTokenizer.
type LowercaseStreamFilter struct {
	inner StreamTokenizer
}

// NewLowercaseStreamFilter wraps inner with lowercase folding.
func NewLowercaseStreamFilter(inner StreamTokenizer) *LowercaseStreamFilter {
	return &LowercaseStreamFilter{inner: inner}
}

// Read implements StreamTokenizer.
func (f *LowercaseStreamFilter) Read() (StreamToken, bool, error) {
	tok, ok, err := f.inner.Read()
	if err != nil || !ok {
		return StreamToken{}, ok, err
	}
	tok.Text = strings.ToLower(tok.Text)
	return tok, true, nil
}

// LowercaseNgrams composes the three filters above into the streaming
// counterpart of NgramsAnalyzer: English tokenization, ngram expansion, then
// lowercase folding.
func LowercaseNgrams(r io.Reader) StreamTokenizer {
	return NewLowercaseStreamFilter(NewNgramsStreamFilter(NewEnglishUTF8Tokenizer(r)))
}

// Collect drains t to completion, returning every token in order.
func Collect(t StreamTokenizer) ([]StreamToken, error) {
	var tokens []StreamToken
	for {
		tok, ok, err := t.Read()
		if err != nil {
			return tokens, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
