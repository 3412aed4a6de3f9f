package blaze

import (
	"strings"
	"unicode"
	"unicode/utf8"

	snowballeng "github.com/kljensen/snowball/english"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ANALYZERS
// ═══════════════════════════════════════════════════════════════════════════════
// An Analyzer turns a string into an ordered stream of (term, Position) pairs.
// Every variant shares the same tokenization and offset-tracking rules; they
// only differ in how many terms they emit per word:
//
//	WhitespaceAnalyzer("learn to")  -> [("learn",@0), ("to",@1)]
//	NgramsAnalyzer("learn to")      -> [("l",@0),("le",@0),("lea",@0),("lear",@0),
//	                                    ("learn",@0),("t",@1),("to",@1)]
//
// Both are built on the same word-splitting pass: runs of non-whitespace
// characters become "words", each numbered by its 0-based position among
// surviving words (whitespace runs contribute no position of their own). A
// word's term text is always produced by folding to lowercase; its byte
// offsets always index into the *original* (non-lowercased) input, since
// that's what highlight rendering slices out of a document's content.
// ═══════════════════════════════════════════════════════════════════════════════

// Token is a single (term, Position) pair produced by an Analyzer.
type Token struct {
	Term     string
	Position Position
}

// Analyzer converts a string into an ordered stream of terms with their
// positions within the string.
type Analyzer interface {
	// Analyze returns every (term, Position) pair in s, ordered by ascending
	// token position and, within a token position, ascending term length.
	Analyze(s string) []Token
	// AnalyzeTerms returns only the term text of Analyze's output, in the
	// same order.
	AnalyzeTerms(s string) []string
}

// wordChar is one character of a word, carrying the byte offset (into the
// original string) at which it begins.
type wordChar struct {
	byteOffset int
	r          rune
}

// word is a maximal run of non-whitespace characters, numbered by its 0-based
// ordinal among the words of the string it came from.
type word struct {
	chars []wordChar
	pos   int
}

// splitWords breaks s into words delimited by Unicode whitespace, recording
// each surviving word's characters (with byte offsets into s) and its 0-based
// token position.
func splitWords(s string) []word {
	var words []word
	var current []wordChar
	pos := 0
	for i, r := range s {
		if unicode.IsSpace(r) {
			if len(current) > 0 {
				words = append(words, word{chars: current, pos: pos})
				pos++
				current = nil
			}
			continue
		}
		current = append(current, wordChar{byteOffset: i, r: r})
	}
	if len(current) > 0 {
		words = append(words, word{chars: current, pos: pos})
	}
	return words
}

// prefixToken builds the Token for the k-character prefix (1-indexed, k in
// [1, len(w.chars)]) of word w: the term is the lowercase-folded prefix, and
// the offsets span from the word's first character to the byte just past the
// k-th character.
func prefixToken(w word, k int) Token {
	runes := make([]rune, k)
	for i := 0; i < k; i++ {
		runes[i] = w.chars[i].r
	}
	term := strings.ToLower(string(runes))
	begin := w.chars[0].byteOffset
	last := w.chars[k-1]
	end := last.byteOffset + utf8.RuneLen(last.r)
	return Token{Term: term, Position: NewPosition(begin, end, w.pos)}
}

func termsOf(tokens []Token) []string {
	terms := make([]string, len(tokens))
	for i, t := range tokens {
		terms[i] = t.Term
	}
	return terms
}

// WhitespaceAnalyzer yields exactly one token per word: the whole word,
// lowercased, spanning its full byte range. This is the default query
// analyzer — queries are matched against whole terms, not ngram prefixes.
type WhitespaceAnalyzer struct{}

// Analyze implements Analyzer.
func (WhitespaceAnalyzer) Analyze(s string) []Token {
	words := splitWords(s)
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, prefixToken(w, len(w.chars)))
	}
	return tokens
}

// AnalyzeTerms implements Analyzer.
func (a WhitespaceAnalyzer) AnalyzeTerms(s string) []string { return termsOf(a.Analyze(s)) }

// NgramsAnalyzer yields one token per character-prefix of each word (length
// 1 through the word's full length), all sharing the word's token position.
// This is the default document analyzer: it's what lets a query for "to"
// match a document containing "today" at the prefix "to", and what lets
// Prefix queries range-scan the term index directly.
type NgramsAnalyzer struct{}

// Analyze implements Analyzer.
func (NgramsAnalyzer) Analyze(s string) []Token {
	words := splitWords(s)
	var tokens []Token
	for _, w := range words {
		for k := 1; k <= len(w.chars); k++ {
			tokens = append(tokens, prefixToken(w, k))
		}
	}
	return tokens
}

// AnalyzeTerms implements Analyzer.
func (a NgramsAnalyzer) AnalyzeTerms(s string) []string { return termsOf(a.Analyze(s)) }

// StemmingAnalyzer is an optional, non-default analyzer: it tokenizes like
// WhitespaceAnalyzer (one token per word), folds each term to lowercase, then
// reduces it to its English Porter2 stem via snowballeng.
//
// It exists for callers who explicitly want stemmed matching — e.g. so a
// query for "running" can match indexed content containing "run" — and is
// never assembled into New()'s default pipeline, since stemming departs from
// the core's documented default semantics (plain Unicode lowercase folding,
// nothing else). Wire it in via IndexBuilder.WithQueryAnalyzer or
// WithDocAnalyzer when that tradeoff is wanted.
type StemmingAnalyzer struct{}

// Analyze implements Analyzer.
func (StemmingAnalyzer) Analyze(s string) []Token {
	words := splitWords(s)
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tok := prefixToken(w, len(w.chars))
		tok.Term = snowballeng.Stem(tok.Term, false)
		tokens = append(tokens, tok)
	}
	return tokens
}

// AnalyzeTerms implements Analyzer.
func (a StemmingAnalyzer) AnalyzeTerms(s string) []string { return termsOf(a.Analyze(s)) }
