package blaze

// ═══════════════════════════════════════════════════════════════════════════════
// QUERIES
// ═══════════════════════════════════════════════════════════════════════════════
// A Query is a small closed tree of five shapes: Match, Phrase, Prefix (the
// leaves) and And, Or (the combinators). Rather than one interface type per
// variant, Query is a single tagged struct — the idiomatic Go rendering of a
// closed sum type with this few variants.
// ═══════════════════════════════════════════════════════════════════════════════

// QueryKind discriminates the variant held by a Query.
type QueryKind int

const (
	// KindMatch is a free-text match: the term string is tokenized with the
	// query analyzer and the resulting terms are unioned.
	KindMatch QueryKind = iota
	// KindPhrase requires its tokens to appear at consecutive token
	// positions.
	KindPhrase
	// KindPrefix scans the term index for every term with the given
	// (untokenized) prefix.
	KindPrefix
	// KindAnd intersects its sub-queries by document id.
	KindAnd
	// KindOr unions its sub-queries.
	KindOr
)

// Query is the recursive query tree evaluated by Index.Query. Construct one
// with Match, Phrase, Prefix, And, or Or rather than building the struct
// literal directly.
type Query struct {
	Kind QueryKind
	Term string  // set for KindMatch, KindPhrase, KindPrefix
	Subs []Query // set for KindAnd, KindOr
}

// Match builds a free-text match query: s is tokenized with the query
// analyzer (whitespace + lowercase by default), duplicate tokens are
// deduplicated, and the resulting postings are unioned.
func Match(s string) Query { return Query{Kind: KindMatch, Term: s} }

// Phrase builds a query requiring every token of s, tokenized with the query
// analyzer, to appear at consecutive token positions in a document, in
// order, without deduplication.
//
// A phrase of zero or one token yields an empty result set — see the note on
// Index's phrase evaluator. This is intentional,
// preserved behavior, not an oversight.
func Phrase(s string) Query { return Query{Kind: KindPhrase, Term: s} }

// Prefix builds a query matching every document containing a term with the
// given prefix. Unlike Match and Phrase, the prefix string is not tokenized:
// pass a single token, not a phrase.
func Prefix(s string) Query { return Query{Kind: KindPrefix, Term: s} }

// And builds a query requiring every sub-query to match the same document.
func And(qs ...Query) Query { return Query{Kind: KindAnd, Subs: qs} }

// Or builds a query matching any document matched by at least one
// sub-query.
func Or(qs ...Query) Query { return Query{Kind: KindOr, Subs: qs} }
