package blaze

import (
	"math"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// RESULT CONSTRUCTION, SCORING, HIGHLIGHTING
// ═══════════════════════════════════════════════════════════════════════════════
// A SearchResult pairs a matched Document with the positions that matched it.
// Scoring is deliberately simple (no TF-IDF, no BM25): the total matched byte
// length divided by the square root of the document's byte length. That
// square root is what keeps a one-word document from always outranking a
// longer one that happens to contain the same match more than once.
// ═══════════════════════════════════════════════════════════════════════════════

// SearchResult is a single document matched by a query, along with the
// positions within it that caused the match.
type SearchResult struct {
	// Doc points at the matched document as currently stored in the index.
	Doc *Document
	// Positions are the matched occurrences, already sorted and coalesced —
	// computeResults never re-sorts them.
	Positions []Position
	// Score ranks this result against others from the same query: higher is
	// more relevant. Ties are not given any particular tie-break order.
	Score float64
}

// newSearchResult builds a SearchResult for doc from its matched positions,
// computing Score as the summed matched byte length over the square root of
// the document's byte length.
func newSearchResult(doc *Document, positions []Position) SearchResult {
	var matched int
	for _, p := range positions {
		matched += p.End() - p.Begin()
	}
	return SearchResult{
		Doc:       doc,
		Positions: positions,
		Score:     float64(matched) / math.Sqrt(float64(len(doc.Content))),
	}
}

// Highlight renders the document's content with before/after delimiters
// wrapped around every matched position. Because positions are sorted and
// coalesced, delimiters never nest: each before/after pair surrounds exactly
// one span, and the unmatched content between spans (and before the first and
// after the last) passes through unchanged. A result with zero positions
// returns the content unchanged.
func (r SearchResult) Highlight(before, after string) string {
	var b strings.Builder
	prevEnd := 0
	for _, p := range r.Positions {
		b.WriteString(r.Doc.Content[prevEnd:p.Begin()])
		b.WriteString(before)
		b.WriteString(r.Doc.Content[p.Begin():p.End()])
		b.WriteString(after)
		prevEnd = p.End()
	}
	b.WriteString(r.Doc.Content[prevEnd:])
	return b.String()
}
