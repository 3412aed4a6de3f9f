// Package blaze implements an in-memory inverted index for full-text search
// over short text documents.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS AN INVERTED INDEX?
// ═══════════════════════════════════════════════════════════════════════════════
// An inverted index is like the index at the back of a book, but for search
// engines.
//
// Example: given these documents:
//
//	Doc 1: "learn to program"
//	Doc 2: "what did you do"
//
// the inverted index would look like:
//
//	"learn"   → Doc1 @ position 0
//	"to"      → Doc1 @ position 1
//	"program" → Doc1 @ position 2
//	"what"    → Doc2 @ position 0
//	"did"     → Doc2 @ position 1
//	"you"     → Doc2 @ position 2
//	"do"      → Doc2 @ position 3
//
// This lets us find documents containing a word instantly, check whether
// words occur consecutively (phrase search), and score how much of a
// document's content matched (ranking) — all without scanning every
// document's content on every query.
// ═══════════════════════════════════════════════════════════════════════════════

package blaze

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// Index is an in-memory inverted index: an ordered map from term to postings,
// alongside the document store those postings point into. Concurrent calls to
// Index.Index are serialized by an internal lock (see Index.Index). Query and
// Search take no lock: any number of them may run concurrently with each
// other, but not concurrently with Index.Index, which mutates the maps they
// read.
type Index struct {
	mu sync.Mutex

	terms orderedMap[string, *PostingsMap]
	docs  orderedMap[uint64, *Document]

	queryAnalyzer Analyzer
	docAnalyzer   Analyzer
	logger        *slog.Logger

	idBitmap *roaring.Bitmap // lazily (re)built snapshot backing DocIDs
}

// New returns an empty Index using the default analyzer pair: whitespace for
// queries, ngrams for documents.
func New() *Index {
	return NewBuilder().Build()
}

// IndexBuilder constructs an Index with a non-default analyzer pair and/or
// logger, following the fluent construction idiom used elsewhere in this
// package for small, optional configuration surfaces.
type IndexBuilder struct {
	queryAnalyzer Analyzer
	docAnalyzer   Analyzer
	logger        *slog.Logger
}

// NewBuilder returns an IndexBuilder seeded with the default analyzer pair.
func NewBuilder() *IndexBuilder {
	return &IndexBuilder{
		queryAnalyzer: WhitespaceAnalyzer{},
		docAnalyzer:   NgramsAnalyzer{},
	}
}

// WithQueryAnalyzer overrides the analyzer used to tokenize Match, Phrase,
// and the And/Or terms built from them.
func (b *IndexBuilder) WithQueryAnalyzer(a Analyzer) *IndexBuilder {
	b.queryAnalyzer = a
	return b
}

// WithDocAnalyzer overrides the analyzer used to tokenize indexed document
// content.
func (b *IndexBuilder) WithDocAnalyzer(a Analyzer) *IndexBuilder {
	b.docAnalyzer = a
	return b
}

// WithLogger overrides the logger used for indexing events. Defaults to
// slog.Default().
func (b *IndexBuilder) WithLogger(logger *slog.Logger) *IndexBuilder {
	b.logger = logger
	return b
}

// Build constructs the configured, empty Index.
func (b *IndexBuilder) Build() *Index {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{
		queryAnalyzer: b.queryAnalyzer,
		docAnalyzer:   b.docAnalyzer,
		logger:        logger,
	}
}

// Index inserts doc, or replaces the document previously stored under
// doc.ID. Replacement removes every postings entry the previous content
// contributed before analyzing and inserting the new content, so the index
// never retains stale terms from content that's no longer there.
//
// Index takes idx's internal lock for its duration; Query and Search do not,
// since they only read the index's term and document maps, so they must not
// run concurrently with Index. This mirrors the rest of this package's
// convention of locking around mutation and leaving read paths lock-free.
func (idx *Index) Index(doc Document) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	prev, hadPrev := idx.docs.Get(doc.ID)
	stored := doc
	idx.docs.Set(doc.ID, &stored)
	idx.idBitmap = nil

	if hadPrev {
		removed := 0
		for _, tok := range idx.docAnalyzer.Analyze(prev.Content) {
			pm, ok := idx.terms.Get(tok.Term)
			if !ok {
				continue
			}
			pm.Delete(doc.ID)
			removed++
			if pm.Len() == 0 {
				idx.terms.Delete(tok.Term)
			}
		}
		idx.logger.Info("replaced document", slog.Uint64("docID", doc.ID), slog.Int("termsRemoved", removed))
	} else {
		idx.logger.Debug("indexed document", slog.Uint64("docID", doc.ID))
	}

	for _, tok := range idx.docAnalyzer.Analyze(doc.Content) {
		pm, ok := idx.terms.Get(tok.Term)
		if !ok {
			pm = newPostingsMap()
			idx.terms.Set(tok.Term, pm)
		}
		positions, _ := pm.Get(doc.ID)
		positions, _ = SearchCoalesce(positions, 0, tok.Position)
		pm.Set(doc.ID, positions)
	}
}

// Query evaluates q against the index and returns the matching documents,
// sorted by descending score.
func (idx *Index) Query(q Query) []SearchResult {
	postings := idx.queryRec(q)
	return idx.computeResults(postings)
}

// Search is sugar for Query(Match(s)).
func (idx *Index) Search(s string) []SearchResult {
	return idx.Query(Match(s))
}

// DocIDs returns a snapshot of the set of currently indexed document ids as a
// roaring bitmap, for callers who want compact, set-algebra-capable coverage
// reporting (e.g. comparing which ids this index holds against another
// collaborator's coverage). It is not used by Index/Query/Search themselves,
// which continue to operate on the ordered document store directly.
func (idx *Index) DocIDs() *roaring.Bitmap {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.idBitmap == nil {
		bm := roaring.NewBitmap()
		for _, id := range idx.docs.Keys() {
			bm.Add(uint32(id))
		}
		idx.idBitmap = bm
	}
	return idx.idBitmap.Clone()
}

// postings evaluates a Match query: the query text is tokenized with the
// query analyzer, duplicate terms are dropped (preserving first occurrence),
// and the surviving terms' postings are unioned.
func (idx *Index) postings(query string) *PostingsMap {
	terms := uniqueTerms(idx.queryAnalyzer.AnalyzeTerms(query))
	maps := make([]*PostingsMap, 0, len(terms))
	for _, term := range terms {
		if pm, ok := idx.terms.Get(term); ok {
			maps = append(maps, pm)
		}
	}
	return UnionPostings(maps)
}

// phrase evaluates a Phrase query: tokens are taken in order, without
// deduplication, and every adjacent pair is positionally intersected before
// the per-pair results are intersected by document id. A phrase with fewer
// than two tokens has no adjacent pairs and degenerates to an empty result —
// see the package-level note on Query's Phrase constructor.
func (idx *Index) phrase(phrase string) *PostingsMap {
	terms := idx.queryAnalyzer.AnalyzeTerms(phrase)
	if len(terms) < 2 {
		return newPostingsMap()
	}
	pairs := make([]*PostingsMap, 0, len(terms)-1)
	for i := 0; i < len(terms)-1; i++ {
		left, okLeft := idx.terms.Get(terms[i])
		right, okRight := idx.terms.Get(terms[i+1])
		if !okLeft || !okRight {
			pairs = append(pairs, newPostingsMap())
			continue
		}
		pairs = append(pairs, PositionalIntersect(left, right))
	}
	return IntersectPostings(pairs)
}

// prefix evaluates a Prefix query: it range-scans the term index over
// [prefix, upperBound), where upperBound is built from the successor of
// prefix's last character (or is unbounded, if that character has no
// successor). The prefix string is never itself tokenized.
func (idx *Index) prefix(prefix string) *PostingsMap {
	if prefix == "" {
		return newPostingsMap()
	}
	runes := []rune(prefix)
	last := len(runes) - 1
	var upper *string
	if next, ok := Successor(runes[last]); ok {
		u := string(runes[:last]) + string(next)
		upper = &u
	}
	return UnionPostings(idx.terms.ValuesInRange(prefix, upper))
}

// queryRec recursively evaluates q's tree into a single postings map.
func (idx *Index) queryRec(q Query) *PostingsMap {
	switch q.Kind {
	case KindMatch:
		return idx.postings(q.Term)
	case KindPhrase:
		return idx.phrase(q.Term)
	case KindPrefix:
		return idx.prefix(q.Term)
	case KindAnd:
		subs := make([]*PostingsMap, len(q.Subs))
		for i, sub := range q.Subs {
			subs[i] = idx.queryRec(sub)
		}
		return IntersectPostings(subs)
	case KindOr:
		subs := make([]*PostingsMap, len(q.Subs))
		for i, sub := range q.Subs {
			subs[i] = idx.queryRec(sub)
		}
		return UnionPostings(subs)
	default:
		return newPostingsMap()
	}
}

// computeResults converts a postings map into the sorted SearchResult list
// callers see: one result per document, scored, then sorted by descending
// score.
func (idx *Index) computeResults(postings *PostingsMap) []SearchResult {
	var results []SearchResult
	postings.Entries(func(docID uint64, positions PostingsList) {
		docPtr, ok := idx.docs.Get(docID)
		if !ok {
			return
		}
		results = append(results, newSearchResult(docPtr, positions))
	})
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// uniqueTerms returns terms with duplicates removed, preserving the order of
// first occurrence.
func uniqueTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
