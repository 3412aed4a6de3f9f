package blaze

import "slices"

// ═══════════════════════════════════════════════════════════════════════════════
// POSTINGS
// ═══════════════════════════════════════════════════════════════════════════════
// A PostingsList is every occurrence of one term in one document: a sorted,
// coalesced run of Positions. A PostingsMap is every document that contains one
// term, keyed by document id. The Index itself is just term -> PostingsMap.
//
// Union (Match/Or/Prefix) and intersection (And) of postings maps are built out
// of IntersectKeys (§ orderedmap.go) and MergeCoalesce (§ position.go) so that
// the "every postings list is sorted and coalesced" invariant holds
// automatically on the way out. Positional intersection (Phrase) uses
// IntersectKeys with its own two-cursor walk, whose output is in ascending
// order.
// ═══════════════════════════════════════════════════════════════════════════════

// PostingsList is every occurrence of a term within a single document: sorted
// ascending, fully coalesced.
type PostingsList = []Position

// PostingsMap records, for a single term, which documents contain it and
// where.
type PostingsMap struct {
	docs orderedMap[uint64, PostingsList]
}

// newPostingsMap returns an empty PostingsMap.
func newPostingsMap() *PostingsMap {
	return &PostingsMap{}
}

// Get returns the postings list for a document id, if the term occurs there.
func (pm *PostingsMap) Get(docID uint64) (PostingsList, bool) {
	return pm.docs.Get(docID)
}

// Set stores the postings list for a document id, replacing any existing one.
func (pm *PostingsMap) Set(docID uint64, positions PostingsList) {
	pm.docs.Set(docID, positions)
}

// Delete removes a document id's postings entirely.
func (pm *PostingsMap) Delete(docID uint64) {
	pm.docs.Delete(docID)
}

// Len reports how many documents this term occurs in.
func (pm *PostingsMap) Len() int { return pm.docs.Len() }

// DocIDs returns the document ids this term occurs in, ascending.
func (pm *PostingsMap) DocIDs() []uint64 { return pm.docs.Keys() }

// Entries calls fn for every (docID, positions) pair in ascending doc id
// order.
func (pm *PostingsMap) Entries(fn func(docID uint64, positions PostingsList)) {
	pm.docs.Entries(fn)
}

// clone returns a deep copy, since query evaluation builds transient postings
// maps that must not alias (and be mutated through) the index's own state.
func (pm *PostingsMap) clone() *PostingsMap {
	out := newPostingsMap()
	pm.Entries(func(docID uint64, positions PostingsList) {
		out.Set(docID, slices.Clone(positions))
	})
	return out
}

// mergeInto folds other's entries into pm, merge-coalescing positions for any
// document id present in both.
func (pm *PostingsMap) mergeInto(other *PostingsMap) {
	other.Entries(func(docID uint64, positions PostingsList) {
		if existing, ok := pm.Get(docID); ok {
			pm.Set(docID, MergeCoalesce(existing, positions))
		} else {
			pm.Set(docID, slices.Clone(positions))
		}
	})
}

// UnionPostings computes the union of zero or more PostingsMaps: a document
// present in any input appears in the output, with its positions from every
// contributing map merge-coalesced together. This is what backs Match (across
// query terms), Or (across sub-queries), and Prefix (across the matched term
// range).
func UnionPostings(maps []*PostingsMap) *PostingsMap {
	result := newPostingsMap()
	for _, m := range maps {
		if m == nil {
			continue
		}
		result.mergeInto(m)
	}
	return result
}

// IntersectPostings computes the intersection, by document id, of the given
// PostingsMaps: a document must appear in every one to appear in the result,
// and its output positions are the concatenation of its positions from every
// input, merge-coalesced together. This backs And.
func IntersectPostings(maps []*PostingsMap) *PostingsMap {
	switch len(maps) {
	case 0:
		return newPostingsMap()
	case 1:
		return maps[0].clone()
	}
	keySeqs := make([][]uint64, len(maps))
	for i, m := range maps {
		keySeqs[i] = m.DocIDs()
	}
	common := IntersectKeys(keySeqs)
	result := newPostingsMap()
	for _, docID := range common {
		positions, _ := maps[0].Get(docID)
		positions = slices.Clone(positions)
		for _, m := range maps[1:] {
			rest, _ := m.Get(docID)
			positions = MergeCoalesce(positions, rest)
		}
		result.Set(docID, positions)
	}
	return result
}

// intersectPositionsAdjacent implements the phrase positional-intersection
// procedure of a single adjacent token pair, for one document: it walks both
// sorted position lists with two cursors and emits a position from the left
// list immediately followed by its matching position from the right list
// whenever the left token position precedes the right by exactly one. A
// left-side position is suppressed if it is identical to the most recently
// emitted entry, which happens when both lists hold the same position (as in
// a phrase repeating one term): the right position just emitted for one match
// is then the left position of the next.
//
// This is the one place where the "emit both sides, skip the duplicate" rule
// must be reproduced exactly as the original — see the "positional
// intersection emission policy" open question: it looks asymmetric (the right
// side is never deduplicated) and that asymmetry is intentional, not a bug to
// fix.
func intersectPositionsAdjacent(left, right PostingsList) PostingsList {
	var intersection PostingsList
	l, r := 0, 0
	for l < len(left) && r < len(right) {
		lp, rp := left[l], right[r]
		switch {
		case lp.TokenPos < rp.TokenPos:
			if lp.TokenPos+1 == rp.TokenPos {
				if len(intersection) == 0 || intersection[len(intersection)-1] != lp {
					intersection = append(intersection, lp)
				}
				intersection = append(intersection, rp)
				r++
			}
			l++
		default: // lp.TokenPos >= rp.TokenPos
			r++
		}
	}
	return intersection
}

// PositionalIntersect computes, for a single adjacent token pair, the
// per-document positional intersection of two PostingsMaps: only documents
// present in both survive, and within each, positions are produced by
// intersectPositionsAdjacent.
func PositionalIntersect(left, right *PostingsMap) *PostingsMap {
	common := IntersectKeys([][]uint64{left.DocIDs(), right.DocIDs()})
	result := newPostingsMap()
	for _, docID := range common {
		lp, _ := left.Get(docID)
		rp, _ := right.Get(docID)
		positions := intersectPositionsAdjacent(lp, rp)
		if len(positions) > 0 {
			result.Set(docID, positions)
		}
	}
	return result
}
