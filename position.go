package blaze

import (
	"cmp"
	"sort"

	"slices"
)

// ═══════════════════════════════════════════════════════════════════════════════
// MERGE / COALESCE PRIMITIVES
// ═══════════════════════════════════════════════════════════════════════════════
// Every postings list in this package is a sorted, coalesced slice: strictly
// increasing, with no two neighboring elements that could be combined into one.
// Indexing and the union/intersection combinators route every insertion into a
// postings list through Coalesce/SearchCoalesce/MergeCoalesce so the invariant
// holds again by the time the call returns.
//
// WHY A GENERIC INTERFACE INSTEAD OF CONCRETE []Position EVERYWHERE?
// --------------------------------------------------------------------------------
// Position is the only type that actually needs this today, but the merge
// logic (four-case coalesce, binary-search-then-coalesce, streaming
// merge-coalesce) has nothing to do with Position specifically: it's an
// operator on any totally-ordered, pairwise-mergeable element. Expressing it
// once as a generic keeps the interesting algorithm in one place instead of
// duplicated per element type.
// ═══════════════════════════════════════════════════════════════════════════════

// Mergeable is the contract a sorted sequence's element type must satisfy to be
// coalesced by Coalesce/SearchCoalesce/MergeCoalesce.
type Mergeable[T any] interface {
	// Compare reports the sort order of the receiver against other: negative if
	// the receiver sorts first, zero if equal, positive otherwise.
	Compare(other T) int
	// Merge attempts to combine the receiver with other into a single coalesced
	// value. ok is false when the two cannot be combined (e.g. they don't share
	// whatever discriminator makes them "the same occurrence").
	Merge(other T) (merged T, ok bool)
}

// Position records where a single term occurrence falls within a document: the
// half-open byte range of the occurrence, and the 0-based index of the
// whitespace-delimited word it belongs to.
type Position struct {
	// Offsets is the half-open [begin, end) byte range into the document's
	// Content. end is always > begin.
	Offsets [2]int
	// TokenPos is the 0-based ordinal of the whitespace-delimited word this
	// occurrence belongs to, independent of how many terms an analyzer emits
	// per word.
	TokenPos int
}

// NewPosition constructs a Position from a byte range and a token position.
func NewPosition(begin, end, tokenPos int) Position {
	return Position{Offsets: [2]int{begin, end}, TokenPos: tokenPos}
}

// Begin returns the inclusive start byte offset of the occurrence.
func (p Position) Begin() int { return p.Offsets[0] }

// End returns the exclusive end byte offset of the occurrence.
func (p Position) End() int { return p.Offsets[1] }

// Compare orders Positions lexicographically by (Offsets, TokenPos), matching
// the order postings lists are kept sorted under.
func (p Position) Compare(other Position) int {
	if c := cmp.Compare(p.Offsets[0], other.Offsets[0]); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Offsets[1], other.Offsets[1]); c != 0 {
		return c
	}
	return cmp.Compare(p.TokenPos, other.TokenPos)
}

// Merge combines two Positions that refer to the same whitespace token into
// the convex hull of their byte ranges. Two Positions are mergeable only when
// they share TokenPos and their byte ranges touch or overlap.
func (p Position) Merge(other Position) (Position, bool) {
	if p.TokenPos != other.TokenPos {
		return Position{}, false
	}
	begin1, end1 := p.Offsets[0], p.Offsets[1]
	begin2, end2 := other.Offsets[0], other.Offsets[1]
	if begin2 < begin1 {
		begin1, begin2 = begin2, begin1
		end1, end2 = end2, end1
	}
	if end1 < begin2 {
		return Position{}, false
	}
	end := end1
	if end2 > end {
		end = end2
	}
	return Position{Offsets: [2]int{begin1, end}, TokenPos: p.TokenPos}, true
}

// Coalesce inserts el at logical index i of the sorted, coalesced slice v,
// attempting to merge it with its would-be neighbors rather than always
// inserting a new element. Four cases, matching the neighbor(s) present:
//
//  1. v is empty: el is simply inserted.
//  2. i == 0: try merging el with v[0]; replace v[0] on success, else insert.
//  3. i == len(v): try merging v[last] with el; replace the tail on success,
//     else append.
//  4. Otherwise: try merging v[i-1] with el first. If that succeeds, the
//     result may now also be mergeable with v[i] (e.g. el fills the gap
//     between two existing entries), so a second merge is attempted and v[i]
//     is dropped if it also coalesces. If the v[i-1]-with-el merge fails, try
//     el with v[i] instead. If neither neighbor merges, el is inserted as its
//     own element.
func Coalesce[T Mergeable[T]](v []T, i int, el T) []T {
	switch {
	case len(v) == 0:
		return slices.Insert(v, i, el)
	case i == 0:
		if merged, ok := el.Merge(v[0]); ok {
			v[0] = merged
			return v
		}
		return slices.Insert(v, i, el)
	case i == len(v):
		if merged, ok := v[i-1].Merge(el); ok {
			v[i-1] = merged
			return v
		}
		return slices.Insert(v, i, el)
	default:
		if merged, ok := v[i-1].Merge(el); ok {
			v[i-1] = merged
			if merged2, ok2 := v[i-1].Merge(v[i]); ok2 {
				v[i-1] = merged2
				return slices.Delete(v, i, i+1)
			}
			return v
		}
		if merged, ok := el.Merge(v[i]); ok {
			v[i] = merged
			return v
		}
		return slices.Insert(v, i, el)
	}
}

// SearchCoalesce binary-searches v[start:] for el. If an equal element is
// already present, it returns its index unchanged (el is a no-op duplicate).
// Otherwise it coalesces el at the insertion point found by the search and
// returns the resulting index. The returned index is a valid lower bound for
// the next call's start when callers feed elements in ascending order, which
// is what lets MergeCoalesce run in O(n+m) instead of O(n*m).
func SearchCoalesce[T Mergeable[T]](v []T, start int, el T) ([]T, int) {
	rel := sort.Search(len(v)-start, func(k int) bool {
		return v[start+k].Compare(el) >= 0
	})
	idx := start + rel
	if idx < len(v) && v[idx].Compare(el) == 0 {
		return v, idx
	}
	return Coalesce(v, idx, el), idx
}

// MergeCoalesce streams the elements of other (which must be in ascending
// order) into v, via repeated SearchCoalesce calls threading the returned
// index through as the next search's start. The result is the same sorted,
// coalesced sequence as sorting and coalescing v++other from scratch.
func MergeCoalesce[T Mergeable[T]](v []T, other []T) []T {
	idx := 0
	for _, el := range other {
		v, idx = SearchCoalesce(v, idx, el)
	}
	return v
}
