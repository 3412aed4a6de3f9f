package blaze

import (
	"cmp"
	"sort"

	"slices"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ORDERED MAPS
// ═══════════════════════════════════════════════════════════════════════════════
// Both the term→postings index and the per-term doc→positions postings map need
// to be kept in ascending key order: Prefix queries range-scan the term index by
// lexicographic key order, and And/Or/Phrase evaluation walks postings maps by
// ascending document id. Go's builtin map has neither property, and the corpus
// this package is built from reaches for a concrete, purpose-built structure
// rather than an external ordered-map dependency for this concern — so
// orderedMap is a small sorted-slice map, searched and mutated with the
// standard library's sort/slices packages.
// ═══════════════════════════════════════════════════════════════════════════════

// orderedMap is a map kept sorted ascending by key, backed by parallel slices
// so that both binary search (by key) and ordered range scans are cheap.
type orderedMap[K cmp.Ordered, V any] struct {
	keys []K
	vals []V
}

// search returns the index of key if present, or the insertion index and
// false otherwise.
func (m *orderedMap[K, V]) search(key K) (int, bool) {
	i := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= key })
	if i < len(m.keys) && m.keys[i] == key {
		return i, true
	}
	return i, false
}

// Get returns the value stored under key, if any.
func (m *orderedMap[K, V]) Get(key K) (V, bool) {
	i, ok := m.search(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// ValuesInRange returns the values whose key is >= lo and, if hi != nil,
// < *hi, in ascending key order.
func (m *orderedMap[K, V]) ValuesInRange(lo K, hi *K) []V {
	start, end := m.RangeIndices(lo, hi)
	return m.vals[start:end]
}

// Set inserts or overwrites the value stored under key.
func (m *orderedMap[K, V]) Set(key K, val V) {
	i, ok := m.search(key)
	if ok {
		m.vals[i] = val
		return
	}
	m.keys = slices.Insert(m.keys, i, key)
	m.vals = slices.Insert(m.vals, i, val)
}

// Delete removes key, if present.
func (m *orderedMap[K, V]) Delete(key K) {
	i, ok := m.search(key)
	if !ok {
		return
	}
	m.keys = slices.Delete(m.keys, i, i+1)
	m.vals = slices.Delete(m.vals, i, i+1)
}

// Len reports the number of entries.
func (m *orderedMap[K, V]) Len() int { return len(m.keys) }

// Keys returns the keys in ascending order. The returned slice aliases the
// map's internal storage and must not be mutated by the caller.
func (m *orderedMap[K, V]) Keys() []K { return m.keys }

// Entries calls fn for every entry in ascending key order.
func (m *orderedMap[K, V]) Entries(fn func(key K, val V)) {
	for i, key := range m.keys {
		fn(key, m.vals[i])
	}
}

// RangeIndices returns the half-open [start, end) slice bounds of entries
// whose key is >= lo and, if hi != nil, < *hi.
func (m *orderedMap[K, V]) RangeIndices(lo K, hi *K) (start, end int) {
	start = sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= lo })
	if hi == nil {
		end = len(m.keys)
		return
	}
	end = sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= *hi })
	if end < start {
		end = start
	}
	return
}

// ═══════════════════════════════════════════════════════════════════════════════
// MULTI-MAP KEY INTERSECTION (galloping / leapfrog)
// ═══════════════════════════════════════════════════════════════════════════════
// IntersectKeys finds the keys common to every one of N ascending sequences
// without materializing any sequence's full cross product. It works by
// picking a candidate ("maximum") from the first sequence, then fast-forwarding
// every other sequence up to that candidate. If a sequence jumps past the
// candidate, its value becomes the new candidate and the scan restarts,
// skipping only the sequence that produced it (since that one is already
// caught up). When every sequence agrees on the candidate, it's part of the
// intersection, and the scan resumes from the first sequence's next element.
// ═══════════════════════════════════════════════════════════════════════════════

// IntersectKeys returns, in ascending order, the keys present in every one of
// the given ascending key sequences.
func IntersectKeys[K cmp.Ordered](seqs [][]K) []K {
	if len(seqs) == 0 {
		return nil
	}
	cursors := make([]int, len(seqs))
	var result []K
	for {
		if cursors[0] >= len(seqs[0]) {
			return result
		}
		maximum := seqs[0][cursors[0]]
		cursors[0]++
		skip := 0
		for {
			retried := false
			for i := range seqs {
				if i == skip {
					continue
				}
				seq := seqs[i]
				for cursors[i] < len(seq) && seq[cursors[i]] < maximum {
					cursors[i]++
				}
				if cursors[i] >= len(seq) {
					return result
				}
				val := seq[cursors[i]]
				cursors[i]++
				if val > maximum {
					maximum = val
					skip = i
					retried = true
					break
				}
			}
			if !retried {
				result = append(result, maximum)
				break
			}
		}
	}
}
