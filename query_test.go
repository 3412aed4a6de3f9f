package blaze

import "testing"

func TestQuery_Constructors(t *testing.T) {
	cases := []struct {
		name string
		q    Query
		kind QueryKind
	}{
		{"Match", Match("fox"), KindMatch},
		{"Phrase", Phrase("quick fox"), KindPhrase},
		{"Prefix", Prefix("fo"), KindPrefix},
		{"And", And(Match("a"), Match("b")), KindAnd},
		{"Or", Or(Match("a"), Match("b")), KindOr},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.q.Kind != c.kind {
				t.Errorf("%s Kind = %v, want %v", c.name, c.q.Kind, c.kind)
			}
		})
	}
}

func TestQuery_AndOr_EmptySubs(t *testing.T) {
	idx := setupIndex(NewDocument(1, "quick brown fox"))

	if got := idx.Query(And()); len(got) != 0 {
		t.Errorf("And() with no sub-queries = %v, want empty", resultIDs(got))
	}
	if got := idx.Query(Or()); len(got) != 0 {
		t.Errorf("Or() with no sub-queries = %v, want empty", resultIDs(got))
	}
}

func TestQuery_Match_NoResultsForUnknownTerm(t *testing.T) {
	idx := setupIndex(NewDocument(1, "quick brown fox"))

	results := idx.Query(Match("elephant"))
	if len(results) != 0 {
		t.Errorf("Match(elephant) = %v, want empty", resultIDs(results))
	}
}

func TestQuery_Prefix_EmptyStringMatchesNothing(t *testing.T) {
	idx := setupIndex(NewDocument(1, "quick brown fox"))

	results := idx.Query(Prefix(""))
	if len(results) != 0 {
		t.Errorf("Prefix(\"\") = %v, want empty", resultIDs(results))
	}
}

func TestPostings_UnionPostings(t *testing.T) {
	a := newPostingsMap()
	a.Set(1, PostingsList{NewPosition(0, 3, 0)})
	b := newPostingsMap()
	b.Set(1, PostingsList{NewPosition(4, 8, 1)})
	b.Set(2, PostingsList{NewPosition(0, 3, 0)})

	u := UnionPostings([]*PostingsMap{a, b})
	if u.Len() != 2 {
		t.Fatalf("UnionPostings Len() = %d, want 2", u.Len())
	}
	p1, _ := u.Get(1)
	if len(p1) != 2 {
		t.Errorf("union doc 1 positions = %v, want 2 entries", p1)
	}
}

func TestPostings_IntersectPostings(t *testing.T) {
	a := newPostingsMap()
	a.Set(1, PostingsList{NewPosition(0, 3, 0)})
	a.Set(2, PostingsList{NewPosition(0, 3, 0)})
	b := newPostingsMap()
	b.Set(2, PostingsList{NewPosition(4, 8, 1)})
	b.Set(3, PostingsList{NewPosition(0, 3, 0)})

	out := IntersectPostings([]*PostingsMap{a, b})
	if out.Len() != 1 {
		t.Fatalf("IntersectPostings Len() = %d, want 1", out.Len())
	}
	if _, ok := out.Get(2); !ok {
		t.Errorf("IntersectPostings missing doc 2")
	}
}

func TestPostings_IntersectPostings_ZeroAndOneMap(t *testing.T) {
	if got := IntersectPostings(nil); got.Len() != 0 {
		t.Errorf("IntersectPostings(nil) Len() = %d, want 0", got.Len())
	}
	a := newPostingsMap()
	a.Set(1, PostingsList{NewPosition(0, 3, 0)})
	out := IntersectPostings([]*PostingsMap{a})
	if out.Len() != 1 {
		t.Errorf("IntersectPostings single map Len() = %d, want 1", out.Len())
	}
	// The result must be independent storage, not an alias of a.
	out.Set(2, PostingsList{NewPosition(0, 1, 0)})
	if a.Len() != 1 {
		t.Errorf("IntersectPostings single-map result aliases its input")
	}
}

func TestPostings_PositionalIntersect_EmptyWhenNoAdjacency(t *testing.T) {
	left := newPostingsMap()
	left.Set(1, PostingsList{NewPosition(0, 5, 0)})
	right := newPostingsMap()
	right.Set(1, PostingsList{NewPosition(10, 15, 5)}) // far from adjacent

	out := PositionalIntersect(left, right)
	if out.Len() != 0 {
		t.Errorf("PositionalIntersect with no adjacency Len() = %d, want 0 (doc dropped, not kept empty)", out.Len())
	}
}

func TestPostings_IntersectKeys(t *testing.T) {
	got := IntersectKeys([][]uint64{
		{1, 2, 3, 5, 8},
		{2, 3, 4, 8},
		{2, 3, 8, 9},
	})
	want := []uint64{2, 3, 8}
	if len(got) != len(want) {
		t.Fatalf("IntersectKeys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IntersectKeys = %v, want %v", got, want)
		}
	}
}

func TestPostings_IntersectKeys_EmptyInput(t *testing.T) {
	if got := IntersectKeys[uint64](nil); got != nil {
		t.Errorf("IntersectKeys(nil) = %v, want nil", got)
	}
}
