package forest

import (
	"slices"
	"testing"

	"github.com/enadeau/combspec/internal/label"
)

func l(v int) label.Label { return label.Label(v) }

func ls(vs ...int) []label.Label {
	out := make([]label.Label, len(vs))
	for i, v := range vs {
		out[i] = l(v)
	}
	return out
}

func rk(parent int, children []label.Label, shifts []int, bucket Bucket) ForestRuleKey {
	return ForestRuleKey{Parent: l(parent), Children: children, Shifts: shifts, Bucket: bucket}
}

func assertValue(t *testing.T, tb *TableMethod, c int, want Value) {
	t.Helper()
	if got := tb.function.Get(l(c)); got != want {
		t.Fatalf("function.Get(%d) = %v, want %v", c, got, want)
	}
}

// Ported from table_method.rs's pumping_132_universe_test: the rules of the
// classic 132-avoider tree, plus a dummy undefined rule that never gets a
// chance to fire because its parent (2) is already pumping.
func TestPumping132Universe(t *testing.T) {
	t.Parallel()

	rules := []ForestRuleKey{
		rk(0, ls(1, 2), []int{0, 0}, BucketNormal),
		rk(1, nil, nil, BucketVerification),
		rk(2, ls(3), []int{0}, BucketEquiv),
		rk(3, ls(4), []int{0}, BucketEquiv),
		rk(4, ls(5, 0, 0), []int{0, 1, 1}, BucketNormal),
		rk(5, nil, nil, BucketVerification),
		rk(2, ls(6), []int{2}, BucketUndefined),
	}
	tb := NewTableMethod()
	for _, r := range rules {
		tb.AddRuleKey(r)
	}

	for c := 0; c < 6; c++ {
		assertValue(t, tb, c, Infinite)
		if !tb.IsPumping(l(c)) {
			t.Fatalf("class %d should be pumping", c)
		}
	}
	if tb.IsPumping(l(6)) {
		t.Fatal("class 6 should not be pumping")
	}

	want := map[label.Label][]label.Label{
		l(0): ls(1, 2),
		l(1): {},
		l(2): ls(3),
		l(3): ls(4),
		l(4): ls(5, 0, 0),
		l(5): {},
	}
	got := make(map[label.Label][]label.Label)
	for _, key := range tb.PumpingSubuniverse() {
		p, c := key.Key()
		got[p] = c
	}
	if len(got) != len(want) {
		t.Fatalf("pumping_subuniverse has %d distinct parents, want %d", len(got), len(want))
	}
	for p, wc := range want {
		gc, ok := got[p]
		if !ok {
			t.Fatalf("pumping_subuniverse missing parent %d", p)
		}
		if !slices.Equal(gc, wc) {
			t.Fatalf("pumping_subuniverse[%d] children = %v, want %v", p, gc, wc)
		}
	}
}

// Ported from universe132_pumping_progressive_test: same rule set, added
// one at a time, with the function's values checked after every insertion.
func TestUniverse132PumpingProgressive(t *testing.T) {
	t.Parallel()

	tb := NewTableMethod()

	tb.AddRuleKey(rk(0, ls(1, 2), []int{0, 0}, BucketNormal))
	assertValue(t, tb, 0, 0)
	assertValue(t, tb, 1, 0)
	assertValue(t, tb, 2, 0)

	tb.AddRuleKey(rk(1, nil, nil, BucketVerification))
	assertValue(t, tb, 0, 0)
	assertValue(t, tb, 1, Infinite)
	assertValue(t, tb, 2, 0)

	tb.AddRuleKey(rk(2, ls(3), []int{0}, BucketEquiv))
	assertValue(t, tb, 0, 0)
	assertValue(t, tb, 1, Infinite)
	assertValue(t, tb, 2, 0)
	assertValue(t, tb, 3, 0)

	tb.AddRuleKey(rk(3, ls(4), []int{0}, BucketEquiv))
	assertValue(t, tb, 0, 0)
	assertValue(t, tb, 1, Infinite)
	assertValue(t, tb, 2, 0)
	assertValue(t, tb, 3, 0)
	assertValue(t, tb, 4, 0)

	tb.AddRuleKey(rk(5, nil, nil, BucketVerification))
	assertValue(t, tb, 0, 0)
	assertValue(t, tb, 1, Infinite)
	assertValue(t, tb, 2, 0)
	assertValue(t, tb, 3, 0)
	assertValue(t, tb, 4, 0)
	assertValue(t, tb, 5, Infinite)

	tb.AddRuleKey(rk(2, ls(6), []int{-2}, BucketUndefined))
	assertValue(t, tb, 0, 0)
	assertValue(t, tb, 1, Infinite)
	assertValue(t, tb, 2, 0)
	assertValue(t, tb, 3, 0)
	assertValue(t, tb, 4, 0)
	assertValue(t, tb, 5, Infinite)
	assertValue(t, tb, 6, 0)

	tb.AddRuleKey(rk(2, ls(7), []int{2}, BucketUndefined))
	assertValue(t, tb, 0, 2)
	assertValue(t, tb, 1, Infinite)
	assertValue(t, tb, 2, 2)
	assertValue(t, tb, 3, 0)
	assertValue(t, tb, 4, 0)
	assertValue(t, tb, 5, Infinite)
	assertValue(t, tb, 6, 0)
	assertValue(t, tb, 7, 0)

	tb.AddRuleKey(rk(4, ls(5, 0, 0), []int{0, 1, 1}, BucketNormal))
	assertValue(t, tb, 0, Infinite)
	assertValue(t, tb, 1, Infinite)
	assertValue(t, tb, 2, Infinite)
	assertValue(t, tb, 3, Infinite)
	assertValue(t, tb, 4, Infinite)
	assertValue(t, tb, 5, Infinite)
	assertValue(t, tb, 6, 0)
	assertValue(t, tb, 7, 0)
}

// Ported from universe_not_pumping_test: a universe where every class
// stabilizes at a finite value except the one verification leaf.
func TestUniverseNotPumping(t *testing.T) {
	t.Parallel()

	rules := []ForestRuleKey{
		rk(0, ls(1, 2), []int{0, 0}, BucketNormal),
		rk(5, nil, nil, BucketVerification),
		rk(2, ls(3), []int{0}, BucketNormal),
		rk(3, ls(4), []int{0}, BucketNormal),
		rk(4, ls(5, 0, 0), []int{0, 1, 1}, BucketNormal),
	}
	tb := NewTableMethod()
	for _, r := range rules {
		tb.AddRuleKey(r)
	}

	assertValue(t, tb, 0, 0)
	assertValue(t, tb, 1, 0)
	assertValue(t, tb, 2, 1)
	assertValue(t, tb, 3, 1)
	assertValue(t, tb, 4, 1)
	assertValue(t, tb, 5, Infinite)
}

// Ported from segmented_test: a large, irregularly-ordered rule set that
// exercises gap growth and multi-hop shift propagation; ends with every
// class pumping.
func TestSegmented(t *testing.T) {
	t.Parallel()

	tb := NewTableMethod()

	tb.AddRuleKey(rk(0, ls(1, 2), []int{0, 0}, BucketUndefined))
	tb.AddRuleKey(rk(1, ls(4, 14), []int{0, 0}, BucketUndefined))
	tb.AddRuleKey(rk(2, nil, nil, BucketUndefined))
	assertValue(t, tb, 2, Infinite)

	tb.AddRuleKey(rk(3, ls(16, 5), []int{1, 0}, BucketUndefined))
	tb.AddRuleKey(rk(4, nil, nil, BucketUndefined))
	tb.AddRuleKey(rk(5, nil, nil, BucketUndefined))
	assertValue(t, tb, 2, Infinite)
	assertValue(t, tb, 3, 1)
	assertValue(t, tb, 4, Infinite)
	assertValue(t, tb, 5, Infinite)

	tb.AddRuleKey(rk(6, ls(7, 5, 17), []int{2, 1, 1}, BucketUndefined))
	assertValue(t, tb, 2, Infinite)
	assertValue(t, tb, 3, 1)
	assertValue(t, tb, 4, Infinite)
	assertValue(t, tb, 5, Infinite)
	assertValue(t, tb, 6, 1)

	tb.AddRuleKey(rk(16, ls(6), []int{0}, BucketUndefined))
	assertValue(t, tb, 2, Infinite)
	assertValue(t, tb, 3, 2)
	assertValue(t, tb, 4, Infinite)
	assertValue(t, tb, 5, Infinite)
	assertValue(t, tb, 6, 1)
	assertValue(t, tb, 16, 1)

	tb.AddRuleKey(rk(7, nil, nil, BucketUndefined))
	tb.AddRuleKey(rk(8, ls(9, 5), []int{1, 0}, BucketUndefined))
	assertValue(t, tb, 2, Infinite)
	assertValue(t, tb, 3, 2)
	assertValue(t, tb, 4, Infinite)
	assertValue(t, tb, 5, Infinite)
	assertValue(t, tb, 6, 1)
	assertValue(t, tb, 7, Infinite)
	assertValue(t, tb, 8, 1)
	assertValue(t, tb, 16, 1)

	tb.AddRuleKey(rk(12, ls(20, 5), []int{-1, 0}, BucketUndefined))
	tb.AddRuleKey(rk(20, ls(13), []int{0}, BucketUndefined))
	tb.AddRuleKey(rk(13, ls(15, 2, 5), []int{-1, 1, 0}, BucketUndefined))
	tb.AddRuleKey(rk(15, ls(1), []int{0}, BucketUndefined))
	tb.AddRuleKey(rk(14, ls(3), []int{0}, BucketUndefined))
	assertValue(t, tb, 0, 2)
	assertValue(t, tb, 1, 2)
	assertValue(t, tb, 2, Infinite)
	assertValue(t, tb, 3, 2)
	assertValue(t, tb, 4, Infinite)
	assertValue(t, tb, 5, Infinite)
	assertValue(t, tb, 6, 1)
	assertValue(t, tb, 7, Infinite)
	assertValue(t, tb, 8, 1)
	assertValue(t, tb, 13, 1)
	assertValue(t, tb, 14, 2)
	assertValue(t, tb, 15, 2)
	assertValue(t, tb, 16, 1)
	assertValue(t, tb, 20, 1)

	tb.AddRuleKey(rk(18, ls(8), []int{0}, BucketUndefined))
	tb.AddRuleKey(rk(11, ls(12, 18), []int{0, 0}, BucketUndefined))
	assertValue(t, tb, 0, 2)
	assertValue(t, tb, 1, 2)
	assertValue(t, tb, 2, Infinite)
	assertValue(t, tb, 3, 2)
	assertValue(t, tb, 4, Infinite)
	assertValue(t, tb, 5, Infinite)
	assertValue(t, tb, 6, 1)
	assertValue(t, tb, 7, Infinite)
	assertValue(t, tb, 8, 1)
	assertValue(t, tb, 13, 1)
	assertValue(t, tb, 14, 2)
	assertValue(t, tb, 15, 2)
	assertValue(t, tb, 16, 1)
	assertValue(t, tb, 18, 1)
	assertValue(t, tb, 20, 1)

	tb.AddRuleKey(rk(17, ls(8), []int{0}, BucketUndefined))
	assertValue(t, tb, 0, 3)
	assertValue(t, tb, 1, 3)
	assertValue(t, tb, 2, Infinite)
	assertValue(t, tb, 3, 3)
	assertValue(t, tb, 4, Infinite)
	assertValue(t, tb, 5, Infinite)
	assertValue(t, tb, 6, 2)
	assertValue(t, tb, 7, Infinite)
	assertValue(t, tb, 8, 1)
	assertValue(t, tb, 11, 1)
	assertValue(t, tb, 12, 1)
	assertValue(t, tb, 13, 2)
	assertValue(t, tb, 14, 3)
	assertValue(t, tb, 15, 3)
	assertValue(t, tb, 16, 2)
	assertValue(t, tb, 17, 1)
	assertValue(t, tb, 18, 1)
	assertValue(t, tb, 20, 2)

	tb.AddRuleKey(rk(9, ls(0, 19), []int{0, 0}, BucketUndefined))
	tb.AddRuleKey(rk(10, ls(5, 11), []int{0, 1}, BucketUndefined))
	assertValue(t, tb, 0, 3)
	assertValue(t, tb, 1, 3)
	assertValue(t, tb, 2, Infinite)
	assertValue(t, tb, 3, 3)
	assertValue(t, tb, 4, Infinite)
	assertValue(t, tb, 5, Infinite)
	assertValue(t, tb, 6, 2)
	assertValue(t, tb, 7, Infinite)
	assertValue(t, tb, 8, 1)
	assertValue(t, tb, 10, 2)
	assertValue(t, tb, 11, 1)
	assertValue(t, tb, 12, 1)
	assertValue(t, tb, 13, 2)
	assertValue(t, tb, 14, 3)
	assertValue(t, tb, 15, 3)
	assertValue(t, tb, 16, 2)
	assertValue(t, tb, 17, 1)
	assertValue(t, tb, 18, 1)
	assertValue(t, tb, 20, 2)

	tb.AddRuleKey(rk(19, ls(10), []int{0}, BucketUndefined))
	for c := 0; c < 21; c++ {
		assertValue(t, tb, c, Infinite)
		if !tb.IsPumping(l(c)) {
			t.Fatalf("class %d should be pumping", c)
		}
	}
}
