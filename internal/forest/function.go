// Package forest implements the table method: an incremental algorithm
// that tracks, for every combinatorial class, a lower bound on how many
// terms of its counting sequence are currently known, and promotes a
// class to "pumping" (infinitely many terms known, i.e. genuinely
// enumerable) once its rules can keep producing new terms forever.
//
// Grounded on original_source/src/searcher/ruledb/forest/ (function.rs and
// table_method.rs): Function here corresponds to Function/IntOrInf there.
package forest

import (
	"math"

	"github.com/enadeau/combspec/internal/label"
)

// Value is the number of known terms for a class, or Infinite once the
// class has been proven pumping.
type Value int64

// Infinite marks a class as pumping: it has unboundedly many known terms.
const Infinite Value = math.MaxInt64

// IsInfinite reports whether v is the Infinite sentinel.
func (v Value) IsInfinite() bool {
	return v == Infinite
}

// Function maps classes to their current Value, defaulting absent classes
// to 0 (every class starts with zero known terms until a rule bumps it).
//
// refcount tracks, for every finite value currently held by at least one
// class, how many classes hold it; used mirrors refcount's key set as a
// bitset so PreimageGap can answer "is there a gap" by a single ascending
// scan instead of rescanning the whole values map. Several classes can
// share a value, so a value's bit only clears once its last holder moves
// off it.
type Function struct {
	values   map[label.Label]Value
	refcount map[Value]int
	used     usedValues
}

// NewFunction returns a Function where every class implicitly starts at 0.
func NewFunction() *Function {
	return &Function{
		values:   make(map[label.Label]Value),
		refcount: make(map[Value]int),
	}
}

// Get returns c's current value, 0 if c has never been touched.
func (f *Function) Get(c label.Label) Value {
	return f.values[c]
}

// IsPumping reports whether c's value is Infinite.
func (f *Function) IsPumping(c label.Label) bool {
	return f.Get(c).IsInfinite()
}

func (f *Function) release(v Value) {
	if v.IsInfinite() || v == 0 {
		return
	}
	f.refcount[v]--
	if f.refcount[v] == 0 {
		delete(f.refcount, v)
		f.used.unmark(uint(v))
	}
}

func (f *Function) acquire(v Value) {
	if v.IsInfinite() || v == 0 {
		return
	}
	f.refcount[v]++
	f.used.mark(uint(v))
}

// Increase bumps c's value by one term. A no-op if c is already Infinite.
func (f *Function) Increase(c label.Label) {
	v := f.Get(c)
	if v.IsInfinite() {
		return
	}
	f.release(v)
	v++
	f.values[c] = v
	f.acquire(v)
}

// SetInfinite marks c as pumping.
func (f *Function) SetInfinite(c label.Label) {
	v := f.Get(c)
	if v.IsInfinite() {
		return
	}
	f.release(v)
	f.values[c] = Infinite
}

// PreimageGap returns the largest k such that every value in (0, k] is
// either held by some class or within g of a smaller held value, i.e. the
// smallest k >= 0 beyond which no class's value lands in (k, k+g].
//
// Grounded on Function::preimage_gap in function.rs: a single ascending
// pass over the currently-used finite values, extending k to each used
// value found within g of the current k and stopping at the first gap
// wider than g.
func (f *Function) PreimageGap(g int) int {
	k := 0
	for v := range f.used.ascending() {
		vi := int(v)
		if vi <= k {
			continue
		}
		if vi <= k+g {
			k = vi
			continue
		}
		break
	}
	return k
}
