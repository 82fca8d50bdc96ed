package forest

import (
	"iter"
	"math/bits"
)

// usedValues is a growable bitset indexed by Value, tracking which finite
// values currently have at least one class holding them. It exists purely
// to answer PreimageGap's "is there a gap" question with a single
// ascending scan over values actually in use, instead of rescanning
// refcount's whole key set on every call.
//
// Adapted down from gaissmai-bart's internal/bitset (itself a trim of
// github.com/bits-and-blooms/bitset for routing-table lookups): only the
// mark/unmark/ascending shape Function's refcounting needs survives here.
// Test, Clone, Count and the rest of a general-purpose bitset API have no
// caller in this domain and are gone.
type usedValues []uint64

const wordSize = 64
const log2WordSize = 6

func wordsNeeded(i uint) int {
	return int(i+wordSize) >> log2WordSize
}

func (u *usedValues) grow(i uint) {
	n := wordsNeeded(i)
	if len(*u) < n {
		grown := make([]uint64, n)
		copy(grown, *u)
		*u = grown
	}
}

// mark records v as held by at least one class.
func (u *usedValues) mark(v uint) {
	u.grow(v)
	(*u)[v>>log2WordSize] |= 1 << (v & (wordSize - 1))
}

// unmark records v as no longer held by any class.
func (u *usedValues) unmark(v uint) {
	if v>>log2WordSize >= uint(len(*u)) {
		return
	}
	(*u)[v>>log2WordSize] &^= 1 << (v & (wordSize - 1))
}

// ascending iterates the marked values from lowest to highest.
func (u usedValues) ascending() iter.Seq[uint] {
	return func(yield func(uint) bool) {
		for idx, word := range u {
			for word != 0 {
				v := uint(idx<<log2WordSize + bits.TrailingZeros64(word))
				if !yield(v) {
					return
				}
				word &= word - 1
			}
		}
	}
}
