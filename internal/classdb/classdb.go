// Package classdb interns combinatorial class values and hands out the
// dense integer labels the rest of the searcher operates on.
//
// Grounded on the teacher's split between a mutating constructor-style API
// and non-mutating lookups (github.com/gaissmai/bart's Table.Lookup /
// Table.Get pattern): Intern mutates, Lookup and Get do not.
package classdb

import "github.com/enadeau/combspec/internal/label"

// DB interns values of C and hands out dense Labels for them.
//
// C is required to be comparable so that interning can be hash-indexed
// (a Go map) rather than falling back to the linear scan that spec.md
// treats as merely "acceptable" — the zero value of DB is not ready to
// use; construct one with New.
type DB[C comparable] struct {
	classes []C
	byClass map[C]label.Label
}

// New returns an empty ClassDB ready to intern values of C.
func New[C comparable]() *DB[C] {
	return &DB[C]{
		byClass: make(map[C]label.Label),
	}
}

// Intern returns the label for c, assigning a new one if c has never been
// seen before. Equal values (in the comparable sense) always receive the
// same label.
func (db *DB[C]) Intern(c C) label.Label {
	if l, ok := db.byClass[c]; ok {
		return l
	}
	l := label.Label(len(db.classes))
	db.classes = append(db.classes, c)
	db.byClass[c] = l
	return l
}

// Lookup returns the label already assigned to c, if any. It does not
// mutate the registry.
func (db *DB[C]) Lookup(c C) (label.Label, bool) {
	l, ok := db.byClass[c]
	return l, ok
}

// Get returns the class value for l.
//
// l must have been issued by this DB; an unknown label is a contract
// violation (§3 invariant: "Every label in the queue, EquivDB, or RuleDB
// was issued by ClassDB") and panics rather than returning a zero value
// that would silently corrupt downstream state.
func (db *DB[C]) Get(l label.Label) C {
	if int(l) >= len(db.classes) {
		panic("classdb: logic error, label was never interned")
	}
	return db.classes[l]
}

// Len reports the number of distinct classes interned so far.
func (db *DB[C]) Len() int {
	return len(db.classes)
}
