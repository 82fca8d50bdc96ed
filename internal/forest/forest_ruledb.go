package forest

import (
	"github.com/enadeau/combspec/internal/classdb"
	"github.com/enadeau/combspec/internal/label"
	"github.com/enadeau/combspec/internal/ruledb"
)

// Strategy is the minimal capability ForestRuleDB needs from a stored
// strategy value — identical to ruledb.Strategy so the two rule stores are
// interchangeable behind a common RuleStore interface.
type Strategy interface {
	IsEquivalence() bool
}

// ShiftedStrategy is implemented by strategies that know their own
// size-degree shift per child, for a more precise table-method analysis.
// A strategy that does not implement it is treated as all-zero shifts and
// BucketNormal — still sound, just slower to prove pumping.
type ShiftedStrategy interface {
	Strategy
	Shifts() []int
	Bucket() Bucket
}

// ForestRuleDB pairs a SimpleRuleDB (for concrete rule storage and
// extraction) with a TableMethod (for incremental pumping detection),
// mirroring how the original project couples the two: the forest store
// answers "is this class pumping" far cheaper than growing a random proof
// tree and checking whether it terminates, while still falling back on
// SimpleRuleDB's prune+sample+lift pipeline for GetSpecification.
type ForestRuleDB[C comparable, S Strategy] struct {
	simple *ruledb.SimpleRuleDB[C, S]
	table  *TableMethod
}

// New returns an empty ForestRuleDB.
func New[C comparable, S Strategy]() *ForestRuleDB[C, S] {
	return &ForestRuleDB[C, S]{
		simple: ruledb.New[C, S](),
		table:  NewTableMethod(),
	}
}

// SetDeterministic forwards to the underlying SimpleRuleDB (§9's
// deterministic sampling mode); it has no effect on pumping detection,
// which is already fully deterministic.
func (db *ForestRuleDB[C, S]) SetDeterministic(deterministic bool) {
	db.simple.SetDeterministic(deterministic)
}

// Add records parent -> children via strategy in both the concrete rule
// store and the table method, deriving a ForestRuleKey from strategy via
// ShiftedStrategy when available.
func (db *ForestRuleDB[C, S]) Add(parent label.Label, children []label.Label, strategy S) {
	db.simple.Add(parent, children, strategy)

	shifts := make([]int, len(children))
	bucket := BucketNormal
	if ss, ok := any(strategy).(ShiftedStrategy); ok {
		if s := ss.Shifts(); len(s) == len(children) {
			copy(shifts, s)
		}
		bucket = ss.Bucket()
	}
	switch {
	case len(children) == 0:
		bucket = BucketVerification
	case len(children) == 1 && strategy.IsEquivalence():
		bucket = BucketEquiv
	}

	db.table.AddRuleKey(ForestRuleKey{
		Parent:   parent,
		Children: children,
		Shifts:   shifts,
		Bucket:   bucket,
	})
}

// IsPumping reports whether class is currently known to be pumping.
func (db *ForestRuleDB[C, S]) IsPumping(class label.Label) bool {
	return db.table.IsPumping(class)
}

// StableSubset returns every class currently known to be pumping.
func (db *ForestRuleDB[C, S]) StableSubset() []label.Label {
	return db.table.StableSubset()
}

// PumpingSubuniverse returns every rule whose parent and every child are
// in the stable subset.
func (db *ForestRuleDB[C, S]) PumpingSubuniverse() []ForestRuleKey {
	return db.table.PumpingSubuniverse()
}

// GetSpecification delegates to the underlying SimpleRuleDB: pumping
// detection only answers "is the root productive", extracting a concrete
// proof still requires the prune+sample+lift pipeline.
func (db *ForestRuleDB[C, S]) GetSpecification(root label.Label, classes *classdb.DB[C]) (*ruledb.Specification[C, S], error) {
	return db.simple.GetSpecification(root, classes)
}
