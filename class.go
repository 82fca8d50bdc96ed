package combspec

// Class is the capability a combinatorial class value must have to be
// interned by ClassDB: equality (so distinct values get distinct labels)
// and hashability (§3: "a hash-indexed interner is preferred when the
// class exposes hashing" — Go gets this for free from comparable).
type Class interface {
	comparable
}

// ClassDescriber is implemented by a Class that wants to control its own
// JSON shape in a Specification (§6: "a mapping with string keys for the
// domain-specific attributes"). A Class that doesn't implement it falls
// back to encoding/json's default struct marshaling.
type ClassDescriber interface {
	DescribeClass() map[string]any
}

// Strategy is an immutable description of one rule instance: how a class
// of type C decomposes, and whether that decomposition is a one-child
// bijection (an equivalence).
type Strategy[C any] interface {
	// Decompose returns the ordered list of child classes this strategy
	// produces from class. Called once, at Rule construction, and cached.
	Decompose(class C) []C
	// IsEquivalence reports whether this rule is a bijection between its
	// parent and its single child (must only return true when Decompose
	// always returns exactly one class).
	IsEquivalence() bool
}

// StrategyDescriber is implemented by a Strategy that wants to control its
// own JSON shape in a Specification (§6: "a strategy descriptor object
// containing at least class_module and strategy_class string fields").
type StrategyDescriber interface {
	DescribeStrategy() map[string]any
}

// StrategyFactory produces zero or more rules from a class value.
// Returning an empty slice means "not applicable to this class"; a
// factory never signals inapplicability via error (§7: "strategies must
// return an empty list rather than signal 'no rules' via error").
type StrategyFactory[C any, S Strategy[C]] interface {
	Apply(class C) []Rule[C, S]
}

// Rule is the triple (parent, strategy, children): children is computed by
// strategy.Decompose(parent) once, at construction, and cached thereafter.
type Rule[C any, S Strategy[C]] struct {
	Parent   C
	Strategy S
	Children []C
}

// NewRule constructs a Rule by decomposing parent with strategy.
func NewRule[C any, S Strategy[C]](parent C, strategy S) Rule[C, S] {
	return Rule[C, S]{
		Parent:   parent,
		Strategy: strategy,
		Children: strategy.Decompose(parent),
	}
}
