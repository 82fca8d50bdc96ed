package words

import "github.com/enadeau/combspec"

// AtomFactory verifies a class outright once its alphabet is empty: an
// empty alphabet means the class has exactly one member, the prefix
// itself, so there is nothing left to decompose.
type AtomFactory struct{}

func (AtomFactory) Apply(c AvoidingWithPrefix) []combspec.Rule[AvoidingWithPrefix, Strategy] {
	if len(c.Alphabet) != 0 {
		return nil
	}
	return []combspec.Rule[AvoidingWithPrefix, Strategy]{
		combspec.NewRule(c, Strategy{Kind: KindAtom}),
	}
}

// RemoveFrontOfPrefixFactory strips the first character of a non-empty
// prefix as a one-child equivalence.
type RemoveFrontOfPrefixFactory struct{}

func (RemoveFrontOfPrefixFactory) Apply(c AvoidingWithPrefix) []combspec.Rule[AvoidingWithPrefix, Strategy] {
	if c.Prefix == "" {
		return nil
	}
	return []combspec.Rule[AvoidingWithPrefix, Strategy]{
		combspec.NewRule(c, Strategy{Kind: KindRemoveFrontOfPrefix}),
	}
}

// ExpansionFactory extends the prefix by every letter of the alphabet,
// as a disjoint union rule (omitting branches that are instantly empty).
type ExpansionFactory struct{}

func (ExpansionFactory) Apply(c AvoidingWithPrefix) []combspec.Rule[AvoidingWithPrefix, Strategy] {
	if len(c.Alphabet) == 0 {
		return nil
	}
	return []combspec.Rule[AvoidingWithPrefix, Strategy]{
		combspec.NewRule(c, Strategy{Kind: KindExpansion}),
	}
}

// Pack assembles the standard words StrategyPack: Atom as the sole
// verification, RemoveFrontOfPrefix as the sole initial, Expansion as
// the sole expansion, no inferrals — matching original_source/src/main.rs.
func Pack() *combspec.StrategyPack[AvoidingWithPrefix, Strategy] {
	return &combspec.StrategyPack[AvoidingWithPrefix, Strategy]{
		Verifications: []combspec.StrategyFactory[AvoidingWithPrefix, Strategy]{AtomFactory{}},
		Initials:      []combspec.StrategyFactory[AvoidingWithPrefix, Strategy]{RemoveFrontOfPrefixFactory{}},
		Expansions:    []combspec.StrategyFactory[AvoidingWithPrefix, Strategy]{ExpansionFactory{}},
	}
}
