package words

// Kind distinguishes the three rule shapes this domain produces; a single
// Strategy type carries one so that every words.StrategyFactory shares
// one concrete Go type, matching combspec.StrategyPack's single S type
// parameter across all four tiers.
type Kind int

const (
	KindAtom Kind = iota
	KindRemoveFrontOfPrefix
	KindExpansion
)

func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "Atom"
	case KindRemoveFrontOfPrefix:
		return "RemoveFrontOfPrefix"
	case KindExpansion:
		return "Expansion"
	default:
		return "Unknown"
	}
}

// Strategy is the one concrete combspec.Strategy[AvoidingWithPrefix] this
// domain uses; Kind selects which of the three rule shapes it decomposes
// as.
type Strategy struct {
	Kind Kind
}

// Decompose implements combspec.Strategy.
func (s Strategy) Decompose(c AvoidingWithPrefix) []AvoidingWithPrefix {
	switch s.Kind {
	case KindAtom:
		return nil
	case KindRemoveFrontOfPrefix:
		if c.Prefix == "" {
			return nil
		}
		return []AvoidingWithPrefix{{
			Prefix:   c.Prefix[1:],
			Patterns: c.Patterns,
			Alphabet: c.Alphabet,
		}}
	case KindExpansion:
		return c.expand()
	default:
		return nil
	}
}

// IsEquivalence implements combspec.Strategy: only RemoveFrontOfPrefix is
// a one-child bijection.
func (s Strategy) IsEquivalence() bool {
	return s.Kind == KindRemoveFrontOfPrefix
}

// DescribeStrategy renders the strategy-descriptor schema §6 requires.
func (s Strategy) DescribeStrategy() map[string]any {
	return map[string]any{
		"class_module":   "words",
		"strategy_class": s.Kind.String(),
	}
}
