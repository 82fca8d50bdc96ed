package ruledb

import (
	"testing"

	"github.com/enadeau/combspec/internal/classdb"
	"github.com/enadeau/combspec/internal/equivdb"
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

// strategy is a minimal test double: a strategy is an equivalence iff
// constructed via eq(), matching the Rust tests' plain bool flag.
type strategy struct {
	name        string
	equivalence bool
}

func (s strategy) IsEquivalence() bool { return s.equivalence }

func atom(name string) strategy { return strategy{name: name} }
func eq(name string) strategy   { return strategy{name: name, equivalence: true} }
func normal(name string) strategy { return strategy{name: name} }

// Ported from original_source/src/searcher/ruledb/simple.rs's
// prune_verification_rule_test.
func TestPruneVerificationRule(t *testing.T) {
	t.Parallel()

	rules := []equivdb.RuleLabel{equivdb.NewRuleLabel(l(0), nil)}
	got := prune(rules)
	if len(got) != 1 {
		t.Fatalf("prune() kept %d parents, want 1", len(got))
	}
}

// Ported from prune_simple_tree_test.
func TestPruneSimpleTree(t *testing.T) {
	t.Parallel()

	rules := []equivdb.RuleLabel{
		equivdb.NewRuleLabel(l(0), ls(1, 2)),
		equivdb.NewRuleLabel(l(1), nil),
		equivdb.NewRuleLabel(l(2), nil),
	}
	got := prune(rules)
	if len(got) != 3 {
		t.Fatalf("prune() kept %d parents, want 3", len(got))
	}
}

// Ported from prune_nothing_test.
func TestPruneUngroundedParent(t *testing.T) {
	t.Parallel()

	rules := []equivdb.RuleLabel{
		equivdb.NewRuleLabel(l(0), ls(1, 2)),
		equivdb.NewRuleLabel(l(2), nil),
		equivdb.NewRuleLabel(l(4), nil),
	}
	got := prune(rules)
	if len(got) != 2 {
		t.Fatalf("prune() kept %d parents, want 2", len(got))
	}
	if _, ok := got[l(0)]; ok {
		t.Fatal("parent 0 should not survive: child 1 has no rule")
	}
}

func TestPruneIsIdempotent(t *testing.T) {
	t.Parallel()

	rules := []equivdb.RuleLabel{
		equivdb.NewRuleLabel(l(0), ls(1, 2)),
		equivdb.NewRuleLabel(l(2), nil),
	}
	first := prune(rules)
	var flat []equivdb.RuleLabel
	for _, rs := range first {
		flat = append(flat, rs...)
	}
	second := prune(flat)
	if len(first) != len(second) {
		t.Fatalf("prune(prune(R)) kept %d parents, prune(R) kept %d", len(second), len(first))
	}
}

// Scenario 1: a single verification rule (atom) at the start class.
func TestGetSpecificationVerificationAtomAtStart(t *testing.T) {
	t.Parallel()

	classes := classdb.New[string]()
	c := classes.Intern("c")

	db := New[string, strategy]()
	db.Add(c, nil, atom("atom"))

	spec, err := db.GetSpecification(c, classes)
	if err != nil {
		t.Fatalf("GetSpecification: %v", err)
	}
	if spec.Root != "c" {
		t.Fatalf("spec.Root = %q, want %q", spec.Root, "c")
	}
	if len(spec.Rules) != 1 {
		t.Fatalf("len(spec.Rules) = %d, want 1", len(spec.Rules))
	}
	if spec.Rules[0].Parent != "c" || len(spec.Rules[0].Children) != 0 {
		t.Fatalf("spec.Rules[0] = %+v, want parent=c, no children", spec.Rules[0])
	}
}

// Scenario 2: prune propagation leaves the root with no surviving rule.
func TestGetSpecificationPrunePropagation(t *testing.T) {
	t.Parallel()

	classes := classdb.New[string]()
	c0 := classes.Intern("0")
	c1 := classes.Intern("1")
	c2 := classes.Intern("2")

	db := New[string, strategy]()
	db.Add(c0, ls(int(c1), int(c2)), normal("split"))
	db.Add(c2, nil, atom("atom"))

	if _, err := db.GetSpecification(c0, classes); err != ErrSpecificationNotFound {
		t.Fatalf("GetSpecification(0) error = %v, want ErrSpecificationNotFound", err)
	}
}

// Scenario 3: equivalence lifting. a -> [b] (equivalence), b -> [] (atom).
// get_specification(a) must return both concrete rules: b is the
// component's representative (a weight tie in equivdb.DB.Union resolves to
// the second argument), so the a -> b edge has to be lifted back in.
func TestGetSpecificationEquivalenceLifting(t *testing.T) {
	t.Parallel()

	classes := classdb.New[string]()
	a := classes.Intern("a")
	b := classes.Intern("b")

	db := New[string, strategy]()
	db.SetDeterministic(true)
	db.Add(a, ls(int(b)), eq("a_to_b"))
	db.Add(b, nil, atom("atom"))

	spec, err := db.GetSpecification(a, classes)
	if err != nil {
		t.Fatalf("GetSpecification(a): %v", err)
	}
	if spec.Root != "a" {
		t.Fatalf("spec.Root = %q, want %q", spec.Root, "a")
	}
	if len(spec.Rules) != 2 {
		t.Fatalf("len(spec.Rules) = %d, want 2: %+v", len(spec.Rules), spec.Rules)
	}

	var sawEquivalence, sawAtom bool
	for _, r := range spec.Rules {
		switch {
		case r.Parent == "a" && len(r.Children) == 1 && r.Children[0] == "b":
			sawEquivalence = true
		case r.Parent == "b" && len(r.Children) == 0:
			sawAtom = true
		}
	}
	if !sawEquivalence {
		t.Errorf("missing the a->b equivalence edge in %+v", spec.Rules)
	}
	if !sawAtom {
		t.Errorf("missing the b atom rule in %+v", spec.Rules)
	}
}

func TestAddDuplicateKeyFirstWriteWins(t *testing.T) {
	t.Parallel()

	classes := classdb.New[string]()
	c := classes.Intern("c")

	db := New[string, strategy]()
	db.Add(c, nil, atom("first"))
	db.Add(c, nil, atom("second"))

	spec, err := db.GetSpecification(c, classes)
	if err != nil {
		t.Fatalf("GetSpecification: %v", err)
	}
	if got := spec.Rules[0].Strategy.name; got != "first" {
		t.Fatalf("strategy = %q, want %q (first write wins)", got, "first")
	}
}
