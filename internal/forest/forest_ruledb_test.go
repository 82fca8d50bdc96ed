package forest

import (
	"testing"

	"github.com/enadeau/combspec/internal/classdb"
	"github.com/enadeau/combspec/internal/label"
)

type testStrategy struct {
	name        string
	equivalence bool
}

func (s testStrategy) IsEquivalence() bool { return s.equivalence }

func TestForestRuleDBTracksPumping(t *testing.T) {
	t.Parallel()

	classes := classdb.New[string]()
	a := classes.Intern("a")
	b := classes.Intern("b")

	db := New[string, testStrategy]()
	db.Add(a, []label.Label{b}, testStrategy{name: "to-b", equivalence: true})
	if db.IsPumping(a) {
		t.Fatal("a should not be pumping yet, b has no rule of its own")
	}
	db.Add(b, nil, testStrategy{name: "atom"})

	if !db.IsPumping(b) {
		t.Fatal("b should be pumping: it has a verification rule")
	}
	if !db.IsPumping(a) {
		t.Fatal("a should be pumping: equivalent to pumping b")
	}

	// b is the equivalence component's representative: Union(a, b) ties on
	// weight, and a tie resolves to the second argument (see
	// equivdb.DB.Union). Queried at b, b's own atom rule is a specification.
	spec, err := db.GetSpecification(b, classes)
	if err != nil {
		t.Fatalf("GetSpecification: %v", err)
	}
	if spec.Root != "b" {
		t.Fatalf("spec.Root = %v, want b", spec.Root)
	}
	if len(spec.Rules) == 0 {
		t.Fatal("expected at least one rule in the specification")
	}
}
