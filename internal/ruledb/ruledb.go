// Package ruledb accumulates rules keyed by (parent, sorted children),
// quotients them by equivalence, prunes unproductive ones to a fixpoint,
// and samples a proof tree that it lifts back into concrete rules.
//
// Grounded directly on original_source/src/searcher/ruledb/simple.rs
// (SimpleRuleDB::add/get_specification, the free functions prune and
// random_proof_tree, and their three prune_*_test cases). The one
// structural departure: equivdb.RuleLabel carries a []label.Label
// Children slice, which Go (unlike Rust's derived Hash) cannot use
// directly as a map key, so rules are indexed here by a string encoding
// of (parent, children) rather than the RuleLabel value itself.
package ruledb

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/enadeau/combspec/internal/classdb"
	"github.com/enadeau/combspec/internal/equivdb"
	"github.com/enadeau/combspec/internal/label"
)

// Strategy is the minimal capability SimpleRuleDB needs from a stored
// strategy value.
type Strategy interface {
	IsEquivalence() bool
}

// Rule pairs a parent class and the children it decomposes into with the
// strategy responsible, ready to be materialized into a Specification.
type Rule[C any, S Strategy] struct {
	Parent   C
	Children []C
	Strategy S
}

// Specification is a rooted, grounded set of rules: every parent appears
// exactly once and every leaf is a zero-children (atom) rule.
type Specification[C any, S Strategy] struct {
	Rules []Rule[C, S]
	Root  C
}

// ErrSpecificationNotFound reports that the current rule set does not
// ground the requested root: either pruning removed every rule for it, or
// proof-tree sampling reached a parent with no surviving rule. It is
// recoverable — callers may add more rules and retry (§7).
var ErrSpecificationNotFound = errors.New("ruledb: no specification found for the given root")

type entry[S Strategy] struct {
	rule     equivdb.RuleLabel
	strategy S
}

// SimpleRuleDB stores at most one strategy per (parent, sorted children)
// key and extracts a concrete Specification on demand.
//
// The zero value is not ready to use; construct one with New.
type SimpleRuleDB[C comparable, S Strategy] struct {
	rules map[string]entry[S]
	equiv *equivdb.DB

	// deterministic, when set via SetDeterministic, replaces random
	// proof-tree sampling with "always the shallowest surviving rule" for
	// reproducible tests (§9: "also acceptable").
	deterministic bool
}

// New returns an empty SimpleRuleDB.
func New[C comparable, S Strategy]() *SimpleRuleDB[C, S] {
	return &SimpleRuleDB[C, S]{
		rules: make(map[string]entry[S]),
		equiv: equivdb.New(),
	}
}

// SetDeterministic toggles proof-tree sampling between uniform-random
// (the default) and "shallowest surviving rule for each parent", for
// tests that need a stable result.
func (db *SimpleRuleDB[C, S]) SetDeterministic(deterministic bool) {
	db.deterministic = deterministic
}

// Add records that parent decomposes into children via strategy. If
// children has exactly one label and strategy is an equivalence, parent
// and that child are unioned in the EquivDB. A duplicate (parent, sorted
// children) key is a no-op: the first strategy recorded for a key wins
// (§9 open-question resolution).
func (db *SimpleRuleDB[C, S]) Add(parent label.Label, children []label.Label, strategy S) {
	rl := equivdb.NewRuleLabel(parent, children)
	if len(rl.Children) == 1 && strategy.IsEquivalence() {
		db.equiv.Union(rl.Parent, rl.Children[0])
	}
	k := ruleKey(rl)
	if _, exists := db.rules[k]; exists {
		return
	}
	db.rules[k] = entry[S]{rule: rl, strategy: strategy}
}

// GetSpecification quotients the stored rules by equivalence, prunes to a
// fixpoint, samples a proof tree rooted at root, lifts it back to
// concrete rules (inserting one-step equivalence rules along any
// EquivDB path needed to connect a child to its chosen parent), and
// materializes the result against classes.
func (db *SimpleRuleDB[C, S]) GetSpecification(root label.Label, classes *classdb.DB[C]) (*Specification[C, S], error) {
	pruned := prune(db.ruleUpToEquivalence())

	// The BFS starts at root's EquivDB representative, so any label in the
	// root's equivalence component can be queried; the lift below connects
	// root itself to the rule chosen for that representative.
	proofTree, err := randomProofTree(pruned, db.equiv.Find(root), db.deterministic)
	if err != nil {
		return nil, err
	}

	concreteRules, err := db.eqvSpecificationToSpecification(proofTree, root)
	if err != nil {
		return nil, err
	}

	rules := make([]Rule[C, S], 0, len(concreteRules))
	for _, rl := range concreteRules {
		e, ok := db.rules[ruleKey(rl)]
		if !ok {
			return nil, ErrSpecificationNotFound
		}
		children := make([]C, len(rl.Children))
		for i, c := range rl.Children {
			children[i] = classes.Get(c)
		}
		rules = append(rules, Rule[C, S]{
			Parent:   classes.Get(rl.Parent),
			Children: children,
			Strategy: e.strategy,
		})
	}

	return &Specification[C, S]{Rules: rules, Root: classes.Get(root)}, nil
}

// ruleUpToEquivalence returns the deduplicated set of RuleLabels obtained
// by replacing every stored rule's parent and children with their current
// EquivDB representative.
func (db *SimpleRuleDB[C, S]) ruleUpToEquivalence() []equivdb.RuleLabel {
	seen := make(map[string]bool, len(db.rules))
	out := make([]equivdb.RuleLabel, 0, len(db.rules))
	for _, e := range db.rules {
		eqv := db.equiv.RuleUpToEquivalence(e.rule)
		k := ruleKey(eqv)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, eqv)
	}
	return out
}

// findRuleFromEqvRule returns the (first, by map iteration) stored
// concrete rule whose quotient equals eqvRule.
func (db *SimpleRuleDB[C, S]) findRuleFromEqvRule(eqvRule equivdb.RuleLabel) (equivdb.RuleLabel, bool) {
	target := ruleKey(eqvRule)
	for _, e := range db.rules {
		if ruleKey(db.equiv.RuleUpToEquivalence(e.rule)) == target {
			return e.rule, true
		}
	}
	return equivdb.RuleLabel{}, false
}

// eqvSpecificationToSpecification lifts a proof tree expressed over
// equivalence representatives back into concrete RuleLabels.
//
// Every label that the proof tree only reasoned about up to equivalence
// — the root, each rule's own eqv-parent key, and each concrete child the chosen
// rule actually produces — may differ from the concrete label that
// carries its continuing rule. For every such label x whose equivalence
// representative's rule is stored under a different concrete parent p,
// a chain of one-step equivalence rules along EquivDB's path from x to p
// is spliced in. Each step must be emitted in the direction it was
// originally unioned (EdgeRule), not the arbitrary direction the
// underlying path traversal happened to walk it in — otherwise a
// synthesized bridge rule can come out backwards from every rule this
// RuleDB ever actually stored, and the final lookup in GetSpecification
// fails to find it.
func (db *SimpleRuleDB[C, S]) eqvSpecificationToSpecification(eqvRules []equivdb.RuleLabel, root label.Label) ([]equivdb.RuleLabel, error) {
	byEqvParent := make(map[label.Label]equivdb.RuleLabel, len(eqvRules))
	connectors := []label.Label{root}
	for _, eqvRule := range eqvRules {
		rl, ok := db.findRuleFromEqvRule(eqvRule)
		if !ok {
			return nil, ErrSpecificationNotFound
		}
		byEqvParent[eqvRule.Parent] = rl
		connectors = append(connectors, eqvRule.Parent)
		connectors = append(connectors, rl.Children...)
	}

	result := make(map[string]equivdb.RuleLabel)
	for _, x := range connectors {
		target, ok := byEqvParent[db.equiv.Find(x)]
		if !ok {
			return nil, ErrSpecificationNotFound
		}
		if x == target.Parent {
			continue
		}
		path, err := db.equiv.FindPath(x, target.Parent)
		if err != nil {
			return nil, ErrSpecificationNotFound
		}
		for i := 0; i+1 < len(path); i++ {
			step, ok := db.equiv.EdgeRule(path[i], path[i+1])
			if !ok {
				panic("ruledb: logic error, FindPath step has no backing union edge")
			}
			result[ruleKey(step)] = step
		}
	}
	for _, rl := range byEqvParent {
		result[ruleKey(rl)] = rl
	}

	out := make([]equivdb.RuleLabel, 0, len(result))
	for _, rl := range result {
		out = append(out, rl)
	}
	return out, nil
}

// ruleKey encodes a RuleLabel as a comparable map key. Children are
// already sorted ascending by NewRuleLabel/RuleUpToEquivalence, so equal
// rules always produce equal keys.
func ruleKey(rl equivdb.RuleLabel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:", rl.Parent)
	for i, c := range rl.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", c)
	}
	return b.String()
}

// prune repeatedly removes any rule with a child that has no surviving
// rule of its own, and any parent left with zero rules, until a fixpoint
// is reached.
func prune(rules []equivdb.RuleLabel) map[label.Label][]equivdb.RuleLabel {
	byParent := make(map[label.Label][]equivdb.RuleLabel)
	for _, rl := range rules {
		byParent[rl.Parent] = append(byParent[rl.Parent], rl)
	}
	keys := make(map[label.Label]bool, len(byParent))
	for p := range byParent {
		keys[p] = true
	}

	for changed := true; changed; {
		changed = false
		for parent, rs := range byParent {
			kept := rs[:0]
			for _, r := range rs {
				ok := true
				for _, c := range r.Children {
					if !keys[c] {
						ok = false
						break
					}
				}
				if ok {
					kept = append(kept, r)
				}
			}
			byParent[parent] = kept
			if len(kept) == 0 {
				delete(keys, parent)
				changed = true
			}
		}
		for parent := range byParent {
			if !keys[parent] {
				delete(byParent, parent)
			}
		}
	}
	return byParent
}

// pickShallowest returns the candidate with the fewest children, tying
// on the lexicographically smallest key. Quotienting by equivalence can
// make a parent's own representative appear among its rule's children
// (e.g. a one-child equivalence rule a -> [b] quotients to rep -> [rep]
// when a and b are equivalent), which prune's purely liveness-based
// fixpoint happily keeps alive as a self-referential "surviving" rule
// alongside any real grounding alternative for the same parent.
// Deterministic sampling always prefers the shallowest candidate so it
// never picks such a cycle over an available base case — candidates()
// order depends on map iteration, so the tie-break key must be fully
// independent of it.
func pickShallowest(candidates []equivdb.RuleLabel) equivdb.RuleLabel {
	best := candidates[0]
	bestKey := ruleKey(best)
	for _, c := range candidates[1:] {
		k := ruleKey(c)
		if len(c.Children) < len(best.Children) || (len(c.Children) == len(best.Children) && k < bestKey) {
			best, bestKey = c, k
		}
	}
	return best
}

// randomProofTree BFS-walks from root, picking one surviving rule per
// newly seen parent (uniformly at random, unless deterministic), and
// enqueuing its children. It fails if any parent reached has no
// surviving rule.
func randomProofTree(rulesByParent map[label.Label][]equivdb.RuleLabel, root label.Label, deterministic bool) ([]equivdb.RuleLabel, error) {
	seen := make(map[label.Label]bool)
	queue := []label.Label{root}
	var proofTree []equivdb.RuleLabel

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		if seen[parent] {
			continue
		}
		seen[parent] = true

		candidates, ok := rulesByParent[parent]
		if !ok || len(candidates) == 0 {
			return nil, ErrSpecificationNotFound
		}
		var chosen equivdb.RuleLabel
		if deterministic {
			chosen = pickShallowest(candidates)
		} else {
			chosen = candidates[rand.IntN(len(candidates))]
		}
		queue = append(queue, chosen.Children...)
		proofTree = append(proofTree, chosen)
	}
	return proofTree, nil
}
