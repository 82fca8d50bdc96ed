// Package equivdb tracks classes that have been proven equivalent via
// one-child equivalence rules, and can reconstruct a concrete path of
// one-step equivalences between any two labels in the same component.
//
// Grounded directly on original_source/src/searcher/equiv_db.rs: a
// weighted union-find with path compression, plus a raw log of union
// edges that find_path replays as a graph to BFS over. The BFS here is
// hand-rolled rather than imported from a third-party graph library: the
// only graph library surfacing anywhere in the retrieval pack
// (katalvlaran/lvlath) is present solely as a go.mod manifest with no
// source, so there is nothing to ground a dependency on it in; a handful
// of lines over a map-backed adjacency list match the small, self
// contained style of the Rust original closely enough that reaching for
// an unverified dependency would not be an improvement.
package equivdb

import (
	"fmt"

	"github.com/enadeau/combspec/internal/label"
)

// RuleLabel is the labelwise image of a rule: a parent label plus the
// sorted labels of its children.
type RuleLabel struct {
	Parent   label.Label
	Children []label.Label
}

// NewRuleLabel builds a RuleLabel, sorting children ascending as §3
// requires ("RuleDB stores at most one strategy per (parent, sorted
// children) key").
func NewRuleLabel(parent label.Label, children []label.Label) RuleLabel {
	cs := append([]label.Label(nil), children...)
	sortLabels(cs)
	return RuleLabel{Parent: parent, Children: cs}
}

func sortLabels(ls []label.Label) {
	// insertion sort: rule arities are small (a handful of children at
	// most), so this avoids pulling in sort/slices generics overhead for
	// what is, in practice, a short list.
	for i := 1; i < len(ls); i++ {
		for j := i; j > 0 && ls[j-1] > ls[j]; j-- {
			ls[j-1], ls[j] = ls[j], ls[j-1]
		}
	}
}

// edge is a raw union pair, recorded in insertion order so FindPath can
// replay it as an undirected graph.
type edge struct {
	a, b label.Label
}

// DB is a union-find over labels, plus the edge log needed to reconstruct
// a concrete equivalence path between two labels in the same component.
type DB struct {
	parent map[label.Label]label.Label
	weight map[label.Label]int
	edges  []edge
}

// New returns an empty EquivDB.
func New() *DB {
	return &DB{
		parent: make(map[label.Label]label.Label),
		weight: make(map[label.Label]int),
	}
}

// Find returns the canonical representative of l's equivalence class,
// inserting l as its own singleton component on first sight. Find is
// idempotent and path-compressing.
func (db *DB) Find(l label.Label) label.Label {
	if _, ok := db.parent[l]; !ok {
		db.parent[l] = l
		db.weight[l] = 1
		return l
	}

	root := l
	for db.parent[root] != root {
		next, ok := db.parent[root]
		if !ok {
			panic("equivdb: logic error, broken chain in union-find")
		}
		root = next
	}

	// Path compression: every visited node now points directly at root.
	for n := l; n != root; {
		next := db.parent[n]
		db.parent[n] = root
		n = next
	}
	return root
}

// Union merges the components containing a and b (union by weight) and
// appends the raw pair to the edge log used by FindPath.
//
// On a weight tie, b's representative wins: this mirrors
// cmp::max_by_key(root1, root2, weight)/min_by_key(root1, root2, weight) in
// the ported original, which resolve a tie in favor of the second argument
// for the heaviest and the first argument for the lightest.
func (db *DB) Union(a, b label.Label) {
	db.edges = append(db.edges, edge{a, b})

	ra, rb := db.Find(a), db.Find(b)
	if ra == rb {
		return
	}
	if db.weight[ra] <= db.weight[rb] {
		ra, rb = rb, ra
	}
	db.weight[ra] += db.weight[rb]
	db.parent[rb] = ra
}

// AreEquivalent reports whether a and b are in the same component.
func (db *DB) AreEquivalent(a, b label.Label) bool {
	return db.Find(a) == db.Find(b)
}

// RuleUpToEquivalence rewrites rule by replacing its parent and every
// child with their current representative, re-sorting the children.
func (db *DB) RuleUpToEquivalence(rule RuleLabel) RuleLabel {
	children := make([]label.Label, len(rule.Children))
	for i, c := range rule.Children {
		children[i] = db.Find(c)
	}
	return NewRuleLabel(db.Find(rule.Parent), children)
}

// EdgeRule returns the equivalence rule, in the direction it was
// originally recorded by Union, for the direct union edge between a and
// b. Union(p, c) always corresponds to exactly the rule p → [c] that a
// RuleDB stored to trigger it, so the direction returned here — not the
// order a and b are passed in — is the one a rule-label lookup will
// actually find.
//
// ok is false if a and b were never directly unioned (no logged edge
// joins them, regardless of transitive equivalence).
func (db *DB) EdgeRule(a, b label.Label) (RuleLabel, bool) {
	for _, e := range db.edges {
		if e.a == a && e.b == b {
			return NewRuleLabel(a, []label.Label{b}), true
		}
		if e.a == b && e.b == a {
			return NewRuleLabel(b, []label.Label{a}), true
		}
	}
	return RuleLabel{}, false
}

// FindPath returns the shortest sequence of labels start=p0,p1,...,pn=end
// such that each consecutive pair was directly unioned, restricted to the
// edges whose endpoints lie in start's component.
//
// start and end must be in the same component; otherwise there is no
// well-defined path and FindPath returns an error rather than panicking
// (original_source exhibits an `unwrap` here and spec.md §9 flags it as an
// open question to be resolved as a recoverable error).
func (db *DB) FindPath(start, end label.Label) ([]label.Label, error) {
	if !db.AreEquivalent(start, end) {
		return nil, fmt.Errorf("equivdb: %d and %d are not equivalent", start, end)
	}
	if start == end {
		return []label.Label{start}, nil
	}

	adj := make(map[label.Label][]label.Label)
	for _, e := range db.edges {
		if !db.AreEquivalent(e.a, start) {
			continue
		}
		adj[e.a] = append(adj[e.a], e.b)
		adj[e.b] = append(adj[e.b], e.a)
	}

	type queued struct {
		node label.Label
		path []label.Label
	}
	visited := map[label.Label]bool{start: true}
	queue := []queued{{start, []label.Label{start}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.node == end {
			return cur.path, nil
		}
		for _, n := range adj[cur.node] {
			if visited[n] {
				continue
			}
			visited[n] = true
			path := append(append([]label.Label(nil), cur.path...), n)
			queue = append(queue, queued{n, path})
		}
	}
	// Unreachable given the AreEquivalent guard above and the invariant
	// that Union always logs the edge connecting the two components.
	panic("equivdb: logic error, no path found within a single component")
}
