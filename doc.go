// Package combspec is a framework for discovering combinatorial
// specifications: given a starting combinatorial class and a pack of
// strategies, it searches for a finite, grounded set of rules that fully
// decomposes the class (and everything reachable from it) down to atoms.
//
// Embedders implement Class and Strategy for their own domain (see
// words/ for a worked example) and hand a StrategyPack and a starting
// class to New; AutoSearch then drives ClassDB, ClassQueue, EquivDB, and
// a RuleStore (either the simple accumulator in internal/ruledb or the
// pumping-aware internal/forest.ForestRuleDB) until a Specification is
// found or the search is told to stop.
//
// Grounded on original_source/src/searcher.rs and src/lib.rs's module
// layout; the teacher (github.com/gaissmai/bart) contributes the ambient
// idiom — generic containers over a comparable key, doc-comment density,
// and internal/ package layout — since its own domain (IP routing
// tables) has no structural overlap with combinatorial search.
package combspec
