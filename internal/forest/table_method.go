package forest

import (
	"github.com/enadeau/combspec/internal/label"
)

// Bucket classifies the shape of a rule for the table method. Verification
// and Equiv are detected automatically from a rule's shape (zero children,
// or exactly one child produced by an equivalence strategy); Normal and
// Reverse are supplied by the strategy itself via ShiftedStrategy.
type Bucket int

const (
	BucketUndefined Bucket = iota
	BucketVerification
	BucketEquiv
	BucketNormal
	BucketReverse
)

// ForestRuleKey is everything TableMethod needs from a rule: its shape
// (parent, children) plus the size-degree shift of each child relative to
// the parent, and a bucket tag carried for diagnostics/future use.
type ForestRuleKey struct {
	Parent   label.Label
	Children []label.Label
	Shifts   []int
	Bucket   Bucket
}

// Key returns the (parent, children) shape identifying this rule,
// ignoring its shifts and bucket — used to compare forest rule keys
// independently of how the shifts were derived.
func (k ForestRuleKey) Key() (label.Label, []label.Label) {
	return k.Parent, k.Children
}

// ruleClassConnector indexes, for the classes currently holding a finite
// f-value, which rules need to react when that value moves.
type ruleClassConnector struct {
	// ruleUsingClass[c] lists (ruleIdx, childIdx) pairs where c is that
	// rule's child at childIdx and c currently has a finite f-value.
	ruleUsingClass map[label.Label][]ruleChildRef
	// rulePumpingClass[c] lists rule indices whose parent is c and whose
	// parent currently has a finite f-value.
	rulePumpingClass map[label.Label][]int
}

type ruleChildRef struct {
	ruleIdx  int
	childIdx int
}

func newRuleClassConnector() *ruleClassConnector {
	return &ruleClassConnector{
		ruleUsingClass:   make(map[label.Label][]ruleChildRef),
		rulePumpingClass: make(map[label.Label][]int),
	}
}

func (c *ruleClassConnector) addRulePumpingClass(class label.Label, ruleIdx int) {
	c.rulePumpingClass[class] = append(c.rulePumpingClass[class], ruleIdx)
}

func (c *ruleClassConnector) addRuleUsingClass(class label.Label, ruleIdx, childIdx int) {
	c.ruleUsingClass[class] = append(c.ruleUsingClass[class], ruleChildRef{ruleIdx, childIdx})
}

// shift is an optional signed offset: nil means the underlying child/parent
// has already reached infinity and no longer constrains term production.
type shift struct {
	valid bool
	v     int
}

func someShift(v int) shift { return shift{valid: true, v: v} }
func noneShift() shift      { return shift{} }

func (s shift) dec() shift {
	if !s.valid {
		return s
	}
	return someShift(s.v - 1)
}

func (s shift) inc() shift {
	if !s.valid {
		return s
	}
	return someShift(s.v + 1)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// canGiveTerms reports whether every shift in the vector is either absent
// (child/parent already infinite) or strictly positive.
func canGiveTerms(shifts []shift) bool {
	for _, s := range shifts {
		if s.valid && s.v <= 0 {
			return false
		}
	}
	return true
}

// TableMethod incrementally tracks, for every rule added to it, how many
// terms of its parent's counting sequence are provably computable, and
// promotes classes to pumping (infinitely many terms known) once their
// rules can keep producing terms forever.
//
// Grounded on original_source/src/searcher/ruledb/forest/table_method.rs;
// the zero value is not ready to use, construct one with NewTableMethod.
type TableMethod struct {
	rules    []ForestRuleKey
	shifts   [][]shift
	function *Function

	gapSize int
	// currentGap is the half-open-on-neither-end pair (k, k+gapSize): the
	// window a rule must jump to be promoted to infinite.
	currentGap [2]int

	connector             *ruleClassConnector
	processingQueue       []int
	ruleHoldingExtraTerms map[int]bool
}

// NewTableMethod returns an empty TableMethod.
func NewTableMethod() *TableMethod {
	return &TableMethod{
		function:              NewFunction(),
		gapSize:               1,
		currentGap:            [2]int{1, 1},
		connector:             newRuleClassConnector(),
		ruleHoldingExtraTerms: make(map[int]bool),
	}
}

// AddRuleKey records rk and propagates any new terms it can justify,
// possibly promoting classes to pumping.
func (tb *TableMethod) AddRuleKey(rk ForestRuleKey) {
	tb.rules = append(tb.rules, rk)
	ruleIdx := len(tb.rules) - 1

	tb.shifts = append(tb.shifts, tb.computeShift(rk))

	maxShift := 0
	for _, s := range rk.Shifts {
		if a := absInt(s); a > maxShift {
			maxShift = a
		}
	}
	if maxShift > tb.gapSize {
		tb.gapSize = maxShift
		tb.correctGap()
	}

	if !tb.function.Get(rk.Parent).IsInfinite() {
		tb.connector.addRulePumpingClass(rk.Parent, ruleIdx)
		for childIdx, child := range rk.Children {
			if !tb.function.Get(child).IsInfinite() {
				tb.connector.addRuleUsingClass(child, ruleIdx, childIdx)
			}
		}
		tb.processingQueue = append(tb.processingQueue, ruleIdx)
	}
	tb.processQueue()
}

// IsPumping reports whether class is currently known to be pumping.
func (tb *TableMethod) IsPumping(class label.Label) bool {
	return tb.function.IsPumping(class)
}

// StableSubset returns every class currently known to be pumping.
func (tb *TableMethod) StableSubset() []label.Label {
	var out []label.Label
	for c, v := range tb.function.values {
		if v.IsInfinite() {
			out = append(out, c)
		}
	}
	return out
}

// PumpingSubuniverse returns every rule whose parent and every child are
// in the stable subset: a self-contained set of rules that alone proves
// those classes pumping.
func (tb *TableMethod) PumpingSubuniverse() []ForestRuleKey {
	stable := make(map[label.Label]bool)
	for _, c := range tb.StableSubset() {
		stable[c] = true
	}
	var out []ForestRuleKey
	for _, rk := range tb.rules {
		if !stable[rk.Parent] {
			continue
		}
		allStable := true
		for _, c := range rk.Children {
			if !stable[c] {
				allStable = false
				break
			}
		}
		if allStable {
			out = append(out, rk)
		}
	}
	return out
}

// computeShift computes the initial shift vector for rk given the current
// state of the function: None if the parent is already infinite, else
// f(child) + rk.Shifts[i] - f(parent) per child (None if that child is
// infinite).
func (tb *TableMethod) computeShift(rk ForestRuleKey) []shift {
	parentValue := tb.function.Get(rk.Parent)
	out := make([]shift, len(rk.Children))
	if parentValue.IsInfinite() {
		for i := range out {
			out[i] = noneShift()
		}
		return out
	}
	for i, child := range rk.Children {
		cv := tb.function.Get(child)
		if cv.IsInfinite() {
			out[i] = noneShift()
			continue
		}
		out[i] = someShift(int(cv) + rk.Shifts[i] - int(parentValue))
	}
	return out
}

// correctGap recomputes the gap from the current function state and, if
// its upper bound grew, re-queues every rule that was waiting on a wider
// gap to justify its extra terms.
func (tb *TableMethod) correctGap() {
	k := tb.function.PreimageGap(tb.gapSize)
	newGap := [2]int{k, k + tb.gapSize}
	if newGap[1] > tb.currentGap[1] {
		for idx := range tb.ruleHoldingExtraTerms {
			tb.processingQueue = append(tb.processingQueue, idx)
		}
		tb.ruleHoldingExtraTerms = make(map[int]bool)
	}
	tb.currentGap = newGap
}

// processQueue drains the processing queue and the extra-terms set until
// both are empty, propagating term increases and infinity promotions.
func (tb *TableMethod) processQueue() {
	for len(tb.processingQueue) > 0 || len(tb.ruleHoldingExtraTerms) > 0 {
		for len(tb.processingQueue) > 0 {
			ruleIdx := tb.processingQueue[0]
			tb.processingQueue = tb.processingQueue[1:]
			if canGiveTerms(tb.shifts[ruleIdx]) {
				tb.increaseValue(tb.rules[ruleIdx].Parent, ruleIdx)
			}
		}
		if len(tb.ruleHoldingExtraTerms) > 0 {
			var ruleIdx int
			for idx := range tb.ruleHoldingExtraTerms {
				ruleIdx = idx
				break
			}
			delete(tb.ruleHoldingExtraTerms, ruleIdx)
			tb.setInfinite(tb.rules[ruleIdx].Parent)
		}
	}
}

// increaseValue bumps class's term count by one (justified by ruleIdx) and
// propagates the effect to every rule that references class, enqueuing any
// that newly became eligible.
func (tb *TableMethod) increaseValue(class label.Label, ruleIdx int) {
	current := tb.function.Get(class)
	if current.IsInfinite() {
		return
	}
	if int(current) > tb.currentGap[1] {
		tb.ruleHoldingExtraTerms[ruleIdx] = true
		return
	}
	tb.function.Increase(class)

	gapStart := tb.function.PreimageGap(tb.gapSize)
	if tb.currentGap[0] != gapStart {
		tb.correctGap()
	}

	for _, r := range tb.connector.rulePumpingClass[class] {
		s := tb.shifts[r]
		for i := range s {
			s[i] = s[i].dec()
		}
		if canGiveTerms(s) {
			tb.processingQueue = append(tb.processingQueue, r)
		}
	}

	for _, ref := range tb.connector.ruleUsingClass[class] {
		s := tb.shifts[ref.ruleIdx]
		s[ref.childIdx] = s[ref.childIdx].inc()
		if canGiveTerms(s) {
			tb.processingQueue = append(tb.processingQueue, ref.ruleIdx)
		}
	}
}

// setInfinite promotes class to pumping: it must currently be finite and
// beyond the current gap's upper bound, and the processing queue must
// already be drained (the caller only reaches here once process_queue's
// inner loop is exhausted).
func (tb *TableMethod) setInfinite(class label.Label) {
	current := tb.function.Get(class)
	if current.IsInfinite() {
		return
	}
	tb.function.SetInfinite(class)

	for _, ref := range tb.connector.ruleUsingClass[class] {
		s := tb.shifts[ref.ruleIdx]
		s[ref.childIdx] = noneShift()
		if canGiveTerms(s) {
			tb.processingQueue = append(tb.processingQueue, ref.ruleIdx)
		}
	}
}
