// Package queue schedules (label, factory) work packets in the tiered
// priority order spec.md §4.2 requires, suppressing redundant work and,
// once a verification or inferral succeeds for a class, the rest of that
// class's packets.
//
// Grounded on original_source/src/searcher/queue.rs for the overall
// shape (a FIFO plus an ignore set), generalized from its single flat
// strategy-index loop to the four explicit tiers and the "ignore on
// success" rule spec.md actually specifies (the Rust source predates that
// refinement and ignores a class unconditionally once its packets are
// exhausted, regardless of tier or outcome).
package queue

import "github.com/enadeau/combspec/internal/label"

// Tier classifies a StrategyFactory at pack-assembly time. Iota order here
// doubles as priority order (lower value = higher priority), matching the
// "verifications, inferrals, initials, expansions" order spec.md §3 fixes.
type Tier int

const (
	TierVerification Tier = iota
	TierInferral
	TierInitial
	TierExpansion
	numTiers
)

// causesIgnoreOnSuccess reports whether a rule produced at this tier
// should suppress the rest of the class's packets (§4.2 step 1: "Initial-
// and expansion-tier packets never cause ignoring").
func (t Tier) causesIgnoreOnSuccess() bool {
	return t == TierVerification || t == TierInferral
}

// Packet is a unit of scheduled work: apply the factory at FactoryIndex
// (within its tier, as assigned at pack-assembly time) to the class named
// by Label.
type Packet struct {
	Label        label.Label
	Tier         Tier
	FactoryIndex int
}

// Queue yields (label, factory) work packets in tier-priority order,
// FIFO within a tier, each pair at most once per lifetime.
//
// The zero value is not ready to use; construct one with New.
type Queue struct {
	tierFactoryCount [numTiers]int
	fifos            [numTiers][]Packet
	fifoHead         [numTiers]int

	added  map[label.Label]bool
	ignore map[label.Label]bool

	// lastPacket / haveLastPacket implement the "no last packet yet"
	// sentinel spec.md §4.2 requires Next's first call to pass.
	lastPacket     Packet
	haveLastPacket bool
}

// New returns a Queue for a pack with tierFactoryCount[t] factories in
// tier t, seeded with startLabel already added.
func New(tierFactoryCount [4]int, startLabel label.Label) *Queue {
	q := &Queue{
		tierFactoryCount: tierFactoryCount,
		added:            make(map[label.Label]bool),
		ignore:           make(map[label.Label]bool),
	}
	q.Add(startLabel)
	return q
}

// Add expands l into one work packet per factory in each tier, in
// priority order, unless l has already been added (§4.2: "no-op if label
// is in added").
func (q *Queue) Add(l label.Label) {
	if q.added[l] {
		return
	}
	q.added[l] = true
	for t := Tier(0); t < numTiers; t++ {
		for i := 0; i < q.tierFactoryCount[t]; i++ {
			q.fifos[t] = append(q.fifos[t], Packet{Label: l, Tier: t, FactoryIndex: i})
		}
	}
}

// Ignore marks l so that any of its remaining packets are silently
// skipped by Next. Ignoring is permanent: a later Add of l does not clear
// it (spec.md §9 open-question resolution).
func (q *Queue) Ignore(l label.Label) {
	q.ignore[l] = true
}

// Next returns the next work packet, or false if the queue is exhausted.
//
// producedRule reports whether the packet returned by the *previous* call
// to Next produced at least one rule. The very first call of a Queue's
// lifetime must be Next(false), since there is no prior packet yet;
// passing true with no prior packet is a contract violation.
func (q *Queue) Next(producedRule bool) (Packet, bool) {
	if !q.haveLastPacket && producedRule {
		panic("queue: logic error, producedRule reported with no prior packet yielded")
	}
	if q.haveLastPacket && producedRule && q.lastPacket.Tier.causesIgnoreOnSuccess() {
		q.Ignore(q.lastPacket.Label)
	}

	for {
		p, ok := q.popFront()
		if !ok {
			q.haveLastPacket = false
			return Packet{}, false
		}
		if q.ignore[p.Label] {
			continue
		}
		q.lastPacket = p
		q.haveLastPacket = true
		return p, true
	}
}

// popFront pops the front packet of the highest-priority non-empty tier
// FIFO, without applying the ignore filter.
func (q *Queue) popFront() (Packet, bool) {
	for t := Tier(0); t < numTiers; t++ {
		if q.fifoHead[t] < len(q.fifos[t]) {
			p := q.fifos[t][q.fifoHead[t]]
			q.fifoHead[t]++
			return p, true
		}
	}
	return Packet{}, false
}
